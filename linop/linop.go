// Package linop provides the linear-operator substrate used by the
// model-parameter transforms: explicit dense and sparse matrix operators,
// function-backed implicit operators, and operator composition. Real and
// complex-codomain operators form parallel families, following the split
// gonum's mat package makes between Matrix and CMatrix.
package linop

import (
	"fmt"
)

// Operator is a real linear map between finite-dimensional vector spaces.
// MulVec applies the operator and AdjMulVec applies its transpose; both
// panic if the input length does not match the corresponding dimension.
type Operator interface {
	// Dims returns the number of rows and columns (range and domain sizes).
	Dims() (r, c int)
	// MulVec returns y = A x. len(x) must equal the column count.
	MulVec(x []float64) []float64
	// AdjMulVec returns x = Aᵀ y. len(y) must equal the row count.
	AdjMulVec(y []float64) []float64
}

// ComplexOperator is a linear map from a real vector space into a complex
// one. The adjoint maps complex vectors back into the real domain.
type ComplexOperator interface {
	Dims() (r, c int)
	MulVec(x []float64) []complex128
	AdjMulVec(y []complex128) []float64
}

// Func is an operator defined by forward and adjoint closures, for linear
// maps that are cheaper to apply than to materialize.
type Func struct {
	rows, cols int
	fwd        func(x []float64) []float64
	adj        func(y []float64) []float64
}

// NewFunc builds a function-backed operator of the given dimensions.
// Panics if either closure is nil.
func NewFunc(rows, cols int, fwd, adj func([]float64) []float64) *Func {
	if fwd == nil || adj == nil {
		panic("linop: NewFunc requires forward and adjoint closures")
	}
	return &Func{rows: rows, cols: cols, fwd: fwd, adj: adj}
}

func (f *Func) Dims() (int, int) { return f.rows, f.cols }

func (f *Func) MulVec(x []float64) []float64 {
	checkDim("Func.MulVec", len(x), f.cols)
	y := f.fwd(x)
	checkDim("Func.MulVec result", len(y), f.rows)
	return y
}

func (f *Func) AdjMulVec(y []float64) []float64 {
	checkDim("Func.AdjMulVec", len(y), f.rows)
	x := f.adj(y)
	checkDim("Func.AdjMulVec result", len(x), f.cols)
	return x
}

// CFunc is the complex-codomain counterpart of Func.
type CFunc struct {
	rows, cols int
	fwd        func(x []float64) []complex128
	adj        func(y []complex128) []float64
}

// NewCFunc builds a function-backed complex-codomain operator.
// Panics if either closure is nil.
func NewCFunc(rows, cols int, fwd func([]float64) []complex128, adj func([]complex128) []float64) *CFunc {
	if fwd == nil || adj == nil {
		panic("linop: NewCFunc requires forward and adjoint closures")
	}
	return &CFunc{rows: rows, cols: cols, fwd: fwd, adj: adj}
}

func (f *CFunc) Dims() (int, int) { return f.rows, f.cols }

func (f *CFunc) MulVec(x []float64) []complex128 {
	checkDim("CFunc.MulVec", len(x), f.cols)
	y := f.fwd(x)
	checkDim("CFunc.MulVec result", len(y), f.rows)
	return y
}

func (f *CFunc) AdjMulVec(y []complex128) []float64 {
	checkDim("CFunc.AdjMulVec", len(y), f.rows)
	x := f.adj(y)
	checkDim("CFunc.AdjMulVec result", len(x), f.cols)
	return x
}

// Mul composes two operators into a∘b (b applied first). When both factors
// are matrix-backed the product is materialized as an explicit matrix,
// sparse if either factor is sparse; otherwise composition stays lazy.
func Mul(a, b Operator) Operator {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(fmt.Sprintf("linop: cannot compose (%d,%d) with (%d,%d)", ar, ac, br, bc))
	}
	am, aok := a.(*MatOp)
	bm, bok := b.(*MatOp)
	if aok && bok {
		return FromMatrix(mulMatrix(am.m, bm.m))
	}
	return &product{a: a, b: b}
}

// MulComplex composes a complex-codomain outer factor with a real inner
// factor. The composition is always lazy: complex-codomain operators are
// function-backed.
func MulComplex(a ComplexOperator, b Operator) ComplexOperator {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		panic(fmt.Sprintf("linop: cannot compose (%d,%d) with (%d,%d)", ar, ac, br, bc))
	}
	return &cproduct{a: a, b: b}
}

// product applies b, then a.
type product struct {
	a, b Operator
}

func (p *product) Dims() (int, int) {
	r, _ := p.a.Dims()
	_, c := p.b.Dims()
	return r, c
}

func (p *product) MulVec(x []float64) []float64 { return p.a.MulVec(p.b.MulVec(x)) }

func (p *product) AdjMulVec(y []float64) []float64 { return p.b.AdjMulVec(p.a.AdjMulVec(y)) }

// cproduct applies the real factor b, then the complex factor a.
type cproduct struct {
	a ComplexOperator
	b Operator
}

func (p *cproduct) Dims() (int, int) {
	r, _ := p.a.Dims()
	_, c := p.b.Dims()
	return r, c
}

func (p *cproduct) MulVec(x []float64) []complex128 { return p.a.MulVec(p.b.MulVec(x)) }

func (p *cproduct) AdjMulVec(y []complex128) []float64 { return p.b.AdjMulVec(p.a.AdjMulVec(y)) }

func checkDim(op string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("linop: %s: length %d, want %d", op, got, want))
	}
}
