package linop

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// MatOp is an operator backed by an explicit matrix, dense or sparse.
// Application iterates stored nonzeros for sparse matrices and falls back
// to a dense matrix-vector product otherwise.
type MatOp struct {
	m mat.Matrix
}

// FromMatrix wraps an explicit matrix as an operator. The matrix is held
// by reference and must not be modified afterwards.
func FromMatrix(m mat.Matrix) *MatOp {
	if m == nil {
		panic("linop: FromMatrix requires a matrix")
	}
	return &MatOp{m: m}
}

// Matrix returns the backing matrix.
func (o *MatOp) Matrix() mat.Matrix { return o.m }

func (o *MatOp) Dims() (int, int) { return o.m.Dims() }

func (o *MatOp) MulVec(x []float64) []float64 {
	r, c := o.m.Dims()
	checkDim("MatOp.MulVec", len(x), c)
	y := make([]float64, r)
	if nz, ok := o.m.(mat.NonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			y[i] += v * x[j]
		})
		return y
	}
	yv := mat.NewVecDense(r, y)
	yv.MulVec(o.m, mat.NewVecDense(c, x))
	return y
}

func (o *MatOp) AdjMulVec(y []float64) []float64 {
	r, c := o.m.Dims()
	checkDim("MatOp.AdjMulVec", len(y), r)
	x := make([]float64, c)
	if nz, ok := o.m.(mat.NonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			x[j] += v * y[i]
		})
		return x
	}
	xv := mat.NewVecDense(c, x)
	xv.MulVec(o.m.T(), mat.NewVecDense(r, y))
	return x
}

// Eye returns the n×n identity operator in sparse form.
func Eye(n int) *MatOp {
	rows := make([]int, n)
	cols := make([]int, n)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = i
		cols[i] = i
		data[i] = 1
	}
	return FromMatrix(sparse.NewCOO(n, n, rows, cols, data).ToCSR())
}

// Diag returns the diagonal operator with the given diagonal, in sparse
// form. The diagonal is copied.
func Diag(d []float64) *MatOp {
	n := len(d)
	rows := make([]int, n)
	cols := make([]int, n)
	data := make([]float64, n)
	for i, v := range d {
		rows[i] = i
		cols[i] = i
		data[i] = v
	}
	return FromMatrix(sparse.NewCOO(n, n, rows, cols, data).ToCSR())
}

// Dense materializes an operator as a dense matrix, applying it to the
// standard basis column by column when no backing matrix is available.
// Intended for small problems and tests.
func Dense(op Operator) *mat.Dense {
	if mo, ok := op.(*MatOp); ok {
		return mat.DenseCopyOf(mo.m)
	}
	r, c := op.Dims()
	d := mat.NewDense(r, c, nil)
	e := make([]float64, c)
	for j := 0; j < c; j++ {
		e[j] = 1
		d.SetCol(j, op.MulVec(e))
		e[j] = 0
	}
	return d
}

// mulMatrix multiplies two explicit matrices, keeping the product sparse
// if either factor is sparse.
func mulMatrix(a, b mat.Matrix) mat.Matrix {
	if isSparse(a) || isSparse(b) {
		var c sparse.CSR
		c.Mul(a, b)
		return &c
	}
	var c mat.Dense
	c.Mul(a, b)
	return &c
}

func isSparse(m mat.Matrix) bool {
	switch m.(type) {
	case *sparse.CSR, *sparse.COO, *sparse.CSC:
		return true
	}
	return false
}
