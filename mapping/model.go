package mapping

import (
	"fmt"

	"github.com/invgeo/modelmap/fdcheck"
	"github.com/invgeo/modelmap/linop"
)

// Model binds a model vector to its mapping. The vector is copied on
// construction and never mutated; the transformed property vector and the
// derivative are computed on first use and cached. Model is not safe for
// concurrent use.
type Model struct {
	m  []float64
	mp Map

	transformed []float64
	deriv       linop.Operator
}

// NewModel binds a copy of m to mp. The length of m must match mp.NP().
func NewModel(m []float64, mp Map) (*Model, error) {
	if mp == nil {
		return nil, fmt.Errorf("mapping: nil map")
	}
	if len(m) != mp.NP() {
		return nil, fmt.Errorf("mapping: model length %d, want %d", len(m), mp.NP())
	}
	return &Model{m: append([]float64(nil), m...), mp: mp}, nil
}

// Vector returns a copy of the bound model vector.
func (bm *Model) Vector() []float64 {
	return append([]float64(nil), bm.m...)
}

// Mapping returns the bound map.
func (bm *Model) Mapping() Map { return bm.mp }

// Transform returns the mapped property vector, computing it on the first
// call. The returned slice is the cached value; callers must not modify it.
func (bm *Model) Transform() []float64 {
	if bm.transformed == nil {
		bm.transformed = bm.mp.Transform(bm.m)
	}
	return bm.transformed
}

// Deriv returns the mapping derivative at the bound vector, computing it on
// the first call.
func (bm *Model) Deriv() linop.Operator {
	if bm.deriv == nil {
		bm.deriv = bm.mp.Deriv(bm.m)
	}
	return bm.deriv
}

// Test runs the derivative check at the bound vector.
func (bm *Model) Test(opt *fdcheck.Options) error {
	return Test(bm.mp, bm.m, opt)
}

// ComplexModel binds a model vector to a complex-codomain mapping, with the
// same copying and caching behavior as Model.
type ComplexModel struct {
	m  []float64
	mp ComplexMap

	transformed []complex128
	deriv       linop.ComplexOperator
}

// NewComplexModel binds a copy of m to mp.
func NewComplexModel(m []float64, mp ComplexMap) (*ComplexModel, error) {
	if mp == nil {
		return nil, fmt.Errorf("mapping: nil map")
	}
	if len(m) != mp.NP() {
		return nil, fmt.Errorf("mapping: model length %d, want %d", len(m), mp.NP())
	}
	return &ComplexModel{m: append([]float64(nil), m...), mp: mp}, nil
}

// Vector returns a copy of the bound model vector.
func (bm *ComplexModel) Vector() []float64 {
	return append([]float64(nil), bm.m...)
}

// Mapping returns the bound map.
func (bm *ComplexModel) Mapping() ComplexMap { return bm.mp }

// Transform returns the mapped property vector, computing it on the first
// call. The returned slice is the cached value; callers must not modify it.
func (bm *ComplexModel) Transform() []complex128 {
	if bm.transformed == nil {
		bm.transformed = bm.mp.Transform(bm.m)
	}
	return bm.transformed
}

// Deriv returns the mapping derivative at the bound vector, computing it on
// the first call.
func (bm *ComplexModel) Deriv() linop.ComplexOperator {
	if bm.deriv == nil {
		bm.deriv = bm.mp.Deriv(bm.m)
	}
	return bm.deriv
}

// Test runs the derivative check at the bound vector.
func (bm *ComplexModel) Test(opt *fdcheck.Options) error {
	return TestComplex(bm.mp, bm.m, opt)
}
