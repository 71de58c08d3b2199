// Package mapping implements composable transforms from inversion model
// parameters to physical properties on a mesh.
//
// A Map turns a model vector of NP parameters into a property vector,
// exposes the Jacobian of that transform as a linop.Operator, and optionally
// inverts it. Maps compose with Chain, which applies its children right to
// left and accumulates the chain-rule derivative. Model binds a vector to a
// Map and caches the transformed result. The ComplexMap family mirrors Map
// for transforms with a complex-valued codomain.
package mapping

import (
	"errors"
	"fmt"

	"github.com/invgeo/modelmap/linop"
)

var (
	// ErrNoInverse reports that a mapping has no inverse transform.
	ErrNoInverse = errors.New("mapping: no inverse transform")
	// ErrNotImplemented reports that a fields mapping does not specialize
	// the called operation.
	ErrNotImplemented = errors.New("mapping: not implemented")
)

// Map transforms a model vector of NP parameters into a physical-property
// vector.
type Map interface {
	// NP returns the number of model parameters the map expects.
	NP() int
	// Shape returns the dimensions of the derivative: rows is the length
	// of the transformed vector, cols is NP.
	Shape() (rows, cols int)
	// Transform maps a model vector onto the property vector. It panics
	// when len(m) != NP.
	Transform(m []float64) []float64
	// Deriv returns the Jacobian of Transform at m as a linear operator.
	// It panics when len(m) != NP.
	Deriv(m []float64) linop.Operator
	// Inverse recovers a model vector from a property vector. Maps
	// without an inverse return ErrNoInverse.
	Inverse(d []float64) ([]float64, error)
}

// ComplexMap is a Map whose codomain is complex.
type ComplexMap interface {
	NP() int
	Shape() (rows, cols int)
	Transform(m []float64) []complex128
	Deriv(m []float64) linop.ComplexOperator
	Inverse(d []complex128) ([]float64, error)
}

// checkLen panics when a model vector has the wrong length for a map.
func checkLen(op string, got, want int) {
	if got != want {
		panic(fmt.Sprintf("mapping: %s: vector length %d, want %d", op, got, want))
	}
}
