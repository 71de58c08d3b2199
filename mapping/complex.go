package mapping

import (
	"fmt"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// ComplexPack folds a real model holding concatenated real and imaginary
// halves into a complex property vector: entry k of the output is
// m[k] + i*m[nP/2+k].
type ComplexPack struct {
	nP int // real parameters, always even
}

// NewComplexPack builds the packing map. np <= 0 selects two parameters per
// mesh cell; an explicit np must be even.
func NewComplexPack(msh mesh.Mesh, np int) (*ComplexPack, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	if np <= 0 {
		np = 2 * msh.NumCells()
	}
	if np%2 != 0 {
		return nil, fmt.Errorf("mapping: nP must be even, got %d", np)
	}
	return &ComplexPack{nP: np}, nil
}

func (cm *ComplexPack) NP() int                 { return cm.nP }
func (cm *ComplexPack) Shape() (rows, cols int) { return cm.nP / 2, cm.nP }

// Transform packs the two halves of m into re + i*im.
func (cm *ComplexPack) Transform(m []float64) []complex128 {
	checkLen("ComplexPack.Transform", len(m), cm.nP)
	return pack(m)
}

// Deriv returns the packing operator. Packing is linear, so the forward
// application is Transform itself; the adjoint splits a complex vector back
// into concatenated halves.
func (cm *ComplexPack) Deriv(m []float64) linop.ComplexOperator {
	checkLen("ComplexPack.Deriv", len(m), cm.nP)
	return linop.NewCFunc(cm.nP/2, cm.nP, pack, unpack)
}

// Inverse splits complex data back into concatenated real and imaginary
// halves. Packing loses nothing, so this is an exact inverse.
func (cm *ComplexPack) Inverse(d []complex128) ([]float64, error) {
	if len(d) != cm.nP/2 {
		return nil, fmt.Errorf("mapping: ComplexPack.Inverse: vector length %d, want %d", len(d), cm.nP/2)
	}
	return unpack(d), nil
}

func (cm *ComplexPack) String() string {
	return fmt.Sprintf("ComplexPack(%d -> %d)", cm.nP, cm.nP/2)
}

func pack(m []float64) []complex128 {
	half := len(m) / 2
	out := make([]complex128, half)
	for i := range out {
		out[i] = complex(m[i], m[half+i])
	}
	return out
}

func unpack(d []complex128) []float64 {
	out := make([]float64, 2*len(d))
	for i, v := range d {
		out[i] = real(v)
		out[len(d)+i] = imag(v)
	}
	return out
}
