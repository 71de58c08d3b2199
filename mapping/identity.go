package mapping

import (
	"fmt"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// Identity maps a model straight to the property vector, one parameter per
// mesh cell.
type Identity struct {
	nP int
}

// NewIdentity builds the identity mapping on a mesh.
func NewIdentity(msh mesh.Mesh) (*Identity, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	return &Identity{nP: msh.NumCells()}, nil
}

func (im *Identity) NP() int                 { return im.nP }
func (im *Identity) Shape() (rows, cols int) { return im.nP, im.nP }

// Transform returns a copy of m.
func (im *Identity) Transform(m []float64) []float64 {
	checkLen("Identity.Transform", len(m), im.nP)
	out := make([]float64, len(m))
	copy(out, m)
	return out
}

// Deriv returns the identity operator.
func (im *Identity) Deriv(m []float64) linop.Operator {
	checkLen("Identity.Deriv", len(m), im.nP)
	return linop.Eye(im.nP)
}

// Inverse returns a copy of d.
func (im *Identity) Inverse(d []float64) ([]float64, error) {
	if len(d) != im.nP {
		return nil, fmt.Errorf("mapping: Identity.Inverse: vector length %d, want %d", len(d), im.nP)
	}
	out := make([]float64, len(d))
	copy(out, d)
	return out, nil
}

func (im *Identity) String() string { return fmt.Sprintf("Identity(%d)", im.nP) }
