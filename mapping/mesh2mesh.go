package mapping

import (
	"fmt"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// MeshToMesh moves a cell-centered model from one mesh onto another by
// interpolation. Target cells whose centers fall outside the source mesh
// map to zero.
type MeshToMesh struct {
	nP    int            // source cells
	nC    int            // target cells
	deriv linop.Operator // constant interpolation operator
}

// NewMeshToMesh interpolates from the source mesh onto the cell centers of
// the target mesh. The meshes must share a dimension.
func NewMeshToMesh(to, from mesh.Mesh) (*MeshToMesh, error) {
	if to == nil || from == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	if to.Dim() != from.Dim() {
		return nil, fmt.Errorf("mapping: mesh dimensions differ: %d and %d", to.Dim(), from.Dim())
	}
	p, err := from.InterpolationMatrix(to.CellCenters(), true)
	if err != nil {
		return nil, fmt.Errorf("mapping: building interpolation: %v", err)
	}
	return &MeshToMesh{
		nP:    from.NumCells(),
		nC:    to.NumCells(),
		deriv: linop.FromMatrix(p),
	}, nil
}

func (mm *MeshToMesh) NP() int                 { return mm.nP }
func (mm *MeshToMesh) Shape() (rows, cols int) { return mm.nC, mm.nP }

// Transform interpolates the model onto the target mesh.
func (mm *MeshToMesh) Transform(m []float64) []float64 {
	checkLen("MeshToMesh.Transform", len(m), mm.nP)
	return mm.deriv.MulVec(m)
}

// Deriv returns the constant interpolation operator.
func (mm *MeshToMesh) Deriv(m []float64) linop.Operator {
	checkLen("MeshToMesh.Deriv", len(m), mm.nP)
	return mm.deriv
}

// Inverse is not defined for an interpolation.
func (mm *MeshToMesh) Inverse(d []float64) ([]float64, error) {
	return nil, ErrNoInverse
}

func (mm *MeshToMesh) String() string {
	return fmt.Sprintf("MeshToMesh(%d -> %d)", mm.nP, mm.nC)
}
