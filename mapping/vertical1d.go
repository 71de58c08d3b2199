package mapping

import (
	"fmt"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// Vertical1D expands a single vertical profile across every lateral cell of
// a mesh. The model holds one value per cell along the last axis; the
// transform repeats each value over all cells of its layer.
type Vertical1D struct {
	nP     int // cells along the last axis
	repeat int // lateral cells per layer
	nC     int
	deriv  linop.Operator // constant kron(I, ones) replication operator
}

// NewVertical1D builds the profile-expansion mapping. The mesh cell count
// must factor into layers of equal size, which any tensor mesh satisfies.
func NewVertical1D(msh mesh.Mesh) (*Vertical1D, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	vnC := msh.AxisCells()
	nP := vnC[len(vnC)-1]
	repeat := 1
	for _, n := range vnC[:len(vnC)-1] {
		repeat *= n
	}
	if nP*repeat != msh.NumCells() {
		return nil, fmt.Errorf("mapping: mesh cell count %d does not factor into %d layers of %d",
			msh.NumCells(), nP, repeat)
	}
	return &Vertical1D{
		nP:     nP,
		repeat: repeat,
		nC:     msh.NumCells(),
		deriv:  linop.FromMatrix(linop.Kron(linop.Eye(nP).Matrix(), linop.OnesColumn(repeat))),
	}, nil
}

func (vm *Vertical1D) NP() int                 { return vm.nP }
func (vm *Vertical1D) Shape() (rows, cols int) { return vm.nC, vm.nP }

// Transform repeats each profile value over the cells of its layer. With
// the first axis varying fastest, a layer occupies one contiguous block.
func (vm *Vertical1D) Transform(m []float64) []float64 {
	checkLen("Vertical1D.Transform", len(m), vm.nP)
	out := make([]float64, vm.nC)
	for i, v := range m {
		for k := 0; k < vm.repeat; k++ {
			out[i*vm.repeat+k] = v
		}
	}
	return out
}

// Deriv returns the constant replication operator kron(I, ones).
func (vm *Vertical1D) Deriv(m []float64) linop.Operator {
	checkLen("Vertical1D.Deriv", len(m), vm.nP)
	return vm.deriv
}

// Inverse is not defined for a profile expansion.
func (vm *Vertical1D) Inverse(d []float64) ([]float64, error) {
	return nil, ErrNoInverse
}

func (vm *Vertical1D) String() string {
	return fmt.Sprintf("Vertical1D(%d -> %d)", vm.nP, vm.nC)
}
