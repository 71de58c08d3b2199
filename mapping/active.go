package mapping

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// ActiveCells embeds a model defined on the active cells of a mesh into the
// full cell vector, holding every inactive cell at a fixed fill value. The
// transform is affine: P*m + fill, where P scatters the model values into
// their cells and fill is zero on active cells.
type ActiveCells struct {
	nC     int
	nP     int            // active cell count
	active []bool         // mask over all cells
	fill   []float64      // length nC, zeroed at active cells
	deriv  linop.Operator // constant injection operator P
}

// NewActiveCells builds the injection mapping from an active-cell mask and
// a fill vector of per-cell inactive values. Fill entries at active cells
// are ignored. Both slices are copied.
func NewActiveCells(msh mesh.Mesh, active []bool, fill []float64) (*ActiveCells, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	nC := msh.NumCells()
	if len(active) != nC {
		return nil, fmt.Errorf("mapping: active mask length %d, want %d", len(active), nC)
	}
	if len(fill) != nC {
		return nil, fmt.Errorf("mapping: fill length %d, want %d", len(fill), nC)
	}
	nP := 0
	for _, a := range active {
		if a {
			nP++
		}
	}
	if nP == 0 {
		return nil, fmt.Errorf("mapping: no active cells")
	}

	am := &ActiveCells{
		nC:     nC,
		nP:     nP,
		active: append([]bool(nil), active...),
		fill:   append([]float64(nil), fill...),
	}
	rows := make([]int, 0, nP)
	cols := make([]int, 0, nP)
	data := make([]float64, 0, nP)
	j := 0
	for i, a := range active {
		if !a {
			continue
		}
		am.fill[i] = 0
		rows = append(rows, i)
		cols = append(cols, j)
		data = append(data, 1)
		j++
	}
	am.deriv = linop.FromMatrix(sparse.NewCOO(nC, nP, rows, cols, data).ToCSR())
	return am, nil
}

// NewActiveCellsConst is NewActiveCells with the same fill value in every
// inactive cell.
func NewActiveCellsConst(msh mesh.Mesh, active []bool, fillValue float64) (*ActiveCells, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	fill := make([]float64, msh.NumCells())
	for i := range fill {
		fill[i] = fillValue
	}
	return NewActiveCells(msh, active, fill)
}

// MaskFromIndices expands a list of active cell indices into a mask of
// length n.
func MaskFromIndices(n int, idx []int) ([]bool, error) {
	mask := make([]bool, n)
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("mapping: cell index %d out of range [0, %d)", i, n)
		}
		mask[i] = true
	}
	return mask, nil
}

func (am *ActiveCells) NP() int                 { return am.nP }
func (am *ActiveCells) Shape() (rows, cols int) { return am.nC, am.nP }

// ActiveMask returns a copy of the active-cell mask.
func (am *ActiveCells) ActiveMask() []bool {
	return append([]bool(nil), am.active...)
}

// Transform scatters the model into the active cells over the fill values.
func (am *ActiveCells) Transform(m []float64) []float64 {
	checkLen("ActiveCells.Transform", len(m), am.nP)
	out := append([]float64(nil), am.fill...)
	j := 0
	for i, a := range am.active {
		if a {
			out[i] = m[j]
			j++
		}
	}
	return out
}

// Deriv returns the constant injection operator; the fill offset has no
// derivative.
func (am *ActiveCells) Deriv(m []float64) linop.Operator {
	checkLen("ActiveCells.Deriv", len(m), am.nP)
	return am.deriv
}

// Inverse is not defined for an injection.
func (am *ActiveCells) Inverse(d []float64) ([]float64, error) {
	return nil, ErrNoInverse
}

func (am *ActiveCells) String() string {
	return fmt.Sprintf("ActiveCells(%d of %d)", am.nP, am.nC)
}
