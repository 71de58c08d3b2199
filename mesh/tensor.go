package mesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
Cell ordering

Cells are numbered with the first axis varying fastest: in 3D the flat index
of cell (i, j, k) on a mesh with vnC = [nx, ny, nz] is

	idx = i + nx*(j + ny*k)

CellCenters and every cell-centered vector in this module follow this
ordering.
*/

// TensorMesh is a tensor-product mesh: an origin plus one slice of cell
// widths per axis. It supports dimensions 1 through 3.
type TensorMesh struct {
	dim     int
	vnC     []int        // cells per axis
	nC      int          // total cells, product of vnC
	centers [][]float64  // per-axis cell-center coordinates, ascending
	bounds  [][2]float64 // per-axis mesh extent [min, max]
}

// NewTensorMesh builds a tensor mesh from an origin and per-axis cell widths.
// len(widths) sets the dimension and must be 1, 2 or 3; len(origin) must
// match it; every width must be positive.
func NewTensorMesh(origin []float64, widths ...[]float64) (*TensorMesh, error) {
	dim := len(widths)
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("mesh: dimension %d, want 1 to 3", dim)
	}
	if len(origin) != dim {
		return nil, fmt.Errorf("mesh: origin length %d, want %d", len(origin), dim)
	}
	m := &TensorMesh{
		dim:     dim,
		vnC:     make([]int, dim),
		nC:      1,
		centers: make([][]float64, dim),
		bounds:  make([][2]float64, dim),
	}
	for d, h := range widths {
		if len(h) == 0 {
			return nil, fmt.Errorf("mesh: axis %d has no cells", d)
		}
		m.vnC[d] = len(h)
		m.nC *= len(h)
		m.centers[d] = make([]float64, len(h))
		x := origin[d]
		for i, w := range h {
			if w <= 0 {
				return nil, fmt.Errorf("mesh: axis %d cell %d has width %g, want > 0", d, i, w)
			}
			m.centers[d][i] = x + w/2
			x += w
		}
		m.bounds[d] = [2]float64{origin[d], x}
	}
	return m, nil
}

// NewUniformTensorMesh builds a tensor mesh of unit-width cells with the
// origin at zero, n cells along each of the given axes.
func NewUniformTensorMesh(n ...int) (*TensorMesh, error) {
	widths := make([][]float64, len(n))
	for d, nc := range n {
		if nc < 1 {
			return nil, fmt.Errorf("mesh: axis %d has %d cells, want >= 1", d, nc)
		}
		w := make([]float64, nc)
		for i := range w {
			w[i] = 1
		}
		widths[d] = w
	}
	return NewTensorMesh(make([]float64, len(n)), widths...)
}

// NumCells returns the total number of cells.
func (m *TensorMesh) NumCells() int { return m.nC }

// Dim returns the spatial dimension.
func (m *TensorMesh) Dim() int { return m.dim }

// AxisCells returns the number of cells along each axis. The slice is a
// copy; callers may keep it.
func (m *TensorMesh) AxisCells() []int {
	vnC := make([]int, m.dim)
	copy(vnC, m.vnC)
	return vnC
}

// AxisCenters returns the cell-center coordinates along one axis.
func (m *TensorMesh) AxisCenters(axis int) []float64 {
	c := make([]float64, len(m.centers[axis]))
	copy(c, m.centers[axis])
	return c
}

// CellCenters returns the (NumCells x Dim) cell-center table in flat cell
// order, first axis fastest.
func (m *TensorMesh) CellCenters() *mat.Dense {
	cc := mat.NewDense(m.nC, m.dim, nil)
	for p := 0; p < m.nC; p++ {
		rem := p
		for d := 0; d < m.dim; d++ {
			cc.Set(p, d, m.centers[d][rem%m.vnC[d]])
			rem /= m.vnC[d]
		}
	}
	return cc
}

// axisWeight holds the per-axis interpolation stencil for one point: one or
// two centers with their weights.
type axisWeight struct {
	idx [2]int
	w   [2]float64
	n   int
}

// weightsAlong locates x among the centers of one axis. Between two centers
// it returns the linear pair; beyond the outer centers it clamps to the
// nearest one.
func (m *TensorMesh) weightsAlong(d int, x float64) axisWeight {
	c := m.centers[d]
	i := sort.SearchFloat64s(c, x)
	switch {
	case i == 0:
		return axisWeight{idx: [2]int{0, 0}, w: [2]float64{1, 0}, n: 1}
	case i == len(c):
		return axisWeight{idx: [2]int{len(c) - 1, 0}, w: [2]float64{1, 0}, n: 1}
	}
	t := (x - c[i-1]) / (c[i] - c[i-1])
	return axisWeight{idx: [2]int{i - 1, i}, w: [2]float64{1 - t, t}, n: 2}
}

// InterpolationMatrix builds the sparse (len(points) x NumCells) multilinear
// interpolation matrix from this mesh's cell centers onto the given points.
// Each row holds at most 2^Dim entries and sums to one unless the point lies
// outside the mesh and zerosOutside is true, in which case the row is zero.
func (m *TensorMesh) InterpolationMatrix(points *mat.Dense, zerosOutside bool) (mat.Matrix, error) {
	if points == nil {
		return nil, fmt.Errorf("mesh: nil points")
	}
	nPts, dim := points.Dims()
	if dim != m.dim {
		return nil, fmt.Errorf("mesh: points have %d columns, want %d", dim, m.dim)
	}

	var rows, cols []int
	var data []float64
	aw := make([]axisWeight, m.dim)
	for p := 0; p < nPts; p++ {
		outside := false
		for d := 0; d < m.dim; d++ {
			x := points.At(p, d)
			if x < m.bounds[d][0] || x > m.bounds[d][1] {
				outside = true
				if x < m.bounds[d][0] {
					x = m.bounds[d][0]
				} else {
					x = m.bounds[d][1]
				}
			}
			aw[d] = m.weightsAlong(d, x)
		}
		if outside && zerosOutside {
			continue
		}
		for mask := 0; mask < 1<<m.dim; mask++ {
			w := 1.0
			flat := 0
			stride := 1
			skip := false
			for d := 0; d < m.dim; d++ {
				sel := (mask >> d) & 1
				if sel >= aw[d].n {
					skip = true
					break
				}
				w *= aw[d].w[sel]
				flat += aw[d].idx[sel] * stride
				stride *= m.vnC[d]
			}
			if skip || w == 0 {
				continue
			}
			rows = append(rows, p)
			cols = append(cols, flat)
			data = append(data, w)
		}
	}
	return sparse.NewCOO(nPts, m.nC, rows, cols, data).ToCSR(), nil
}

// String summarizes the mesh.
func (m *TensorMesh) String() string {
	s := fmt.Sprintf("TensorMesh %dD, vnC=%v, nC=%d, extent", m.dim, m.vnC, m.nC)
	for d := 0; d < m.dim; d++ {
		if d > 0 {
			s += " x"
		}
		s += fmt.Sprintf(" [%g, %g]", m.bounds[d][0], m.bounds[d][1])
	}
	return s
}
