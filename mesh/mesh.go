// Package mesh defines the mesh contract consumed by the mapping package and
// provides a tensor-product mesh implementation of it.
package mesh

import "gonum.org/v1/gonum/mat"

// Mesh is the discretization a mapping is defined on. Mappings read only its
// cell counts and geometry; they never mutate it.
type Mesh interface {
	// NumCells returns the total number of cells.
	NumCells() int
	// AxisCells returns the number of cells along each axis.
	AxisCells() []int
	// Dim returns the spatial dimension.
	Dim() int
	// CellCenters returns the (NumCells x Dim) table of cell-center
	// coordinates, one row per cell in flat cell order.
	CellCenters() *mat.Dense
	// InterpolationMatrix builds the (len(points) x NumCells) matrix that
	// interpolates a cell-centered field onto the given points, one row per
	// point. Points outside the mesh get a zero row when zerosOutside is
	// true, and are clamped onto the mesh otherwise.
	InterpolationMatrix(points *mat.Dense, zerosOutside bool) (mat.Matrix, error)
}
