package linop

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Kron returns the Kronecker product a⊗b as a sparse matrix: entry
// a(i,j)·b(k,l) lands at row i·rb+k, column j·cb+l. Only nonzero entries
// are stored, so structured block operators stay cheap even when one
// factor is a dense replication pattern.
func Kron(a, b mat.Matrix) *sparse.CSR {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	var (
		rows, cols []int
		data       []float64
	)
	eachNonZero(a, func(i, j int, va float64) {
		eachNonZero(b, func(k, l int, vb float64) {
			rows = append(rows, i*br+k)
			cols = append(cols, j*bc+l)
			data = append(data, va*vb)
		})
	})
	return sparse.NewCOO(ar*br, ac*bc, rows, cols, data).ToCSR()
}

// OnesColumn returns an n×1 column of ones, the replication block used by
// extrusion-style operators.
func OnesColumn(n int) *sparse.CSR {
	rows := make([]int, n)
	cols := make([]int, n)
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = i
		data[i] = 1
	}
	return sparse.NewCOO(n, 1, rows, cols, data).ToCSR()
}

// eachNonZero visits the nonzero entries of m, using the sparse fast path
// when the matrix supports it.
func eachNonZero(m mat.Matrix, fn func(i, j int, v float64)) {
	if nz, ok := m.(mat.NonZeroDoer); ok {
		nz.DoNonZero(fn)
		return
	}
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				fn(i, j, v)
			}
		}
	}
}
