package linop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// kronDense computes the Kronecker product entry by entry for comparison.
func kronDense(a, b mat.Matrix) *mat.Dense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, a.At(i, j)*b.At(k, l))
				}
			}
		}
	}
	return out
}

func TestKronMatchesDefinition(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 0, 3})
	b := mat.NewDense(2, 2, []float64{0, 1, 1, 0})

	got := Kron(a, b)
	r, c := got.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)

	want := kronDense(a, b)
	assert.InDeltaSlicef(t, want.RawMatrix().Data, mat.DenseCopyOf(got).RawMatrix().Data, 1e-14, "")
}

func TestKronWithSparseFactors(t *testing.T) {
	eye := Eye(3).Matrix()
	col := OnesColumn(2)

	got := Kron(eye, col)
	r, c := got.Dims()
	require.Equal(t, 6, r)
	require.Equal(t, 3, c)

	// Each model entry j feeds rows 2j and 2j+1 of the output.
	want := kronDense(eye, col)
	assert.InDeltaSlicef(t, want.RawMatrix().Data, mat.DenseCopyOf(got).RawMatrix().Data, 1e-14, "")
}

func TestOnesColumn(t *testing.T) {
	col := OnesColumn(3)
	r, c := col.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 1, c)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, col.At(i, 0))
	}
}

func TestKronReplicationStructure(t *testing.T) {
	// kron(I, ones) applied to m repeats every entry of m.
	op := FromMatrix(Kron(Eye(3).Matrix(), OnesColumn(4)))
	y := op.MulVec([]float64{5, 6, 7})
	assert.InDeltaSlicef(t, []float64{5, 5, 5, 5, 6, 6, 6, 6, 7, 7, 7, 7}, y, 1e-14, "")
}
