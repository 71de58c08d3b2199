package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertCVec compares complex vectors part by part.
func assertCVec(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDeltaf(t, real(want[i]), real(got[i]), tol, "real part %d", i)
		assert.InDeltaf(t, imag(want[i]), imag(got[i]), tol, "imag part %d", i)
	}
}

func TestComplexPackPacksHalves(t *testing.T) {
	cm, err := NewComplexPack(newMesh1D(t, 3), 6)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	assert.Equal(t, 6, cm.NP())
	rows, cols := cm.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 6, cols)

	got := cm.Transform([]float64{1, 2, 3, 4, 5, 6})
	assertCVec(t, []complex128{1 + 4i, 2 + 5i, 3 + 6i}, got, 1.e-14)
}

func TestComplexPackDefaultsToTwoPerCell(t *testing.T) {
	cm, err := NewComplexPack(newMesh1D(t, 4), 0)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	assert.Equal(t, 8, cm.NP())
}

func TestComplexPackRejectsOddSize(t *testing.T) {
	_, err := NewComplexPack(newMesh1D(t, 2), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "even")
}

func TestComplexPackDerivAndAdjoint(t *testing.T) {
	cm, err := NewComplexPack(newMesh1D(t, 2), 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	m := []float64{1, 2, 3, 4}
	d := cm.Deriv(m)
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)

	assertCVec(t, []complex128{5 + 7i, 6 + 8i}, d.MulVec([]float64{5, 6, 7, 8}), 1.e-14)
	assert.InDeltaSlicef(t, []float64{1, 2, 3, 4}, d.AdjMulVec([]complex128{1 + 3i, 2 + 4i}), 1.e-14, "")

	if err := TestComplex(cm, m, quietOptions(8)); err != nil {
		t.Fatalf("Failed derivative check: %v", err)
	}
}

func TestComplexPackInverseRoundTrip(t *testing.T) {
	cm, err := NewComplexPack(newMesh1D(t, 2), 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	m := []float64{0.5, -1, 2, 0.25}
	inv, err := cm.Inverse(cm.Transform(m))
	if err != nil {
		t.Fatalf("Failed to invert: %v", err)
	}
	assert.InDeltaSlicef(t, m, inv, 1.e-14, "")

	_, err = cm.Inverse([]complex128{1})
	require.Error(t, err)
}

func TestComplexChainComposes(t *testing.T) {
	msh := newMesh1D(t, 4)
	em, err := NewExp(msh)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	cm, err := NewComplexPack(msh, 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	cc, err := NewComplexChain(cm, em)
	if err != nil {
		t.Fatalf("Failed to build chain: %v", err)
	}
	assert.Equal(t, 4, cc.NP())
	rows, cols := cc.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 2, cc.Len())

	m := []float64{0, math.Log(2), 0, math.Log(3)}
	got := cc.Transform(m)
	assertCVec(t, []complex128{1 + 1i, 2 + 3i}, got, 1.e-12)

	if err := TestComplex(cc, m, quietOptions(9)); err != nil {
		t.Fatalf("Failed derivative check: %v", err)
	}
}

func TestComplexChainFlattens(t *testing.T) {
	msh := newMesh1D(t, 4)
	em, err := NewExp(msh)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	im, err := NewIdentity(msh)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	cm, err := NewComplexPack(msh, 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}

	cc1, err := NewComplexChain(cm, em)
	if err != nil {
		t.Fatalf("Failed to build chain: %v", err)
	}
	cc2, err := NewComplexChain(cc1, im)
	if err != nil {
		t.Fatalf("Failed to build chain: %v", err)
	}
	assert.Equal(t, 3, cc2.Len())

	m := []float64{0.1, 0.2, 0.3, 0.4}
	want := cc1.Transform(im.Transform(m))
	assertCVec(t, want, cc2.Transform(m), 1.e-14)
}

func TestComplexChainRejectsBadConfig(t *testing.T) {
	msh := newMesh1D(t, 4)
	cm, err := NewComplexPack(msh, 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}

	_, err = NewComplexChain(nil)
	require.Error(t, err, "nil outer map")

	_, err = NewComplexChain(cm)
	require.Error(t, err, "no inner maps")

	em3, err := NewExp(newMesh1D(t, 3))
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	_, err = NewComplexChain(cm, em3)
	require.Error(t, err, "size mismatch")
}

func TestComplexChainInverse(t *testing.T) {
	msh := newMesh1D(t, 4)
	em, err := NewExp(msh)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	cm, err := NewComplexPack(msh, 4)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	cc, err := NewComplexChain(cm, em)
	if err != nil {
		t.Fatalf("Failed to build chain: %v", err)
	}

	m := []float64{-0.2, 0.4, 0.6, -0.8}
	inv, err := cc.Inverse(cc.Transform(m))
	if err != nil {
		t.Fatalf("Failed to invert: %v", err)
	}
	assert.InDeltaSlicef(t, m, inv, 1.e-12, "")

	vm, err := NewVertical1D(msh)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	blocked, err := NewComplexChain(cm, vm)
	if err != nil {
		t.Fatalf("Failed to build chain: %v", err)
	}
	_, err = blocked.Inverse(make([]complex128, 2))
	assert.ErrorIs(t, err, ErrNoInverse)
}
