package mapping

import (
	"fmt"
	"math/rand"

	"github.com/invgeo/modelmap/fdcheck"
	"github.com/invgeo/modelmap/linop"
)

// Test verifies a map's derivative against finite differences at m. A nil
// model draws a random one of the right length from the option's source.
func Test(mp Map, m []float64, opt *fdcheck.Options) error {
	if mp == nil {
		return fmt.Errorf("mapping: nil map")
	}
	if m == nil {
		m = randomModel(mp.NP(), opt)
	}
	if len(m) != mp.NP() {
		return fmt.Errorf("mapping: model length %d, want %d", len(m), mp.NP())
	}
	_, err := fdcheck.Check(func(x []float64) ([]float64, linop.Operator) {
		return mp.Transform(x), mp.Deriv(x)
	}, m, opt)
	return err
}

// TestComplex is Test for complex-codomain maps.
func TestComplex(mp ComplexMap, m []float64, opt *fdcheck.Options) error {
	if mp == nil {
		return fmt.Errorf("mapping: nil map")
	}
	if m == nil {
		m = randomModel(mp.NP(), opt)
	}
	if len(m) != mp.NP() {
		return fmt.Errorf("mapping: model length %d, want %d", len(m), mp.NP())
	}
	_, err := fdcheck.CheckComplex(func(x []float64) ([]complex128, linop.ComplexOperator) {
		return mp.Transform(x), mp.Deriv(x)
	}, m, opt)
	return err
}

// randomModel draws a standard-normal model vector.
func randomModel(n int, opt *fdcheck.Options) []float64 {
	draw := rand.NormFloat64
	if opt != nil && opt.Rand != nil {
		draw = opt.Rand.NormFloat64
	}
	m := make([]float64, n)
	for i := range m {
		m[i] = draw()
	}
	return m
}
