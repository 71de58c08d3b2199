package mapping

import (
	"fmt"
	"strings"

	"github.com/invgeo/modelmap/linop"
)

// Chain composes maps: Chain(f, g) evaluates f(g(m)). The last map is
// applied first, matching function-composition order.
type Chain struct {
	maps []Map // maps[0] outermost, maps[len(maps)-1] innermost
}

// NewChain composes one or more maps. Nested chains are flattened, so a
// chain never holds another chain as a child. Adjacent maps must agree on
// sizes: each map's parameter count equals the transformed length of the
// map to its right.
func NewChain(maps ...Map) (*Chain, error) {
	if len(maps) == 0 {
		return nil, fmt.Errorf("mapping: empty chain")
	}
	flat := make([]Map, 0, len(maps))
	for _, mp := range maps {
		if mp == nil {
			return nil, fmt.Errorf("mapping: nil map in chain")
		}
		if ch, ok := mp.(*Chain); ok {
			flat = append(flat, ch.maps...)
			continue
		}
		flat = append(flat, mp)
	}
	for i := 0; i+1 < len(flat); i++ {
		rows, _ := flat[i+1].Shape()
		if flat[i].NP() != rows {
			return nil, fmt.Errorf("mapping: chain size mismatch: %v expects %d parameters, %v supplies %d",
				flat[i], flat[i].NP(), flat[i+1], rows)
		}
	}
	return &Chain{maps: flat}, nil
}

// NP returns the parameter count of the innermost map.
func (ch *Chain) NP() int { return ch.maps[len(ch.maps)-1].NP() }

func (ch *Chain) Shape() (rows, cols int) {
	rows, _ = ch.maps[0].Shape()
	return rows, ch.NP()
}

// Len returns the number of composed maps.
func (ch *Chain) Len() int { return len(ch.maps) }

// Maps returns the composed maps, outermost first. The slice is a copy.
func (ch *Chain) Maps() []Map {
	out := make([]Map, len(ch.maps))
	copy(out, ch.maps)
	return out
}

// Transform applies the chain right to left.
func (ch *Chain) Transform(m []float64) []float64 {
	checkLen("Chain.Transform", len(m), ch.NP())
	v := m
	for i := len(ch.maps) - 1; i >= 0; i-- {
		v = ch.maps[i].Transform(v)
	}
	return v
}

// Deriv accumulates the chain rule right to left, evaluating each map's
// derivative at the model transformed up to that point.
func (ch *Chain) Deriv(m []float64) linop.Operator {
	checkLen("Chain.Deriv", len(m), ch.NP())
	var deriv linop.Operator
	v := m
	for i := len(ch.maps) - 1; i >= 0; i-- {
		d := ch.maps[i].Deriv(v)
		if deriv == nil {
			deriv = d
		} else {
			deriv = linop.Mul(d, deriv)
		}
		if i > 0 {
			v = ch.maps[i].Transform(v)
		}
	}
	return deriv
}

// Inverse inverts the chain left to right. The error names the first child
// that cannot invert.
func (ch *Chain) Inverse(d []float64) ([]float64, error) {
	rows, _ := ch.Shape()
	if len(d) != rows {
		return nil, fmt.Errorf("mapping: Chain.Inverse: vector length %d, want %d", len(d), rows)
	}
	v := d
	for _, mp := range ch.maps {
		var err error
		v, err = mp.Inverse(v)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", mp, err)
		}
	}
	return v, nil
}

func (ch *Chain) String() string {
	parts := make([]string, len(ch.maps))
	for i, mp := range ch.maps {
		parts[i] = fmt.Sprint(mp)
	}
	return "Chain(" + strings.Join(parts, " * ") + ")"
}

// ComplexChain is a chain whose outermost map has a complex codomain: a
// real inner chain feeding a ComplexMap.
type ComplexChain struct {
	outer ComplexMap
	inner *Chain
}

// NewComplexChain composes a complex-codomain outer map with one or more
// real inner maps. Inner chains are flattened as in NewChain; a nested
// ComplexChain as the outer map contributes its own inner maps first.
func NewComplexChain(outer ComplexMap, inner ...Map) (*ComplexChain, error) {
	if outer == nil {
		return nil, fmt.Errorf("mapping: nil map in chain")
	}
	if cc, ok := outer.(*ComplexChain); ok {
		inner = append(cc.inner.Maps(), inner...)
		outer = cc.outer
	}
	if len(inner) == 0 {
		return nil, fmt.Errorf("mapping: empty chain")
	}
	ch, err := NewChain(inner...)
	if err != nil {
		return nil, err
	}
	rows, _ := ch.Shape()
	if outer.NP() != rows {
		return nil, fmt.Errorf("mapping: chain size mismatch: %v expects %d parameters, %v supplies %d",
			outer, outer.NP(), ch, rows)
	}
	return &ComplexChain{outer: outer, inner: ch}, nil
}

// NP returns the parameter count of the innermost map.
func (cc *ComplexChain) NP() int { return cc.inner.NP() }

func (cc *ComplexChain) Shape() (rows, cols int) {
	rows, _ = cc.outer.Shape()
	return rows, cc.NP()
}

// Len returns the number of composed maps, counting the outer map.
func (cc *ComplexChain) Len() int { return 1 + cc.inner.Len() }

// Transform applies the inner chain, then the outer map.
func (cc *ComplexChain) Transform(m []float64) []complex128 {
	return cc.outer.Transform(cc.inner.Transform(m))
}

// Deriv composes the outer derivative, evaluated at the inner transform,
// with the inner chain derivative.
func (cc *ComplexChain) Deriv(m []float64) linop.ComplexOperator {
	di := cc.inner.Deriv(m)
	do := cc.outer.Deriv(cc.inner.Transform(m))
	return linop.MulComplex(do, di)
}

// Inverse inverts the outer map, then the inner chain.
func (cc *ComplexChain) Inverse(d []complex128) ([]float64, error) {
	v, err := cc.outer.Inverse(d)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", cc.outer, err)
	}
	return cc.inner.Inverse(v)
}

func (cc *ComplexChain) String() string {
	parts := make([]string, 0, 1+len(cc.inner.maps))
	parts = append(parts, fmt.Sprint(cc.outer))
	for _, mp := range cc.inner.maps {
		parts = append(parts, fmt.Sprint(mp))
	}
	return "ComplexChain(" + strings.Join(parts, " * ") + ")"
}
