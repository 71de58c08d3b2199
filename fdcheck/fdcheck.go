// Package fdcheck verifies Jacobians against finite differences with a
// Taylor-remainder convergence test.
//
// For a differentiable f with Jacobian J, the first-order remainder
// ||f(x+h*dx) - f(x) - h*J*dx|| shrinks like h^2 as h goes to zero, while
// the plain difference ||f(x+h*dx) - f(x)|| shrinks like h. Check walks h
// down a decade ladder, fits the remainder's convergence order by
// regression, and passes when the order is close enough to 2, or when the
// remainder sits at the round-off floor as it does for exactly linear maps.
package fdcheck

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/invgeo/modelmap/linop"
)

// Func evaluates a transform and its Jacobian at x.
type Func func(x []float64) ([]float64, linop.Operator)

// CFunc evaluates a complex-codomain transform and its Jacobian at x.
type CFunc func(x []float64) ([]complex128, linop.ComplexOperator)

const (
	defaultSteps = 7
	defaultTol   = 0.85
	defaultEps   = 1.e-10
)

// Options configures a derivative check. A nil Options selects all
// defaults.
type Options struct {
	Steps    int        // step sizes h = 10^-1 ... 10^-Steps (default 7)
	Tol      float64    // pass when the fitted order >= Tol*2 (default 0.85)
	Eps      float64    // relative round-off floor for the exact short-circuit (default 1e-10)
	Rand     *rand.Rand // perturbation source (default the shared global source)
	Dx       []float64  // perturbation direction (default standard normal)
	Out      io.Writer  // convergence table destination (default os.Stdout)
	PlotFile string     // when set, save a log-log convergence plot here
}

func (o *Options) withDefaults() Options {
	var opt Options
	if o != nil {
		opt = *o
	}
	if opt.Steps <= 0 {
		opt.Steps = defaultSteps
	}
	if opt.Tol <= 0 {
		opt.Tol = defaultTol
	}
	if opt.Eps <= 0 {
		opt.Eps = defaultEps
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	return opt
}

// Result holds the convergence ladder of one check.
type Result struct {
	H     []float64 // step sizes
	E0    []float64 // plain differences ||f(x+h*dx) - f(x)||
	E1    []float64 // first-order remainders ||f(x+h*dx) - f(x) - h*J*dx||
	Order float64   // fitted slope of log E1 against log h
	Exact bool      // E1 stayed at the round-off floor
}

// String renders the convergence table with per-decade orders.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s %12s %14s %14s %8s\n", "step", "h", "E0", "E1", "order")
	for i := range r.H {
		if i == 0 || r.E1[i] == 0 || r.E1[i-1] == 0 {
			fmt.Fprintf(&b, "%4d %12.3e %14.6e %14.6e %8s\n", i, r.H[i], r.E0[i], r.E1[i], "-")
			continue
		}
		ord := math.Log10(r.E1[i-1]/r.E1[i]) / math.Log10(r.H[i-1]/r.H[i])
		fmt.Fprintf(&b, "%4d %12.3e %14.6e %14.6e %8.3f\n", i, r.H[i], r.E0[i], r.E1[i], ord)
	}
	if r.Exact {
		fmt.Fprintf(&b, "derivative matches to round-off (max E1 = %.3e)\n", floats.Max(r.E1))
	} else {
		fmt.Fprintf(&b, "fitted order %.3f\n", r.Order)
	}
	return b.String()
}

// Check verifies the Jacobian of f at x0. The convergence table goes to the
// option's writer; a failed check returns the Result together with a
// descriptive error.
func Check(f Func, x0 []float64, opt *Options) (*Result, error) {
	return run(func(x []float64) ([]float64, func([]float64) []float64) {
		v, op := f(x)
		if op == nil {
			return v, nil
		}
		return v, op.MulVec
	}, x0, opt)
}

// CheckComplex verifies the Jacobian of a complex-codomain f at x0.
func CheckComplex(f CFunc, x0 []float64, opt *Options) (*Result, error) {
	return run(func(x []float64) ([]complex128, func([]float64) []complex128) {
		v, op := f(x)
		if op == nil {
			return v, nil
		}
		return v, op.MulVec
	}, x0, opt)
}

// scalar ranges over the two codomain kinds the checker handles.
type scalar interface {
	float64 | complex128
}

func run[T scalar](f func(x []float64) ([]T, func([]float64) []T), x0 []float64, opt *Options) (*Result, error) {
	o := opt.withDefaults()
	if len(x0) == 0 {
		return nil, fmt.Errorf("fdcheck: empty evaluation point")
	}
	dx := o.Dx
	if dx == nil {
		dx = randomDir(len(x0), o.Rand)
	} else if len(dx) != len(x0) {
		return nil, fmt.Errorf("fdcheck: dx length %d, want %d", len(dx), len(x0))
	}

	f0, jmul := f(x0)
	if jmul == nil {
		return nil, fmt.Errorf("fdcheck: nil derivative operator")
	}
	jdx := jmul(dx)
	if len(jdx) != len(f0) {
		return nil, fmt.Errorf("fdcheck: derivative has %d rows, function value has %d", len(jdx), len(f0))
	}

	res := &Result{
		H:  make([]float64, o.Steps),
		E0: make([]float64, o.Steps),
		E1: make([]float64, o.Steps),
	}
	scale := norm(f0)
	if scale == 0 {
		scale = 1
	}
	xh := make([]float64, len(x0))
	r0 := make([]T, len(f0))
	r1 := make([]T, len(f0))
	for i := 0; i < o.Steps; i++ {
		h := math.Pow(10, -float64(i+1))
		floats.AddScaledTo(xh, x0, h, dx)
		fh, _ := f(xh)
		if len(fh) != len(f0) {
			return nil, fmt.Errorf("fdcheck: value length changed from %d to %d", len(f0), len(fh))
		}
		for k := range f0 {
			r0[k] = fh[k] - f0[k]
			r1[k] = r0[k] - mulReal(h, jdx[k])
		}
		res.H[i] = h
		res.E0[i] = norm(r0)
		res.E1[i] = norm(r1)
	}

	for i, e := range res.E1 {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			fmt.Fprint(o.Out, res)
			return res, fmt.Errorf("fdcheck: non-finite remainder at h = %.1e", res.H[i])
		}
	}

	// Linear maps drive the remainder straight to round-off; there is no
	// order to fit.
	exact := true
	for _, e := range res.E1 {
		if e > o.Eps*scale {
			exact = false
			break
		}
	}
	var positive int
	for _, e := range res.E1 {
		if e > 0 {
			positive++
		}
	}
	if exact || positive < 2 {
		res.Exact = true
		fmt.Fprint(o.Out, res)
		if err := plotIfAsked(res, &o); err != nil {
			return res, err
		}
		return res, nil
	}

	lh := make([]float64, 0, o.Steps)
	le := make([]float64, 0, o.Steps)
	for i := range res.H {
		if res.E1[i] > 0 {
			lh = append(lh, math.Log10(res.H[i]))
			le = append(le, math.Log10(res.E1[i]))
		}
	}
	_, slope := stat.LinearRegression(lh, le, nil, false)
	res.Order = slope
	fmt.Fprint(o.Out, res)
	if err := plotIfAsked(res, &o); err != nil {
		return res, err
	}
	if slope < o.Tol*2 {
		return res, fmt.Errorf("fdcheck: convergence order %.3f, want at least %.3f", slope, o.Tol*2)
	}
	return res, nil
}

func plotIfAsked(r *Result, o *Options) error {
	if o.PlotFile == "" {
		return nil
	}
	return r.savePlot(o.PlotFile)
}

// randomDir draws a standard-normal perturbation direction.
func randomDir(n int, rnd *rand.Rand) []float64 {
	draw := rand.NormFloat64
	if rnd != nil {
		draw = rnd.NormFloat64
	}
	dx := make([]float64, n)
	for i := range dx {
		dx[i] = draw()
	}
	return dx
}

// norm is the Euclidean norm over either scalar kind.
func norm[T scalar](v []T) float64 {
	s := 0.0
	for _, x := range v {
		switch x := any(x).(type) {
		case float64:
			s += x * x
		case complex128:
			s += real(x)*real(x) + imag(x)*imag(x)
		}
	}
	return math.Sqrt(s)
}

// mulReal scales a value of either kind by a real factor.
func mulReal[T scalar](a float64, v T) T {
	switch x := any(v).(type) {
	case float64:
		return any(a * x).(T)
	case complex128:
		return any(complex(a, 0) * x).(T)
	}
	panic("fdcheck: unreachable")
}
