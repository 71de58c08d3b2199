package mapping

import (
	"fmt"
	"math"

	"github.com/invgeo/modelmap/linop"
	"github.com/invgeo/modelmap/mesh"
)

// Exp maps log-property model values onto physical properties, keeping the
// property positive for any real model. The usual choice for conductivity
// and other strictly positive parameters spanning decades.
type Exp struct {
	nP int
}

// NewExp builds the elementwise exponential mapping on a mesh.
func NewExp(msh mesh.Mesh) (*Exp, error) {
	if msh == nil {
		return nil, fmt.Errorf("mapping: nil mesh")
	}
	return &Exp{nP: msh.NumCells()}, nil
}

func (em *Exp) NP() int                 { return em.nP }
func (em *Exp) Shape() (rows, cols int) { return em.nP, em.nP }

// Transform applies exp to every entry.
func (em *Exp) Transform(m []float64) []float64 {
	checkLen("Exp.Transform", len(m), em.nP)
	out := make([]float64, len(m))
	for i, v := range m {
		out[i] = math.Exp(v)
	}
	return out
}

// Deriv returns diag(exp(m)).
func (em *Exp) Deriv(m []float64) linop.Operator {
	checkLen("Exp.Deriv", len(m), em.nP)
	d := make([]float64, len(m))
	for i, v := range m {
		d[i] = math.Exp(v)
	}
	return linop.Diag(d)
}

// Inverse applies log to every entry. Non-positive data pass through to
// math.Log unguarded and come back NaN or -Inf.
func (em *Exp) Inverse(d []float64) ([]float64, error) {
	if len(d) != em.nP {
		return nil, fmt.Errorf("mapping: Exp.Inverse: vector length %d, want %d", len(d), em.nP)
	}
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = math.Log(v)
	}
	return out, nil
}

func (em *Exp) String() string { return fmt.Sprintf("Exp(%d)", em.nP) }
