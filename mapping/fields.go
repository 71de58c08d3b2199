package mapping

import "github.com/invgeo/modelmap/linop"

// FieldsMap transforms a model in the presence of solved fields, for
// property transforms coupled to the physics solution.
type FieldsMap interface {
	// NP returns the number of model parameters the map expects.
	NP() int
	// Transform maps the model given the fields u.
	Transform(u, m []float64) []float64
	// DerivU returns the derivative of Transform with respect to the
	// fields.
	DerivU(u, m []float64) (linop.Operator, error)
	// DerivM returns the derivative of Transform with respect to the
	// model.
	DerivM(u, m []float64) (linop.Operator, error)
}

// UnimplementedFieldsMap is an embeddable base for FieldsMap
// implementations: Transform passes the model through unchanged, and both
// derivatives return ErrNotImplemented until overridden.
type UnimplementedFieldsMap struct {
	NumP int
}

func (um UnimplementedFieldsMap) NP() int { return um.NumP }

// Transform returns a copy of m, ignoring the fields.
func (um UnimplementedFieldsMap) Transform(u, m []float64) []float64 {
	out := make([]float64, len(m))
	copy(out, m)
	return out
}

func (um UnimplementedFieldsMap) DerivU(u, m []float64) (linop.Operator, error) {
	return nil, ErrNotImplemented
}

func (um UnimplementedFieldsMap) DerivM(u, m []float64) (linop.Operator, error) {
	return nil, ErrNotImplemented
}
