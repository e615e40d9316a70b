package tableau

import (
	"gonum.org/v1/gonum/floats"
)

// Solution is the assignment read off a tableau.
type Solution struct {
	// Variables in tableau order, decision variables first.
	Variables []string
	Values    map[string]float64
	// Objective is Σ c_i*x_i over the decision variables.
	Objective float64
}

// Extract reads the current basic solution of t. It does not modify t.
func Extract(t *Tableau) *Solution {
	s := &Solution{
		Variables: append([]string(nil), t.Variables...),
		Values:    make(map[string]float64, len(t.Variables)),
	}
	for j, name := range t.Variables {
		s.Values[name] = t.Solution[j]
	}
	s.Objective = floats.Dot(t.Costs, t.Solution[:t.Decision])
	return s
}

// Value returns the value of the named variable, 0 when it is unknown.
func (s *Solution) Value(name string) float64 {
	return s.Values[name]
}

// Vector returns the values in Variables order.
func (s *Solution) Vector() []float64 {
	v := make([]float64, len(s.Variables))
	for j, name := range s.Variables {
		v[j] = s.Values[name]
	}
	return v
}
