package tableau

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Tableau is the standard form of a maximization problem with one slack
// variable per constraint:
// Maximize z = Σ(1<=j<=n) c_j*x_j
// 1<=i<=m,  Σ(1<=j<=n) a_i_j*x_j + e_i = b_i
// x_j, e_i >= 0
//
// For every row r, column Basic[r] is an identity column across A and Z.
type Tableau struct {
	// Decision variables first, then slacks e1..em.
	Variables []string
	// Number of decision variables.
	Decision int
	// Objective coefficients of the decision variables.
	Costs []float64

	// Matrix (m, n+m)
	A *mat.Dense
	// Column vector (m)
	B *mat.VecDense
	// Objective row (n+m+1): -c, zeros for slacks, then the constant term.
	Z *mat.VecDense

	// Basic[r] is the column of the variable basic in row r.
	Basic []int
	// Value of every variable, in Variables order.
	Solution []float64

	// constraints as given, before sign normalisation
	rows [][]float64
	rel  []Relation
	rhs  []float64
}

// Build parses the objective and constraints and returns the initial tableau.
func Build(objective string, constraints []string, opts ...Option) (*Tableau, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return build(objective, constraints, cfg)
}

func build(objective string, constraints []string, cfg Config) (*Tableau, error) {
	obj, err := ParseObjective(objective)
	if err != nil {
		return nil, err
	}

	var names []string
	index := make(map[string]int)
	var costs []float64
	for _, term := range obj {
		j, ok := index[term.Name]
		if !ok {
			j = len(names)
			index[term.Name] = j
			names = append(names, term.Name)
			costs = append(costs, 0)
		}
		costs[j] += term.Coef
	}

	// first pass: parse every constraint and settle the variable set
	parsed := make([]Constraint, len(constraints))
	for i, s := range constraints {
		c, err := ParseConstraint(s)
		if err != nil {
			return nil, &ConstraintError{Index: i, Constraint: s, Err: err}
		}
		for _, term := range c.Terms {
			if _, ok := index[term.Name]; ok {
				continue
			}
			if cfg.StrictVariables {
				return nil, &ConstraintError{Index: i, Constraint: s, Err: errors.Wrapf(ErrUnknownVariable, "%s", term.Name)}
			}
			index[term.Name] = len(names)
			names = append(names, term.Name)
			costs = append(costs, 0)
		}
		parsed[i] = c
	}

	// second pass: dense rows over the final variable set
	rows := make([][]float64, len(parsed))
	rel := make([]Relation, len(parsed))
	rhs := make([]float64, len(parsed))
	for i, c := range parsed {
		rows[i] = make([]float64, len(names))
		for _, term := range c.Terms {
			rows[i][index[term.Name]] += term.Coef
		}
		rel[i] = c.Relation
		rhs[i] = c.RHS
	}

	t, err := NewTableau(names, costs, rows, rel, rhs)
	if err != nil {
		var ce *ConstraintError
		if errors.As(err, &ce) && ce.Index < len(constraints) {
			ce.Constraint = constraints[ce.Index]
		}
		return nil, err
	}
	cfg.Logger.Print("initial tableau:\n", t)
	return t, nil
}

// NewTableau builds the standard form of max c·x subject to rows[i]·x rel[i] rhs[i].
// A ">=" row is negated into a "<=" row; the resulting right-hand side must be
// non-negative so that the slack variables form a feasible basis.
func NewTableau(names []string, c []float64, rows [][]float64, rel []Relation, rhs []float64) (*Tableau, error) {
	n, m := len(names), len(rows)
	if n == 0 || len(c) != n {
		return nil, errors.Wrapf(ErrEmpty, "%d names for %d costs", n, len(c))
	}
	if m == 0 {
		return nil, errors.Wrap(ErrEmpty, "no constraints")
	}
	if len(rel) != m || len(rhs) != m {
		return nil, errors.Errorf("lp: %d rows, %d relations, %d right-hand sides", m, len(rel), len(rhs))
	}

	for j, cj := range c {
		if !finite(cj) {
			return nil, errors.Wrapf(ErrNotFinite, "cost of %s is %g", names[j], cj)
		}
	}

	variables := make([]string, n, n+m)
	copy(variables, names)
	seen := make(map[string]bool, n)
	for _, name := range names {
		seen[name] = true
	}
	for i := 1; i <= m; i++ {
		slack := "e" + strconv.Itoa(i)
		if seen[slack] {
			return nil, errors.Wrapf(ErrNameCollision, "%s", slack)
		}
		variables = append(variables, slack)
	}

	t := &Tableau{
		Variables: variables,
		Decision:  n,
		Costs:     append([]float64(nil), c...),
		A:         mat.NewDense(m, n+m, nil),
		B:         mat.NewVecDense(m, nil),
		Z:         mat.NewVecDense(n+m+1, nil),
		Basic:     make([]int, m),
		Solution:  make([]float64, n+m),
		rows:      make([][]float64, m),
		rel:       append([]Relation(nil), rel...),
		rhs:       append([]float64(nil), rhs...),
	}

	for i, row := range rows {
		if len(row) != n {
			return nil, errors.Errorf("lp: row %d has %d coefficients, want %d", i, len(row), n)
		}
		for j, v := range row {
			if !finite(v) {
				return nil, &ConstraintError{Index: i, Err: errors.Wrapf(ErrNotFinite, "coefficient of %s is %g", names[j], v)}
			}
		}
		if !finite(rhs[i]) {
			return nil, &ConstraintError{Index: i, Err: errors.Wrapf(ErrRHS, "%g", rhs[i])}
		}
		t.rows[i] = append([]float64(nil), row...)

		reverse := 1.0
		if rel[i] == GreaterEq {
			reverse = -1
		}
		b := reverse*rhs[i] + 0 // no -0
		if b < 0 {
			return nil, &ConstraintError{Index: i, Err: errors.Wrapf(ErrInfeasibleBasis, "normalized right-hand side %g", b)}
		}

		dst := t.A.RawRowView(i)
		floats.ScaleTo(dst[:n], reverse, row)
		dst[n+i] = 1
		t.B.SetVec(i, b)
		t.Basic[i] = n + i
		t.Solution[n+i] = b
	}
	for j, cj := range c {
		t.Z.SetVec(j, -cj)
	}
	return t, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Rows returns the number of constraints.
func (t *Tableau) Rows() int {
	return len(t.Basic)
}

// Cols returns the number of variables, decision and slack.
func (t *Tableau) Cols() int {
	return len(t.Variables)
}

// Value returns the constant term of the objective row, which is the
// objective value of the current basic solution.
func (t *Tableau) Value() float64 {
	return t.Z.AtVec(t.Cols())
}

// BasicVariables returns the name of the basic variable of every row.
func (t *Tableau) BasicVariables() []string {
	labels := make([]string, len(t.Basic))
	for r, col := range t.Basic {
		labels[r] = t.Variables[col]
	}
	return labels
}

// Optimal reports whether no reduced cost is below -tol.
func (t *Tableau) Optimal(tol float64) bool {
	for j := 0; j < t.Cols(); j++ {
		if t.Z.AtVec(j) < -tol {
			return false
		}
	}
	return true
}

// Feasible checks the current solution against the constraints as they were
// given, before any sign normalisation.
func (t *Tableau) Feasible(tol float64) bool {
	x := t.Solution[:t.Decision]
	for _, v := range t.Solution {
		if v < -tol {
			return false
		}
	}
	for i, row := range t.rows {
		lhs := floats.Dot(row, x)
		switch t.rel[i] {
		case GreaterEq:
			if lhs < t.rhs[i]-tol {
				return false
			}
		default:
			if lhs > t.rhs[i]+tol {
				return false
			}
		}
	}
	return true
}

func (t *Tableau) String() string {
	return fmt.Sprintf("basic: %v\nA:\n %v\nb:\n %v\nz:\n %v",
		t.BasicVariables(),
		mat.Formatted(t.A, mat.Prefix(" "), mat.Excerpt(8)),
		mat.Formatted(t.B.T(), mat.Prefix(" "), mat.Excerpt(8)),
		mat.Formatted(t.Z.T(), mat.Prefix(" "), mat.Excerpt(8)),
	)
}
