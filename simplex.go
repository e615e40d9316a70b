// Package tableau solves linear maximization problems with the tableau
// Simplex method.
//
// Problems are written as text:
// Maximize 3x1 + 5x2
// Constraints:
// x1 <= 4
// 2x2 <= 12
// 3x1 + 2x2 <= 18
// with every variable implicitly >= 0.
// - Parse the objective and the constraints into coefficient rows
// - Build the standard form: ">=" rows are negated and one slack variable is added per row
// - The slack variables are the initial basis, so every normalized right-hand side must be >= 0
// - Pivot until no reduced cost is negative
// Apply
// - First Danzig criteria: the entering variable has the most negative reduced cost.
// - Minimum ratio test for the leaving variable.
// Ties go to the smallest column, then the smallest row. There is no
// anti-cycling rule, so degenerate problems should set WithMaxIterations.
package tableau

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Result is the outcome of a solve: the final tableau and its solution.
type Result struct {
	*Solution
	Tableau *Tableau
	// Number of pivots.
	Iterations int
}

// BasicVariables returns the basic variable label of every row of the final
// tableau.
func (r *Result) BasicVariables() []string {
	return r.Tableau.BasicVariables()
}

// Solve runs the whole pipeline: parse, build the standard form, pivot to
// optimality and extract the solution.
func Solve(ctx context.Context, objective string, constraints []string, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return solve(ctx, objective, constraints, cfg)
}

func solve(ctx context.Context, objective string, constraints []string, cfg Config) (*Result, error) {
	t, err := build(objective, constraints, cfg)
	if err != nil {
		return nil, err
	}
	iter, err := run(ctx, t, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{Solution: Extract(t), Tableau: t, Iterations: iter}, nil
}

// Simplex Solve a linear problem given as matrices.
// Input follows standard form:
// Maximize z = Σ(1<=j<=n) c_j*x_j
// Constraints:
// 1<=i<=m,  Σ(1<=j<=n) a_i_j*x_j <= b_i
// 1<=j<=n x_j >= 0
// c is a row vector (1, n), A is (m, n) and b is a column vector (m, 1).
// It returns the number of pivots, a column vector (n+m, 1) whose first n
// components are the decision variables and the others the slack of each
// constraint, and the maximum score. maxIter <= 0 means no limit.
func Simplex(c, A, b *mat.Dense, maxIter int) (int, *mat.Dense, float64, error) {
	rows, n := c.Dims()
	if rows > 1 {
		return 0, nil, 0, errors.New("z dims.r > 1")
	}
	m, cols := A.Dims()
	if cols > n {
		return 0, nil, 0, errors.New("A dims.c > z dims.c")
	}
	if br, bc := b.Dims(); br != m || bc != 1 {
		return 0, nil, 0, errors.New("b dims != (A dims.r, 1)")
	}

	names := make([]string, n)
	for j := range names {
		names[j] = "x" + strconv.Itoa(j+1)
	}
	coefs := make([][]float64, m)
	rel := make([]Relation, m)
	for i := range coefs {
		coefs[i] = make([]float64, n)
		copy(coefs[i], A.RawRowView(i))
	}

	t, err := NewTableau(names, mat.Row(nil, 0, c), coefs, rel, mat.Col(nil, 0, b))
	if err != nil {
		return 0, nil, 0, err
	}
	cfg := DefaultConfig()
	if maxIter > 0 {
		cfg.MaxIterations = maxIter
	}
	totalIter, err := run(context.Background(), t, cfg)
	if err != nil {
		return 0, nil, 0, err
	}
	s := Extract(t)
	return totalIter, mat.NewDense(n+m, 1, s.Vector()), s.Objective, nil
}
