package tableau

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestBuild(t *testing.T) {
	tab, err := Build("Maximize 8x1 + 10x2 + 7x3", []string{
		"x1 + 3x2 + 2x3 <= 10",
		"- x1 - 5x2 - x3 >= -8",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x2", "x3", "e1", "e2"}, tab.Variables)
	assert.Equal(t, 3, tab.Decision)
	assert.Equal(t, []float64{8, 10, 7}, tab.Costs)
	assert.True(t, mat.Equal(mat.NewDense(2, 5, []float64{
		1, 3, 2, 1, 0,
		1, 5, 1, 0, 1,
	}), tab.A))
	assert.True(t, mat.Equal(mat.NewVecDense(2, []float64{10, 8}), tab.B))
	assert.True(t, mat.Equal(mat.NewVecDense(6, []float64{-8, -10, -7, 0, 0, 0}), tab.Z))
	assert.Equal(t, []int{3, 4}, tab.Basic)
	assert.Equal(t, []string{"e1", "e2"}, tab.BasicVariables())
	assert.Equal(t, []float64{0, 0, 0, 10, 8}, tab.Solution)
	assert.Equal(t, 0.0, tab.Value())
	assert.True(t, tab.Feasible(DefaultTolerance))
	assert.False(t, tab.Optimal(DefaultTolerance))
}

func TestBuildMergesAndWidens(t *testing.T) {
	tab, err := Build("Maximize x1 + 2x1 - x2", []string{
		"x1 + y + y <= 4",
		"z - x2 <= 1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"x1", "x2", "y", "z", "e1", "e2"}, tab.Variables)
	assert.Equal(t, []float64{3, -1, 0, 0}, tab.Costs)
	assert.True(t, mat.Equal(mat.NewDense(2, 6, []float64{
		1, 0, 2, 0, 1, 0,
		0, -1, 0, 1, 0, 1,
	}), tab.A))
}

func TestBuildStrictVariables(t *testing.T) {
	_, err := Build("Maximize x1", []string{"x1 <= 3", "x1 - x2 <= 5"}, WithStrictVariables())
	var ce *ConstraintError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, 1, ce.Index)
	assert.Equal(t, "x1 - x2 <= 5", ce.Constraint)
	assert.True(t, errors.Is(err, ErrUnknownVariable))
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name        string
		objective   string
		constraints []string
		err         error
	}{
		{"dangling sign", "Maximize 3x1 +", []string{"x1 <= 1"}, errDanglingSign},
		{"no operator", "Maximize x1", []string{"x1 4"}, ErrNoRelation},
		{"bad rhs", "Maximize x1", []string{"x1 <= b"}, ErrRHS},
		{"equality", "Maximize x1", []string{"x1 = 4"}, ErrEquality},
		{"infeasible basis", "Maximize x1", []string{"x1 <= 4", "x1 >= 2"}, ErrInfeasibleBasis},
		{"negative rhs", "Maximize x1", []string{"x1 <= -1"}, ErrInfeasibleBasis},
		{"slack name", "Maximize x1 + e2", []string{"x1 <= 1", "e2 <= 1"}, ErrNameCollision},
		{"no constraints", "Maximize x1", nil, ErrEmpty},
		{"nan rhs", "Maximize x1 + x2", []string{"x1 <= NaN", "x2 <= 3"}, ErrRHS},
		{"inf rhs", "Maximize x1", []string{"x1 <= Inf"}, ErrMalformedConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.objective, tt.constraints)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestBuildInfeasibleBasisNamesConstraint(t *testing.T) {
	_, err := Build("Maximize x1", []string{"x1 <= 4", "x1 >= 2"})
	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Index)
	assert.Equal(t, "x1 >= 2", ce.Constraint)
}

func TestBuildParseErrorIsReachable(t *testing.T) {
	_, err := Build("Maximize x1", []string{"x1 + 3 x2 <= 1"})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "3", pe.Token)
}

func TestNewTableauShapes(t *testing.T) {
	_, err := NewTableau([]string{"x1"}, []float64{1}, [][]float64{{1, 2}}, []Relation{LessEq}, []float64{1})
	assert.Error(t, err)

	_, err = NewTableau([]string{"x1"}, []float64{1}, [][]float64{{1}}, nil, []float64{1})
	assert.Error(t, err)

	_, err = NewTableau(nil, nil, [][]float64{{1}}, []Relation{LessEq}, []float64{1})
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestFeasible(t *testing.T) {
	tab, err := NewTableau([]string{"x1", "x2"}, []float64{1, 1},
		[][]float64{{1, 1}, {-1, 0}},
		[]Relation{LessEq, GreaterEq},
		[]float64{4, -3})
	require.NoError(t, err)

	copy(tab.Solution, []float64{3, 1, 0, 0})
	assert.True(t, tab.Feasible(1e-9))

	copy(tab.Solution, []float64{3.5, 0, 0.5, 0})
	assert.False(t, tab.Feasible(1e-9))

	copy(tab.Solution, []float64{3, 1.5, 0, 0})
	assert.False(t, tab.Feasible(1e-9))

	copy(tab.Solution, []float64{-1, 0, 0, 0})
	assert.False(t, tab.Feasible(1e-9))
}

func TestBuildMalformedIsNotInfeasible(t *testing.T) {
	_, err := Build("Maximize x1", []string{"x1 >= 2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasibleBasis))
	assert.False(t, errors.Is(err, ErrMalformedConstraint))

	_, err = Build("Maximize x1", []string{"x1 <= 1", "x1 <= NaN"})
	var ce *ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Index)
	assert.True(t, errors.Is(err, ErrMalformedConstraint))
}

func TestNewTableauNotFinite(t *testing.T) {
	names := []string{"x1", "x2"}
	rel := []Relation{LessEq}

	_, err := NewTableau(names, []float64{1, math.NaN()}, [][]float64{{1, 1}}, rel, []float64{1})
	assert.True(t, errors.Is(err, ErrNotFinite), "got %v", err)

	_, err = NewTableau(names, []float64{1, 1}, [][]float64{{math.Inf(1), 1}}, rel, []float64{1})
	assert.True(t, errors.Is(err, ErrNotFinite), "got %v", err)

	_, err = NewTableau(names, []float64{1, 1}, [][]float64{{1, 1}}, rel, []float64{math.NaN()})
	assert.True(t, errors.Is(err, ErrRHS), "got %v", err)

	_, err = NewTableau(names, []float64{1, 1}, [][]float64{{1, 1}}, []Relation{GreaterEq}, []float64{math.Inf(-1)})
	assert.True(t, errors.Is(err, ErrRHS), "got %v", err)
}
