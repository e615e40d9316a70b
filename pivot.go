package tableau

import (
	"context"
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

type state int

const (
	improving state = iota
	done
	unbounded
)

func (s state) String() string {
	switch s {
	case improving:
		return "improving"
	case done:
		return "done"
	case unbounded:
		return "unbounded"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EnteringColumn returns the column with the most negative reduced cost,
// the lowest index winning ties. It returns -1 when no reduced cost is below
// -tol, i.e. the tableau is optimal.
func (t *Tableau) EnteringColumn(tol float64) int {
	col := -1
	lowest := -tol
	for j := 0; j < t.Cols(); j++ {
		if v := t.Z.AtVec(j); v < lowest {
			lowest = v
			col = j
		}
	}
	return col
}

// LeavingRow runs the minimum ratio test on column col. Only rows with an
// entry above tol take part; the smallest ratio wins, the lowest row winning
// ties. It returns -1 when no row qualifies, which means the entering
// variable is unbounded.
func (t *Tableau) LeavingRow(col int, tol float64) int {
	row := -1
	best := math.Inf(1)
	for r := 0; r < t.Rows(); r++ {
		a := t.A.At(r, col)
		if a <= tol {
			continue
		}
		ratio := t.B.AtVec(r) / a
		if ratio < -tol {
			continue
		}
		if row == -1 || ratio < best-tol {
			best = ratio
			row = r
		}
	}
	return row
}

// Pivot makes col basic in row with a Gauss-Jordan step over A, B and Z, then
// refreshes the solution vector.
func (t *Tableau) Pivot(row, col int) {
	n := t.Cols()
	pivotRow := t.A.RawRowView(row)
	p := pivotRow[col]

	for j := range pivotRow {
		pivotRow[j] /= p
	}
	pivotRow[col] = 1
	t.B.SetVec(row, t.B.AtVec(row)/p)

	for r := 0; r < t.Rows(); r++ {
		if r == row {
			continue
		}
		dst := t.A.RawRowView(r)
		f := dst[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(dst, -f, pivotRow)
		dst[col] = 0
		t.B.SetVec(r, t.B.AtVec(r)-f*t.B.AtVec(row))
	}

	if f := t.Z.AtVec(col); f != 0 {
		for j := 0; j < n; j++ {
			t.Z.SetVec(j, t.Z.AtVec(j)-f*pivotRow[j])
		}
		t.Z.SetVec(col, 0)
		t.Z.SetVec(n, t.Z.AtVec(n)-f*t.B.AtVec(row))
	}

	t.Basic[row] = col
	t.refresh()
}

func (t *Tableau) refresh() {
	for j := range t.Solution {
		t.Solution[j] = 0
	}
	for r, col := range t.Basic {
		t.Solution[col] = t.B.AtVec(r)
	}
}

func (t *Tableau) step(tol float64) (state, int, int) {
	col := t.EnteringColumn(tol)
	if col < 0 {
		return done, -1, -1
	}
	row := t.LeavingRow(col, tol)
	if row < 0 {
		return unbounded, -1, col
	}
	return improving, row, col
}

// Run pivots t in place until it is optimal. It returns the number of pivots
// performed. An *UnboundedError is returned when an improving column has no
// leaving row, and ErrIterationLimit when the configured cap is reached.
func Run(ctx context.Context, t *Tableau, opts ...Option) (int, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return 0, err
	}
	return run(ctx, t, cfg)
}

func run(ctx context.Context, t *Tableau, cfg Config) (int, error) {
	iter := 0
	for {
		if err := ctx.Err(); err != nil {
			return iter, err
		}

		st, row, col := t.step(cfg.Tolerance)
		switch st {
		case done:
			logf(cfg.Logger, "optimal after %d pivots, z = %g", iter, t.Value())
			return iter, nil
		case unbounded:
			logf(cfg.Logger, "entering variable %s has no leaving row", t.Variables[col])
			return iter, &UnboundedError{Column: col, Variable: t.Variables[col]}
		}

		if cfg.MaxIterations > 0 && iter >= cfg.MaxIterations {
			return iter, errors.Wrapf(ErrIterationLimit, "%d pivots", iter)
		}

		logf(cfg.Logger, "pivot %d: %s enters, %s leaves at ratio %g",
			iter+1, t.Variables[col], t.Variables[t.Basic[row]], t.B.AtVec(row)/t.A.At(row, col))
		t.Pivot(row, col)
		iter++
		cfg.Logger.Print(t)
	}
}
