package tableau

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Program is a problem in text form.
type Program struct {
	Objective   string
	Constraints []string
}

// SolveAll solves independent programs concurrently, at most GOMAXPROCS at a
// time. Results are in input order. The first failure cancels the remaining
// solves and is returned with the index of its program.
func SolveAll(ctx context.Context, programs []Program, opts ...Option) ([]*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(programs))
	p := pool.New().
		WithMaxGoroutines(runtime.GOMAXPROCS(0)).
		WithErrors().
		WithContext(ctx).
		WithFirstError().
		WithCancelOnError()
	for i, prog := range programs {
		i, prog := i, prog
		p.Go(func(ctx context.Context) error {
			res, err := solve(ctx, prog.Objective, prog.Constraints, cfg)
			if err != nil {
				return errors.Wrapf(err, "program %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
