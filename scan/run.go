package scan

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/pkmodel/ode"
)

var (
	// ErrNoValues indicates an empty scan range.
	ErrNoValues = errors.New("scan: no values to scan")

	// ErrNilFunc indicates a missing evaluation or builder function.
	ErrNilFunc = errors.New("scan: nil function")
)

// Run evaluates fn for every value with at most limit calls in flight.
func Run[T any](ctx context.Context, values []float64, fn func(ctx context.Context, v float64) (T, error), limit int) ([]T, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if len(values) == 0 {
		return nil, ErrNoValues
	}

	out := make([]T, len(values))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, v := range values {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, v)
			if err != nil {
				return fmt.Errorf("value %g: %w", v, err)
			}
			out[i] = r

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Option configures the scan helpers.
type Option func(*options)

type options struct {
	limit  int
	solver *ode.Options
}

func collect(opts []Option) options {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithLimit bounds the number of concurrent evaluations. Panics if n < 0.
func WithLimit(n int) Option {
	if n < 0 {
		panic("scan: WithLimit(n) requires n >= 0")
	}

	return func(o *options) { o.limit = n }
}

// WithSolver sets the integrator options used by ODE based scans.
func WithSolver(so ode.Options) Option {
	return func(o *options) { o.solver = &so }
}
