package workflow

import "context"

// Step is a single transformation in a pipeline: one input stage in, one
// output stage out, or an error. Steps must be stateless between executions;
// anything they need beyond the stage value is closed over at wiring time.
type Step[In, Out any] func(ctx context.Context, in In) (Out, error)

// Then composes two steps into one. The second step never runs when the
// first fails or when ctx is already cancelled.
func Then[A, B, C any](first Step[A, B], next Step[B, C]) Step[A, C] {
	return func(ctx context.Context, in A) (C, error) {
		var zero C
		mid, err := first(ctx, in)
		if err != nil {
			return zero, err
		}
		if err := ctx.Err(); err != nil {
			return zero, Infra(err)
		}
		return next(ctx, mid)
	}
}

// Run executes a wired pipeline against in and stamps any Failure with the
// process name. Non-Failure errors from a step are classified as
// infrastructure before stamping, so boundaries always see a tagged error.
func Run[In, Out any](ctx context.Context, process string, s Step[In, Out], in In) (Out, error) {
	var zero Out
	if err := ctx.Err(); err != nil {
		return zero, &Failure{Kind: KindInfrastructure, Process: process, Err: err}
	}
	out, err := s(ctx, in)
	if err == nil {
		return out, nil
	}
	f, ok := err.(*Failure)
	if !ok {
		f = Infra(err)
	}
	if f.Process == "" {
		f.Process = process
	}
	return zero, f
}
