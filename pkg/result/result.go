// Package result provides a two-track value for command outcomes: a success
// value V or a typed domain error E, never both.
//
// Expected rejections travel as Failure values. Faults that are not part of the
// domain (a cancelled context, an unreachable database during a lookup) travel
// beside the Result as a plain error. Steps are chained with Then, which runs the
// next step only while the pipeline is still on the success track and no fault
// has been seen:
//
//	r, err := result.Then(ctx, result.Success[Cmd, E](cmd), nil, resolve)
//	r2, err := result.Then(ctx, r, err, validate)
//	return result.Then(ctx, r2, err, persist)
package result

import (
	"context"
	"errors"
)

// Result holds either a success value or a domain error.
// The zero Result is only ever returned together with a non-nil fault.
type Result[V any, E error] struct {
	value V
	err   E
	ok    bool
}

// Unit is the success value of steps that only validate.
type Unit struct{}

// Success wraps v on the success track.
func Success[V any, E error](v V) Result[V, E] {
	return Result[V, E]{value: v, ok: true}
}

// Failure wraps e on the failure track.
func Failure[V any, E error](e E) Result[V, E] {
	return Result[V, E]{err: e}
}

// Ok is Success(Unit{}).
func Ok[E error]() Result[Unit, E] {
	return Success[Unit, E](Unit{})
}

// Match folds r into R with one branch per track.
func Match[V any, E error, R any](r Result[V, E], onSuccess func(V) R, onFailure func(E) R) R {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// Do is Match for branches that only have effects.
func Do[V any, E error](r Result[V, E], onSuccess func(V), onFailure func(E)) {
	if r.ok {
		onSuccess(r.value)
		return
	}
	onFailure(r.err)
}

// Map transforms the success value and passes failures through.
func Map[V, U any, E error](r Result[V, E], f func(V) U) Result[U, E] {
	if !r.ok {
		return Failure[U](r.err)
	}
	return Success[U, E](f(r.value))
}

// Bind chains a synchronous step. f only runs on the success track.
func Bind[V, U any, E error](r Result[V, E], f func(V) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Failure[U](r.err)
	}
	return f(r.value)
}

// Step is one asynchronous stage of a command pipeline.
type Step[V, U any, E error] func(ctx context.Context, v V) (Result[U, E], error)

// Then chains step after r. A non-nil fault is returned untouched, a failure is
// passed through re-typed, and a cancelled ctx stops the chain with ctx.Err()
// before step runs.
func Then[V, U any, E error](ctx context.Context, r Result[V, E], fault error, step Step[V, U, E]) (Result[U, E], error) {
	if fault != nil {
		return Result[U, E]{}, fault
	}
	if !r.ok {
		return Failure[U](r.err), nil
	}
	if err := ctx.Err(); err != nil {
		return Result[U, E]{}, err
	}
	return step(ctx, r.value)
}

// Check is a validation gate that either passes (Ok) or fails with E.
type Check[E error] func(ctx context.Context) (Result[Unit, E], error)

// Validate runs checks left to right and returns Success(v) when all pass.
// The first failure or fault ends the run; later checks are not called.
func Validate[V any, E error](ctx context.Context, v V, checks ...Check[E]) (Result[V, E], error) {
	for _, check := range checks {
		if err := ctx.Err(); err != nil {
			return Result[V, E]{}, err
		}
		r, err := check(ctx)
		if err != nil {
			return Result[V, E]{}, err
		}
		if !r.ok {
			return Failure[V](r.err), nil
		}
	}
	return Success[V, E](v), nil
}

// Try runs op, the single side-effecting call of a pipeline, and returns
// Success(v) when it succeeds. An error from op becomes Failure(onError(err)),
// except context cancellation, which is returned as a fault. op is not called
// when ctx is already done.
func Try[V any, E error](ctx context.Context, v V, op func(ctx context.Context) error, onError func(error) E) (Result[V, E], error) {
	if err := ctx.Err(); err != nil {
		return Result[V, E]{}, err
	}
	if err := op(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result[V, E]{}, err
		}
		return Failure[V](onError(err)), nil
	}
	return Success[V, E](v), nil
}
