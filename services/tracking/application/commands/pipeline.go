// Package commands implements the tracking context's mutation handlers.
//
// Every handler runs the same pipeline:
//
//	resolve references -> validate invariants -> persist -> result
//
// Each gate can end the pipeline with a typed failure; later gates then do not
// run. Only the single repository mutation in the persist gate is converted
// into the family's Unknown variant. Lookup errors and context cancellation
// are returned as the handler's error.
//
// Handlers hold only their collaborators and may be built per call.
package commands

import (
	"context"
	"errors"

	"github.com/ghuser/hourglass/pkg/option"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/services/tracking/domain/repositories"
	"github.com/ghuser/hourglass/services/tracking/domain/services"
)

// lookup fetches one aggregate by key.
type lookup[K, T any] func(ctx context.Context, key K) (option.Option[T], error)

// resolve fetches key and fails with missing() when it is absent.
func resolve[K, T any, E error](ctx context.Context, key K, get lookup[K, T], missing func() E) (result.Result[T, E], error) {
	found, err := get(ctx, key)
	if err != nil {
		return result.Result[T, E]{}, err
	}
	return option.Match(found,
		result.Success[T, E],
		func() result.Result[T, E] { return result.Failure[T](missing()) },
	), nil
}

// exists is resolve as a validation gate.
func exists[K, T any, E error](key K, get lookup[K, T], missing func() E) result.Check[E] {
	return func(ctx context.Context) (result.Result[result.Unit, E], error) {
		r, err := resolve(ctx, key, get, missing)
		if err != nil {
			return result.Result[result.Unit, E]{}, err
		}
		return result.Map(r, func(T) result.Unit { return result.Unit{} }), nil
	}
}

// when builds a gate from an optional reference. An absent reference passes.
func when[T any, E error](o option.Option[T], check func(T) result.Check[E]) result.Check[E] {
	return option.Match(o, check, func() result.Check[E] { return pass[E] })
}

func pass[E error](context.Context) (result.Result[result.Unit, E], error) {
	return result.Ok[E](), nil
}

// unique lists the siblings in scope and fails with taken(conflict) for the
// first one conflicts reports true for.
func unique[T any, E error](list func(context.Context) ([]T, error), conflicts func(T) bool, taken func(T) E) result.Check[E] {
	return func(ctx context.Context) (result.Result[result.Unit, E], error) {
		siblings, err := list(ctx)
		if err != nil {
			return result.Result[result.Unit, E]{}, err
		}
		return option.Match(services.FindFirst(siblings, conflicts),
			func(conflict T) result.Result[result.Unit, E] { return result.Failure[result.Unit](taken(conflict)) },
			result.Ok[E],
		), nil
	}
}

// uniqueName fails when a sibling other than self already uses name.
func uniqueName[ID comparable, T services.Named[ID], E error](list func(context.Context) ([]T, error), name string, self ID, taken func(T) E) result.Check[E] {
	return func(ctx context.Context) (result.Result[result.Unit, E], error) {
		siblings, err := list(ctx)
		if err != nil {
			return result.Result[result.Unit, E]{}, err
		}
		return option.Match(services.FindNameConflict(siblings, name, self),
			func(conflict T) result.Result[result.Unit, E] { return result.Failure[result.Unit](taken(conflict)) },
			result.Ok[E],
		), nil
	}
}

// persist runs the single repository mutation of a pipeline. A constraint
// conflict reported by the store becomes conflict(); any other error becomes
// unknown(err).
func persist[V any, E error](ctx context.Context, v V, op func(context.Context) error, conflict func() E, unknown func(error) E) (result.Result[V, E], error) {
	return result.Try(ctx, v, op, func(err error) E {
		if conflict != nil && errors.Is(err, repositories.ErrConflict) {
			return conflict()
		}
		return unknown(err)
	})
}
