// Package option models "found / not found" without nil.
//
// The only way to read the value is Match, which takes a branch for each case:
//
//	name := option.Match(o,
//	    func(p *models.Project) string { return p.Name },
//	    func() string { return "<none>" },
//	)
package option

// Option holds either one value (Some) or nothing (None). The zero value is None.
type Option[T any] struct {
	value T
	some  bool
}

// Some wraps v as a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr returns Some(*p) for a non-nil p and None otherwise.
// Repositories that scan nullable columns use it at the persistence edge.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Match folds o into R, calling onSome with the value or onNone when empty.
func Match[T, R any](o Option[T], onSome func(T) R, onNone func() R) R {
	if o.some {
		return onSome(o.value)
	}
	return onNone()
}

// Do is Match for branches that only have effects.
func Do[T any](o Option[T], onSome func(T), onNone func()) {
	if o.some {
		onSome(o.value)
		return
	}
	onNone()
}

// Map transforms the value of a present Option.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	return Match(o,
		func(v T) Option[U] { return Some(f(v)) },
		None[U],
	)
}

// ToPtr returns a pointer to a copy of the value, or nil when empty. It is for
// the edges that speak in nil: nullable columns and optional JSON fields.
func ToPtr[T any](o Option[T]) *T {
	return Match(o,
		func(v T) *T { return &v },
		func() *T { return nil },
	)
}

// Filter keeps the value only when keep reports true for it.
func Filter[T any](o Option[T], keep func(T) bool) Option[T] {
	return Match(o,
		func(v T) Option[T] {
			if keep(v) {
				return o
			}
			return None[T]()
		},
		None[T],
	)
}
