// Package services contains stateless domain services for the tracking bounded
// context. They operate on already-fetched domain values and never touch
// persistence; command handlers supply the data.
package services

import (
	"github.com/ghuser/hourglass/pkg/option"
)

// Named is implemented by aggregates whose name is unique within a scope.
type Named[ID comparable] interface {
	Identity() ID
	DisplayName() string
}

// FindFirst returns the first element for which match reports true.
// The scan is linear.
func FindFirst[T any](items []T, match func(T) bool) option.Option[T] {
	for _, item := range items {
		if match(item) {
			return option.Some(item)
		}
	}
	return option.None[T]()
}

// FindNameConflict returns the first sibling other than self whose name equals
// name. Comparison is exact: no trimming and no case folding.
func FindNameConflict[ID comparable, T Named[ID]](siblings []T, name string, self ID) option.Option[T] {
	return FindFirst(siblings, func(s T) bool {
		return s.Identity() != self && s.DisplayName() == name
	})
}
