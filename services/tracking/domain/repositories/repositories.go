// Package repositories declares the persistence ports of the tracking context.
// The domain layer owns these interfaces; infrastructure implements them.
//
// Queries return option.Option for single lookups, so a missing row is a value
// rather than an error. Repositories expose one mutation per call and are the
// only place persistence errors originate while a command persists.
package repositories

import "errors"

// ErrConflict is returned by a repository mutation when the store rejects it
// on a uniqueness or exclusion constraint.
var ErrConflict = errors.New("conflicting row")

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
