package store

import (
	"context"

	"github.com/simverse/simverse-api/internal/domain"
)

// MutatorFunc is applied to the current snapshot under the store's
// mutual-exclusion guarantee. It may mutate the snapshot in place; returning
// an error aborts the update and leaves the persisted state untouched.
// Derived results are returned through closure capture (see UpdateResult for
// a typed convenience wrapper).
type MutatorFunc func(s *domain.Snapshot) error

// StateStore is the single shared mutable resource of the application. It
// persists the four collections (accounts, preferences, progress, history)
// as one atomic unit.
//
// Implementations guarantee that no two concurrent Update calls interleave
// their read/mutate/persist steps against the same backing store, and that a
// failed Update has zero observable effect.
type StateStore interface {
	// Read returns the full current state of all four collections. The
	// returned snapshot is the caller's to keep; it never aliases the
	// store's internal state.
	Read(ctx context.Context) (*domain.Snapshot, error)

	// Write atomically replaces the entire persisted state.
	Write(ctx context.Context, s *domain.Snapshot) error

	// Update reads the current snapshot, applies fn, and persists the
	// mutated snapshot, all under the store-wide mutual exclusion. If fn
	// returns an error the update is abandoned and the error is returned
	// unwrapped, so callers can branch on their own sentinel errors.
	Update(ctx context.Context, fn MutatorFunc) error
}

// UpdateResult runs fn inside a single Update call and returns its derived
// result. It exists because mutators routinely compute something while
// mutating (a created record, an unlock decision) and Go interfaces cannot
// carry a generic method.
func UpdateResult[T any](ctx context.Context, s StateStore, fn func(*domain.Snapshot) (T, error)) (T, error) {
	var result T
	err := s.Update(ctx, func(snap *domain.Snapshot) error {
		var innerErr error
		result, innerErr = fn(snap)
		return innerErr
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
