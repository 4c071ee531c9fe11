package store

import (
	"errors"
	"fmt"
)

// Common store errors used across both backends.
var (
	// ErrStorage is the root of all backend I/O and transaction failures.
	// A wrapped ErrStorage means the failed operation had zero observable
	// effect on the transactional backend, and best-effort-only semantics
	// on the file backend.
	ErrStorage = errors.New("storage failure")

	// ErrAccountNotFound indicates that the requested account does not
	// exist in the snapshot.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailExists indicates that an account with the given email
	// already exists.
	ErrEmailExists = errors.New("email already exists")

	// ErrPreferencesNotFound indicates that no preferences record exists
	// for the account.
	ErrPreferencesNotFound = errors.New("preferences not found")
)

// StorageError carries backend context for a failed store operation while
// remaining matchable via errors.Is(err, ErrStorage).
type StorageError struct {
	Backend   string // "file" or "postgres"
	Operation string // "read", "write", "update"
	Err       error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Backend, e.Operation, e.Err)
}

// Unwrap supports errors.Is/errors.As.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches StorageError against the ErrStorage sentinel.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps a backend failure with its backend and operation.
func NewStorageError(backend, operation string, err error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Err: err}
}
