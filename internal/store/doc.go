// Package store defines the persistence contract for the application state.
// The whole state is read and written as one Snapshot; any invariant that
// spans multiple entities must be expressed inside a single Update call.
// These interfaces abstract the underlying storage mechanism, allowing
// business rules to remain independent of the file or database backend.
package store
