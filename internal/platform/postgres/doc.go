// Package postgres provides the PostgreSQL implementation of
// store.StateStore. Every Update runs in a single transaction that first
// acquires a store-wide advisory lock, reloads the snapshot, applies the
// mutator, and fully replaces all four tables' contents before committing.
// It handles database connections, query execution, and mapping between
// domain entities and database records.
package postgres
