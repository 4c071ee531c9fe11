package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	// Registers the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/store"
)

// stateLockKey is the store-wide advisory lock key. Every Update takes this
// transaction-scoped lock first, which serializes all writers against the
// entire state space rather than any single row.
const stateLockKey int64 = 0x73696d7665727365 // "simverse"

// StateStore implements store.StateStore using PostgreSQL as the storage
// backend.
type StateStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure StateStore implements store.StateStore.
var _ store.StateStore = (*StateStore)(nil)

// NewStateStore creates a PostgreSQL implementation of store.StateStore.
// It accepts a database connection that should be initialized and managed by
// the caller.
func NewStateStore(db *sql.DB, logger *slog.Logger) *StateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateStore{db: db, logger: logger}
}

// Open opens a database/sql connection through the pgx stdlib driver and
// verifies it with a ping.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Read implements store.StateStore.Read. Reads run outside the advisory lock:
// the transactional backend never exposes an in-progress replace, so a plain
// read always observes the last committed snapshot.
func (s *StateStore) Read(ctx context.Context) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := runInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var loadErr error
		snap, loadErr = loadSnapshot(ctx, tx)
		return loadErr
	})
	if err != nil {
		return nil, store.NewStorageError("postgres", "read", err)
	}
	return snap, nil
}

// Write implements store.StateStore.Write. The replace happens under the
// store-wide lock inside one transaction.
func (s *StateStore) Write(ctx context.Context, snap *domain.Snapshot) error {
	err := runInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := acquireStateLock(ctx, tx); err != nil {
			return err
		}
		return replaceSnapshot(ctx, tx, snap)
	})
	if err != nil {
		return store.NewStorageError("postgres", "write", err)
	}
	return nil
}

// Update implements store.StateStore.Update. The advisory lock is held for
// the duration of the transaction, so concurrent callers block until commit
// or rollback; a failed mutation has zero observable effect.
func (s *StateStore) Update(ctx context.Context, fn store.MutatorFunc) error {
	var mutatorErr error
	err := runInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := acquireStateLock(ctx, tx); err != nil {
			return err
		}

		snap, err := loadSnapshot(ctx, tx)
		if err != nil {
			return err
		}

		if err := fn(snap); err != nil {
			// Remember the mutator's own error so it reaches the
			// caller unwrapped; the rollback still happens.
			mutatorErr = err
			return err
		}

		return replaceSnapshot(ctx, tx, snap)
	})
	if err != nil {
		if mutatorErr != nil && errors.Is(err, mutatorErr) {
			return mutatorErr
		}
		return store.NewStorageError("postgres", "update", err)
	}
	return nil
}

// acquireStateLock takes the store-wide mutual-exclusion token. The lock is
// transaction-scoped: PostgreSQL releases it automatically at commit or
// rollback.
func acquireStateLock(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", stateLockKey); err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	return nil
}
