package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/simverse/simverse-api/internal/platform/logger"
)

// txFn is a function that executes within a database transaction. The
// transaction is committed if the function returns nil, or rolled back if it
// returns an error.
type txFn func(ctx context.Context, tx *sql.Tx) error

// runInTransaction executes fn within a transaction, rolling back on error
// or panic and committing otherwise. A rolled-back transaction has zero
// observable effect on the persisted state.
func runInTransaction(ctx context.Context, db *sql.DB, fn txFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback(); txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rollbackErr, err)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
