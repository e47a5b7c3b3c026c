package pgsql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
)

// BaseRepository carries the shared connection pool and the transaction
// helpers every pgsql repository builds its atomic operations on.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin opens a database transaction on the shared pool.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin database transaction", err)
	}
	return tx, nil
}

// Commit finishes the transaction, making all of its effects visible at once.
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit database transaction", err)
	}
	return nil
}

// Rollback abandons the transaction. It is safe to defer past a Commit;
// rolling back a finished transaction is a no-op. Failures are logged rather
// than returned since a deferred rollback has no caller left to handle them.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back database transaction",
			slog.String("error", err.Error()))
	}
}
