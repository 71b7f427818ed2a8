package pgsql

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// WithReadOnlyTx runs fn inside a read-only repeatable-read transaction so
// that every query in fn observes the same snapshot. The transaction is
// always rolled back; nothing is ever written.
func (r *BaseRepository) WithReadOnlyTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin read-only transaction", err)
	}
	defer func() {
		// The snapshot was read-only; a failed rollback loses nothing.
		_ = tx.Rollback(ctx)
	}()

	return fn(tx)
}
