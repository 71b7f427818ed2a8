package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portsrepo "github.com/webemergencia/petty_cash_app/internal/core/ports/repositories"
)

// PgxReferenceRepository resolves sessions, users, products and registers.
type PgxReferenceRepository struct {
	BaseRepository
}

// newPgxReferenceRepository creates a new reference repository.
func newPgxReferenceRepository(pool *pgxpool.Pool) *PgxReferenceRepository {
	return &PgxReferenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReferenceRepository = (*PgxReferenceRepository)(nil)

// FindSessionsByIDs retrieves sessions regardless of their opening date.
func (r *PgxReferenceRepository) FindSessionsByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashSession, error) {
	sessions := make(map[int64]domain.CashSession, len(ids))
	if len(ids) == 0 {
		return sessions, nil
	}

	query := `SELECT ` + sessionColumns + ` FROM "CashSession" WHERE id = ANY($1)`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying sessions by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session: %w", err)
		}
		sessions[session.ID] = session
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// FindUsersByIDs retrieves user display names.
func (r *PgxReferenceRepository) FindUsersByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error) {
	users := make(map[string]domain.UserRef, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT id::text, COALESCE(name, '') FROM "User" WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying users by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.UserRef
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// FindProductsByIDs retrieves product names and SKUs.
func (r *PgxReferenceRepository) FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.ProductRef, error) {
	products := make(map[string]domain.ProductRef, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT id::text, COALESCE(name, ''), COALESCE(sku, '') FROM "Product" WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying products by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.ProductRef
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU); err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// FindCashRegistersByIDs retrieves cash register names.
func (r *PgxReferenceRepository) FindCashRegistersByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashRegisterRef, error) {
	registers := make(map[int64]domain.CashRegisterRef, len(ids))
	if len(ids) == 0 {
		return registers, nil
	}

	rows, err := r.Pool.Query(ctx, `SELECT id, COALESCE(name, '') FROM "CashRegister" WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying cash registers by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.CashRegisterRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning cash register: %w", err)
		}
		registers[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash registers: %w", err)
	}
	return registers, nil
}

// GetFilterOptions lists active users and registers and the span of session
// opening dates, all from one snapshot.
func (r *PgxReferenceRepository) GetFilterOptions(ctx context.Context) (*domain.ReportFilterOptions, error) {
	opts := &domain.ReportFilterOptions{
		Users:         []domain.UserRef{},
		CashRegisters: []domain.CashRegisterRef{},
	}

	err := r.WithReadOnlyTx(ctx, func(tx pgx.Tx) error {
		users, err := collectUserRefs(ctx, tx)
		if err != nil {
			return err
		}
		opts.Users = users

		registers, err := collectCashRegisterRefs(ctx, tx)
		if err != nil {
			return err
		}
		opts.CashRegisters = registers

		var earliest, latest *time.Time
		if err := tx.QueryRow(ctx, `SELECT MIN("openedAt"), MAX("openedAt") FROM "CashSession"`).Scan(&earliest, &latest); err != nil {
			return fmt.Errorf("error querying session date range: %w", err)
		}
		if earliest != nil && latest != nil {
			opts.DateRange = &domain.DateRange{
				Earliest: domain.DayKey(earliest.UTC()),
				Latest:   domain.DayKey(latest.UTC()),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func collectUserRefs(ctx context.Context, tx pgx.Tx) ([]domain.UserRef, error) {
	rows, err := tx.Query(ctx, `SELECT id::text, COALESCE(name, '') FROM "User" WHERE "isActive" = true ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("error querying active users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserRef, error) {
		var u domain.UserRef
		err := row.Scan(&u.ID, &u.Name)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning active users: %w", err)
	}
	return users, nil
}

func collectCashRegisterRefs(ctx context.Context, tx pgx.Tx) ([]domain.CashRegisterRef, error) {
	rows, err := tx.Query(ctx, `SELECT id, COALESCE(name, '') FROM "CashRegister" WHERE "isActive" = true ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying active cash registers: %w", err)
	}
	registers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashRegisterRef, error) {
		var c domain.CashRegisterRef
		err := row.Scan(&c.ID, &c.Name)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning active cash registers: %w", err)
	}
	return registers, nil
}
