package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portsrepo "github.com/webemergencia/petty_cash_app/internal/core/ports/repositories"
)

// PgxPettyCashSourceRepository reads openings, expenses and purchases.
type PgxPettyCashSourceRepository struct {
	BaseRepository
}

// newPgxPettyCashSourceRepository creates a new source repository.
func newPgxPettyCashSourceRepository(pool *pgxpool.Pool) *PgxPettyCashSourceRepository {
	return &PgxPettyCashSourceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PettyCashSourceRepository = (*PgxPettyCashSourceRepository)(nil)

// Date bounds are whole UTC calendar days; timestamps are returned in UTC so
// that calendar dates computed from them agree with the bounds.
func sourceBounds(filter domain.ReportFilter) (from, to *time.Time) {
	return filter.DayBounds(time.UTC)
}

const sessionColumns = `id, "openingAmount", status, COALESCE("userId"::text, ''), COALESCE("cashRegisterId", 0), "openedAt"`

// ListOpenings retrieves the sessions opened within the filter's date range.
func (r *PgxPettyCashSourceRepository) ListOpenings(ctx context.Context, filter domain.ReportFilter) ([]domain.CashSession, error) {
	from, to := sourceBounds(filter)
	query := `
		SELECT ` + sessionColumns + `
		FROM "CashSession"
		WHERE "openedAt" IS NOT NULL
			AND ($1::timestamptz IS NULL OR "openedAt" >= $1)
			AND ($2::timestamptz IS NULL OR "openedAt" <= $2)
			AND ($3::bigint IS NULL OR id = $3)
		ORDER BY "openedAt", id
	`

	rows, err := r.Pool.Query(ctx, query, from, to, filter.SessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying session openings: %w", err)
	}
	defer rows.Close()

	sessions := []domain.CashSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning session opening: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session openings: %w", err)
	}
	return sessions, nil
}

// ListExpenses retrieves the expenses created within the filter's date range.
func (r *PgxPettyCashSourceRepository) ListExpenses(ctx context.Context, filter domain.ReportFilter) ([]domain.ExpenseEvent, error) {
	from, to := sourceBounds(filter)
	query := `
		SELECT id, "sessionId", amount, COALESCE(description, ''), category, "createdAt"
		FROM "PettyCashExpense"
		WHERE ($1::timestamptz IS NULL OR "createdAt" >= $1)
			AND ($2::timestamptz IS NULL OR "createdAt" <= $2)
			AND ($3::bigint IS NULL OR "sessionId" = $3)
		ORDER BY "createdAt", id
	`

	rows, err := r.Pool.Query(ctx, query, from, to, filter.SessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.ExpenseEvent{}
	for rows.Next() {
		var e domain.ExpenseEvent
		var category *string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Amount, &e.Description, &category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning expense: %w", err)
		}
		if category != nil && *category != "" {
			e.Category = category
		}
		e.CreatedAt = e.CreatedAt.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}
	return expenses, nil
}

// ListPurchases retrieves the purchases created within the filter's date range.
func (r *PgxPettyCashSourceRepository) ListPurchases(ctx context.Context, filter domain.ReportFilter) ([]domain.PurchaseEvent, error) {
	from, to := sourceBounds(filter)
	query := `
		SELECT id, "sessionId", quantity, "unitPrice", "totalAmount", "productId"::text, "createdAt"
		FROM "PettyCashPurchase"
		WHERE ($1::timestamptz IS NULL OR "createdAt" >= $1)
			AND ($2::timestamptz IS NULL OR "createdAt" <= $2)
			AND ($3::bigint IS NULL OR "sessionId" = $3)
		ORDER BY "createdAt", id
	`

	rows, err := r.Pool.Query(ctx, query, from, to, filter.SessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.PurchaseEvent{}
	for rows.Next() {
		var p domain.PurchaseEvent
		var quantity, unitPrice, total decimal.NullDecimal
		var productID *string
		if err := rows.Scan(&p.ID, &p.SessionID, &quantity, &unitPrice, &total, &productID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning purchase: %w", err)
		}
		p.Quantity = nullDecimalPtr(quantity)
		p.UnitPrice = nullDecimalPtr(unitPrice)
		p.TotalAmount = nullDecimalPtr(total)
		p.ProductID = productID
		p.CreatedAt = p.CreatedAt.UTC()
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}
	return purchases, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.CashSession, error) {
	var s domain.CashSession
	var status string
	if err := row.Scan(&s.ID, &s.OpeningAmount, &status, &s.UserID, &s.CashRegisterID, &s.OpenedAt); err != nil {
		return domain.CashSession{}, err
	}
	s.Status = domain.SessionStatus(strings.ToLower(status))
	s.OpenedAt = s.OpenedAt.UTC()
	return s, nil
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
