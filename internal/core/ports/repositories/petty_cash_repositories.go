package repositories

import (
	"context"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// PettyCashSourceRepository reads the raw ledger facts. Implementations apply
// only the date range and session id of the filter; every other criterion is
// evaluated over the balanced ledger.
type PettyCashSourceRepository interface {
	// ListOpenings retrieves the sessions opened within the filter's date range.
	ListOpenings(ctx context.Context, filter domain.ReportFilter) ([]domain.CashSession, error)

	// ListExpenses retrieves the expenses created within the filter's date range.
	ListExpenses(ctx context.Context, filter domain.ReportFilter) ([]domain.ExpenseEvent, error)

	// ListPurchases retrieves the purchases created within the filter's date range.
	ListPurchases(ctx context.Context, filter domain.ReportFilter) ([]domain.PurchaseEvent, error)
}

// ReferenceRepository performs batched lookups of the data needed to label
// ledger entries. Ids that do not exist are simply absent from the result.
type ReferenceRepository interface {
	FindSessionsByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashSession, error)
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error)
	FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.ProductRef, error)
	FindCashRegistersByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashRegisterRef, error)

	// GetFilterOptions lists the active users, cash registers and the span of
	// session opening dates.
	GetFilterOptions(ctx context.Context) (*domain.ReportFilterOptions, error)
}
