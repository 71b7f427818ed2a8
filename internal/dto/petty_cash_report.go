package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// TransactionsReportQuery holds the query parameters accepted by the
// transactions report endpoints.
type TransactionsReportQuery struct {
	StartDate      string `form:"startDate" json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate        string `form:"endDate" json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	SessionID      *int64 `form:"sessionId" json:"sessionId" binding:"omitempty,gt=0"`
	Type           string `form:"type" json:"type" binding:"omitempty,oneof=opening expense purchase closing all"`
	UserID         string `form:"userId" json:"userId" binding:"omitempty,max=64"`
	CashRegisterID *int64 `form:"cashRegisterId" json:"cashRegisterId" binding:"omitempty,gte=0"`
}

// ExportReportQuery adds the output format to the report query.
// An empty format means xlsx.
type ExportReportQuery struct {
	TransactionsReportQuery
	Format string `form:"format" json:"format" binding:"omitempty,max=8"`
}

// ToReportFilter converts the query into a domain filter. Dates are parsed as
// UTC calendar days.
func (q TransactionsReportQuery) ToReportFilter() (domain.ReportFilter, error) {
	filter := domain.ReportFilter{
		SessionID:      q.SessionID,
		Type:           domain.TransactionType(q.Type),
		UserID:         q.UserID,
		CashRegisterID: q.CashRegisterID,
	}

	if q.StartDate != "" {
		start, err := time.ParseInLocation(domain.DateLayout, q.StartDate, time.UTC)
		if err != nil {
			return domain.ReportFilter{}, fmt.Errorf("%w: invalid startDate %q", apperrors.ErrValidation, q.StartDate)
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := time.ParseInLocation(domain.DateLayout, q.EndDate, time.UTC)
		if err != nil {
			return domain.ReportFilter{}, fmt.Errorf("%w: invalid endDate %q", apperrors.ErrValidation, q.EndDate)
		}
		filter.EndDate = &end
	}

	return filter, filter.Validate()
}

// TransactionResponse is one ledger entry as returned by the API.
type TransactionResponse struct {
	ID               string           `json:"id"`
	SessionID        int64            `json:"sessionId"`
	SessionNumber    string           `json:"sessionNumber"`
	Type             string           `json:"type"`
	Amount           decimal.Decimal  `json:"amount"`
	Description      string           `json:"description"`
	Category         *string          `json:"category,omitempty"`
	ProductName      *string          `json:"productName,omitempty"`
	ProductSKU       *string          `json:"productSku,omitempty"`
	Quantity         *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice        *decimal.Decimal `json:"unitPrice,omitempty"`
	UserID           string           `json:"userId"`
	UserName         string           `json:"userName"`
	CashRegisterID   int64            `json:"cashRegisterId"`
	CashRegisterName string           `json:"cashRegisterName"`
	CostCenterName   *string          `json:"costCenterName,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	RunningBalance   decimal.Decimal  `json:"runningBalance"`
}

// DaySummaryResponse aggregates a single day of the report.
type DaySummaryResponse struct {
	Transactions int             `json:"transactions"`
	Expenses     decimal.Decimal `json:"expenses"`
	Purchases    decimal.Decimal `json:"purchases"`
	Balance      decimal.Decimal `json:"balance"`
}

// ReportSummaryResponse aggregates the whole report.
type ReportSummaryResponse struct {
	TotalTransactions     int                           `json:"totalTransactions"`
	TotalExpenses         decimal.Decimal               `json:"totalExpenses"`
	TotalPurchases        decimal.Decimal               `json:"totalPurchases"`
	TotalAmount           decimal.Decimal               `json:"totalAmount"`
	InitialBalance        decimal.Decimal               `json:"initialBalance"`
	FinalBalance          decimal.Decimal               `json:"finalBalance"`
	InitialBalanceInexact bool                          `json:"initialBalanceInexact"`
	PeriodicSummary       map[string]DaySummaryResponse `json:"periodicSummary"`
}

// TransactionsReportResponse is the structured result of a report request.
// Data and Summary are only set when Success is true.
type TransactionsReportResponse struct {
	Success bool                   `json:"success"`
	Data    []TransactionResponse  `json:"data"`
	Summary *ReportSummaryResponse `json:"summary,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// FilterOptionsResponse lists the values a report can be filtered by.
type FilterOptionsResponse struct {
	Success       bool                     `json:"success"`
	Users         []domain.UserRef         `json:"users"`
	CashRegisters []domain.CashRegisterRef `json:"cashRegisters"`
	DateRange     *domain.DateRange        `json:"dateRange,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

// ToTransactionResponse maps a ledger entry to its API shape.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		SessionID:        t.SessionID,
		SessionNumber:    t.SessionNumber,
		Type:             string(t.Type),
		Amount:           t.Amount,
		Description:      t.Description,
		Category:         t.Category,
		ProductName:      t.ProductName,
		ProductSKU:       t.ProductSKU,
		Quantity:         t.Quantity,
		UnitPrice:        t.UnitPrice,
		UserID:           t.UserID,
		UserName:         t.UserName,
		CashRegisterID:   t.CashRegisterID,
		CashRegisterName: t.CashRegisterName,
		CostCenterName:   t.CostCenterName,
		CreatedAt:        t.CreatedAt,
		RunningBalance:   t.RunningBalance,
	}
}

// ToTransactionsReportResponse converts a report view into a successful
// response. Data is never nil so an empty report serializes as [].
func ToTransactionsReportResponse(view *domain.ReportView) TransactionsReportResponse {
	data := make([]TransactionResponse, 0, len(view.Transactions))
	for _, t := range view.Transactions {
		data = append(data, ToTransactionResponse(t))
	}

	s := view.Summary
	periodic := make(map[string]DaySummaryResponse, len(s.PeriodicSummary))
	for day, d := range s.PeriodicSummary {
		periodic[day] = DaySummaryResponse{
			Transactions: d.Transactions,
			Expenses:     d.Expenses,
			Purchases:    d.Purchases,
			Balance:      d.Balance,
		}
	}

	return TransactionsReportResponse{
		Success: true,
		Data:    data,
		Summary: &ReportSummaryResponse{
			TotalTransactions:     s.TotalTransactions,
			TotalExpenses:         s.TotalExpenses,
			TotalPurchases:        s.TotalPurchases,
			TotalAmount:           s.TotalAmount,
			InitialBalance:        s.InitialBalance,
			FinalBalance:          s.FinalBalance,
			InitialBalanceInexact: s.InitialBalanceInexact,
			PeriodicSummary:       periodic,
		},
	}
}

// ToFilterOptionsResponse converts filter options into a successful response.
func ToFilterOptionsResponse(opts *domain.ReportFilterOptions) FilterOptionsResponse {
	resp := FilterOptionsResponse{
		Success:       true,
		Users:         []domain.UserRef{},
		CashRegisters: []domain.CashRegisterRef{},
	}
	if opts == nil {
		return resp
	}
	if opts.Users != nil {
		resp.Users = opts.Users
	}
	if opts.CashRegisters != nil {
		resp.CashRegisters = opts.CashRegisters
	}
	resp.DateRange = opts.DateRange
	return resp
}
