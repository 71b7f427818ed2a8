package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
)

// DateLayout is the calendar date format used by filters and day buckets.
const DateLayout = "2006-01-02"

// DayKey truncates a timestamp to its calendar date, without any timezone
// conversion.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ReportFilter narrows a transactions report. Zero values mean "no filter".
type ReportFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	SessionID      *int64
	Type           TransactionType
	UserID         string
	CashRegisterID *int64
}

// HasTypeFilter reports whether the filter selects a single transaction type.
func (f ReportFilter) HasTypeFilter() bool {
	return f.Type != "" && f.Type != TransactionTypeAll
}

// TransactionTypeAll is accepted by filters to mean every type.
const TransactionTypeAll TransactionType = "all"

// Validate checks the filter for values no report can satisfy.
func (f ReportFilter) Validate() error {
	if f.Type != "" && f.Type != TransactionTypeAll && !f.Type.IsValid() {
		return fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, f.Type)
	}
	if f.StartDate != nil && f.EndDate != nil && DayKey(*f.StartDate) > DayKey(*f.EndDate) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			apperrors.ErrValidation, DayKey(*f.StartDate), DayKey(*f.EndDate))
	}
	if f.SessionID != nil && *f.SessionID <= 0 {
		return fmt.Errorf("%w: session id must be positive", apperrors.ErrValidation)
	}
	if f.CashRegisterID != nil && *f.CashRegisterID < 0 {
		return fmt.Errorf("%w: cash register id must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// InDateRange reports whether t's calendar date is within the filter's
// inclusive date range.
func (f ReportFilter) InDateRange(t time.Time) bool {
	day := DayKey(t)
	if f.StartDate != nil && day < DayKey(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && day > DayKey(*f.EndDate) {
		return false
	}
	return true
}

// DayBounds returns the timestamps enclosing the filter's date range in loc,
// for use in storage queries. A nil bound means open-ended.
func (f ReportFilter) DayBounds(loc *time.Location) (from, to *time.Time) {
	if f.StartDate != nil {
		s := time.Date(f.StartDate.Year(), f.StartDate.Month(), f.StartDate.Day(), 0, 0, 0, 0, loc)
		from = &s
	}
	if f.EndDate != nil {
		e := time.Date(f.EndDate.Year(), f.EndDate.Month(), f.EndDate.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
		to = &e
	}
	return from, to
}

// DaySummary aggregates the filtered entries of a single calendar day.
type DaySummary struct {
	Transactions int             `json:"transactions"`
	Expenses     decimal.Decimal `json:"expenses"`
	Purchases    decimal.Decimal `json:"purchases"`
	Balance      decimal.Decimal `json:"balance"`
}

// ReportSummary aggregates a filtered view of the ledger.
type ReportSummary struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TotalPurchases    decimal.Decimal `json:"totalPurchases"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	FinalBalance      decimal.Decimal `json:"finalBalance"`
	// InitialBalanceInexact flags that InitialBalance was reconstructed across
	// a clamped history or without the session opening, so it may not match
	// the real balance before the first entry.
	InitialBalanceInexact bool                  `json:"initialBalanceInexact"`
	PeriodicSummary       map[string]DaySummary `json:"periodicSummary"`
}

// ReportView is a filtered projection of the ledger.
type ReportView struct {
	Transactions []Transaction
	Summary      ReportSummary
}

// DateRange is the span of session openings available for reporting.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// ReportFilterOptions lists the values a client can filter a report by.
type ReportFilterOptions struct {
	Users         []UserRef         `json:"users"`
	CashRegisters []CashRegisterRef `json:"cashRegisters"`
	DateRange     *DateRange        `json:"dateRange,omitempty"`
}

// ReportExport is a rendered report artifact.
type ReportExport struct {
	Data        []byte
	Filename    string
	ContentType string
}
