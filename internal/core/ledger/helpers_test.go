package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	"github.com/webemergencia/petty_cash_app/internal/core/ledger"
)

var day1 = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return day1.Add(time.Duration(minutes) * time.Minute)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func session(id int64, opening string, status domain.SessionStatus, openedAt time.Time) domain.CashSession {
	return domain.CashSession{
		ID:            id,
		OpeningAmount: dec(opening),
		Status:        status,
		UserID:        "user-1",
		OpenedAt:      openedAt,
	}
}

func sessions(list ...domain.CashSession) map[int64]domain.CashSession {
	m := make(map[int64]domain.CashSession, len(list))
	for _, s := range list {
		m[s.ID] = s
	}
	return m
}

func expense(id, sessionID int64, amount string, createdAt time.Time) domain.ExpenseEvent {
	return domain.ExpenseEvent{ID: id, SessionID: sessionID, Amount: dec(amount), Description: "gasto", CreatedAt: createdAt}
}

func purchaseTotal(id, sessionID int64, total string, createdAt time.Time) domain.PurchaseEvent {
	return domain.PurchaseEvent{ID: id, SessionID: sessionID, TotalAmount: decPtr(total), CreatedAt: createdAt}
}

func purchaseUnits(id, sessionID int64, qty, unitPrice string, createdAt time.Time) domain.PurchaseEvent {
	return domain.PurchaseEvent{ID: id, SessionID: sessionID, Quantity: decPtr(qty), UnitPrice: decPtr(unitPrice), CreatedAt: createdAt}
}

func build(t *testing.T, src ledger.Sources) *ledger.Ledger {
	t.Helper()
	l, _, err := ledger.Build(src, ledger.References{}, domain.ReportFilter{}, ledger.BalancePolicy{})
	if err != nil {
		t.Fatalf("build ledger: %v", err)
	}
	return l
}

func balances(entries []domain.Transaction) []string {
	out := make([]string, len(entries))
	for i, tx := range entries {
		out[i] = tx.RunningBalance.String()
	}
	return out
}

func ids(entries []domain.Transaction) []string {
	out := make([]string, len(entries))
	for i, tx := range entries {
		out[i] = tx.ID
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "expected %s, got %s %v", want, got.String(), msgAndArgs)
}
