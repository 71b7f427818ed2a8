package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// Project selects the entries of l matching f and summarizes them. Running
// balances are taken from the frozen ledger as they are; filtering never
// recomputes them.
func Project(l *Ledger, f domain.ReportFilter) domain.ReportView {
	selected := make([]domain.Transaction, 0, len(l.entries))
	for _, tx := range l.entries {
		if Matches(f, tx) {
			selected = append(selected, tx)
		}
	}
	return domain.ReportView{
		Transactions: selected,
		Summary:      summarize(l, selected),
	}
}

// Matches reports whether tx satisfies every predicate of f. The predicates
// are independent, so their order does not affect the result.
func Matches(f domain.ReportFilter, tx domain.Transaction) bool {
	return matchesType(f, tx) &&
		f.InDateRange(tx.CreatedAt) &&
		matchesSession(f, tx) &&
		matchesUser(f, tx) &&
		matchesCashRegister(f, tx)
}

func matchesType(f domain.ReportFilter, tx domain.Transaction) bool {
	return !f.HasTypeFilter() || tx.Type == f.Type
}

func matchesSession(f domain.ReportFilter, tx domain.Transaction) bool {
	return f.SessionID == nil || tx.SessionID == *f.SessionID
}

func matchesUser(f domain.ReportFilter, tx domain.Transaction) bool {
	return f.UserID == "" || tx.UserID == f.UserID
}

func matchesCashRegister(f domain.ReportFilter, tx domain.Transaction) bool {
	return f.CashRegisterID == nil || tx.CashRegisterID == *f.CashRegisterID
}

// summarize aggregates entries, which must be in ledger order.
func summarize(l *Ledger, entries []domain.Transaction) domain.ReportSummary {
	summary := domain.ReportSummary{
		TotalTransactions: len(entries),
		TotalExpenses:     decimal.Zero,
		TotalPurchases:    decimal.Zero,
		TotalAmount:       decimal.Zero,
		InitialBalance:    decimal.Zero,
		FinalBalance:      decimal.Zero,
		PeriodicSummary:   make(map[string]domain.DaySummary),
	}

	for _, tx := range entries {
		day := domain.DayKey(tx.CreatedAt)
		bucket, ok := summary.PeriodicSummary[day]
		if !ok {
			bucket = domain.DaySummary{Expenses: decimal.Zero, Purchases: decimal.Zero}
		}
		bucket.Transactions++

		switch tx.Type {
		case domain.TransactionExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
			bucket.Expenses = bucket.Expenses.Add(tx.Amount)
		case domain.TransactionPurchase:
			summary.TotalPurchases = summary.TotalPurchases.Add(tx.Amount)
			bucket.Purchases = bucket.Purchases.Add(tx.Amount)
		case domain.TransactionOpening, domain.TransactionClosing:
		}

		bucket.Balance = tx.RunningBalance
		summary.PeriodicSummary[day] = bucket
	}
	summary.TotalAmount = summary.TotalExpenses.Add(summary.TotalPurchases)

	if len(entries) == 0 {
		return summary
	}

	first, last := entries[0], entries[len(entries)-1]
	summary.InitialBalance, summary.InitialBalanceInexact = balanceBefore(l, first)
	summary.FinalBalance = last.RunningBalance
	return summary
}

// balanceBefore recovers the session balance immediately before tx from its
// post-application running balance. The reconstruction is flagged inexact
// when the session was clamped at or before tx, or when the session opening
// is missing from the ledger.
func balanceBefore(l *Ledger, tx domain.Transaction) (decimal.Decimal, bool) {
	inexact := tx.BalanceClamped || !l.HasOpening(tx.SessionID)

	switch tx.Type {
	case domain.TransactionOpening:
		return tx.Amount, false
	case domain.TransactionExpense, domain.TransactionPurchase:
		return tx.RunningBalance.Add(tx.Amount), inexact
	case domain.TransactionClosing:
		return tx.RunningBalance, inexact
	default:
		return tx.RunningBalance, true
	}
}
