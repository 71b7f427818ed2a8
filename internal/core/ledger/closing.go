package ledger

import (
	"fmt"
	"slices"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// SynthesizeClosings appends one closing entry per closed session. The
// closing takes the balance and timestamp of the session's chronologically
// last entry; that balance comes from folding the session on its own, so the
// full-ledger sweep still runs only once, in Calculate.
//
// Sessions that already carry a closing, or that have no entries at all, are
// left alone. The input slice is not modified.
func SynthesizeClosings(entries []domain.Transaction, sessions map[int64]domain.CashSession, policy BalancePolicy) ([]domain.Transaction, error) {
	bySession := make(map[int64][]domain.Transaction)
	hasClosing := make(map[int64]bool)
	for _, tx := range entries {
		if tx.Type == domain.TransactionClosing {
			hasClosing[tx.SessionID] = true
			continue
		}
		bySession[tx.SessionID] = append(bySession[tx.SessionID], tx)
	}

	closedIDs := make([]int64, 0, len(sessions))
	for id, session := range sessions {
		if session.IsClosed() && !hasClosing[id] {
			closedIDs = append(closedIDs, id)
		}
	}
	slices.Sort(closedIDs)

	out := slices.Clone(entries)
	for _, id := range closedIDs {
		sessionEntries := bySession[id]
		if len(sessionEntries) == 0 {
			continue
		}
		sortChronologically(sessionEntries)

		balanced, _, err := fold(sessionEntries, policy)
		if err != nil {
			return nil, fmt.Errorf("failed to balance session %d for closing: %w", id, err)
		}
		out = append(out, newClosing(id, balanced[len(balanced)-1]))
	}
	return out, nil
}

func newClosing(sessionID int64, last domain.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:               fmt.Sprintf("%s-%d", domain.TransactionClosing, sessionID),
		SourceID:         sessionID,
		SessionID:        sessionID,
		SessionNumber:    sessionNumber(sessionID),
		Type:             domain.TransactionClosing,
		Amount:           last.RunningBalance,
		Description:      fmt.Sprintf("Cierre de caja - Sesión %d", sessionID),
		UserID:           last.UserID,
		UserName:         last.UserName,
		CashRegisterID:   last.CashRegisterID,
		CashRegisterName: last.CashRegisterName,
		CreatedAt:        last.CreatedAt,
		RunningBalance:   last.RunningBalance,
	}
}
