package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// BalancePolicy controls how movements are applied to a session balance.
type BalancePolicy struct {
	// AllowOverdraft lets a session balance go negative. When false, an
	// expense or purchase larger than the balance floors it at zero.
	AllowOverdraft bool
}

// sessionState is the per-session accumulator of the balance fold.
type sessionState struct {
	balance decimal.Decimal
	clamped bool
}

// apply returns the session state after tx. For a closing the state is read,
// not moved.
func (p BalancePolicy) apply(state sessionState, tx domain.Transaction) (sessionState, error) {
	switch tx.Type {
	case domain.TransactionOpening:
		return sessionState{balance: tx.Amount, clamped: state.clamped}, nil
	case domain.TransactionExpense, domain.TransactionPurchase:
		next := state.balance.Sub(tx.Amount)
		if next.IsNegative() && !p.AllowOverdraft {
			return sessionState{balance: decimal.Zero, clamped: true}, nil
		}
		return sessionState{balance: next, clamped: state.clamped}, nil
	case domain.TransactionClosing:
		return state, nil
	default:
		return state, fmt.Errorf("%w: %q on entry %s", apperrors.ErrUnknownTransactionType, tx.Type, tx.ID)
	}
}

// fold walks entries already in canonical order and returns copies carrying
// their running balance, plus the final state of every session seen.
func fold(sorted []domain.Transaction, policy BalancePolicy) ([]domain.Transaction, map[int64]sessionState, error) {
	states := make(map[int64]sessionState)
	out := make([]domain.Transaction, len(sorted))

	for i, tx := range sorted {
		next, err := policy.apply(states[tx.SessionID], tx)
		if err != nil {
			return nil, nil, err
		}
		states[tx.SessionID] = next

		tx.RunningBalance = next.balance
		tx.BalanceClamped = next.clamped
		out[i] = tx
	}
	return out, states, nil
}

// Calculate performs the single authoritative balance sweep over the complete,
// unfiltered entry set (closings included) and freezes the result. The input
// slice is not modified.
func Calculate(entries []domain.Transaction, policy BalancePolicy) (*Ledger, error) {
	sorted := slices.Clone(entries)
	sortChronologically(sorted)

	balanced, _, err := fold(sorted, policy)
	if err != nil {
		return nil, err
	}

	opened := make(map[int64]struct{})
	for _, tx := range balanced {
		if tx.Type == domain.TransactionOpening {
			opened[tx.SessionID] = struct{}{}
		}
	}

	return &Ledger{entries: balanced, openedSessions: opened}, nil
}
