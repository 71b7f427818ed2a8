package ledger

import (
	"cmp"
	"slices"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// typeRank orders entries sharing a timestamp: an opening precedes the
// movements of its session and a closing follows them.
func typeRank(t domain.TransactionType) int {
	switch t {
	case domain.TransactionOpening:
		return 0
	case domain.TransactionExpense:
		return 1
	case domain.TransactionPurchase:
		return 2
	case domain.TransactionClosing:
		return 3
	}
	return 4
}

func compareEntries(a, b domain.Transaction) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(typeRank(a.Type), typeRank(b.Type)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SessionID, b.SessionID); c != 0 {
		return c
	}
	return cmp.Compare(a.SourceID, b.SourceID)
}

// sortChronologically sorts entries in place into canonical ledger order. The
// order depends only on entry content, never on the order rows were fetched in.
func sortChronologically(entries []domain.Transaction) {
	slices.SortStableFunc(entries, compareEntries)
}
