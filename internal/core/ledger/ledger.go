// Package ledger reconstructs the petty-cash ledger from session openings,
// expenses and purchases, computes one authoritative running balance per
// session and projects filtered views over it.
//
// The pipeline is Assemble -> SynthesizeClosings -> Calculate -> Project.
// Balances are computed exactly once, over the unfiltered entry set, and the
// resulting Ledger is never modified afterwards.
package ledger

import (
	"slices"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// Ledger is a balanced, chronologically ordered and frozen set of entries.
type Ledger struct {
	entries        []domain.Transaction
	openedSessions map[int64]struct{}
}

// Entries returns a copy of the ledger entries in chronological order.
func (l *Ledger) Entries() []domain.Transaction {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// HasOpening reports whether the ledger contains the opening of sessionID.
func (l *Ledger) HasOpening(sessionID int64) bool {
	_, ok := l.openedSessions[sessionID]
	return ok
}

// Build runs the whole reconstruction: assembly, closing synthesis and the
// single balance sweep. Assembly warnings are returned for the caller to log.
func Build(src Sources, refs References, window domain.ReportFilter, policy BalancePolicy) (*Ledger, []Warning, error) {
	entries, warnings := Assemble(src, refs, window)

	withClosings, err := SynthesizeClosings(entries, src.Sessions, policy)
	if err != nil {
		return nil, warnings, err
	}

	l, err := Calculate(withClosings, policy)
	if err != nil {
		return nil, warnings, err
	}
	return l, warnings, nil
}
