package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates ledger entries.
type TransactionType string

const (
	TransactionOpening  TransactionType = "opening"
	TransactionExpense  TransactionType = "expense"
	TransactionPurchase TransactionType = "purchase"
	TransactionClosing  TransactionType = "closing"
)

// TransactionTypes lists every known type in ledger order.
var TransactionTypes = []TransactionType{
	TransactionOpening,
	TransactionExpense,
	TransactionPurchase,
	TransactionClosing,
}

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionOpening, TransactionExpense, TransactionPurchase, TransactionClosing:
		return true
	}
	return false
}

// Transaction is one entry of the reconstructed petty-cash ledger. It is
// derived from a session opening, an expense, a purchase, or synthesized as a
// closing. RunningBalance is only meaningful once the ledger is balanced.
type Transaction struct {
	ID               string           `json:"id"`
	SourceID         int64            `json:"sourceId"`
	SessionID        int64            `json:"sessionId"`
	SessionNumber    string           `json:"sessionNumber"`
	Type             TransactionType  `json:"type"`
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
	// BalanceClamped is set when the session balance was floored at zero at
	// or before this entry.
	BalanceClamped bool `json:"balanceClamped"`
}
