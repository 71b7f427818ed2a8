package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus is the lifecycle state of a cash register session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

// CashSession represents one open/close working period of a cash register.
// The session row doubles as the opening event of the ledger.
type CashSession struct {
	ID             int64           `json:"id"`
	OpeningAmount  decimal.Decimal `json:"openingAmount"`
	Status         SessionStatus   `json:"status"`
	UserID         string          `json:"userId"`
	CashRegisterID int64           `json:"cashRegisterId"`
	OpenedAt       time.Time       `json:"openedAt"`
}

// IsClosed reports whether the session has been reconciled.
func (s CashSession) IsClosed() bool {
	return s.Status == SessionClosed
}

// ExpenseEvent is a petty-cash expense paid out of a session.
type ExpenseEvent struct {
	ID          int64           `json:"id"`
	SessionID   int64           `json:"sessionId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    *string         `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PurchaseEvent is a product purchase paid out of a session. TotalAmount is
// optional in storage; Quantity and UnitPrice are the fallback.
type PurchaseEvent struct {
	ID          int64            `json:"id"`
	SessionID   int64            `json:"sessionId"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	ProductID   *string          `json:"productId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// UserRef is the display data of a user.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductRef is the display data of a product.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// CashRegisterRef is the display data of a cash register.
type CashRegisterRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
