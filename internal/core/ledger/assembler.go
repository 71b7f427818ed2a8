package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	"github.com/webemergencia/petty_cash_app/internal/utils"
)

// Placeholder display values used when reference data is missing.
const (
	UnknownUserName           = "Usuario desconocido"
	UnknownCashRegisterName   = "Caja desconocida"
	DefaultCashRegisterName   = "Caja Principal"
	DefaultProductLabel       = "Producto"
	DefaultExpenseDescription = "Sin descripción"
)

// Sources holds the raw ledger facts fetched for one report.
type Sources struct {
	Sessions  map[int64]domain.CashSession
	Expenses  []domain.ExpenseEvent
	Purchases []domain.PurchaseEvent
}

// References holds the resolved display data for users, products and
// registers. Any map may be nil or incomplete.
type References struct {
	Users         map[string]domain.UserRef
	Products      map[string]domain.ProductRef
	CashRegisters map[int64]domain.CashRegisterRef
}

// WarningKind classifies non-fatal assembly problems.
type WarningKind string

const (
	// WarningMalformedAmount marks a purchase with neither a total amount nor
	// a usable quantity and unit price. Its amount is assembled as zero.
	WarningMalformedAmount WarningKind = "malformed_amount"
	// WarningUnknownSession marks an event whose session is not available.
	WarningUnknownSession WarningKind = "unknown_session"
)

// Warning describes a row that was assembled with degraded data.
type Warning struct {
	Kind          WarningKind
	TransactionID string
	SessionID     int64
	Message       string
}

// Assemble merges session openings, expenses and purchases into one unordered
// sequence of ledger entries. Only the date range of window is used: openings
// are tested on their opening date, expenses and purchases on their creation
// date. Missing reference data never fails assembly; it yields placeholder
// values and, where relevant, a warning.
func Assemble(src Sources, refs References, window domain.ReportFilter) ([]domain.Transaction, []Warning) {
	entries := make([]domain.Transaction, 0, len(src.Sessions)+len(src.Expenses)+len(src.Purchases))
	var warnings []Warning

	sessionIDs := make([]int64, 0, len(src.Sessions))
	for id := range src.Sessions {
		sessionIDs = append(sessionIDs, id)
	}
	slices.Sort(sessionIDs)

	for _, id := range sessionIDs {
		session := src.Sessions[id]
		if session.OpenedAt.IsZero() || !window.InDateRange(session.OpenedAt) {
			continue
		}
		entries = append(entries, openingEntry(session, refs))
	}

	for _, expense := range src.Expenses {
		if !window.InDateRange(expense.CreatedAt) {
			continue
		}
		entry, ok := expenseEntry(expense, src.Sessions, refs)
		if !ok {
			warnings = append(warnings, unknownSessionWarning(entry))
		}
		entries = append(entries, entry)
	}

	for _, purchase := range src.Purchases {
		if !window.InDateRange(purchase.CreatedAt) {
			continue
		}
		entry, ok := purchaseEntry(purchase, src.Sessions, refs)
		if !ok {
			warnings = append(warnings, unknownSessionWarning(entry))
		}
		if _, valid := PurchaseAmount(purchase); !valid {
			warnings = append(warnings, Warning{
				Kind:          WarningMalformedAmount,
				TransactionID: entry.ID,
				SessionID:     entry.SessionID,
				Message:       "purchase has no total amount and no quantity x unit price fallback; assembled with amount 0",
			})
		}
		entries = append(entries, entry)
	}

	return entries, warnings
}

// PurchaseAmount reconstructs the amount of a purchase: the stored total when
// present and non-zero, otherwise quantity x unit price. The boolean is false
// when neither is available, in which case the amount is zero.
func PurchaseAmount(p domain.PurchaseEvent) (decimal.Decimal, bool) {
	if p.TotalAmount != nil && !p.TotalAmount.IsZero() {
		return *p.TotalAmount, true
	}
	if p.Quantity != nil && p.UnitPrice != nil {
		return p.Quantity.Mul(*p.UnitPrice), true
	}
	if p.TotalAmount != nil {
		// An explicit zero total with no fallback is still a valid amount.
		return *p.TotalAmount, true
	}
	return decimal.Zero, false
}

func openingEntry(session domain.CashSession, refs References) domain.Transaction {
	return domain.Transaction{
		ID:               fmt.Sprintf("%s-%d", domain.TransactionOpening, session.ID),
		SourceID:         session.ID,
		SessionID:        session.ID,
		SessionNumber:    sessionNumber(session.ID),
		Type:             domain.TransactionOpening,
		Amount:           session.OpeningAmount,
		Description:      fmt.Sprintf("Apertura de caja - Sesión %d", session.ID),
		UserID:           session.UserID,
		UserName:         userName(refs, session.UserID),
		CashRegisterID:   session.CashRegisterID,
		CashRegisterName: cashRegisterName(refs, session.CashRegisterID, true),
		CreatedAt:        session.OpenedAt,
	}
}

func expenseEntry(e domain.ExpenseEvent, sessions map[int64]domain.CashSession, refs References) (domain.Transaction, bool) {
	session, ok := sessions[e.SessionID]

	description := e.Description
	if description == "" {
		description = DefaultExpenseDescription
	}

	return domain.Transaction{
		ID:               fmt.Sprintf("%s-%d", domain.TransactionExpense, e.ID),
		SourceID:         e.ID,
		SessionID:        e.SessionID,
		SessionNumber:    sessionNumber(e.SessionID),
		Type:             domain.TransactionExpense,
		Amount:           e.Amount,
		Description:      description,
		Category:         e.Category,
		UserID:           session.UserID,
		UserName:         userName(refs, session.UserID),
		CashRegisterID:   session.CashRegisterID,
		CashRegisterName: cashRegisterName(refs, session.CashRegisterID, ok),
		CreatedAt:        e.CreatedAt,
	}, ok
}

func purchaseEntry(p domain.PurchaseEvent, sessions map[int64]domain.CashSession, refs References) (domain.Transaction, bool) {
	session, ok := sessions[p.SessionID]
	amount, _ := PurchaseAmount(p)

	label := DefaultProductLabel
	var productName, productSKU *string
	if p.ProductID != nil {
		if product, found := refs.Products[*p.ProductID]; found {
			name, sku := product.Name, product.SKU
			productName = &name
			if sku != "" {
				productSKU = &sku
			}
			label = name
		}
	}

	return domain.Transaction{
		ID:               fmt.Sprintf("%s-%d", domain.TransactionPurchase, p.ID),
		SourceID:         p.ID,
		SessionID:        p.SessionID,
		SessionNumber:    sessionNumber(p.SessionID),
		Type:             domain.TransactionPurchase,
		Amount:           amount,
		Description:      fmt.Sprintf("Compra: %s (%s x $%s)", label, optionalAmount(p.Quantity), optionalGrouped(p.UnitPrice)),
		ProductName:      productName,
		ProductSKU:       productSKU,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		UserID:           session.UserID,
		UserName:         userName(refs, session.UserID),
		CashRegisterID:   session.CashRegisterID,
		CashRegisterName: cashRegisterName(refs, session.CashRegisterID, ok),
		CreatedAt:        p.CreatedAt,
	}, ok
}

func unknownSessionWarning(entry domain.Transaction) Warning {
	return Warning{
		Kind:          WarningUnknownSession,
		TransactionID: entry.ID,
		SessionID:     entry.SessionID,
		Message:       "session not found; using placeholder display values",
	}
}

func sessionNumber(sessionID int64) string {
	return fmt.Sprintf("S%d", sessionID)
}

func userName(refs References, userID string) string {
	if userID == "" {
		return UnknownUserName
	}
	if user, ok := refs.Users[userID]; ok && user.Name != "" {
		return user.Name
	}
	return UnknownUserName
}

// cashRegisterName resolves a register label. A known session without a
// register belongs to the main register.
func cashRegisterName(refs References, registerID int64, sessionKnown bool) string {
	if !sessionKnown {
		return UnknownCashRegisterName
	}
	if registerID == 0 {
		return DefaultCashRegisterName
	}
	if register, ok := refs.CashRegisters[registerID]; ok && register.Name != "" {
		return register.Name
	}
	return UnknownCashRegisterName
}

func optionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return "0"
	}
	return d.String()
}

func optionalGrouped(d *decimal.Decimal) string {
	if d == nil {
		return "0"
	}
	return utils.FormatGrouped(*d)
}
