package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	"github.com/webemergencia/petty_cash_app/internal/core/ledger"
)

func findEntry(t *testing.T, entries []domain.Transaction, id string) domain.Transaction {
	t.Helper()
	for _, tx := range entries {
		if tx.ID == id {
			return tx
		}
	}
	t.Fatalf("entry %s not found", id)
	return domain.Transaction{}
}

func TestAssemble_BuildsTypedEntries(t *testing.T) {
	category := "Aseo"
	productID := "prod-1"
	src := ledger.Sources{
		Sessions: sessions(domain.CashSession{
			ID: 5, OpeningAmount: dec("40000"), Status: domain.SessionOpen,
			UserID: "user-9", CashRegisterID: 2, OpenedAt: at(0),
		}),
		Expenses: []domain.ExpenseEvent{
			{ID: 7, SessionID: 5, Amount: dec("1500"), Description: "Detergente", Category: &category, CreatedAt: at(5)},
			{ID: 8, SessionID: 5, Amount: dec("700"), CreatedAt: at(6)},
		},
		Purchases: []domain.PurchaseEvent{
			{ID: 3, SessionID: 5, Quantity: decPtr("2"), UnitPrice: decPtr("10000"), ProductID: &productID, CreatedAt: at(7)},
		},
	}
	refs := ledger.References{
		Users:         map[string]domain.UserRef{"user-9": {ID: "user-9", Name: "Ana"}},
		Products:      map[string]domain.ProductRef{"prod-1": {ID: "prod-1", Name: "Café", SKU: "CAF-01"}},
		CashRegisters: map[int64]domain.CashRegisterRef{2: {ID: 2, Name: "Caja Recepción"}},
	}

	entries, warnings := ledger.Assemble(src, refs, domain.ReportFilter{})

	assert.Empty(t, warnings)
	require.Len(t, entries, 4)

	opening := findEntry(t, entries, "opening-5")
	assert.Equal(t, domain.TransactionOpening, opening.Type)
	assertDecimal(t, "40000", opening.Amount)
	assert.Equal(t, "S5", opening.SessionNumber)
	assert.Equal(t, "Apertura de caja - Sesión 5", opening.Description)
	assert.Equal(t, "Ana", opening.UserName)
	assert.Equal(t, "Caja Recepción", opening.CashRegisterName)
	assert.True(t, opening.CreatedAt.Equal(at(0)))

	withCategory := findEntry(t, entries, "expense-7")
	assertDecimal(t, "1500", withCategory.Amount)
	assert.Equal(t, "Detergente", withCategory.Description)
	require.NotNil(t, withCategory.Category)
	assert.Equal(t, "Aseo", *withCategory.Category)
	assert.Equal(t, "user-9", withCategory.UserID)

	assert.Equal(t, ledger.DefaultExpenseDescription, findEntry(t, entries, "expense-8").Description)

	purchase := findEntry(t, entries, "purchase-3")
	assertDecimal(t, "20000", purchase.Amount)
	assert.Equal(t, "Compra: Café (2 x $10,000)", purchase.Description)
	require.NotNil(t, purchase.ProductName)
	assert.Equal(t, "Café", *purchase.ProductName)
	require.NotNil(t, purchase.ProductSKU)
	assert.Equal(t, "CAF-01", *purchase.ProductSKU)
}

func TestAssemble_DateWindow(t *testing.T) {
	nextDay := day1.Add(24 * time.Hour)
	src := ledger.Sources{
		Sessions: sessions(
			session(1, "10000", domain.SessionOpen, day1),
			session(2, "20000", domain.SessionOpen, nextDay),
		),
		Expenses:  []domain.ExpenseEvent{expense(1, 1, "100", nextDay.Add(time.Hour))},
		Purchases: []domain.PurchaseEvent{purchaseTotal(1, 1, "200", day1.Add(time.Hour))},
	}
	window := domain.ReportFilter{StartDate: timePtr(nextDay), EndDate: timePtr(nextDay)}

	entries, _ := ledger.Assemble(src, ledger.References{}, window)

	// The opening of session 1 is tested on its opening date and dropped, while
	// its expense is tested on its own creation date and kept.
	assert.ElementsMatch(t, []string{"opening-2", "expense-1"}, ids(entries))
}

func TestAssemble_PurchaseAmountReconstruction(t *testing.T) {
	tests := []struct {
		name      string
		purchase  domain.PurchaseEvent
		want      string
		wantValid bool
	}{
		{
			name:      "total amount wins",
			purchase:  domain.PurchaseEvent{TotalAmount: decPtr("9000"), Quantity: decPtr("2"), UnitPrice: decPtr("10000")},
			want:      "9000",
			wantValid: true,
		},
		{
			name:      "missing total falls back to quantity times unit price",
			purchase:  domain.PurchaseEvent{Quantity: decPtr("3"), UnitPrice: decPtr("2500")},
			want:      "7500",
			wantValid: true,
		},
		{
			name:      "zero total falls back to quantity times unit price",
			purchase:  domain.PurchaseEvent{TotalAmount: decPtr("0"), Quantity: decPtr("1.5"), UnitPrice: decPtr("1000")},
			want:      "1500",
			wantValid: true,
		},
		{
			name:      "explicit zero total without fallback",
			purchase:  domain.PurchaseEvent{TotalAmount: decPtr("0")},
			want:      "0",
			wantValid: true,
		},
		{
			name:      "nothing to reconstruct from",
			purchase:  domain.PurchaseEvent{Quantity: decPtr("3")},
			want:      "0",
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := ledger.PurchaseAmount(tt.purchase)
			assertDecimal(t, tt.want, got)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}

func TestAssemble_MalformedPurchaseIsKeptWithWarning(t *testing.T) {
	src := ledger.Sources{
		Sessions:  sessions(session(1, "10000", domain.SessionOpen, at(0))),
		Purchases: []domain.PurchaseEvent{{ID: 4, SessionID: 1, CreatedAt: at(3)}},
	}

	entries, warnings := ledger.Assemble(src, ledger.References{}, domain.ReportFilter{})

	purchase := findEntry(t, entries, "purchase-4")
	assertDecimal(t, "0", purchase.Amount)
	assert.Equal(t, "Compra: Producto (0 x $0)", purchase.Description)
	require.Len(t, warnings, 1)
	assert.Equal(t, ledger.WarningMalformedAmount, warnings[0].Kind)
	assert.Equal(t, "purchase-4", warnings[0].TransactionID)
}

func TestAssemble_MissingReferencesDegradeToPlaceholders(t *testing.T) {
	productID := "gone"
	src := ledger.Sources{
		Sessions: sessions(domain.CashSession{
			ID: 1, OpeningAmount: dec("10000"), Status: domain.SessionOpen,
			UserID: "deleted-user", CashRegisterID: 99, OpenedAt: at(0),
		}),
		Expenses:  []domain.ExpenseEvent{expense(1, 42, "500", at(2))},
		Purchases: []domain.PurchaseEvent{{ID: 2, SessionID: 1, TotalAmount: decPtr("300"), ProductID: &productID, CreatedAt: at(4)}},
	}

	entries, warnings := ledger.Assemble(src, ledger.References{}, domain.ReportFilter{})
	require.Len(t, entries, 3)

	opening := findEntry(t, entries, "opening-1")
	assert.Equal(t, ledger.UnknownUserName, opening.UserName)
	assert.Equal(t, ledger.UnknownCashRegisterName, opening.CashRegisterName)

	orphan := findEntry(t, entries, "expense-1")
	assert.Equal(t, ledger.UnknownUserName, orphan.UserName)
	assert.Equal(t, ledger.UnknownCashRegisterName, orphan.CashRegisterName)
	assert.Equal(t, "S42", orphan.SessionNumber)

	purchase := findEntry(t, entries, "purchase-2")
	assert.Nil(t, purchase.ProductName)
	assert.Equal(t, "Compra: Producto (0 x $0)", purchase.Description)

	require.Len(t, warnings, 1)
	assert.Equal(t, ledger.WarningUnknownSession, warnings[0].Kind)
	assert.Equal(t, int64(42), warnings[0].SessionID)
}

func TestAssemble_SessionWithoutRegisterIsMainRegister(t *testing.T) {
	src := ledger.Sources{Sessions: sessions(session(1, "10000", domain.SessionOpen, at(0)))}

	entries, _ := ledger.Assemble(src, ledger.References{}, domain.ReportFilter{})

	require.Len(t, entries, 1)
	assert.Equal(t, ledger.DefaultCashRegisterName, entries[0].CashRegisterName)
}
