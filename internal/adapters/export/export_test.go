package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webemergencia/petty_cash_app/internal/adapters/export"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleView() domain.ReportView {
	day1 := time.Date(2025, time.March, 10, 9, 5, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	category := "Aseo"
	product := "Café"
	qty := dec("2")
	price := dec("10000")

	return domain.ReportView{
		Transactions: []domain.Transaction{
			{ID: "opening-1", SessionNumber: "S1", Type: domain.TransactionOpening, Amount: dec("100000"),
				Description: "Apertura de caja - Sesión 1", UserName: "Ana", CashRegisterName: "Caja Principal",
				CreatedAt: day1, RunningBalance: dec("100000")},
			{ID: "expense-4", SessionNumber: "S1", Type: domain.TransactionExpense, Amount: dec("30000"),
				Description: "Detergente", Category: &category, UserName: "Ana", CashRegisterName: "Caja Principal",
				CreatedAt: day1.Add(time.Hour), RunningBalance: dec("70000")},
			{ID: "purchase-2", SessionNumber: "S1", Type: domain.TransactionPurchase, Amount: dec("20000"),
				Description: "Compra: Café (2 x $10,000)", ProductName: &product, Quantity: &qty, UnitPrice: &price,
				UserName: "Ana", CashRegisterName: "Caja Principal", CreatedAt: day2, RunningBalance: dec("50000")},
			{ID: "closing-1", SessionNumber: "S1", Type: domain.TransactionClosing, Amount: dec("50000"),
				Description: "Cierre de caja - Sesión 1", UserName: "Ana", CashRegisterName: "Caja Principal",
				CreatedAt: day2, RunningBalance: dec("50000")},
		},
		Summary: domain.ReportSummary{
			TotalTransactions: 4,
			TotalExpenses:     dec("30000"),
			TotalPurchases:    dec("20000"),
			TotalAmount:       dec("50000"),
			InitialBalance:    dec("100000"),
			FinalBalance:      dec("50000"),
			PeriodicSummary: map[string]domain.DaySummary{
				"2025-03-11": {Transactions: 2, Expenses: dec("0"), Purchases: dec("20000"), Balance: dec("50000")},
				"2025-03-10": {Transactions: 2, Expenses: dec("30000"), Purchases: dec("0"), Balance: dec("70000")},
			},
		},
	}
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestXLSXExporter_Render(t *testing.T) {
	start := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	exporter := export.NewXLSXExporter()
	assert.Equal(t, portssvc.ExportFormatXLSX, exporter.Format())

	data, err := exporter.Render(sampleView(), domain.ReportFilter{StartDate: &start})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetTransactions, export.SheetDaily, export.SheetGeneral}, f.GetSheetList())

	// Transactions sheet: header row plus one row per entry.
	assert.Equal(t, "N°", raw(t, f, export.SheetTransactions, "A1"))
	assert.Equal(t, "Saldo Después", raw(t, f, export.SheetTransactions, "L1"))
	assert.Equal(t, "10-03-2025", raw(t, f, export.SheetTransactions, "B2"))
	assert.Equal(t, "09:05", raw(t, f, export.SheetTransactions, "C2"))
	assert.Equal(t, "Apertura", raw(t, f, export.SheetTransactions, "E2"))
	assert.Equal(t, "Gasto", raw(t, f, export.SheetTransactions, "E3"))
	assert.Equal(t, "Aseo", raw(t, f, export.SheetTransactions, "G3"))
	assert.Equal(t, "Compra", raw(t, f, export.SheetTransactions, "E4"))
	assert.Equal(t, "Café", raw(t, f, export.SheetTransactions, "H4"))
	assert.Equal(t, "2", raw(t, f, export.SheetTransactions, "I4"))
	assert.Equal(t, "Cierre", raw(t, f, export.SheetTransactions, "E5"))
	assert.Equal(t, "50000", raw(t, f, export.SheetTransactions, "L5"))
	assert.Equal(t, "", raw(t, f, export.SheetTransactions, "A6"))

	// Daily summary is sorted by date even though the map is not.
	assert.Equal(t, "10-03-2025", raw(t, f, export.SheetDaily, "A2"))
	assert.Equal(t, "11-03-2025", raw(t, f, export.SheetDaily, "A3"))
	assert.Equal(t, "30000", raw(t, f, export.SheetDaily, "E2"))
	assert.Equal(t, "70000", raw(t, f, export.SheetDaily, "F2"))

	assert.Equal(t, "Saldo Inicial", raw(t, f, export.SheetGeneral, "A2"))
	assert.Equal(t, "100000", raw(t, f, export.SheetGeneral, "B2"))
	assert.Equal(t, "4", raw(t, f, export.SheetGeneral, "B3"))
	assert.Equal(t, "2025-03-10 - Hoy", raw(t, f, export.SheetGeneral, "B8"))
}

func TestXLSXExporter_EmptyView(t *testing.T) {
	view := domain.ReportView{Summary: domain.ReportSummary{PeriodicSummary: map[string]domain.DaySummary{}}}

	data, err := export.NewXLSXExporter().Render(view, domain.ReportFilter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Inicio - Hoy", raw(t, f, export.SheetGeneral, "B8"))
}

func TestXLSXExporter_RejectsUnknownType(t *testing.T) {
	view := domain.ReportView{Transactions: []domain.Transaction{{ID: "x-1", Type: "refund"}}}

	_, err := export.NewXLSXExporter().Render(view, domain.ReportFilter{})
	assert.Error(t, err)
}

func TestPDFExporter_Render(t *testing.T) {
	exporter := export.NewPDFExporter()
	assert.Equal(t, "application/pdf", exporter.ContentType())

	view := sampleView()
	// Enough rows to force a page break.
	for i := 0; i < 60; i++ {
		view.Transactions = append(view.Transactions, view.Transactions[1])
	}

	data, err := exporter.Render(view, domain.ReportFilter{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestTypeLabel(t *testing.T) {
	for typ, want := range map[domain.TransactionType]string{
		domain.TransactionOpening:  "Apertura",
		domain.TransactionExpense:  "Gasto",
		domain.TransactionPurchase: "Compra",
		domain.TransactionClosing:  "Cierre",
	} {
		got, err := export.TypeLabel(typ)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := export.TypeLabel("refund")
	assert.Error(t, err)
}
