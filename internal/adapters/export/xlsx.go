package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
)

// Sheet names of the exported workbook.
const (
	SheetTransactions = "Transacciones"
	SheetDaily        = "Resumen Diario"
	SheetGeneral      = "Resumen General"
)

const currencyNumFmt = `"$"#,##0.##`

var (
	transactionHeaders = []string{
		"N°", "Fecha", "Hora", "Sesión", "Tipo", "Descripción", "Categoría", "Producto",
		"Cantidad", "Precio Unit.", "Monto", "Saldo Después", "Usuario", "Caja", "Centro Costo",
	}
	transactionWidths = []float64{5, 12, 8, 10, 10, 40, 15, 20, 10, 12, 15, 15, 20, 15, 15}

	dailyHeaders = []string{"Fecha", "Transacciones", "Total Gastos", "Total Compras", "Total Día", "Saldo Final"}
	dailyWidths  = []float64{12, 14, 15, 15, 15, 15}
)

// XLSXExporter renders a report as an Excel workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a workbook exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

var _ portssvc.ReportExporter = (*XLSXExporter)(nil)

func (e *XLSXExporter) Format() portssvc.ExportFormat { return portssvc.ExportFormatXLSX }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes the transactions, daily summary and general summary sheets.
func (e *XLSXExporter) Render(view domain.ReportView, filter domain.ReportFilter) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newWorkbookWriter(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := w.writeTransactions(view.Transactions); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetDaily); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetDaily, err)
	}
	if err := w.writeDaily(view.Summary.PeriodicSummary); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetGeneral); err != nil {
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetGeneral, err)
	}
	if err := w.writeGeneral(view.Summary, filter); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// workbookWriter collects the first error so sheet writers stay linear.
type workbookWriter struct {
	f           *excelize.File
	headerStyle int
	moneyStyle  int
	err         error
}

func newWorkbookWriter(f *excelize.File) (*workbookWriter, error) {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := currencyNumFmt
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	return &workbookWriter{f: f, headerStyle: headerStyle, moneyStyle: moneyStyle}, nil
}

func (w *workbookWriter) set(sheet string, col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, cell, value)
}

func (w *workbookWriter) money(sheet string, col, row int, amount decimal.Decimal) {
	w.set(sheet, col, row, amount.InexactFloat64())
	w.style(sheet, col, row, w.moneyStyle)
}

func (w *workbookWriter) style(sheet string, col, row, style int) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, cell, cell, style)
}

func (w *workbookWriter) header(sheet string, headers []string, widths []float64) {
	for i, h := range headers {
		w.set(sheet, i+1, 1, h)
		w.style(sheet, i+1, 1, w.headerStyle)
	}
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(sheet, col, col, width)
	}
}

func (w *workbookWriter) writeTransactions(transactions []domain.Transaction) error {
	sheet := SheetTransactions
	w.header(sheet, transactionHeaders, transactionWidths)

	for i, tx := range transactions {
		row := i + 2
		label, err := TypeLabel(tx.Type)
		if err != nil {
			return err
		}

		w.set(sheet, 1, row, i+1)
		w.set(sheet, 2, row, tx.CreatedAt.Format(dateLayout))
		w.set(sheet, 3, row, tx.CreatedAt.Format(timeLayout))
		w.set(sheet, 4, row, tx.SessionNumber)
		w.set(sheet, 5, row, label)
		w.set(sheet, 6, row, tx.Description)
		w.set(sheet, 7, row, optionalString(tx.Category))
		w.set(sheet, 8, row, optionalString(tx.ProductName))
		if tx.Quantity != nil {
			w.set(sheet, 9, row, tx.Quantity.InexactFloat64())
		}
		if tx.UnitPrice != nil {
			w.money(sheet, 10, row, *tx.UnitPrice)
		}
		w.money(sheet, 11, row, tx.Amount)
		w.money(sheet, 12, row, tx.RunningBalance)
		w.set(sheet, 13, row, tx.UserName)
		w.set(sheet, 14, row, tx.CashRegisterName)
		w.set(sheet, 15, row, optionalString(tx.CostCenterName))
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", sheet, w.err)
	}
	return nil
}

func (w *workbookWriter) writeDaily(periodic map[string]domain.DaySummary) error {
	sheet := SheetDaily
	w.header(sheet, dailyHeaders, dailyWidths)

	for i, day := range sortedDays(periodic) {
		row := i + 2
		bucket := periodic[day]
		w.set(sheet, 1, row, displayDate(day))
		w.set(sheet, 2, row, bucket.Transactions)
		w.money(sheet, 3, row, bucket.Expenses)
		w.money(sheet, 4, row, bucket.Purchases)
		w.money(sheet, 5, row, bucket.Expenses.Add(bucket.Purchases))
		w.money(sheet, 6, row, bucket.Balance)
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", sheet, w.err)
	}
	return nil
}

func (w *workbookWriter) writeGeneral(summary domain.ReportSummary, filter domain.ReportFilter) error {
	sheet := SheetGeneral
	w.header(sheet, []string{"Concepto", "Valor"}, []float64{25, 25})

	rows := []struct {
		concept string
		amount  *decimal.Decimal
		value   any
	}{
		{concept: "Saldo Inicial", amount: &summary.InitialBalance},
		{concept: "Total Transacciones", value: summary.TotalTransactions},
		{concept: "Total Gastos", amount: &summary.TotalExpenses},
		{concept: "Total Compras", amount: &summary.TotalPurchases},
		{concept: "Total Movimientos", amount: &summary.TotalAmount},
		{concept: "Saldo Final", amount: &summary.FinalBalance},
		{concept: "Período", value: PeriodLabel(filter)},
	}
	for i, r := range rows {
		row := i + 2
		w.set(sheet, 1, row, r.concept)
		if r.amount != nil {
			w.money(sheet, 2, row, *r.amount)
		} else {
			w.set(sheet, 2, row, r.value)
		}
	}
	if summary.InitialBalanceInexact {
		w.set(sheet, 1, len(rows)+3, "El saldo inicial es aproximado: la sesión no tiene apertura en el período o su saldo llegó a cero.")
	}

	if w.err != nil {
		return fmt.Errorf("failed to write %s sheet: %w", sheet, w.err)
	}
	return nil
}
