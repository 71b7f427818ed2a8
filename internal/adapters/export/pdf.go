package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/utils"
)

type pdfColumn struct {
	title string
	width float64
	align string
}

var pdfColumns = []pdfColumn{
	{"Fecha", 20, "C"},
	{"Hora", 12, "C"},
	{"Sesión", 14, "C"},
	{"Tipo", 18, "C"},
	{"Descripción", 82, "L"},
	{"Monto", 26, "R"},
	{"Saldo", 26, "R"},
	{"Usuario", 40, "L"},
	{"Caja", 28, "L"},
}

// PDFExporter renders a report as a landscape A4 document.
type PDFExporter struct{}

// NewPDFExporter creates a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

var _ portssvc.ReportExporter = (*PDFExporter)(nil)

func (e *PDFExporter) Format() portssvc.ExportFormat { return portssvc.ExportFormatPDF }

func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Render writes the general summary followed by the transaction table.
func (e *PDFExporter) Render(view domain.ReportView, filter domain.ReportFilter) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	summary := view.Summary
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Reporte de Transacciones - Caja Chica"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Período: %s", PeriodLabel(filter)),
		fmt.Sprintf("Saldo Inicial: %s", utils.FormatCurrency(summary.InitialBalance)),
		fmt.Sprintf("Total Transacciones: %d", summary.TotalTransactions),
		fmt.Sprintf("Total Gastos: %s", utils.FormatCurrency(summary.TotalExpenses)),
		fmt.Sprintf("Total Compras: %s", utils.FormatCurrency(summary.TotalPurchases)),
		fmt.Sprintf("Total Movimientos: %s", utils.FormatCurrency(summary.TotalAmount)),
		fmt.Sprintf("Saldo Final: %s", utils.FormatCurrency(summary.FinalBalance)),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(5)
	}
	if summary.InitialBalanceInexact {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, tr("El saldo inicial es aproximado."))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(col.title), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, tx := range view.Transactions {
		if pdf.GetY()+6 > pageHeight-bottom-10 {
			pdf.AddPage()
			writeHeader()
		}
		label, err := TypeLabel(tx.Type)
		if err != nil {
			return nil, err
		}
		cells := []string{
			tx.CreatedAt.Format(dateLayout),
			tx.CreatedAt.Format(timeLayout),
			tx.SessionNumber,
			label,
			truncate(tx.Description, 55),
			utils.FormatCurrency(tx.Amount),
			utils.FormatCurrency(tx.RunningBalance),
			truncate(tx.UserName, 25),
			truncate(tx.CashRegisterName, 18),
		}
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
