package services

import (
	"context"
	"time"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

// ExportFormat names a rendered report format.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// PettyCashReportService builds petty-cash transaction reports.
type PettyCashReportService interface {
	// GetTransactionsReport reconstructs the ledger and returns the view
	// selected by filter.
	GetTransactionsReport(ctx context.Context, filter domain.ReportFilter) (*domain.ReportView, error)

	// ExportTransactionsReport renders the view selected by filter in format.
	ExportTransactionsReport(ctx context.Context, filter domain.ReportFilter, format ExportFormat) (*domain.ReportExport, error)

	// GetReportFilterOptions lists the values a report can be filtered by.
	GetReportFilterOptions(ctx context.Context) (*domain.ReportFilterOptions, error)
}

// ReportExporter renders a report view into a binary artifact.
type ReportExporter interface {
	Format() ExportFormat
	ContentType() string
	Render(view domain.ReportView, filter domain.ReportFilter) ([]byte, error)
}

// FilterOptionsCache stores the filter options between requests. A miss is
// reported with found == false and a nil error.
type FilterOptionsCache interface {
	Get(ctx context.Context) (opts *domain.ReportFilterOptions, found bool, err error)
	Set(ctx context.Context, opts *domain.ReportFilterOptions, ttl time.Duration) error
}
