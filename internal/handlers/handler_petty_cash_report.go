package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/dto"
	"github.com/webemergencia/petty_cash_app/internal/middleware"
)

// pettyCashReportHandler handles HTTP requests for petty-cash reports
type pettyCashReportHandler struct {
	reportService portssvc.PettyCashReportService
}

func newPettyCashReportHandler(rs portssvc.PettyCashReportService) *pettyCashReportHandler {
	return &pettyCashReportHandler{
		reportService: rs,
	}
}

// RegisterPettyCashReportRoutes registers the report routes on rg. exportGuards
// run in front of the export route only.
func RegisterPettyCashReportRoutes(rg *gin.RouterGroup, reportService portssvc.PettyCashReportService, exportGuards ...gin.HandlerFunc) {
	h := newPettyCashReportHandler(reportService)

	reports := rg.Group("/petty-cash/reports")
	{
		reports.GET("/transactions", h.getTransactionsReport)
		reports.GET("/transactions/export", append(exportGuards, h.exportTransactionsReport)...)
		reports.GET("/filter-options", h.getFilterOptions)
	}
}

// getTransactionsReport godoc
// @Summary Petty-cash transactions report
// @Description Reconstructs the petty-cash ledger and returns the filtered transactions with running balances and a summary
// @Tags petty-cash
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param sessionId query int false "Cash session ID"
// @Param type query string false "Transaction type" Enums(opening, expense, purchase, closing, all)
// @Param userId query string false "User ID"
// @Param cashRegisterId query int false "Cash register ID"
// @Success 200 {object} dto.TransactionsReportResponse
// @Failure 400 {object} dto.TransactionsReportResponse "Invalid filter"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} dto.TransactionsReportResponse "Failed to generate report"
// @Security BearerAuth
// @Router /petty-cash/reports/transactions [get]
func (h *pettyCashReportHandler) getTransactionsReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.TransactionsReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.TransactionsReportResponse{Error: bindingErrorMessage(err)})
		return
	}

	filter, err := query.ToReportFilter()
	if err != nil {
		logger.Warn("Invalid report filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.TransactionsReportResponse{Error: err.Error()})
		return
	}

	view, err := h.reportService.GetTransactionsReport(c.Request.Context(), filter)
	if err != nil {
		status, msg := reportErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to generate transactions report", slog.String("error", err.Error()))
		}
		c.JSON(status, dto.TransactionsReportResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionsReportResponse(view))
}

// exportTransactionsReport godoc
// @Summary Export petty-cash transactions report
// @Description Renders the filtered transactions report as an XLSX workbook or a PDF document
// @Tags petty-cash
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param sessionId query int false "Cash session ID"
// @Param type query string false "Transaction type" Enums(opening, expense, purchase, closing, all)
// @Param userId query string false "User ID"
// @Param cashRegisterId query int false "Cash register ID"
// @Param format query string false "Export format" Enums(xlsx, pdf) default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} dto.TransactionsReportResponse "Invalid filter or format"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 429 {object} map[string]interface{} "Too many requests"
// @Failure 500 {object} dto.TransactionsReportResponse "Failed to export report"
// @Security BearerAuth
// @Router /petty-cash/reports/transactions/export [get]
func (h *pettyCashReportHandler) exportTransactionsReport(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.ExportReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid export query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.TransactionsReportResponse{Error: bindingErrorMessage(err)})
		return
	}

	filter, err := query.ToReportFilter()
	if err != nil {
		logger.Warn("Invalid export filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.TransactionsReportResponse{Error: err.Error()})
		return
	}

	format := portssvc.ExportFormat(strings.ToLower(query.Format))
	export, err := h.reportService.ExportTransactionsReport(c.Request.Context(), filter, format)
	if err != nil {
		status, msg := reportErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to export transactions report", slog.String("error", err.Error()))
		}
		c.JSON(status, dto.TransactionsReportResponse{Error: msg})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// getFilterOptions godoc
// @Summary Report filter options
// @Description Lists the users, cash registers and session date range a report can be filtered by
// @Tags petty-cash
// @Produce json
// @Success 200 {object} dto.FilterOptionsResponse
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} dto.FilterOptionsResponse "Failed to load filter options"
// @Security BearerAuth
// @Router /petty-cash/reports/filter-options [get]
func (h *pettyCashReportHandler) getFilterOptions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	opts, err := h.reportService.GetReportFilterOptions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load report filter options", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.FilterOptionsResponse{Error: "Failed to load filter options"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFilterOptionsResponse(opts))
}

// reportErrorStatus maps a report error to its status code and the message
// shown to the caller. Internal failures are not echoed back.
func reportErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrSourceFetch):
		return http.StatusInternalServerError, "Failed to read petty-cash transactions"
	default:
		return http.StatusInternalServerError, "Failed to generate transactions report"
	}
}

func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid query parameters"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validationMessage(fe)))
	}
	return strings.Join(msgs, "; ")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt", "gte":
		return "must be a valid id"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	return "is invalid"
}
