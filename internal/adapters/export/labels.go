// Package export renders transaction reports as spreadsheet and PDF files.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
)

const (
	dateLayout = "02-01-2006"
	timeLayout = "15:04"
)

// TypeLabel returns the Spanish label of a transaction type.
func TypeLabel(t domain.TransactionType) (string, error) {
	switch t {
	case domain.TransactionOpening:
		return "Apertura", nil
	case domain.TransactionExpense:
		return "Gasto", nil
	case domain.TransactionPurchase:
		return "Compra", nil
	case domain.TransactionClosing:
		return "Cierre", nil
	}
	return "", fmt.Errorf("no label for transaction type %q", t)
}

// PeriodLabel describes the filter's date range, e.g. "2025-03-01 - Hoy".
func PeriodLabel(filter domain.ReportFilter) string {
	start, end := "Inicio", "Hoy"
	if filter.StartDate != nil {
		start = domain.DayKey(*filter.StartDate)
	}
	if filter.EndDate != nil {
		end = domain.DayKey(*filter.EndDate)
	}
	return start + " - " + end
}

// sortedDays returns the day keys of a periodic summary in calendar order.
func sortedDays(periodic map[string]domain.DaySummary) []string {
	days := make([]string, 0, len(periodic))
	for day := range periodic {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// displayDate converts a YYYY-MM-DD key into the report's date layout.
func displayDate(day string) string {
	t, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		return day
	}
	return t.Format(dateLayout)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
