package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatGrouped formats an amount with comma thousands separators, keeping
// any fractional digits as they are.
// Example: amount 1234567.5 returns "1,234,567.5"
func FormatGrouped(amount decimal.Decimal) string {
	s := amount.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatCurrency formats an amount as a peso figure, e.g. "$1,234".
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + FormatGrouped(amount.Abs())
	}
	return "$" + FormatGrouped(amount)
}
