package pages

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatMoney renders a Rand amount with two decimals.
func FormatMoney(value float64) string {
	return "R " + decimal.NewFromFloat(value).StringFixed(2)
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(1) + "%"
}

// FormatQuantity renders a prep quantity rounded to two decimals, without
// trailing zeros, followed by its unit.
func FormatQuantity(value float64, unit string) string {
	qty := decimal.NewFromFloat(value).Round(2).String()
	if strings.TrimSpace(unit) == "" {
		return qty
	}
	return qty + " " + unit
}

// FormatReportDate renders the supplied time using a kitchen-friendly layout.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("Monday 02 Jan 2006")
}
