// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"time"

	"github.com/theirongolddev/runwise/internal/format"
)

// FormatCurrency formats an amount compactly, e.g. 1234567 -> "€1.2M".
func FormatCurrency(v float64) string { return format.Currency(v) }

// FormatCurrencyFull formats an amount with separators, e.g. 850000 -> "€850,000".
func FormatCurrencyFull(v float64) string { return format.CurrencyFull(v) }

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string { return format.Number(n) }

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string { return format.Percent(f) }

// FormatMonths formats a runway. nil means unlimited.
func FormatMonths(months *float64) string { return format.Months(months) }

// FormatMultiple formats a cost-to-revenue ratio, e.g. 3.4 -> "3.4x".
func FormatMultiple(ratio float64) string { return format.Multiple(ratio) }

// FormatMonthDelta formats a signed runway difference, e.g. "+2.3 mo".
func FormatMonthDelta(diff float64) string { return format.MonthDelta(diff) }

// FormatDelta formats the signed difference between two amounts.
func FormatDelta(current, previous float64) string { return format.Delta(current, previous) }

// FormatMonthIndex formats an optional month offset, "-" when absent.
func FormatMonthIndex(month *int) string { return format.MonthIndex(month) }

// MonthLabel labels the month offset months after the month containing anchor.
func MonthLabel(anchor time.Time, offset int) string { return format.MonthLabel(anchor, offset) }

// MonthLabels returns count consecutive labels starting at anchor.
func MonthLabels(anchor time.Time, count int) []string { return format.MonthLabels(anchor, count) }
