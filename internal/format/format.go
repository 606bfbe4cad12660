// Package format renders amounts, ratios, runways and month labels as plain
// strings. It has no terminal dependencies so the engine can use it.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CurrencySymbol prefixes every formatted amount.
var CurrencySymbol = "€"

// Round rounds v to the given number of decimals, ties away from zero.
// fmt's %.Nf rounds ties to even, which turns 1.25 into "1.2".
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	r := math.Floor(math.Abs(v)*scale+0.5) / scale
	if r == 0 {
		return 0
	}
	return math.Copysign(r, v)
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(Round(v, decimals), 'f', decimals, 64)
}

// Currency formats an amount compactly.
// e.g., 1234567 -> "€1.2M", 45000 -> "€45K", 900 -> "€900"
func Currency(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return CurrencySymbol + fixed(v/1_000_000, 1) + "M"
	case abs >= 1_000:
		return CurrencySymbol + fixed(v/1_000, 0) + "K"
	default:
		return CurrencySymbol + fixed(v, 0)
	}
}

// CurrencyFull formats an amount rounded to whole units with separators.
// e.g., 850000 -> "€850,000"
func CurrencyFull(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + CurrencySymbol + Number(-n)
	}
	return CurrencySymbol + Number(n)
}

// Number adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func Number(n int64) string {
	if n < 0 {
		return "-" + Number(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// Percent formats a 0-1 float as a percentage string.
func Percent(f float64) string {
	return fixed(f*100, 1) + "%"
}

// Months formats a runway. nil means unlimited.
func Months(months *float64) string {
	if months == nil {
		return "∞"
	}
	m := *months
	switch {
	case m < 0:
		return "0"
	case m < 1:
		return fmt.Sprintf("%.0f days", math.Round(m*30))
	case m == 1:
		return "1 month"
	default:
		return fixed(m, 1) + " months"
	}
}

// Multiple formats a cost-to-revenue ratio, e.g. 3.4 -> "3.4x".
func Multiple(ratio float64) string {
	return fixed(ratio, 1) + "x"
}

// MonthDelta formats a signed runway difference, e.g. 2.25 -> "+2.3 mo".
func MonthDelta(diff float64) string {
	if Round(diff, 1) > 0 {
		return "+" + fixed(diff, 1) + " mo"
	}
	return fixed(diff, 1) + " mo"
}

// Delta formats the signed difference between two amounts.
func Delta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + Currency(delta)
	}
	return "-" + Currency(-delta)
}

// MonthIndex formats an optional month offset, "-" when absent.
func MonthIndex(month *int) string {
	if month == nil {
		return "-"
	}
	return fmt.Sprintf("month %d", *month)
}

// MonthLabel labels the month offset months after the month containing anchor.
// e.g., (2026-10-19, 3) -> "Jan 2027"
func MonthLabel(anchor time.Time, offset int) string {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return first.AddDate(0, offset, 0).Format("Jan 2006")
}

// MonthLabels returns count consecutive labels starting at anchor.
func MonthLabels(anchor time.Time, count int) []string {
	labels := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		labels = append(labels, MonthLabel(anchor, i))
	}
	return labels
}
