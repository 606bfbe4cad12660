package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{850000, "€850K"},
		{1_250_000, "€1.3M"},
		{2_500, "€3K"},
		{45000, "€45K"},
		{999, "€999"},
		{999.5, "€1000"},
		{-15000, "€-15K"},
		{-2_500, "€-3K"},
		{-0.4, "€0"},
		{0, "€0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "Currency(%v)", tt.in)
	}
}

func TestRound_TiesAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.3, Round(1.25, 1))
	assert.Equal(t, 3.0, Round(2.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 0.0, Round(-0.04, 1))
}

func TestCurrencyFull(t *testing.T) {
	assert.Equal(t, "€850,000", CurrencyFull(850000))
	assert.Equal(t, "-€1,500", CurrencyFull(-1500.2))
	assert.Equal(t, "€12", CurrencyFull(12.4))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1,234,567", Number(1234567))
	assert.Equal(t, "123", Number(123))
	assert.Equal(t, "-1,000", Number(-1000))
}

func TestMonths(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.Equal(t, "∞", Months(nil))
	assert.Equal(t, "0", Months(f(-2)))
	assert.Equal(t, "15 days", Months(f(0.5)))
	assert.Equal(t, "1 month", Months(f(1)))
	assert.Equal(t, "56.7 months", Months(f(850000.0/15000.0)))
	assert.Equal(t, "2.5 months", Months(f(2.45)))
}

func TestPercentAndMultiple(t *testing.T) {
	assert.Equal(t, "72.5%", Percent(0.725))
	assert.Equal(t, "12.5%", Percent(0.125))
	assert.Equal(t, "3.4x", Multiple(3.4))
	assert.Equal(t, "1.3x", Multiple(1.25))
}

func TestMonthDelta(t *testing.T) {
	assert.Equal(t, "+2.3 mo", MonthDelta(2.25))
	assert.Equal(t, "-4.0 mo", MonthDelta(-4))
	assert.Equal(t, "0.0 mo", MonthDelta(0.01))
}

func TestMonthLabel(t *testing.T) {
	anchor := time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "Oct 2026", MonthLabel(anchor, 0))
	assert.Equal(t, "Jan 2027", MonthLabel(anchor, 3))
	assert.Equal(t, []string{"Oct 2026", "Nov 2026"}, MonthLabels(anchor, 2))
	assert.Empty(t, MonthLabels(anchor, -1))
}
