package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency_RoundsTiesUp(t *testing.T) {
	assert.Equal(t, "€1.3M", FormatCurrency(1_250_000))
	assert.Equal(t, "€3K", FormatCurrency(2_500))
	assert.Equal(t, "€850,000", FormatCurrencyFull(850000))
}
