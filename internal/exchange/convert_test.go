package exchange

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNeedsConversion(t *testing.T) {
	assert.False(t, NeedsConversion("USD", "USD"))
	assert.False(t, NeedsConversion("EUR", "EUR"))
	assert.True(t, NeedsConversion("EUR", "USD"))
	// Codes are compared exactly, no normalization.
	assert.True(t, NeedsConversion("usd", "USD"))
}

func TestConvert_RoundsHalfUpAtCentBoundary(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{"half-up boundary", "19.995", "1.0", "20.00"},
		{"rounds down below midpoint", "10", "0.999", "9.99"},
		{"typical conversion", "100.00", "1.0854", "108.54"},
		{"identity rate", "42.42", "1", "42.42"},
		{"midpoint from multiplication", "12.345", "1", "12.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			rate := decimal.RequireFromString(tt.rate)
			got := Convert(amount, rate)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"Convert(%s, %s) = %s, want %s", tt.amount, tt.rate, got, tt.want)
		})
	}
}

func TestRound2_MatchesConvertRounding(t *testing.T) {
	amount := decimal.RequireFromString("19.995")
	assert.True(t, Convert(amount, decimal.NewFromInt(1)).Equal(Round2(amount)))
}
