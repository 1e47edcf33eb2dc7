package exchange

import "github.com/shopspring/decimal"

// NeedsConversion reports whether money moving from one currency to another
// actually crosses a currency boundary. Codes are compared exactly; they are
// expected to already be uppercase ISO 4217.
func NeedsConversion(from, to string) bool {
	return from != to
}

// Convert multiplies amount by rate and rounds half-up at the cent boundary.
// Every place a converted total is computed (receipt save, report
// aggregation, invoice rendering) must go through this function; diverging
// rounding between callers is exactly the defect this package exists to
// prevent.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// Round2 rounds a monetary amount half-up to 2 decimal places with the same
// rule Convert applies, for callers that aggregate already-converted totals.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
