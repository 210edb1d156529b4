package domain

import (
	"fmt"
	"math"
)

// Round2 rounds a currency amount to two decimal places. It is the single
// rounding helper in the system; display fields are rounded with it at the
// breakdown boundary and nowhere else.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatCurrency renders a fee as a dollar string with two decimals.
func FormatCurrency(fee float64) string {
	return fmt.Sprintf("$%.2f", fee)
}

// IsValidFee reports whether a fee is a sane, non-negative amount. The
// pipeline never calls it; callers that want to reject degenerate outputs
// (for example a negative charge from an exit that precedes its entry) may.
func IsValidFee(fee float64) bool {
	if math.IsNaN(fee) || math.IsInf(fee, 0) {
		return false
	}
	return fee >= 0
}
