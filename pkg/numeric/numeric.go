// Package numeric holds the small number helpers shared by the engine and
// the formatting boundary.
package numeric

import (
	"math"

	"github.com/shopspring/decimal"
)

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Round rounds x to precision decimal places, half away from zero.
// A negative precision rounds to tens, hundreds and so on.
// Non-finite input yields NaN.
func Round(x float64, precision int) float64 {
	if !IsFinite(x) {
		return math.NaN()
	}
	f, _ := decimal.NewFromFloat(x).Round(int32(precision)).Float64()
	return f
}
