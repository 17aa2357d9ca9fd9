package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

// CeilNonNegative rounds up and clamps at zero. Derived quantities must
// never go negative.
func CeilNonNegative(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}

// ClampQuantity coerces garbage stock values to something the derived
// computations can work with: negative counts are treated as zero.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// StringOrDefault returns fallback when s is empty.
func StringOrDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
