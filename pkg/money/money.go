package money

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Round2 rounds to 2 decimal places, half away from zero. For the
// non-negative amounts handled here that is standard half-up rounding.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromString parses a decimal amount from a string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal from a string, panics on error.
// Intended for constants and tests.
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// LineTotal computes quantity * unitPrice rounded to 2 places.
// Rounding happens per line, before any aggregation.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Percent computes amount * (ratePercent/100) rounded to 2 places
func Percent(amount, ratePercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return Round2(amount.Mul(ratePercent).Div(hundred))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Fits reports whether d fits a SQL decimal(maxDigits,maxScale) column:
// at most maxScale fractional digits and at most maxDigits-maxScale
// whole digits, i.e. |d| < 10^(maxDigits-maxScale).
func Fits(d decimal.Decimal, maxDigits, maxScale int32) bool {
	if -d.Exponent() > maxScale {
		return false
	}
	return d.Abs().LessThan(decimal.New(1, maxDigits-maxScale))
}

// IsNonNegative returns true if d >= 0
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}
