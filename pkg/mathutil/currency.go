// Package mathutil provides the decimal arithmetic used by every calculator.
// Money crosses package boundaries as integer cents; anything fractional is
// carried as a decimal.Decimal and rounded back to a cent once, at the point
// the value is published.
package mathutil

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/constants"
)

var (
	half    = decimal.New(5, -1)
	hundred = decimal.NewFromInt(100)
	cents   = decimal.NewFromInt(constants.CentsPerDollar)
)

// FromCents lifts an integer cent amount into a decimal number of cents.
func FromCents(c int64) decimal.Decimal {
	return decimal.NewFromInt(c)
}

// CentsToDollars converts integer cents to a decimal dollar amount.
func CentsToDollars(c int64) decimal.Decimal {
	return decimal.NewFromInt(c).Shift(-2)
}

// DollarsToCents converts a decimal dollar amount to cents, rounding half-up.
func DollarsToCents(d decimal.Decimal) int64 {
	return RoundCents(d.Mul(cents))
}

// FloatDollarsToCents converts a user-entered dollar figure to cents. The
// float is read through its shortest decimal representation so 0.1 stays 0.1.
func FloatDollarsToCents(d float64) int64 {
	return DollarsToCents(decimal.NewFromFloat(d))
}

// Rate converts a plain percentage number (5.75 means 5.75%) into a decimal.
func Rate(percent float64) decimal.Decimal {
	return decimal.NewFromFloat(percent)
}

// Fraction converts a plain percentage number into a 0-1 fraction.
func Fraction(percent float64) decimal.Decimal {
	return decimal.NewFromFloat(percent).Div(hundred)
}

// Div divides with a fixed number of fractional digits. A zero divisor
// yields zero rather than a panic.
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, constants.DecimalPrecision)
}

// PowInt raises base to a non-negative integer power by repeated squaring,
// truncating every intermediate product to DecimalPrecision digits so the
// mantissa stays bounded for 30-year terms.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.NewFromInt(1)
	}
	result := decimal.NewFromInt(1)
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Round(constants.DecimalPrecision)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Round(constants.DecimalPrecision)
		}
	}
	return result
}

// RoundCents rounds a decimal number of cents half-up to an integer cent.
func RoundCents(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// RoundHalfUp rounds to the given number of decimal places, half-up, and
// returns a plain float for ratio fields.
func RoundHalfUp(d decimal.Decimal, places int32) float64 {
	return d.Shift(places).Add(half).Floor().Shift(-places).InexactFloat64()
}

// PercentOf returns value/total*100 rounded half-up to the given places, or
// zero when total is zero.
func PercentOf(value, total decimal.Decimal, places int32) float64 {
	if total.IsZero() {
		return 0
	}
	return RoundHalfUp(Div(value.Mul(hundred), total), places)
}

// ApplyPercent returns amount*percent/100 as a decimal number of cents.
func ApplyPercent(amountCents int64, percent float64) decimal.Decimal {
	return FromCents(amountCents).Mul(Fraction(percent))
}

// NonNegative clamps negative cent values to zero.
func NonNegative(c int64) int64 {
	if c < 0 {
		return 0
	}
	return c
}
