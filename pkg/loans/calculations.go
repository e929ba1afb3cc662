// Package loans provides loan repayment, interest and balance calculations.
// Every exported function takes and returns integer cents; rates are plain
// annual percentages (6.5 means 6.5%).
package loans

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/mathutil"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(constants.MonthsPerYear)
)

// Frequency is a repayment frequency.
type Frequency string

// Supported repayment frequencies.
const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
	Quarterly   Frequency = "quarterly"
	Annually    Frequency = "annually"
)

// ParseFrequency converts a user-supplied frequency name, defaulting empty input to monthly.
func ParseFrequency(value string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return Monthly, nil
	case Weekly, Fortnightly, Monthly, Quarterly, Annually:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported repayment frequency %q", value)
	}
}

// PeriodsPerYear returns the number of repayments per year. Unknown
// frequencies are treated as monthly.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Weekly:
		return constants.WeeksPerYear
	case Fortnightly:
		return constants.FortnightsPerYear
	case Quarterly:
		return constants.QuartersPerYear
	case Annually:
		return 1
	default:
		return constants.MonthsPerYear
	}
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent float64) decimal.Decimal {
	return mathutil.Div(mathutil.Fraction(annualRatePercent), twelve)
}

// InterestOnlyRepayment returns the interest-only repayment per period.
func InterestOnlyRepayment(loanCents int64, annualRatePercent float64, frequency Frequency) int64 {
	if loanCents <= 0 {
		return 0
	}
	annual := mathutil.ApplyPercent(loanCents, annualRatePercent)
	periods := decimal.NewFromInt(int64(frequency.PeriodsPerYear()))
	return mathutil.RoundCents(mathutil.Div(annual, periods))
}

// PrincipalAndInterestRepayment returns the amortising repayment per period.
// The monthly figure is computed first and then rescaled to the requested
// frequency (weekly is monthly*12/52) rather than re-amortised per period.
func PrincipalAndInterestRepayment(loanCents int64, annualRatePercent float64, termMonths int, frequency Frequency) int64 {
	monthly := monthlyPayment(mathutil.FromCents(loanCents), annualRatePercent, termMonths)
	return mathutil.RoundCents(scaleMonthly(monthly, frequency))
}

// Repayment dispatches to the interest-only or principal-and-interest formula.
func Repayment(loanCents int64, annualRatePercent float64, termMonths int, interestOnly bool, frequency Frequency) int64 {
	if interestOnly {
		return InterestOnlyRepayment(loanCents, annualRatePercent, frequency)
	}
	return PrincipalAndInterestRepayment(loanCents, annualRatePercent, termMonths, frequency)
}

// monthlyPayment is the unrounded amortisation formula
// M = P*r*(1+r)^n / ((1+r)^n - 1), degrading to P/n for a zero rate.
func monthlyPayment(principal decimal.Decimal, annualRatePercent float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePercent == 0 {
		return mathutil.Div(principal, n)
	}
	r := MonthlyRate(annualRatePercent)
	growth := mathutil.PowInt(one.Add(r), termMonths)
	return mathutil.Div(principal.Mul(r).Mul(growth), growth.Sub(one))
}

func scaleMonthly(monthly decimal.Decimal, frequency Frequency) decimal.Decimal {
	if frequency.PeriodsPerYear() == constants.MonthsPerYear {
		return monthly
	}
	return mathutil.Div(monthly.Mul(twelve), decimal.NewFromInt(int64(frequency.PeriodsPerYear())))
}

// TotalInterestOverLife returns the interest paid over the full term: the
// interest-only period's interest plus total amortising payments less the principal.
func TotalInterestOverLife(loanCents int64, annualRatePercent float64, termMonths, interestOnlyMonths int) int64 {
	return mathutil.RoundCents(totalInterest(loanCents, annualRatePercent, termMonths, interestOnlyMonths))
}

func totalInterest(loanCents int64, annualRatePercent float64, termMonths, interestOnlyMonths int) decimal.Decimal {
	if loanCents <= 0 || termMonths <= 0 {
		return decimal.Zero
	}
	principal := mathutil.FromCents(loanCents)
	if interestOnlyMonths < 0 {
		interestOnlyMonths = 0
	}
	if interestOnlyMonths > termMonths {
		interestOnlyMonths = termMonths
	}

	ioInterest := principal.Mul(MonthlyRate(annualRatePercent)).Mul(decimal.NewFromInt(int64(interestOnlyMonths)))
	amortMonths := termMonths - interestOnlyMonths
	if amortMonths == 0 {
		return ioInterest
	}
	payments := monthlyPayment(principal, annualRatePercent, amortMonths).Mul(decimal.NewFromInt(int64(amortMonths)))
	amortInterest := payments.Sub(principal)
	if amortInterest.IsNegative() {
		amortInterest = decimal.Zero
	}
	return ioInterest.Add(amortInterest)
}

// BalanceAfterMonths returns the outstanding balance after monthsElapsed
// repayments. The balance is the full loan during the interest-only period.
func BalanceAfterMonths(loanCents int64, annualRatePercent float64, termMonths, monthsElapsed, interestOnlyMonths int) int64 {
	if loanCents <= 0 {
		return 0
	}
	if monthsElapsed <= interestOnlyMonths || monthsElapsed <= 0 {
		return loanCents
	}
	amortMonths := termMonths - max(interestOnlyMonths, 0)
	paid := monthsElapsed - max(interestOnlyMonths, 0)
	if amortMonths <= 0 || paid >= amortMonths {
		return 0
	}

	principal := mathutil.FromCents(loanCents)
	if annualRatePercent == 0 {
		repaid := mathutil.Div(principal.Mul(decimal.NewFromInt(int64(paid))), decimal.NewFromInt(int64(amortMonths)))
		return mathutil.NonNegative(mathutil.RoundCents(principal.Sub(repaid)))
	}

	// B = P * ((1+r)^n - (1+r)^k) / ((1+r)^n - 1)
	r := MonthlyRate(annualRatePercent)
	growthN := mathutil.PowInt(one.Add(r), amortMonths)
	growthK := mathutil.PowInt(one.Add(r), paid)
	balance := mathutil.Div(principal.Mul(growthN.Sub(growthK)), growthN.Sub(one))
	return mathutil.NonNegative(mathutil.RoundCents(balance))
}

var termEpsilon = decimal.New(1, -9)

// ExtraPaymentResult describes the effect of a recurring extra monthly repayment.
type ExtraPaymentResult struct {
	OriginalInterest   int64 `json:"originalInterest"`
	NewInterest        int64 `json:"newInterest"`
	InterestSaved      int64 `json:"interestSaved"`
	OriginalTermMonths int   `json:"originalTermMonths"`
	NewTermMonths      int   `json:"newTermMonths"`
	MonthsSaved        int   `json:"monthsSaved"`
}

// ExtraPaymentImpact recomputes the term with the boosted repayment using
// n = -ln(1 - P*r/M) / ln(1+r). When the boosted repayment cannot retire the
// loan the result reports no benefit.
func ExtraPaymentImpact(loanCents int64, annualRatePercent float64, termMonths int, extraMonthlyCents int64) ExtraPaymentResult {
	if loanCents <= 0 || termMonths <= 0 {
		return ExtraPaymentResult{}
	}
	original := TotalInterestOverLife(loanCents, annualRatePercent, termMonths, 0)
	noBenefit := ExtraPaymentResult{
		OriginalInterest:   original,
		NewInterest:        original,
		OriginalTermMonths: termMonths,
		NewTermMonths:      termMonths,
	}
	if extraMonthlyCents <= 0 {
		return noBenefit
	}

	principal := mathutil.FromCents(loanCents)
	boosted := monthlyPayment(principal, annualRatePercent, termMonths).Add(mathutil.FromCents(extraMonthlyCents))

	var newTerm, newInterest decimal.Decimal
	if annualRatePercent == 0 {
		newTerm = mathutil.Div(principal, boosted)
		newInterest = decimal.Zero
	} else {
		r := MonthlyRate(annualRatePercent)
		inner := one.Sub(mathutil.Div(principal.Mul(r), boosted))
		if !inner.IsPositive() {
			return noBenefit
		}
		lnInner, err := inner.Ln(constants.DecimalPrecision)
		if err != nil {
			return noBenefit
		}
		lnGrowth, err := one.Add(r).Ln(constants.DecimalPrecision)
		if err != nil || !lnGrowth.IsPositive() {
			return noBenefit
		}
		newTerm = mathutil.Div(lnInner.Neg(), lnGrowth)
		if !newTerm.IsPositive() {
			return noBenefit
		}
		newInterest = boosted.Mul(newTerm).Sub(principal)
	}

	newInterestCents := mathutil.NonNegative(mathutil.RoundCents(newInterest))
	if newInterestCents > original {
		newInterestCents = original
	}
	// Round up to whole months, ignoring precision noise just above an integer.
	newTermMonths := int(newTerm.Sub(termEpsilon).Ceil().IntPart())
	if newTermMonths > termMonths {
		newTermMonths = termMonths
	}
	if newTermMonths < 1 {
		newTermMonths = 1
	}

	return ExtraPaymentResult{
		OriginalInterest:   original,
		NewInterest:        newInterestCents,
		InterestSaved:      original - newInterestCents,
		OriginalTermMonths: termMonths,
		NewTermMonths:      newTermMonths,
		MonthsSaved:        termMonths - newTermMonths,
	}
}

// OffsetEffectiveRate returns the rate effectively paid on the whole loan
// when an offset balance reduces the interest-bearing amount.
func OffsetEffectiveRate(loanCents, offsetCents int64, annualRatePercent float64) float64 {
	if loanCents <= 0 {
		return 0
	}
	charged := mathutil.FromCents(mathutil.NonNegative(loanCents - min(offsetCents, loanCents)))
	effective := mathutil.Div(mathutil.Rate(annualRatePercent).Mul(charged), mathutil.FromCents(loanCents))
	return mathutil.RoundHalfUp(effective, 4)
}

// OffsetMonthlySaving returns the interest avoided each month by an offset
// balance, which can never exceed the loan itself.
func OffsetMonthlySaving(loanCents, offsetCents int64, annualRatePercent float64) int64 {
	if loanCents <= 0 || offsetCents <= 0 {
		return 0
	}
	offset := mathutil.FromCents(min(offsetCents, loanCents))
	return mathutil.RoundCents(offset.Mul(MonthlyRate(annualRatePercent)))
}
