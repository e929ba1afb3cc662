// Package tax calculates Australian personal income tax, the Medicare levy,
// the Medicare Levy Surcharge and HECS/HELP compulsory repayments. Amounts are
// annual integer cents; each public result is rounded once, half-up.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// IncomeTax returns the marginal income tax on a taxable income using the
// cumulative base of the bracket that holds it.
func IncomeTax(incomeCents int64, fy datetime.FinancialYear) int64 {
	return mathutil.RoundCents(incomeTax(incomeCents, fy))
}

func incomeTax(incomeCents int64, fy datetime.FinancialYear) decimal.Decimal {
	if incomeCents <= 0 {
		return decimal.Zero
	}
	bracket := bracketFor(incomeCents, fy)
	above := mathutil.FromCents(incomeCents - bracket.Threshold)
	return mathutil.FromCents(bracket.BaseTax).Add(above.Mul(bracket.Rate))
}

func bracketFor(incomeCents int64, fy datetime.FinancialYear) regulatory.TaxBracket {
	brackets, _ := regulatory.IncomeTaxBrackets(fy)
	for _, b := range brackets {
		if b.Contains(incomeCents) {
			return b
		}
	}
	return brackets[0]
}

// MarginalRate returns the bracket rate applying to the next dollar earned, as a percentage.
func MarginalRate(incomeCents int64, fy datetime.FinancialYear) float64 {
	return mathutil.RoundHalfUp(bracketFor(max(incomeCents, 0), fy).Rate.Mul(decimal.NewFromInt(100)), 2)
}

// MedicareLevy returns the levy on a taxable income. Nothing is payable at or
// below the low-income threshold; above it the levy is the lesser of the full
// rate on the whole income and the shade-in rate on the excess.
func MedicareLevy(incomeCents int64, fy datetime.FinancialYear) int64 {
	levy, _ := regulatory.Medicare(fy)
	if incomeCents <= levy.LowIncomeThreshold {
		return 0
	}
	full := mathutil.FromCents(incomeCents).Mul(levy.Rate)
	shaded := mathutil.FromCents(incomeCents - levy.LowIncomeThreshold).Mul(levy.ShadeInRate)
	return mathutil.RoundCents(decimal.Min(full, shaded))
}

// MedicareLevySurcharge returns the surcharge payable without appropriate
// private hospital cover. Family thresholds rise for each dependent child
// after the first. The surcharge rate applies to the whole income.
func MedicareLevySurcharge(incomeCents int64, family bool, dependents int, hasPrivateCover bool, fy datetime.FinancialYear) int64 {
	if hasPrivateCover || incomeCents <= 0 {
		return 0
	}
	thresholds, _ := regulatory.Surcharge(fy)
	tiers := thresholds.Single
	var uplift int64
	if family {
		tiers = thresholds.Family
		if dependents > 1 {
			uplift = thresholds.ChildUplift * int64(dependents-1)
		}
	}

	for _, tier := range tiers {
		shifted := tier
		if shifted.Threshold > 0 {
			shifted.Threshold += uplift
		}
		if shifted.Max > 0 {
			shifted.Max += uplift
		}
		if shifted.Contains(incomeCents) {
			return mathutil.RoundCents(mathutil.FromCents(incomeCents).Mul(tier.Rate))
		}
	}
	return 0
}

// HECSRepayment returns the annual compulsory HECS/HELP repayment. The
// marginal bands operate on annual income, so monthly figures must be
// derived from this value rather than computed per month.
func HECSRepayment(incomeCents int64, fy datetime.FinancialYear) int64 {
	return mathutil.RoundCents(hecsRepayment(incomeCents, fy))
}

func hecsRepayment(incomeCents int64, fy datetime.FinancialYear) decimal.Decimal {
	h, _ := regulatory.HECS(fy)
	switch {
	case incomeCents <= h.Minimum:
		return decimal.Zero
	case incomeCents <= h.Second:
		return mathutil.FromCents(incomeCents - h.Minimum).Mul(h.FirstRate)
	case incomeCents <= h.Third:
		return mathutil.FromCents(h.SecondBase).Add(mathutil.FromCents(incomeCents - h.Second).Mul(h.SecondRate))
	default:
		return mathutil.FromCents(incomeCents).Mul(h.FlatRate)
	}
}

// Summary is the tax position for a single taxable income.
type Summary struct {
	FinancialYear string  `json:"financialYear"`
	GrossIncome   int64   `json:"grossIncome"`
	IncomeTax     int64   `json:"incomeTax"`
	MedicareLevy  int64   `json:"medicareLevy"`
	NetIncome     int64   `json:"netIncome"`
	EffectiveRate float64 `json:"effectiveRate"`
	MarginalRate  float64 `json:"marginalRate"`
}

// Summarize computes income tax, Medicare levy, net income and the average
// and marginal rates for a gross annual income.
func Summarize(grossCents int64, fy datetime.FinancialYear) Summary {
	_, used := regulatory.IncomeTaxBrackets(fy)
	incomeTax := IncomeTax(grossCents, fy)
	medicare := MedicareLevy(grossCents, fy)
	totalTax := incomeTax + medicare

	return Summary{
		FinancialYear: used.String(),
		GrossIncome:   grossCents,
		IncomeTax:     incomeTax,
		MedicareLevy:  medicare,
		NetIncome:     grossCents - totalTax,
		EffectiveRate: mathutil.PercentOf(mathutil.FromCents(totalTax), mathutil.FromCents(grossCents), 2),
		MarginalRate:  MarginalRate(grossCents, fy),
	}
}
