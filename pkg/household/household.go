// Package household estimates the monthly figures a serviceability assessment
// starts from: net income after tax, the HEM living-expense floor and
// income-contingent HECS/HELP repayments.
package household

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
	"github.com/iwvelando/serviceability/pkg/tax"
)

var twelve = decimal.NewFromInt(constants.MonthsPerYear)

// EstimateNetIncome returns gross annual income less marginal income tax and
// the Medicare levy for the financial year.
func EstimateNetIncome(grossAnnualCents int64, fy datetime.FinancialYear) int64 {
	if grossAnnualCents <= 0 {
		return 0
	}
	return grossAnnualCents - tax.IncomeTax(grossAnnualCents, fy) - tax.MedicareLevy(grossAnnualCents, fy)
}

// HouseholdExpenditureMeasure returns the monthly HEM benchmark for a
// household with the given combined gross annual income.
func HouseholdExpenditureMeasure(grossAnnualCents int64, hasPartner bool, dependents int) int64 {
	bracket := regulatory.HEMBracketFor(grossAnnualCents)
	base := bracket.Single
	if hasPartner {
		base = bracket.Couple
	}
	return base + int64(max(dependents, 0))*bracket.PerDependent
}

// HECSMonthlyRepayment returns the compulsory HECS/HELP repayment as a
// monthly figure: the annual repayment divided by twelve.
func HECSMonthlyRepayment(grossAnnualCents int64, fy datetime.FinancialYear) int64 {
	return Monthly(tax.HECSRepayment(grossAnnualCents, fy))
}

// Monthly converts an annual amount to a rounded monthly amount.
func Monthly(annualCents int64) int64 {
	return mathutil.RoundCents(mathutil.Div(mathutil.FromCents(annualCents), twelve))
}
