package regulatory

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/datetime"
)

// TaxBracket is one marginal income tax bracket. Income above Threshold and
// up to Max is taxed at Rate on top of BaseTax, the cumulative tax of every
// lower bracket. Max of zero marks the open-ended top bracket. Amounts are cents.
type TaxBracket struct {
	Threshold int64
	Max       int64
	Rate      decimal.Decimal
	BaseTax   int64
}

// Contains reports whether the bracket applies to the given income. The
// bracket starting at zero also holds zero itself.
func (b TaxBracket) Contains(incomeCents int64) bool {
	return (incomeCents > b.Threshold || b.Threshold == 0) && (b.Max == 0 || incomeCents <= b.Max)
}

// MedicareLevy holds the flat levy and its low-income shade-in.
type MedicareLevy struct {
	Rate               decimal.Decimal
	LowIncomeThreshold int64
	ShadeInRate        decimal.Decimal
}

// SurchargeTier is one Medicare Levy Surcharge tier; Rate applies to the whole income.
type SurchargeTier struct {
	Threshold int64
	Max       int64
	Rate      decimal.Decimal
}

// Contains reports whether the tier applies to the given income.
func (t SurchargeTier) Contains(incomeCents int64) bool {
	return (incomeCents > t.Threshold || t.Threshold == 0) && (t.Max == 0 || incomeCents <= t.Max)
}

// SurchargeThresholds holds the single and family MLS tiers. Family
// thresholds rise by ChildUplift for each dependent child after the first.
type SurchargeThresholds struct {
	Single      []SurchargeTier
	Family      []SurchargeTier
	ChildUplift int64
}

// HECSThresholds describes the marginal HECS/HELP repayment scheme:
// nothing up to Minimum, FirstRate on income between Minimum and Second,
// SecondBase plus SecondRate over Second up to Third, and FlatRate of total
// income above Third.
type HECSThresholds struct {
	Minimum    int64
	Second     int64
	Third      int64
	FirstRate  decimal.Decimal
	SecondBase int64
	SecondRate decimal.Decimal
	FlatRate   decimal.Decimal
}

var incomeTax = NewTable(map[string][]TaxBracket{
	"2023-24": {
		{Threshold: 0, Max: 1820000, Rate: dec("0"), BaseTax: 0},
		{Threshold: 1820000, Max: 4500000, Rate: dec("0.19"), BaseTax: 0},
		{Threshold: 4500000, Max: 12000000, Rate: dec("0.325"), BaseTax: 509200},
		{Threshold: 12000000, Max: 18000000, Rate: dec("0.37"), BaseTax: 2946700},
		{Threshold: 18000000, Max: 0, Rate: dec("0.45"), BaseTax: 5166700},
	},
	"2024-25": {
		{Threshold: 0, Max: 1820000, Rate: dec("0"), BaseTax: 0},
		{Threshold: 1820000, Max: 4500000, Rate: dec("0.16"), BaseTax: 0},
		{Threshold: 4500000, Max: 13500000, Rate: dec("0.30"), BaseTax: 428800},
		{Threshold: 13500000, Max: 19000000, Rate: dec("0.37"), BaseTax: 3128800},
		{Threshold: 19000000, Max: 0, Rate: dec("0.45"), BaseTax: 5163800},
	},
})

var medicare = NewTable(map[string]MedicareLevy{
	"2023-24": {Rate: dec("0.02"), LowIncomeThreshold: 2600000, ShadeInRate: dec("0.10")},
	"2024-25": {Rate: dec("0.02"), LowIncomeThreshold: 2722200, ShadeInRate: dec("0.10")},
})

var surcharge = NewTable(map[string]SurchargeThresholds{
	"2024-25": {
		Single: []SurchargeTier{
			{Threshold: 0, Max: 9700000, Rate: dec("0")},
			{Threshold: 9700000, Max: 11300000, Rate: dec("0.01")},
			{Threshold: 11300000, Max: 15100000, Rate: dec("0.0125")},
			{Threshold: 15100000, Max: 0, Rate: dec("0.015")},
		},
		Family: []SurchargeTier{
			{Threshold: 0, Max: 19400000, Rate: dec("0")},
			{Threshold: 19400000, Max: 22600000, Rate: dec("0.01")},
			{Threshold: 22600000, Max: 30200000, Rate: dec("0.0125")},
			{Threshold: 30200000, Max: 0, Rate: dec("0.015")},
		},
		ChildUplift: 150000,
	},
})

var hecs = NewTable(map[string]HECSThresholds{
	"2025-26": {
		Minimum:    6700000,
		Second:     12500000,
		Third:      17928600,
		FirstRate:  dec("0.15"),
		SecondBase: 870000,
		SecondRate: dec("0.17"),
		FlatRate:   dec("0.10"),
	},
})

// IncomeTaxBrackets returns the marginal brackets for fy and the year resolved.
func IncomeTaxBrackets(fy datetime.FinancialYear) ([]TaxBracket, datetime.FinancialYear) {
	return incomeTax.Resolve(fy)
}

// Medicare returns the Medicare levy parameters for fy.
func Medicare(fy datetime.FinancialYear) (MedicareLevy, datetime.FinancialYear) {
	return medicare.Resolve(fy)
}

// Surcharge returns the Medicare Levy Surcharge thresholds for fy.
func Surcharge(fy datetime.FinancialYear) (SurchargeThresholds, datetime.FinancialYear) {
	return surcharge.Resolve(fy)
}

// HECS returns the HECS/HELP repayment thresholds for fy.
func HECS(fy datetime.FinancialYear) (HECSThresholds, datetime.FinancialYear) {
	return hecs.Resolve(fy)
}

// IncomeTaxYears lists the financial years with tabulated tax brackets.
func IncomeTaxYears() []datetime.FinancialYear {
	return incomeTax.Years()
}
