package regulatory

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/datetime"
)

// DutyFormula selects how a duty bracket is applied.
type DutyFormula int

const (
	// Marginal charges Base plus Rate on the value above the previous bracket's UpTo.
	Marginal DutyFormula = iota
	// WholeValue charges Rate on the entire dutiable value.
	WholeValue
	// Quadratic charges A*V^2 + B*V where V is the value in thousands of dollars.
	Quadratic
)

// DutyBracket is one stamp duty bracket in whole dollars. UpTo is the
// inclusive upper bound; zero marks the open-ended top bracket.
type DutyBracket struct {
	UpTo    decimal.Decimal
	Rate    decimal.Decimal
	Base    decimal.Decimal
	Formula DutyFormula
}

// FeeSchedule describes a land titles office fee: Base plus PerThousand for
// every $1,000 (or part) above FreeThreshold, capped at Cap when Cap is non-zero.
type FeeSchedule struct {
	Base          decimal.Decimal
	FreeThreshold decimal.Decimal
	PerThousand   decimal.Decimal
	Cap           decimal.Decimal
}

// FirstHomeBuyerRule gives full exemption up to FullExemptionUpTo, a
// linearly reducing concession up to ConcessionUpTo, and nothing above.
// NewBuildUncapped exempts new builds and vacant land at any price.
type FirstHomeBuyerRule struct {
	FullExemptionUpTo decimal.Decimal
	ConcessionUpTo    decimal.Decimal
	NewBuildUncapped  bool
}

// Available reports whether the rule ever grants relief.
func (r FirstHomeBuyerRule) Available() bool {
	return r.FullExemptionUpTo.IsPositive() || r.NewBuildUncapped
}

// OffThePlanRule excludes the construction share of an off-the-plan purchase
// from the dutiable value. AllBuyers extends it beyond first home buyers.
type OffThePlanRule struct {
	AllBuyers bool
}

// StateDuty is the complete duty and fee schedule for one jurisdiction.
type StateDuty struct {
	State                State
	Brackets             []DutyBracket
	QuadraticA           decimal.Decimal
	QuadraticB           decimal.Decimal
	TransferFee          FeeSchedule
	MortgageRegistration decimal.Decimal
	FirstHomeBuyer       FirstHomeBuyerRule
	OffThePlan           *OffThePlanRule
}

// Figures approximate the published 2024-25 general residential rates. They
// are indicative and are not a substitute for a revenue office calculator.
var stampDuty = NewTable(map[string]map[State]StateDuty{
	"2024-25": {
		NSW: {
			State: NSW,
			Brackets: []DutyBracket{
				{UpTo: dec("16000"), Rate: dec("0.0125"), Base: dec("0")},
				{UpTo: dec("35000"), Rate: dec("0.015"), Base: dec("200")},
				{UpTo: dec("93000"), Rate: dec("0.0175"), Base: dec("485")},
				{UpTo: dec("351000"), Rate: dec("0.035"), Base: dec("1500")},
				{UpTo: dec("1168000"), Rate: dec("0.045"), Base: dec("10530")},
				{UpTo: dec("3505000"), Rate: dec("0.055"), Base: dec("47295")},
				{UpTo: dec("0"), Rate: dec("0.07"), Base: dec("175830")},
			},
			TransferFee:          FeeSchedule{Base: dec("165.40")},
			MortgageRegistration: dec("165.40"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("800000"), ConcessionUpTo: dec("1000000")},
		},
		VIC: {
			State: VIC,
			Brackets: []DutyBracket{
				{UpTo: dec("25000"), Rate: dec("0.014"), Base: dec("0")},
				{UpTo: dec("130000"), Rate: dec("0.024"), Base: dec("350")},
				{UpTo: dec("960000"), Rate: dec("0.06"), Base: dec("2870")},
				{UpTo: dec("2000000"), Rate: dec("0.055"), Formula: WholeValue},
				{UpTo: dec("0"), Rate: dec("0.065"), Base: dec("110000")},
			},
			TransferFee:          FeeSchedule{Base: dec("119.70"), PerThousand: dec("2.46"), Cap: dec("3609")},
			MortgageRegistration: dec("119.90"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("600000"), ConcessionUpTo: dec("750000")},
			OffThePlan:           &OffThePlanRule{AllBuyers: true},
		},
		QLD: {
			State: QLD,
			Brackets: []DutyBracket{
				{UpTo: dec("5000"), Rate: dec("0"), Base: dec("0")},
				{UpTo: dec("75000"), Rate: dec("0.015"), Base: dec("0")},
				{UpTo: dec("540000"), Rate: dec("0.035"), Base: dec("1050")},
				{UpTo: dec("1000000"), Rate: dec("0.045"), Base: dec("17325")},
				{UpTo: dec("0"), Rate: dec("0.0575"), Base: dec("38025")},
			},
			TransferFee:          FeeSchedule{Base: dec("231.28"), FreeThreshold: dec("180000"), PerThousand: dec("4.357")},
			MortgageRegistration: dec("231.28"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("700000"), ConcessionUpTo: dec("800000")},
		},
		WA: {
			State: WA,
			Brackets: []DutyBracket{
				{UpTo: dec("120000"), Rate: dec("0.019"), Base: dec("0")},
				{UpTo: dec("150000"), Rate: dec("0.0285"), Base: dec("2280")},
				{UpTo: dec("360000"), Rate: dec("0.038"), Base: dec("3135")},
				{UpTo: dec("725000"), Rate: dec("0.0475"), Base: dec("11115")},
				{UpTo: dec("0"), Rate: dec("0.0515"), Base: dec("28452.50")},
			},
			TransferFee:          FeeSchedule{Base: dec("208.40")},
			MortgageRegistration: dec("208.40"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("500000"), ConcessionUpTo: dec("700000")},
		},
		SA: {
			State: SA,
			Brackets: []DutyBracket{
				{UpTo: dec("12000"), Rate: dec("0.01"), Base: dec("0")},
				{UpTo: dec("30000"), Rate: dec("0.02"), Base: dec("120")},
				{UpTo: dec("50000"), Rate: dec("0.03"), Base: dec("480")},
				{UpTo: dec("100000"), Rate: dec("0.035"), Base: dec("1080")},
				{UpTo: dec("200000"), Rate: dec("0.04"), Base: dec("2830")},
				{UpTo: dec("250000"), Rate: dec("0.0425"), Base: dec("6830")},
				{UpTo: dec("300000"), Rate: dec("0.0475"), Base: dec("8955")},
				{UpTo: dec("500000"), Rate: dec("0.05"), Base: dec("11330")},
				{UpTo: dec("0"), Rate: dec("0.055"), Base: dec("21330")},
			},
			TransferFee:          FeeSchedule{Base: dec("186"), FreeThreshold: dec("50000"), PerThousand: dec("5.77")},
			MortgageRegistration: dec("186"),
			FirstHomeBuyer:       FirstHomeBuyerRule{NewBuildUncapped: true},
		},
		TAS: {
			State: TAS,
			Brackets: []DutyBracket{
				{UpTo: dec("3000"), Rate: dec("0"), Base: dec("50")},
				{UpTo: dec("25000"), Rate: dec("0.0175"), Base: dec("50")},
				{UpTo: dec("75000"), Rate: dec("0.0225"), Base: dec("435")},
				{UpTo: dec("200000"), Rate: dec("0.035"), Base: dec("1560")},
				{UpTo: dec("375000"), Rate: dec("0.04"), Base: dec("5935")},
				{UpTo: dec("725000"), Rate: dec("0.0425"), Base: dec("12935")},
				{UpTo: dec("0"), Rate: dec("0.045"), Base: dec("27810")},
			},
			TransferFee:          FeeSchedule{Base: dec("247.52")},
			MortgageRegistration: dec("157.93"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("750000"), ConcessionUpTo: dec("750000")},
		},
		ACT: {
			State: ACT,
			Brackets: []DutyBracket{
				{UpTo: dec("260000"), Rate: dec("0.0049"), Base: dec("0")},
				{UpTo: dec("300000"), Rate: dec("0.022"), Base: dec("1274")},
				{UpTo: dec("500000"), Rate: dec("0.034"), Base: dec("2154")},
				{UpTo: dec("750000"), Rate: dec("0.0432"), Base: dec("8954")},
				{UpTo: dec("1000000"), Rate: dec("0.059"), Base: dec("19754")},
				{UpTo: dec("1455000"), Rate: dec("0.064"), Base: dec("34504")},
				{UpTo: dec("0"), Rate: dec("0.0454"), Formula: WholeValue},
			},
			TransferFee:          FeeSchedule{Base: dec("478")},
			MortgageRegistration: dec("178"),
			FirstHomeBuyer:       FirstHomeBuyerRule{FullExemptionUpTo: dec("1020000"), ConcessionUpTo: dec("1020000")},
		},
		NT: {
			State: NT,
			Brackets: []DutyBracket{
				{UpTo: dec("525000"), Formula: Quadratic},
				{UpTo: dec("3000000"), Rate: dec("0.0495"), Formula: WholeValue},
				{UpTo: dec("5000000"), Rate: dec("0.0575"), Formula: WholeValue},
				{UpTo: dec("0"), Rate: dec("0.0595"), Formula: WholeValue},
			},
			QuadraticA:           dec("0.06571441"),
			QuadraticB:           dec("15"),
			TransferFee:          FeeSchedule{Base: dec("177")},
			MortgageRegistration: dec("177"),
		},
	},
})

// StampDuty returns the duty schedule for a state in fy and the tabulated
// year it was taken from.
func StampDuty(fy datetime.FinancialYear, state State) (StateDuty, datetime.FinancialYear, bool) {
	schedules, used := stampDuty.Resolve(fy)
	duty, ok := schedules[state]
	return duty, used, ok
}
