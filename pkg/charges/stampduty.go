// Package charges calculates the government charges and lenders mortgage
// insurance attached to a property purchase. Inputs and results are cents;
// the schedules themselves are expressed in whole dollars.
package charges

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// Concession names reported in StampDutyResult.ConcessionApplied.
const (
	ConcessionNone               = ""
	ConcessionFirstHomeExemption = "first home buyer exemption"
	ConcessionFirstHomePartial   = "first home buyer concession"
	ConcessionFirstHomeNewBuild  = "first home buyer new build exemption"
	ConcessionOffThePlan         = "off-the-plan concession"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// StampDutyOptions describes the buyer and the purchase.
type StampDutyOptions struct {
	FirstHomeBuyer      bool
	Investment          bool
	NewBuild            bool
	VacantLand          bool
	OffThePlan          bool
	ConstructionPercent float64
	HasMortgage         bool
	FinancialYear       datetime.FinancialYear
}

// StampDutyResult is the duty and fee breakdown for a purchase.
type StampDutyResult struct {
	State                  regulatory.State `json:"state"`
	FinancialYear          string           `json:"financialYear"`
	StampDuty              int64            `json:"stampDuty"`
	TransferFee            int64            `json:"transferFee"`
	MortgageRegistration   int64            `json:"mortgageRegistration"`
	TotalGovernmentCharges int64            `json:"totalGovernmentCharges"`
	IsFirstHomeBuyerExempt bool             `json:"isFirstHomeBuyerExempt"`
	ConcessionApplied      string           `json:"concessionApplied,omitempty"`
}

type candidate struct {
	duty       decimal.Decimal
	concession string
	exempt     bool
}

// StampDuty calculates transfer duty, the land titles transfer fee and, when a
// mortgage is registered, the mortgage registration fee. First home buyer
// relief applies only to owner-occupiers. When more than one concession is
// available each is computed from the full duty and the lowest result wins;
// concessions never stack.
func StampDuty(purchasePriceCents int64, state regulatory.State, opts StampDutyOptions) (StampDutyResult, error) {
	schedule, used, ok := regulatory.StampDuty(opts.FinancialYear, state)
	if !ok {
		return StampDutyResult{}, fmt.Errorf("stamp duty for %q: %w", state, regulatory.ErrUnknownState)
	}

	price := mathutil.CentsToDollars(max(purchasePriceCents, 0))
	original := dutyOn(schedule, price)
	best := candidate{duty: original}

	for _, c := range concessions(schedule, price, original, opts) {
		if c.duty.LessThan(best.duty) {
			best = c
		}
	}

	result := StampDutyResult{
		State:                  state,
		FinancialYear:          used.String(),
		StampDuty:              mathutil.DollarsToCents(best.duty),
		TransferFee:            mathutil.DollarsToCents(transferFee(schedule.TransferFee, price)),
		IsFirstHomeBuyerExempt: best.exempt,
		ConcessionApplied:      best.concession,
	}
	if opts.HasMortgage {
		result.MortgageRegistration = mathutil.DollarsToCents(schedule.MortgageRegistration)
	}
	result.TotalGovernmentCharges = result.StampDuty + result.TransferFee + result.MortgageRegistration
	return result, nil
}

func concessions(schedule regulatory.StateDuty, price, original decimal.Decimal, opts StampDutyOptions) []candidate {
	var out []candidate
	ownerOccupiedFirstHome := opts.FirstHomeBuyer && !opts.Investment

	if ownerOccupiedFirstHome && schedule.FirstHomeBuyer.Available() {
		if c, ok := firstHomeConcession(schedule.FirstHomeBuyer, price, original, opts); ok {
			out = append(out, c)
		}
	}

	if rule := schedule.OffThePlan; rule != nil && opts.OffThePlan && (rule.AllBuyers || ownerOccupiedFirstHome) {
		share := decimal.NewFromFloat(min(max(opts.ConstructionPercent, 0), 100))
		dutiable := price.Sub(mathutil.Div(price.Mul(share), hundred))
		out = append(out, candidate{duty: dutyOn(schedule, dutiable), concession: ConcessionOffThePlan})
	}
	return out
}

func firstHomeConcession(rule regulatory.FirstHomeBuyerRule, price, original decimal.Decimal, opts StampDutyOptions) (candidate, bool) {
	if rule.NewBuildUncapped && (opts.NewBuild || opts.VacantLand) {
		return candidate{duty: decimal.Zero, concession: ConcessionFirstHomeNewBuild, exempt: true}, true
	}
	if !rule.FullExemptionUpTo.IsPositive() {
		return candidate{}, false
	}
	if price.LessThanOrEqual(rule.FullExemptionUpTo) {
		return candidate{duty: decimal.Zero, concession: ConcessionFirstHomeExemption, exempt: true}, true
	}
	if price.LessThan(rule.ConcessionUpTo) {
		span := rule.ConcessionUpTo.Sub(rule.FullExemptionUpTo)
		payable := mathutil.Div(price.Sub(rule.FullExemptionUpTo), span)
		return candidate{duty: original.Mul(payable), concession: ConcessionFirstHomePartial}, true
	}
	return candidate{}, false
}

// dutyOn applies the bracket containing value. Marginal brackets chain from
// the cumulative base of the bracket below.
func dutyOn(schedule regulatory.StateDuty, value decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return decimal.Zero
	}
	previous := decimal.Zero
	for _, b := range schedule.Brackets {
		if b.UpTo.IsZero() || value.LessThanOrEqual(b.UpTo) {
			switch b.Formula {
			case regulatory.WholeValue:
				return value.Mul(b.Rate)
			case regulatory.Quadratic:
				v := mathutil.Div(value, thousand)
				return schedule.QuadraticA.Mul(v).Mul(v).Add(schedule.QuadraticB.Mul(v))
			default:
				return b.Base.Add(value.Sub(previous).Mul(b.Rate))
			}
		}
		previous = b.UpTo
	}
	return decimal.Zero
}

// transferFee charges PerThousand for every $1,000 or part above the free threshold.
func transferFee(fee regulatory.FeeSchedule, price decimal.Decimal) decimal.Decimal {
	total := fee.Base
	if fee.PerThousand.IsPositive() && price.GreaterThan(fee.FreeThreshold) {
		units := mathutil.Div(price.Sub(fee.FreeThreshold), thousand).Ceil()
		total = total.Add(units.Mul(fee.PerThousand))
	}
	if fee.Cap.IsPositive() && total.GreaterThan(fee.Cap) {
		total = fee.Cap
	}
	return total
}
