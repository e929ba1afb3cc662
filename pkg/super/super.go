// Package super applies the superannuation contribution caps and the
// super guarantee rate for a financial year.
package super

import (
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// HeadroomResult reports how much of each contribution cap remains, and any
// excess over it, for the year's contributions so far.
type HeadroomResult struct {
	FinancialYear            string `json:"financialYear"`
	ConcessionalCap          int64  `json:"concessionalCap"`
	ConcessionalRemaining    int64  `json:"concessionalRemaining"`
	ConcessionalExcess       int64  `json:"concessionalExcess"`
	NonConcessionalCap       int64  `json:"nonConcessionalCap"`
	NonConcessionalRemaining int64  `json:"nonConcessionalRemaining"`
	NonConcessionalExcess    int64  `json:"nonConcessionalExcess"`
}

// Headroom compares concessional and non-concessional contributions with the caps for fy.
func Headroom(concessionalCents, nonConcessionalCents int64, fy datetime.FinancialYear) HeadroomResult {
	caps, used := regulatory.SuperCaps(fy)
	concessional := mathutil.NonNegative(concessionalCents)
	nonConcessional := mathutil.NonNegative(nonConcessionalCents)

	return HeadroomResult{
		FinancialYear:            used.String(),
		ConcessionalCap:          caps.ConcessionalCap,
		ConcessionalRemaining:    mathutil.NonNegative(caps.ConcessionalCap - concessional),
		ConcessionalExcess:       mathutil.NonNegative(concessional - caps.ConcessionalCap),
		NonConcessionalCap:       caps.NonConcessionalCap,
		NonConcessionalRemaining: mathutil.NonNegative(caps.NonConcessionalCap - nonConcessional),
		NonConcessionalExcess:    mathutil.NonNegative(nonConcessional - caps.NonConcessionalCap),
	}
}

// Guarantee returns the employer super guarantee payable on ordinary time earnings.
func Guarantee(salaryCents int64, fy datetime.FinancialYear) int64 {
	if salaryCents <= 0 {
		return 0
	}
	caps, _ := regulatory.SuperCaps(fy)
	return mathutil.RoundCents(mathutil.ApplyPercent(salaryCents, caps.GuaranteeRate))
}
