package charges

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// LMIResult is the lenders mortgage insurance assessment for a loan.
type LMIResult struct {
	LMIAmount   int64   `json:"lmiAmount"`
	LVR         float64 `json:"lvr"`
	RequiresLMI bool    `json:"requiresLmi"`
	LMIRate     float64 `json:"lmiRate"`
}

// LMI prices mortgage insurance from the loan-to-value ratio. No premium is
// payable at or below 80% LVR. Above it, the band rate scaled by the loan
// size multiplier is applied to the loan amount.
func LMI(propertyValueCents, loanCents int64) LMIResult {
	if propertyValueCents <= 0 || loanCents <= 0 {
		return LMIResult{}
	}

	lvr := mathutil.Div(mathutil.FromCents(loanCents).Mul(hundred), mathutil.FromCents(propertyValueCents))
	result := LMIResult{LVR: mathutil.RoundHalfUp(lvr, 2)}
	if lvr.LessThanOrEqual(decimal.NewFromFloat(constants.NoLMIMaxLVR)) {
		return result
	}

	band, ok := regulatory.LMIBandFor(lvr)
	if !ok {
		return result
	}
	rate := band.Rate.Mul(regulatory.LoanSizeMultiplier(loanCents))

	result.RequiresLMI = true
	result.LMIRate = mathutil.RoundHalfUp(rate, 4)
	result.LMIAmount = mathutil.RoundCents(mathutil.Div(mathutil.FromCents(loanCents).Mul(rate), hundred))
	return result
}
