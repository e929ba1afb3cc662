package regulatory

import "github.com/shopspring/decimal"

// LMIBand prices lenders mortgage insurance for LVRs above AboveLVR and up
// to UpToLVR (zero means no upper bound). Rate is a percentage of the loan.
type LMIBand struct {
	AboveLVR decimal.Decimal
	UpToLVR  decimal.Decimal
	Rate     decimal.Decimal
}

// Contains reports whether the band covers the given LVR percentage.
func (b LMIBand) Contains(lvr decimal.Decimal) bool {
	return lvr.GreaterThan(b.AboveLVR) && (b.UpToLVR.IsZero() || lvr.LessThanOrEqual(b.UpToLVR))
}

// LoanSizeTier scales the band rate for larger loans. UpTo is in cents;
// zero marks the open-ended top tier.
type LoanSizeTier struct {
	UpTo       int64
	Multiplier decimal.Decimal
}

// Indicative insurer pricing; individual lenders and insurers differ.
var lmiBands = []LMIBand{
	{AboveLVR: dec("80"), UpToLVR: dec("85"), Rate: dec("1.0")},
	{AboveLVR: dec("85"), UpToLVR: dec("90"), Rate: dec("2.0")},
	{AboveLVR: dec("90"), UpToLVR: dec("95"), Rate: dec("3.2")},
	{AboveLVR: dec("95"), UpToLVR: dec("0"), Rate: dec("4.5")},
}

var loanSizeTiers = []LoanSizeTier{
	{UpTo: 50000000, Multiplier: dec("1.0")},
	{UpTo: 75000000, Multiplier: dec("1.15")},
	{UpTo: 100000000, Multiplier: dec("1.3")},
	{UpTo: 0, Multiplier: dec("1.5")},
}

// LMIBands returns the LVR pricing bands in ascending order.
func LMIBands() []LMIBand {
	return append([]LMIBand(nil), lmiBands...)
}

// LMIBandFor returns the band covering lvr, if any.
func LMIBandFor(lvr decimal.Decimal) (LMIBand, bool) {
	for _, band := range lmiBands {
		if band.Contains(lvr) {
			return band, true
		}
	}
	return LMIBand{}, false
}

// LoanSizeMultiplier returns the multiplier tier for a loan amount in cents.
func LoanSizeMultiplier(loanCents int64) decimal.Decimal {
	for _, tier := range loanSizeTiers {
		if tier.UpTo == 0 || loanCents <= tier.UpTo {
			return tier.Multiplier
		}
	}
	return loanSizeTiers[len(loanSizeTiers)-1].Multiplier
}
