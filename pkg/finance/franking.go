package finance

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/serviceability/pkg/mathutil"
)

var one = decimal.NewFromInt(1)

// CompanyTaxRate is the corporate rate used to gross up franked dividends.
var CompanyTaxRate = decimal.NewFromFloat(0.30)

// FrankedDividend is a cash dividend with its attached franking credit.
type FrankedDividend struct {
	Dividend       int64 `json:"dividend"`
	FrankingCredit int64 `json:"frankingCredit"`
	GrossedUp      int64 `json:"grossedUp"`
}

// GrossUpFranked attaches the franking credit to a cash dividend:
// dividend * rate/(1-rate) * franking share, at the company tax rate.
func GrossUpFranked(dividendCents int64, frankingPercent float64) FrankedDividend {
	if dividendCents <= 0 {
		return FrankedDividend{}
	}
	share := mathutil.Fraction(min(max(frankingPercent, 0), 100))
	factor := mathutil.Div(CompanyTaxRate, one.Sub(CompanyTaxRate))
	credit := mathutil.RoundCents(mathutil.FromCents(dividendCents).Mul(factor).Mul(share))

	return FrankedDividend{
		Dividend:       dividendCents,
		FrankingCredit: credit,
		GrossedUp:      dividendCents + credit,
	}
}
