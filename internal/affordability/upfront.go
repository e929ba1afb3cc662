package affordability

import (
	"fmt"

	"github.com/iwvelando/serviceability/pkg/charges"
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// UpfrontCosts is the cash needed at settlement.
type UpfrontCosts struct {
	Deposit            int64                   `json:"deposit"`
	StampDuty          charges.StampDutyResult `json:"stampDuty"`
	LMI                charges.LMIResult       `json:"lmi"`
	TotalFundsRequired int64                   `json:"totalFundsRequired"`
}

func upfrontCosts(priceCents, depositCents, loanCents int64, p PurchaseDetails, fy datetime.FinancialYear) (UpfrontCosts, error) {
	state, err := regulatory.ParseState(string(p.State))
	if err != nil {
		return UpfrontCosts{}, err
	}
	duty, err := charges.StampDuty(priceCents, state, charges.StampDutyOptions{
		FirstHomeBuyer:      p.FirstHomeBuyer,
		Investment:          p.Investment,
		NewBuild:            p.NewBuild,
		VacantLand:          p.VacantLand,
		OffThePlan:          p.OffThePlan,
		ConstructionPercent: p.ConstructionPercent,
		HasMortgage:         loanCents > 0,
		FinancialYear:       fy,
	})
	if err != nil {
		return UpfrontCosts{}, fmt.Errorf("upfront costs: %w", err)
	}
	lmi := charges.LMI(priceCents, loanCents)

	return UpfrontCosts{
		Deposit:            depositCents,
		StampDuty:          duty,
		LMI:                lmi,
		TotalFundsRequired: depositCents + duty.TotalGovernmentCharges + lmi.LMIAmount,
	}, nil
}
