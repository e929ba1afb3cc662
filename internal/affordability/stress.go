package affordability

import (
	"fmt"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/format"
	"github.com/iwvelando/serviceability/pkg/loans"
	"github.com/iwvelando/serviceability/pkg/mathutil"
)

// StressTestScenario is the proposed loan repriced after a rate rise.
type StressTestScenario struct {
	RateIncrease     float64 `json:"rateIncrease"`
	InterestRate     float64 `json:"interestRate"`
	MonthlyRepayment int64   `json:"monthlyRepayment"`
	MonthlyCashflow  int64   `json:"monthlyCashflow"`
	Status           Status  `json:"status"`
	Reason           string  `json:"reason"`
}

// GenerateStressTests reprices the proposed loan at the nominal rate plus
// each standard increase and measures the cashflow left from the amount
// available for housing.
func GenerateStressTests(in Inputs, r Results) []StressTestScenario {
	termMonths := in.LoanTermYears * constants.MonthsPerYear
	scenarios := make([]StressTestScenario, 0, len(constants.StressRateIncreases))

	for _, increase := range constants.StressRateIncreases {
		rate := mathutil.Rate(in.InterestRate).Add(mathutil.Rate(increase)).InexactFloat64()
		repayment := loans.Repayment(r.ProposedLoanAmount, rate, termMonths, in.InterestOnly, loans.Monthly)
		cashflow := r.AvailableForHousing - repayment

		scenario := StressTestScenario{
			RateIncrease:     increase,
			InterestRate:     rate,
			MonthlyRepayment: repayment,
			MonthlyCashflow:  cashflow,
			Status:           stressStatus(cashflow),
		}
		switch scenario.Status {
		case StatusGreen:
			scenario.Reason = fmt.Sprintf("Repayments remain covered with %s a month to spare.", format.Currency(cashflow))
		case StatusAmber:
			scenario.Reason = fmt.Sprintf("A monthly shortfall of %s would need to come from savings.", format.Currency(-cashflow))
		default:
			scenario.Reason = fmt.Sprintf("A monthly shortfall of %s is unlikely to be sustainable.", format.Currency(-cashflow))
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios
}

func stressStatus(cashflowCents int64) Status {
	switch {
	case cashflowCents >= 0:
		return StatusGreen
	case cashflowCents >= constants.StressAmberFloorCents:
		return StatusAmber
	default:
		return StatusRed
	}
}
