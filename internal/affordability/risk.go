package affordability

import (
	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/household"
	"github.com/iwvelando/serviceability/pkg/loans"
	"github.com/iwvelando/serviceability/pkg/mathutil"
)

// RiskInputs describes an investment property for the risk metrics.
type RiskInputs struct {
	LoanAmount              int64   `json:"loanAmount"`
	InterestRate            float64 `json:"interestRate"`
	LoanTermYears           int     `json:"loanTermYears"`
	InterestOnly            bool    `json:"interestOnly"`
	WeeklyRent              int64   `json:"weeklyRent"`
	MonthlyPropertyExpenses int64   `json:"monthlyPropertyExpenses"`
	CashBuffer              int64   `json:"cashBuffer"`
}

// RiskMetrics summarises how much an investment property can absorb.
type RiskMetrics struct {
	MonthlyRent       int64   `json:"monthlyRent"`
	MonthlyInterest   int64   `json:"monthlyInterest"`
	MonthlyRepayment  int64   `json:"monthlyRepayment"`
	MonthlyCashflow   int64   `json:"monthlyCashflow"`
	MaxVacancyPercent float64 `json:"maxVacancyPercent"`
	RateSensitivity   int64   `json:"rateSensitivity"`
	BufferMonths      int     `json:"bufferMonths"`
	BreakEvenRate     float64 `json:"breakEvenRate"`
	NegativelyGeared  bool    `json:"negativelyGeared"`
	MonthlyOutgoings  int64   `json:"monthlyOutgoings"`
}

// CalculateRiskMetrics derives the vacancy tolerance, rate sensitivity, cash
// buffer runway and break-even interest rate of an investment property.
func CalculateRiskMetrics(in RiskInputs) RiskMetrics {
	weekly := mathutil.NonNegative(in.WeeklyRent)
	expenses := mathutil.NonNegative(in.MonthlyPropertyExpenses)
	loan := mathutil.NonNegative(in.LoanAmount)
	annualRent := weekly * constants.WeeksPerYear
	annualExpenses := expenses * constants.MonthsPerYear

	m := RiskMetrics{
		MonthlyRent:      household.Monthly(annualRent),
		MonthlyInterest:  loans.InterestOnlyRepayment(loan, in.InterestRate, loans.Monthly),
		MonthlyRepayment: loans.Repayment(loan, in.InterestRate, in.LoanTermYears*constants.MonthsPerYear, in.InterestOnly, loans.Monthly),
		RateSensitivity:  loans.InterestOnlyRepayment(loan, 1, loans.Monthly),
	}
	m.MonthlyOutgoings = m.MonthlyRepayment + expenses
	m.MonthlyCashflow = m.MonthlyRent - m.MonthlyOutgoings
	m.NegativelyGeared = m.MonthlyRent < expenses+m.MonthlyInterest

	// Rent can fall by this share before it no longer covers expenses and interest.
	if m.MonthlyRent > 0 {
		margin := m.MonthlyRent - expenses - m.MonthlyInterest
		if margin > 0 {
			m.MaxVacancyPercent = mathutil.PercentOf(mathutil.FromCents(margin), mathutil.FromCents(m.MonthlyRent), 1)
		}
	}

	if m.MonthlyOutgoings > 0 {
		buffer := mathutil.FromCents(mathutil.NonNegative(in.CashBuffer))
		m.BufferMonths = int(mathutil.Div(buffer, mathutil.FromCents(m.MonthlyOutgoings)).Floor().IntPart())
	}

	if loan > 0 {
		net := mathutil.FromCents(annualRent - annualExpenses)
		if net.IsPositive() {
			m.BreakEvenRate = mathutil.PercentOf(net, mathutil.FromCents(loan), 2)
		}
	}
	return m
}

// RiskInputsFor builds risk inputs for the proposed loan at the nominal rate.
func RiskInputsFor(in Inputs, r Results, monthlyPropertyExpenses, cashBuffer int64) RiskInputs {
	var rent int64
	if in.ExpectedWeeklyRent != nil {
		rent = *in.ExpectedWeeklyRent
	}
	return RiskInputs{
		LoanAmount:              r.ProposedLoanAmount,
		InterestRate:            in.InterestRate,
		LoanTermYears:           in.LoanTermYears,
		InterestOnly:            in.InterestOnly,
		WeeklyRent:              rent,
		MonthlyPropertyExpenses: monthlyPropertyExpenses,
		CashBuffer:              cashBuffer,
	}
}
