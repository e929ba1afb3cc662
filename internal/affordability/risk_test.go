package affordability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRiskMetrics(t *testing.T) {
	tests := []struct {
		name     string
		in       RiskInputs
		expected RiskMetrics
	}{
		{
			name: "Negatively geared at 6.5%",
			in: RiskInputs{LoanAmount: 48000000, InterestRate: 6.5, LoanTermYears: 30,
				WeeklyRent: 60000, MonthlyPropertyExpenses: 40000, CashBuffer: 2000000},
			expected: RiskMetrics{
				MonthlyRent:       260000,
				MonthlyInterest:   260000,
				MonthlyRepayment:  303393,
				MonthlyCashflow:   -83393,
				MaxVacancyPercent: 0,
				RateSensitivity:   40000,
				BufferMonths:      5,
				BreakEvenRate:     5.5,
				NegativelyGeared:  true,
				MonthlyOutgoings:  343393,
			},
		},
		{
			name: "Positively geared smaller loan",
			in: RiskInputs{LoanAmount: 20000000, InterestRate: 6.0, LoanTermYears: 30,
				WeeklyRent: 60000, MonthlyPropertyExpenses: 40000},
			expected: RiskMetrics{
				MonthlyRent:       260000,
				MonthlyInterest:   100000,
				MonthlyRepayment:  119910,
				MonthlyCashflow:   100090,
				MaxVacancyPercent: 46.2,
				RateSensitivity:   16667,
				BufferMonths:      0,
				BreakEvenRate:     13.2,
				NegativelyGeared:  false,
				MonthlyOutgoings:  159910,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateRiskMetrics(tt.in))
		})
	}
}

func TestCalculateRiskMetricsZeroLoanAndRent(t *testing.T) {
	m := CalculateRiskMetrics(RiskInputs{LoanTermYears: 30, CashBuffer: 100000})

	assert.Zero(t, m.MaxVacancyPercent)
	assert.Zero(t, m.BreakEvenRate)
	assert.Zero(t, m.BufferMonths)
	assert.Zero(t, m.RateSensitivity)
}

func TestAssessBundlesReports(t *testing.T) {
	in := firstHomeInputs()
	in.ExpectedWeeklyRent = ptr(int64(60000))

	report, err := newTestEngine().Assess(Request{
		Name:       "investor",
		Inputs:     in,
		StressTest: true,
		Risk:       &RiskAssumptions{MonthlyPropertyExpenses: 40000, CashBuffer: 2000000},
	})
	require.NoError(t, err)

	assert.Equal(t, "investor", report.Name)
	assert.Len(t, report.StressTests, 3)
	require.NotNil(t, report.Risk)
	assert.Equal(t, int64(303393), report.Risk.MonthlyRepayment)
	assert.Equal(t, 5.5, report.Risk.BreakEvenRate)
}

func TestAssessAllStopsOnInvalidRequest(t *testing.T) {
	bad := firstHomeInputs()
	bad.LoanTermYears = 0

	_, err := newTestEngine().AssessAll([]Request{{Name: "ok", Inputs: firstHomeInputs()}, {Name: "broken", Inputs: bad}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)
}
