package affordability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStressTests(t *testing.T) {
	in := firstHomeInputs()
	r, err := newTestEngine().Calculate(in)
	require.NoError(t, err)

	scenarios := GenerateStressTests(in, r)
	require.Len(t, scenarios, 3)

	expected := []struct {
		increase  float64
		rate      float64
		repayment int64
		cashflow  int64
	}{
		{1, 7.5, 335623, 77810},
		{2, 8.5, 369078, 44355},
		{3, 9.5, 403610, 9823},
	}
	for i, want := range expected {
		s := scenarios[i]
		assert.Equal(t, want.increase, s.RateIncrease)
		assert.Equal(t, want.rate, s.InterestRate)
		assert.Equal(t, want.repayment, s.MonthlyRepayment)
		assert.Equal(t, want.cashflow, s.MonthlyCashflow)
		assert.Equal(t, StatusGreen, s.Status)
		assert.Contains(t, s.Reason, "to spare")
	}
}

func TestGenerateStressTestsClassifiesShortfalls(t *testing.T) {
	in := firstHomeInputs()
	r := Results{ProposedLoanAmount: 48000000, AvailableForHousing: 350000}

	scenarios := GenerateStressTests(in, r)
	require.Len(t, scenarios, 3)

	assert.Equal(t, StatusGreen, scenarios[0].Status)
	assert.Equal(t, int64(-19078), scenarios[1].MonthlyCashflow)
	assert.Equal(t, StatusAmber, scenarios[1].Status)
	assert.Contains(t, scenarios[1].Reason, "$190.78")
	assert.Equal(t, int64(-53610), scenarios[2].MonthlyCashflow)
	assert.Equal(t, StatusRed, scenarios[2].Status)
}

func TestStressStatusBoundaries(t *testing.T) {
	assert.Equal(t, StatusGreen, stressStatus(0))
	assert.Equal(t, StatusAmber, stressStatus(-1))
	assert.Equal(t, StatusAmber, stressStatus(-50000))
	assert.Equal(t, StatusRed, stressStatus(-50001))
}
