package loans

import (
	"testing"
)

func TestPrincipalAndInterestRepayment(t *testing.T) {
	tests := []struct {
		name       string
		loan       int64
		rate       float64
		termMonths int
		frequency  Frequency
		expected   int64
	}{
		{"Standard 30-year mortgage", 30000000, 6.0, 360, Monthly, 179865},
		{"5% 30-year mortgage", 20000000, 5.0, 360, Monthly, 107364},
		{"High interest personal loan", 1000000, 18.0, 36, Monthly, 36152},
		{"Zero interest loan", 1200000, 0, 12, Monthly, 100000},
		{"Weekly scales from monthly", 30000000, 6.0, 360, Weekly, 41507},
		{"Quarterly scales from monthly", 30000000, 6.0, 360, Quarterly, 539595},
		{"Annual scales from monthly", 1200000, 0, 12, Annually, 1200000},
		{"Zero term", 30000000, 6.0, 0, Monthly, 0},
		{"Zero loan", 0, 6.0, 360, Monthly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PrincipalAndInterestRepayment(tt.loan, tt.rate, tt.termMonths, tt.frequency)
			if result != tt.expected {
				t.Errorf("PrincipalAndInterestRepayment() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestInterestOnlyRepayment(t *testing.T) {
	tests := []struct {
		name      string
		loan      int64
		rate      float64
		frequency Frequency
		expected  int64
	}{
		{"Monthly", 48000000, 6.0, Monthly, 240000},
		{"Weekly", 48000000, 6.0, Weekly, 55385},
		{"Fortnightly", 48000000, 6.0, Fortnightly, 110769},
		{"Quarterly", 48000000, 6.0, Quarterly, 720000},
		{"Annually", 48000000, 6.0, Annually, 2880000},
		{"Zero rate", 48000000, 0, Monthly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InterestOnlyRepayment(tt.loan, tt.rate, tt.frequency)
			if result != tt.expected {
				t.Errorf("InterestOnlyRepayment() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestRepaymentMonotonicInLoanAmount(t *testing.T) {
	previous := int64(-1)
	for loan := int64(10000000); loan <= 100000000; loan += 1000000 {
		repayment := PrincipalAndInterestRepayment(loan, 9.5, 360, Monthly)
		if repayment <= previous {
			t.Fatalf("repayment for %d (%d) not greater than previous (%d)", loan, repayment, previous)
		}
		previous = repayment
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input     string
		expected  Frequency
		wantError bool
	}{
		{"", Monthly, false},
		{"Weekly", Weekly, false},
		{" fortnightly ", Fortnightly, false},
		{"annually", Annually, false},
		{"daily", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFrequency(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseFrequency(%q) expected error", tt.input)
				}
				return
			}
			if err != nil || f != tt.expected {
				t.Errorf("ParseFrequency(%q) = %q, %v; expected %q", tt.input, f, err, tt.expected)
			}
		})
	}
}

func TestTotalInterestOverLife(t *testing.T) {
	tests := []struct {
		name       string
		loan       int64
		rate       float64
		termMonths int
		ioMonths   int
		expected   int64
	}{
		{"Principal and interest", 30000000, 6.0, 360, 0, 34751457},
		{"Five years interest only then amortising", 30000000, 6.0, 360, 60, 36987126},
		{"Entirely interest only", 12000000, 6.0, 12, 12, 720000},
		{"Zero rate", 1200000, 0, 12, 0, 0},
		{"Zero loan", 0, 6.0, 360, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TotalInterestOverLife(tt.loan, tt.rate, tt.termMonths, tt.ioMonths)
			if result != tt.expected {
				t.Errorf("TotalInterestOverLife() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestBalanceAfterMonths(t *testing.T) {
	tests := []struct {
		name       string
		loan       int64
		rate       float64
		termMonths int
		elapsed    int
		ioMonths   int
		expected   int64
	}{
		{"Zero rate straight line", 1200000, 0, 12, 6, 0, 600000},
		{"One year into 30-year loan", 30000000, 6.0, 360, 12, 0, 29631596},
		{"During interest-only period", 30000000, 6.0, 360, 24, 60, 30000000},
		{"At end of interest-only period", 30000000, 6.0, 360, 60, 60, 30000000},
		{"After full term", 30000000, 6.0, 360, 360, 0, 0},
		{"Beyond full term", 30000000, 6.0, 360, 400, 0, 0},
		{"No months elapsed", 30000000, 6.0, 360, 0, 0, 30000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BalanceAfterMonths(tt.loan, tt.rate, tt.termMonths, tt.elapsed, tt.ioMonths)
			if result != tt.expected {
				t.Errorf("BalanceAfterMonths() = %d, expected %d", result, tt.expected)
			}
		})
	}
}

func TestExtraPaymentImpact(t *testing.T) {
	result := ExtraPaymentImpact(30000000, 6.0, 360, 20000)

	if result.OriginalInterest != 34751457 {
		t.Errorf("OriginalInterest = %d, expected 34751457", result.OriginalInterest)
	}
	if result.NewTermMonths != 279 {
		t.Errorf("NewTermMonths = %d, expected 279", result.NewTermMonths)
	}
	if result.MonthsSaved != 81 {
		t.Errorf("MonthsSaved = %d, expected 81", result.MonthsSaved)
	}
	if result.NewInterest != 25633999 {
		t.Errorf("NewInterest = %d, expected 25633999", result.NewInterest)
	}
	if result.InterestSaved != result.OriginalInterest-result.NewInterest {
		t.Errorf("InterestSaved = %d, inconsistent with original and new interest", result.InterestSaved)
	}
}

func TestExtraPaymentImpactDecimalTerm(t *testing.T) {
	tests := []struct {
		name         string
		extra        int64
		termMonths   int
		interestCent int64
	}{
		{"Extra $100", 10000, 278, 40242345},
		{"Extra $500", 50000, 217, 30191857},
		{"Extra $1,000", 100000, 172, 23221840},
	}

	baseline := TotalInterestOverLife(45000000, 6.25, 300, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtraPaymentImpact(45000000, 6.25, 300, tt.extra)
			if result.NewTermMonths != tt.termMonths {
				t.Errorf("NewTermMonths = %d, expected %d", result.NewTermMonths, tt.termMonths)
			}
			if result.NewInterest != tt.interestCent {
				t.Errorf("NewInterest = %d, expected %d", result.NewInterest, tt.interestCent)
			}
			if result.InterestSaved != baseline-tt.interestCent {
				t.Errorf("InterestSaved = %d, expected %d", result.InterestSaved, baseline-tt.interestCent)
			}
		})
	}
}

func TestExtraPaymentImpactZeroExtraMatchesBaseline(t *testing.T) {
	baseline := TotalInterestOverLife(45000000, 6.25, 300, 0)
	result := ExtraPaymentImpact(45000000, 6.25, 300, 0)

	if result.OriginalInterest != baseline || result.NewInterest != baseline {
		t.Errorf("zero extra payment changed interest: original %d new %d baseline %d",
			result.OriginalInterest, result.NewInterest, baseline)
	}
	if result.InterestSaved != 0 || result.MonthsSaved != 0 || result.NewTermMonths != 300 {
		t.Errorf("zero extra payment reported a benefit: %+v", result)
	}
}

func TestExtraPaymentImpactZeroRate(t *testing.T) {
	result := ExtraPaymentImpact(1200000, 0, 12, 20000)
	// 12,000 / (1,000 + 200) = 10 months
	if result.NewTermMonths != 10 || result.MonthsSaved != 2 {
		t.Errorf("zero-rate extra payment = %+v, expected 10 months and 2 saved", result)
	}
	if result.OriginalInterest != 0 || result.NewInterest != 0 {
		t.Errorf("zero-rate loan should carry no interest: %+v", result)
	}
}

func TestExtraPaymentImpactInvalidInputs(t *testing.T) {
	if got := ExtraPaymentImpact(0, 6, 360, 1000); got != (ExtraPaymentResult{}) {
		t.Errorf("zero loan = %+v, expected empty result", got)
	}
	if got := ExtraPaymentImpact(1000000, 6, -1, 1000); got != (ExtraPaymentResult{}) {
		t.Errorf("negative term = %+v, expected empty result", got)
	}
}

func TestOffsetAccount(t *testing.T) {
	tests := []struct {
		name           string
		loan           int64
		offset         int64
		rate           float64
		expectedRate   float64
		expectedSaving int64
	}{
		{"Quarter offset", 40000000, 10000000, 6.0, 4.5, 50000},
		{"No offset", 40000000, 0, 6.0, 6.0, 0},
		{"Offset exceeds loan", 40000000, 50000000, 6.0, 0, 200000},
		{"Zero loan", 0, 10000000, 6.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OffsetEffectiveRate(tt.loan, tt.offset, tt.rate); got != tt.expectedRate {
				t.Errorf("OffsetEffectiveRate() = %v, expected %v", got, tt.expectedRate)
			}
			if got := OffsetMonthlySaving(tt.loan, tt.offset, tt.rate); got != tt.expectedSaving {
				t.Errorf("OffsetMonthlySaving() = %d, expected %d", got, tt.expectedSaving)
			}
		})
	}
}
