package testutil

import (
	"testing"

	"github.com/iwvelando/serviceability/internal/affordability"
)

func TestFindReport(t *testing.T) {
	reports := []affordability.Report{
		{Name: "Scenario A", Results: affordability.Results{MaxBorrowingAmount: 100000}},
		{Name: "Scenario B", Results: affordability.Results{MaxBorrowingAmount: 200000}},
		{Name: "Another Scenario", Results: affordability.Results{MaxBorrowingAmount: 300000}},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedValue int64
	}{
		{"Find existing scenario A", "Scenario A", true, 100000},
		{"Find existing scenario B", "Scenario B", true, 200000},
		{"Find scenario with spaces", "Another Scenario", true, 300000},
		{"Non-existent scenario", "Missing", false, 0},
		{"Case sensitive search", "scenario a", false, 0},
		{"Empty name", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindReport(reports, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindReport(%q) expected nil, got %q", tt.searchName, result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindReport(%q) returned nil", tt.searchName)
			}
			if result.Results.MaxBorrowingAmount != tt.expectedValue {
				t.Errorf("FindReport(%q) value = %d, expected %d", tt.searchName, result.Results.MaxBorrowingAmount, tt.expectedValue)
			}
		})
	}
}

func TestFindReportReturnsPointerIntoSlice(t *testing.T) {
	reports := []affordability.Report{{Name: "only"}}
	FindReport(reports, "only").Results.MaxBorrowingAmount = 42
	if reports[0].Results.MaxBorrowingAmount != 42 {
		t.Errorf("FindReport should return a pointer into the slice")
	}
}

func TestFindReportEmptySlice(t *testing.T) {
	if FindReport(nil, "x") != nil {
		t.Errorf("FindReport on nil slice should return nil")
	}
}

func TestSingleBorrowerInputsValid(t *testing.T) {
	in := SingleBorrowerInputs()
	if err := in.Validate(); err != nil {
		t.Errorf("SingleBorrowerInputs() failed validation: %v", err)
	}
	if *in.PurchasePrice != 60000000 || *in.DepositPercent != 20 {
		t.Errorf("unexpected fixture %+v", in)
	}
}
