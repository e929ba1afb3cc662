// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/serviceability/internal/affordability"
)

// FindReport finds a report by name in the reports slice.
// Returns a pointer to the report if found, nil otherwise.
func FindReport(reports []affordability.Report, name string) *affordability.Report {
	for i := range reports {
		if reports[i].Name == name {
			return &reports[i]
		}
	}
	return nil
}

// Int64Ptr returns a pointer to value.
func Int64Ptr(value int64) *int64 {
	return &value
}

// Float64Ptr returns a pointer to value.
func Float64Ptr(value float64) *float64 {
	return &value
}

// SingleBorrowerInputs is a $100,000 single applicant on the HEM benchmark
// buying at $600,000 with a 20% deposit at 6.5% over 30 years.
func SingleBorrowerInputs() affordability.Inputs {
	return affordability.Inputs{
		Borrower: affordability.BorrowerProfile{
			GrossAnnualIncome:  10000000,
			LivingExpensesType: affordability.LivingExpensesHEM,
		},
		PurchasePrice:  Int64Ptr(60000000),
		DepositPercent: Float64Ptr(20),
		InterestRate:   6.5,
		LoanTermYears:  30,
		FinancialYear:  "2024-25",
	}
}
