// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/serviceability/pkg/datetime"
)

// MaxLoanTermYears is the longest term lenders routinely assess.
const MaxLoanTermYears = 30

// ValidateDeposit checks the deposit settings of an assessment against its
// purchase price. Amounts are dollars.
func ValidateDeposit(name string, price, depositAmount, depositPercent *float64) []string {
	var warnings []string

	if depositAmount != nil && depositPercent != nil {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' sets both depositAmount and depositPercent - depositAmount takes priority", name))
	}
	if depositPercent != nil && (*depositPercent < 0 || *depositPercent > 100) {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' depositPercent %.2f is outside 0-100", name, *depositPercent))
	}
	if price == nil {
		if depositAmount != nil || depositPercent != nil {
			warnings = append(warnings, fmt.Sprintf("Assessment '%s' has a deposit but no purchasePrice - deposit is ignored", name))
		}
		return warnings
	}
	if depositAmount != nil && *depositAmount > *price {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' depositAmount %.2f exceeds purchasePrice %.2f - no loan is required", name, *depositAmount, *price))
	}
	return warnings
}

// ValidateRent flags rent supplied for an owner-occupied purchase.
func ValidateRent(name string, weeklyRent *float64, investment bool) string {
	if weeklyRent != nil && *weeklyRent > 0 && !investment {
		return fmt.Sprintf("Assessment '%s' has expectedWeeklyRent but is not marked as an investment", name)
	}
	return ""
}

// ValidateBuyerType flags first home buyer concessions that cannot apply.
func ValidateBuyerType(name string, firstHomeBuyer, investment bool, state string) []string {
	var warnings []string
	if firstHomeBuyer && investment {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' is both a first home buyer and an investment - first home concessions do not apply", name))
	}
	if firstHomeBuyer && state == "" {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' is a first home buyer but has no state - upfront costs are not estimated", name))
	}
	return warnings
}

// ValidateLoanTerms checks the interest rate and term for unusual values.
func ValidateLoanTerms(name string, interestRate float64, termYears int) []string {
	var warnings []string
	if interestRate == 0 {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' has a zero interest rate - only the buffer is assessed", name))
	}
	if termYears > MaxLoanTermYears {
		warnings = append(warnings, fmt.Sprintf("Assessment '%s' loan term of %d years exceeds the usual %d year maximum", name, termYears, MaxLoanTermYears))
	}
	return warnings
}

// ValidateFinancialYear warns when a financial year cannot be parsed and the
// current year will be used instead.
func ValidateFinancialYear(label, value string) string {
	if value == "" {
		return ""
	}
	if _, err := datetime.ParseFinancialYear(value); err != nil {
		return fmt.Sprintf("%s financial year %q is invalid - the current financial year will be used", label, value)
	}
	return ""
}

// ConfigValidator holds the fields of a configuration that validation inspects.
type ConfigValidator struct {
	FinancialYear string
	Assessments   []AssessmentConfig
}

// AssessmentConfig is one assessment as entered, in dollars.
type AssessmentConfig struct {
	Name               string
	PurchasePrice      *float64
	DepositAmount      *float64
	DepositPercent     *float64
	ExpectedWeeklyRent *float64
	InterestRate       float64
	LoanTermYears      int
	FinancialYear      string
	State              string
	FirstHomeBuyer     bool
	Investment         bool
	HasRisk            bool
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if len(cv.Assessments) == 0 {
		warnings = append(warnings, "Configuration has no assessments")
	}
	if w := ValidateFinancialYear("Configuration", cv.FinancialYear); w != "" {
		warnings = append(warnings, w)
	}

	seen := make(map[string]bool, len(cv.Assessments))
	for _, a := range cv.Assessments {
		if a.Name == "" {
			warnings = append(warnings, "Assessment with no name - results are hard to tell apart")
		} else if seen[a.Name] {
			warnings = append(warnings, fmt.Sprintf("Assessment '%s' is defined more than once", a.Name))
		}
		seen[a.Name] = true

		warnings = append(warnings, ValidateDeposit(a.Name, a.PurchasePrice, a.DepositAmount, a.DepositPercent)...)
		if w := ValidateRent(a.Name, a.ExpectedWeeklyRent, a.Investment); w != "" {
			warnings = append(warnings, w)
		}
		warnings = append(warnings, ValidateBuyerType(a.Name, a.FirstHomeBuyer, a.Investment, a.State)...)
		warnings = append(warnings, ValidateLoanTerms(a.Name, a.InterestRate, a.LoanTermYears)...)
		if w := ValidateFinancialYear(fmt.Sprintf("Assessment '%s'", a.Name), a.FinancialYear); w != "" {
			warnings = append(warnings, w)
		}
		if a.HasRisk && a.PurchasePrice == nil {
			warnings = append(warnings, fmt.Sprintf("Assessment '%s' requests risk metrics without a purchasePrice - metrics assume the maximum borrowing amount", a.Name))
		}
	}

	return warnings
}
