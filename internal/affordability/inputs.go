package affordability

import (
	"errors"
	"fmt"

	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// Validation errors callers can branch on.
var (
	ErrDeclaredExpensesMissing   = errors.New("declared living expenses required when livingExpensesType is declared")
	ErrUnknownLivingExpensesType = errors.New("unknown living expenses type")
	ErrUnknownDebtType           = errors.New("unknown debt type")
	ErrUnknownDebtOwner          = errors.New("unknown debt owner")
)

// LivingExpensesType selects how monthly living costs are assessed.
type LivingExpensesType string

// Living expense assessment methods.
const (
	LivingExpensesHEM      LivingExpensesType = "hem"
	LivingExpensesDeclared LivingExpensesType = "declared"
)

// DebtType classifies an existing commitment.
type DebtType string

// Supported debt types.
const (
	DebtCreditCard    DebtType = "credit-card"
	DebtPersonalLoan  DebtType = "personal-loan"
	DebtCarLoan       DebtType = "car-loan"
	DebtHECSHELP      DebtType = "hecs-help"
	DebtOtherMortgage DebtType = "other-mortgage"
	DebtOther         DebtType = "other"
)

// DebtOwner names whose income an income-contingent debt is assessed against.
type DebtOwner string

// Debt owners; empty means the primary borrower.
const (
	OwnerBorrower DebtOwner = "borrower"
	OwnerPartner  DebtOwner = "partner"
)

// BorrowerProfile is the household applying for the loan. Amounts are annual cents.
type BorrowerProfile struct {
	GrossAnnualIncome      int64              `json:"grossAnnualIncome"`
	PartnerGrossIncome     *int64             `json:"partnerGrossIncome,omitempty"`
	NumberOfDependents     int                `json:"numberOfDependents"`
	LivingExpensesType     LivingExpensesType `json:"livingExpensesType"`
	DeclaredLivingExpenses *int64             `json:"declaredLivingExpenses,omitempty"`
}

// HasPartner reports whether a partner's income is part of the application.
func (b BorrowerProfile) HasPartner() bool {
	return b.PartnerGrossIncome != nil
}

// ExistingDebt is a commitment that reduces serviceability.
type ExistingDebt struct {
	Type             DebtType  `json:"type"`
	Owner            DebtOwner `json:"owner,omitempty"`
	CreditLimit      *int64    `json:"creditLimit,omitempty"`
	CurrentBalance   int64     `json:"currentBalance"`
	MonthlyRepayment *int64    `json:"monthlyRepayment,omitempty"`
	InterestRate     *float64  `json:"interestRate,omitempty"`
}

// Inputs is one affordability assessment. Money is in cents and rates are
// plain percentages.
type Inputs struct {
	Borrower           BorrowerProfile  `json:"borrower"`
	Debts              []ExistingDebt   `json:"debts,omitempty"`
	PurchasePrice      *int64           `json:"purchasePrice,omitempty"`
	DepositAmount      *int64           `json:"depositAmount,omitempty"`
	DepositPercent     *float64         `json:"depositPercent,omitempty"`
	InterestRate       float64          `json:"interestRate"`
	APRABuffer         *float64         `json:"apraBuffer,omitempty"`
	LoanTermYears      int              `json:"loanTermYears"`
	InterestOnly       bool             `json:"interestOnly"`
	ExpectedWeeklyRent *int64           `json:"expectedWeeklyRent,omitempty"`
	FinancialYear      string           `json:"financialYear,omitempty"`
	Purchase           *PurchaseDetails `json:"purchase,omitempty"`
}

// PurchaseDetails enables the upfront cost estimate for a purchase price.
type PurchaseDetails struct {
	State               regulatory.State `json:"state"`
	FirstHomeBuyer      bool             `json:"firstHomeBuyer"`
	Investment          bool             `json:"investment"`
	NewBuild            bool             `json:"newBuild"`
	VacantLand          bool             `json:"vacantLand"`
	OffThePlan          bool             `json:"offThePlan"`
	ConstructionPercent float64          `json:"constructionPercent"`
}

// Validate checks the inputs for contract violations and reports every
// problem found.
func (in Inputs) Validate() error {
	var errs []error
	b := in.Borrower

	if b.GrossAnnualIncome < 0 {
		errs = append(errs, fmt.Errorf("gross annual income cannot be negative"))
	}
	if b.PartnerGrossIncome != nil && *b.PartnerGrossIncome < 0 {
		errs = append(errs, fmt.Errorf("partner gross income cannot be negative"))
	}
	if b.NumberOfDependents < 0 {
		errs = append(errs, fmt.Errorf("number of dependents cannot be negative"))
	}
	switch b.LivingExpensesType {
	case LivingExpensesHEM, "":
	case LivingExpensesDeclared:
		if b.DeclaredLivingExpenses == nil {
			errs = append(errs, ErrDeclaredExpensesMissing)
		} else if *b.DeclaredLivingExpenses < 0 {
			errs = append(errs, fmt.Errorf("declared living expenses cannot be negative"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownLivingExpensesType, b.LivingExpensesType))
	}

	for i, d := range in.Debts {
		switch d.Type {
		case DebtCreditCard, DebtPersonalLoan, DebtCarLoan, DebtHECSHELP, DebtOtherMortgage, DebtOther:
		default:
			errs = append(errs, fmt.Errorf("debt %d: %w %q", i, ErrUnknownDebtType, d.Type))
		}
		switch d.Owner {
		case "", OwnerBorrower:
		case OwnerPartner:
			if !b.HasPartner() {
				errs = append(errs, fmt.Errorf("debt %d: owned by partner but no partner income given", i))
			}
		default:
			errs = append(errs, fmt.Errorf("debt %d: %w %q", i, ErrUnknownDebtOwner, d.Owner))
		}
		if d.CurrentBalance < 0 {
			errs = append(errs, fmt.Errorf("debt %d: current balance cannot be negative", i))
		}
		if d.CreditLimit != nil && *d.CreditLimit < 0 {
			errs = append(errs, fmt.Errorf("debt %d: credit limit cannot be negative", i))
		}
		if d.MonthlyRepayment != nil && *d.MonthlyRepayment < 0 {
			errs = append(errs, fmt.Errorf("debt %d: monthly repayment cannot be negative", i))
		}
	}

	if in.PurchasePrice != nil && *in.PurchasePrice < 0 {
		errs = append(errs, fmt.Errorf("purchase price cannot be negative"))
	}
	if in.DepositAmount != nil && *in.DepositAmount < 0 {
		errs = append(errs, fmt.Errorf("deposit amount cannot be negative"))
	}
	if in.DepositPercent != nil && (*in.DepositPercent < 0 || *in.DepositPercent > 100) {
		errs = append(errs, fmt.Errorf("deposit percent must be between 0 and 100, got %v", *in.DepositPercent))
	}
	if in.InterestRate < 0 {
		errs = append(errs, fmt.Errorf("interest rate cannot be negative"))
	}
	if in.APRABuffer != nil && *in.APRABuffer < 0 {
		errs = append(errs, fmt.Errorf("APRA buffer cannot be negative"))
	}
	if in.LoanTermYears <= 0 {
		errs = append(errs, fmt.Errorf("loan term must be at least one year, got %d", in.LoanTermYears))
	}
	if in.ExpectedWeeklyRent != nil && *in.ExpectedWeeklyRent < 0 {
		errs = append(errs, fmt.Errorf("expected weekly rent cannot be negative"))
	}
	if p := in.Purchase; p != nil {
		if in.PurchasePrice == nil {
			errs = append(errs, fmt.Errorf("upfront costs require a purchase price"))
		}
		if _, err := regulatory.ParseState(string(p.State)); err != nil {
			errs = append(errs, err)
		}
		if p.ConstructionPercent < 0 || p.ConstructionPercent > 100 {
			errs = append(errs, fmt.Errorf("construction percent must be between 0 and 100, got %v", p.ConstructionPercent))
		}
	}

	return errors.Join(errs...)
}
