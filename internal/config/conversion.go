package config

import (
	"strings"

	"github.com/iwvelando/serviceability/internal/affordability"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// Requests converts every assessment into an engine request. The
// configuration-level financial year applies where an assessment has none.
func (c *Configuration) Requests() []affordability.Request {
	requests := make([]affordability.Request, 0, len(c.Assessments))
	for _, a := range c.Assessments {
		requests = append(requests, a.ToRequest(c.FinancialYear))
	}
	return requests
}

// ToRequest converts an assessment from dollars into engine inputs in cents.
func (a Assessment) ToRequest(defaultFinancialYear string) affordability.Request {
	fy := a.FinancialYear
	if fy == "" {
		fy = defaultFinancialYear
	}

	in := affordability.Inputs{
		Borrower: affordability.BorrowerProfile{
			GrossAnnualIncome:      mathutil.FloatDollarsToCents(a.Borrower.GrossAnnualIncome),
			PartnerGrossIncome:     centsPtr(a.Borrower.PartnerGrossIncome),
			NumberOfDependents:     a.Borrower.Dependents,
			LivingExpensesType:     affordability.LivingExpensesType(strings.ToLower(strings.TrimSpace(a.Borrower.LivingExpensesType))),
			DeclaredLivingExpenses: centsPtr(a.Borrower.DeclaredLivingExpenses),
		},
		PurchasePrice:      centsPtr(a.PurchasePrice),
		DepositAmount:      centsPtr(a.DepositAmount),
		DepositPercent:     a.DepositPercent,
		InterestRate:       a.InterestRate,
		APRABuffer:         a.APRABuffer,
		LoanTermYears:      a.LoanTermYears,
		InterestOnly:       a.InterestOnly,
		ExpectedWeeklyRent: centsPtr(a.ExpectedWeeklyRent),
		FinancialYear:      fy,
	}

	for _, d := range a.Debts {
		in.Debts = append(in.Debts, d.toExistingDebt())
	}

	if a.State != "" {
		in.Purchase = &affordability.PurchaseDetails{
			State:               regulatory.State(strings.ToUpper(strings.TrimSpace(a.State))),
			FirstHomeBuyer:      a.FirstHomeBuyer,
			Investment:          a.Investment,
			NewBuild:            a.NewBuild,
			VacantLand:          a.VacantLand,
			OffThePlan:          a.OffThePlan,
			ConstructionPercent: a.ConstructionPercent,
		}
	}

	req := affordability.Request{Name: a.Name, Inputs: in, StressTest: a.StressTest}
	if a.Risk != nil {
		req.Risk = &affordability.RiskAssumptions{
			MonthlyPropertyExpenses: mathutil.FloatDollarsToCents(a.Risk.MonthlyPropertyExpenses),
			CashBuffer:              mathutil.FloatDollarsToCents(a.Risk.CashBuffer),
		}
	}
	return req
}

func (d Debt) toExistingDebt() affordability.ExistingDebt {
	return affordability.ExistingDebt{
		Type:             affordability.DebtType(strings.ToLower(strings.TrimSpace(d.Type))),
		Owner:            affordability.DebtOwner(strings.ToLower(strings.TrimSpace(d.Owner))),
		CreditLimit:      centsPtr(d.CreditLimit),
		CurrentBalance:   mathutil.FloatDollarsToCents(d.CurrentBalance),
		MonthlyRepayment: centsPtr(d.MonthlyRepayment),
		InterestRate:     d.InterestRate,
	}
}

func centsPtr(dollars *float64) *int64 {
	if dollars == nil {
		return nil
	}
	cents := mathutil.FloatDollarsToCents(*dollars)
	return &cents
}
