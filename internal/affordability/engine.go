// Package affordability assesses borrowing capacity and loan serviceability
// the way Australian lenders do: net income less living expenses and
// existing commitments must cover repayments at a buffered assessment rate.
package affordability

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/household"
	"github.com/iwvelando/serviceability/pkg/loans"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

// Results is the outcome of one assessment. Money is in cents.
type Results struct {
	FinancialYear          string        `json:"financialYear"`
	MaxBorrowingAmount     int64         `json:"maxBorrowingAmount"`
	AssessmentRate         float64       `json:"assessmentRate"`
	ProposedLoanAmount     int64         `json:"proposedLoanAmount"`
	ProposedRepayment      int64         `json:"proposedRepayment"`
	DepositAmount          int64         `json:"depositAmount"`
	TotalGrossAnnualIncome int64         `json:"totalGrossAnnualIncome"`
	NetAnnualIncome        int64         `json:"netAnnualIncome"`
	MonthlyGrossIncome     int64         `json:"monthlyGrossIncome"`
	MonthlyNetIncome       int64         `json:"monthlyNetIncome"`
	MonthlyLivingExpenses  int64         `json:"monthlyLivingExpenses"`
	MonthlyDebtRepayments  int64         `json:"monthlyDebtRepayments"`
	ExistingDebtBalances   int64         `json:"existingDebtBalances"`
	AvailableForHousing    int64         `json:"availableForHousing"`
	MonthlySurplus         int64         `json:"monthlySurplus"`
	DSR                    float64       `json:"dsr"`
	LSR                    float64       `json:"lsr"`
	DTI                    float64       `json:"dti"`
	DSRStatus              Status        `json:"dsrStatus"`
	LSRStatus              Status        `json:"lsrStatus"`
	DTIStatus              Status        `json:"dtiStatus"`
	OverallStatus          Status        `json:"overallStatus"`
	StatusDescription      string        `json:"statusDescription"`
	RentalCoverageRatio    *float64      `json:"rentalCoverageRatio,omitempty"`
	UpfrontCosts           *UpfrontCosts `json:"upfrontCosts,omitempty"`
	Warnings               []string      `json:"warnings,omitempty"`
}

// Engine runs affordability assessments.
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to default the financial year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FinancialYear resolves the year an assessment is made under. An empty or
// unrecognised value means the current financial year.
func (e *Engine) FinancialYear(value string) datetime.FinancialYear {
	fy := regulatory.ResolveYear(value, e.now())
	if value == "" {
		return fy
	}
	if _, err := datetime.ParseFinancialYear(value); err != nil {
		e.logger.Warn("unrecognised financial year, using current year",
			zap.String("op", "affordability.FinancialYear"),
			zap.String("requested", value),
			zap.String("resolved", fy.String()),
			zap.Error(err),
		)
	}
	return fy
}

// Calculate assesses the inputs. Only malformed inputs return an error; every
// valid input produces a result.
func (e *Engine) Calculate(in Inputs) (Results, error) {
	if err := in.Validate(); err != nil {
		return Results{}, fmt.Errorf("invalid affordability inputs: %w", err)
	}
	fy := e.FinancialYear(in.FinancialYear)
	b := in.Borrower

	var partnerGross int64
	if b.PartnerGrossIncome != nil {
		partnerGross = *b.PartnerGrossIncome
	}
	totalGross := b.GrossAnnualIncome + partnerGross
	netAnnual := household.EstimateNetIncome(totalGross, fy)
	// Report the tax schedule year the net income was actually computed on.
	_, taxYear := regulatory.IncomeTaxBrackets(fy)

	r := Results{
		FinancialYear:          taxYear.String(),
		AssessmentRate:         AssessmentRate(in.InterestRate, in.APRABuffer),
		TotalGrossAnnualIncome: totalGross,
		NetAnnualIncome:        netAnnual,
		MonthlyGrossIncome:     household.Monthly(totalGross),
		MonthlyNetIncome:       household.Monthly(netAnnual),
		MonthlyLivingExpenses:  livingExpenses(b, totalGross),
	}
	r.MonthlyDebtRepayments, r.ExistingDebtBalances = debtCommitments(in, fy)
	r.AvailableForHousing = r.MonthlyNetIncome - r.MonthlyLivingExpenses - r.MonthlyDebtRepayments

	termMonths := in.LoanTermYears * constants.MonthsPerYear
	if r.AvailableForHousing > 0 {
		r.MaxBorrowingAmount = e.maxBorrowing(r.AvailableForHousing, r.AssessmentRate, in.LoanTermYears, in.InterestOnly)
	}

	r.ProposedLoanAmount = r.MaxBorrowingAmount
	if in.PurchasePrice != nil {
		r.DepositAmount = deposit(*in.PurchasePrice, in.DepositAmount, in.DepositPercent)
		r.ProposedLoanAmount = min(mathutil.NonNegative(*in.PurchasePrice-r.DepositAmount), r.MaxBorrowingAmount)
	}
	r.ProposedRepayment = loans.Repayment(r.ProposedLoanAmount, r.AssessmentRate, termMonths, in.InterestOnly, loans.Monthly)
	r.MonthlySurplus = r.AvailableForHousing - r.ProposedRepayment

	monthlyGross := mathutil.FromCents(r.MonthlyGrossIncome)
	r.DSR = mathutil.PercentOf(mathutil.FromCents(r.MonthlyDebtRepayments+r.ProposedRepayment), monthlyGross, 2)
	r.LSR = mathutil.PercentOf(mathutil.FromCents(r.ProposedRepayment), monthlyGross, 2)
	r.DTI = mathutil.RoundHalfUp(mathutil.Div(mathutil.FromCents(r.ProposedLoanAmount+r.ExistingDebtBalances), mathutil.FromCents(totalGross)), 1)

	r.DSRStatus = ClassifyDSR(r.DSR)
	r.LSRStatus = ClassifyLSR(r.LSR)
	r.DTIStatus = ClassifyDTI(r.DTI)
	r.OverallStatus = OverallStatus(r.MonthlySurplus, r.DSRStatus, r.LSRStatus, r.DTIStatus)
	r.StatusDescription = describe(r)
	if r.DTI >= constants.DTIAmberMax {
		r.Warnings = append(r.Warnings, DTIPolicyWarning)
	}

	if in.ExpectedWeeklyRent != nil {
		r.RentalCoverageRatio = rentalCoverage(*in.ExpectedWeeklyRent, r.ProposedLoanAmount, r.AssessmentRate)
	}

	if in.Purchase != nil {
		costs, err := upfrontCosts(*in.PurchasePrice, r.DepositAmount, r.ProposedLoanAmount, *in.Purchase, fy)
		if err != nil {
			return Results{}, err
		}
		r.UpfrontCosts = &costs
	}

	e.logger.Info("affordability assessed",
		zap.String("op", "affordability.Calculate"),
		zap.String("financialYear", r.FinancialYear),
		zap.Int64("maxBorrowing", r.MaxBorrowingAmount),
		zap.Int64("proposedLoan", r.ProposedLoanAmount),
		zap.Float64("dsr", r.DSR),
		zap.Float64("lsr", r.LSR),
		zap.Float64("dti", r.DTI),
		zap.String("status", string(r.OverallStatus)),
	)
	return r, nil
}

// AssessmentRate adds the serviceability buffer to the nominal rate. A nil
// buffer means the default APRA buffer.
func AssessmentRate(interestRate float64, buffer *float64) float64 {
	b := constants.DefaultAPRABuffer
	if buffer != nil {
		b = *buffer
	}
	return mathutil.Rate(interestRate).Add(mathutil.Rate(b)).InexactFloat64()
}

// maxBorrowing finds the largest loan whose repayment at the assessment rate
// fits within available. Repayments rise strictly with the loan amount, so
// the search converges on the boundary from below.
func (e *Engine) maxBorrowing(availableCents int64, assessmentRate float64, termYears int, interestOnly bool) int64 {
	termMonths := termYears * constants.MonthsPerYear
	if availableCents <= 0 || termMonths <= 0 {
		return 0
	}

	low := int64(0)
	high := availableCents * constants.MonthsPerYear * int64(termYears) * 100
	iterations := 0
	for high-low > constants.MaxBorrowingPrecisionCents && iterations < constants.MaxBorrowingIterations {
		mid := low + (high-low)/2
		if loans.Repayment(mid, assessmentRate, termMonths, interestOnly, loans.Monthly) <= availableCents {
			low = mid
		} else {
			high = mid
		}
		iterations++
	}

	e.logger.Debug(fmt.Sprintf("max borrowing search converged after %d iterations", iterations),
		zap.String("op", "affordability.maxBorrowing"),
		zap.Int64("available", availableCents),
		zap.Float64("assessmentRate", assessmentRate),
		zap.Int64("low", low),
		zap.Int64("high", high),
	)
	return low
}

func livingExpenses(b BorrowerProfile, totalGross int64) int64 {
	if b.LivingExpensesType == LivingExpensesDeclared && b.DeclaredLivingExpenses != nil {
		return household.Monthly(*b.DeclaredLivingExpenses)
	}
	return household.HouseholdExpenditureMeasure(totalGross, b.HasPartner(), b.NumberOfDependents)
}

// debtCommitments returns the assessed monthly repayments and the total
// outstanding balance of existing debts. Credit cards are assessed on their
// limit regardless of the repayment made; HECS/HELP is assessed once per
// person from their income.
func debtCommitments(in Inputs, fy datetime.FinancialYear) (monthly, balances int64) {
	hecsAssessed := make(map[DebtOwner]bool)
	for _, d := range in.Debts {
		balances += d.CurrentBalance
		switch d.Type {
		case DebtCreditCard:
			base := d.CurrentBalance
			if d.CreditLimit != nil {
				base = *d.CreditLimit
			}
			monthly += mathutil.RoundCents(mathutil.ApplyPercent(base, constants.CreditCardAssessmentPercent))
		case DebtHECSHELP:
			owner := d.Owner
			if owner == "" {
				owner = OwnerBorrower
			}
			if hecsAssessed[owner] {
				continue
			}
			hecsAssessed[owner] = true
			income := in.Borrower.GrossAnnualIncome
			if owner == OwnerPartner && in.Borrower.PartnerGrossIncome != nil {
				income = *in.Borrower.PartnerGrossIncome
			}
			monthly += household.HECSMonthlyRepayment(income, fy)
		default:
			if d.MonthlyRepayment != nil {
				monthly += *d.MonthlyRepayment
			}
		}
	}
	return monthly, balances
}

// deposit applies the explicit amount when given, otherwise a percentage of
// the price defaulting to 20%.
func deposit(priceCents int64, amount *int64, percent *float64) int64 {
	if amount != nil {
		return min(*amount, priceCents)
	}
	p := constants.DefaultDepositPercent
	if percent != nil {
		p = *percent
	}
	return mathutil.RoundCents(mathutil.ApplyPercent(priceCents, p))
}

// rentalCoverage compares annual rent with a year's interest at the
// assessment rate. It is undefined when no interest is charged.
func rentalCoverage(weeklyRentCents, loanCents int64, assessmentRate float64) *float64 {
	interest := mathutil.ApplyPercent(loanCents, assessmentRate)
	if !interest.IsPositive() {
		return nil
	}
	annualRent := mathutil.FromCents(weeklyRentCents).Mul(decimal.NewFromInt(constants.WeeksPerYear))
	ratio := mathutil.RoundHalfUp(mathutil.Div(annualRent, interest), 2)
	return &ratio
}
