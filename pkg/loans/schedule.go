package loans

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/pkg/mathutil"
)

// Payment holds the values for a given repayment period.
type Payment struct {
	Period    int   `json:"period"`
	Payment   int64 `json:"payment"`
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Balance   int64 `json:"balance"`
}

// Loan describes a loan whose monthly schedule is generated.
type Loan struct {
	Name               string
	Principal          int64
	AnnualRate         float64
	TermMonths         int
	InterestOnlyMonths int
	ExtraMonthly       int64
}

// ScheduleGenerator produces monthly amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// AmortizationSchedule generates a monthly schedule without logging.
func AmortizationSchedule(loanCents int64, annualRatePercent float64, termMonths, interestOnlyMonths int) []Payment {
	return NewScheduleGenerator(nil).Generate(Loan{
		Principal:          loanCents,
		AnnualRate:         annualRatePercent,
		TermMonths:         termMonths,
		InterestOnlyMonths: interestOnlyMonths,
	})
}

// Generate creates one entry per month until the balance reaches zero or the
// term ends. Interest each month is the rounded balance times the monthly
// rate; principal is clamped so the balance never goes negative, and the
// final period retires whatever remains.
func (g *ScheduleGenerator) Generate(loan Loan) []Payment {
	if loan.Principal <= 0 || loan.TermMonths <= 0 {
		return nil
	}

	ioMonths := min(max(loan.InterestOnlyMonths, 0), loan.TermMonths)
	rate := MonthlyRate(loan.AnnualRate)
	amortPayment := mathutil.RoundCents(monthlyPayment(mathutil.FromCents(loan.Principal), loan.AnnualRate, loan.TermMonths-ioMonths))
	extra := mathutil.NonNegative(loan.ExtraMonthly)

	schedule := make([]Payment, 0, loan.TermMonths)
	balance := loan.Principal

	for period := 1; period <= loan.TermMonths && balance > 0; period++ {
		interest := mathutil.RoundCents(mathutil.FromCents(balance).Mul(rate))

		var principal int64
		if period <= ioMonths {
			principal = min(extra, balance)
		} else {
			principal = amortPayment + extra - interest
			if principal < 0 {
				principal = 0
			}
		}
		if principal > balance || period == loan.TermMonths {
			if period == loan.TermMonths && principal < balance {
				g.logger.Debug(fmt.Sprintf("final period retires remaining balance %d for loan %s", balance-principal, loan.Name),
					zap.String("op", "loans.Generate"),
				)
			}
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, Payment{
			Period:    period,
			Payment:   principal + interest,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
	}

	if len(schedule) < loan.TermMonths {
		g.logger.Debug(fmt.Sprintf("loan %s repaid after %d of %d months", loan.Name, len(schedule), loan.TermMonths),
			zap.String("op", "loans.Generate"),
			zap.Int64("extraMonthly", extra),
		)
	}

	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []Payment) int64 {
	var total int64
	for _, p := range schedule {
		total += p.Interest
	}
	return total
}
