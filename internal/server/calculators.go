package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/finance"
	"github.com/iwvelando/serviceability/pkg/loans"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/super"
	"github.com/iwvelando/serviceability/pkg/tax"
)

type scheduleRequest struct {
	LoanAmount        float64 `json:"loanAmount"`
	InterestRate      float64 `json:"interestRate"`
	LoanTermYears     int     `json:"loanTermYears"`
	InterestOnlyYears int     `json:"interestOnlyYears"`
	ExtraMonthly      float64 `json:"extraMonthly"`
}

type scheduleResponse struct {
	Payments      []loans.Payment `json:"payments"`
	TermMonths    int             `json:"termMonths"`
	TotalInterest int64           `json:"totalInterest"`
}

type taxRequest struct {
	GrossIncome     float64         `json:"grossIncome"`
	Family          bool            `json:"family"`
	Dependents      int             `json:"dependents"`
	HasPrivateCover bool            `json:"hasPrivateCover"`
	HasHECSDebt     bool            `json:"hasHecsDebt"`
	Dividends       []dividendInput `json:"dividends"`
	FinancialYear   string          `json:"financialYear"`
}

type dividendInput struct {
	Amount          float64 `json:"amount"`
	FrankingPercent float64 `json:"frankingPercent"`
}

// taxResponse reports tax on salary plus grossed-up dividends. Franking
// credits are listed separately as an offset and are not netted off.
type taxResponse struct {
	tax.Summary
	MedicareLevySurcharge int64                     `json:"medicareLevySurcharge"`
	HECSRepayment         int64                     `json:"hecsRepayment"`
	Dividends             []finance.FrankedDividend `json:"dividends,omitempty"`
	FrankingCredits       int64                     `json:"frankingCredits"`
}

type superRequest struct {
	Concessional    float64 `json:"concessional"`
	NonConcessional float64 `json:"nonConcessional"`
	Salary          float64 `json:"salary"`
	FinancialYear   string  `json:"financialYear"`
}

type superResponse struct {
	super.HeadroomResult
	Guarantee int64 `json:"guarantee"`
}

type capitalGainsRequest struct {
	FinancialYear string      `json:"financialYear"`
	PriorLosses   float64     `json:"priorLosses"`
	Sales         []saleInput `json:"sales"`
}

type saleInput struct {
	Name         string  `json:"name"`
	CostBase     float64 `json:"costBase"`
	PurchaseDate string  `json:"purchaseDate"`
	SaleDate     string  `json:"saleDate"`
	Proceeds     float64 `json:"proceeds"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req scheduleRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.LoanAmount <= 0 || req.InterestRate < 0 || req.ExtraMonthly < 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "loan amount must be positive and rates and extra repayments cannot be negative", op)
		return
	}
	if req.LoanTermYears <= 0 || req.LoanTermYears > constants.MaxScheduleYears {
		h.respondErrorWithOp(w, r, http.StatusBadRequest,
			fmt.Sprintf("loan term must be between 1 and %d years", constants.MaxScheduleYears), op)
		return
	}
	if req.InterestOnlyYears < 0 || req.InterestOnlyYears > req.LoanTermYears {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "interest only period must fall within the loan term", op)
		return
	}

	payments := h.schedules.Generate(loans.Loan{
		Name:               "api",
		Principal:          mathutil.FloatDollarsToCents(req.LoanAmount),
		AnnualRate:         req.InterestRate,
		TermMonths:         req.LoanTermYears * constants.MonthsPerYear,
		InterestOnlyMonths: req.InterestOnlyYears * constants.MonthsPerYear,
		ExtraMonthly:       mathutil.FloatDollarsToCents(req.ExtraMonthly),
	})

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Payments:      payments,
		TermMonths:    len(payments),
		TotalInterest: loans.TotalInterest(payments),
	})
}

func (h *handler) handleTax(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTax"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req taxRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.GrossIncome < 0 || req.Dependents < 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "income and dependents cannot be negative", op)
		return
	}
	fy, err := h.resolveFinancialYear(req.FinancialYear)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	income := mathutil.FloatDollarsToCents(req.GrossIncome)
	var resp taxResponse
	for _, d := range req.Dividends {
		if d.Amount < 0 || d.FrankingPercent < 0 || d.FrankingPercent > 100 {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "dividends cannot be negative and franking must be between 0 and 100", op)
			return
		}
		franked := finance.GrossUpFranked(mathutil.FloatDollarsToCents(d.Amount), d.FrankingPercent)
		resp.Dividends = append(resp.Dividends, franked)
		resp.FrankingCredits += franked.FrankingCredit
		income += franked.GrossedUp
	}

	resp.Summary = tax.Summarize(income, fy)
	resp.MedicareLevySurcharge = tax.MedicareLevySurcharge(income, req.Family, req.Dependents, req.HasPrivateCover, fy)
	if req.HasHECSDebt {
		resp.HECSRepayment = tax.HECSRepayment(income, fy)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleSuper(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSuper"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req superRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	fy, err := h.resolveFinancialYear(req.FinancialYear)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, superResponse{
		HeadroomResult: super.Headroom(
			mathutil.FloatDollarsToCents(req.Concessional),
			mathutil.FloatDollarsToCents(req.NonConcessional),
			fy,
		),
		Guarantee: super.Guarantee(mathutil.FloatDollarsToCents(req.Salary), fy),
	})
}

func (h *handler) handleCapitalGains(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCapitalGains"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req capitalGainsRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	fy, err := h.resolveFinancialYear(req.FinancialYear)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	sales, err := toSales(req.Sales)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	summary, err := h.portfolio.Gains(sales, mathutil.FloatDollarsToCents(req.PriorLosses), fy)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, summary)
}

func toSales(inputs []saleInput) ([]finance.Sale, error) {
	sales := make([]finance.Sale, 0, len(inputs))
	var errs []error
	for i, in := range inputs {
		purchased, err := datetime.ParseDate(in.PurchaseDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("sale %d purchase date: %w", i, err))
			continue
		}
		sold, err := datetime.ParseDate(in.SaleDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("sale %d sale date: %w", i, err))
			continue
		}
		if in.CostBase < 0 || in.Proceeds < 0 {
			errs = append(errs, fmt.Errorf("sale %d: cost base and proceeds cannot be negative", i))
			continue
		}
		sales = append(sales, finance.Sale{
			Holding: finance.Parcel{
				Name:         in.Name,
				CostBase:     mathutil.FloatDollarsToCents(in.CostBase),
				PurchaseDate: purchased,
			},
			Date:     sold,
			Proceeds: mathutil.FloatDollarsToCents(in.Proceeds),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return sales, nil
}
