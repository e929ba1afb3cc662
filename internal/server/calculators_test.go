package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/finance"
)

func TestHandleSchedule(t *testing.T) {
	handler := newTestHandler(constants.DefaultMaxUploadSizeBytes)

	rr := performJSON(t, handler, "/api/schedule", `{"loanAmount": 300000, "interestRate": 6, "loanTermYears": 30}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp scheduleResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TermMonths != 360 || len(resp.Payments) != 360 {
		t.Fatalf("expected 360 payments, got %d", len(resp.Payments))
	}
	if resp.Payments[0].Payment != 179865 || resp.Payments[0].Interest != 150000 {
		t.Fatalf("unexpected first payment %+v", resp.Payments[0])
	}
	if resp.Payments[359].Balance != 0 {
		t.Fatalf("expected loan to be repaid, final balance %d", resp.Payments[359].Balance)
	}

	rr = performJSON(t, handler, "/api/schedule", `{"loanAmount": 300000, "interestRate": 6, "loanTermYears": 30, "extraMonthly": 200}`)
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TermMonths != 279 {
		t.Fatalf("expected extra repayments to finish in 279 months, got %d", resp.TermMonths)
	}
}

func TestHandleScheduleRejectsInvalidTerms(t *testing.T) {
	for _, body := range []string{
		`{"loanAmount": 0, "interestRate": 6, "loanTermYears": 30}`,
		`{"loanAmount": 300000, "interestRate": 6, "loanTermYears": 0}`,
		`{"loanAmount": 300000, "interestRate": 6, "loanTermYears": 41}`,
		`{"loanAmount": 300000, "interestRate": 6, "loanTermYears": 5, "interestOnlyYears": 6}`,
	} {
		rr := performJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/schedule", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", body, rr.Code)
		}
	}
}

func TestHandleTax(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		net       int64
		mls       int64
		hecs      int64
		franking  int64
		dividends int
	}{
		{
			name: "Salary only",
			body: `{"grossIncome": 100000, "financialYear": "2024-25", "hasPrivateCover": true}`,
			net:  7721200,
		},
		{
			name: "Surcharge and study loan",
			body: `{"grossIncome": 100000, "financialYear": "2024-25", "hasHecsDebt": true}`,
			net:  7721200,
			mls:  100000,
			hecs: 495000,
		},
		{
			name:      "Franked dividend grossed up",
			body:      `{"grossIncome": 99000, "financialYear": "2024-25", "hasPrivateCover": true, "dividends": [{"amount": 700, "frankingPercent": 100}]}`,
			net:       7721200,
			franking:  30000,
			dividends: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/tax", tt.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			var resp taxResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.GrossIncome != 10000000 || resp.NetIncome != tt.net {
				t.Errorf("gross/net = %d/%d, expected 10000000/%d", resp.GrossIncome, resp.NetIncome, tt.net)
			}
			if resp.MedicareLevySurcharge != tt.mls {
				t.Errorf("surcharge = %d, expected %d", resp.MedicareLevySurcharge, tt.mls)
			}
			if resp.HECSRepayment != tt.hecs {
				t.Errorf("HECS repayment = %d, expected %d", resp.HECSRepayment, tt.hecs)
			}
			if resp.FrankingCredits != tt.franking || len(resp.Dividends) != tt.dividends {
				t.Errorf("franking credits = %d over %d dividends, expected %d over %d",
					resp.FrankingCredits, len(resp.Dividends), tt.franking, tt.dividends)
			}
		})
	}
}

func TestHandleTaxRejectsInvalidInput(t *testing.T) {
	for _, body := range []string{
		`{"grossIncome": -1}`,
		`{"grossIncome": 1000, "dependents": -1}`,
		`{"grossIncome": 1000, "dividends": [{"amount": 100, "frankingPercent": 101}]}`,
		`{"grossIncome": 1000, "financialYear": "FY20"}`,
	} {
		rr := performJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/tax", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", body, rr.Code)
		}
	}
}

func TestHandleSuper(t *testing.T) {
	handler := newTestHandler(constants.DefaultMaxUploadSizeBytes)

	rr := performJSON(t, handler, "/api/super", `{"concessional": 11500, "nonConcessional": 50000, "salary": 100000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp superResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FinancialYear != "2024-25" {
		t.Errorf("expected clock to select 2024-25, got %s", resp.FinancialYear)
	}
	if resp.ConcessionalRemaining != 1850000 || resp.NonConcessionalRemaining != 7000000 {
		t.Errorf("unexpected headroom %+v", resp.HeadroomResult)
	}
	if resp.Guarantee != 1150000 {
		t.Errorf("guarantee = %d, expected 1150000", resp.Guarantee)
	}
}

func TestHandleCapitalGains(t *testing.T) {
	handler := newTestHandler(constants.DefaultMaxUploadSizeBytes)

	body := `{
  "financialYear": "2023-24",
  "priorLosses": 500,
  "sales": [
    {"name": "long", "costBase": 10000, "purchaseDate": "2022-01-01", "saleDate": "2023-08-01", "proceeds": 20000},
    {"name": "short", "costBase": 5000, "purchaseDate": "2023-07-10", "saleDate": "2024-03-01", "proceeds": 8000},
    {"name": "loss", "costBase": 6000, "purchaseDate": "2022-05-01", "saleDate": "2024-02-01", "proceeds": 4000},
    {"name": "next year", "costBase": 1000, "purchaseDate": "2020-05-01", "saleDate": "2024-08-01", "proceeds": 9000}
  ]
}`
	rr := performJSON(t, handler, "/api/capital-gains", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var summary finance.GainsSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summary.Disposals) != 3 {
		t.Fatalf("expected 3 disposals in 2023-24, got %d", len(summary.Disposals))
	}
	if summary.Discount != 500000 || summary.NetCapitalGain != 550000 {
		t.Errorf("discount/net = %d/%d, expected 500000/550000", summary.Discount, summary.NetCapitalGain)
	}
}

func TestHandleCapitalGainsRejectsInvalidSales(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "Bad date",
			body:    `{"financialYear": "2023-24", "sales": [{"name": "a", "costBase": 1, "purchaseDate": "01/01/2022", "saleDate": "2023-08-01", "proceeds": 2}]}`,
			message: "sale 0 purchase date",
		},
		{
			name:    "Negative proceeds",
			body:    `{"financialYear": "2023-24", "sales": [{"name": "a", "costBase": 1, "purchaseDate": "2022-01-01", "saleDate": "2023-08-01", "proceeds": -2}]}`,
			message: "cannot be negative",
		},
		{
			name:    "Sale before purchase",
			body:    `{"financialYear": "2023-24", "sales": [{"name": "a", "costBase": 1, "purchaseDate": "2024-01-01", "saleDate": "2023-08-01", "proceeds": 2}]}`,
			message: finance.ErrSaleBeforePurchase.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := performJSON(t, newTestHandler(constants.DefaultMaxUploadSizeBytes), "/api/capital-gains", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.message) {
				t.Errorf("expected error containing %q, got %s", tt.message, rr.Body.String())
			}
		})
	}
}
