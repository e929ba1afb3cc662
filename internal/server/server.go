// Package server exposes the affordability engine and the government charge
// calculators over an HTTP JSON API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/internal/affordability"
	"github.com/iwvelando/serviceability/internal/config"
	"github.com/iwvelando/serviceability/pkg/charges"
	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/finance"
	"github.com/iwvelando/serviceability/pkg/loans"
	"github.com/iwvelando/serviceability/pkg/mathutil"
	"github.com/iwvelando/serviceability/pkg/output"
	"github.com/iwvelando/serviceability/pkg/regulatory"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	financialYear string
	now           func() time.Time
	engine        *affordability.Engine
	schedules     *loans.ScheduleGenerator
	portfolio     *finance.Portfolio
	metrics       *metrics
}

// Option configures the handler.
type Option func(*handler)

// WithClock sets the clock used to default financial years.
func WithClock(now func() time.Time) Option {
	return func(h *handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithFinancialYear sets the financial year used when a request names none.
func WithFinancialYear(fy string) Option {
	return func(h *handler) {
		h.financialYear = strings.TrimSpace(fy)
	}
}

// NewHandler constructs the HTTP handler that serves the assessment API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts ...Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		now:           time.Now,
		metrics:       newMetrics(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.engine = affordability.NewEngine(logger, affordability.WithClock(h.now))
	h.schedules = loans.NewScheduleGenerator(logger)
	h.portfolio = finance.NewPortfolio(logger)

	mux := http.NewServeMux()

	// Single assessment from a JSON body
	mux.Handle("/api/assessment", h.instrument("/api/assessment", h.handleAssessment))

	// Every assessment in an uploaded YAML configuration
	mux.Handle("/api/assessments", h.instrument("/api/assessments", h.handleAssessments))

	// Standalone calculators
	mux.Handle("/api/stamp-duty", h.instrument("/api/stamp-duty", h.handleStampDuty))
	mux.Handle("/api/lmi", h.instrument("/api/lmi", h.handleLMI))
	mux.Handle("/api/repayment", h.instrument("/api/repayment", h.handleRepayment))
	mux.Handle("/api/schedule", h.instrument("/api/schedule", h.handleSchedule))
	mux.Handle("/api/tax", h.instrument("/api/tax", h.handleTax))
	mux.Handle("/api/super", h.instrument("/api/super", h.handleSuper))
	mux.Handle("/api/capital-gains", h.instrument("/api/capital-gains", h.handleCapitalGains))

	// Version endpoint for client metadata
	mux.Handle("/api/version", h.instrument("/api/version", h.handleVersion))

	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

type assessmentsResponse struct {
	Reports  []affordability.Report `json:"reports"`
	CSV      string                 `json:"csv"`
	Warnings []string               `json:"warnings,omitempty"`
	Duration string                 `json:"duration"`
}

type stampDutyRequest struct {
	PurchasePrice       float64 `json:"purchasePrice"`
	State               string  `json:"state"`
	FirstHomeBuyer      bool    `json:"firstHomeBuyer"`
	Investment          bool    `json:"investment"`
	NewBuild            bool    `json:"newBuild"`
	VacantLand          bool    `json:"vacantLand"`
	OffThePlan          bool    `json:"offThePlan"`
	ConstructionPercent float64 `json:"constructionPercent"`
	HasMortgage         bool    `json:"hasMortgage"`
	FinancialYear       string  `json:"financialYear"`
}

type lmiRequest struct {
	PropertyValue float64 `json:"propertyValue"`
	LoanAmount    float64 `json:"loanAmount"`
}

type repaymentRequest struct {
	LoanAmount    float64 `json:"loanAmount"`
	InterestRate  float64 `json:"interestRate"`
	LoanTermYears int     `json:"loanTermYears"`
	InterestOnly  bool    `json:"interestOnly"`
	Frequency     string  `json:"frequency"`
}

type repaymentResponse struct {
	Frequency        loans.Frequency `json:"frequency"`
	Repayment        int64           `json:"repayment"`
	MonthlyRepayment int64           `json:"monthlyRepayment"`
	TotalInterest    int64           `json:"totalInterest"`
}

func (h *handler) handleAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAssessment"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var assessment config.Assessment
	if !h.decodeJSON(w, r, &assessment, op) {
		return
	}

	req := assessment.ToRequest(h.financialYear)
	if err := req.Inputs.Validate(); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	report, err := h.engine.Assess(req)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.metrics.assessments.WithLabelValues(string(report.Results.OverallStatus)).Inc()

	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleAssessments(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAssessments"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if cfg.FinancialYear == "" {
		cfg.FinancialYear = h.financialYear
	}

	warnings := cfg.ValidateConfiguration()
	requests := cfg.Requests()
	var invalid []error
	for _, req := range requests {
		if err := req.Inputs.Validate(); err != nil {
			invalid = append(invalid, fmt.Errorf("assessment %q: %w", req.Name, err))
		}
	}
	if len(invalid) > 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, errors.Join(invalid...).Error(), op)
		return
	}

	reports, err := h.engine.AssessAll(requests)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	for _, report := range reports {
		h.metrics.assessments.WithLabelValues(string(report.Results.OverallStatus)).Inc()
	}

	elapsed := time.Since(start)
	h.logger.Info("assessments computed",
		zap.String("op", op),
		zap.String("requestID", RequestID(r.Context())),
		zap.Int("assessments", len(reports)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	csvText, err := output.CsvString(reports)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, assessmentsResponse{
		Reports:  reports,
		CSV:      csvText,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleStampDuty(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleStampDuty"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req stampDutyRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.PurchasePrice < 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "purchase price cannot be negative", op)
		return
	}
	if req.ConstructionPercent < 0 || req.ConstructionPercent > 100 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "construction percent must be between 0 and 100", op)
		return
	}
	state, err := regulatory.ParseState(req.State)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	fy, err := h.resolveFinancialYear(req.FinancialYear)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := charges.StampDuty(mathutil.FloatDollarsToCents(req.PurchasePrice), state, charges.StampDutyOptions{
		FirstHomeBuyer:      req.FirstHomeBuyer,
		Investment:          req.Investment,
		NewBuild:            req.NewBuild,
		VacantLand:          req.VacantLand,
		OffThePlan:          req.OffThePlan,
		ConstructionPercent: req.ConstructionPercent,
		HasMortgage:         req.HasMortgage,
		FinancialYear:       fy,
	})
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleLMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLMI"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req lmiRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.PropertyValue < 0 || req.LoanAmount < 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "property value and loan amount cannot be negative", op)
		return
	}

	h.writeJSON(w, http.StatusOK, charges.LMI(
		mathutil.FloatDollarsToCents(req.PropertyValue),
		mathutil.FloatDollarsToCents(req.LoanAmount),
	))
}

func (h *handler) handleRepayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRepayment"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req repaymentRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.LoanAmount < 0 || req.InterestRate < 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "loan amount and interest rate cannot be negative", op)
		return
	}
	if req.LoanTermYears <= 0 {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "loan term must be at least one year", op)
		return
	}
	frequency, err := loans.ParseFrequency(req.Frequency)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	loanCents := mathutil.FloatDollarsToCents(req.LoanAmount)
	termMonths := req.LoanTermYears * constants.MonthsPerYear
	ioMonths := 0
	if req.InterestOnly {
		ioMonths = termMonths
	}

	h.writeJSON(w, http.StatusOK, repaymentResponse{
		Frequency:        frequency,
		Repayment:        loans.Repayment(loanCents, req.InterestRate, termMonths, req.InterestOnly, frequency),
		MonthlyRepayment: loans.Repayment(loanCents, req.InterestRate, termMonths, req.InterestOnly, loans.Monthly),
		TotalInterest:    loans.TotalInterestOverLife(loanCents, req.InterestRate, termMonths, ioMonths),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// resolveFinancialYear parses an explicit year strictly. An empty value
// falls back to the configured default and then the current year.
func (h *handler) resolveFinancialYear(value string) (datetime.FinancialYear, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = h.financialYear
	}
	if value == "" {
		return datetime.CurrentFinancialYear(h.now()), nil
	}
	return datetime.ParseFinancialYear(value)
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		return false
	}
	return true
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.methodNotAllowed")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestID", RequestID(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
