package affordability

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RiskAssumptions enables the investment risk metrics for a request.
type RiskAssumptions struct {
	MonthlyPropertyExpenses int64 `json:"monthlyPropertyExpenses"`
	CashBuffer              int64 `json:"cashBuffer"`
}

// Request is a named assessment with its optional reports.
type Request struct {
	Name       string           `json:"name"`
	Inputs     Inputs           `json:"inputs"`
	StressTest bool             `json:"stressTest"`
	Risk       *RiskAssumptions `json:"risk,omitempty"`
}

// Report bundles an assessment with its stress tests and risk metrics.
type Report struct {
	Name        string               `json:"name"`
	Results     Results              `json:"results"`
	StressTests []StressTestScenario `json:"stressTests,omitempty"`
	Risk        *RiskMetrics         `json:"risk,omitempty"`
}

// Assess runs one request.
func (e *Engine) Assess(req Request) (Report, error) {
	start := time.Now()
	results, err := e.Calculate(req.Inputs)
	if err != nil {
		return Report{}, fmt.Errorf("assessment %q: %w", req.Name, err)
	}

	report := Report{Name: req.Name, Results: results}
	if req.StressTest {
		report.StressTests = GenerateStressTests(req.Inputs, results)
	}
	if req.Risk != nil {
		metrics := CalculateRiskMetrics(RiskInputsFor(req.Inputs, results, req.Risk.MonthlyPropertyExpenses, req.Risk.CashBuffer))
		report.Risk = &metrics
	}

	e.logger.Debug("assessment complete",
		zap.String("op", "affordability.Assess"),
		zap.String("name", req.Name),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

// AssessAll runs every request in order, stopping at the first invalid one.
func (e *Engine) AssessAll(reqs []Request) ([]Report, error) {
	reports := make([]Report, 0, len(reqs))
	for _, req := range reqs {
		report, err := e.Assess(req)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
