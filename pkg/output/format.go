// Package output provides utilities for formatting and displaying assessment reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/serviceability/internal/affordability"
	"github.com/iwvelando/serviceability/pkg/constants"
	"github.com/iwvelando/serviceability/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(reports []affordability.Report) {
	WritePretty(os.Stdout, reports)
}

// WritePretty writes the human-readable report to w.
func WritePretty(w io.Writer, reports []affordability.Report) {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		r := report.Results
		_, _ = p.Fprintf(w, "--- Assessment %s (FY %s) ---\n", report.Name, r.FinancialYear)
		_, _ = p.Fprintf(w, "%-24s %s - %s\n", "Overall status:", strings.ToUpper(string(r.OverallStatus)), r.StatusDescription)
		_, _ = p.Fprintf(w, "%-24s %s\n", "Maximum borrowing:", format.Currency(r.MaxBorrowingAmount))
		_, _ = p.Fprintf(w, "%-24s %.2f%%\n", "Assessment rate:", r.AssessmentRate)
		_, _ = p.Fprintf(w, "%-24s %s\n", "Proposed loan:", format.Currency(r.ProposedLoanAmount))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Deposit:", format.Currency(r.DepositAmount))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Monthly repayment:", format.Currency(r.ProposedRepayment))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Monthly net income:", format.Currency(r.MonthlyNetIncome))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Living expenses:", format.Currency(r.MonthlyLivingExpenses))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Existing commitments:", format.Currency(r.MonthlyDebtRepayments))
		_, _ = p.Fprintf(w, "%-24s %s\n", "Monthly surplus:", format.Currency(r.MonthlySurplus))
		_, _ = p.Fprintf(w, "%-24s DSR %.2f%% (%s) | LSR %.2f%% (%s) | DTI %.1f (%s)\n", "Ratios:",
			r.DSR, r.DSRStatus, r.LSR, r.LSRStatus, r.DTI, r.DTIStatus)
		if r.RentalCoverageRatio != nil {
			_, _ = p.Fprintf(w, "%-24s %.2f\n", "Rental coverage:", *r.RentalCoverageRatio)
		}

		if c := r.UpfrontCosts; c != nil {
			_, _ = p.Fprintf(w, "Upfront costs (%s):\n", c.StampDuty.State)
			_, _ = p.Fprintf(w, "  %-22s %s\n", "Stamp duty:", format.Currency(c.StampDuty.StampDuty))
			if c.StampDuty.ConcessionApplied != "" {
				_, _ = p.Fprintf(w, "  %-22s %s\n", "Concession:", c.StampDuty.ConcessionApplied)
			}
			_, _ = p.Fprintf(w, "  %-22s %s\n", "Government fees:", format.Currency(c.StampDuty.TransferFee+c.StampDuty.MortgageRegistration))
			if c.LMI.RequiresLMI {
				_, _ = p.Fprintf(w, "  %-22s %s (LVR %.2f%%)\n", "LMI:", format.Currency(c.LMI.LMIAmount), c.LMI.LVR)
			}
			_, _ = p.Fprintf(w, "  %-22s %s\n", "Total funds required:", format.Currency(c.TotalFundsRequired))
		}

		if len(report.StressTests) > 0 {
			_, _ = p.Fprintf(w, "Stress tests:\n")
			_, _ = p.Fprintf(w, "  Rise   | Rate    | Repayment     | Cashflow      | Status\n")
			_, _ = p.Fprintf(w, "  ____   | ____    | _________     | ________      | ______\n")
			for _, s := range report.StressTests {
				_, _ = p.Fprintf(w, "  +%.2f%% | %.2f%% | %-13s | %-13s | %s\n",
					s.RateIncrease, s.InterestRate, format.Currency(s.MonthlyRepayment), format.Currency(s.MonthlyCashflow), s.Status)
			}
		}

		if m := report.Risk; m != nil {
			_, _ = p.Fprintf(w, "Investment risk:\n")
			_, _ = p.Fprintf(w, "  %-22s %s\n", "Monthly cashflow:", format.Currency(m.MonthlyCashflow))
			_, _ = p.Fprintf(w, "  %-22s %.1f%%\n", "Max vacancy:", m.MaxVacancyPercent)
			_, _ = p.Fprintf(w, "  %-22s %s per 1%%\n", "Rate sensitivity:", format.Currency(m.RateSensitivity))
			_, _ = p.Fprintf(w, "  %-22s %d\n", "Buffer months:", m.BufferMonths)
			_, _ = p.Fprintf(w, "  %-22s %.2f%%\n", "Break-even rate:", m.BreakEvenRate)
			if m.NegativelyGeared {
				_, _ = p.Fprintf(w, "  Negatively geared\n")
			}
		}

		for _, warning := range r.Warnings {
			_, _ = p.Fprintf(w, "Warning: %s\n", warning)
		}
		if i < len(reports)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(reports []affordability.Report) error {
	return WriteCSV(os.Stdout, reports)
}

// CsvString renders the reports as CSV in memory.
func CsvString(reports []affordability.Report) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, reports); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCSV writes one row per report to out. Money columns are plain dollars
// and stress columns are empty when stress tests were not requested.
func WriteCSV(out io.Writer, reports []affordability.Report) error {
	w := csv.NewWriter(out)

	header := []string{
		"name", "financial year", "overall status", "max borrowing", "assessment rate",
		"proposed loan", "deposit", "monthly repayment", "monthly net income",
		"monthly living expenses", "monthly debt repayments", "monthly surplus",
		"dsr", "dsr status", "lsr", "lsr status", "dti", "dti status",
		"stamp duty", "lmi", "total funds required",
	}
	for _, increase := range constants.StressRateIncreases {
		header = append(header, fmt.Sprintf("stress +%s cashflow", ratio(increase, 0)))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, report := range reports {
		r := report.Results
		row := []string{
			report.Name,
			r.FinancialYear,
			string(r.OverallStatus),
			format.Dollars(r.MaxBorrowingAmount),
			ratio(r.AssessmentRate, 2),
			format.Dollars(r.ProposedLoanAmount),
			format.Dollars(r.DepositAmount),
			format.Dollars(r.ProposedRepayment),
			format.Dollars(r.MonthlyNetIncome),
			format.Dollars(r.MonthlyLivingExpenses),
			format.Dollars(r.MonthlyDebtRepayments),
			format.Dollars(r.MonthlySurplus),
			ratio(r.DSR, 2),
			string(r.DSRStatus),
			ratio(r.LSR, 2),
			string(r.LSRStatus),
			ratio(r.DTI, 1),
			string(r.DTIStatus),
		}
		if c := r.UpfrontCosts; c != nil {
			row = append(row, format.Dollars(c.StampDuty.StampDuty), format.Dollars(c.LMI.LMIAmount), format.Dollars(c.TotalFundsRequired))
		} else {
			row = append(row, "", "", "")
		}
		for i := range constants.StressRateIncreases {
			if i < len(report.StressTests) {
				row = append(row, format.Dollars(report.StressTests[i].MonthlyCashflow))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", report.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// JSONFormat outputs the reports as indented JSON.
func JSONFormat(reports []affordability.Report) error {
	return WriteJSON(os.Stdout, reports)
}

// WriteJSON writes the reports to w as indented JSON. A nil slice is written
// as an empty array.
func WriteJSON(w io.Writer, reports []affordability.Report) error {
	if reports == nil {
		reports = []affordability.Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	return nil
}

func ratio(value float64, places int) string {
	return strconv.FormatFloat(value, 'f', places, 64)
}
