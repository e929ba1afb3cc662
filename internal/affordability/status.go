package affordability

import (
	"fmt"

	"github.com/iwvelando/serviceability/pkg/constants"
)

// Status is a traffic-light serviceability rating.
type Status string

// Traffic-light values.
const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
)

// DTIPolicyWarning is attached when the debt-to-income ratio reaches the
// level APRA limits for new lending.
const DTIPolicyWarning = "debt-to-income ratio of 6.0 or more: APRA limits new lending at this level from February 2026, so approval may be restricted"

func classify(value, greenMax, amberMax float64) Status {
	switch {
	case value <= greenMax:
		return StatusGreen
	case value <= amberMax:
		return StatusAmber
	default:
		return StatusRed
	}
}

// ClassifyDSR rates a debt service ratio percentage.
func ClassifyDSR(dsr float64) Status {
	return classify(dsr, constants.DSRGreenMax, constants.DSRAmberMax)
}

// ClassifyLSR rates a loan service ratio percentage.
func ClassifyLSR(lsr float64) Status {
	return classify(lsr, constants.LSRGreenMax, constants.LSRAmberMax)
}

// ClassifyDTI rates a debt-to-income multiple.
func ClassifyDTI(dti float64) Status {
	return classify(dti, constants.DTIGreenMax, constants.DTIAmberMax)
}

// OverallStatus is red when any rating is red or the surplus is negative,
// amber when any rating is amber, and green otherwise.
func OverallStatus(surplusCents int64, statuses ...Status) Status {
	overall := StatusGreen
	if surplusCents < 0 {
		return StatusRed
	}
	for _, s := range statuses {
		switch s {
		case StatusRed:
			return StatusRed
		case StatusAmber:
			overall = StatusAmber
		}
	}
	return overall
}

// describe explains the overall status. A rating driven only by the
// debt-to-income multiple is described separately from a repayment shortfall.
func describe(r Results) string {
	dtiOnly := r.DSRStatus != r.OverallStatus && r.LSRStatus != r.OverallStatus &&
		r.DTIStatus == r.OverallStatus && r.MonthlySurplus >= 0

	switch r.OverallStatus {
	case StatusRed:
		if dtiOnly {
			return fmt.Sprintf("Repayments are serviceable but the debt-to-income ratio of %.1f exceeds %.1f; most lenders will decline or cap this loan.",
				r.DTI, constants.DTIAmberMax)
		}
		if r.MonthlySurplus < 0 {
			return "Serviceability shortfall: repayments at the assessment rate exceed income after living expenses and existing debts."
		}
		return "Serviceability shortfall: repayments at the assessment rate exceed lender ratio limits."
	case StatusAmber:
		if dtiOnly {
			return fmt.Sprintf("Repayments are serviceable but the debt-to-income ratio of %.1f is above %.1f; expect additional lender scrutiny.",
				r.DTI, constants.DTIGreenMax)
		}
		return "Serviceable with limited headroom: repayments are close to lender ratio limits."
	default:
		return "Comfortably serviceable at the assessment rate."
	}
}
