// Package finance provides the investment tax helpers shared with the
// property calculators: capital gains with the 12-month discount and
// franking-credit gross-up over a read-only feed of holdings.
package finance

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/pkg/datetime"
	"github.com/iwvelando/serviceability/pkg/mathutil"
)

const (
	// DiscountHoldingMonths is the minimum holding period for the CGT discount.
	DiscountHoldingMonths = 12
	// DiscountPercent is the share of an eligible gain that is not assessable.
	DiscountPercent = 50.0
)

// ErrSaleBeforePurchase is returned when a disposal predates its acquisition.
var ErrSaleBeforePurchase = errors.New("sale date is before purchase date")

// Holding is a read-only parcel of an investment. Cost base is in cents.
type Holding interface {
	GetName() string
	GetCostBase() int64
	GetPurchaseDate() time.Time
}

// Parcel is a plain Holding value.
type Parcel struct {
	Name         string    `json:"name"`
	CostBase     int64     `json:"costBase"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// GetName returns the parcel name.
func (p Parcel) GetName() string { return p.Name }

// GetCostBase returns the cost base in cents.
func (p Parcel) GetCostBase() int64 { return p.CostBase }

// GetPurchaseDate returns the acquisition date.
func (p Parcel) GetPurchaseDate() time.Time { return p.PurchaseDate }

// Sale is the disposal of a holding.
type Sale struct {
	Holding  Holding
	Date     time.Time
	Proceeds int64
}

// CapitalGainResult describes one disposal. A negative GrossGain is a capital loss.
type CapitalGainResult struct {
	Name             string `json:"name"`
	CostBase         int64  `json:"costBase"`
	Proceeds         int64  `json:"proceeds"`
	HeldMonths       int    `json:"heldMonths"`
	DiscountEligible bool   `json:"discountEligible"`
	GrossGain        int64  `json:"grossGain"`
	Discount         int64  `json:"discount"`
	NetGain          int64  `json:"netGain"`
}

// CapitalGain calculates the gain on a single disposal. Gains on holdings kept
// for at least 12 calendar months are halved; losses are never discounted.
func CapitalGain(h Holding, saleDate time.Time, proceedsCents int64) CapitalGainResult {
	gross := proceedsCents - h.GetCostBase()
	eligible := datetime.HeldAtLeastMonths(h.GetPurchaseDate(), saleDate, DiscountHoldingMonths)

	result := CapitalGainResult{
		Name:             h.GetName(),
		CostBase:         h.GetCostBase(),
		Proceeds:         proceedsCents,
		HeldMonths:       datetime.WholeMonthsBetween(h.GetPurchaseDate(), saleDate),
		DiscountEligible: eligible,
		GrossGain:        gross,
		NetGain:          gross,
	}
	if eligible && gross > 0 {
		result.Discount = discount(gross)
		result.NetGain = gross - result.Discount
	}
	return result
}

func discount(gainCents int64) int64 {
	return mathutil.RoundCents(mathutil.ApplyPercent(gainCents, DiscountPercent))
}

// GainsSummary totals the disposals that fall within one financial year.
type GainsSummary struct {
	FinancialYear      string              `json:"financialYear"`
	Disposals          []CapitalGainResult `json:"disposals"`
	TotalGains         int64               `json:"totalGains"`
	TotalLosses        int64               `json:"totalLosses"`
	Discount           int64               `json:"discount"`
	NetCapitalGain     int64               `json:"netCapitalGain"`
	CarriedForwardLoss int64               `json:"carriedForwardLoss"`
}

// Portfolio summarises capital gains across a feed of holdings.
type Portfolio struct {
	logger *zap.Logger
}

// NewPortfolio creates a portfolio summariser.
func NewPortfolio(logger *zap.Logger) *Portfolio {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Portfolio{logger: logger}
}

// Gains nets the year's capital losses and any prior-year loss against gains
// before applying the discount. Losses reduce non-discountable gains first.
// Sales outside fy are ignored; invalid sales are reported together.
func (p *Portfolio) Gains(sales []Sale, priorLossCents int64, fy datetime.FinancialYear) (GainsSummary, error) {
	summary := GainsSummary{FinancialYear: fy.String()}
	var errs []error
	var discountable, other int64
	losses := mathutil.NonNegative(priorLossCents)

	for i, sale := range sales {
		if sale.Holding == nil {
			p.logger.Warn("skipping sale with no holding",
				zap.String("op", "finance.Gains"),
				zap.Int("index", i),
			)
			continue
		}
		if !fy.Contains(sale.Date) {
			continue
		}
		if datetime.CalendarDate(sale.Date).Before(datetime.CalendarDate(sale.Holding.GetPurchaseDate())) {
			errs = append(errs, fmt.Errorf("%s: %w", sale.Holding.GetName(), ErrSaleBeforePurchase))
			continue
		}

		result := CapitalGain(sale.Holding, sale.Date, sale.Proceeds)
		summary.Disposals = append(summary.Disposals, result)

		switch {
		case result.GrossGain < 0:
			summary.TotalLosses += -result.GrossGain
			losses += -result.GrossGain
		case result.DiscountEligible:
			summary.TotalGains += result.GrossGain
			discountable += result.GrossGain
		default:
			summary.TotalGains += result.GrossGain
			other += result.GrossGain
		}
	}
	if len(errs) > 0 {
		return GainsSummary{}, errors.Join(errs...)
	}

	applied := min(losses, other)
	other -= applied
	losses -= applied
	applied = min(losses, discountable)
	discountable -= applied
	losses -= applied

	summary.Discount = discount(discountable)
	summary.NetCapitalGain = other + discountable - summary.Discount
	summary.CarriedForwardLoss = losses

	p.logger.Debug(fmt.Sprintf("net capital gain %d across %d disposals", summary.NetCapitalGain, len(summary.Disposals)),
		zap.String("op", "finance.Gains"),
		zap.String("financialYear", summary.FinancialYear),
	)
	return summary, nil
}
