package finance

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/serviceability/pkg/datetime"
)

func parcel(name string, costBase int64, purchase time.Time) Parcel {
	return Parcel{Name: name, CostBase: costBase, PurchaseDate: purchase}
}

func TestCapitalGain(t *testing.T) {
	purchase := datetime.Date(2023, time.January, 1)
	tests := []struct {
		name       string
		sale       time.Time
		proceeds   int64
		eligible   bool
		heldMonths int
		gross      int64
		net        int64
	}{
		{"Exactly twelve months is discounted", datetime.Date(2024, time.January, 1), 1500000, true, 12, 500000, 250000},
		{"One day short is not discounted", datetime.Date(2023, time.December, 31), 1500000, false, 11, 500000, 500000},
		{"Loss is never discounted", datetime.Date(2024, time.June, 1), 800000, true, 17, -200000, -200000},
		{"Sale with the clock set late in the day", time.Date(2024, time.January, 1, 23, 59, 0, 0, time.Local), 1100000, true, 12, 100000, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CapitalGain(parcel("shares", 1000000, purchase), tt.sale, tt.proceeds)
			if result.DiscountEligible != tt.eligible {
				t.Errorf("DiscountEligible = %v, expected %v", result.DiscountEligible, tt.eligible)
			}
			if result.HeldMonths != tt.heldMonths {
				t.Errorf("HeldMonths = %d, expected %d", result.HeldMonths, tt.heldMonths)
			}
			if result.GrossGain != tt.gross || result.NetGain != tt.net {
				t.Errorf("gain = %d/%d, expected %d/%d", result.GrossGain, result.NetGain, tt.gross, tt.net)
			}
			if result.Discount != result.GrossGain-result.NetGain {
				t.Errorf("Discount %d inconsistent with gross %d and net %d", result.Discount, result.GrossGain, result.NetGain)
			}
		})
	}
}

func TestPortfolioGains(t *testing.T) {
	fy := datetime.MustParseFinancialYear("2023-24")
	sales := []Sale{
		{Holding: parcel("long", 1000000, datetime.Date(2022, time.January, 1)), Date: datetime.Date(2023, time.August, 1), Proceeds: 2000000},
		{Holding: parcel("short", 500000, datetime.Date(2023, time.July, 10)), Date: datetime.Date(2024, time.March, 1), Proceeds: 800000},
		{Holding: parcel("loss", 600000, datetime.Date(2022, time.May, 1)), Date: datetime.Date(2024, time.February, 1), Proceeds: 400000},
		{Holding: parcel("next year", 100000, datetime.Date(2020, time.May, 1)), Date: datetime.Date(2024, time.August, 1), Proceeds: 900000},
		{Holding: nil, Date: datetime.Date(2024, time.January, 1), Proceeds: 1},
	}

	summary, err := NewPortfolio(zap.NewNop()).Gains(sales, 50000, fy)
	if err != nil {
		t.Fatalf("Gains() error = %v", err)
	}

	if len(summary.Disposals) != 3 {
		t.Fatalf("expected 3 disposals in 2023-24, got %d", len(summary.Disposals))
	}
	if summary.TotalGains != 1300000 || summary.TotalLosses != 200000 {
		t.Errorf("gains/losses = %d/%d, expected 1300000/200000", summary.TotalGains, summary.TotalLosses)
	}
	// Losses of $2,500 absorb most of the short-term gain; the discount
	// then halves the untouched long-term gain.
	if summary.Discount != 500000 {
		t.Errorf("Discount = %d, expected 500000", summary.Discount)
	}
	if summary.NetCapitalGain != 550000 {
		t.Errorf("NetCapitalGain = %d, expected 550000", summary.NetCapitalGain)
	}
	if summary.CarriedForwardLoss != 0 {
		t.Errorf("CarriedForwardLoss = %d, expected 0", summary.CarriedForwardLoss)
	}
}

func TestPortfolioGainsCarriesLossForward(t *testing.T) {
	fy := datetime.MustParseFinancialYear("2023-24")
	sales := []Sale{
		{Holding: parcel("loss", 600000, datetime.Date(2022, time.May, 1)), Date: datetime.Date(2024, time.February, 1), Proceeds: 400000},
	}

	summary, err := NewPortfolio(nil).Gains(sales, 50000, fy)
	if err != nil {
		t.Fatalf("Gains() error = %v", err)
	}
	if summary.NetCapitalGain != 0 || summary.CarriedForwardLoss != 250000 {
		t.Errorf("net %d carried %d, expected 0 and 250000", summary.NetCapitalGain, summary.CarriedForwardLoss)
	}
}

func TestPortfolioGainsRejectsSaleBeforePurchase(t *testing.T) {
	fy := datetime.MustParseFinancialYear("2023-24")
	sales := []Sale{
		{Holding: parcel("first", 100, datetime.Date(2024, time.May, 1)), Date: datetime.Date(2024, time.January, 1), Proceeds: 200},
		{Holding: parcel("second", 100, datetime.Date(2024, time.June, 1)), Date: datetime.Date(2024, time.February, 1), Proceeds: 200},
	}

	_, err := NewPortfolio(nil).Gains(sales, 0, fy)
	if !errors.Is(err, ErrSaleBeforePurchase) {
		t.Fatalf("expected ErrSaleBeforePurchase, got %v", err)
	}
	if !strings.Contains(err.Error(), "first") || !strings.Contains(err.Error(), "second") {
		t.Errorf("expected both invalid sales reported, got %v", err)
	}
}

func TestGrossUpFranked(t *testing.T) {
	tests := []struct {
		name     string
		dividend int64
		franking float64
		credit   int64
	}{
		{"Fully franked", 70000, 100, 30000},
		{"Half franked", 70000, 50, 15000},
		{"Unfranked", 70000, 0, 0},
		{"Franking above 100 clamps", 70000, 150, 30000},
		{"Zero dividend", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GrossUpFranked(tt.dividend, tt.franking)
			if result.FrankingCredit != tt.credit {
				t.Errorf("FrankingCredit = %d, expected %d", result.FrankingCredit, tt.credit)
			}
			if result.GrossedUp != result.Dividend+result.FrankingCredit {
				t.Errorf("GrossedUp %d does not equal dividend plus credit", result.GrossedUp)
			}
		})
	}
}
