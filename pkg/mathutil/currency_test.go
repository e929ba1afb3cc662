package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"Round up at midpoint", "41250.5", 41251},
		{"Round down below midpoint", "41250.49", 41250},
		{"No rounding needed", "100", 100},
		{"Negative midpoint rounds toward positive", "-2.5", -2},
		{"Negative below midpoint", "-2.6", -3},
		{"Zero", "0", 0},
		{"Tiny fraction", "0.0001", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundCents(decimal.RequireFromString(tt.input))
			if result != tt.expected {
				t.Errorf("RoundCents(%s) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFloatDollarsToCents(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int64
	}{
		{"Whole dollars", 600000, 60000000},
		{"Cents survive binary float", 0.1, 10},
		{"Sum that drifts in float64", 0.1 + 0.2, 30},
		{"Half cent rounds up", 10.005, 1001},
		{"Negative", -12.34, -1234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FloatDollarsToCents(tt.input)
			if result != tt.expected {
				t.Errorf("FloatDollarsToCents(%v) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDivByZero(t *testing.T) {
	if got := Div(decimal.NewFromInt(10), decimal.Zero); !got.IsZero() {
		t.Errorf("Div by zero = %s, expected 0", got)
	}
}

func TestPowInt(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		n        int
		expected string
	}{
		{"Zero exponent", "1.5", 0, "1"},
		{"Square", "1.1", 2, "1.21"},
		{"Cube", "2", 10, "1024"},
		{"Odd exponent", "1.01", 3, "1.030301"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PowInt(decimal.RequireFromString(tt.base), tt.n)
			if !result.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("PowInt(%s, %d) = %s, expected %s", tt.base, tt.n, result, tt.expected)
			}
		})
	}
}

func TestPowIntLongTermStaysBounded(t *testing.T) {
	r := decimal.RequireFromString("1.0079166666666666666667")
	result := PowInt(r, 360)
	if result.Exponent() < -24 {
		t.Errorf("PowInt kept %d fractional digits, expected at most 24", -result.Exponent())
	}
	f := result.InexactFloat64()
	if f < 17.0 || f > 17.2 {
		t.Errorf("PowInt(1.00791667, 360) = %v, expected about 17.09", f)
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		total    int64
		places   int32
		expected float64
	}{
		{"Exact", 35, 100, 2, 35},
		{"Rounded", 1, 3, 2, 33.33},
		{"Half up", 1, 8, 1, 12.5},
		{"Zero total", 5, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentOf(FromCents(tt.value), FromCents(tt.total), tt.places)
			if result != tt.expected {
				t.Errorf("PercentOf(%d, %d) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercent(t *testing.T) {
	got := RoundCents(ApplyPercent(1000000, 3))
	if got != 30000 {
		t.Errorf("ApplyPercent(1000000, 3) = %d, expected 30000", got)
	}
}

func TestNonNegative(t *testing.T) {
	if NonNegative(-5) != 0 || NonNegative(5) != 5 {
		t.Error("NonNegative did not clamp correctly")
	}
}
