package regulatory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	if err := Validate(); err != nil {
		panic(fmt.Sprintf("regulatory tables are inconsistent: %v", err))
	}
}

// Validate checks that every bracketed table is contiguous, ascending, open
// ended at the top and that cumulative bases chain from the bracket below.
func Validate() error {
	var errs []error
	for _, fy := range incomeTax.years {
		if err := checkTaxBrackets(incomeTax.entries[fy]); err != nil {
			errs = append(errs, fmt.Errorf("income tax %d: %w", fy, err))
		}
	}
	for _, fy := range surcharge.years {
		t := surcharge.entries[fy]
		if err := checkSurchargeTiers(t.Single); err != nil {
			errs = append(errs, fmt.Errorf("MLS single %d: %w", fy, err))
		}
		if err := checkSurchargeTiers(t.Family); err != nil {
			errs = append(errs, fmt.Errorf("MLS family %d: %w", fy, err))
		}
	}
	for _, fy := range stampDuty.years {
		for state, duty := range stampDuty.entries[fy] {
			if err := checkDutyBrackets(duty.Brackets); err != nil {
				errs = append(errs, fmt.Errorf("stamp duty %s %d: %w", state, fy, err))
			}
		}
	}
	if err := checkHEMBrackets(hemBrackets); err != nil {
		errs = append(errs, fmt.Errorf("HEM: %w", err))
	}
	if err := checkLMIBands(lmiBands); err != nil {
		errs = append(errs, fmt.Errorf("LMI: %w", err))
	}
	return errors.Join(errs...)
}

func checkTaxBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return errors.New("no brackets")
	}
	if brackets[0].Threshold != 0 {
		return errors.New("first bracket does not start at zero")
	}
	for i := 1; i < len(brackets); i++ {
		prev, cur := brackets[i-1], brackets[i]
		if prev.Max == 0 || cur.Threshold != prev.Max {
			return fmt.Errorf("gap or overlap at bracket %d", i)
		}
		span := decimal.NewFromInt(prev.Max - prev.Threshold)
		expected := decimal.NewFromInt(prev.BaseTax).Add(span.Mul(prev.Rate))
		if !expected.Equal(decimal.NewFromInt(cur.BaseTax)) {
			return fmt.Errorf("bracket %d base %d does not chain from bracket %d (expected %s)", i, cur.BaseTax, i-1, expected)
		}
	}
	if brackets[len(brackets)-1].Max != 0 {
		return errors.New("top bracket is not open ended")
	}
	return nil
}

func checkSurchargeTiers(tiers []SurchargeTier) error {
	if len(tiers) == 0 || tiers[0].Threshold != 0 {
		return errors.New("tiers must start at zero")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i-1].Max == 0 || tiers[i].Threshold != tiers[i-1].Max {
			return fmt.Errorf("gap or overlap at tier %d", i)
		}
	}
	if tiers[len(tiers)-1].Max != 0 {
		return errors.New("top tier is not open ended")
	}
	return nil
}

func checkDutyBrackets(brackets []DutyBracket) error {
	if len(brackets) == 0 {
		return errors.New("no brackets")
	}
	lower := decimal.Zero
	for i, b := range brackets {
		last := i == len(brackets)-1
		if last != b.UpTo.IsZero() {
			return fmt.Errorf("bracket %d: only the top bracket may be open ended", i)
		}
		if !last && !b.UpTo.GreaterThan(lower) {
			return fmt.Errorf("bracket %d is not ascending", i)
		}
		if i > 0 && b.Formula == Marginal && brackets[i-1].Formula == Marginal {
			prev := brackets[i-1]
			prevLower := decimal.Zero
			if i > 1 {
				prevLower = brackets[i-2].UpTo
			}
			expected := prev.Base.Add(prev.UpTo.Sub(prevLower).Mul(prev.Rate))
			if !expected.Equal(b.Base) {
				return fmt.Errorf("bracket %d base %s does not chain (expected %s)", i, b.Base, expected)
			}
		}
		lower = b.UpTo
	}
	return nil
}

func checkHEMBrackets(brackets []HEMBracket) error {
	if len(brackets) == 0 || brackets[0].Min != 0 {
		return errors.New("brackets must start at zero")
	}
	for i := 1; i < len(brackets); i++ {
		if brackets[i-1].Max == 0 || brackets[i].Min != brackets[i-1].Max {
			return fmt.Errorf("gap or overlap at bracket %d", i)
		}
	}
	if brackets[len(brackets)-1].Max != 0 {
		return errors.New("top bracket is not open ended")
	}
	return nil
}

func checkLMIBands(bands []LMIBand) error {
	if len(bands) == 0 {
		return errors.New("no bands")
	}
	for i := 1; i < len(bands); i++ {
		if bands[i-1].UpToLVR.IsZero() || !bands[i].AboveLVR.Equal(bands[i-1].UpToLVR) {
			return fmt.Errorf("gap or overlap at band %d", i)
		}
	}
	if !bands[len(bands)-1].UpToLVR.IsZero() {
		return errors.New("top band is not open ended")
	}
	return nil
}
