package regulatory

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownState is returned for a state or territory code outside the eight jurisdictions.
var ErrUnknownState = errors.New("unknown state")

// State is an Australian state or territory code.
type State string

// The eight Australian states and territories.
const (
	NSW State = "NSW"
	VIC State = "VIC"
	QLD State = "QLD"
	WA  State = "WA"
	SA  State = "SA"
	TAS State = "TAS"
	ACT State = "ACT"
	NT  State = "NT"
)

// States lists every jurisdiction in a stable order.
var States = []State{NSW, VIC, QLD, WA, SA, TAS, ACT, NT}

// ParseState accepts a state code in any case.
func ParseState(value string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range States {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownState, value)
}
