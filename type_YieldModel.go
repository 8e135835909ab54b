package invest

import (
	"fmt"
	"strings"
)

// YieldModel defines how the annual yield is inferred from a deposit history.
type YieldModel int

const (
	// SimpleYield annualizes the overall yield over the number of calendar
	// years since the earliest deposit (current year included).
	SimpleYield YieldModel = iota
	// TimeWeightedYield annualizes the total return over the amount weighted
	// average holding period of the deposits, at monthly resolution.
	TimeWeightedYield
)

func (m YieldModel) String() string {
	switch m {
	case SimpleYield:
		return "simple"
	case TimeWeightedYield:
		return "time-weighted"
	default:
		return "unknown"
	}
}

// ParseYieldModel parses a string into a YieldModel.
func ParseYieldModel(s string) (YieldModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return SimpleYield, nil
	case "time-weighted", "weighted", "tw":
		return TimeWeightedYield, nil
	default:
		return 0, fmt.Errorf("unknown yield model: %q", s)
	}
}

func (m YieldModel) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
