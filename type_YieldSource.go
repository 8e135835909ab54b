package invest

import (
	"fmt"
	"strings"
)

// YieldSource defines where the current investment's yield comes from.
type YieldSource int

const (
	// CalculatedYield uses the yield estimated from the deposit history.
	CalculatedYield YieldSource = iota
	// ManualYield uses a yield entered by the user.
	ManualYield
)

func (s YieldSource) String() string {
	switch s {
	case CalculatedYield:
		return "calculated"
	case ManualYield:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseYieldSource parses a string into a YieldSource.
func ParseYieldSource(s string) (YieldSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calculated", "":
		return CalculatedYield, nil
	case "manual":
		return ManualYield, nil
	default:
		return 0, fmt.Errorf("unknown yield source: %q", s)
	}
}

func (s YieldSource) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
