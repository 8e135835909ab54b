package invest

import (
	"fmt"
	"strings"
)

// CompareBasis selects the series the break-even year and the recommendation
// are computed on.
type CompareBasis int

const (
	// GrossBasis compares projected values before any future tax.
	GrossBasis CompareBasis = iota
	// NetBasis compares projected values minus the tax that would be due if
	// the investment were sold that year.
	NetBasis
)

func (b CompareBasis) String() string {
	switch b {
	case GrossBasis:
		return "gross"
	case NetBasis:
		return "net"
	default:
		return "unknown"
	}
}

// ParseCompareBasis parses a string into a CompareBasis.
func ParseCompareBasis(s string) (CompareBasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gross", "":
		return GrossBasis, nil
	case "net":
		return NetBasis, nil
	default:
		return 0, fmt.Errorf("unknown compare basis: %q", s)
	}
}

func (b CompareBasis) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
