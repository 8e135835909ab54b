package invest

import (
	"fmt"
	"strings"
)

// BracketMode defines how the escalated tax rate applies once the real gain
// crosses the threshold.
type BracketMode int

const (
	// WholeGain applies the escalated rate to the entire gain.
	WholeGain BracketMode = iota
	// AboveThreshold applies the standard rate up to the threshold and the
	// escalated rate to the portion above it.
	AboveThreshold
)

func (m BracketMode) String() string {
	switch m {
	case WholeGain:
		return "whole"
	case AboveThreshold:
		return "marginal"
	default:
		return "unknown"
	}
}

// ParseBracketMode parses a string into a BracketMode.
func ParseBracketMode(s string) (BracketMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole", "":
		return WholeGain, nil
	case "marginal", "above":
		return AboveThreshold, nil
	default:
		return 0, fmt.Errorf("unknown tax bracket mode: %q", s)
	}
}

func (m BracketMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
