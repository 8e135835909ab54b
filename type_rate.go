package invest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type number interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T number](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Rate is a fraction, 0.075 stands for 7.5%.
type Rate struct {
	value decimal.Decimal
}

// R creates a Rate from a fraction.
func R[T number](fraction T) Rate { return Rate{value: newDecimal(fraction)} }

// ParsePercent parses percentage points, "7.5" is 7.5%. A trailing "%" is accepted.
func ParsePercent(s string) (Rate, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return Rate{}, fmt.Errorf("empty percentage")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid percentage %q: not a number", s)
	}
	return Rate{value: d.Div(hundred)}, nil
}

func (r Rate) Decimal() decimal.Decimal { return r.value }
func (r Rate) Float64() float64         { return r.value.InexactFloat64() }
func (r Rate) IsZero() bool             { return r.value.IsZero() }
func (r Rate) IsNegative() bool         { return r.value.IsNegative() }
func (r Rate) Equal(q Rate) bool        { return r.value.Equal(q.value) }

// Percent returns the rate in percentage points.
func (r Rate) Percent() decimal.Decimal { return r.value.Mul(hundred) }

// Growth returns 1+r.
func (r Rate) Growth() decimal.Decimal { return one.Add(r.value) }

// Complement returns 1-r.
func (r Rate) Complement() decimal.Decimal { return one.Sub(r.value) }

// Within reports whether lo <= r <= hi.
func (r Rate) Within(lo, hi float64) bool {
	return r.value.GreaterThanOrEqual(decimal.NewFromFloat(lo)) && r.value.LessThanOrEqual(decimal.NewFromFloat(hi))
}

func (r Rate) String() string {
	return r.Percent().StringFixed(2) + "%"
}

func (r Rate) SignedString() string {
	if r.value.IsZero() {
		return "-"
	}
	if r.value.IsPositive() {
		return "+" + r.String()
	}
	return r.String()
}

// MarshalJSON writes the fraction as a JSON number.
func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(r.value.Round(10).String()), nil
}

func (r *Rate) UnmarshalJSON(data []byte) error {
	return r.value.UnmarshalJSON(data)
}
