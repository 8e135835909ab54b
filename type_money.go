package invest

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is specified.
const DefaultCurrency = "ILS"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from any numeric value.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: strings.ToUpper(currency)}
}

// MaxAmount bounds the amounts accepted from text, in absolute value.
var MaxAmount = decimal.New(1, 15)

// ParseMoney parses a decimal amount like "10000" or "1234.56". Amounts above
// MaxAmount in absolute value are rejected.
func ParseMoney(s, currency string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: not a number", s)
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return Money{}, fmt.Errorf("invalid amount %q: must not exceed %s", s, MaxAmount)
	}
	return Money{value: d, cur: strings.ToUpper(currency)}, nil
}

// currency returns the money's currency, never nil.
func (m Money) currency() money.Currency {
	code := m.cur
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, code).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency's fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Round(places int32) Money        { return Money{value: m.value.Round(places), cur: m.cur} }

// Mul scales the amount by a decimal factor.
func (m Money) Mul(f decimal.Decimal) Money { return Money{value: m.value.Mul(f), cur: m.cur} }

// MulRate returns the fraction r of m.
func (m Money) MulRate(r Rate) Money { return m.Mul(r.value) }

// Ratio returns m/n. It panics if n is zero, callers check first.
func (m Money) Ratio(n Money) decimal.Decimal { return m.value.Div(n.value) }

// NonNegative returns m, or zero if m is negative.
func (m Money) NonNegative() Money {
	if m.value.IsNegative() {
		return Money{cur: m.cur}
	}
	return m
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Sum adds up all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// AsFloat is meant for chart plotting only, calculations stay in decimal.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value.Round(int32(m.currency().Fraction)))
	return w.MarshalJSON()
}
