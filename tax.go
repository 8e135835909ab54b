package invest

import "github.com/shopspring/decimal"

// TaxPolicy describes a capital gains tax with two brackets.
type TaxPolicy struct {
	StandardRate  Rate
	EscalatedRate Rate
	// Threshold is the real gain above which the escalated rate applies.
	Threshold decimal.Decimal
	Mode      BracketMode
}

// DefaultTaxPolicy is the Israeli capital gains tax: 25% of the real gain,
// 28% once the real gain exceeds 721,560, applied to the whole gain.
var DefaultTaxPolicy = TaxPolicy{
	StandardRate:  R(0.25),
	EscalatedRate: R(0.28),
	Threshold:     decimal.NewFromInt(721560),
	Mode:          WholeGain,
}

// Tax is the tax due on a sale.
type Tax struct {
	RealGain Money `json:"real_gain"` // never negative
	Rate     Rate  `json:"rate"`      // effective rate on the real gain
	Owed     Money `json:"owed"`
}

// Compute returns the tax due when selling an investment worth gross whose
// (inflation adjusted) cost basis is basis. The real gain is
// max(0, gross − basis). The tax is never negative and never exceeds the
// real gain times the escalated rate.
func (p TaxPolicy) Compute(gross, basis Money) Tax {
	gain := gross.Sub(basis).NonNegative()
	t := Tax{RealGain: gain, Rate: p.StandardRate, Owed: Money{cur: gain.cur}}
	if gain.IsZero() {
		return t
	}
	if !gain.Decimal().GreaterThan(p.Threshold) {
		t.Owed = gain.MulRate(p.StandardRate)
		return t
	}
	switch p.Mode {
	case AboveThreshold:
		below := p.Threshold.Mul(p.StandardRate.value)
		above := gain.Decimal().Sub(p.Threshold).Mul(p.EscalatedRate.value)
		t.Owed = Money{value: below.Add(above), cur: gain.cur}
		t.Rate = Rate{value: t.Owed.value.Div(gain.value)}
	default:
		t.Owed = gain.MulRate(p.EscalatedRate)
		t.Rate = p.EscalatedRate
	}
	return t
}

// ComputeTax returns the tax owed under DefaultTaxPolicy.
func ComputeTax(gross, basis Money) Money {
	return DefaultTaxPolicy.Compute(gross, basis).Owed
}

// Validate checks the policy rates and threshold.
func (p TaxPolicy) Validate() error {
	if !p.StandardRate.Within(0, 1) || !p.EscalatedRate.Within(0, 1) {
		return invalid("tax rates must be between 0%% and 100%%, got %s and %s", p.StandardRate, p.EscalatedRate)
	}
	if p.Threshold.IsNegative() {
		return invalid("tax threshold must not be negative, got %s", p.Threshold)
	}
	return nil
}
