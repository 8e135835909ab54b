package invest

import "fmt"

// precision is the number of decimal places projected values are kept at.
const precision = 10

// MaxYears bounds the length of a projection.
const MaxYears = 200

// Series is a projected value per year, index 0 being the starting value.
type Series []Money

// Final returns the last value of the series.
func (s Series) Final() Money {
	if len(s) == 0 {
		return Money{}
	}
	return s[len(s)-1]
}

// Years returns the number of projected years.
func (s Series) Years() int { return len(s) - 1 }

// Plus adds two series of the same length, index-wise.
func (s Series) Plus(o Series) (Series, error) {
	if len(s) != len(o) {
		return nil, fmt.Errorf("cannot add series of %d and %d values", len(s), len(o))
	}
	sum := make(Series, len(s))
	for i := range s {
		sum[i] = s[i].Add(o[i])
	}
	return sum, nil
}

// Project compounds start over years:
//
//	value[0] = start × (1 − fee)
//	value[t] = value[t−1] × (1 + yield) × (1 − commission)
//
// The yield is applied first and the commission is deducted from the grown
// balance. The returned series has years+1 values, each rounded to 10
// decimal places.
func Project(start Money, yield, commission, fee Rate, years int) (Series, error) {
	if years < 0 || years > MaxYears {
		return nil, invalid("years to project must be between 0 and %d, got %d", MaxYears, years)
	}
	if !commission.Within(0, 1) {
		return nil, invalid("commission must be between 0%% and 100%%, got %s", commission)
	}
	if !fee.Within(0, 1) {
		return nil, invalid("transaction fee must be between 0%% and 100%%, got %s", fee)
	}
	if yield.value.LessThan(one.Neg()) {
		return nil, invalid("yield must not be below -100%%, got %s", yield)
	}
	factor := yield.Growth().Mul(commission.Complement())
	values := make(Series, years+1)
	values[0] = start.Mul(fee.Complement()).Round(precision)
	for t := 1; t <= years; t++ {
		values[t] = values[t-1].Mul(factor).Round(precision)
	}
	return values, nil
}
