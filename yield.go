package invest

import (
	"math"

	"github.com/shopspring/decimal"
)

// OverallYield returns (current − deposited) / deposited, over the whole life
// of the investment.
func OverallYield(deposits []Deposit, current Money) (Rate, error) {
	total, err := checkDeposits(deposits)
	if err != nil {
		return Rate{}, err
	}
	return Rate{value: current.Sub(total).value.Div(total.value)}, nil
}

// EstimateYield infers the annual yield implied by the deposits and the
// current value, as of asOf.
//
// Both models assume a single compounding rate is a fair approximation of
// irregular cash flows. They are not an IRR solve.
//
// SimpleYield: with d = asOf.Year − earliest deposit year + 1,
//
//	annual = (1 + overall)^(1/d) − 1
//
// TimeWeightedYield: each deposit is weighted by its amount and the number
// of months it was held up to asOf (the deposit month included, a yearly
// deposit counts from January, a yearly asOf counts up to December); with w
// the weighted average holding period in years,
//
//	annual = (current / deposited)^(1/w) − 1
func EstimateYield(deposits []Deposit, current Money, asOf Period, model YieldModel) (Rate, error) {
	total, err := checkDeposits(deposits)
	if err != nil {
		return Rate{}, err
	}
	if current.IsNegative() {
		return Rate{}, invalid("current value must not be negative, got %s", current)
	}
	growth := current.Ratio(total).InexactFloat64() // 1 + overall yield

	var years float64
	switch model {
	case TimeWeightedYield:
		years, err = weightedDuration(deposits, total, asOf)
		if err != nil {
			return Rate{}, err
		}
	default:
		first, _ := EarliestPeriod(deposits)
		d := asOf.Year - first.Year + 1
		if d < 1 {
			return Rate{}, invalid("deposit in %d is after %s", first.Year, asOf)
		}
		years = float64(d)
	}
	annual := math.Pow(growth, 1/years) - 1
	if math.IsInf(annual, 0) || math.IsNaN(annual) {
		return Rate{}, invalid("implied yield out of range: %s grown to %s over %.2f years", total, current, years)
	}
	return Rate{value: decimal.NewFromFloat(annual)}, nil
}

// weightedDuration returns the amount weighted average holding period, in years.
func weightedDuration(deposits []Deposit, total Money, asOf Period) (float64, error) {
	end := asOf
	if end.IsAnnual() {
		end.Month = 12
	}
	var weighted decimal.Decimal
	for _, deposit := range deposits {
		for _, d := range deposit.Split() {
			held := end.index() - d.Period.index() + 1
			if held < 1 {
				return 0, invalid("deposit %s is after %s", d, asOf)
			}
			weighted = weighted.Add(d.Amount.value.Mul(decimal.NewFromInt(int64(held))))
		}
	}
	months := weighted.Div(total.value).InexactFloat64()
	return months / 12, nil
}

// checkDeposits returns the total deposited, or ErrInvalidInput if there is
// nothing to compute a yield on.
func checkDeposits(deposits []Deposit) (Money, error) {
	if len(deposits) == 0 {
		return Money{}, invalid("no deposits")
	}
	total := TotalDeposited(deposits)
	if !total.IsPositive() {
		return Money{}, invalid("total deposited must be positive, got %s", total)
	}
	return total, nil
}
