package invest

import "github.com/shopspring/decimal"

// AdjustedDeposit is a deposit expressed in latest-index money.
type AdjustedDeposit struct {
	Deposit   Deposit         `json:"-"`
	Period    Period          `json:"period"`
	Nominal   Money           `json:"nominal"`
	CPI       Resolution      `json:"cpi"`
	LatestCPI decimal.Decimal `json:"latest_cpi"`
	Adjusted  Money           `json:"adjusted"`
	Skipped   bool            `json:"skipped,omitempty"` // no CPI value, Adjusted is Nominal
}

// Factor returns the inflation ratio applied to the deposit.
func (a AdjustedDeposit) Factor() decimal.Decimal {
	if a.Skipped || a.CPI.Value.IsZero() {
		return one
	}
	return a.LatestCPI.Div(a.CPI.Value)
}

// Adjust rescales each deposit to present value:
//
//	adjusted = nominal × latest / index at deposit time
//
// With monthly set, the latest month of the index is the reference and a
// recurring deposit is expanded into one adjusted entry per covered month.
// Otherwise the latest year is the reference and every deposit uses its
// year's value.
//
// Adjust never fails: an index value that cannot be resolved exactly is
// forward-filled (WarnCPIFallback), and with no index value at all the
// deposit is kept at its nominal amount (WarnCPIMissing).
func Adjust(deposits []Deposit, index *Index, monthly bool) ([]AdjustedDeposit, Warnings) {
	var warnings Warnings
	if monthly && index.Len() > 0 && !index.HasMonthly() {
		warnings.Add(WarnMonthlyUnavailable, "index %q has yearly values only, monthly deposits use their year's value", index.Name())
	}

	latest, latestErr := index.Latest(monthly)

	var adjusted []AdjustedDeposit
	for _, deposit := range deposits {
		parts := []Deposit{deposit}
		if monthly {
			parts = deposit.Split()
		}
		for _, d := range parts {
			p := d.Period
			if !monthly {
				p = p.Annual()
			}
			a := AdjustedDeposit{Deposit: d, Period: p, Nominal: d.Amount, Adjusted: d.Amount}
			if latestErr != nil {
				a.Skipped = true
				warnings.Add(WarnCPIMissing, "deposit %s not adjusted for inflation: %v", d, latestErr)
				adjusted = append(adjusted, a)
				continue
			}
			res, err := index.Lookup(p)
			if err != nil {
				a.Skipped = true
				warnings.Add(WarnCPIMissing, "deposit %s not adjusted for inflation: %v", d, err)
				adjusted = append(adjusted, a)
				continue
			}
			if res.Fallback {
				warnings.Add(WarnCPIFallback, "no CPI value for %s, using %s (%s)", p, res.Resolved, res.Value)
			}
			a.CPI = res
			a.LatestCPI = latest.Value
			a.Adjusted = Money{value: d.Amount.value.Mul(latest.Value).Div(res.Value), cur: d.Amount.cur}
			adjusted = append(adjusted, a)
		}
	}
	return adjusted, warnings
}

// TotalAdjusted returns the sum of the adjusted amounts.
func TotalAdjusted(adjusted []AdjustedDeposit) Money {
	var total Money
	for _, a := range adjusted {
		total = total.Add(a.Adjusted)
	}
	return total
}
