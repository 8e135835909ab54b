package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invest"
)

// depositList is a repeatable flag of deposits, parsed later once the
// currency is known.
type depositList []string

func (l *depositList) String() string { return strings.Join(*l, ",") }

func (l *depositList) Set(s string) error {
	if _, err := invest.ParseDeposit(s, ""); err != nil {
		return err
	}
	*l = append(*l, s)
	return nil
}

// currentFlags are the flags describing the current investment.
type currentFlags struct {
	deposits    depositList
	file        string
	value       string
	commission  string
	asOf        string
	monthly     bool
	yieldModel  string
	manualYield string
	json        bool
}

func (c *currentFlags) SetFlags(f *flag.FlagSet) {
	f.Var(&c.deposits, "d", "Deposit as <year>[-<month>[..<month>]]=<amount>, e.g. 2015=10000 or 2016-03..12=12000. Repeatable.")
	f.StringVar(&c.file, "f", "", "JSONL file of deposits, one {\"year\",\"month\",\"end_month\",\"amount\"} object per line.")
	f.StringVar(&c.value, "value", "", "Current value of the investment.")
	f.StringVar(&c.commission, "commission", "0", "Annual commission of the current investment, in percent.")
	f.StringVar(&c.asOf, "asof", "", "Period of the current value, as YYYY or YYYY-MM. Defaults to the current month.")
	f.BoolVar(&c.monthly, "monthly", false, "Adjust deposits month by month, on a monthly CPI index.")
	f.StringVar(&c.yieldModel, "yield-model", "simple", "Annual yield estimation: simple or time-weighted.")
	f.StringVar(&c.manualYield, "manual-yield", "", "Annual yield of the current investment, in percent, instead of the estimated one.")
	f.BoolVar(&c.json, "json", false, "Print the result as JSON.")
}

// raw returns the form fields of the current investment.
func (c *currentFlags) raw() (invest.RawInput, error) {
	raw := invest.RawInput{
		CurrentValue:       c.value,
		CurrentCommission:  c.commission,
		AsOf:               c.asOf,
		MonthlyGranularity: c.monthly,
		YieldModel:         c.yieldModel,
	}
	if c.manualYield != "" {
		raw.YieldSource = invest.ManualYield.String()
		raw.ManualYield = c.manualYield
	}
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			return raw, err
		}
		defer f.Close()
		deposits, err := invest.DecodeDeposits(f, "")
		if err != nil {
			return raw, fmt.Errorf("cannot read deposits from %q: %w", c.file, err)
		}
		for _, d := range deposits {
			raw.Deposits = append(raw.Deposits, d.Raw())
		}
	}
	for _, s := range c.deposits {
		d, err := invest.ParseDeposit(s, "")
		if err != nil {
			return raw, err
		}
		raw.Deposits = append(raw.Deposits, d.Raw())
	}
	return raw, nil
}

// flagNames maps input fields to the flags setting them.
var flagNames = map[string]string{
	"deposits":            "d",
	"current_value":       "value",
	"current_commission":  "commission",
	"as_of":               "asof",
	"yield_model":         "yield-model",
	"manual_yield":        "manual-yield",
	"new_yield":           "new-yield",
	"new_commission":      "new-commission",
	"new_transaction_fee": "new-fee",
	"years_to_project":    "years",
	"partial_move":        "move",
	"compare_basis":       "basis",
	"tax_bracket":         "tax-policy",
	"currency":            "currency",
	"start":               "start",
	"yield":               "yield",
	"commission":          "commission",
	"transaction_fee":     "fee",
	"years":               "years",
}

// printValidation prints the field errors of err by flag name, and reports
// whether err had any.
func printValidation(err error) bool {
	var verrs invest.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	fmt.Fprintln(os.Stderr, "Error: invalid arguments:")
	for _, e := range verrs {
		name := e.Field
		if i := strings.IndexAny(name, "[."); i > 0 && strings.HasPrefix(name, "deposits") {
			name = "deposits"
		}
		if f, ok := flagNames[name]; ok {
			name = "-" + f
			if e.Field != "deposits" && strings.HasPrefix(e.Field, "deposits") {
				name += " " + strings.TrimPrefix(e.Field, "deposits")
			}
		}
		fmt.Fprintf(os.Stderr, "  %s: %s\n", name, e.Reason)
	}
	return true
}
