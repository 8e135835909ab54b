package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/invest"
	"github.com/google/subcommands"
)

// cpiCmd is the top-level command for the CPI index.
type cpiCmd struct{}

func (*cpiCmd) Name() string     { return "cpi" }
func (*cpiCmd) Synopsis() string { return "CPI index commands" }
func (*cpiCmd) Usage() string {
	return `cpi <subcommand> <options>

Shows or fetches the consumer price index used to adjust deposits.
`
}
func (c *cpiCmd) SetFlags(f *flag.FlagSet) {}

func (c *cpiCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "cpi")
	commander.Register(&cpiShowCmd{}, "")
	commander.Register(&cpiFetchCmd{}, "")
	return commander.Execute(ctx, args...)
}

// rangeFlags select a month range.
type rangeFlags struct {
	from, to string
	json     bool
}

func (c *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First period, as YYYY or YYYY-MM. Defaults to ten years ago.")
	f.StringVar(&c.to, "to", "", "Last period, as YYYY or YYYY-MM. Defaults to the current month.")
	f.BoolVar(&c.json, "json", false, "Print the index as JSON.")
}

func (c *rangeFlags) monthRange() (invest.MonthRange, error) {
	to := invest.PeriodOf(now())
	from := invest.Y(to.Year - 10)
	var err error
	if c.from != "" {
		if from, err = invest.ParsePeriod(c.from); err != nil {
			return invest.MonthRange{}, fmt.Errorf("invalid -from: %w", err)
		}
	}
	if c.to != "" {
		if to, err = invest.ParsePeriod(c.to); err != nil {
			return invest.MonthRange{}, fmt.Errorf("invalid -to: %w", err)
		}
	}
	return invest.NewMonthRange(from, to), nil
}

// indexJSON is an index as printed in JSON.
type indexJSON struct {
	Name     string              `json:"name"`
	Entries  []invest.IndexEntry `json:"entries"`
	Warnings invest.Warnings     `json:"warnings,omitempty"`
}
