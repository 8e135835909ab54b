package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/invest"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

// projectCmd projects a single amount into the future.
type projectCmd struct {
	start      string
	yield      string
	commission string
	fee        string
	years      int
	json       bool
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project an amount with compound interest" }
func (*projectCmd) Usage() string {
	return `inv project -start <amount> -yield <percent> [-commission <percent>] [-fee <percent>] [-years <n>]

  Projects an amount invested today, year by year: the transaction fee is
  paid once at the start, then every year the yield is applied and the
  commission deducted from the grown balance.

Usage Examples:

  inv project -start 100000 -yield 5 -commission 0.5 -years 3

`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "Amount invested.")
	f.StringVar(&c.yield, "yield", "", "Expected annual yield, in percent.")
	f.StringVar(&c.commission, "commission", "0", "Annual commission, in percent.")
	f.StringVar(&c.fee, "fee", "0", "One-time transaction fee, in percent.")
	f.IntVar(&c.years, "years", 10, "Number of years to project.")
	f.BoolVar(&c.json, "json", false, "Print the projection as JSON.")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	start, inv, years, err := invest.ParseProjection(invest.RawProjection{
		Start:          c.start,
		Yield:          c.yield,
		Commission:     c.commission,
		TransactionFee: c.fee,
		Years:          strconv.Itoa(c.years),
		Currency:       cfg.Currency,
	})
	if printValidation(err) {
		return subcommands.ExitUsageError
	}
	series, err := inv.Project(start, years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(series); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	title := fmt.Sprintf("%s at %s a year", start, inv.Yield.SignedString())
	printMarkdown(renderer.ProjectionMarkdown(title, series))
	return subcommands.ExitSuccess
}
