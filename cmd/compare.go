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

// compareCmd compares staying in the current investment with moving to a new one.
type compareCmd struct {
	currentFlags
	newYield      string
	newCommission string
	newFee        string
	years         int
	move          string
	basis         string
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "compare keeping the current investment with moving to a new one"
}
func (*compareCmd) Usage() string {
	return `inv compare -value <amount> (-d <deposit>... | -f <deposits.jsonl>) -new-yield <percent> [options]

  Projects, year after year, the current investment kept as is, and the
  money left after tax moved into the new investment (or only a part of it
  with -move). Prints the year the move gets ahead, if it ever does, and a
  recommendation based on the final values.

Usage Examples:

  inv compare -d 2015=10000 -value 20000 -new-yield 7 -new-commission 0.5 -years 10
  inv compare -f deposits.jsonl -value 20000 -manual-yield 4 -new-yield 6 -move 50 -basis net

`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	c.currentFlags.SetFlags(f)
	f.StringVar(&c.newYield, "new-yield", "", "Expected annual yield of the new investment, in percent.")
	f.StringVar(&c.newCommission, "new-commission", "0", "Annual commission of the new investment, in percent.")
	f.StringVar(&c.newFee, "new-fee", "0", "One-time transaction fee to enter the new investment, in percent.")
	f.IntVar(&c.years, "years", 10, "Number of years to project.")
	f.StringVar(&c.move, "move", "100", "Percentage of the money left after tax moved to the new investment.")
	f.StringVar(&c.basis, "basis", "gross", "Compare gross values, or net values after the tax due on a sale: gross or net.")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	raw, err := c.raw()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading deposits: %v\n", err)
		return subcommands.ExitUsageError
	}
	raw.NewYield = c.newYield
	raw.NewCommission = c.newCommission
	raw.NewTransactionFee = c.newFee
	raw.YearsToProject = strconv.Itoa(c.years)
	raw.PartialMove = c.move
	raw.CompareBasis = c.basis

	s, r, err := calculator(cfg).Compare(ctx, raw)
	if printValidation(err) {
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing investments: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(invest.NewReport(s, &r)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SnapshotMarkdown(&s) + "\n" + renderer.ComparisonMarkdown(&r))
	return subcommands.ExitSuccess
}
