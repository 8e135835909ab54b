package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest"
	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

// analyzeCmd computes what the current investment is worth if sold.
type analyzeCmd struct {
	currentFlags
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compute the value of the current investment after tax" }
func (*analyzeCmd) Usage() string {
	return `inv analyze -value <amount> (-d <deposit>... | -f <deposits.jsonl>) [options]

  Adjusts the deposits for inflation, computes the tax due on the real gain
  if the investment were sold now, the money left after tax and the annual
  yield implied by the deposits.

Usage Examples:

  inv analyze -d 2015=10000 -d 2018=5000 -value 25000
  inv analyze -f deposits.jsonl -value 25000 -asof 2024 -monthly -json

`
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	_, s, err := calculator(cfg).Analyze(ctx, raw)
	if printValidation(err) {
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing the investment: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(invest.NewReport(s, nil)); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.SnapshotMarkdown(&s))
	return subcommands.ExitSuccess
}
