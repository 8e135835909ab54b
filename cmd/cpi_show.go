package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invest/renderer"
	"github.com/google/subcommands"
)

// cpiShowCmd implements the "cpi show" command.
type cpiShowCmd struct {
	rangeFlags
}

func (*cpiShowCmd) Name() string     { return "show" }
func (*cpiShowCmd) Synopsis() string { return "show the CPI index used in calculations" }
func (*cpiShowCmd) Usage() string {
	return `cpi show [-from <period>] [-to <period>] [-json]

Shows the CPI index calculations use: the configured source, or the built-in
table when the source fails.
`
}

func (c *cpiShowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	r, err := c.monthRange()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	x, warnings := cfg.LoadIndex(ctx, r)
	if c.json {
		if err := printJSON(indexJSON{Name: x.Name(), Entries: x.Entries(), Warnings: warnings}); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.IndexMarkdown(x, warnings))
	return subcommands.ExitSuccess
}
