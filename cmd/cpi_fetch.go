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

// cpiFetchCmd implements the "cpi fetch" command.
type cpiFetchCmd struct {
	rangeFlags
}

func (*cpiFetchCmd) Name() string     { return "fetch" }
func (*cpiFetchCmd) Synopsis() string { return "fetch CPI values from the configured source" }
func (*cpiFetchCmd) Usage() string {
	return `cpi fetch [-from <period>] [-to <period>] [-json]

Fetches CPI values from the configured remote source (cbs or insee), and
fails if the source does. Use it to check a source.
`
}

func (c *cpiFetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	src := cfg.Source()
	if src == nil {
		fmt.Fprintf(os.Stderr, "Error: no remote CPI source configured, use -cpi-source or INV_CPI_SOURCE\n")
		return subcommands.ExitUsageError
	}
	r, err := c.monthRange()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.CPITimeout)
	defer cancel()
	fmt.Fprintf(os.Stderr, "Fetching %s for %s...\n", src.Name(), r)
	entries, err := src.Fetch(ctx, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch from %s: %v\n", src.Name(), err)
		return subcommands.ExitFailure
	}
	x, err := invest.NewIndex(src.Name(), entries...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid values from %s: %v\n", src.Name(), err)
		return subcommands.ExitFailure
	}

	if c.json {
		if err := printJSON(indexJSON{Name: x.Name(), Entries: x.Entries()}); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.IndexMarkdown(x, nil))
	return subcommands.ExitSuccess
}
