package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/invest/server"
	"github.com/google/subcommands"
	"golang.org/x/time/rate"
)

// serveCmd serves the calculations over HTTP.
type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the calculations as a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `inv serve [-port <port>]

  Serves the JSON API used by the web form:

    POST /api/snapshot   analyze the current investment
    POST /api/compare    analyze and compare with a new investment
    POST /api/project    project a single amount
    GET  /api/cpi        CPI index for ?from=&to=
    GET  /healthz

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", "", "Port to listen on. Overrides INV_PORT.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.port != "" {
		cfg.Port = c.port
	}

	srv := server.New(server.Options{
		Calculator:  calculator(cfg),
		CORSOrigins: cfg.CORSOrigins,
		CacheTTL:    cfg.CacheTTL,
		Limiter:     rate.NewLimiter(rate.Every(100*time.Millisecond), 30),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(os.Stderr, "Serving on :%s with the %s CPI source\n", cfg.Port, cfg.CPISource)
	if err := srv.ListenAndServe(ctx, ":"+cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
