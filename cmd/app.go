package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/invest"
	"github.com/etnz/invest/config"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	cpiSource = flag.String("cpi-source", "", "CPI source: static, cbs or insee. Overrides INV_CPI_SOURCE.")
	currency  = flag.String("currency", "", "Currency of the amounts, as an ISO 4217 code. Overrides INV_CURRENCY.")
	taxPolicy = flag.String("tax-policy", "", "Escalated tax bracket mode: whole or marginal. Overrides INV_TAX_POLICY.")
	Verbose   = flag.Bool("v", false, "Print diagnostic logs.")
)

// EnvTestingNow fixes the current time, as "2006-01-02 15:04:05", to get
// reproducible outputs.
const EnvTestingNow = "INV_TESTING_NOW"

// loadConfig loads the configuration, overridden by the global flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if *cpiSource != "" {
		cfg.CPISource = *cpiSource
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *taxPolicy != "" {
		cfg.TaxPolicy = *taxPolicy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// calculator returns the calculator of the configuration.
func calculator(cfg *config.Config) *invest.Calculator {
	c := cfg.Calculator()
	c.Now = now
	return c
}

// now returns the current time, or the time set in EnvTestingNow.
func now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		t, err := time.Parse(time.DateTime, v)
		if err == nil {
			return t
		}
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid %s %q: %v\n", EnvTestingNow, v, err)
	}
	return time.Now()
}
