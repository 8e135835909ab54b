// Package config loads the inv settings from the environment, or from a .env
// file in the working directory.
package config

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/invest"
	"github.com/etnz/invest/cbs"
	"github.com/etnz/invest/insee"
	"github.com/joho/godotenv"
)

// CPI source names.
const (
	SourceStatic = "static"
	SourceCBS    = "cbs"
	SourceINSEE  = "insee"
)

var sources = []string{SourceStatic, SourceCBS, SourceINSEE}

type Config struct {
	// HTTP Server
	Port        string
	CORSOrigins []string
	CacheTTL    time.Duration

	// CPI
	CPISource   string
	CPITimeout  time.Duration
	CBSURL      string
	CBSIndexID  string
	INSEEIDBank string

	// Calculation defaults
	Currency  string
	TaxPolicy string

	// Assistant
	GeminiModel string
}

// Load reads the .env file if there is one, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", err)
	}
	return &Config{
		Port:        getEnv("INV_PORT", "8080"),
		CORSOrigins: getEnvList("INV_CORS_ORIGINS", []string{"*"}),
		CacheTTL:    getEnvDuration("INV_CACHE_TTL", 24*time.Hour),

		CPISource:   strings.ToLower(getEnv("INV_CPI_SOURCE", SourceStatic)),
		CPITimeout:  getEnvDuration("INV_CPI_TIMEOUT", invest.DefaultFetchTimeout),
		CBSURL:      getEnv("INV_CBS_URL", cbs.DefaultBaseURL),
		CBSIndexID:  getEnv("INV_CBS_INDEX_ID", cbs.DefaultIndexID),
		INSEEIDBank: getEnv("INV_INSEE_IDBANK", insee.DefaultIDBank),

		Currency:  strings.ToUpper(getEnv("INV_CURRENCY", invest.DefaultCurrency)),
		TaxPolicy: getEnv("INV_TAX_POLICY", "whole"),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(sources, c.CPISource) {
		errors = append(errors, fmt.Sprintf("invalid CPI source '%s': must be one of %v", c.CPISource, sources))
	}
	if c.CPITimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid CPI timeout %v: must be positive", c.CPITimeout))
	}
	if c.CPISource == SourceCBS {
		if u, err := url.Parse(c.CBSURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid CBS URL '%s': must be an http(s) URL", c.CBSURL))
		}
		if c.CBSIndexID == "" {
			errors = append(errors, "CBS index ID cannot be empty when using the cbs source")
		}
	}
	if c.CPISource == SourceINSEE && c.INSEEIDBank == "" {
		errors = append(errors, "INSEE idBank cannot be empty when using the insee source")
	}

	if money.GetCurrency(strings.ToUpper(c.Currency)) == nil {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}
	if _, err := invest.ParseBracketMode(c.TaxPolicy); err != nil {
		errors = append(errors, fmt.Sprintf("invalid tax policy '%s': must be 'whole' or 'marginal'", c.TaxPolicy))
	}
	if c.CacheTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 minute", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Source returns the configured remote CPI source, or nil for the static
// table.
func (c *Config) Source() invest.Source {
	switch c.CPISource {
	case SourceCBS:
		return cbs.New(c.CBSURL, c.CBSIndexID, invest.NewDailyClient())
	case SourceINSEE:
		return &insee.Source{IDBank: c.INSEEIDBank, Client: invest.NewDailyClient()}
	default:
		return nil
	}
}

// LoadIndex loads the CPI index covering r from the configured source.
func (c *Config) LoadIndex(ctx context.Context, r invest.MonthRange) (*invest.Index, invest.Warnings) {
	return invest.LoadIndex(ctx, c.Source(), r, c.CPITimeout)
}

// Options returns the calculation defaults.
func (c *Config) Options() invest.Options {
	o := invest.DefaultOptions()
	if mode, err := invest.ParseBracketMode(c.TaxPolicy); err == nil {
		o.TaxPolicy.Mode = mode
	}
	return o
}

// Calculator returns a calculator loading its index from the configured
// source, with the configured defaults.
func (c *Config) Calculator() *invest.Calculator {
	return &invest.Calculator{
		Load:       c.LoadIndex,
		Currency:   c.Currency,
		TaxBracket: c.TaxPolicy,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
