// Package insee fetches consumer price indices published by INSEE, the
// French statistics institute, as zipped CSV series.
package insee

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/invest"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the INSEE macro-economic database.
	DefaultBaseURL = "https://bdm.insee.fr"
	// DefaultIDBank is the monthly consumer price index, all households,
	// France, base 2015.
	DefaultIDBank = "001763825"
)

// Source is an invest.Source for one INSEE series.
type Source struct {
	IDBank  string
	BaseURL string       // DefaultBaseURL if empty
	Client  *http.Client // http.DefaultClient if nil
}

func (s *Source) Name() string { return "insee-" + s.IDBank }

// Fetch downloads the series over r. Quarterly series are reported on the
// last month of each quarter.
func (s *Source) Fetch(ctx context.Context, r invest.MonthRange) ([]invest.IndexEntry, error) {
	series, err := s.getSeries(ctx, r)
	if err != nil {
		return nil, err
	}
	entries := make([]invest.IndexEntry, 0, len(series.Values))
	for p, v := range series.Values {
		if r.Contains(p) {
			entries = append(entries, invest.IndexEntry{Period: p, Value: v})
		}
	}
	return entries, nil
}

// getSeries constructs the URL, downloads, and parses an INSEE time series.
func (s *Source) getSeries(ctx context.Context, r invest.MonthRange) (*Series, error) {
	base, client := s.BaseURL, s.Client
	if base == "" {
		base = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	startQuarter := (int(r.From.Month)-1)/3 + 1
	endQuarter := (int(r.To.Month)-1)/3 + 1

	url := fmt.Sprintf("%s/series/%s/csv?lang=fr&ordre=antechronologique&transposition=donneescolonne&periodeDebut=%d&anneeDebut=%d&periodeFin=%d&anneeFin=%d&revision=sansrevisions",
		base,
		s.IDBank,
		startQuarter,
		r.From.Year,
		endQuarter,
		r.To.Year,
	)
	log.Println("Downloading from INSEE:", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: %w", s.IDBank, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: received status %s", s.IDBank, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from INSEE response: %w", err)
	}

	var foundFiles []string
	for _, f := range zipReader.File {
		filename := f.Name
		foundFiles = append(foundFiles, filename)
		if filename == "valeurs_trimestrielles.csv" || filename == "valeurs_mensuelles.csv" {
			csvFile, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open '%s' from zip archive: %w", filename, err)
			}
			defer csvFile.Close()
			return parseSeries(csvFile)
		}
	}

	return nil, fmt.Errorf("could not find a values file (mensuelles or trimestrielles) in downloaded zip file for ID %s (found: %s)", s.IDBank, strings.Join(foundFiles, ", "))
}

// Series holds the data from an INSEE time series CSV file.
type Series struct {
	Libelle    string
	IDBank     string
	LastUpdate time.Time
	Values     map[invest.Period]decimal.Decimal
}

// parseInseePeriod parses a string like "2025-T2" or "2025-08" into the
// month it is reported on.
func parseInseePeriod(s string) (invest.Period, error) {
	if strings.Contains(s, "-T") {
		return parseQuarter(s)
	}
	p, err := invest.ParsePeriod(s)
	if err != nil || p.IsAnnual() {
		return invest.Period{}, fmt.Errorf("unrecognized insee period format: %q", s)
	}
	return p, nil
}

// parseQuarter parses a string like "2025-T2" into the last month of that
// quarter.
func parseQuarter(s string) (invest.Period, error) {
	parts := strings.Split(s, "-T")
	if len(parts) != 2 {
		return invest.Period{}, fmt.Errorf("invalid quarterly period format: %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return invest.Period{}, fmt.Errorf("invalid year in quarterly period %q: %w", s, err)
	}

	quarter, err := strconv.Atoi(parts[1])
	if err != nil || quarter < 1 || quarter > 4 {
		return invest.Period{}, fmt.Errorf("invalid quarter in quarterly period %q", s)
	}
	return invest.YM(year, time.Month(quarter*3)), nil
}

// parseSeries reads the INSEE CSV format from an io.Reader.
func parseSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 4 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}

	series := &Series{
		Libelle: records[0][1],
		IDBank:  records[1][1],
		Values:  make(map[invest.Period]decimal.Decimal),
	}

	series.LastUpdate, err = time.Parse("02/01/2006 15:04", records[2][1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last update date %q: %w", records[2][1], err)
	}

	for i := 4; i < len(records); i++ {
		if len(records[i]) > 1 && records[i][1] != "" {
			p, err := parseInseePeriod(records[i][0])
			if err != nil {
				return nil, err
			}
			val, err := decimal.NewFromString(records[i][1])
			if err != nil {
				return nil, fmt.Errorf("failed to parse value %q for period %q: %w", records[i][1], records[i][0], err)
			}
			series.Values[p] = val
		}
	}
	return series, nil
}
