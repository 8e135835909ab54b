// Package cbs fetches the Israeli consumer price index from the Central
// Bureau of Statistics price API.
//
// The API is paginated: the first page tells how many pages there are, the
// others are fetched concurrently, within the client's rate limit.
package cbs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/invest"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

/*
	{
	    "month": [{
	        "code": 120010,
	        "name": "מדד המחירים לצרכן - כללי",
	        "date": [
	            {
	                "year": 2024,
	                "month": 12,
	                "percent": -0.2,
	                "currBase": { "baseDesc": "ממוצע 2022", "value": 105.3 }
	            }
	        ]
	    }],
	    "paging": { "total_items": 120, "page_size": 100, "current_page": 1, "last_page": 2 }
	}
*/

const (
	// DefaultBaseURL is the CBS public API.
	DefaultBaseURL = "https://api.cbs.gov.il"
	// DefaultIndexID is the general consumer price index.
	DefaultIndexID = "120010"

	pageSize = 100
	entries  = "$.month[*].date[*]"
	lastPage = "$.paging.last_page"

	// maxConcurrentPages bounds the pages fetched at once.
	maxConcurrentPages = 4
)

// Client is an invest.Source for one CBS price index.
type Client struct {
	BaseURL    string
	IndexID    string
	HTTPClient *http.Client
	// Limiter throttles page requests, nil means unlimited.
	Limiter *rate.Limiter
}

// New returns a client limited to 10 requests per second, with bursts of 3.
func New(baseURL, indexID string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if indexID == "" {
		indexID = DefaultIndexID
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		BaseURL:    baseURL,
		IndexID:    indexID,
		HTTPClient: client,
		Limiter:    rate.NewLimiter(rate.Every(100*time.Millisecond), 3),
	}
}

func (c *Client) Name() string { return "cbs-" + c.IndexID }

// Fetch returns the monthly index values over r.
func (c *Client) Fetch(ctx context.Context, r invest.MonthRange) ([]invest.IndexEntry, error) {
	first, last, err := c.page(ctx, r, 1)
	if err != nil {
		return nil, err
	}
	// a page holds at least one month.
	if limit := max(r.Len(), 1); last > limit {
		return nil, fmt.Errorf("%d pages announced for %d months", last, r.Len())
	}
	pages := make([][]invest.IndexEntry, max(last, 1))
	pages[0] = first

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for n := 2; n <= last; n++ {
		g.Go(func() error {
			values, _, err := c.page(ctx, r, n)
			if err != nil {
				return fmt.Errorf("page %d/%d: %w", n, last, err)
			}
			pages[n-1] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []invest.IndexEntry
	for _, p := range pages {
		all = append(all, p...)
	}
	return all, nil
}

// page fetches one page, and returns its entries and the number of pages.
func (c *Client) page(ctx context.Context, r invest.MonthRange, n int) ([]invest.IndexEntry, int, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	var doc any
	if err := invest.GetJSON(ctx, client, c.url(r, n), &doc); err != nil {
		return nil, 0, err
	}
	return parse(doc)
}

func (c *Client) url(r invest.MonthRange, n int) string {
	q := url.Values{}
	q.Set("id", c.IndexID)
	q.Set("format", "json")
	q.Set("download", "false")
	q.Set("startPeriod", fmt.Sprintf("%02d-%04d", int(r.From.Month), r.From.Year))
	q.Set("endPeriod", fmt.Sprintf("%02d-%04d", int(r.To.Month), r.To.Year))
	q.Set("page", strconv.Itoa(n))
	q.Set("pagesize", strconv.Itoa(pageSize))
	return c.BaseURL + "/index/data/price?" + q.Encode()
}

// parse extracts the index values and the page count from a decoded page.
func parse(doc any) ([]invest.IndexEntry, int, error) {
	jval, err := jsonpath.Get(entries, doc)
	if err != nil {
		return nil, 0, fmt.Errorf("error parsing %q: %w", entries, err)
	}
	var values []invest.IndexEntry
	for _, item := range flatten(jval) {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, 0, fmt.Errorf("error parsing %q: not an object %v", entries, item)
		}
		e, err := parseEntry(obj)
		if err != nil {
			return nil, 0, err
		}
		values = append(values, e)
	}

	last := 1
	// a single page response may come without paging.
	if jval, err := jsonpath.Get(lastPage, doc); err == nil {
		if f, ok := jval.(float64); ok && f >= 1 {
			last = int(f)
		}
	}
	return values, last, nil
}

func parseEntry(obj map[string]any) (invest.IndexEntry, error) {
	year, ok1 := obj["year"].(float64)
	month, ok2 := obj["month"].(float64)
	base, _ := obj["currBase"].(map[string]any)
	value, ok3 := base["value"].(float64)
	if !ok1 || !ok2 || !ok3 {
		return invest.IndexEntry{}, fmt.Errorf("error parsing CBS entry: want year, month and currBase.value, got %v", obj)
	}
	if month < 1 || month > 12 {
		return invest.IndexEntry{}, fmt.Errorf("error parsing CBS entry: invalid month %v", month)
	}
	return invest.IndexEntry{
		Period: invest.YM(int(year), time.Month(month)),
		Value:  decimal.NewFromFloat(value),
	}, nil
}

// flatten unnests the lists jsonpath returns for nested wildcards.
func flatten(v any) []any {
	list, ok := v.([]any)
	if !ok {
		return []any{v}
	}
	var flat []any
	for _, item := range list {
		if _, nested := item.([]any); nested {
			flat = append(flat, flatten(item)...)
			continue
		}
		flat = append(flat, item)
	}
	return flat
}
