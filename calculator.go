package invest

import (
	"context"
	"strings"
	"time"
)

// IndexLoader returns the CPI index covering a month range, with the
// warnings raised while loading it.
type IndexLoader func(ctx context.Context, r MonthRange) (*Index, Warnings)

// Calculator runs calculations from form input, loading the CPI index each
// calculation needs.
type Calculator struct {
	// Load loads the index. A nil Load uses StaticIndex.
	Load IndexLoader
	// Currency and TaxBracket are used when the input leaves them empty.
	Currency   string
	TaxBracket string
	// Now returns the current time. A nil Now uses time.Now.
	Now func() time.Time
}

func (c *Calculator) now() Period {
	if c.Now == nil {
		return PeriodOf(time.Now())
	}
	return PeriodOf(c.Now())
}

func (c *Calculator) defaults(raw RawInput) RawInput {
	if strings.TrimSpace(raw.Currency) == "" {
		raw.Currency = c.Currency
	}
	if strings.TrimSpace(raw.TaxBracket) == "" {
		raw.TaxBracket = c.TaxBracket
	}
	return raw
}

// Index loads the index covering r.
func (c *Calculator) Index(ctx context.Context, r MonthRange) (*Index, Warnings) {
	if c.Load == nil {
		return StaticIndex(), nil
	}
	return c.Load(ctx, r)
}

// Analyze parses the current investment fields of raw and computes its
// snapshot. The warnings raised while loading the index come first in the
// snapshot's warnings.
func (c *Calculator) Analyze(ctx context.Context, raw RawInput) (CalculationInput, InvestmentSnapshot, error) {
	in, err := ParseCurrentInput(c.defaults(raw), c.now())
	if err != nil {
		return CalculationInput{}, InvestmentSnapshot{}, err
	}
	s, err := c.analyze(ctx, in)
	return in, s, err
}

func (c *Calculator) analyze(ctx context.Context, in CalculationInput) (InvestmentSnapshot, error) {
	index, warnings := c.Index(ctx, RangeFor(in.Deposits, in.AsOf))
	s, err := Analyze(in, index)
	if err != nil {
		return InvestmentSnapshot{}, err
	}
	s.Warnings = append(warnings, s.Warnings...)
	return s, nil
}

// Compare parses all the fields of raw, computes the snapshot of the current
// investment and compares it with the new one.
func (c *Calculator) Compare(ctx context.Context, raw RawInput) (InvestmentSnapshot, ComparisonResult, error) {
	in, err := ParseInput(c.defaults(raw), c.now())
	if err != nil {
		return InvestmentSnapshot{}, ComparisonResult{}, err
	}
	s, err := c.analyze(ctx, in)
	if err != nil {
		return InvestmentSnapshot{}, ComparisonResult{}, err
	}
	r, err := Compare(in, s)
	if err != nil {
		return InvestmentSnapshot{}, ComparisonResult{}, err
	}
	return s, r, nil
}

// Report gathers the outcome of a calculation, the way clients receive it.
type Report struct {
	Snapshot   InvestmentSnapshot `json:"snapshot"`
	Comparison *ComparisonResult  `json:"comparison,omitempty"`
	Chart      []ChartRow         `json:"chart,omitempty"`
}

// NewReport returns the report of a snapshot and, if not nil, its comparison.
func NewReport(s InvestmentSnapshot, r *ComparisonResult) Report {
	rep := Report{Snapshot: s, Comparison: r}
	if r != nil {
		rep.Chart = r.Chart()
	}
	return rep
}
