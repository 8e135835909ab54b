package invest

import (
	"context"
	"fmt"
	"time"
)

// Source is a remote provider of CPI values.
type Source interface {
	// Name identifies the source in reports and warnings.
	Name() string
	// Fetch returns the index values published for the months in r.
	Fetch(ctx context.Context, r MonthRange) ([]IndexEntry, error)
}

// DefaultFetchTimeout bounds a remote CPI fetch.
const DefaultFetchTimeout = 10 * time.Second

// LoadIndex fetches the index from src with a single request bounded by
// timeout. On failure, or if src returns nothing, it returns StaticIndex and
// a WarnCPIFetchFailed warning. A nil src returns StaticIndex without
// warnings.
func LoadIndex(ctx context.Context, src Source, r MonthRange, timeout time.Duration) (*Index, Warnings) {
	var warnings Warnings
	if src == nil {
		return StaticIndex(), nil
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	x, err := fetchIndex(ctx, src, r)
	if err != nil {
		warnings.Add(WarnCPIFetchFailed, "%v, using the %s index instead", err, StaticIndexName)
		return StaticIndex(), warnings
	}
	return x, nil
}

func fetchIndex(ctx context.Context, src Source, r MonthRange) (*Index, error) {
	entries, err := src.Fetch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExternalFetch, src.Name(), err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s returned no CPI value for %s", ErrExternalFetch, src.Name(), r)
	}
	x, err := NewIndex(src.Name(), entries...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExternalFetch, src.Name(), err)
	}
	return x, nil
}

// RangeFor returns the month range a calculation needs CPI values for: from
// the earliest deposit up to asOf.
func RangeFor(deposits []Deposit, asOf Period) MonthRange {
	first, ok := EarliestPeriod(deposits)
	if !ok || first.After(asOf) {
		first = asOf
	}
	return NewMonthRange(first, asOf)
}
