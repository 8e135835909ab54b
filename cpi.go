package invest

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// IndexEntry is one CPI value.
type IndexEntry struct {
	Period Period          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// Index is an immutable table of CPI values, keyed by year or by month.
type Index struct {
	name    string
	values  map[Period]decimal.Decimal
	periods []Period // sorted
}

// NewIndex creates an index from entries. Later duplicates override earlier
// ones. Values must be positive.
func NewIndex(name string, entries ...IndexEntry) (*Index, error) {
	x := &Index{name: name, values: make(map[Period]decimal.Decimal, len(entries))}
	for _, e := range entries {
		if !e.Value.IsPositive() {
			return nil, invalid("CPI value for %s must be positive, got %s", e.Period, e.Value)
		}
		if e.Period.Year < 1 || e.Period.Month < 0 || e.Period.Month > 12 {
			return nil, invalid("invalid CPI period %+v", e.Period)
		}
		if _, exists := x.values[e.Period]; !exists {
			x.periods = append(x.periods, e.Period)
		}
		x.values[e.Period] = e.Value
	}
	slices.SortFunc(x.periods, Period.Compare)
	return x, nil
}

// Name returns the index name, for reports.
func (x *Index) Name() string {
	if x == nil {
		return ""
	}
	return x.name
}

// Len returns the number of entries.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.periods)
}

// Entries returns all entries in chronological order.
func (x *Index) Entries() []IndexEntry {
	entries := make([]IndexEntry, 0, x.Len())
	for i := 0; i < x.Len(); i++ {
		p := x.periods[i]
		entries = append(entries, IndexEntry{Period: p, Value: x.values[p]})
	}
	return entries
}

// HasMonthly reports whether the index holds monthly values.
func (x *Index) HasMonthly() bool {
	for i := 0; i < x.Len(); i++ {
		if !x.periods[i].IsAnnual() {
			return true
		}
	}
	return false
}

// Resolution is the outcome of an index lookup.
type Resolution struct {
	Requested Period          `json:"requested"`
	Resolved  Period          `json:"resolved"`
	Value     decimal.Decimal `json:"value"`
	Fallback  bool            `json:"fallback,omitempty"` // true if the value was forward-filled
}

// Latest returns the latest index value. With monthly set, that is the value
// of the latest month (or year) present. Otherwise it is the value of the
// latest year, the average of its months if there is no yearly value.
func (x *Index) Latest(monthly bool) (IndexEntry, error) {
	if x.Len() == 0 {
		return IndexEntry{}, fmt.Errorf("%w: empty CPI index %q", ErrMissingReferenceData, x.Name())
	}
	last := x.periods[len(x.periods)-1]
	if monthly {
		return IndexEntry{Period: last, Value: x.values[last]}, nil
	}
	v, _ := x.annual(last.Year)
	return IndexEntry{Period: last.Annual(), Value: v}, nil
}

// annual returns the yearly value, or the average of the monthly values of that year.
func (x *Index) annual(year int) (decimal.Decimal, bool) {
	if v, ok := x.values[Y(year)]; ok {
		return v, true
	}
	var sum decimal.Decimal
	n := 0
	for m := 1; m <= 12; m++ {
		if v, ok := x.values[YM(year, time.Month(m))]; ok {
			sum = sum.Add(v)
			n++
		}
	}
	if n == 0 {
		return decimal.Decimal{}, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))), true
}

// Lookup returns the CPI value for a period.
//
// A month resolves to its own value, or to its year's value. A year resolves
// to its own value, or to the average of the months present for that year. When nothing matches,
// the value is forward-filled from the latest entry not after p, or from the
// latest entry if p is older than the whole index, and Fallback is set.
// Lookup fails with ErrMissingReferenceData only if the index is empty.
func (x *Index) Lookup(p Period) (Resolution, error) {
	res := Resolution{Requested: p}
	if x.Len() == 0 {
		return res, fmt.Errorf("%w: no CPI value for %s in empty index %q", ErrMissingReferenceData, p, x.Name())
	}
	if v, ok := x.values[p]; ok {
		res.Resolved, res.Value = p, v
		return res, nil
	}
	if p.IsAnnual() {
		if v, ok := x.annual(p.Year); ok {
			res.Resolved, res.Value = p, v
			return res, nil
		}
	} else if v, ok := x.values[p.Annual()]; ok {
		res.Resolved, res.Value = p.Annual(), v
		return res, nil
	}

	res.Fallback = true
	// periods are sorted, find the last one not after p.
	i, _ := slices.BinarySearchFunc(x.periods, p, Period.Compare)
	if i == 0 {
		latest, err := x.Latest(!p.IsAnnual())
		if err != nil {
			return res, err
		}
		res.Resolved, res.Value = latest.Period, latest.Value
		return res, nil
	}
	prev := x.periods[i-1]
	if p.IsAnnual() {
		// a yearly request stays at yearly resolution.
		res.Resolved = prev.Annual()
		res.Value, _ = x.annual(prev.Year)
		return res, nil
	}
	res.Resolved, res.Value = prev, x.values[prev]
	return res, nil
}
