package invest

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// Period identifies a CPI period: a whole year, or a month within a year.
type Period struct {
	Year  int
	Month time.Month // 0 for the whole year
}

// Y returns the whole-year period.
func Y(year int) Period { return Period{Year: year} }

// YM returns the monthly period.
func YM(year int, month time.Month) Period { return Period{Year: year, Month: month} }

// IsAnnual reports whether p designates a whole year.
func (p Period) IsAnnual() bool { return p.Month == 0 }

// Annual returns the whole year containing p.
func (p Period) Annual() Period { return Period{Year: p.Year} }

// Compare returns -1, 0 or +1. A whole year sorts before all of its months.
func (p Period) Compare(q Period) int {
	switch {
	case p.Year < q.Year:
		return -1
	case p.Year > q.Year:
		return 1
	case p.Month < q.Month:
		return -1
	case p.Month > q.Month:
		return 1
	}
	return 0
}

func (p Period) Before(q Period) bool { return p.Compare(q) < 0 }
func (p Period) After(q Period) bool  { return p.Compare(q) > 0 }

// index returns the absolute month number, whole years count as January.
func (p Period) index() int {
	m := int(p.Month)
	if m == 0 {
		m = 1
	}
	return p.Year*12 + m - 1
}

// AddMonths returns the monthly period n months after p.
func (p Period) AddMonths(n int) Period {
	i := p.index() + n
	return Period{Year: i / 12, Month: time.Month(i%12 + 1)}
}

// PeriodOf returns the monthly period of t.
func PeriodOf(t time.Time) Period { return YM(t.Year(), t.Month()) }

// String formats the period as "2015" or "2015-03".
func (p Period) String() string {
	if p.IsAnnual() {
		return strconv.Itoa(p.Year)
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// ParsePeriod parses "2015", "2015-3" or "2015-03".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	ys, ms, monthly := strings.Cut(s, "-")
	year, err := strconv.Atoi(ys)
	if err != nil || year < 1 {
		return Period{}, fmt.Errorf("invalid year in period %q", s)
	}
	if !monthly {
		return Y(year), nil
	}
	month, err := strconv.Atoi(ms)
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid month in period %q", s)
	}
	return YM(year, time.Month(month)), nil
}

func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MonthRange represents a range of months, boundaries included.
type MonthRange struct {
	From Period `json:"from"`
	To   Period `json:"to"`
}

// NewMonthRange creates a new month range. If 'from' is after 'to', they are swapped.
// Whole years are widened to their first and last month.
func NewMonthRange(from, to Period) MonthRange {
	if from.IsAnnual() {
		from.Month = time.January
	}
	if to.IsAnnual() {
		to.Month = time.December
	}
	if from.After(to) {
		from, to = to, from
	}
	return MonthRange{From: from, To: to}
}

// Contains return true if the month is included in the range.
func (r MonthRange) Contains(p Period) bool { return !p.Before(r.From) && !p.After(r.To) }

// Len returns the number of months in the range.
func (r MonthRange) Len() int { return r.To.index() - r.From.index() + 1 }

// Months returns an iterator that yields each month within the range, inclusive.
func (r MonthRange) Months() iter.Seq[Period] {
	return func(yield func(Period) bool) {
		for p := r.From; !p.After(r.To); p = p.AddMonths(1) {
			if !yield(p) {
				return
			}
		}
	}
}

func (r MonthRange) String() string { return r.From.String() + ".." + r.To.String() }
