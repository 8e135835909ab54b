package invest

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSource is a Source serving canned entries, an error, or blocking until
// its context is done.
type fakeSource struct {
	entries []IndexEntry
	err     error
	block   bool
	got     MonthRange
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Fetch(ctx context.Context, r MonthRange) ([]IndexEntry, error) {
	f.got = r
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.entries, f.err
}

func TestLoadIndex(t *testing.T) {
	r := NewMonthRange(Y(2015), YM(2024, 10))
	tests := []struct {
		name        string
		src         Source
		wantName    string
		wantWarning bool
	}{
		{"no source", nil, StaticIndexName, false},
		{"fetched", &fakeSource{entries: []IndexEntry{entry(YM(2015, 1), "100"), entry(YM(2024, 10), "120")}}, "fake", false},
		{"failed", &fakeSource{err: errors.New("connection refused")}, StaticIndexName, true},
		{"nothing published", &fakeSource{}, StaticIndexName, true},
		{"invalid value", &fakeSource{entries: []IndexEntry{entry(YM(2015, 1), "-1")}}, StaticIndexName, true},
		{"timeout", &fakeSource{block: true}, StaticIndexName, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, warnings := LoadIndex(context.Background(), tt.src, r, 20*time.Millisecond)
			if x.Name() != tt.wantName {
				t.Errorf("LoadIndex() index = %q, want %q", x.Name(), tt.wantName)
			}
			if got := warnings.Has(WarnCPIFetchFailed); got != tt.wantWarning {
				t.Errorf("LoadIndex() warnings = %v, want %s: %v", warnings, WarnCPIFetchFailed, tt.wantWarning)
			}
			if f, ok := tt.src.(*fakeSource); ok && f.got != r {
				t.Errorf("Fetch() range = %v, want %v", f.got, r)
			}
		})
	}
}

func TestRangeFor(t *testing.T) {
	deposits := []Deposit{mustDeposit(t, "2018-06=1"), mustDeposit(t, "2015-03=1")}
	got := RangeFor(deposits, YM(2024, 10))
	if got.From != YM(2015, 3) || got.To != YM(2024, 10) {
		t.Errorf("RangeFor() = %v, want 2015-03..2024-10", got)
	}
	if got := RangeFor(nil, Y(2024)); got.From != YM(2024, 1) || got.To != YM(2024, 12) {
		t.Errorf("RangeFor(nil) = %v, want 2024-01..2024-12", got)
	}
}
