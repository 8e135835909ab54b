package invest

import (
	"testing"

	"github.com/shopspring/decimal"
)

// ILS is a helper for test to create shekel money from const
func ILS(v float64) Money { return M(v, "ILS") }

// NO is a helper for test to create money from const wit no currency set
func NO(v float64) Money { return M(v, "") }

// dec parses a decimal constant, for test tables.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mustIndex creates an index or fails the test.
func mustIndex(t *testing.T, entries ...IndexEntry) *Index {
	t.Helper()
	x, err := NewIndex("test", entries...)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	return x
}

// entry is a shorthand for an IndexEntry.
func entry(p Period, v string) IndexEntry { return IndexEntry{Period: p, Value: dec(v)} }

// assertMoney fails if got is not want, within a cent.
func assertMoney(t *testing.T, name string, got Money, want string) {
	t.Helper()
	if !got.Decimal().Sub(dec(want)).Abs().LessThan(dec("0.01")) {
		t.Errorf("%s = %s, want %s", name, got.Decimal(), want)
	}
}
