package invest

import (
	"errors"
	"testing"
)

func TestIndex_Lookup(t *testing.T) {
	x := mustIndex(t,
		entry(Y(2020), "100"),
		entry(YM(2021, 1), "101"),
		entry(YM(2021, 2), "102"),
	)
	tests := []struct {
		name         string
		p            Period
		wantResolved Period
		wantValue    string
		wantFallback bool
	}{
		{"exact year", Y(2020), Y(2020), "100", false},
		{"exact month", YM(2021, 2), YM(2021, 2), "102", false},
		{"month from its year", YM(2020, 5), Y(2020), "100", false},
		{"year from its months", Y(2021), Y(2021), "101.5", false},
		{"month forward filled", YM(2021, 5), YM(2021, 2), "102", true},
		{"year forward filled", Y(2023), Y(2021), "101.5", true},
		{"month older than the index", YM(2019, 6), YM(2021, 2), "102", true},
		{"year older than the index", Y(2019), Y(2021), "101.5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.Lookup(tt.p)
			if err != nil {
				t.Fatalf("Lookup(%s) error = %v", tt.p, err)
			}
			if got.Requested != tt.p {
				t.Errorf("Requested = %s, want %s", got.Requested, tt.p)
			}
			if got.Resolved != tt.wantResolved {
				t.Errorf("Resolved = %s, want %s", got.Resolved, tt.wantResolved)
			}
			if !got.Value.Equal(dec(tt.wantValue)) {
				t.Errorf("Value = %s, want %s", got.Value, tt.wantValue)
			}
			if got.Fallback != tt.wantFallback {
				t.Errorf("Fallback = %v, want %v", got.Fallback, tt.wantFallback)
			}
		})
	}
}

func TestIndex_Empty(t *testing.T) {
	var nilIndex *Index
	empty := mustIndex(t)
	for _, x := range []*Index{nilIndex, empty} {
		if _, err := x.Lookup(Y(2020)); !errors.Is(err, ErrMissingReferenceData) {
			t.Errorf("Lookup() error = %v, want ErrMissingReferenceData", err)
		}
		if _, err := x.Latest(false); !errors.Is(err, ErrMissingReferenceData) {
			t.Errorf("Latest() error = %v, want ErrMissingReferenceData", err)
		}
	}
}

func TestIndex_Latest(t *testing.T) {
	x := mustIndex(t,
		entry(YM(2024, 11), "110"),
		entry(YM(2024, 12), "112"),
		entry(Y(2023), "105"),
	)
	got, err := x.Latest(true)
	if err != nil {
		t.Fatalf("Latest(true) error = %v", err)
	}
	if got.Period != YM(2024, 12) || !got.Value.Equal(dec("112")) {
		t.Errorf("Latest(true) = %v, want 2024-12 112", got)
	}
	got, err = x.Latest(false)
	if err != nil {
		t.Fatalf("Latest(false) error = %v", err)
	}
	if got.Period != Y(2024) || !got.Value.Equal(dec("111")) {
		t.Errorf("Latest(false) = %v, want 2024 111", got)
	}
}

func TestNewIndex(t *testing.T) {
	if _, err := NewIndex("bad", entry(Y(2020), "0")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("NewIndex() with a zero value error = %v, want ErrInvalidInput", err)
	}
	x := mustIndex(t, entry(Y(2021), "2"), entry(Y(2020), "1"), entry(Y(2021), "3"))
	entries := x.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries() = %v, want 2 entries", entries)
	}
	if entries[0].Period != Y(2020) || !entries[1].Value.Equal(dec("3")) {
		t.Errorf("Entries() = %v, want sorted with the last duplicate", entries)
	}
	if x.HasMonthly() {
		t.Error("HasMonthly() = true on a yearly index")
	}
}

func TestStaticIndex(t *testing.T) {
	x := StaticIndex()
	if x.Name() != StaticIndexName {
		t.Errorf("Name() = %q, want %q", x.Name(), StaticIndexName)
	}
	for _, tt := range []struct {
		year int
		want string
	}{{2015, "100"}, {2020, "101.3"}, {2024, "113.8"}} {
		got, err := x.Lookup(Y(tt.year))
		if err != nil {
			t.Fatalf("Lookup(%d) error = %v", tt.year, err)
		}
		if !got.Value.Equal(dec(tt.want)) {
			t.Errorf("Lookup(%d) = %s, want %s", tt.year, got.Value, tt.want)
		}
	}
}
