package invest

import (
	"slices"
	"testing"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "2015", want: Y(2015)},
		{in: "2015-03", want: YM(2015, 3)},
		{in: "2015-3", want: YM(2015, 3)},
		{in: "2015-00", wantErr: true},
		{in: "2015-13", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPeriod_Compare(t *testing.T) {
	sorted := []Period{YM(2015, 12), Y(2016), YM(2014, 1), YM(2016, 1), Y(2014)}
	slices.SortFunc(sorted, Period.Compare)
	want := []Period{Y(2014), YM(2014, 1), YM(2015, 12), Y(2016), YM(2016, 1)}
	if !slices.Equal(sorted, want) {
		t.Errorf("sorted = %v, want %v", sorted, want)
	}
}

func TestPeriod_AddMonths(t *testing.T) {
	tests := []struct {
		p    Period
		n    int
		want Period
	}{
		{YM(2015, 11), 1, YM(2015, 12)},
		{YM(2015, 12), 1, YM(2016, 1)},
		{YM(2016, 1), -1, YM(2015, 12)},
		{Y(2015), 14, YM(2016, 3)},
	}
	for _, tt := range tests {
		if got := tt.p.AddMonths(tt.n); got != tt.want {
			t.Errorf("%v.AddMonths(%d) = %v, want %v", tt.p, tt.n, got, tt.want)
		}
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to Period
		wantLen  int
		first    Period
		last     Period
	}{
		{"whole years", Y(2015), Y(2016), 24, YM(2015, 1), YM(2016, 12)},
		{"months", YM(2015, 3), YM(2015, 12), 10, YM(2015, 3), YM(2015, 12)},
		{"swapped", YM(2016, 2), YM(2015, 11), 4, YM(2015, 11), YM(2016, 2)},
		{"single month", YM(2020, 5), YM(2020, 5), 1, YM(2020, 5), YM(2020, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMonthRange(tt.from, tt.to)
			if r.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", r.Len(), tt.wantLen)
			}
			months := slices.Collect(r.Months())
			if len(months) != tt.wantLen {
				t.Fatalf("Months() = %d months, want %d", len(months), tt.wantLen)
			}
			if months[0] != tt.first || months[len(months)-1] != tt.last {
				t.Errorf("Months() = %v..%v, want %v..%v", months[0], months[len(months)-1], tt.first, tt.last)
			}
			if !r.Contains(tt.last) || r.Contains(tt.last.AddMonths(1)) {
				t.Errorf("Contains() is wrong at the range end %v", tt.last)
			}
		})
	}
}
