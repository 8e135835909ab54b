package invest

import (
	"strings"
	"testing"
	"time"
)

func TestParseDeposit(t *testing.T) {
	tests := []struct {
		in      string
		want    Deposit
		wantErr bool
	}{
		{in: "2015=10000", want: Deposit{Period: Y(2015), Amount: ILS(10000)}},
		{in: " 2015-03=1000.50 ", want: Deposit{Period: YM(2015, 3), Amount: ILS(1000.5)}},
		{in: "2015-03..12=12000", want: Deposit{Period: YM(2015, 3), EndMonth: time.December, Amount: ILS(12000)}},
		{in: "2015", wantErr: true},
		{in: "2015=", wantErr: true},
		{in: "2015=-5", wantErr: true},
		{in: "2015=0", wantErr: true},
		{in: "2015-13=100", wantErr: true},
		{in: "2015-06..03=100", wantErr: true},
		{in: "2015..06=100", wantErr: true},
		{in: "abcd=100", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeposit(tt.in, "ils")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDeposit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Period != tt.want.Period || got.EndMonth != tt.want.EndMonth || !got.Amount.Equal(tt.want.Amount) {
				t.Errorf("ParseDeposit() = %+v, want %+v", got, tt.want)
			}
			again, err := ParseDeposit(got.String(), "ILS")
			if err != nil || again.Period != got.Period || !again.Amount.Equal(got.Amount) {
				t.Errorf("ParseDeposit(%q) = %+v, %v, want the same deposit", got.String(), again, err)
			}
		})
	}
}

func TestDeposit_Split(t *testing.T) {
	d := mustDeposit(t, "2024-01..12=1000")
	parts := d.Split()
	if len(parts) != 12 {
		t.Fatalf("Split() = %d parts, want 12", len(parts))
	}
	var total Money
	for _, p := range parts {
		if p.IsRecurring() {
			t.Errorf("part %s is recurring", p)
		}
		total = total.Add(p.Amount)
	}
	if !total.Equal(d.Amount) {
		t.Errorf("parts add up to %s, want %s", total.Decimal(), d.Amount.Decimal())
	}
	if parts[11].Period != YM(2024, 12) {
		t.Errorf("last part Period = %s, want 2024-12", parts[11].Period)
	}

	single := mustDeposit(t, "2024-05=1000")
	if got := single.Split(); len(got) != 1 || got[0].Period != single.Period {
		t.Errorf("Split() of a single deposit = %v", got)
	}
}

func TestDecodeDeposits(t *testing.T) {
	in := `{"year":2015,"amount":"10000"}

{"year":2016,"month":3,"amount":1500.5}
{"year":2017,"month":1,"end_month":6,"amount":"6000"}
`
	got, err := DecodeDeposits(strings.NewReader(in), "ILS")
	if err != nil {
		t.Fatalf("DecodeDeposits() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("DecodeDeposits() = %d deposits, want 3", len(got))
	}
	if got[1].Period != YM(2016, 3) || !got[1].Amount.Equal(ILS(1500.5)) {
		t.Errorf("deposit 1 = %+v", got[1])
	}
	if !got[2].IsRecurring() || got[2].Months().Len() != 6 {
		t.Errorf("deposit 2 = %+v, want 6 months", got[2])
	}
	assertMoney(t, "TotalDeposited", TotalDeposited(got), "17500.5")
	if first, _ := EarliestPeriod(got); first != Y(2015) {
		t.Errorf("EarliestPeriod() = %s, want 2015", first)
	}
}

func TestDecodeDeposits_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not json", "{\"year\":2015,\"amount\":\"1\"}\nnope", "line 2"},
		{"no amount", `{"year":2015}`, "line 1"},
		{"bad month", `{"year":2015,"month":13,"amount":"1"}`, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDeposits(strings.NewReader(tt.in), "ILS")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("DecodeDeposits() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
