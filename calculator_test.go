package invest

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testCalculator() *Calculator {
	return &Calculator{
		Currency: "ILS",
		Now:      func() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func rawCurrent() RawInput {
	return RawInput{
		Deposits:          []RawDeposit{{Year: "2015", Amount: "10000"}},
		CurrentValue:      "20000",
		CurrentCommission: "0",
		AsOf:              "2024",
	}
}

func TestCalculator_Analyze(t *testing.T) {
	_, s, err := testCalculator().Analyze(context.Background(), rawCurrent())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	assertMoney(t, "NetAvailable", s.NetAvailable, "17845")
	if s.NetAvailable.Currency() != "ILS" {
		t.Errorf("currency = %q, want ILS", s.NetAvailable.Currency())
	}
}

func TestCalculator_DefaultAsOf(t *testing.T) {
	raw := rawCurrent()
	raw.AsOf = ""
	in, _, err := testCalculator().Analyze(context.Background(), raw)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if in.AsOf != YM(2024, time.June) {
		t.Errorf("AsOf = %v, want 2024-06", in.AsOf)
	}
}

func TestCalculator_LoaderWarningsFirst(t *testing.T) {
	c := testCalculator()
	var asked MonthRange
	c.Load = func(_ context.Context, r MonthRange) (*Index, Warnings) {
		asked = r
		var ws Warnings
		ws.Add(WarnCPIFetchFailed, "remote down")
		return StaticIndex(), ws
	}
	raw := rawCurrent()
	raw.CurrentValue = "5000" // below the adjusted deposits
	_, s, err := c.Analyze(context.Background(), raw)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if asked.From != YM(2015, time.January) || asked.To != YM(2024, time.December) {
		t.Errorf("loaded range = %v, want 2015-01..2024-12", asked)
	}
	if len(s.Warnings) != 2 || s.Warnings[0].Code != WarnCPIFetchFailed || s.Warnings[1].Code != WarnNegativeGain {
		t.Errorf("Warnings = %v, want fetch failure then negative gain", s.Warnings)
	}
}

func TestCalculator_TaxBracketDefault(t *testing.T) {
	c := testCalculator()
	c.TaxBracket = "marginal"
	in, _, err := c.Analyze(context.Background(), rawCurrent())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if in.Options.TaxPolicy.Mode != AboveThreshold {
		t.Errorf("Mode = %v, want marginal", in.Options.TaxPolicy.Mode)
	}
}

func TestCalculator_Compare(t *testing.T) {
	raw := rawCurrent()
	raw.NewYield = "10"
	raw.NewCommission = "0"
	raw.NewTransactionFee = "0"
	raw.YearsToProject = "10"

	s, r, err := testCalculator().Compare(context.Background(), raw)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if !r.Current[0].Equal(s.GrossValue) {
		t.Errorf("Current[0] = %s, want the gross value %s", r.Current[0], s.GrossValue)
	}
	if !r.New[0].Equal(s.NetAvailable) {
		t.Errorf("New[0] = %s, want the net available %s", r.New[0], s.NetAvailable)
	}
	if r.Years != 10 || len(r.Current) != 11 {
		t.Errorf("Years = %d with %d values, want 10 with 11", r.Years, len(r.Current))
	}
}

func TestCalculator_CompareValidation(t *testing.T) {
	raw := rawCurrent()
	_, _, err := testCalculator().Compare(context.Background(), raw)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Compare() error = %v, want ValidationErrors", err)
	}
	fields := verrs.Fields()
	for _, f := range []string{"new_yield", "new_commission", "new_transaction_fee", "years_to_project"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing field error for %q in %v", f, fields)
		}
	}
}

func TestParseProjection(t *testing.T) {
	start, inv, years, err := ParseProjection(RawProjection{Start: "100000", Yield: "5", Commission: "0.5", Years: "3"})
	if err != nil {
		t.Fatalf("ParseProjection() error = %v", err)
	}
	assertMoney(t, "start", start, "100000")
	if !inv.Yield.Equal(R(0.05)) || !inv.Commission.Equal(R(0.005)) || !inv.TransactionFee.IsZero() || years != 3 {
		t.Errorf("ParseProjection() = %+v, %d", inv, years)
	}

	_, _, _, err = ParseProjection(RawProjection{Start: "-1", Yield: "x", Years: "-2"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) != 3 {
		t.Errorf("ParseProjection() error = %v, want 3 field errors", err)
	}

	_, _, _, err = ParseProjection(RawProjection{Start: "1e400", Yield: "5", Years: "2000000000", Currency: "ZZZ"})
	verrs = nil
	if !errors.As(err, &verrs) {
		t.Fatalf("ParseProjection() error = %v, want field errors", err)
	}
	fields := verrs.Fields()
	for _, f := range []string{"currency", "start", "years"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("ParseProjection() fields = %v, want %q", fields, f)
		}
	}
}

func TestDeposit_Raw(t *testing.T) {
	d := mustDeposit(t, "2015-03..12=12000")
	got := d.Raw()
	want := RawDeposit{Year: "2015", Month: "3", EndMonth: "12", Amount: "12000"}
	if got != want {
		t.Errorf("Raw() = %+v, want %+v", got, want)
	}
}

func TestNewReport(t *testing.T) {
	rep := NewReport(InvestmentSnapshot{}, nil)
	if rep.Comparison != nil || rep.Chart != nil {
		t.Errorf("NewReport(nil) = %+v, want no comparison", rep)
	}
	r := &ComparisonResult{Current: Series{ILS(1), ILS(2)}, New: Series{ILS(1), ILS(3)}, CurrentNet: Series{ILS(1), ILS(2)}, NewNet: Series{ILS(1), ILS(3)}}
	rep = NewReport(InvestmentSnapshot{}, r)
	if len(rep.Chart) != 2 || rep.Chart[1].Year != 1 {
		t.Errorf("Chart = %+v, want 2 rows", rep.Chart)
	}
}
