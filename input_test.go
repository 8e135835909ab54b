package invest

import (
	"errors"
	"testing"
)

func validRaw() RawInput {
	return RawInput{
		Deposits:          []RawDeposit{{Year: "2015", Amount: "10000"}},
		CurrentValue:      "20000",
		CurrentCommission: "1",
		NewYield:          "7",
		NewCommission:     "0.5",
		NewTransactionFee: "0",
		YearsToProject:    "10",
	}
}

func TestParseInput(t *testing.T) {
	in, err := ParseInput(validRaw(), YM(2024, 10))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}
	if in.AsOf != YM(2024, 10) {
		t.Errorf("AsOf = %v, want the current period", in.AsOf)
	}
	if !in.PartialMove.Equal(R(1)) {
		t.Errorf("PartialMove = %s, want 100%% by default", in.PartialMove)
	}
	if !in.New.Yield.Equal(R(0.07)) || !in.New.Commission.Equal(R(0.005)) {
		t.Errorf("New = %+v", in.New)
	}
	if !in.CurrentCommission.Equal(R(0.01)) {
		t.Errorf("CurrentCommission = %s, want 1%%", in.CurrentCommission)
	}
	if in.Years != 10 || len(in.Deposits) != 1 || in.CurrentValue.Currency() != DefaultCurrency {
		t.Errorf("ParseInput() = %+v", in)
	}
	if in.Options.TaxPolicy != DefaultTaxPolicy {
		t.Errorf("TaxPolicy = %+v, want the default", in.Options.TaxPolicy)
	}
}

func TestParseInput_Options(t *testing.T) {
	raw := validRaw()
	raw.AsOf = "2024"
	raw.Currency = "usd"
	raw.PartialMove = "40"
	raw.MonthlyGranularity = true
	raw.YieldSource = "manual"
	raw.ManualYield = "4.5"
	raw.YieldModel = "time-weighted"
	raw.CompareBasis = "net"
	raw.TaxBracket = "marginal"
	raw.Deposits = append(raw.Deposits, RawDeposit{Year: "2016", Month: "3", EndMonth: "12", Amount: "12000"})

	in, err := ParseInput(raw, YM(2024, 10))
	if err != nil {
		t.Fatalf("ParseInput() error = %v", err)
	}
	o := in.Options
	if !o.MonthlyGranularity || o.YieldSource != ManualYield || !o.ManualYield.Equal(R(0.045)) ||
		o.YieldModel != TimeWeightedYield || o.CompareBasis != NetBasis || o.TaxPolicy.Mode != AboveThreshold {
		t.Errorf("Options = %+v", o)
	}
	if in.AsOf != Y(2024) || in.CurrentValue.Currency() != "USD" || !in.PartialMove.Equal(R(0.4)) {
		t.Errorf("ParseInput() = %+v", in)
	}
	if d := in.Deposits[1]; !d.IsRecurring() || d.Months().Len() != 10 {
		t.Errorf("recurring deposit = %+v", d)
	}
}

func TestParseInput_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RawInput)
		fields []string
	}{
		{"no deposits", func(r *RawInput) { r.Deposits = nil }, []string{"deposits"}},
		{"bad deposit", func(r *RawInput) {
			r.Deposits = []RawDeposit{{Year: "x", Amount: "abc"}}
		}, []string{"deposits[0].amount", "deposits[0].year"}},
		{"negative deposit", func(r *RawInput) { r.Deposits[0].Amount = "-1" }, []string{"deposits[0]"}},
		{"bad month", func(r *RawInput) { r.Deposits[0].Month = "13" }, []string{"deposits[0].month"}},
		{"missing current value", func(r *RawInput) { r.CurrentValue = "" }, []string{"current_value"}},
		{"commission out of range", func(r *RawInput) { r.CurrentCommission = "150" }, []string{"current_commission"}},
		{"negative years", func(r *RawInput) { r.YearsToProject = "-1" }, []string{"years_to_project"}},
		{"fractional years", func(r *RawInput) { r.YearsToProject = "2.5" }, []string{"years_to_project"}},
		{"too many years", func(r *RawInput) { r.YearsToProject = "2000000000" }, []string{"years_to_project"}},
		{"huge current value", func(r *RawInput) { r.CurrentValue = "1e400" }, []string{"current_value"}},
		{"huge deposit", func(r *RawInput) { r.Deposits[0].Amount = "1e16" }, []string{"deposits[0].amount"}},
		{"unknown currency", func(r *RawInput) { r.Currency = "ZZZ" }, []string{"currency"}},
		{"partial move out of range", func(r *RawInput) { r.PartialMove = "101" }, []string{"partial_move"}},
		{"unknown bracket", func(r *RawInput) { r.TaxBracket = "flat" }, []string{"tax_bracket"}},
		{"manual yield missing", func(r *RawInput) { r.YieldSource = "manual" }, []string{"manual_yield"}},
		{"many at once", func(r *RawInput) {
			r.CurrentValue = "abc"
			r.NewYield = ""
			r.AsOf = "2024-15"
		}, []string{"as_of", "current_value", "new_yield"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.modify(&raw)
			_, err := ParseInput(raw, YM(2024, 10))
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("ParseInput() error = %v, want ValidationErrors", err)
			}
			fields := verrs.Fields()
			if len(fields) != len(tt.fields) {
				t.Errorf("ParseInput() fields = %v, want %v", fields, tt.fields)
			}
			for i, f := range tt.fields {
				if _, ok := fields[f]; !ok {
					t.Errorf("ParseInput() fields = %v, want %q", fields, f)
				}
				if i < len(verrs) && verrs[i].Field != f {
					t.Errorf("field %d = %q, want %q (sorted)", i, verrs[i].Field, f)
				}
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("errors.As(*ValidationError) failed on %v", err)
			}
		})
	}
}

func TestParseCurrentInput(t *testing.T) {
	raw := validRaw()
	raw.NewYield, raw.YearsToProject = "", ""
	in, err := ParseCurrentInput(raw, YM(2024, 10))
	if err != nil {
		t.Fatalf("ParseCurrentInput() error = %v", err)
	}
	if !in.CurrentValue.Equal(ILS(20000)) {
		t.Errorf("CurrentValue = %s, want 20000", in.CurrentValue)
	}
}
