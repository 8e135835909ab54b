package invest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// Options are the mode flags of a calculation.
type Options struct {
	// MonthlyGranularity adjusts deposits month by month against a monthly index.
	MonthlyGranularity bool `json:"monthly_granularity"`
	// YieldSource selects the estimated yield or ManualYield for the current investment.
	YieldSource YieldSource `json:"yield_source"`
	ManualYield Rate        `json:"manual_yield"`
	YieldModel  YieldModel  `json:"yield_model"`
	// CompareBasis selects gross or net series for the break-even and the recommendation.
	CompareBasis CompareBasis `json:"compare_basis"`
	TaxPolicy    TaxPolicy    `json:"-"`
}

// DefaultOptions returns yearly index adjustment with a calculated simple
// yield, compared on gross values under DefaultTaxPolicy.
func DefaultOptions() Options {
	return Options{TaxPolicy: DefaultTaxPolicy}
}

// CalculationInput is the immutable input of a calculation.
type CalculationInput struct {
	Deposits          []Deposit
	CurrentValue      Money
	CurrentCommission Rate
	New               Investment
	Years             int
	PartialMove       Rate
	AsOf              Period
	Options           Options
}

// Comparison returns the comparison to run once the current yield is known.
func (in CalculationInput) Comparison(currentYield Rate) Comparison {
	return Comparison{
		Current:     Investment{Yield: currentYield, Commission: in.CurrentCommission},
		New:         in.New,
		PartialMove: in.PartialMove,
		Years:       in.Years,
		Basis:       in.Options.CompareBasis,
		Tax:         in.Options.TaxPolicy,
	}
}

// RawDeposit is a deposit as typed in a form.
type RawDeposit struct {
	Year     string `json:"year"`
	Month    string `json:"month,omitempty"`
	EndMonth string `json:"end_month,omitempty"`
	Amount   string `json:"amount"`
}

// RawInput holds the calculation fields as text, the way a form supplies
// them. Percentages are in percentage points ("7.5" is 7.5%).
type RawInput struct {
	Deposits          []RawDeposit `json:"deposits"`
	CurrentValue      string       `json:"current_value"`
	CurrentCommission string       `json:"current_commission"`

	NewYield          string `json:"new_yield"`
	NewCommission     string `json:"new_commission"`
	NewTransactionFee string `json:"new_transaction_fee"`
	YearsToProject    string `json:"years_to_project"`
	PartialMove       string `json:"partial_move"` // defaults to 100

	AsOf     string `json:"as_of,omitempty"`    // defaults to the current month
	Currency string `json:"currency,omitempty"` // defaults to DefaultCurrency

	MonthlyGranularity bool   `json:"monthly_granularity,omitempty"`
	YieldSource        string `json:"yield_source,omitempty"`
	ManualYield        string `json:"manual_yield,omitempty"`
	YieldModel         string `json:"yield_model,omitempty"`
	CompareBasis       string `json:"compare_basis,omitempty"`
	TaxBracket         string `json:"tax_bracket,omitempty"`
}

// ParseCurrentInput parses the fields needed to analyze the current
// investment: deposits, current value, current commission and options.
// now is the as-of period when the input does not set one. All field
// problems are reported at once in a ValidationErrors.
func ParseCurrentInput(raw RawInput, now Period) (CalculationInput, error) {
	var errs ValidationErrors
	in := raw.parseCurrent(now, &errs)
	return in, errs.err()
}

// ParseInput parses all the fields, including the new investment ones.
func ParseInput(raw RawInput, now Period) (CalculationInput, error) {
	var errs ValidationErrors
	in := raw.parseCurrent(now, &errs)

	in.New.Yield = parseRate(&errs, "new_yield", raw.NewYield, -100, 1000)
	in.New.Commission = parseRate(&errs, "new_commission", raw.NewCommission, 0, 100)
	in.New.TransactionFee = parseRate(&errs, "new_transaction_fee", raw.NewTransactionFee, 0, 100)

	if strings.TrimSpace(raw.YearsToProject) == "" {
		errs.add("years_to_project", "is required")
	} else if years, err := strconv.Atoi(strings.TrimSpace(raw.YearsToProject)); err != nil {
		errs.add("years_to_project", "must be a whole number, got %q", raw.YearsToProject)
	} else if years < 0 {
		errs.add("years_to_project", "must not be negative, got %d", years)
	} else if years > MaxYears {
		errs.add("years_to_project", "must not exceed %d, got %d", MaxYears, years)
	} else {
		in.Years = years
	}

	partial := raw.PartialMove
	if strings.TrimSpace(partial) == "" {
		partial = "100"
	}
	in.PartialMove = parseRate(&errs, "partial_move", partial, 0, 100)
	return in, errs.err()
}

// parseCurrency returns the ISO 4217 code of s, DefaultCurrency if empty.
func parseCurrency(errs *ValidationErrors, s string) string {
	code := strings.ToUpper(strings.TrimSpace(s))
	if code == "" {
		return DefaultCurrency
	}
	if money.GetCurrency(code) == nil {
		errs.add("currency", "unknown currency %q", s)
	}
	return code
}

func (raw RawInput) parseCurrent(now Period, errs *ValidationErrors) CalculationInput {
	currency := parseCurrency(errs, raw.Currency)
	in := CalculationInput{AsOf: now, Options: DefaultOptions()}

	if strings.TrimSpace(raw.AsOf) != "" {
		asOf, err := ParsePeriod(raw.AsOf)
		if err != nil {
			errs.add("as_of", "%v", err)
		} else {
			in.AsOf = asOf
		}
	}

	if len(raw.Deposits) == 0 {
		errs.add("deposits", "at least one deposit is required")
	}
	for i, rd := range raw.Deposits {
		if d, ok := rd.parse(i, currency, errs); ok {
			in.Deposits = append(in.Deposits, d)
		}
	}

	if strings.TrimSpace(raw.CurrentValue) == "" {
		errs.add("current_value", "is required")
	} else if v, err := ParseMoney(raw.CurrentValue, currency); err != nil {
		errs.add("current_value", "%v", err)
	} else if v.IsNegative() {
		errs.add("current_value", "must not be negative")
	} else {
		in.CurrentValue = v
	}
	in.CurrentCommission = parseRate(errs, "current_commission", raw.CurrentCommission, 0, 100)

	var err error
	in.Options.MonthlyGranularity = raw.MonthlyGranularity
	if in.Options.YieldSource, err = ParseYieldSource(raw.YieldSource); err != nil {
		errs.add("yield_source", "%v", err)
	}
	if in.Options.YieldSource == ManualYield {
		in.Options.ManualYield = parseRate(errs, "manual_yield", raw.ManualYield, -100, 1000)
	}
	if in.Options.YieldModel, err = ParseYieldModel(raw.YieldModel); err != nil {
		errs.add("yield_model", "%v", err)
	}
	if in.Options.CompareBasis, err = ParseCompareBasis(raw.CompareBasis); err != nil {
		errs.add("compare_basis", "%v", err)
	}
	if in.Options.TaxPolicy.Mode, err = ParseBracketMode(raw.TaxBracket); err != nil {
		errs.add("tax_bracket", "%v", err)
	}
	return in
}

func (rd RawDeposit) parse(i int, currency string, errs *ValidationErrors) (Deposit, bool) {
	field := fmt.Sprintf("deposits[%d]", i)
	n := len(*errs)
	var d Deposit

	if strings.TrimSpace(rd.Year) == "" {
		errs.add(field+".year", "is required")
	} else if y, err := strconv.Atoi(strings.TrimSpace(rd.Year)); err != nil || y < 1 {
		errs.add(field+".year", "must be a year, got %q", rd.Year)
	} else {
		d.Period.Year = y
	}
	d.Period.Month = parseMonth(errs, field+".month", rd.Month)
	d.EndMonth = parseMonth(errs, field+".end_month", rd.EndMonth)

	if strings.TrimSpace(rd.Amount) == "" {
		errs.add(field+".amount", "is required")
	} else if a, err := ParseMoney(rd.Amount, currency); err != nil {
		errs.add(field+".amount", "%v", err)
	} else {
		d.Amount = a
	}
	if len(*errs) > n {
		return Deposit{}, false
	}
	if err := d.Validate(); err != nil {
		errs.add(field, "%v", err)
		return Deposit{}, false
	}
	return d, true
}

func parseMonth(errs *ValidationErrors, field, s string) time.Month {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || m < 1 || m > 12 {
		errs.add(field, "must be a month between 1 and 12, got %q", s)
		return 0
	}
	return time.Month(m)
}

// parseRate parses a required percentage within [lo, hi] percentage points.
func parseRate(errs *ValidationErrors, field, s string, lo, hi float64) Rate {
	if strings.TrimSpace(s) == "" {
		errs.add(field, "is required")
		return Rate{}
	}
	r, err := ParsePercent(s)
	if err != nil {
		errs.add(field, "%v", err)
		return Rate{}
	}
	if !r.Within(lo/100, hi/100) {
		errs.add(field, "must be between %v%% and %v%%, got %s", lo, hi, r)
		return Rate{}
	}
	return r
}

// Raw returns the deposit as form fields.
func (d Deposit) Raw() RawDeposit {
	rd := RawDeposit{Year: strconv.Itoa(d.Period.Year), Amount: d.Amount.Decimal().String()}
	if !d.Period.IsAnnual() {
		rd.Month = strconv.Itoa(int(d.Period.Month))
	}
	if d.EndMonth != 0 {
		rd.EndMonth = strconv.Itoa(int(d.EndMonth))
	}
	return rd
}

// RawProjection holds the fields of a single projection as text.
type RawProjection struct {
	Start          string `json:"start"`
	Yield          string `json:"yield"`
	Commission     string `json:"commission"`
	TransactionFee string `json:"transaction_fee"`
	Years          string `json:"years"`
	Currency       string `json:"currency,omitempty"`
}

// ParseProjection parses a single projection request. Commission and
// transaction fee default to zero.
func ParseProjection(raw RawProjection) (start Money, inv Investment, years int, err error) {
	var errs ValidationErrors
	currency := parseCurrency(&errs, raw.Currency)
	if strings.TrimSpace(raw.Start) == "" {
		errs.add("start", "is required")
	} else if start, err = ParseMoney(raw.Start, currency); err != nil {
		errs.add("start", "%v", err)
	} else if start.IsNegative() {
		errs.add("start", "must not be negative")
	}
	inv.Yield = parseRate(&errs, "yield", raw.Yield, -100, 1000)
	inv.Commission = parseRate(&errs, "commission", orZero(raw.Commission), 0, 100)
	inv.TransactionFee = parseRate(&errs, "transaction_fee", orZero(raw.TransactionFee), 0, 100)
	if strings.TrimSpace(raw.Years) == "" {
		errs.add("years", "is required")
	} else if years, err = strconv.Atoi(strings.TrimSpace(raw.Years)); err != nil {
		errs.add("years", "must be a whole number, got %q", raw.Years)
	} else if years < 0 {
		errs.add("years", "must not be negative, got %d", years)
	} else if years > MaxYears {
		errs.add("years", "must not exceed %d, got %d", MaxYears, years)
	}
	return start, inv, years, errs.err()
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}
