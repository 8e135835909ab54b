package invest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is one contribution into the investment.
//
// A deposit with a Month and an EndMonth after it is a recurring
// contribution: Amount is the total paid in equal parts every month from
// Period.Month to EndMonth, in Period.Year.
type Deposit struct {
	Period   Period     // Month is 0 when only the year is known
	EndMonth time.Month // last month of a recurring contribution, or 0
	Amount   Money
}

// IsRecurring reports whether the deposit covers more than one month.
func (d Deposit) IsRecurring() bool {
	return !d.Period.IsAnnual() && d.EndMonth > d.Period.Month
}

// Months returns the months covered by the deposit.
func (d Deposit) Months() MonthRange {
	if d.IsRecurring() {
		return NewMonthRange(d.Period, YM(d.Period.Year, d.EndMonth))
	}
	if d.Period.IsAnnual() {
		return NewMonthRange(d.Period, d.Period)
	}
	return MonthRange{From: d.Period, To: d.Period}
}

// Split returns one deposit per covered month for a recurring deposit, each
// with an equal share of the amount. The last share absorbs the rounding so
// that the shares add up to the amount. Other deposits are returned as is.
func (d Deposit) Split() []Deposit {
	if !d.IsRecurring() {
		return []Deposit{d}
	}
	months := d.Months()
	n := months.Len()
	share := d.Amount.Mul(one.Div(decimal.NewFromInt(int64(n))))
	parts := make([]Deposit, 0, n)
	rest := d.Amount
	for p := range months.Months() {
		amount := share
		if len(parts) == n-1 {
			amount = rest
		}
		rest = rest.Sub(amount)
		parts = append(parts, Deposit{Period: p, Amount: amount})
	}
	return parts
}

// Validate checks the deposit itself, independently of any index.
func (d Deposit) Validate() error {
	if d.Period.Year < 1 {
		return fmt.Errorf("invalid year %d", d.Period.Year)
	}
	if d.Period.Month < 0 || d.Period.Month > 12 {
		return fmt.Errorf("invalid month %d", d.Period.Month)
	}
	if d.EndMonth != 0 {
		if d.Period.IsAnnual() {
			return fmt.Errorf("end month %d without a start month", d.EndMonth)
		}
		if d.EndMonth < d.Period.Month || d.EndMonth > 12 {
			return fmt.Errorf("invalid end month %d", d.EndMonth)
		}
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", d.Amount.Decimal())
	}
	if d.Amount.Decimal().GreaterThan(MaxAmount) {
		return fmt.Errorf("amount must not exceed %s, got %s", MaxAmount, d.Amount.Decimal())
	}
	return nil
}

// String formats the deposit as accepted by ParseDeposit.
func (d Deposit) String() string {
	p := d.Period.String()
	if d.IsRecurring() {
		p += fmt.Sprintf("..%02d", int(d.EndMonth))
	}
	return p + "=" + d.Amount.Decimal().String()
}

// ParseDeposit parses "2015=10000", "2015-03=1000" or "2015-03..12=12000"
// (12000 paid from March to December 2015).
func ParseDeposit(s, currency string) (Deposit, error) {
	when, amount, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return Deposit{}, fmt.Errorf("invalid deposit %q: want <year>[-<month>[..<month>]]=<amount>", s)
	}
	start, end, recurring := strings.Cut(when, "..")
	p, err := ParsePeriod(start)
	if err != nil {
		return Deposit{}, fmt.Errorf("invalid deposit %q: %w", s, err)
	}
	d := Deposit{Period: p}
	if recurring {
		m, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return Deposit{}, fmt.Errorf("invalid deposit %q: invalid end month %q", s, end)
		}
		d.EndMonth = time.Month(m)
	}
	d.Amount, err = ParseMoney(amount, currency)
	if err != nil {
		return Deposit{}, fmt.Errorf("invalid deposit %q: %w", s, err)
	}
	if err := d.Validate(); err != nil {
		return Deposit{}, fmt.Errorf("invalid deposit %q: %w", s, err)
	}
	return d, nil
}

// DecodeDeposits reads deposits from a JSONL stream, one object per line:
//
//	{"year":2015,"month":3,"end_month":12,"amount":"12000"}
//
// month and end_month are optional, amount can be a string or a number.
func DecodeDeposits(r io.Reader, currency string) ([]Deposit, error) {
	// jdeposit is the object read from the file using json parser.
	type jdeposit struct {
		Year     int             `json:"year"`
		Month    int             `json:"month"`
		EndMonth int             `json:"end_month"`
		Amount   decimal.Decimal `json:"amount"`
	}

	var deposits []Deposit
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jd jdeposit
		if err := json.Unmarshal(line, &jd); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, string(line), err)
		}
		d := Deposit{
			Period:   YM(jd.Year, time.Month(jd.Month)),
			EndMonth: time.Month(jd.EndMonth),
			Amount:   M(jd.Amount, currency),
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid deposit on line %d: %w", i, err)
		}
		deposits = append(deposits, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return deposits, nil
}

// TotalDeposited returns the sum of the nominal amounts.
func TotalDeposited(deposits []Deposit) Money {
	var total Money
	for _, d := range deposits {
		total = total.Add(d.Amount)
	}
	return total
}

// EarliestPeriod returns the period of the earliest deposit.
func EarliestPeriod(deposits []Deposit) (Period, bool) {
	if len(deposits) == 0 {
		return Period{}, false
	}
	first := deposits[0].Period
	for _, d := range deposits[1:] {
		if d.Period.Before(first) {
			first = d.Period
		}
	}
	return first, true
}
