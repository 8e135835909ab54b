package invest

import (
	"encoding/json"
	"strconv"
)

// Investment holds the assumptions of an investment vehicle.
type Investment struct {
	Yield          Rate `json:"yield"`
	Commission     Rate `json:"commission"`
	TransactionFee Rate `json:"transaction_fee"`
}

// Project projects start under the investment's assumptions.
func (i Investment) Project(start Money, years int) (Series, error) {
	return Project(start, i.Yield, i.Commission, i.TransactionFee, years)
}

// BreakEven is a year index in a projection, or Never.
type BreakEven int

// Never means the alternative never gets ahead within the projection.
const Never BreakEven = -1

// Found reports whether a break-even year exists.
func (b BreakEven) Found() bool { return b >= 0 }

func (b BreakEven) String() string {
	if !b.Found() {
		return "never"
	}
	return strconv.Itoa(int(b))
}

// MarshalJSON writes the year as a number, or the string "never".
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if !b.Found() {
		return json.Marshal("never")
	}
	return json.Marshal(int(b))
}

// FindBreakEven returns the first index where b is strictly above a, or
// Never. Series of different lengths are compared on their common part.
func FindBreakEven(a, b Series) BreakEven {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if b[i].GreaterThan(a[i]) {
			return BreakEven(i)
		}
	}
	return Never
}

// Recommendation is the outcome of a comparison.
type Recommendation int

const (
	// Stay with the current investment.
	Stay Recommendation = iota
	// Move the chosen portion to the new investment.
	Move
)

func (r Recommendation) String() string {
	if r == Move {
		return "MOVE"
	}
	return "STAY"
}

// Message returns the recommendation as a sentence.
func (r Recommendation) Message() string {
	if r == Move {
		return "Consider moving the specified portion to the new investment mechanism."
	}
	return "Stay with the current investment mechanism."
}

func (r Recommendation) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Comparison describes a move being considered.
type Comparison struct {
	Current Investment // its transaction fee is ignored, staying costs nothing
	New     Investment
	// PartialMove is the fraction of the net available money moved to New,
	// the rest stays in Current.
	PartialMove Rate
	Years       int
	Basis       CompareBasis
	Tax         TaxPolicy
}

// ComparisonResult holds the "stay" and "move" trajectories.
type ComparisonResult struct {
	Years int          `json:"years"`
	Basis CompareBasis `json:"basis"`

	// Moved and Retained split the net available money at year 0.
	Moved    Money `json:"moved"`
	Retained Money `json:"retained"`

	// Current is the baseline: the gross value kept in the current investment.
	Current Series `json:"current"`
	// New is MovedSeries + RetainedSeries.
	New            Series `json:"new"`
	MovedSeries    Series `json:"moved_series"`
	RetainedSeries Series `json:"retained_series"`

	// CurrentNet and NewNet are the gross series minus the tax due if sold that year.
	CurrentNet Series `json:"current_net"`
	NewNet     Series `json:"new_net"`

	// BreakEven, the final values and the recommendation are computed on Basis.
	BreakEven      BreakEven      `json:"break_even"`
	CurrentFinal   Money          `json:"current_final"`
	NewFinal       Money          `json:"new_final"`
	Recommendation Recommendation `json:"recommendation"`
}

// Compared returns the baseline and alternative series on the result's basis.
func (r ComparisonResult) Compared() (current, alternative Series) {
	if r.Basis == NetBasis {
		return r.CurrentNet, r.NewNet
	}
	return r.Current, r.New
}

// ChartRow is one year of a comparison, for plotting.
type ChartRow struct {
	Year       int   `json:"year"`
	Current    Money `json:"current"`
	New        Money `json:"new"`
	CurrentNet Money `json:"current_net"`
	NewNet     Money `json:"new_net"`
}

// MarshalJSON writes the amounts as bare numbers, rounded to cents, the way
// chart libraries expect them.
func (c ChartRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("year", c.Year)
	w.Number("current", c.Current.value, 2)
	w.Number("new", c.New.value, 2)
	w.Number("current_net", c.CurrentNet.value, 2)
	w.Number("new_net", c.NewNet.value, 2)
	return w.MarshalJSON()
}

// Chart returns one row per projected year.
func (r ComparisonResult) Chart() []ChartRow {
	rows := make([]ChartRow, len(r.Current))
	for i := range r.Current {
		rows[i] = ChartRow{Year: i, Current: r.Current[i], New: r.New[i], CurrentNet: r.CurrentNet[i], NewNet: r.NewNet[i]}
	}
	return rows
}

// Validate checks the comparison parameters.
func (c Comparison) Validate() error {
	if c.Years < 0 {
		return invalid("years to project must not be negative, got %d", c.Years)
	}
	if !c.PartialMove.Within(0, 1) {
		return invalid("partial move must be between 0%% and 100%%, got %s", c.PartialMove)
	}
	return c.Tax.Validate()
}

// Run projects both trajectories.
//
// The baseline projects gross, the whole current value, under the current
// investment with no transaction fee. The alternative splits netAvailable:
// the moved part is projected under the new investment (its transaction fee
// included), the retained part under the current investment with no fee,
// and both are summed year by year.
//
// Net series deduct, every year, the tax that would be due on a sale: on the
// baseline against basis (the inflation adjusted deposits at year 0), on the
// alternative against netAvailable, the money reinvested after tax.
func (c Comparison) Run(gross, basis, netAvailable Money) (ComparisonResult, error) {
	if err := c.Validate(); err != nil {
		return ComparisonResult{}, err
	}
	r := ComparisonResult{Years: c.Years, Basis: c.Basis}
	r.Moved = netAvailable.MulRate(c.PartialMove)
	r.Retained = netAvailable.Sub(r.Moved)

	stay := c.Current
	stay.TransactionFee = Rate{}

	var err error
	if r.MovedSeries, err = c.New.Project(r.Moved, c.Years); err != nil {
		return ComparisonResult{}, err
	}
	if r.RetainedSeries, err = stay.Project(r.Retained, c.Years); err != nil {
		return ComparisonResult{}, err
	}
	if r.New, err = r.MovedSeries.Plus(r.RetainedSeries); err != nil {
		return ComparisonResult{}, err
	}
	if r.Current, err = stay.Project(gross, c.Years); err != nil {
		return ComparisonResult{}, err
	}
	r.CurrentNet = c.net(r.Current, basis)
	r.NewNet = c.net(r.New, netAvailable)

	current, alternative := r.Compared()
	r.BreakEven = FindBreakEven(current, alternative)
	r.CurrentFinal, r.NewFinal = current.Final(), alternative.Final()
	if r.NewFinal.GreaterThan(r.CurrentFinal) {
		r.Recommendation = Move
	}
	return r, nil
}

// net returns s minus the tax due each year against basis.
func (c Comparison) net(s Series, basis Money) Series {
	net := make(Series, len(s))
	for i, v := range s {
		net[i] = v.Sub(c.Tax.Compute(v, basis).Owed)
	}
	return net
}
