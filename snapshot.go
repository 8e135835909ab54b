package invest

// InvestmentSnapshot is the state of the current investment if it were sold
// as of AsOf.
type InvestmentSnapshot struct {
	AsOf       Period `json:"as_of"`
	GrossValue Money  `json:"gross_value"`

	TotalNominalDeposited  Money             `json:"total_nominal_deposited"`
	TotalAdjustedDeposited Money             `json:"total_adjusted_deposited"`
	Deposits               []AdjustedDeposit `json:"deposits"`
	Index                  string            `json:"index"`
	LatestCPI              IndexEntry        `json:"latest_cpi"`

	RealGain     Money `json:"real_gain"` // max(0, gross − adjusted deposits)
	TaxRate      Rate  `json:"tax_rate"`
	TaxOwed      Money `json:"tax_owed"`
	NetAvailable Money `json:"net_available"` // gross − tax

	OverallYield    Rate        `json:"overall_yield"`
	CalculatedYield Rate        `json:"calculated_yield"`
	YieldModel      YieldModel  `json:"yield_model"`
	YieldSource     YieldSource `json:"yield_source"`
	// ImpliedAnnualYield is the yield the current investment is projected
	// with: CalculatedYield, or the manual yield.
	ImpliedAnnualYield Rate `json:"implied_annual_yield"`

	Warnings Warnings `json:"warnings,omitempty"`
}

// Analyze computes the snapshot of the current investment: it adjusts the
// deposits for inflation, computes the tax due on the real gain and the
// money available after tax, and estimates the implied annual yield.
//
// A nil or empty index degrades to unadjusted deposits with warnings. It
// fails with ErrInvalidInput when there is no deposit or nothing deposited.
func Analyze(in CalculationInput, index *Index) (InvestmentSnapshot, error) {
	s := InvestmentSnapshot{
		AsOf:        in.AsOf,
		GrossValue:  in.CurrentValue,
		Index:       index.Name(),
		YieldModel:  in.Options.YieldModel,
		YieldSource: in.Options.YieldSource,
	}
	var err error
	if s.OverallYield, err = OverallYield(in.Deposits, in.CurrentValue); err != nil {
		return InvestmentSnapshot{}, err
	}
	if s.CalculatedYield, err = EstimateYield(in.Deposits, in.CurrentValue, in.AsOf, in.Options.YieldModel); err != nil {
		return InvestmentSnapshot{}, err
	}
	s.ImpliedAnnualYield = s.CalculatedYield
	if in.Options.YieldSource == ManualYield {
		s.ImpliedAnnualYield = in.Options.ManualYield
	}

	monthly := in.Options.MonthlyGranularity
	s.Deposits, s.Warnings = Adjust(in.Deposits, index, monthly)
	if latest, err := index.Latest(monthly); err == nil {
		s.LatestCPI = latest
	}
	s.TotalNominalDeposited = TotalDeposited(in.Deposits)
	s.TotalAdjustedDeposited = TotalAdjusted(s.Deposits)

	tax := in.Options.TaxPolicy.Compute(in.CurrentValue, s.TotalAdjustedDeposited)
	s.RealGain, s.TaxRate, s.TaxOwed = tax.RealGain, tax.Rate, tax.Owed
	s.NetAvailable = in.CurrentValue.Sub(tax.Owed)
	if in.CurrentValue.LessThan(s.TotalAdjustedDeposited) {
		s.Warnings.Add(WarnNegativeGain, "current value %s is below the inflation adjusted deposits %s, no tax is due", in.CurrentValue, s.TotalAdjustedDeposited)
	}
	return s, nil
}

// Compare runs the comparison described by in, from the snapshot of the
// current investment computed by Analyze.
func Compare(in CalculationInput, s InvestmentSnapshot) (ComparisonResult, error) {
	c := in.Comparison(s.ImpliedAnnualYield)
	return c.Run(s.GrossValue, s.TotalAdjustedDeposited, s.NetAvailable)
}
