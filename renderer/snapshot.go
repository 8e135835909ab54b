package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/invest"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders the state of the current investment.
func SnapshotMarkdown(s *invest.InvestmentSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Current Investment as of %s", s.AsOf))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Gross Value"),
			md.Bold(s.GrossValue.String()),
		},
		Rows: [][]string{
			{"Total Deposited", s.TotalNominalDeposited.String()},
			{"Inflation Adjusted Deposits", s.TotalAdjustedDeposited.String()},
			{"Real Gain", s.RealGain.String()},
			{fmt.Sprintf("Tax (%s)", s.TaxRate), s.TaxOwed.String()},
			{md.Bold("Net Available"), md.Bold(s.NetAvailable.String())},
		},
	})

	doc.H2("Yield")
	implied := "calculated"
	if s.YieldSource == invest.ManualYield {
		implied = "manual"
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Measure", "Rate"},
		Rows: [][]string{
			{"Overall", s.OverallYield.SignedString()},
			{fmt.Sprintf("Annual (%s)", s.YieldModel), s.CalculatedYield.SignedString()},
			{fmt.Sprintf("Projected with (%s)", implied), md.Bold(s.ImpliedAnnualYield.SignedString())},
		},
	})

	if len(s.Deposits) > 0 {
		doc.H2("Deposits")
		doc.PlainText(fmt.Sprintf("Adjusted to the %s index value of %s (%s).", s.Index, s.LatestCPI.Period, s.LatestCPI.Value))
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Period", "Nominal", "CPI", "Factor", "Adjusted"},
		}
		for _, d := range s.Deposits {
			table.Rows = append(table.Rows, []string{
				d.Period.String(),
				d.Nominal.String(),
				cpi(d),
				d.Factor().StringFixed(4),
				d.Adjusted.String(),
			})
		}
		doc.Table(table)
	}

	warningsSection(doc, s.Warnings)

	return doc.String()
}

// cpi formats the index value used for a deposit, and where it comes from
// when it is not the deposit's own period.
func cpi(d invest.AdjustedDeposit) string {
	switch {
	case d.Skipped:
		return "n/a"
	case d.CPI.Fallback:
		return fmt.Sprintf("%s (%s, fallback)", d.CPI.Value, d.CPI.Resolved)
	case d.CPI.Resolved != d.Period:
		return fmt.Sprintf("%s (%s)", d.CPI.Value, d.CPI.Resolved)
	default:
		return d.CPI.Value.String()
	}
}

// warningsSection adds the warnings, if any.
func warningsSection(doc *md.Markdown, warnings invest.Warnings) {
	if len(warnings) == 0 {
		return
	}
	doc.H2("Warnings")
	items := make([]string, len(warnings))
	for i, w := range warnings {
		items[i] = fmt.Sprintf("%s: %s", md.Code(w.Code), w.Message)
	}
	doc.BulletList(items...)
}
