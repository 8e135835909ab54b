package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/invest"
	md "github.com/nao1215/markdown"
)

// ComparisonMarkdown renders the "stay" and "move" trajectories side by side.
func ComparisonMarkdown(r *invest.ComparisonResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Comparison over %d years", r.Years))

	basis := "gross"
	if r.Basis == invest.NetBasis {
		basis = "net of tax"
	}
	breakEven := "never"
	if r.BreakEven.Found() {
		breakEven = fmt.Sprintf("year %d", r.BreakEven)
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Value", "Stay", "Move"},
		Rows: [][]string{
			{"Invested", r.Current[0].String(), r.New[0].String()},
			{fmt.Sprintf("Final (%s)", basis), r.CurrentFinal.String(), r.NewFinal.String()},
			{"Difference", "", r.NewFinal.Sub(r.CurrentFinal).SignedString()},
			{"Break-even", "", breakEven},
		},
	})
	if !r.Retained.IsZero() {
		doc.PlainText(fmt.Sprintf("Moving %s, keeping %s in the current investment.", r.Moved, r.Retained))
	}

	doc.H2("Recommendation")
	doc.PlainText(fmt.Sprintf("%s %s", md.Bold(r.Recommendation.String()), r.Recommendation.Message()))

	doc.H2("Projection")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Year", "Stay", "Move", "Stay (net)", "Move (net)"},
	}
	for _, row := range r.Chart() {
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(row.Year),
			row.Current.String(),
			row.New.String(),
			row.CurrentNet.String(),
			row.NewNet.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ProjectionMarkdown renders a single projected series.
func ProjectionMarkdown(title string, s invest.Series) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Value", "Change"},
	}
	for i, v := range s {
		change := "-"
		if i > 0 {
			change = v.Sub(s[i-1]).SignedString()
		}
		table.Rows = append(table.Rows, []string{fmt.Sprint(i), v.String(), change})
	}
	doc.Table(table)
	return doc.String()
}
