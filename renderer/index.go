package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/invest"
)

// IndexMarkdown renders a CPI index, one row per year with its months, and
// the warnings raised while loading it.
func IndexMarkdown(x *invest.Index, warnings invest.Warnings) string {
	r := &indexRenderer{Builder: &strings.Builder{}}
	r.Printf("# CPI Index %s\n\n", x.Name())
	if x.Len() == 0 {
		r.Printf("No values.\n")
		return r.String()
	}
	latest, _ := x.Latest(x.HasMonthly())
	r.Printf("Latest value: %s (%s), %d entries.\n\n", latest.Value, latest.Period, x.Len())

	r.Printf("| Period | Value |\n")
	r.Printf("|:---|---:|\n")
	for _, e := range x.Entries() {
		r.Printf("| %s | %s |\n", e.Period, e.Value)
	}

	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Warnings\n\n")
		for _, warning := range warnings {
			fmt.Fprintf(w, "- `%s`: %s\n", warning.Code, warning.Message)
		}
		return len(warnings) > 0
	})
	return r.String()
}

// indexRenderer formats an index into a markdown string.
type indexRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *indexRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
