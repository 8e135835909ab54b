package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/goccy/go-json"
)

// printMarkdown renders doc for the terminal, or prints it as is if it
// cannot be rendered.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

// printJSON prints v as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
