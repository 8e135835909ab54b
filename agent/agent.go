// Package agent runs an interactive assistant on Gemini: a facilitator talks
// to the user and consults experts, which run the inv calculations through
// function calls.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	in          *bufio.Scanner
	Facilitator *Expert
	Experts     []*Expert
}

// New creates a new Agent, talking through w and r, that runs a facilitator
// on model to consult the experts.
func New(w io.Writer, r io.Reader, model string, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		in:          bufio.NewScanner(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
	}
}

// Start opens the chats of the experts and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// quit reports whether the user asked to end the session.
func quit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "bye", "exit", "quit":
		return true
	}
	return false
}

// Run asks the prompts first, then reads the questions of the user until
// the end of the input or a "bye".
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to inv assist, ask about moving your savings. Type 'bye' to exit.")
	fmt.Fprintln(a.w, "Figures are projections from your assumptions, not financial advice.")

	next := func() (string, bool) {
		for len(prompts) > 0 {
			p := strings.TrimSpace(prompts[0])
			prompts = prompts[1:]
			if p != "" {
				fmt.Fprintln(a.w, p)
				return p, true
			}
		}
		if !a.in.Scan() {
			return "", false
		}
		return a.in.Text(), true
	}

	for {
		fmt.Fprint(a.w, prompt)
		input, ok := next()
		if !ok {
			fmt.Fprintln(a.w)
			return a.in.Err()
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		if quit(input) {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, text(content))
	}
}

// text returns the text parts of content.
func text(content *genai.Content) string {
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
