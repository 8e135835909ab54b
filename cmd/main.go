// Package cmd implements the inv command line application, to decide whether
// to move money out of an investment into another one.
package cmd

import "github.com/google/subcommands"

// Commands are the inv subcommands, registered by the main package.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&compareCmd{},
	&projectCmd{},
	&cpiCmd{},
	&serveCmd{},
	&topicCmd{},
	&AssistCmd{},
}
