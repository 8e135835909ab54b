// The inv command helps decide whether to move savings out of a long term
// investment into another one.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path"

	"github.com/etnz/invest/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	registered := map[string]bool{"help": true, "flags": true, "commands": true}
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		registered[c.Name()] = true
	}

	cmd.Complete(name)

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}

	if sub := flag.Arg(0); sub != "" && !registered[sub] {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
