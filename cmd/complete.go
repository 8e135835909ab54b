package cmd

import (
	"flag"

	"github.com/etnz/invest/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values, by flag name. Other flags take any value.
var predictors = map[string]complete.Predictor{
	"f":           predict.Files("*.jsonl"),
	"yield-model": predict.Set{"simple", "time-weighted"},
	"basis":       predict.Set{"gross", "net"},
	"cpi-source":  predict.Set{"static", "cbs", "insee"},
	"tax-policy":  predict.Set{"whole", "marginal"},
}

// Complete runs the shell completion of the name command, if the shell asked
// for it. Otherwise it does nothing.
func Complete(name string) {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	for _, c := range Commands {
		root.Sub[c.Name()] = completion(c)
	}
	root.Sub["cpi"].Sub = map[string]*complete.Command{
		"show":  completion(&cpiShowCmd{}),
		"fetch": completion(&cpiFetchCmd{}),
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	root.Complete(name)
}

func completion(c subcommands.Command) *complete.Command {
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	return &complete.Command{Flags: flags(f)}
}

func flags(f *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		switch {
		case predictors[fl.Name] != nil:
			m[fl.Name] = predictors[fl.Name]
		case isBool(fl):
			m[fl.Name] = predict.Nothing
		default:
			m[fl.Name] = predict.Something
		}
	})
	return m
}

func isBool(fl *flag.Flag) bool {
	b, ok := fl.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
