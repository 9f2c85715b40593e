package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/tmaury/fincoach"
	"github.com/tmaury/fincoach/cmd"
)

func main() {
	// Shell completion, a no-op outside completion requests.
	completion().Complete("coach")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	files := predict.Files("*")
	types := make(predict.Set, 0, len(fincoach.ScenarioTypes))
	for _, t := range fincoach.ScenarioTypes {
		types = append(types, string(t))
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"simulate": {Flags: map[string]complete.Predictor{
				"t":      types,
				"name":   predict.Something,
				"months": predict.Something,
				"n":      predict.Something,
			}},
			"run": {Flags: map[string]complete.Predictor{
				"passes":             predict.Something,
				"scenarios":          predict.Something,
				"no-recommendations": predict.Nothing,
			}},
			"whatif": {Flags: map[string]complete.Predictor{
				"f":            predict.Files("*"),
				"income":       predict.Something,
				"expenses":     predict.Something,
				"savings":      predict.Something,
				"debt-payment": predict.Something,
				"months":       predict.Something,
			}},
			"history": {Flags: map[string]complete.Predictor{
				"n": predict.Something,
			}},
			"topic": {Args: predict.Set{"readme", "context", "scenarios", "coaching", "whatif", "history", "*"}},
		},
		Flags: map[string]complete.Predictor{
			"config":  files,
			"context": files,
			"journal": files,
			"offline": predict.Nothing,
		},
	}
}
