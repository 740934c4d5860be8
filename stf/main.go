package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/ycwu/stockfolio/cmd"
)

func main() {
	// Shell completion: handles the COMP_LINE protocol and exits early
	// when invoked by the shell.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"l": predict.Files("*.jsonl"),
			"q": predict.Files("*.json"),
		},
	}
	for _, c := range cmd.Commands {
		completion.Sub[c.Name()] = &complete.Command{}
	}
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
