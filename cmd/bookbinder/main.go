package main

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookbinder/cmd/bookbinder/commands"
	"git.home.luguber.info/inful/bookbinder/internal/errors"
	"git.home.luguber.info/inful/bookbinder/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("bookbinder"),
		kong.Description("Assembles a component library's documentation book from its sources, demos and release artifacts."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("bookbinder %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	global := &commands.Global{Logger: slog.Default(), Verbose: cli.Verbose}

	if err := ctx.Run(global); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
		adapter.HandleError(err)
	}
}
