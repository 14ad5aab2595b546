package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vitedoc/cmd/vitedoc/commands"
	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("vitedoc"),
		kong.Description("Render TypeDoc JSON into VitePress API documentation"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default()}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
