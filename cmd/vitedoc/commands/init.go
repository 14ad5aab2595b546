package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"git.home.luguber.info/inful/vitedoc/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Directory for the generated vitedoc.yaml"`

	stdout io.Writer
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	cfgPath := root.Config
	if i.Output != "" {
		cfgPath = filepath.Join(i.Output, DefaultConfigPath)
	}
	w := out(i.stdout)
	fmt.Fprintf(w, "Writing configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		return err
	}
	fmt.Fprintln(w, "initialized successfully")
	return nil
}
