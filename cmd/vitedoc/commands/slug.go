package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/vitedoc/internal/slug"
)

// SlugCmd implements the 'slug' command.
type SlugCmd struct {
	Names []string `arg:"" help:"Symbol names"`
	Dir   string   `help:"Also print the file path under this directory"`

	stdout io.Writer
}

func (s *SlugCmd) Run(_ *Global, _ *CLI) error {
	w := out(s.stdout)
	for _, name := range s.Names {
		if s.Dir != "" {
			fmt.Fprintf(w, "%s\t%s\t%s\n", name, slug.Generate(name), slug.FilePath(name, s.Dir))
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", name, slug.Generate(name))
	}
	return nil
}
