package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/vitedoc/internal/storage"
	"git.home.luguber.info/inful/vitedoc/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output  string `short:"o" help:"Output directory (default from config)"`
	BaseURL string `name:"base-url" help:"Link prefix used when rendering"`
	Sidebar string `help:"Sidebar file relative to the output directory"`
	JSON    bool   `help:"Print the result as JSON"`

	stdout io.Writer
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if v.Output != "" {
		cfg.Output.Directory = v.Output
	}
	if v.BaseURL != "" {
		cfg.Site.BaseURL = v.BaseURL
	}
	if v.Sidebar != "" {
		cfg.Sidebar.Path = v.Sidebar
	}

	store := storage.NewFSStore(cfg.Output.Directory)
	res, err := verify.Run(context.Background(), store, verify.Options{
		BaseURL:     cfg.Site.BaseURL,
		SidebarPath: cfg.Sidebar.Path,
	})
	if err != nil {
		return err
	}

	w := out(v.stdout)
	if v.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		for _, p := range res.Problems {
			fmt.Fprintln(w, p.String())
		}
		fmt.Fprintf(w, "verified %d documents, %d links, %d problems\n", res.Documents, res.Links, len(res.Problems))
	}
	return res.Err()
}
