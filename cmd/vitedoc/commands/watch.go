package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/vitedoc/internal/config"
	"git.home.luguber.info/inful/vitedoc/internal/logfields"
	"git.home.luguber.info/inful/vitedoc/internal/watch"
)

// WatchCmd implements the 'watch' command. It always renders incrementally.
type WatchCmd struct {
	RenderFlags

	Debounce string `help:"Quiet period before re-rendering (default from config)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	w.Incremental = true
	if w.Debounce != "" {
		cfg.Watch.Debounce = w.Debounce
	}
	if err := w.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if report, err := RunRender(ctx, cfg, g.Logger); err != nil {
		g.Logger.Warn("Initial render failed", logfields.Error(err))
	} else {
		g.Logger.Info("Initial render finished", "summary", report.Summary())
	}

	files := []string{cfg.Input.Path}
	if _, err := os.Stat(root.Config); err == nil {
		files = append(files, root.Config)
	}
	watcher, err := watch.New(files, func(ctx context.Context) error {
		current := cfg
		if len(files) > 1 {
			reloaded, err := config.Load(root.Config)
			if err != nil {
				return err
			}
			if err := w.apply(reloaded); err != nil {
				return err
			}
			current = reloaded
		}
		report, err := RunRender(ctx, current, g.Logger)
		if err != nil {
			return err
		}
		g.Logger.Info("Re-render finished", "summary", report.Summary())
		return nil
	}, watch.WithDebounce(cfg.Watch.DebounceDuration()), watch.WithLogger(g.Logger))
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
