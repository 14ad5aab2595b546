package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/vitedoc/internal/config"
	"git.home.luguber.info/inful/vitedoc/internal/docmodel"
	"git.home.luguber.info/inful/vitedoc/internal/logfields"
	"git.home.luguber.info/inful/vitedoc/internal/metrics"
	"git.home.luguber.info/inful/vitedoc/internal/storage"
	"git.home.luguber.info/inful/vitedoc/internal/vitepress"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	RenderFlags

	stdout io.Writer
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := RunRender(ctx, cfg, g.Logger)
	if report != nil {
		fmt.Fprintln(out(r.stdout), report.Summary())
	}
	return err
}

// RunRender loads the project named by cfg and renders it once.
func RunRender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*vitepress.Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	project, err := docmodel.LoadProject(cfg.Input.Path)
	if err != nil {
		return nil, err
	}

	recorder, prom := newRecorder(cfg)
	store := storage.NewFSStore(cfg.Output.Directory)
	renderer := vitepress.New(cfg.RendererOptions(), store,
		vitepress.WithLogger(logger),
		vitepress.WithRecorder(recorder),
	)
	report, renderErr := renderer.Render(ctx, project)

	if prom != nil {
		if err := prom.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	return report, renderErr
}

// newRecorder returns the recorder for a run. The Prometheus recorder is
// non-nil only when a metrics textfile is configured.
func newRecorder(cfg *config.Config) (metrics.Recorder, *metrics.PrometheusRecorder) {
	if cfg.Metrics.Textfile == "" {
		return metrics.NoopRecorder{}, nil
	}
	prom := metrics.NewPrometheusRecorder(nil)
	return prom, prom
}

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stdout
}
