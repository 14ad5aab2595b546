package commands

import "git.home.luguber.info/inful/vitedoc/internal/config"

// RenderFlags are the configuration overrides shared by render and watch.
type RenderFlags struct {
	Input       string   `arg:"" optional:"" help:"TypeDoc JSON file (default from config)" type:"path"`
	Output      string   `short:"o" help:"Output directory (default from config)"`
	BaseURL     string   `name:"base-url" help:"Link prefix for generated documents"`
	Title       string   `help:"Index document title"`
	Description string   `help:"Index document description"`
	Incremental bool     `short:"i" help:"Keep existing output; skip unchanged documents and prune stale ones"`
	Sidebar     string   `help:"Sidebar file relative to the output directory"`
	Collapsed   bool     `help:"Render sidebar groups collapsed"`
	Exclude     []string `help:"Glob patterns of documents never pruned" sep:","`
	Concurrency int      `help:"Parallel page preparation (writes stay sequential)"`
	Report      string   `help:"Write the JSON run report to this path"`
	MetricsFile string   `name:"metrics-file" help:"Write Prometheus metrics in text format to this path"`
}

// apply overlays non-zero flags onto cfg and revalidates it.
func (f *RenderFlags) apply(cfg *config.Config) error {
	if f.Input != "" {
		cfg.Input.Path = f.Input
	}
	if f.Output != "" {
		cfg.Output.Directory = f.Output
	}
	if f.BaseURL != "" {
		cfg.Site.BaseURL = f.BaseURL
	}
	if f.Title != "" {
		cfg.Site.Title = f.Title
	}
	if f.Description != "" {
		cfg.Site.Description = f.Description
	}
	if f.Incremental {
		cfg.Output.Incremental = true
	}
	if f.Sidebar != "" {
		cfg.Sidebar.Path = f.Sidebar
	}
	if f.Collapsed {
		cfg.Sidebar.Collapsed = true
	}
	if len(f.Exclude) > 0 {
		cfg.Prune.Exclude = append(cfg.Prune.Exclude, f.Exclude...)
	}
	if f.Concurrency > 0 {
		cfg.Render.Concurrency = f.Concurrency
	}
	if f.Report != "" {
		cfg.Output.Report = f.Report
	}
	if f.MetricsFile != "" {
		cfg.Metrics.Textfile = f.MetricsFile
	}
	return config.Validate(cfg)
}
