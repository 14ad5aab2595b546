package config

import (
	"time"

	"git.home.luguber.info/inful/vitedoc/internal/vitepress"
)

// Defaults not owned by the renderer.
const (
	DefaultInputPath     = "./docs/api.json"
	DefaultWatchDebounce = 300 * time.Millisecond
)

// ApplyDefaults fills empty fields.
func ApplyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Output.Directory == "" {
		c.Output.Directory = vitepress.DefaultOutputDir
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = vitepress.DefaultBaseURL
	}
	if c.Site.Title == "" {
		c.Site.Title = vitepress.DefaultTitle
	}
	if c.Site.Description == "" {
		c.Site.Description = vitepress.DefaultDescription
	}
	if c.Sidebar.Path == "" {
		c.Sidebar.Path = vitepress.DefaultSidebarPath
	}
	if c.Render.Concurrency == 0 {
		c.Render.Concurrency = 1
	}
	if c.Watch.Debounce == "" {
		c.Watch.Debounce = DefaultWatchDebounce.String()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	ApplyDefaults(c)
	return c
}

// RendererOptions maps the configuration onto renderer options.
func (c *Config) RendererOptions() vitepress.Options {
	return vitepress.Options{
		OutputDir:        c.Output.Directory,
		BaseURL:          c.Site.BaseURL,
		Title:            c.Site.Title,
		Description:      c.Site.Description,
		Incremental:      c.Output.Incremental,
		SidebarPath:      c.Sidebar.Path,
		SidebarCollapsed: c.Sidebar.Collapsed,
		Concurrency:      c.Render.Concurrency,
		PruneExclude:     append([]string(nil), c.Prune.Exclude...),
		ReportPath:       c.Output.Report,
	}
}
