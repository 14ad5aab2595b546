package vitepress

import (
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/metrics"
)

// Defaults applied by Options.WithDefaults.
const (
	DefaultOutputDir   = "./docs/.vitepress/api"
	DefaultBaseURL     = "/"
	DefaultTitle       = "API Documentation"
	DefaultDescription = "Auto-generated API documentation"
	DefaultSidebarPath = "../config/sidebar.json"
	IndexFile          = "index.md"
)

// Options configures a Renderer.
type Options struct {
	OutputDir   string
	BaseURL     string
	Title       string
	Description string
	Incremental bool

	// SidebarPath is the sidebar file relative to OutputDir. It may climb
	// one level to sit next to the output directory.
	SidebarPath string
	// SidebarCollapsed renders sidebar groups collapsed.
	SidebarCollapsed bool
	// Concurrency bounds parallel page preparation. Writes stay sequential.
	Concurrency int
	// PruneExclude lists doublestar patterns of documents never pruned.
	PruneExclude []string
	// ReportPath, when set, receives the run report as JSON.
	ReportPath string
}

// WithDefaults returns a copy with empty fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Description == "" {
		o.Description = DefaultDescription
	}
	if o.SidebarPath == "" {
		o.SidebarPath = DefaultSidebarPath
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	return o
}

// Validate checks option values that cannot be defaulted.
func (o Options) Validate() error {
	for _, p := range o.PruneExclude {
		if !doublestar.ValidatePattern(p) {
			return errors.ValidationError("invalid prune exclude pattern").
				WithContext("pattern", p).Build()
		}
	}
	return nil
}

// Mode returns the reconciliation mode implied by Incremental.
func (o Options) Mode() Mode {
	if o.Incremental {
		return ModeIncremental
	}
	return ModeFull
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(rd *Renderer) {
		rd.logger = loggerOrDefault(l)
	}
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id string) Option {
	return func(rd *Renderer) {
		rd.runID = id
	}
}
