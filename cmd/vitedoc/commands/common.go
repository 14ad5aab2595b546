// Package commands implements the vitedoc CLI.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/vitedoc/internal/config"
)

// DefaultConfigPath is used when --config is not given. A missing default
// file is not an error.
const DefaultConfigPath = "vitedoc.yaml"

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "VITEDOC_LOG_LEVEL"

// Global carries shared state into subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (YAML or TOML)" default:"vitedoc.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text|json); overrides config"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Render a TypeDoc JSON export into VitePress documents" default:"withargs"`
	Watch  WatchCmd  `cmd:"" help:"Render, then re-render incrementally whenever the input changes"`
	Verify VerifyCmd `cmd:"" help:"Check sidebar and index links of a rendered output directory"`
	Slug   SlugCmd   `cmd:"" help:"Print the slug and file name generated for symbol names"`
	Init   InitCmd   `cmd:"" help:"Write an example configuration file"`

	stderr io.Writer
}

// AfterApply runs after flag parsing; sets up logging once. The level is
// refined by configureLogging when a configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(c.errOut(), bootstrapLevel(c.Verbose), config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

func (c *CLI) errOut() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

func bootstrapLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if raw := os.Getenv(LogLevelEnv); raw != "" {
		return config.NormalizeLogLevel(raw).SlogLevel()
	}
	return slog.LevelInfo
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig loads --config, falling back to defaults when the default
// file does not exist. Logging is reconfigured from the result.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(root.Config); os.IsNotExist(err) && root.Config == DefaultConfigPath {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	configureLogging(g, root, cfg)
	return cfg, nil
}

func configureLogging(g *Global, root *CLI, cfg *config.Config) {
	level := cfg.Logging.Level.SlogLevel()
	if root.Verbose || os.Getenv(LogLevelEnv) != "" {
		level = bootstrapLevel(root.Verbose)
	}
	format := cfg.Logging.Format
	if root.LogFormat != "" {
		format = config.NormalizeLogFormat(root.LogFormat)
	}
	logger := newLogger(root.errOut(), level, format)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
}
