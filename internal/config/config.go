// Package config loads vitedoc configuration files.
//
// Files are YAML or TOML, chosen by extension. Environment variables from
// .env and .env.local are loaded first (never overriding the process
// environment) and ${VAR} references in the file are expanded before
// decoding. Loading runs normalize → defaults → validate.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
)

// CurrentVersion is the only configuration version understood by Load.
const CurrentVersion = "1"

// Config is the complete vitedoc configuration.
type Config struct {
	Version string        `yaml:"version" toml:"version"`
	Input   InputConfig   `yaml:"input" toml:"input"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Site    SiteConfig    `yaml:"site" toml:"site"`
	Sidebar SidebarConfig `yaml:"sidebar" toml:"sidebar"`
	Prune   PruneConfig   `yaml:"prune" toml:"prune"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// InputConfig locates the TypeDoc JSON export.
type InputConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// OutputConfig controls the output directory and reconciliation mode.
type OutputConfig struct {
	Directory   string `yaml:"directory" toml:"directory"`
	Incremental bool   `yaml:"incremental" toml:"incremental"`
	// Report is an optional path receiving the JSON run report.
	Report string `yaml:"report,omitempty" toml:"report,omitempty"`
}

// SiteConfig holds values rendered into the index document and links.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url" toml:"base_url"`
	Title       string `yaml:"title" toml:"title"`
	Description string `yaml:"description" toml:"description"`
}

// SidebarConfig controls the sidebar file.
type SidebarConfig struct {
	// Path is relative to the output directory and may climb one level.
	Path      string `yaml:"path" toml:"path"`
	Collapsed bool   `yaml:"collapsed" toml:"collapsed"`
}

// PruneConfig lists documents incremental runs must never delete.
type PruneConfig struct {
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
}

// RenderConfig tunes page preparation.
type RenderConfig struct {
	Concurrency int `yaml:"concurrency" toml:"concurrency"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce string `yaml:"debounce" toml:"debounce"`
}

// DebounceDuration parses Debounce, falling back to DefaultWatchDebounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return DefaultWatchDebounce
	}
	return d
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" toml:"level"`
	Format LogFormat `yaml:"format" toml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" toml:"textfile,omitempty"`
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the syntax from the file extension. Unknown extensions are YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, expands, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	// #nosec G304 - path comes from the command line
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).UserAction().Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(FormatFor(configPath), []byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data in the given format and runs normalization, defaults and validation.
func Parse(format Format, data []byte) (*Config, error) {
	var cfg Config
	if err := decode(format, data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").
			WithContext("format", string(format)).Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).
			UserAction().Build()
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(format Format, data []byte, cfg *Config) error {
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(cfg)
	}
}
