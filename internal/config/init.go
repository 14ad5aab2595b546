package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
)

// Example returns the configuration written by Init.
func Example() *Config {
	c := Default()
	c.Input.Path = "./docs/api.json"
	c.Output.Incremental = true
	c.Output.Report = "./.vitedoc/report.json"
	c.Site.BaseURL = "/api/"
	c.Prune.Exclude = []string{"guide-*.md"}
	return c
}

// Init writes an example configuration file. The format follows the extension.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).UserAction().Build()
	}

	data, err := Marshal(FormatFor(configPath), Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	// #nosec G306 - configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}

// Marshal encodes c in the given format.
func Marshal(format Format, c *Config) ([]byte, error) {
	if format == FormatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(c)
}
