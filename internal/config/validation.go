package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/vitedoc/internal/foundation/errors"
	"git.home.luguber.info/inful/vitedoc/internal/storage"
)

// Validate checks a defaulted configuration.
func Validate(c *Config) error {
	if reason := unsafeOutputDir(c.Output.Directory, c.Input.Path); reason != "" {
		return invalid("output.directory", c.Output.Directory, reason)
	}
	if !strings.HasPrefix(c.Site.BaseURL, "/") && !strings.Contains(c.Site.BaseURL, "://") {
		return invalid("site.base_url", c.Site.BaseURL, "must be absolute (start with / or a scheme)")
	}
	if _, err := storage.CleanName(c.Sidebar.Path); err != nil {
		return invalid("sidebar.path", c.Sidebar.Path, err.Error())
	}
	if !strings.HasSuffix(c.Sidebar.Path, ".json") {
		return invalid("sidebar.path", c.Sidebar.Path, "must be a .json file")
	}
	for _, p := range c.Prune.Exclude {
		if !doublestar.ValidatePattern(p) {
			return invalid("prune.exclude", p, "invalid glob pattern")
		}
	}
	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil || d <= 0 {
		return invalid("watch.debounce", c.Watch.Debounce, "must be a positive duration")
	}
	return nil
}

// unsafeOutputDir explains why dir cannot be wiped by a full render, or
// returns "" when it can.
func unsafeOutputDir(dir, input string) string {
	if strings.TrimSpace(dir) == "" {
		return "must not be empty"
	}
	out, err := filepath.Abs(dir)
	if err != nil {
		return err.Error()
	}
	if filepath.Dir(out) == out {
		return "must not be a filesystem root"
	}
	if cwd, err := os.Getwd(); err == nil && within(out, cwd) {
		return "must not be the working directory or one of its parents"
	}
	if input != "" {
		if in, err := filepath.Abs(input); err == nil && within(out, in) {
			return "must not contain input.path"
		}
	}
	return ""
}

// within reports whether target is dir or lies below it.
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func invalid(field, value, reason string) error {
	return errors.ValidationError(fmt.Sprintf("invalid %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		UserAction().
		Build()
}
