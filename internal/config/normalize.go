package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures coercions applied by Normalize.
type NormalizationResult struct{ Warnings []string }

// Normalize canonicalizes enumerations and trims string fields in place.
func Normalize(c *Config) *NormalizationResult {
	res := &NormalizationResult{}
	if c == nil {
		return res
	}

	c.Input.Path = strings.TrimSpace(c.Input.Path)
	c.Output.Directory = strings.TrimSpace(c.Output.Directory)
	c.Site.BaseURL = strings.TrimSpace(c.Site.BaseURL)
	c.Sidebar.Path = strings.TrimSpace(c.Sidebar.Path)

	if raw := strings.TrimSpace(string(c.Logging.Level)); raw != "" {
		lvl, err := ParseLogLevel(raw)
		if err != nil {
			res.Warnings = append(res.Warnings, warnUnknown("logging.level", raw, string(LogLevelInfo)))
			lvl = LogLevelInfo
		}
		c.Logging.Level = lvl
	}
	if raw := strings.TrimSpace(string(c.Logging.Format)); raw != "" {
		f := NormalizeLogFormat(raw)
		if !strings.EqualFold(raw, string(f)) {
			res.Warnings = append(res.Warnings, warnUnknown("logging.format", raw, string(f)))
		}
		c.Logging.Format = f
	}

	if c.Render.Concurrency < 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("render.concurrency: negative value %d coerced to 1", c.Render.Concurrency))
		c.Render.Concurrency = 1
	}
	return res
}

func warnUnknown(field, raw, fallback string) string {
	return fmt.Sprintf("%s: unknown value %q, using %q", field, raw, fallback)
}
