package config

import "runbook-hq/runbook/pkg/cli"

// Validate checks the configuration for invalid values. Failures are
// reported as *cli.ConfigError naming the offending key.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return cli.NewConfigError("logging.level", c.Logging.Level,
			"must be one of debug, info, warn, error")
	}

	switch c.Logging.Format {
	case "json", "text", "console":
	default:
		return cli.NewConfigError("logging.format", c.Logging.Format,
			"must be one of json, text, console")
	}

	switch c.Lint.Color {
	case "auto", "always", "never":
	default:
		return cli.NewConfigError("lint.color", c.Lint.Color,
			"must be one of auto, always, never")
	}

	if c.Lint.MaxLineWidth < 0 {
		return cli.NewConfigError("lint.max_line_width", c.Lint.MaxLineWidth,
			"must not be negative")
	}
	if c.Watch.DebounceMS < 0 {
		return cli.NewConfigError("watch.debounce_ms", c.Watch.DebounceMS,
			"must not be negative")
	}
	if len(c.Watch.Extensions) == 0 {
		return cli.NewConfigError("watch.extensions", c.Watch.Extensions,
			"must list at least one extension")
	}
	return nil
}
