package config

// Config is the root configuration for the runbook tool.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Lint    LintConfig    `toml:"lint"`
	Watch   WatchConfig   `toml:"watch"`
	History HistoryConfig `toml:"history"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `toml:"level"`

	// Format is the log output format: json, text, console.
	Format string `toml:"format"`
}

// LintConfig configures diagnostic rendering.
type LintConfig struct {
	// ShowContent controls whether diagnostics may echo file content.
	// Disable for runbooks containing sensitive values.
	ShowContent bool `toml:"show_content"`

	// Color controls terminal colors: auto, always, never.
	Color string `toml:"color"`

	// MaxLineWidth truncates echoed offending lines wider than this
	// many terminal cells. Zero disables truncation.
	MaxLineWidth int `toml:"max_line_width"`
}

// WatchConfig configures the file watcher used by lint --watch.
type WatchConfig struct {
	// DebounceMS is the quiet period after a file event before
	// re-linting, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// Extensions lists the file extensions to watch.
	Extensions []string `toml:"extensions"`
}

// HistoryConfig configures the lint-run history store.
type HistoryConfig struct {
	// Path is the SQLite database file used by lint --record.
	Path string `toml:"path"`
}
