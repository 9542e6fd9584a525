package config

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Lint: LintConfig{
			ShowContent:  true,
			Color:        "auto",
			MaxLineWidth: 0,
		},
		Watch: WatchConfig{
			DebounceMS: 100,
			Extensions: []string{".yaml", ".yml"},
		},
		History: HistoryConfig{
			Path: ".runbook-history.db",
		},
	}
}
