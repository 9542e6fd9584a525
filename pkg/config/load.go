package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the TOML file at path, applies defaults
// for unset values, and validates the result. A missing file is not an
// error: defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads configuration and applies RUNBOOK_*
// environment overrides on top of the file values.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNBOOK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RUNBOOK_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RUNBOOK_COLOR"); v != "" {
		cfg.Lint.Color = v
	}
	if v := os.Getenv("RUNBOOK_SHOW_CONTENT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Lint.ShowContent = b
		}
	}
	if v := os.Getenv("RUNBOOK_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}
