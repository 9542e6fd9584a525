package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"runbook-hq/runbook/pkg/cli"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".runbook.toml")
	content := `
[logging]
level = "debug"
format = "json"

[lint]
show_content = false
color = "never"
max_line_width = 120

[watch]
debounce_ms = 250
extensions = [".yaml"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Lint.ShowContent {
		t.Error("Lint.ShowContent = true, want false")
	}
	if cfg.Lint.MaxLineWidth != 120 {
		t.Errorf("Lint.MaxLineWidth = %d, want 120", cfg.Lint.MaxLineWidth)
	}
	if cfg.Watch.DebounceMS != 250 {
		t.Errorf("Watch.DebounceMS = %d, want 250", cfg.Watch.DebounceMS)
	}
	// Unset sections keep their defaults.
	if cfg.History.Path != ".runbook-history.db" {
		t.Errorf("History.Path = %q, want default", cfg.History.Path)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".runbook.toml")
	if err := os.WriteFile(path, []byte("[lint]\ncolor = \"sometimes\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() accepted invalid color value")
	}

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %T, want *cli.ConfigError", err)
	}
	if cfgErr.Field != "lint.color" {
		t.Errorf("Field = %q, want lint.color", cfgErr.Field)
	}
}

func TestValidate_ReportsField(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		field string
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"width", func(c *Config) { c.Lint.MaxLineWidth = -1 }, "lint.max_line_width"},
		{"debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, "watch.debounce_ms"},
		{"extensions", func(c *Config) { c.Watch.Extensions = nil }, "watch.extensions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)

			var cfgErr *cli.ConfigError
			if err := cfg.Validate(); !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *cli.ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("RUNBOOK_LOG_LEVEL", "error")
	t.Setenv("RUNBOOK_SHOW_CONTENT", "false")

	cfg, err := LoadWithEnvOverrides("")
	if err != nil {
		t.Fatalf("LoadWithEnvOverrides() failed: %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
	if cfg.Lint.ShowContent {
		t.Error("Lint.ShowContent = true, want false from env")
	}
}

func TestLoadWithEnvOverrides_InvalidEnv(t *testing.T) {
	t.Setenv("RUNBOOK_LOG_LEVEL", "loud")

	if _, err := LoadWithEnvOverrides(""); err == nil {
		t.Error("LoadWithEnvOverrides() accepted invalid env level")
	}
}

func TestGlobalConfig(t *testing.T) {
	defer Set(nil)

	// Without Initialize, Get falls back to defaults.
	if got := Get().Lint.Color; got != "auto" {
		t.Errorf("Get().Lint.Color = %q, want auto", got)
	}

	custom := DefaultConfig()
	custom.Lint.Color = "never"
	Set(custom)

	if Get() != custom {
		t.Error("Get() did not return installed config")
	}
}
