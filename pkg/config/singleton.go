package config

import "sync"

var (
	// globalConfig holds the process-wide configuration instance.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex
)

// Initialize loads configuration from the given path with environment
// overrides and installs it as the process-wide instance. Call once at
// startup.
func Initialize(path string) error {
	cfg, err := LoadWithEnvOverrides(path)
	if err != nil {
		return err
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()
	return nil
}

// Get returns the process-wide configuration, or defaults if Initialize
// has not been called. Thread-safe.
//
// For testing, prefer dependency injection with explicit Config values
// over the global instance.
func Get() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	if globalConfig == nil {
		return DefaultConfig()
	}
	return globalConfig
}

// Set installs the given configuration as the process-wide instance.
// Primarily intended for tests. Thread-safe.
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}
