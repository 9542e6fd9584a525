package logging

import "sync"

var (
	// defaultLogger holds the process-wide logger instance.
	defaultLogger *Logger

	// defaultMutex protects access to defaultLogger.
	defaultMutex sync.Mutex
)

// Default returns the process-wide logger, constructing a text-format
// info-level logger on first use. It never fails: the fallback
// configuration is always valid.
//
// For testing, prefer injecting an explicit *Logger and use SetDefault
// only where injection is impractical.
func Default() *Logger {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	if defaultLogger == nil {
		built, err := New(Config{})
		if err != nil {
			// Unreachable with the zero config; guard anyway.
			panic("logging: default logger construction failed: " + err.Error())
		}
		defaultLogger = built
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger. Passing nil resets it so
// the next Default call reconstructs the fallback. Thread-safe.
func SetDefault(l *Logger) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultLogger = l
}
