// Package logging provides structured logging for the runbook tool,
// built on log/slog.
//
// The diagnostic engine and the loader take a *Logger as an explicit
// dependency and use it only for best-effort warnings; nothing in the
// module depends on log output for correctness. A process-wide default
// is available through Default for code paths without an injected
// logger, lazily constructed on first use.
package logging
