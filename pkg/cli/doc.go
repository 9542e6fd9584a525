// Package cli provides shared building blocks for the runbook command
// line: typed command errors, output formatters, and terminal rendering
// of diagnostics.
package cli
