// Package errors provides the error types for the Runbook Language (RBL)
// and the diagnostic engine that explains YAML parse failures.
//
// The diagnostic engine takes the position reported by the YAML loader
// (file, line, column) and applies a battery of heuristics over the
// offending line and the line preceding it, producing a human-readable
// explanation with a caret pointing at the failure column. The engine is
// strictly best-effort: it runs while the caller is already reporting a
// parse error, so every internal failure is converted to a shorter
// message instead of being propagated.
//
// Classification results are tagged (see Diagnosis and its
// implementations) so callers can render them, count them, or inspect
// which heuristic notes fired.
package errors
