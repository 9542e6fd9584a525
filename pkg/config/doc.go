// Package config loads the runbook tool's own configuration.
//
// The configuration file is TOML (conventionally .runbook.toml), not
// YAML: the tool exists to lint YAML runbooks, and keeping its own
// config in a different format means it can never be confused with a
// runbook document. Values can be overridden with RUNBOOK_* environment
// variables. A validated configuration can be installed as a guarded
// process-wide instance for code paths without injection.
package config
