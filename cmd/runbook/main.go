// Runbook is a linter and local executor for YAML runbook files.
//
// It parses runbook files, validates their structure, and explains YAML
// parse failures by echoing the offending line with a caret and a set
// of heuristic hints about the likely mistake.
//
// Usage:
//
//	# Lint a single runbook
//	runbook lint --file deploy.yaml
//
//	# Lint a directory, re-checking on change
//	runbook lint --dir runbooks/ --watch
//
//	# JSON output for CI
//	runbook lint --file deploy.yaml --format json
//
//	# Execute a runbook's tasks locally
//	runbook run --file deploy.yaml
//
//	# Show past lint results for a file
//	runbook history --file deploy.yaml
package main

func main() {
	Execute()
}
