// Package rbl provides parsing, validation, and failure diagnostics for
// the Runbook Language (RBL).
//
// RBL is a declarative YAML format describing ordered automation: a
// runbook contains plays, and plays contain tasks. This package tree
// does not execute runbooks; it loads them and explains what is wrong
// with them.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - ast: node types for parsed runbooks, with source locations
//   - parser: YAML parsing and AST construction
//   - validator: structural and semantic validation
//   - errors: error types and the parse-failure diagnostic engine
//
// # Basic Usage
//
// Parse and validate a runbook:
//
//	p := parser.NewParser()
//	rb, err := p.Parse("runbooks/deploy.yaml")
//	if err != nil {
//	    log.Fatal(err) // includes the rendered diagnostic
//	}
//
//	v := validator.NewValidator()
//	if err := v.Validate(rb); err != nil {
//	    log.Fatal(err)
//	}
package rbl
