// Package parser loads runbook YAML files into the AST.
//
// Parsing goes through yaml.Node decoding so every play and task keeps
// its source position. When the YAML loader rejects the input outright,
// the parser bridges the reported position into the diagnostic engine
// and attaches the rendered explanation to the returned error.
package parser
