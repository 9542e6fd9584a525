// Package ast defines the parsed representation of a runbook document.
//
// Every node carries a Location pointing back into the source file, so
// validation and diagnostics can report precise positions.
package ast
