package ast

import "fmt"

// Location represents the source position of a node in the original
// runbook file. Line and column are 1-based.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns a human-readable "file:line:column" representation.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has usable file and line
// information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
