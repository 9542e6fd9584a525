package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"runbook-hq/runbook/internal/textconv"
)

// Sentinel source identifiers for input that did not come from a real
// file. The diagnostic engine never touches the filesystem for these.
const (
	// SourceString marks content parsed from an in-memory buffer.
	SourceString = "<string>"
	// SourceUnicode marks content parsed from an in-memory decoded string.
	SourceUnicode = "<unicode>"
)

// Resolver failure conditions. Both are recoverable: the classifier maps
// them to a short fallback sentence instead of propagating.
var (
	// ErrContextUnreadable indicates the source file could not be opened
	// or read.
	ErrContextUnreadable = errors.New("could not read source file")

	// ErrLineOutOfRange indicates the requested line (after walking
	// backward over blank lines) no longer exists in the file.
	ErrLineOutOfRange = errors.New("line no longer in file")
)

// IsNonFileSource reports whether source is one of the reserved
// identifiers for in-memory input.
func IsNonFileSource(source string) bool {
	return source == SourceString || source == SourceUnicode
}

// ErrorLines returns the line of path at the given 0-based index and the
// line immediately preceding it, to provide context for an error
// reported at that position.
//
// An index at or past the end of the file is clamped to the last line:
// YAML loaders often report the very last line as the error location.
// If the indexed line is blank, the search walks backward to the nearest
// non-blank line, so the echoed context is never just whitespace. The
// preceding line is empty when the target is the first line of the file.
//
// Lines are returned verbatim, including trailing newlines; callers
// strip what they do not want.
func ErrorLines(path string, index int) (target, prev string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrContextUnreadable, err)
	}
	text, err := textconv.DecodeText(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrContextUnreadable, err)
	}

	lines := splitLines(text)
	if len(lines) == 0 || index < 0 {
		return "", "", ErrLineOutOfRange
	}
	if index >= len(lines) {
		index = len(lines) - 1
	}

	for strings.TrimSpace(lines[index]) == "" {
		index--
		if index < 0 {
			return "", "", ErrLineOutOfRange
		}
	}

	target = lines[index]
	if index > 0 {
		prev = lines[index-1]
	}
	return target, prev, nil
}

// splitLines splits text into lines that keep their trailing newline,
// matching how the positions reported by the YAML loader count lines. A
// trailing newline does not produce a phantom empty final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
