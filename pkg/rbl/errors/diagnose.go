package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DiagnosticRequest describes a parse failure position to be explained.
// It is the complete input of the diagnostic engine: classification is a
// pure function of the request and one read of the named source file.
type DiagnosticRequest struct {
	// Source identifies the input. It is usually a file path; the
	// reserved sentinels SourceString and SourceUnicode mark in-memory
	// input and suppress all file access.
	Source string

	// Line is the 1-based line reported by the loader. It may point past
	// the end of the file.
	Line int

	// Column is the 1-based column reported by the loader.
	Column int

	// ShowContent controls whether file content may be read and echoed.
	// Callers set it to false for sensitive files (vaulted secrets and
	// the like); only the positional header is produced then.
	ShowContent bool
}

// Note identifies one fixed heuristic message appended to a diagnostic.
type Note int

// The heuristic notes, in the order they are evaluated and appended.
const (
	NoteLeadingTab Note = iota
	NoteUnquotedVariable
	NoteDictMarker
	NoteUnquotedColon
	NotePartiallyQuoted
	NoteUnbalancedQuotes
	NoteShorthandMix
)

// String returns a stable label for the note, suitable for metrics.
func (n Note) String() string {
	switch n {
	case NoteLeadingTab:
		return "leading-tab"
	case NoteUnquotedVariable:
		return "unquoted-variable"
	case NoteDictMarker:
		return "dict-marker"
	case NoteUnquotedColon:
		return "unquoted-colon"
	case NotePartiallyQuoted:
		return "partially-quoted"
	case NoteUnbalancedQuotes:
		return "unbalanced-quotes"
	case NoteShorthandMix:
		return "shorthand-mix"
	default:
		return "unknown"
	}
}

// text returns the fixed message for the note.
func (n Note) text() string {
	switch n {
	case NoteLeadingTab:
		return noteLeadingTab
	case NoteUnquotedVariable:
		return noteUnquotedVariable
	case NoteDictMarker:
		return noteDictMarker
	case NoteUnquotedColon:
		return noteUnquotedColon
	case NotePartiallyQuoted:
		return notePartiallyQuoted
	case NoteUnbalancedQuotes:
		return noteUnbalancedQuotes
	case NoteShorthandMix:
		return noteShorthandMix
	default:
		return ""
	}
}

// Diagnosis is the tagged result of classifying a DiagnosticRequest.
// Exactly one of the concrete types below is returned; all render into
// the same one-string output shape.
type Diagnosis interface {
	// Render produces the final multi-line diagnostic text.
	Render() string

	diagnosis()
}

// HeaderDiagnosis carries only the positional header. Produced when
// content display is suppressed or the source is not a real file.
type HeaderDiagnosis struct {
	Source string
	Line   int
	Column int
}

// FallbackDiagnosis carries the positional header plus one fixed
// sentence explaining why the file context could not be shown.
type FallbackDiagnosis struct {
	Source string
	Line   int
	Column int

	// reason is one of the fixed fallback sentences.
	reason string
}

// ShorthandDiagnosis reports key=value shorthand mixed with YAML mapping
// syntax on the line preceding the reported failure. It rewrites the
// reported position to point at the '=' sign of the shorthand line.
type ShorthandDiagnosis struct {
	Source string
	// Line and Column point at the shorthand line and its '=' sign, not
	// at the position originally reported by the loader.
	Line   int
	Column int

	// Offending is the shorthand line, right-trimmed.
	Offending string
}

// StandardDiagnosis echoes the offending line with its predecessor and a
// caret at the reported column, plus zero or more heuristic notes.
type StandardDiagnosis struct {
	Source string
	Line   int
	Column int

	// Prev and Target are the context lines, right-trimmed.
	Prev   string
	Target string

	// Notes lists the heuristics that fired, in evaluation order. Empty
	// is a legitimate outcome: header and caret block only.
	Notes []Note
}

func (HeaderDiagnosis) diagnosis()    {}
func (FallbackDiagnosis) diagnosis()  {}
func (ShorthandDiagnosis) diagnosis() {}
func (StandardDiagnosis) diagnosis()  {}

// shorthandRe matches a single unquoted key=value assignment: word
// characters, optional whitespace, '=', optional whitespace, then
// word/path characters. Deliberately this narrow; a looser "any
// assignment" matcher over-fires on legitimate YAML scalars.
var shorthandRe = regexp.MustCompile(`\w+(\s+)?=(\s+)?[\w/-]+`)

// Explain classifies the request and renders the diagnostic in one step.
func Explain(req DiagnosticRequest) string {
	return Classify(req).Render()
}

// Classify resolves the source context for the request and runs the
// heuristic battery over it. It never fails: every internal error
// degrades to a shorter diagnosis.
func Classify(req DiagnosticRequest) Diagnosis {
	if !req.ShowContent || IsNonFileSource(req.Source) {
		return HeaderDiagnosis{Source: req.Source, Line: req.Line, Column: req.Column}
	}

	// The loader reports the line after the construct that failed, so
	// context resolution targets the line before the reported one.
	target, prev, err := ErrorLines(req.Source, req.Line-1)
	if err != nil {
		reason := fallbackCannotOpen
		if errors.Is(err, ErrLineOutOfRange) {
			reason = fallbackLineChanged
		}
		return FallbackDiagnosis{Source: req.Source, Line: req.Line, Column: req.Column, reason: reason}
	}

	// Shorthand mixed with YAML dominates every other diagnosis: the
	// reported position is rewritten to the '=' sign on the previous
	// line and no further heuristic runs.
	if shorthandRe.MatchString(prev) {
		offending := strings.TrimRight(prev, " \t\r\n")
		eq := strings.Index(offending, "=")
		return ShorthandDiagnosis{
			Source:    req.Source,
			Line:      req.Line - 1,
			Column:    eq + 1,
			Offending: offending,
		}
	}

	d := StandardDiagnosis{
		Source: req.Source,
		Line:   req.Line,
		Column: req.Column,
		Prev:   strings.TrimRight(prev, " \t\r\n"),
		Target: strings.TrimRight(target, " \t\r\n"),
	}

	// Tab detection is independent of the chain below.
	if strings.Contains(target, "\t") {
		d.Notes = append(d.Notes, NoteLeadingTab)
	}

	stripped := strings.ReplaceAll(target, " ", "")
	switch {
	case strings.Contains(target, "{{") && strings.Contains(target, "}}") &&
		!(strings.Contains(target, `"{{`) && strings.Contains(target, `'{{`)):
		d.Notes = append(d.Notes, NoteUnquotedVariable)
	case strings.Contains(stripped, ":{{") && strings.Contains(stripped, "}}"):
		d.Notes = append(d.Notes, NoteDictMarker)
	case colonAtColumn(target, req.Column):
		d.Notes = append(d.Notes, NoteUnquotedColon)
	}

	d.Notes = append(d.Notes, quoteNotes(target)...)
	return d
}

// colonAtColumn reports whether the target line has an unquoted-colon
// shape: the rune at the reported column value (used directly as a
// 0-based index, the loader's off-by-one convention) is ':' and the line
// contains more than one colon overall.
func colonAtColumn(target string, column int) bool {
	runes := []rune(target)
	return len(runes) > 1 &&
		column >= 0 && column < len(runes) &&
		runes[column] == ':' &&
		strings.Count(target, ":") > 1
}

// quoteNotes inspects the first value segment after a colon for quoting
// mistakes. The partially-quoted and unbalanced-quotes conditions are
// independent; both, either, or neither may fire.
func quoteNotes(target string) []Note {
	parts := strings.Split(target, ":")
	if len(parts) < 2 {
		return nil
	}
	middle := strings.TrimSpace(parts[1])
	if middle == "" {
		return nil
	}

	var notes []Note
	if (strings.HasPrefix(middle, `'`) && !strings.HasSuffix(middle, `'`)) ||
		(strings.HasPrefix(middle, `"`) && !strings.HasSuffix(middle, `"`)) {
		notes = append(notes, NotePartiallyQuoted)
	}
	if isQuote(middle[0]) && isQuote(middle[len(middle)-1]) &&
		(strings.Count(target, `'`) > 2 || strings.Count(target, `"`) > 2) {
		notes = append(notes, NoteUnbalancedQuotes)
	}
	return notes
}

func isQuote(b byte) bool {
	return b == '\'' || b == '"'
}

// header renders the positional sentence. Rendered positions are always
// at least 1 even if a caller hands in a zero value.
func header(source string, line, column int) string {
	return fmt.Sprintf(positionDetails, source, max(line, 1), max(column, 1))
}

// caretLine builds the "^ here" pointer for a 1-based column.
func caretLine(column int) string {
	return strings.Repeat(" ", max(column, 1)-1) + "^ here"
}

// Render returns just the positional header.
func (d HeaderDiagnosis) Render() string {
	return header(d.Source, d.Line, d.Column)
}

// Render returns the positional header plus the fallback sentence.
func (d FallbackDiagnosis) Render() string {
	return header(d.Source, d.Line, d.Column) + d.reason
}

// Render points at the '=' sign of the shorthand line and appends the
// fixed mixed-syntax note.
func (d ShorthandDiagnosis) Render() string {
	var sb strings.Builder
	sb.WriteString(header(d.Source, d.Line, d.Column))
	sb.WriteString(offendingIntro)
	sb.WriteString(d.Offending)
	sb.WriteString("\n")
	sb.WriteString(caretLine(d.Column))
	sb.WriteString("\n\n")
	sb.WriteString(NoteShorthandMix.text())
	return sb.String()
}

// Render echoes the context lines with a caret at the reported column
// and appends every note that fired, in evaluation order.
func (d StandardDiagnosis) Render() string {
	var sb strings.Builder
	sb.WriteString(header(d.Source, d.Line, d.Column))
	sb.WriteString(offendingIntro)
	sb.WriteString(d.Prev)
	sb.WriteString("\n")
	sb.WriteString(d.Target)
	sb.WriteString("\n")
	sb.WriteString(caretLine(d.Column))
	sb.WriteString("\n")
	for _, n := range d.Notes {
		sb.WriteString(n.text())
	}
	return sb.String()
}
