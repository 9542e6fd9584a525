package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

// ColorMode controls when the renderer emits ANSI color codes.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // color when stdout is a terminal
	ColorAlways ColorMode = "always" // force color
	ColorNever  ColorMode = "never"  // plain text
)

// Renderer writes lint results and diagnostics for human consumption.
type Renderer struct {
	w        io.Writer
	maxWidth int

	headerColor *color.Color
	errColor    *color.Color
	warnColor   *color.Color
	okColor     *color.Color
	dimColor    *color.Color
}

// NewRenderer creates a renderer writing to w. maxWidth caps the display
// width of echoed source lines; zero means no cap. mode selects color
// behavior; ColorAuto defers to the color package's terminal detection.
func NewRenderer(w io.Writer, maxWidth int, mode ColorMode) *Renderer {
	r := &Renderer{
		w:           w,
		maxWidth:    maxWidth,
		headerColor: color.New(color.Bold),
		errColor:    color.New(color.FgRed, color.Bold),
		warnColor:   color.New(color.FgYellow),
		okColor:     color.New(color.FgGreen),
		dimColor:    color.New(color.Faint),
	}
	switch mode {
	case ColorAlways:
		for _, c := range r.colors() {
			c.EnableColor()
		}
	case ColorNever:
		for _, c := range r.colors() {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) colors() []*color.Color {
	return []*color.Color{r.headerColor, r.errColor, r.warnColor, r.okColor, r.dimColor}
}

// File prints the per-file header line.
func (r *Renderer) File(path string) {
	fmt.Fprintln(r.w, r.headerColor.Sprint(path))
}

// OK prints the passing marker for a file.
func (r *Renderer) OK(path string) {
	fmt.Fprintf(r.w, "%s %s\n", r.okColor.Sprint("ok"), path)
}

// Error prints a single runbook error, echoing any diagnostic context it
// carries. Source lines inside the context are truncated to the
// renderer's width.
func (r *Renderer) Error(err *rblerrors.Error) {
	fmt.Fprintf(r.w, "%s %s\n", r.errColor.Sprintf("[%s]", err.Type), err.Message)
	if err.Location.IsValid() {
		fmt.Fprintf(r.w, "  %s %s\n", r.dimColor.Sprint("-->"), err.Location.String())
	}
	if err.Context != "" {
		fmt.Fprintln(r.w)
		for _, line := range strings.Split(strings.TrimRight(err.Context, "\n"), "\n") {
			fmt.Fprintln(r.w, "  "+r.truncate(line))
		}
	}
	if err.Suggestion != "" {
		fmt.Fprintf(r.w, "  %s %s\n", r.warnColor.Sprint("= suggestion:"), err.Suggestion)
	}
}

// Diagnosis prints a rendered parse-failure diagnosis on its own.
func (r *Renderer) Diagnosis(d rblerrors.Diagnosis) {
	for _, line := range strings.Split(strings.TrimRight(d.Render(), "\n"), "\n") {
		fmt.Fprintln(r.w, r.truncate(line))
	}
}

// Summary prints the closing counts line.
func (r *Renderer) Summary(files, failed int) {
	if failed == 0 {
		fmt.Fprintf(r.w, "\n%s\n", r.okColor.Sprintf("%d file(s) checked, all passed", files))
		return
	}
	fmt.Fprintf(r.w, "\n%s\n", r.errColor.Sprintf("%d file(s) checked, %d failed", files, failed))
}

// truncate caps a line at the renderer's display width, accounting for
// wide runes. Truncated lines end with an ellipsis.
func (r *Renderer) truncate(line string) string {
	if r.maxWidth <= 0 || runewidth.StringWidth(line) <= r.maxWidth {
		return line
	}
	return runewidth.Truncate(line, r.maxWidth, "...")
}
