package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports progress while a batch of files is checked.
type ProgressReporter interface {
	Start(total int)
	FileDone(failed bool)
	Finish()
}

// lintProgress renders a single-line progress bar for directory lints.
// Safe for concurrent FileDone calls from the lint workers.
type lintProgress struct {
	mu      sync.Mutex
	total   int
	done    int
	failed  int
	started time.Time
	writer  io.Writer
}

// NewProgressReporter creates a progress reporter that writes to w. A
// nil w defaults to os.Stderr, keeping the bar out of piped lint
// output.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &lintProgress{writer: w}
}

// Start initializes the bar with the number of files to check.
func (p *lintProgress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.failed = 0
	p.started = time.Now()

	p.render()
}

// FileDone records one completed file.
func (p *lintProgress) FileDone(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if failed {
		p.failed++
	}
	p.render()
}

// Finish completes the bar and moves to a fresh line.
func (p *lintProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

func (p *lintProgress) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.done) / float64(p.total) * 100
	barWidth := 30
	filled := int(float64(barWidth) * percent / 100)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	elapsed := time.Since(p.started)
	rate := float64(p.done) / elapsed.Seconds()

	fmt.Fprintf(p.writer, "\rLinting [%s] %d/%d files, %d failed, %.1f files/s",
		bar, p.done, p.total, p.failed, rate)
}
