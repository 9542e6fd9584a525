package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"runbook-hq/runbook/internal/history"
	"runbook-hq/runbook/internal/pathutil"
	"runbook-hq/runbook/pkg/cli"
	"runbook-hq/runbook/pkg/config"
	"runbook-hq/runbook/pkg/rbl/parser"
	"runbook-hq/runbook/pkg/rbl/validator"
	"runbook-hq/runbook/pkg/telemetry/logging"
	"runbook-hq/runbook/pkg/telemetry/metrics"
	"runbook-hq/runbook/pkg/watcher"

	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

var lintFlags struct {
	file    string
	dir     string
	strict  bool
	format  string
	watch   bool
	record  bool
	noColor bool
}

var lintMetrics = metrics.NewMetrics(prometheus.DefaultRegisterer)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate runbook files",
	Long: `Validate runbook files for syntax and structural errors.

The lint command parses runbook files and performs validation:
  - YAML syntax validation, with diagnostics explaining parse failures
  - Runbook structure validation (names, plays, tasks)
  - Schedule and rollout-size validation

Examples:
  # Lint single file
  runbook lint --file deploy.yaml

  # Lint directory
  runbook lint --dir runbooks/

  # Re-lint on change
  runbook lint --dir runbooks/ --watch

  # JSON output for CI/CD
  runbook lint --file deploy.yaml --format json

  # Record results to the history database
  runbook lint --file deploy.yaml --record`,
	RunE: lintRunbooks,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "runbook file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of runbook files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "re-lint when files change")
	lintCmd.Flags().BoolVar(&lintFlags.record, "record", false, "record results to the history database")
	lintCmd.Flags().BoolVar(&lintFlags.noColor, "no-color", false, "disable colored output")
}

// ValidationResult represents the validation result for a single
// runbook file.
type ValidationResult struct {
	File     string            `json:"file"`
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`

	// firstDiagnostic holds the rendered parse diagnosis of the first
	// syntax error, for the history store.
	firstDiagnostic string
}

// ValidationError represents a single validation error or warning.
type ValidationError struct {
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Type     string `json:"type,omitempty"`
	Context  string `json:"context,omitempty"`
}

// cmdContext returns the command's context, or a background context
// when invoked outside cobra.
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd == nil {
		return context.Background()
	}
	return cmd.Context()
}

func lintRunbooks(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}
	ctx := cmdContext(cmd)

	var store *history.Store
	if lintFlags.record {
		path := config.Get().History.Path
		s, err := history.Open(path)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		defer s.Close()
		store = s
	}

	files, err := collectFiles()
	if err != nil {
		return err
	}

	// A progress bar on stderr for multi-file text runs; JSON output
	// stays clean for CI.
	var progress cli.ProgressReporter
	if lintFlags.format != "json" && len(files) > 1 {
		progress = cli.NewProgressReporter(nil)
	}

	results, err := lintFiles(ctx, files, progress)
	if err != nil {
		return err
	}
	if store != nil {
		recordResults(ctx, store, results)
	}

	outErr := outputResults(results)

	if lintFlags.watch {
		return watchAndRelint(ctx, store)
	}
	return outErr
}

// collectFiles resolves --file and --dir into the list of runbook files
// to check.
func collectFiles() ([]string, error) {
	var files []string

	if lintFlags.file != "" {
		resolved, err := pathutil.Unfrack(lintFlags.file, true, "")
		if err != nil {
			return nil, err
		}
		files = append(files, resolved)
	}

	if lintFlags.dir != "" {
		dir, err := pathutil.Unfrack(lintFlags.dir, true, "")
		if err != nil {
			return nil, err
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list runbook files: %w", err)
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no runbook files found")
	}
	return files, nil
}

// lintFiles validates files concurrently, preserving input order in the
// results. A non-nil progress reporter is advanced as files finish.
func lintFiles(ctx context.Context, files []string, progress cli.ProgressReporter) ([]ValidationResult, error) {
	results := make([]ValidationResult, len(files))

	if progress != nil {
		progress.Start(len(files))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = lintFile(file)
			if progress != nil {
				progress.FileDone(!results[i].Valid)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if progress != nil {
		progress.Finish()
	}
	return results, nil
}

func lintFile(path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	p := parser.NewParser().WithShowContent(config.Get().Lint.ShowContent)

	start := time.Now()
	rb, err := p.Parse(path)
	if err != nil {
		result.Valid = false
		appendErrors(&result, err)

		if rblErr, ok := err.(*rblerrors.Error); ok && rblErr.Diagnosis != nil {
			lintMetrics.ObserveDiagnosis(rblErr.Diagnosis, time.Since(start))
			result.firstDiagnostic = rblErr.Context
			lintMetrics.RecordLint("syntax")
		} else {
			lintMetrics.RecordLint("io")
		}
		return result
	}

	if err := validator.NewValidator().Validate(rb); err != nil {
		result.Valid = false
		appendErrors(&result, err)
		lintMetrics.RecordLint(lintResultLabel(err))
		return result
	}

	lintMetrics.RecordLint("ok")
	return result
}

// lintResultLabel picks the metric label for a validation failure:
// "semantic" when every finding is semantic (bad schedules, undefined
// variables), "invalid" when the structure itself is broken.
func lintResultLabel(err error) string {
	if el, ok := err.(*rblerrors.ErrorList); ok {
		if n := len(el.ByType(rblerrors.ErrorTypeSemantic)); n > 0 && n == el.Count() {
			return "semantic"
		}
	}
	return "invalid"
}

// appendErrors flattens a parse or validation error into the result.
func appendErrors(result *ValidationResult, err error) {
	switch e := err.(type) {
	case *rblerrors.ErrorList:
		for _, inner := range e.Errors {
			result.Errors = append(result.Errors, toValidationError(inner))
		}
	case *rblerrors.Error:
		result.Errors = append(result.Errors, toValidationError(e))
	default:
		result.Errors = append(result.Errors, ValidationError{
			Message:  err.Error(),
			Severity: "error",
		})
	}
}

func toValidationError(e *rblerrors.Error) ValidationError {
	return ValidationError{
		Line:     e.Location.Line,
		Column:   e.Location.Column,
		Message:  e.Message,
		Severity: "error",
		Type:     string(e.Type),
		Context:  e.Context,
	}
}

func outputResults(results []ValidationResult) error {
	if lintFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return err
		}
		return exitStatus(results)
	}

	cfg := config.Get().Lint
	mode := cli.ColorMode(cfg.Color)
	if lintFlags.noColor {
		mode = cli.ColorNever
	}
	r := cli.NewRenderer(os.Stdout, cfg.MaxLineWidth, mode)

	failed := 0
	for _, result := range results {
		if result.Valid {
			r.OK(result.File)
			continue
		}
		failed++
		r.File(result.File)
		for _, e := range result.Errors {
			r.Error(&rblerrors.Error{
				Type:    rblerrors.ErrorType(e.Type),
				Message: e.Message,
				Context: e.Context,
			})
		}
	}
	r.Summary(len(results), failed)

	return exitStatus(results)
}

func exitStatus(results []ValidationResult) error {
	errors, warnings := 0, 0
	for _, result := range results {
		errors += len(result.Errors)
		warnings += len(result.Warnings)
	}

	if errors > 0 || (lintFlags.strict && warnings > 0) {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	return nil
}

// recordResults persists results to the history store, best effort.
func recordResults(ctx context.Context, store *history.Store, results []ValidationResult) {
	for _, result := range results {
		_, err := store.Record(ctx, history.Run{
			File:            result.File,
			Errors:          len(result.Errors),
			Warnings:        len(result.Warnings),
			FirstDiagnostic: result.firstDiagnostic,
		})
		if err != nil {
			logging.Default().Warn("failed to record lint run", "file", result.File, "error", err)
		}
	}
}

// watchAndRelint blocks, re-linting changed files until interrupted.
func watchAndRelint(ctx context.Context, store *history.Store) error {
	cfg := config.Get()

	path := lintFlags.dir
	if path == "" {
		path = lintFlags.file
	}
	resolved, err := pathutil.Unfrack(path, true, "")
	if err != nil {
		return err
	}

	opts := watcher.DefaultOptions()
	opts.Path = resolved
	opts.Debounce = time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	if len(cfg.Watch.Extensions) > 0 {
		opts.Extensions = cfg.Watch.Extensions
	}

	w, err := watcher.New(opts, logging.Default())
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	return w.Watch(ctx, func(changed string) error {
		results := []ValidationResult{lintFile(changed)}
		if store != nil {
			recordResults(ctx, store, results)
		}
		// Watch mode keeps going regardless of the outcome.
		_ = outputResults(results)
		return nil
	})
}
