package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"runbook-hq/runbook/internal/history"
	"runbook-hq/runbook/internal/pathutil"
	"runbook-hq/runbook/pkg/cli"
	"runbook-hq/runbook/pkg/config"
)

var historyFlags struct {
	file   string
	limit  int
	format string
	prune  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint runs",
	Long: `Show lint runs recorded with lint --record.

Examples:
  # Show the last runs for a file
  runbook history --file deploy.yaml

  # JSON output
  runbook history --file deploy.yaml --format json

  # Drop runs older than 30 days
  runbook history --prune 720h`,
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyFlags.file, "file", "f", "", "runbook file to show history for")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
	historyCmd.Flags().StringVar(&historyFlags.prune, "prune", "", "delete runs older than this duration (e.g. 720h)")
}

func showHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(config.Get().History.Path)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	if historyFlags.prune != "" {
		age, err := time.ParseDuration(historyFlags.prune)
		if err != nil {
			return fmt.Errorf("invalid prune duration: %w", err)
		}
		deleted, err := store.Prune(cmdContext(cmd), time.Now().Add(-age))
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		fmt.Printf("Pruned %d run(s)\n", deleted)
		if historyFlags.file == "" {
			return nil
		}
	}

	if historyFlags.file == "" {
		return fmt.Errorf("--file must be specified")
	}

	resolved, err := pathutil.Unfrack(historyFlags.file, true, "")
	if err != nil {
		return err
	}

	runs, err := store.List(cmdContext(cmd), resolved, historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if historyFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Printf("No recorded runs for %s\n", resolved)
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if run.Errors > 0 {
			status = fmt.Sprintf("%d error(s)", run.Errors)
		}
		fmt.Printf("%s  %s  %s\n", run.CreatedAt.Format(time.RFC3339), status, run.ID)
		if run.FirstDiagnostic != "" {
			fmt.Printf("    %s\n", firstLine(run.FirstDiagnostic))
		}
	}
	return nil
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	text = strings.TrimLeft(text, "\n")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
