package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runbook-hq/runbook/pkg/config"
	"runbook-hq/runbook/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Runbook - YAML runbook linter and executor",
	Long: `Runbook lints and executes YAML runbook files.

It parses runbook files, validates plays and tasks, and explains YAML
parse failures in plain language: the offending line is echoed with a
caret and hints about the likely mistake (tabs, unquoted templates,
unbalanced quotes, key=value shorthand mixed into YAML).`,
	Version:           Version,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the process logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return err
	}

	cfg := config.Get()
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	return nil
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".runbook.toml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
