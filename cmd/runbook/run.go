package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"runbook-hq/runbook/internal/cmdexec"
	"runbook-hq/runbook/internal/pathutil"
	"runbook-hq/runbook/pkg/cli"
	"runbook-hq/runbook/pkg/config"
	"runbook-hq/runbook/pkg/rbl/parser"
	"runbook-hq/runbook/pkg/rbl/validator"
	"runbook-hq/runbook/pkg/telemetry/logging"

	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

var runFlags struct {
	file string
	live bool
	tag  string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a runbook's tasks locally",
	Long: `Execute a runbook's tasks as local commands, in order.

The runbook is linted first; execution only starts on a clean file.
Task actions are split shell-style and run one at a time. A failing
task stops the play.

Examples:
  # Run all plays
  runbook run --file deploy.yaml

  # Stream command output as it happens
  runbook run --file deploy.yaml --live

  # Only run tasks carrying a tag
  runbook run --file deploy.yaml --tag restart`,
	RunE: runRunbook,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.file, "file", "f", "", "runbook file to execute")
	runCmd.Flags().BoolVar(&runFlags.live, "live", false, "stream command output")
	runCmd.Flags().StringVar(&runFlags.tag, "tag", "", "only run tasks with this tag")
	runCmd.MarkFlagRequired("file")
}

func runRunbook(cmd *cobra.Command, args []string) error {
	logger := logging.Default()

	path, err := pathutil.Unfrack(runFlags.file, true, "")
	if err != nil {
		return err
	}

	rb, err := parser.NewParser().WithShowContent(config.Get().Lint.ShowContent).Parse(path)
	if err != nil {
		reportParseFailure(err)
		return cli.NewCommandError("run", fmt.Errorf("runbook failed to parse"))
	}
	if err := validator.NewValidator().Validate(rb); err != nil {
		fmt.Println(err.Error())
		return cli.NewCommandError("run", fmt.Errorf("runbook failed validation"))
	}

	logger.Info("starting runbook", "file", path, "plays", len(rb.Plays), "tasks", rb.TaskCount())

	for _, play := range rb.Plays {
		logger.Info("starting play", "play", play.Name, "tasks", len(play.Tasks))

		for _, task := range play.Tasks {
			if runFlags.tag != "" && !hasTag(task.Tags, runFlags.tag) {
				logger.Debug("skipping task", "task", task.Name, "tag", runFlags.tag)
				continue
			}

			fmt.Printf("TASK [%s] %s\n", play.Name, task.Name)
			res, err := cmdexec.Run(cmdContext(cmd), task.Action, runFlags.live, logger)
			if err != nil {
				return cli.NewCommandError("run", fmt.Errorf("task %q: %w", task.Name, err))
			}
			if res.RC != 0 {
				if !runFlags.live && res.Stderr != "" {
					fmt.Print(res.Stderr)
				}
				return cli.NewCommandError("run",
					fmt.Errorf("task %q exited with rc %d", task.Name, res.RC))
			}
			if !runFlags.live && res.Stdout != "" {
				fmt.Print(res.Stdout)
			}
		}
	}

	logger.Info("runbook finished", "file", path)
	return nil
}

// reportParseFailure prints a parse error, rendering the full diagnosis
// when one was produced.
func reportParseFailure(err error) {
	mode := cli.ColorMode(config.Get().Lint.Color)
	r := cli.NewRenderer(os.Stdout, config.Get().Lint.MaxLineWidth, mode)

	if e, ok := err.(*rblerrors.Error); ok && e.Diagnosis != nil {
		// Context carries the same rendered text as the diagnosis;
		// echo it once.
		stripped := *e
		stripped.Context = ""
		r.Error(&stripped)
		r.Diagnosis(e.Diagnosis)
		return
	}
	fmt.Println(err.Error())
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
