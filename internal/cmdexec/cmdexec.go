// Package cmdexec runs task actions as local shell-style commands. It
// exists for the runbook exec path; lint never shells out.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/google/uuid"

	"runbook-hq/runbook/pkg/telemetry/logging"
)

// Result holds the outcome of one command run.
type Result struct {
	// RunID tags the run in logs.
	RunID string

	// RC is the command's exit code. It is -1 when the command could not
	// be started at all.
	RC     int
	Stdout string
	Stderr string
}

// Run splits cmdline shell-style and executes it, capturing stdout and
// stderr. With live set, output is additionally streamed to the
// process's own stdout and stderr as it arrives. A non-zero exit is not
// an error; it is reported through Result.RC.
func Run(ctx context.Context, cmdline string, live bool, logger *logging.Logger) (Result, error) {
	if logger == nil {
		logger = logging.Default()
	}

	res := Result{RunID: uuid.New().String(), RC: -1}

	args, err := shlex.Split(cmdline)
	if err != nil {
		return res, fmt.Errorf("failed to split command: %w", err)
	}
	if len(args) == 0 {
		return res, fmt.Errorf("empty command")
	}

	logger.Debug("running command", "run_id", res.RunID, "argv0", args[0])

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if live {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err = cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.RC = 0
	case errors.As(err, &exitErr):
		res.RC = exitErr.ExitCode()
		err = nil
	default:
		return res, fmt.Errorf("failed to run command: %w", err)
	}

	logger.Debug("command finished", "run_id", res.RunID, "rc", res.RC)
	return res, nil
}
