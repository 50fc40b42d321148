// Package executor runs commands that the builtin registry does not handle
// as child processes of the terminal.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"shellmate/internal/domain"
)

// DefaultTimeout bounds external command execution.
const DefaultTimeout = 30 * time.Second

// Local spawns commands on the local system, capturing combined output and
// enforcing a wall-clock timeout.
type Local struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewLocal creates a local executor with the given command timeout.
func NewLocal(timeout time.Duration, logger *slog.Logger) *Local {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Local{timeout: timeout, logger: logger}
}

func (l *Local) Name() string { return "local" }

// Run spawns name with args in workDir. The result output is stdout followed
// by stderr; the exit code is the child's. Launch failures are normalized:
// a missing executable yields exit code 127, a timeout terminates the
// process and reports it.
func (l *Local) Run(ctx context.Context, name string, args []string, workDir string) domain.CommandResult {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		l.logger.Warn("external command timed out", "command", name, "timeout", l.timeout)
		return domain.CommandResult{
			Output:   fmt.Sprintf("Command timed out after %d seconds", int(l.timeout.Seconds())),
			ExitCode: domain.ExitFailure,
		}
	}

	output := stdout.String() + stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			return domain.CommandResult{Output: output, ExitCode: exitErr.ExitCode()}
		case errors.Is(err, exec.ErrNotFound):
			return domain.CommandResult{
				Output:   fmt.Sprintf("Command not found: %s", name),
				ExitCode: domain.ExitNotFound,
			}
		default:
			l.logger.Warn("external command failed to launch", "command", name, "error", err)
			return domain.CommandResult{
				Output:   fmt.Sprintf("Error executing external command: %v", err),
				ExitCode: domain.ExitFailure,
			}
		}
	}

	return domain.CommandResult{Output: output, ExitCode: domain.ExitOK}
}
