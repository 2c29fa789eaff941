package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/sreagent/internal/core"
)

// Runner executes an external command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands through os/exec with a hard per-call deadline,
// so one unresponsive CLI cannot stall the polling loop.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates a runner bounded by timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ExecRunner{timeout: timeout}
}

// Timeout returns the per-call deadline.
func (r *ExecRunner) Timeout() time.Duration {
	return r.timeout
}

// Run executes name with args. Failures are returned as *core.DomainError:
// timeout, non-zero exit (execution/COMMAND_FAILED) or start failure
// (execution/COMMAND_NOT_STARTED).
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	// Children that keep the pipes open must not outlive the deadline.
	cmd.WaitDelay = 500 * time.Millisecond
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, core.ErrTimeout(fmt.Sprintf("%s timed out after %s", name, r.timeout)).
			WithCause(err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, core.ErrExecution(core.CodeCommandFailed,
			fmt.Sprintf("%s exited with code %d", name, exitErr.ExitCode())).
			WithCause(err).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	return nil, core.ErrExecution(core.CodeCommandNoStart, fmt.Sprintf("%s could not be started", name)).
		WithCause(err)
}
