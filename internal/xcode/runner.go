package xcode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// ErrInvocationFailed wraps any non-zero exit or launch failure of the
// external build tool.
var ErrInvocationFailed = errors.New("xcodebuild invocation failed")

// RunResult captures the terminal state of one child-process invocation.
// Only the exit code is inspected; tool output is passed through untouched.
type RunResult struct {
	ExitCode int
	Duration time.Duration
}

// Runner executes an Invocation as a child process and blocks until it
// terminates. Implementations other than BinaryRunner exist for testing.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (RunResult, error)
}

// BinaryRunner runs the real xcodebuild binary with inherited stdout/stderr.
// There is no timeout: a hung build tool blocks until externally interrupted.
type BinaryRunner struct {
	Dir string // working directory; empty means the current directory
}

func (r *BinaryRunner) Run(ctx context.Context, inv Invocation) (RunResult, error) {
	cmd := exec.CommandContext(ctx, Tool, inv.Args()...)
	cmd.Dir = r.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	slog.Info("Running xcodebuild",
		"project", inv.Project,
		"scheme", inv.Scheme,
		"configuration", inv.Configuration,
		"derived_data", inv.DerivedDataPath)

	start := time.Now()
	err := cmd.Run()
	res := RunResult{Duration: time.Since(start)}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, fmt.Errorf("%w: exit status %d", ErrInvocationFailed, res.ExitCode)
		}
		// Launch failure (binary missing, etc.), no exit code to report.
		res.ExitCode = -1
		return res, fmt.Errorf("%w: %v", ErrInvocationFailed, err)
	}
	return res, nil
}
