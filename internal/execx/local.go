package execx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Local runs commands directly on the host with os/exec. No sandboxing:
// the packager only ever runs the project's own test suite.
type Local struct {
	maxOutputBytes int
	log            *zap.Logger
}

// NewLocal returns a host executor. A nil logger disables logging.
func NewLocal(log *zap.Logger) *Local {
	if log == nil {
		log = zap.NewNop()
	}
	return &Local{
		maxOutputBytes: DefaultMaxOutputBytes,
		log:            log,
	}
}

// LookPath implements Runner.
func (l *Local) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner.
func (l *Local) Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("command binary is required")
	}

	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l.log.Debug("executing command",
		zap.String("cmd", cmd.String()),
		zap.String("dir", cmd.Dir),
		zap.Duration("timeout", timeout))

	proc := exec.CommandContext(runCtx, cmd.Binary, cmd.Args...)
	proc.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}

	stdout := newLimitedBuffer(l.maxOutputBytes)
	stderr := newLimitedBuffer(l.maxOutputBytes)
	proc.Stdout = stdout
	proc.Stderr = stderr

	start := time.Now()
	err := proc.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		l.log.Warn("command timed out",
			zap.String("cmd", cmd.String()),
			zap.Duration("after", result.Duration))
		return result, nil
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		// The process never ran (binary missing, permission denied, ...).
		return nil, fmt.Errorf("starting %s: %w", cmd.Binary, err)
	}

	l.log.Debug("command finished",
		zap.String("cmd", cmd.String()),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))
	return result, nil
}
