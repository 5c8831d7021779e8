// Package execx is the lowest-level execution layer of the packager. It
// runs external commands on the host with a timeout and bounded output
// capture, behind a small interface so the test-runner gate can be driven
// by a fake in tests.
package execx

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout bounds a command when the caller does not set one.
const DefaultTimeout = 10 * time.Minute

// DefaultMaxOutputBytes caps captured stdout/stderr per stream.
const DefaultMaxOutputBytes = 1 << 20

// Command is the input specification for a single process run.
type Command struct {
	// Binary is the executable to run, resolved against PATH.
	Binary string

	// Args are the command-line arguments.
	Args []string

	// Dir is the working directory. Empty means the process inherits the
	// caller's.
	Dir string

	// Env entries (KEY=VALUE) appended to the inherited environment.
	Env []string

	// Timeout for the whole run. Zero means DefaultTimeout.
	Timeout time.Duration
}

// String renders the command roughly as a shell would show it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return fmt.Sprintf("%s %s", c.Binary, strings.Join(c.Args, " "))
}

// Result captures everything a caller needs to judge a finished command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration

	// TimedOut is true when the run was killed at its deadline. ExitCode
	// is unreliable in that case.
	TimedOut bool
}

// Success reports whether the command exited zero without timing out.
func (r *Result) Success() bool {
	return r != nil && !r.TimedOut && r.ExitCode == 0
}

// Output returns stdout and stderr joined, for diagnostics.
func (r *Result) Output() string {
	switch {
	case r.Stdout == "":
		return r.Stderr
	case r.Stderr == "":
		return r.Stdout
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// Runner executes commands. The production implementation is Local;
// tests substitute fakes.
type Runner interface {
	// Run executes cmd and returns its result. The error is reserved for
	// failures to start or observe the process; a non-zero exit is
	// reported in the Result, not the error.
	Run(ctx context.Context, cmd Command) (*Result, error)

	// LookPath reports the absolute path of an executable, or an error
	// when it is not installed.
	LookPath(name string) (string, error)
}
