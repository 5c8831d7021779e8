// Package testrunner gates archival on the project's test suite. The
// course projects are Python, so the production gate shells out to pytest;
// the pipeline only sees the Gate interface and can be tested with fakes.
package testrunner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resgatepack/internal/execx"
)

// ErrNoInterpreter is returned by Ensure when no compatible Python
// interpreter is on PATH.
var ErrNoInterpreter = errors.New("no python interpreter found on PATH (tried python3, python)")

// InstallError is returned when pytest was missing and the one automatic
// installation attempt failed too.
type InstallError struct {
	Output string
}

func (e *InstallError) Error() string {
	return "pytest is not installed and automatic installation failed; install it manually with: pip install pytest"
}

// Outcome is the result of a full suite run.
type Outcome struct {
	Passed   bool
	Output   string
	Command  string
	Duration time.Duration
}

// Gate prepares and runs the test suite that gates archival.
type Gate interface {
	// Ensure verifies the test runner is usable, attempting at most one
	// automatic installation of the runner library.
	Ensure(ctx context.Context) error

	// Run executes the full suite once, in quiet mode with short
	// tracebacks. A failing suite is reported in the Outcome, not the
	// error.
	Run(ctx context.Context) (*Outcome, error)

	// VerboseHint renders the command a user should run by hand to see
	// full failure details.
	VerboseHint() string
}

// interpreters, in preference order.
var interpreters = []string{"python3", "python"}

// Pytest runs the project's pytest suite through an execx.Runner.
type Pytest struct {
	runner    execx.Runner
	workspace string
	testsDir  string
	log       *zap.Logger

	python string
}

// NewPytest returns a pytest gate for the given workspace. testsDir is
// relative to the workspace.
func NewPytest(runner execx.Runner, workspace, testsDir string, log *zap.Logger) *Pytest {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pytest{
		runner:    runner,
		workspace: workspace,
		testsDir:  testsDir,
		log:       log,
	}
}

// Ensure implements Gate. It discovers the interpreter, probes pytest, and
// installs it once if the probe fails.
func (p *Pytest) Ensure(ctx context.Context) error {
	for _, name := range interpreters {
		if _, err := p.runner.LookPath(name); err == nil {
			p.python = name
			break
		}
	}
	if p.python == "" {
		return ErrNoInterpreter
	}
	p.log.Debug("interpreter selected", zap.String("python", p.python))

	probe := execx.Command{
		Binary:  p.python,
		Args:    []string{"-m", "pytest", "--version"},
		Dir:     p.workspace,
		Timeout: time.Minute,
	}
	result, err := p.runner.Run(ctx, probe)
	if err != nil {
		return fmt.Errorf("probing pytest: %w", err)
	}
	if result.Success() {
		return nil
	}

	// One automatic installation attempt, then give up.
	p.log.Info("pytest missing, attempting installation")
	install := execx.Command{
		Binary:  p.python,
		Args:    []string{"-m", "pip", "install", "pytest"},
		Dir:     p.workspace,
		Timeout: 5 * time.Minute,
	}
	result, err = p.runner.Run(ctx, install)
	if err != nil {
		return fmt.Errorf("installing pytest: %w", err)
	}
	if !result.Success() {
		return &InstallError{Output: result.Output()}
	}
	return nil
}

// Run implements Gate.
func (p *Pytest) Run(ctx context.Context) (*Outcome, error) {
	if p.python == "" {
		return nil, fmt.Errorf("test runner not prepared: call Ensure first")
	}

	cmd := execx.Command{
		Binary: p.python,
		Args:   []string{"-m", "pytest", p.testsDir + "/", "-q", "--tb=short"},
		Dir:    p.workspace,
	}
	result, err := p.runner.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("running test suite: %w", err)
	}
	if result.TimedOut {
		return nil, fmt.Errorf("test suite timed out after %s", result.Duration)
	}

	return &Outcome{
		Passed:   result.ExitCode == 0,
		Output:   result.Output(),
		Command:  cmd.String(),
		Duration: result.Duration,
	}, nil
}

// VerboseHint implements Gate.
func (p *Pytest) VerboseHint() string {
	python := p.python
	if python == "" {
		python = interpreters[0]
	}
	return fmt.Sprintf("%s -m pytest %s/ -v", python, p.testsDir)
}
