package execx

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLocal_Run(t *testing.T) {
	runner := NewLocal(nil)

	var cmd Command
	if runtime.GOOS == "windows" {
		cmd = Command{Binary: "cmd", Args: []string{"/c", "echo", "hello"}}
	} else {
		cmd = Command{Binary: "echo", Args: []string{"hello"}}
	}

	result, err := runner.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success() {
		t.Errorf("expected success, got exit code %d", result.ExitCode)
	}
	if !strings.Contains(result.Output(), "hello") {
		t.Errorf("expected output to contain 'hello', got: %q", result.Output())
	}
}

func TestLocal_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exit-code helper differs on Windows")
	}

	runner := NewLocal(nil)
	result, err := runner.Run(context.Background(), Command{Binary: "false"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Success() {
		t.Error("expected failure")
	}
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit code")
	}
}

func TestLocal_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sleep not available on Windows")
	}

	runner := NewLocal(nil)
	cmd := Command{
		Binary:  "sleep",
		Args:    []string{"10"},
		Timeout: 200 * time.Millisecond,
	}

	start := time.Now()
	result, err := runner.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.TimedOut {
		t.Error("expected the command to time out")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout did not fire in time, elapsed %v", elapsed)
	}
}

func TestLocal_MissingBinary(t *testing.T) {
	runner := NewLocal(nil)
	_, err := runner.Run(context.Background(), Command{Binary: "definitely-not-a-binary-xyz"})
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
}

func TestLocal_EmptyBinary(t *testing.T) {
	runner := NewLocal(nil)
	if _, err := runner.Run(context.Background(), Command{}); err == nil {
		t.Fatal("expected an error for an empty binary")
	}
}

func TestLimitedBuffer_Truncates(t *testing.T) {
	buf := newLimitedBuffer(8)
	if _, err := buf.Write([]byte("0123456789abcdef")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "01234567") {
		t.Errorf("expected capped prefix, got %q", out)
	}
	if !strings.Contains(out, "truncated") {
		t.Errorf("expected truncation marker, got %q", out)
	}
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Binary: "python3", Args: []string{"-m", "pytest", "-q"}}
	if got := cmd.String(); got != "python3 -m pytest -q" {
		t.Errorf("String() = %q", got)
	}
}
