// Package report provides the leveled diagnostic reporter used by the
// packaging pipeline. Everything the tool says to the user goes through a
// Reporter so that tests can capture output without parsing ANSI sequences.
package report

// Level classifies a diagnostic line.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

// String returns the bracketed prefix printed before a diagnostic line.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "[INFO]"
	case LevelSuccess:
		return "[ OK ]"
	case LevelWarn:
		return "[WARN]"
	case LevelError:
		return "[FAIL]"
	default:
		return "[????]"
	}
}

// Reporter emits leveled diagnostics. Implementations must be safe to call
// from a single goroutine; the pipeline never reports concurrently.
type Reporter interface {
	// Info reports routine progress.
	Info(format string, args ...any)

	// Success reports a step that completed.
	Success(format string, args ...any)

	// Warn reports a recoverable condition.
	Warn(format string, args ...any)

	// Error reports a fatal condition. It does not abort anything; the
	// caller decides what to do with the underlying error.
	Error(format string, args ...any)

	// Plain writes a line verbatim, with no prefix. Used for banners and
	// archive content listings.
	Plain(format string, args ...any)
}
