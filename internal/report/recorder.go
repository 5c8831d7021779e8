package report

import "fmt"

// Line is a single recorded diagnostic.
type Line struct {
	Level   Level
	Message string
}

// Recorder is a Reporter that keeps every diagnostic in memory. It exists
// for tests in other packages, which assert on message content and ordering
// instead of scraping terminal output.
type Recorder struct {
	Lines []Line
}

func (r *Recorder) record(level Level, format string, args ...any) {
	r.Lines = append(r.Lines, Line{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Info implements Reporter.
func (r *Recorder) Info(format string, args ...any) { r.record(LevelInfo, format, args...) }

// Success implements Reporter.
func (r *Recorder) Success(format string, args ...any) { r.record(LevelSuccess, format, args...) }

// Warn implements Reporter.
func (r *Recorder) Warn(format string, args ...any) { r.record(LevelWarn, format, args...) }

// Error implements Reporter.
func (r *Recorder) Error(format string, args ...any) { r.record(LevelError, format, args...) }

// Plain implements Reporter.
func (r *Recorder) Plain(format string, args ...any) { r.record(LevelInfo, format, args...) }

// Messages returns just the message text of every recorded line, in order.
func (r *Recorder) Messages() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.Message
	}
	return out
}
