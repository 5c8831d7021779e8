package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors for diagnostic prefixes.
var (
	colorInfo    = lipgloss.Color("#2196F3") // blue
	colorSuccess = lipgloss.Color("#8BC34A") // green
	colorWarn    = lipgloss.Color("#FFC107") // yellow
	colorError   = lipgloss.Color("#e53935") // red
)

// Console is the default Reporter. It writes one diagnostic per line with a
// colored level prefix, or plain prefixes when color is disabled.
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
	styles  map[Level]lipgloss.Style
}

// NewConsole returns a Console writing to w. When noColor is true the
// prefixes are emitted without any styling.
func NewConsole(w io.Writer, noColor bool) *Console {
	return &Console{
		w:       w,
		noColor: noColor,
		styles: map[Level]lipgloss.Style{
			LevelInfo:    lipgloss.NewStyle().Foreground(colorInfo).Bold(true),
			LevelSuccess: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
			LevelWarn:    lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
			LevelError:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		},
	}
}

func (c *Console) emit(level Level, format string, args ...any) {
	prefix := level.String()
	if !c.noColor {
		prefix = c.styles[level].Render(prefix)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Info implements Reporter.
func (c *Console) Info(format string, args ...any) { c.emit(LevelInfo, format, args...) }

// Success implements Reporter.
func (c *Console) Success(format string, args ...any) { c.emit(LevelSuccess, format, args...) }

// Warn implements Reporter.
func (c *Console) Warn(format string, args ...any) { c.emit(LevelWarn, format, args...) }

// Error implements Reporter.
func (c *Console) Error(format string, args ...any) { c.emit(LevelError, format, args...) }

// Plain implements Reporter.
func (c *Console) Plain(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format+"\n", args...)
}
