package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_NoColorPrefixes(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	c.Info("checking %s", "TEAM.txt")
	c.Success("found %d maps", 4)
	c.Warn("identifier missing")
	c.Error("tests failed")
	c.Plain("  maps/arena.txt")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"[INFO] checking TEAM.txt",
		"[ OK ] found 4 maps",
		"[WARN] identifier missing",
		"[FAIL] tests failed",
		"  maps/arena.txt",
	}, lines)
}

func TestRecorder_Order(t *testing.T) {
	var r Recorder
	r.Info("one")
	r.Error("two")

	assert.Equal(t, []string{"one", "two"}, r.Messages())
	assert.Equal(t, LevelError, r.Lines[1].Level)
}
