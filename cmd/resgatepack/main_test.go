package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMap = "XXXXX\nX...X\nX.@.X\nX...X\nEXXXX"

func newProject(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(ws, "README.md"), []byte("# Resgate Robot"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "TEAM.txt"), []byte("42 - Jane Doe\n"), 0644))
	for _, dir := range []string{"simulator", "robot", "controller", "algorithms", "tests", "maps"} {
		require.NoError(t, os.Mkdir(filepath.Join(ws, dir), 0755))
	}
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws, "maps", name), []byte(validMap), 0644))
	}
	return ws
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestCheckCommand_ValidProject(t *testing.T) {
	ws := newProject(t)
	err := execute(t, "check", "--workspace", ws, "--no-color")
	assert.NoError(t, err)
}

func TestCheckCommand_WrongDirectory(t *testing.T) {
	err := execute(t, "check", "--workspace", t.TempDir(), "--no-color")
	assert.Error(t, err)
}

func TestMapsLintCommand(t *testing.T) {
	ws := newProject(t)

	t.Run("valid maps", func(t *testing.T) {
		assert.NoError(t, execute(t, "maps", "lint", "--workspace", ws, "--no-color"))
	})

	t.Run("invalid map fails", func(t *testing.T) {
		bad := filepath.Join(ws, "maps", "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("XXX\nX?X\nXXX"), 0644))
		defer os.Remove(bad)

		err := execute(t, "maps", "lint", "--workspace", ws, "--no-color")
		assert.Error(t, err)
	})
}

func TestHistoryCommand_EmptyLedger(t *testing.T) {
	ws := newProject(t)
	assert.NoError(t, execute(t, "history", "--workspace", ws, "--no-color"))
}
