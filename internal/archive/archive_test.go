package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; keys are slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func projectSpec(root string) Spec {
	return Spec{
		Root:         root,
		RootPatterns: []string{"*.py", "*.txt", "*.md"},
		Dirs:         []string{"simulator", "tests"},
		Exclude:      []string{"__pycache__", "*.pyc", "pytest_cache", ".git", ".vscode", ".idea"},
	}
}

func rels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Rel
	}
	return out
}

func TestCollect_AllowAndDenyLists(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":                        "readme",
		"TEAM.txt":                         "42",
		"main.py":                          "print()",
		"Makefile":                         "not included",
		"simulator/simulator.py":           "sim",
		"simulator/__pycache__/sim.pyc":    "cache",
		"simulator/notes/design.md":        "doc",
		"tests/test_simulator.py":          "test",
		"tests/.pytest_cache/v/cache/x":    "cache",
		"tests/helper.pyc":                 "compiled",
		".git/HEAD":                        "ref",
		".vscode/settings.json":            "editor",
	})

	entries, err := projectSpec(root).Collect()
	require.NoError(t, err)

	want := []string{
		"README.md",
		"TEAM.txt",
		"main.py",
		"simulator/notes/design.md",
		"simulator/simulator.py",
		"tests/test_simulator.py",
	}
	if diff := cmp.Diff(want, rels(entries)); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_MissingDirFails(t *testing.T) {
	root := t.TempDir()
	_, err := projectSpec(root).Collect()
	assert.Error(t, err)
}

func TestZipBuilder_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"TEAM.txt":       "42 - Jane",
		"maps/arena.txt": "EX\n.@",
	})
	entries := []Entry{
		{Rel: "TEAM.txt", Abs: filepath.Join(root, "TEAM.txt")},
		{Rel: "maps/arena.txt", Abs: filepath.Join(root, "maps", "arena.txt")},
	}

	dest := filepath.Join(t.TempDir(), "out")
	artifact, err := Write(dest, entries, []Builder{ZipBuilder{}})
	require.NoError(t, err)
	assert.Equal(t, dest+".zip", artifact.Path)
	assert.Greater(t, artifact.Size, int64(0))

	zr, err := zip.OpenReader(artifact.Path)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 2)
	assert.Equal(t, "TEAM.txt", zr.File[0].Name)
	assert.Equal(t, "maps/arena.txt", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "42 - Jane", string(content))
}

func TestTarGzBuilder_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.py": "print('oi')"})
	entries := []Entry{{Rel: "main.py", Abs: filepath.Join(root, "main.py")}}

	dest := filepath.Join(t.TempDir(), "out")
	artifact, err := Write(dest, entries, []Builder{TarGzBuilder{}})
	require.NoError(t, err)
	assert.Equal(t, dest+".tar.gz", artifact.Path)

	f, err := os.Open(artifact.Path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	header, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "main.py", header.Name)
	content, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.Equal(t, "print('oi')", string(content))

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

// failingBuilder always errors, standing in for an unavailable primary
// archival format.
type failingBuilder struct{}

func (failingBuilder) Extension() string { return ".zip" }

func (failingBuilder) Create(string, []Entry) error {
	return errors.New("zip writer unavailable")
}

func TestWrite_FallsBackToSecondBuilder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})
	entries := []Entry{{Rel: "a.txt", Abs: filepath.Join(root, "a.txt")}}

	dest := filepath.Join(t.TempDir(), "trabalho_servicos_cognitivos_42")
	artifact, err := Write(dest, entries, []Builder{failingBuilder{}, TarGzBuilder{}})
	require.NoError(t, err)
	assert.Equal(t, dest+".tar.gz", artifact.Path)

	_, err = os.Stat(dest + ".zip")
	assert.True(t, os.IsNotExist(err), "failed primary must not leave an artifact")
}

func TestWrite_ZipSuccessLeavesNoFallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})
	entries := []Entry{{Rel: "a.txt", Abs: filepath.Join(root, "a.txt")}}

	dest := filepath.Join(t.TempDir(), "out")
	_, err := Write(dest, entries, []Builder{ZipBuilder{}, TarGzBuilder{}})
	require.NoError(t, err)

	_, err = os.Stat(dest + ".tar.gz")
	assert.True(t, os.IsNotExist(err))
}

func TestWrite_ReplacesPreviousArtifact(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "new content"})
	entries := []Entry{{Rel: "a.txt", Abs: filepath.Join(root, "a.txt")}}

	outDir := t.TempDir()
	dest := filepath.Join(outDir, "out")
	require.NoError(t, os.WriteFile(dest+".zip", []byte("stale artifact"), 0644))

	artifact, err := Write(dest, entries, []Builder{ZipBuilder{}})
	require.NoError(t, err)

	zr, err := zip.OpenReader(artifact.Path)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
}

func TestWrite_AllBuildersFail(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	_, err := Write(dest, nil, []Builder{failingBuilder{}})
	assert.Error(t, err)
}
