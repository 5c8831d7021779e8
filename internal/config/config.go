// Package config loads the optional submission manifest. When no manifest
// is present the defaults reproduce the fixed contract of the original
// packaging workflow, so most projects never need the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the optional per-project manifest file.
const ManifestName = "submission.yaml"

// StateDirName is the tool's local state directory (run history database).
// It is always excluded from the archive.
const StateDirName = ".resgatepack"

// Manifest holds the knobs of the packaging pipeline.
type Manifest struct {
	// ArchivePrefix is the artifact name prefix; the extracted team
	// identifier and the format extension are appended to it.
	ArchivePrefix string `yaml:"archive_prefix"`

	// MinMaps is the minimum number of map files required under MapsDir.
	MinMaps int `yaml:"min_maps"`

	// RequiredDirs must all exist at the workspace root and are included
	// in the archive recursively.
	RequiredDirs []string `yaml:"required_dirs"`

	// IncludePatterns select workspace-root files for the archive
	// (basename globs, e.g. "*.py").
	IncludePatterns []string `yaml:"include_patterns"`

	// ExcludePatterns reject paths anywhere in the walk. A "*.ext" token
	// matches by file extension; any other token matches a path segment.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	// TeamFile is the team metadata file; its first line carries the
	// numeric leader identifier.
	TeamFile string `yaml:"team_file"`

	// MapsDir holds the textual grid maps.
	MapsDir string `yaml:"maps_dir"`

	// TestsDir is handed to the test runner.
	TestsDir string `yaml:"tests_dir"`

	// History enables the local run ledger.
	History bool `yaml:"history"`
}

// Default returns the manifest used when no submission.yaml exists. The
// values mirror the original submission contract of the course project.
func Default() Manifest {
	return Manifest{
		ArchivePrefix:   "trabalho_servicos_cognitivos",
		MinMaps:         3,
		RequiredDirs:    []string{"simulator", "robot", "controller", "algorithms", "tests", "maps"},
		IncludePatterns: []string{"*.py", "*.txt", "*.md"},
		ExcludePatterns: []string{"__pycache__", "*.pyc", "pytest_cache", ".git", ".vscode", ".idea"},
		TeamFile:        "TEAM.txt",
		MapsDir:         "maps",
		TestsDir:        "tests",
		History:         true,
	}
}

// Load reads the manifest from the workspace, falling back to Default when
// the file does not exist. A manifest that exists but cannot be parsed or
// validated is a hard error: a half-applied manifest would silently package
// the wrong tree.
func Load(workspace string) (Manifest, error) {
	path := filepath.Join(workspace, ManifestName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", ManifestName, err)
	}

	m := Default()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", ManifestName, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, fmt.Errorf("invalid %s: %w", ManifestName, err)
	}
	return m, nil
}

// Validate checks the manifest for values the pipeline cannot work with.
func (m Manifest) Validate() error {
	if m.ArchivePrefix == "" {
		return fmt.Errorf("archive_prefix must not be empty")
	}
	if m.MinMaps < 1 {
		return fmt.Errorf("min_maps must be at least 1, got %d", m.MinMaps)
	}
	if len(m.RequiredDirs) == 0 {
		return fmt.Errorf("required_dirs must not be empty")
	}
	if m.TeamFile == "" {
		return fmt.Errorf("team_file must not be empty")
	}
	if m.MapsDir == "" {
		return fmt.Errorf("maps_dir must not be empty")
	}
	if m.TestsDir == "" {
		return fmt.Errorf("tests_dir must not be empty")
	}
	return nil
}

// StateDir returns the tool's state directory for a workspace.
func StateDir(workspace string) string {
	return filepath.Join(workspace, StateDirName)
}
