// Package submit orchestrates the submission pipeline: working-directory
// check, team metadata, map set, test suite, directory structure, archival,
// report. The steps run strictly in order and the first failure aborts the
// run with a typed error.
package submit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resgatepack/internal/archive"
	"resgatepack/internal/config"
	"resgatepack/internal/ledger"
	"resgatepack/internal/mapset"
	"resgatepack/internal/report"
	"resgatepack/internal/team"
	"resgatepack/internal/testrunner"
)

// Project-root markers. These identify the course project layout and are
// deliberately not configurable: running the packager anywhere else is
// always a mistake.
const (
	MarkerFile = "README.md"
	MarkerDir  = "simulator"
)

// entryListLimit caps the archive content listing in the final report.
const entryListLimit = 20

// HistoryRecorder persists one packaging run. *ledger.Ledger satisfies it;
// a nil recorder disables history.
type HistoryRecorder interface {
	Record(ctx context.Context, run ledger.Run) error
}

// Pipeline wires the collaborators of one packaging run.
type Pipeline struct {
	Workspace string
	Manifest  config.Manifest
	Reporter  report.Reporter
	Gate      testrunner.Gate
	Builders  []archive.Builder
	History   HistoryRecorder
	Log       *zap.Logger

	// now and newRunID exist for tests; zero values mean the real clock
	// and fresh UUIDs.
	now      func() time.Time
	newRunID func() string
}

// Summary is the outcome of a successful run (or of Check, where the
// archive fields stay zero).
type Summary struct {
	RunID       string
	TeamID      string
	IDFound     bool
	MapFiles    []string
	TestsPassed bool
	Artifact    *archive.Artifact
}

func (p *Pipeline) init() {
	if p.Log == nil {
		p.Log = zap.NewNop()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
}

// Run executes the full pipeline. On success the artifact exists on disk
// and the summary has been reported; on failure the returned error is one
// of the types in errors.go and no artifact has been written.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	p.init()
	summary := &Summary{RunID: p.newRunID()}

	if err := p.checkWorkspace(); err != nil {
		return nil, err
	}
	if err := p.readTeamID(summary); err != nil {
		return nil, err
	}
	if err := p.checkMaps(summary); err != nil {
		return nil, err
	}
	if err := p.runTests(ctx, summary); err != nil {
		return nil, err
	}
	if err := p.checkStructure(); err != nil {
		return nil, err
	}
	if err := p.buildArchive(summary); err != nil {
		return nil, err
	}
	p.reportSummary(summary)
	p.recordHistory(ctx, summary)
	return summary, nil
}

// Check executes only the validation steps: workspace, team metadata, map
// set, and directory structure. Nothing is executed or written.
func (p *Pipeline) Check(ctx context.Context) (*Summary, error) {
	p.init()
	summary := &Summary{RunID: p.newRunID()}

	if err := p.checkWorkspace(); err != nil {
		return nil, err
	}
	if err := p.readTeamID(summary); err != nil {
		return nil, err
	}
	if err := p.checkMaps(summary); err != nil {
		return nil, err
	}
	if err := p.checkStructure(); err != nil {
		return nil, err
	}
	p.Reporter.Success("validation passed: identifier %s, %d maps", summary.TeamID, len(summary.MapFiles))
	return summary, nil
}

func (p *Pipeline) checkWorkspace() error {
	fileInfo, err := os.Stat(filepath.Join(p.Workspace, MarkerFile))
	if err != nil || fileInfo.IsDir() {
		return &EnvironmentError{Dir: p.Workspace}
	}
	dirInfo, err := os.Stat(filepath.Join(p.Workspace, MarkerDir))
	if err != nil || !dirInfo.IsDir() {
		return &EnvironmentError{Dir: p.Workspace}
	}
	p.Reporter.Info("project root: %s", p.Workspace)
	return nil
}

func (p *Pipeline) readTeamID(summary *Summary) error {
	path := filepath.Join(p.Workspace, p.Manifest.TeamFile)
	id, found, err := team.Load(path)
	if err != nil {
		return &MissingFileError{Path: p.Manifest.TeamFile}
	}

	summary.TeamID = id
	summary.IDFound = found
	if !found {
		p.Reporter.Warn("no numeric identifier on the first line of %s, using %q",
			p.Manifest.TeamFile, team.PlaceholderID)
		return nil
	}
	p.Reporter.Success("leader identifier: %s", id)
	return nil
}

func (p *Pipeline) checkMaps(summary *Summary) error {
	dir := filepath.Join(p.Workspace, p.Manifest.MapsDir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &MissingDirectoryError{Path: p.Manifest.MapsDir}
	}

	maps, err := mapset.Discover(dir)
	if err != nil {
		return fmt.Errorf("listing maps: %w", err)
	}

	// Diagnostics use workspace-relative names.
	rel := make([]string, len(maps))
	for i, m := range maps {
		r, err := filepath.Rel(p.Workspace, m)
		if err != nil {
			r = m
		}
		rel[i] = filepath.ToSlash(r)
	}

	if len(maps) < p.Manifest.MinMaps {
		p.Reporter.Error("found only %d maps, need at least %d", len(maps), p.Manifest.MinMaps)
		for _, m := range rel {
			p.Reporter.Plain("  - %s", m)
		}
		return &InsufficientResourceError{Found: rel, Min: p.Manifest.MinMaps}
	}

	summary.MapFiles = rel
	p.Reporter.Success("found %d maps (minimum %d)", len(maps), p.Manifest.MinMaps)
	return nil
}

func (p *Pipeline) runTests(ctx context.Context, summary *Summary) error {
	p.Reporter.Info("checking test runner availability")
	if err := p.Gate.Ensure(ctx); err != nil {
		return &DependencyError{Err: err}
	}
	p.Reporter.Success("test runner ready")

	p.Reporter.Info("running test suite, this may take a while")
	outcome, err := p.Gate.Run(ctx)
	if err != nil {
		return &DependencyError{Err: err}
	}
	if !outcome.Passed {
		p.Reporter.Error("test suite failed")
		p.Reporter.Plain("%s", outcome.Output)
		return &TestFailureError{Hint: p.Gate.VerboseHint()}
	}

	summary.TestsPassed = true
	p.Reporter.Success("all tests passed (%s)", outcome.Duration.Round(time.Millisecond))
	return nil
}

func (p *Pipeline) checkStructure() error {
	for _, dir := range p.Manifest.RequiredDirs {
		info, err := os.Stat(filepath.Join(p.Workspace, dir))
		if err != nil || !info.IsDir() {
			return &MissingDirectoryError{Path: dir}
		}
	}
	p.Reporter.Success("directory structure validated")
	return nil
}

func (p *Pipeline) buildArchive(summary *Summary) error {
	spec := archive.Spec{
		Root:         p.Workspace,
		RootPatterns: p.Manifest.IncludePatterns,
		Dirs:         p.Manifest.RequiredDirs,
		// The tool's own state never ships with the submission.
		Exclude: append(append([]string{}, p.Manifest.ExcludePatterns...), config.StateDirName),
	}
	entries, err := spec.Collect()
	if err != nil {
		return &ArchivalFailure{Err: err}
	}

	baseName := filepath.Join(p.Workspace,
		fmt.Sprintf("%s_%s", p.Manifest.ArchivePrefix, summary.TeamID))
	p.Reporter.Info("creating submission archive: %s", filepath.Base(baseName))

	artifact, err := archive.Write(baseName, entries, p.Builders)
	if err != nil {
		return &ArchivalFailure{Err: err}
	}

	summary.Artifact = artifact
	p.Log.Debug("artifact written",
		zap.String("path", artifact.Path),
		zap.Int64("bytes", artifact.Size),
		zap.Int("entries", len(artifact.Entries)))
	return nil
}

func (p *Pipeline) reportSummary(summary *Summary) {
	artifact := summary.Artifact

	p.Reporter.Plain("")
	p.Reporter.Success("packaging complete")
	p.Reporter.Info("submission file: %s", artifact.Path)
	p.Reporter.Info("leader identifier: %s", summary.TeamID)
	p.Reporter.Info("maps found: %d", len(summary.MapFiles))
	p.Reporter.Info("tests: all passed")
	p.Reporter.Info("archive size: %.2f MB", float64(artifact.Size)/1024/1024)

	p.Reporter.Info("archive contents (first %d entries):", entryListLimit)
	for i, entry := range artifact.Entries {
		if i == entryListLimit {
			p.Reporter.Plain("  ... and %d more", len(artifact.Entries)-entryListLimit)
			break
		}
		p.Reporter.Plain("  %s", entry.Rel)
	}
}

func (p *Pipeline) recordHistory(ctx context.Context, summary *Summary) {
	if p.History == nil {
		return
	}
	run := ledger.Run{
		ID:           summary.RunID,
		CreatedAt:    p.now(),
		TeamID:       summary.TeamID,
		MapCount:     len(summary.MapFiles),
		TestsPassed:  summary.TestsPassed,
		ArchivePath:  summary.Artifact.Path,
		ArchiveBytes: summary.Artifact.Size,
	}
	if err := p.History.Record(ctx, run); err != nil {
		// History is best effort; a broken ledger must not fail a
		// submission that already exists on disk.
		p.Reporter.Warn("could not record run history: %v", err)
	}
}
