package submit

import (
	"fmt"
	"strings"
)

// EnvironmentError means the tool was not run from the project root.
type EnvironmentError struct {
	Dir string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("not a project root: %s and %s/ must both exist in %s",
		MarkerFile, MarkerDir, e.Dir)
}

// MissingFileError means a required file is absent.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file not found: %s", e.Path)
}

// MissingDirectoryError means a required directory is absent.
type MissingDirectoryError struct {
	Path string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("required directory not found: %s", e.Path)
}

// InsufficientResourceError means the maps directory holds fewer map files than
// the submission requires. Found lists exactly the files that were found.
type InsufficientResourceError struct {
	Found []string
	Min   int
}

func (e *InsufficientResourceError) Error() string {
	if len(e.Found) == 0 {
		return fmt.Sprintf("found no map files, need at least %d", e.Min)
	}
	return fmt.Sprintf("found only %d map files (%s), need at least %d",
		len(e.Found), strings.Join(e.Found, ", "), e.Min)
}

// DependencyError means the test runner or its interpreter is unusable.
type DependencyError struct {
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("test runner unavailable: %v", e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

// TestFailureError means the suite ran and did not pass.
type TestFailureError struct {
	Hint string
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("test suite failed; fix the failures before submitting (details: %s)", e.Hint)
}

// ArchivalFailure means no archive format could produce an artifact.
type ArchivalFailure struct {
	Err error
}

func (e *ArchivalFailure) Error() string {
	return fmt.Sprintf("could not create the submission archive: %v", e.Err)
}

func (e *ArchivalFailure) Unwrap() error { return e.Err }
