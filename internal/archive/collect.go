// Package archive collects the submission file set and writes the
// compressed artifact. Inclusion is an explicit allow-list (root file
// patterns plus whole directories) and exclusion a deny-list of path
// tokens, evaluated against a directory walk instead of shell globbing.
package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is a single file selected for the artifact.
type Entry struct {
	// Rel is the slash-separated path stored in the artifact.
	Rel string

	// Abs is the file's location on disk.
	Abs string
}

// Spec describes what to collect.
type Spec struct {
	// Root of the project tree.
	Root string

	// RootPatterns are basename globs selecting files directly under
	// Root (e.g. "*.py").
	RootPatterns []string

	// Dirs are directories under Root included recursively.
	Dirs []string

	// Exclude tokens reject paths anywhere. "*.ext" rejects by file
	// extension; any other token rejects path segments containing it.
	Exclude []string
}

// Collect walks the spec and returns the artifact entries sorted by
// archive path. Directories named in Dirs must exist.
func (s Spec) Collect() ([]Entry, error) {
	var entries []Entry

	rootItems, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("reading project root: %w", err)
	}
	for _, item := range rootItems {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		if !matchesAny(s.RootPatterns, name) || s.excluded(name) {
			continue
		}
		entries = append(entries, Entry{Rel: name, Abs: filepath.Join(s.Root, name)})
	}

	for _, dir := range s.Dirs {
		base := filepath.Join(s.Root, dir)
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(s.Root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path != base && s.excluded(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if s.excluded(rel) {
				return nil
			}
			entries = append(entries, Entry{Rel: rel, Abs: path})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Rel < entries[j].Rel })
	return entries, nil
}

// excluded reports whether any segment of the slash-separated path matches
// a deny token.
func (s Spec) excluded(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		for _, token := range s.Exclude {
			if ext, ok := strings.CutPrefix(token, "*"); ok {
				if strings.HasSuffix(segment, ext) {
					return true
				}
			} else if strings.Contains(segment, token) {
				return true
			}
		}
	}
	return false
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// Match only errors on a malformed pattern, which then simply
		// never matches anything.
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
