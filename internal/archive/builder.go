package archive

import (
	"errors"
	"fmt"
	"os"
)

// Builder writes a set of entries into an artifact of one format.
type Builder interface {
	// Extension returns the artifact extension including the dot,
	// e.g. ".zip".
	Extension() string

	// Create writes all entries to a new artifact at dest. It must not
	// leave a partial file behind on failure.
	Create(dest string, entries []Entry) error
}

// Artifact describes a successfully written archive.
type Artifact struct {
	Path    string
	Size    int64
	Format  string
	Entries []Entry
}

// Write tries each builder in order against baseName (the artifact path
// without extension). Any pre-existing artifact of the candidate name is
// removed first, so re-runs replace their previous output. The first
// builder that succeeds wins; if all fail their errors are joined.
func Write(baseName string, entries []Entry, builders []Builder) (*Artifact, error) {
	if len(builders) == 0 {
		return nil, fmt.Errorf("no archive builders configured")
	}

	var errs []error
	for _, b := range builders {
		dest := baseName + b.Extension()
		if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("removing previous %s: %w", dest, err))
			continue
		}

		if err := b.Create(dest, entries); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Extension(), err))
			// Best effort: Create promises cleanup, this covers crashes
			// between file creation and the first write.
			_ = os.Remove(dest)
			continue
		}

		info, err := os.Stat(dest)
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", dest, err))
			continue
		}
		return &Artifact{
			Path:    dest,
			Size:    info.Size(),
			Format:  b.Extension(),
			Entries: entries,
		}, nil
	}
	return nil, errors.Join(errs...)
}
