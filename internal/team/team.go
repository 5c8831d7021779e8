// Package team reads the team metadata file and extracts the leader's
// numeric identifier from its first line.
package team

import (
	"bufio"
	"io"
	"os"
	"regexp"
)

// PlaceholderID is used when the first line carries no digits. A missing
// identifier degrades the artifact name instead of aborting the run.
const PlaceholderID = "UNKNOWN"

var idPattern = regexp.MustCompile(`[0-9]+`)

// ExtractID scans the first line of r for its first run of digits. The
// second return value is false when no digits were found and the
// placeholder was substituted.
func ExtractID(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return PlaceholderID, false
	}
	if id := idPattern.FindString(scanner.Text()); id != "" {
		return id, true
	}
	return PlaceholderID, false
}

// Load opens the team file at path and extracts the identifier. The error
// is non-nil only when the file cannot be read; an unparsable first line is
// reported through the boolean, not the error.
func Load(path string) (id string, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	id, found = ExtractID(f)
	return id, found, nil
}
