// Package mapset discovers and validates the textual grid maps of a rescue
// project. The packaging pipeline only counts the files; deep validation of
// the grid format is offered separately for the maps lint command.
package mapset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the map files (".txt", non-recursive) directly under dir,
// sorted by name. It returns the paths relative to dir joined back onto it,
// so diagnostics can print them as the user would type them.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var maps []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			maps = append(maps, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(maps)
	return maps, nil
}
