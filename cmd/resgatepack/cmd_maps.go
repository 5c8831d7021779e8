package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"resgatepack/internal/config"
	"resgatepack/internal/mapset"
	"resgatepack/internal/report"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Map file utilities",
}

// mapsLintCmd parses every map and validates the grid format, which the
// packaging pipeline deliberately does not do (it only counts files).
var mapsLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the grid format of every map file",
	Long: `Parses each map under the maps directory and validates the grid
format: only the symbols 'X' (wall), '.' (free), '@' (human) and 'E'
(entrance) are allowed, rows must have equal width, and each map needs
exactly one human and exactly one entrance on the grid border.`,
	RunE: runMapsLint,
}

func runMapsLint(cmd *cobra.Command, args []string) error {
	rep := report.NewConsole(cmd.OutOrStdout(), noColor)

	manifest, err := config.Load(workspace)
	if err != nil {
		return err
	}

	dir := filepath.Join(workspace, manifest.MapsDir)
	paths, err := mapset.Discover(dir)
	if err != nil {
		return fmt.Errorf("listing maps in %s: %w", manifest.MapsDir, err)
	}
	if len(paths) == 0 {
		rep.Warn("no map files found in %s", manifest.MapsDir)
		return nil
	}

	results, err := mapset.LintAll(cmd.Context(), paths, runtime.NumCPU())
	if err != nil {
		return err
	}

	invalid := 0
	for _, r := range results {
		name := filepath.Base(r.Path)
		if r.Err != nil {
			invalid++
			rep.Error("%s: %v", name, r.Err)
			continue
		}
		rep.Success("%s: %dx%d grid, entrance at (%d, %d)",
			name, r.Grid.Width, r.Grid.Height, r.Grid.Entrance.X, r.Grid.Entrance.Y)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d maps are invalid", invalid, len(results))
	}
	rep.Success("all %d maps are valid", len(results))
	return nil
}

func init() {
	mapsCmd.AddCommand(mapsLintCmd)
}
