package mapset

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LintResult is the outcome of validating a single map file. Err is nil for
// a valid map.
type LintResult struct {
	Path string
	Grid *Grid
	Err  error
}

// LintAll parses every map file and collects per-file results in input
// order. Files are parsed with at most limit goroutines (limit <= 0 means
// sequential). Invalid maps are reported in the results, not as the
// returned error, which only fires on context cancellation.
func LintAll(ctx context.Context, paths []string, limit int) ([]LintResult, error) {
	results := make([]LintResult, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	if limit <= 0 {
		limit = 1
	}
	group.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grid, err := Load(path)
			results[i] = LintResult{Path: path, Grid: grid, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
