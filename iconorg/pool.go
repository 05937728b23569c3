package iconorg

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type fileOutcome struct {
	value string
	err   error
}

// mapFiles applies fn to every path using up to workers goroutines. The
// outcome for paths[i] is stored at index i, so callers see results in input
// order whatever the scheduling. With one worker the paths are processed
// strictly in order. Only context cancellation aborts the pass; per-file
// errors are returned in the outcomes.
func mapFiles(ctx context.Context, paths []string, workers int, bar *progressbar.ProgressBar, fn func(string) (string, error)) ([]fileOutcome, error) {
	out := make([]fileOutcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, p := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(p)
			out[i] = fileOutcome{value: v, err: err}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return out, nil
}

// newBar returns a progress bar on w, or nil when progress is disabled.
func newBar(enabled bool, w io.Writer, total int, description string) *progressbar.ProgressBar {
	if !enabled || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
