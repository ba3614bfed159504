package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run calls fn(ctx, i) for i in [0, n) with at most limit calls in flight.
// The first non-nil error cancels ctx for the remaining calls and is returned.
// Callers that want to continue past an item's failure must record it and return nil.
func Run(ctx context.Context, limit, n int, fn func(ctx context.Context, i int) error) error {
	if limit < 1 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
