package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunTiles dispatches fn over every tile in tiles, running up to numWorkers
// tiles concurrently. fn must only touch pixels within its tile's bounds, so
// no synchronization is needed across concurrent calls (spec.md §5). If
// numWorkers <= 0, runtime.NumCPU() is used. The first error returned by any
// fn cancels ctx for the others and is returned to the caller.
func RunTiles(ctx context.Context, tiles []Tile, numWorkers int, fn func(ctx context.Context, tile Tile) error) error {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			return fn(gctx, tile)
		})
	}

	return g.Wait()
}
