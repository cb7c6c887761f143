// Package rasteriser fills a raster.Image's occupancy grid by sampling
// collision checks over the (alpha2, alpha4) configuration space, one row
// at a time, across a bounded pool of goroutines.
//
// The row-is-independent-unit-of-work shape is grounded on
// lvlath/gridgraph's benchmark harness, which already treats each grid row
// as separable; this package generalizes that into a production
// sync.WaitGroup + buffered-semaphore dispatch, in the style
// katalvlaran-lvlath's own concurrency_test.go uses for its goroutine
// fan-out (wg.Add/go func(){ defer wg.Done() }()). Per this, each
// worker gets its own instrument.Instrument clone so no two goroutines
// ever share mutable collision state.
package rasteriser

import (
	"context"
	"errors"
	"sync"

	"github.com/tweber-ill/taspaths-planner/internal/instrument"
	"github.com/tweber-ill/taspaths-planner/internal/raster"
)

// ErrCancelled is returned when ctx is cancelled before rasterisation
// completes.
var ErrCancelled = errors.New("rasteriser: cancelled")

// Options configures a Run.
type Options struct {
	// Workers bounds the number of concurrently running goroutines. A value
	// <= 0 defaults to 1 (sequential, still correct).
	Workers int

	// Progress, if non-nil, is called once per completed row (rows may be
	// reported out of order). It must be safe to call concurrently.
	Progress func(row int)
}

// Run rasterises the (alpha2, alpha4) occupancy of space into img: for
// every pixel it sets alpha2/alpha4 on a private instrument clone and
// records whether the resulting configuration collides.
//
// ctx is checked before dispatching each row; a cancelled context stops
// dispatching new rows and returns ErrCancelled once the in-flight rows
// drain.
func Run(ctx context.Context, space *instrument.Space, img *raster.Image, opts Options) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for y := 0; y < img.Height; y++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ErrCancelled
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			defer func() { <-sem }()

			worker := space.Instrument.Clone()
			line := make([]byte, img.Width)
			for x := 0; x < img.Width; x++ {
				alpha2, alpha4 := img.PixelToAngle(raster.Pixel{X: x, Y: row})
				if err := worker.SetSampleAngles(alpha2, alpha4); err != nil {
					line[x] = 1
					continue
				}
				if collides(space, worker) {
					line[x] = 1
				}
			}
			if err := img.SetRow(row, line); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			if opts.Progress != nil {
				opts.Progress(row)
			}
		}(y)
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}
	select {
	case <-ctx.Done():
		return ErrCancelled
	default:
	}
	return nil
}

// collides checks worker's component geometry (which carries the swept
// alpha2/alpha4) against space's static walls and against itself, without
// touching space.Instrument, which the caller's goroutine still owns.
func collides(space *instrument.Space, worker *instrument.Instrument) bool {
	trial := instrument.NewSpace(space.FloorLenX, space.FloorLenY)
	trial.Walls = space.Walls
	trial.Backend = space.Backend
	trial.Instrument = worker
	return trial.CheckCollision2D()
}
