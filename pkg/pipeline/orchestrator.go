// Package pipeline implements the per-page orchestration of spec §4.6:
// crop, filter, fan-out, dither, and pack, with optional worker
// concurrency across independent source frames and a strict source-order
// write-back.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/xtcconv/xtcconv/pkg/dither"
	"github.com/xtcconv/xtcconv/pkg/filter"
	"github.com/xtcconv/xtcconv/pkg/geometry"
	"github.com/xtcconv/xtcconv/pkg/manhwa"
	"github.com/xtcconv/xtcconv/pkg/pack"
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/xtcerr"
	"github.com/xtcconv/xtcconv/pkg/xtcopts"
)

// Source produces decoded RGBA frames for each source page. Implementing
// archive/PDF/video readers is an external collaborator's job (spec §6);
// this interface is the seam they plug into.
type Source interface {
	NumFrames() int
	Frame(ctx context.Context, index int) (*raster.Frame, error)
}

// ProcessedPage is one fully packed, ready-to-write container page.
type ProcessedPage struct {
	Width, Height int
	Chunk         []byte
	Preview       *raster.Frame // first page of the source frame it came from, may be nil
}

// Result is everything the container assembler needs from one
// conversion run.
type Result struct {
	Pages   []ProcessedPage
	Mapping *PageMapping
}

// Orchestrator drives the pipeline. Concurrency controls how many source
// frames are decoded/cropped/filtered in parallel; 1 disables
// concurrency entirely (required for sources that must serialize
// decode, per spec §5).
type Orchestrator struct {
	Concurrency int
}

// New creates an Orchestrator. concurrency <= 0 defaults to
// runtime.NumCPU().
func New(concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Orchestrator{Concurrency: concurrency}
}

type preparedFrame struct {
	index    int
	filtered *raster.Frame
	err      error
}

// Run converts every frame src produces into packed pages, in source
// order, per opts.
func (o *Orchestrator) Run(ctx context.Context, src Source, opts xtcopts.ConversionOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	devW, devH := opts.Device.Dims()
	numFrames := src.NumFrames()

	prepared, err := o.prepareFrames(ctx, src, opts, numFrames)
	if err != nil {
		return nil, err
	}

	mapping := NewPageMapping(numFrames)
	pool := newFramePool(devW, devH)

	var stitcher *manhwa.Stitcher
	if opts.Manhwa {
		stitcher = manhwa.New(devW, devH, opts.ManhwaOverlapPercent, opts.PadBlack)
	}

	var pages []ProcessedPage
	for i := 0; i < numFrames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", xtcerr.Cancelled, err)
		}

		pf := prepared[i]
		if pf.err != nil {
			if numFrames > 1 {
				log.Printf("xtcconv: skipping frame %d: %v", i, pf.err)
				mapping.Record(i, 0)
				continue
			}
			return nil, xtcerr.Frame(i, pf.err)
		}

		fanPages, err := fanOut(pf.filtered, opts, devW, devH, stitcher, pool)
		if err != nil {
			return nil, xtcerr.Frame(i, err)
		}

		for j, grayPage := range fanPages {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", xtcerr.Cancelled, err)
			}
			dithered := dither.Dither(grayPage, opts.Dither, opts.Is2Bit)
			pool.Put(grayPage)
			chunk := packPage(dithered, opts.Is2Bit)
			var preview *raster.Frame
			if j == 0 {
				preview = dithered
			}
			pages = append(pages, ProcessedPage{Width: devW, Height: devH, Chunk: chunk, Preview: preview})
		}
		mapping.Record(i, len(fanPages))
	}

	if stitcher != nil {
		if final := stitcher.Finish(); final != nil {
			dithered := dither.Dither(final, opts.Dither, opts.Is2Bit)
			chunk := packPage(dithered, opts.Is2Bit)
			pages = append(pages, ProcessedPage{Width: devW, Height: devH, Chunk: chunk, Preview: dithered})
			if numFrames > 0 {
				mapping.Bump(numFrames-1, 1)
			}
		}
	}

	return &Result{Pages: pages, Mapping: mapping}, nil
}

func packPage(f *raster.Frame, is2bit bool) []byte {
	if is2bit {
		return pack.PackXTH(f)
	}
	return pack.PackXTG(f)
}

// prepareFrames runs decode+crop+filter for every source frame, using up
// to o.Concurrency workers, and returns results ordered by source index
// — the CPU-bound half of the pipeline that spec §5 allows to run
// data-parallel across frames.
func (o *Orchestrator) prepareFrames(ctx context.Context, src Source, opts xtcopts.ConversionOptions, numFrames int) ([]preparedFrame, error) {
	results := make([]preparedFrame, numFrames)
	if numFrames == 0 {
		return results, nil
	}

	indices := make(chan int, numFrames)
	var wg sync.WaitGroup

	workers := o.Concurrency
	if workers > numFrames {
		workers = numFrames
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indices {
				results[idx] = prepareOne(ctx, src, opts, idx)
			}
		}()
	}

	for i := 0; i < numFrames; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", xtcerr.Cancelled, err)
	}
	return results, nil
}

func prepareOne(ctx context.Context, src Source, opts xtcopts.ConversionOptions, index int) preparedFrame {
	frame, err := src.Frame(ctx, index)
	if err != nil {
		return preparedFrame{index: index, err: fmt.Errorf("%w: %v", xtcerr.FrameDecodeFailure, err)}
	}

	crop := geometry.AxisCropRect(frame.Width, frame.Height, opts.HorizontalMarginPercent, opts.VerticalMarginPercent, opts.Manhwa)
	cropped := raster.ExtractRegion(frame, crop.X, crop.Y, crop.Width, crop.Height)
	filtered := filter.Apply(cropped, filter.Options{
		Contrast: opts.Contrast,
		Gamma:    opts.Gamma,
		Invert:   opts.Invert,
	})

	return preparedFrame{index: index, filtered: filtered}
}
