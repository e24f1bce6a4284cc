// Command xtcconv converts a directory of already-decoded page images
// into an XTC or XTCH container for e-ink readers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/xtcconv/xtcconv/pkg/container"
	"github.com/xtcconv/xtcconv/pkg/pipeline"
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/xtcerr"
	"github.com/xtcconv/xtcconv/pkg/xtcopts"
)

const (
	exitOK                 = 0
	exitUnexpected         = 1
	exitInvalidArgs        = 2
	exitMalformedInput     = 3
	exitMalformedContainer = 4
	exitCancelled          = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("xtcconv", flag.ContinueOnError)

	device := fs.String("device", "X4", "device geometry: X4 or X3")
	is2bit := fs.Bool("2bit", false, "produce XTCH (2-bit) instead of XTC (1-bit)")
	ditherAlgo := fs.String("dither", "stucki", "dither algorithm")
	contrast := fs.Int("contrast", 0, "histogram-stretch intensity: 0,2,4,6,8")
	gamma := fs.Float64("gamma", 1.0, "gamma correction, clamped to [0.1, 3.0]")
	invert := fs.Bool("invert", false, "invert before grayscale")
	padBlack := fs.Bool("pad-black", false, "pad with 0 instead of 255")
	orientation := fs.String("orientation", "landscape", "portrait or landscape")
	split := fs.String("split", "overlap", "landscape split behaviour: overlap, split, nosplit")
	manhwa := fs.Bool("manhwa", false, "enable the manhwa vertical stitcher")
	overlap := fs.Int("overlap", 50, "manhwa overlap percent: 30, 50, or 75")
	sideways := fs.Bool("sideways", false, "emit sideways overview pages")
	includeOverviews := fs.Bool("include-overviews", false, "emit letterboxed overview pages")
	imageMode := fs.String("image-mode", "cover", "single-image scaling: cover, letterbox, fill, crop")
	fps := fs.Float64("fps", 1.0, "video frame rate")
	sourceType := fs.String("source", "cbz", "source type: cbz, pdf, image, video")
	streamed := fs.Bool("streamed", false, "use streaming container mode")
	hMargin := fs.Float64("hmargin", 0, "horizontal margin percent, [0,20]")
	vMargin := fs.Float64("vmargin", 0, "vertical margin percent, [0,20]")
	out := fs.String("o", "", "output file path (required)")

	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}

	opts, err := buildOptions(*device, *sourceType, *is2bit, *ditherAlgo, *contrast, *gamma,
		*invert, *padBlack, *orientation, *split, *manhwa, *overlap, *sideways,
		*includeOverviews, *imageMode, *fps, *streamed, *hMargin, *vMargin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "xtcconv:", err)
		return exitInvalidArgs
	}

	if *out == "" || fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "xtcconv: usage: xtcconv [flags] -o <output> <input-dir>")
		return exitInvalidArgs
	}

	src, err := newDirSource(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "xtcconv:", err)
		return exitMalformedInput
	}

	if err := convert(context.Background(), src, opts, *out); err != nil {
		fmt.Fprintln(os.Stderr, "xtcconv:", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, xtcerr.Cancelled):
		return exitCancelled
	case errors.Is(err, xtcerr.MalformedContainer), errors.Is(err, xtcerr.MalformedChunk):
		return exitMalformedContainer
	case errors.Is(err, xtcerr.FrameDecodeFailure):
		return exitMalformedInput
	case errors.Is(err, xtcerr.InvalidOption):
		return exitInvalidArgs
	default:
		return exitUnexpected
	}
}

func buildOptions(device, sourceType string, is2bit bool, ditherAlgo string, contrast int,
	gamma float64, invert, padBlack bool, orientation, split string, manhwa bool, overlap int,
	sideways, includeOverviews bool, imageMode string, fps float64, streamed bool,
	hMargin, vMargin float64) (xtcopts.ConversionOptions, error) {

	dev, err := xtcopts.ParseDevice(device)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	src, err := xtcopts.ParseSourceType(sourceType)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	dither, err := xtcopts.ParseDitherAlgorithm(ditherAlgo)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	orient, err := xtcopts.ParseOrientation(orientation)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	splitMode, err := xtcopts.ParseSplitMode(split)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	imgMode, err := xtcopts.ParseImageMode(imageMode)
	if err != nil {
		return xtcopts.ConversionOptions{}, err
	}

	o := xtcopts.ConversionOptions{
		Device:                  dev,
		SourceType:              src,
		Is2Bit:                  is2bit,
		Dither:                  dither,
		Contrast:                contrast,
		Gamma:                   xtcopts.ClampGamma(gamma),
		Invert:                  invert,
		PadBlack:                padBlack,
		Orientation:             orient,
		SplitMode:               splitMode,
		IncludeOverviews:        includeOverviews,
		SidewaysOverviews:       sideways,
		Manhwa:                  manhwa,
		ManhwaOverlapPercent:    overlap,
		ImageMode:               imgMode,
		VideoFps:                fps,
		HorizontalMarginPercent: hMargin,
		VerticalMarginPercent:   vMargin,
		Streamed:                streamed,
	}
	if err := o.Validate(); err != nil {
		return xtcopts.ConversionOptions{}, err
	}
	return o, nil
}

// dirSource implements pipeline.Source over a directory of PNG/JPEG
// files, sorted by filename — the CLI's stand-in for the archive/PDF/
// video collaborators spec §6 leaves external.
type dirSource struct {
	paths []string
}

func newDirSource(dir string) (*dirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".png" || ext == ".jpg" || ext == ".jpeg" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no page images found in %s", dir)
	}
	return &dirSource{paths: paths}, nil
}

func (d *dirSource) NumFrames() int { return len(d.paths) }

func (d *dirSource) Frame(ctx context.Context, index int) (*raster.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(d.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return raster.FromImage(img), nil
}

func convert(ctx context.Context, src pipeline.Source, opts xtcopts.ConversionOptions, outPath string) error {
	orch := pipeline.New(0)
	result, err := orch.Run(ctx, src, opts)
	if err != nil {
		return err
	}

	if opts.Streamed {
		return writeStreamed(result, opts, outPath)
	}

	pages := make([]container.PageInput, len(result.Pages))
	for i, p := range result.Pages {
		pages[i] = container.PageInput{Width: uint16(p.Width), Height: uint16(p.Height), Chunk: p.Chunk}
	}

	data, err := container.Build(pages, nil, opts.Is2Bit)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", xtcerr.IoFailure, err)
	}
	return nil
}

// writeStreamed commits the container's header, metadata, and index up
// front and appends each page chunk in a single pass, exercising the
// spec §9 streaming writer instead of buffering the whole file in memory.
func writeStreamed(result *pipeline.Result, opts xtcopts.ConversionOptions, outPath string) error {
	devW, devH := opts.Device.Dims()

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w: %v", xtcerr.IoFailure, err)
	}
	defer f.Close()

	sw, err := container.NewStreamWriter(f, len(result.Pages), devW, devH, opts.Is2Bit, nil)
	if err != nil {
		return err
	}
	for _, p := range result.Pages {
		if err := sw.WritePage(p.Chunk); err != nil {
			return err
		}
	}
	return sw.Finish()
}
