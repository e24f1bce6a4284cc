package pipeline

import (
	"github.com/xtcconv/xtcconv/pkg/geometry"
	"github.com/xtcconv/xtcconv/pkg/manhwa"
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/xtcopts"
)

// fanOut expands one cropped, filtered source frame into the fixed-order
// sequence of device-resolution grayscale rasters spec §4.6 step 3
// describes. Dithering and packing happen after this returns. Every page
// except the manhwa stitcher's slices is drawn into a buffer borrowed
// from pool; the caller returns each page to pool once it has been
// dithered.
func fanOut(src *raster.Frame, opts xtcopts.ConversionOptions, devW, devH int, stitcher *manhwa.Stitcher, pool *framePool) ([]*raster.Frame, error) {
	var pages []*raster.Frame

	if opts.SidewaysOverviews && !opts.Manhwa {
		rotated := raster.Rotate(src, 90)
		pages = append(pages, letterboxInto(pool, rotated, letterboxPad(opts), opts.Is2Bit))
	}

	if opts.IncludeOverviews && !opts.Manhwa {
		pages = append(pages, letterboxInto(pool, src, letterboxPad(opts), opts.Is2Bit))
	}

	switch {
	case opts.SourceType == xtcopts.SourceImage && opts.SplitMode == xtcopts.SplitNone && !opts.Manhwa:
		angle := geometry.OrientationAngle(opts.Orientation)
		rotated := raster.Rotate(src, angle)
		pages = append(pages, scaleByImageMode(pool, rotated, opts, devW, devH))

	case opts.Manhwa:
		pages = append(pages, stitcher.Append(src)...)

	case opts.Orientation == xtcopts.OrientationPortrait:
		pages = append(pages, letterboxInto(pool, src, letterboxPad(opts), opts.Is2Bit))

	default:
		pages = append(pages, landscapeFanOut(pool, src, opts, devW, devH)...)
	}

	return pages, nil
}

func landscapeFanOut(pool *framePool, src *raster.Frame, opts xtcopts.ConversionOptions, devW, devH int) []*raster.Frame {
	pad := letterboxPad(opts)

	// A genuinely wide crop (width >= height, e.g. a two-page spread) is
	// the case splitting exists for; a crop that's already narrower than
	// it is tall gets a plain rotate-and-letterbox instead.
	if src.Width >= src.Height && opts.SplitMode != xtcopts.SplitNone {
		switch opts.SplitMode {
		case xtcopts.SplitOverlap:
			segments := geometry.OverlapSegments(src.Width, src.Height, devW, devH)
			pages := make([]*raster.Frame, 0, len(segments))
			for _, seg := range segments {
				region := raster.ExtractRegion(src, 0, seg.Y, src.Width, seg.Height)
				rotated := raster.Rotate(region, 90)
				pages = append(pages, letterboxInto(pool, rotated, pad, opts.Is2Bit))
			}
			return pages

		case xtcopts.SplitSplit:
			half := src.Height / 2
			top := raster.ExtractRegion(src, 0, 0, src.Width, half)
			bottom := raster.ExtractRegion(src, 0, half, src.Width, src.Height-half)
			return []*raster.Frame{
				letterboxInto(pool, raster.Rotate(top, 90), pad, opts.Is2Bit),
				letterboxInto(pool, raster.Rotate(bottom, 90), pad, opts.Is2Bit),
			}
		}
	}

	return []*raster.Frame{letterboxInto(pool, raster.Rotate(src, 90), pad, opts.Is2Bit)}
}

func scaleByImageMode(pool *framePool, src *raster.Frame, opts xtcopts.ConversionOptions, devW, devH int) *raster.Frame {
	pad := letterboxPad(opts)
	dst := pool.Get()
	switch opts.ImageMode {
	case xtcopts.ImageCover:
		raster.ResizeCoverInto(dst, src, opts.Is2Bit)
	case xtcopts.ImageFill:
		raster.ResizeFillInto(dst, src, opts.Is2Bit)
	case xtcopts.ImageCrop:
		raster.ResizeCropInto(dst, src, pad)
	default:
		raster.ResizeLetterboxInto(dst, src, pad, opts.Is2Bit)
	}
	return dst
}

func letterboxInto(pool *framePool, src *raster.Frame, pad uint8, is2bit bool) *raster.Frame {
	dst := pool.Get()
	raster.ResizeLetterboxInto(dst, src, pad, is2bit)
	return dst
}

func letterboxPad(opts xtcopts.ConversionOptions) uint8 {
	if opts.PadBlack {
		return 0
	}
	return 255
}
