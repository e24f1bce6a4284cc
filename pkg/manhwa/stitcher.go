// Package manhwa implements the infinite-vertical-strip reassembly of
// spec §4.7: source frames are appended to a growing buffer at device
// width, and full-height slices are sliced off (with overlap, except
// across blank regions) as the buffer accumulates.
package manhwa

import (
	"image/color"
	"math"

	"github.com/xtcconv/xtcconv/pkg/raster"
)

// blankStddevThreshold is the per-slice luminance standard deviation
// below which a slice is treated as filler and emitted without overlap.
const blankStddevThreshold = 5.0

// Stitcher holds the vertical accumulation buffer for one manhwa book.
type Stitcher struct {
	devW, devH   int
	overlapPct   int
	padBlack     bool
	buf          *raster.Frame // width devW, height grows
}

// New creates a stitcher targeting a device of size (devW, devH), with
// overlapPercent one of {30, 50, 75}.
func New(devW, devH, overlapPercent int, padBlack bool) *Stitcher {
	return &Stitcher{
		devW:       devW,
		devH:       devH,
		overlapPct: overlapPercent,
		padBlack:   padBlack,
		buf:        raster.NewFrame(devW, 0),
	}
}

// Append scales src to exactly devW wide (preserving aspect ratio) and
// appends it to the buffer, then slices off as many full-height pages as
// the buffer now holds. Returned slices are in top-to-bottom order.
func (s *Stitcher) Append(src *raster.Frame) []*raster.Frame {
	scaledH := src.Height * s.devW / src.Width
	if scaledH < 1 {
		scaledH = 1
	}
	scaled := raster.ResizeFill(src, s.devW, scaledH, false)
	s.buf = appendVertical(s.buf, scaled)

	var pages []*raster.Frame
	for s.buf.Height >= s.devH {
		slice := raster.ExtractRegion(s.buf, 0, 0, s.devW, s.devH)
		step := s.devH
		if !IsBlank(slice) {
			step = s.devH - s.devH*s.overlapPct/100
		}
		if step < 1 {
			step = 1
		}
		pages = append(pages, slice)
		s.buf = raster.ExtractRegion(s.buf, 0, step, s.devW, s.buf.Height-step)
	}
	return pages
}

// Finish flushes any residual buffer content shorter than devH, aligned
// to the top of a devW x devH canvas padded with the configured colour.
// It returns nil if there is no residual.
func (s *Stitcher) Finish() *raster.Frame {
	if s.buf.Height == 0 {
		return nil
	}

	pad := uint8(255)
	if s.padBlack {
		pad = 0
	}

	canvas := raster.NewFrame(s.devW, s.devH)
	canvas.Fill(color.RGBA{R: pad, G: pad, B: pad, A: 255})
	for y := 0; y < s.buf.Height && y < s.devH; y++ {
		for x := 0; x < s.devW; x++ {
			canvas.Set(x, y, s.buf.At(x, y))
		}
	}
	s.buf = raster.NewFrame(s.devW, 0)
	return canvas
}

// IsBlank reports whether slice's pixel luminance standard deviation is
// below blankStddevThreshold, matching the Python original's
// preprocess_for_manhwa blank check.
func IsBlank(slice *raster.Frame) bool {
	n := slice.Width * slice.Height
	if n == 0 {
		return true
	}

	var sum float64
	lum := make([]float64, 0, n)
	for y := 0; y < slice.Height; y++ {
		for x := 0; x < slice.Width; x++ {
			c := slice.At(x, y)
			l := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			lum = append(lum, l)
			sum += l
		}
	}
	mean := sum / float64(n)

	var variance float64
	for _, l := range lum {
		d := l - mean
		variance += d * d
	}
	variance /= float64(n)

	return math.Sqrt(variance) < blankStddevThreshold
}

func appendVertical(top, bottom *raster.Frame) *raster.Frame {
	out := raster.NewFrame(top.Width, top.Height+bottom.Height)
	for y := 0; y < top.Height; y++ {
		for x := 0; x < top.Width; x++ {
			out.Set(x, y, top.At(x, y))
		}
	}
	for y := 0; y < bottom.Height; y++ {
		for x := 0; x < bottom.Width; x++ {
			out.Set(x, top.Height+y, bottom.At(x, y))
		}
	}
	return out
}
