// Package raster implements the deterministic image transformations that
// sit between geometry and filtering: rotation, region extraction, and
// the four device-rectangle scaling modes.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Frame is a decoded RGBA raster, matching the RasterFrame entity of §3.
// Pixels are stored row-major, four bytes per pixel (R, G, B, A).
type Frame struct {
	Width, Height int
	Pix           []byte
}

// NewFrame allocates a zeroed frame of the given size.
func NewFrame(w, h int) *Frame {
	return &Frame{Width: w, Height: h, Pix: make([]byte, w*h*4)}
}

// FromImage copies an image.Image into a Frame.
func FromImage(src image.Image) *Frame {
	b := src.Bounds()
	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, bl, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := (y*f.Width + x) * 4
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(bl >> 8)
			f.Pix[i+3] = uint8(a >> 8)
		}
	}
	return f
}

// AsRGBA returns f as a standard library *image.RGBA, sharing no memory
// with f (callers may mutate either without affecting the other).
func (f *Frame) AsRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Pix)
	return img
}

// At returns the RGBA color at (x, y). Out-of-bounds coordinates return
// transparent black.
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	i := (y*f.Width + x) * 4
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: f.Pix[i+3]}
}

// Set writes the RGBA color at (x, y). Out-of-bounds writes are silently
// ignored.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = c.A
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c color.RGBA) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, c)
		}
	}
}

// Rotate returns a new frame rotated by deg degrees, one of 0, 90, 180,
// -90. Dimensions swap for ±90.
func Rotate(src *Frame, deg int) *Frame {
	switch ((deg % 360) + 360) % 360 {
	case 90:
		dst := NewFrame(src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				// (x, y) -> (h-1-y, x)
				dst.Set(src.Height-1-y, x, src.At(x, y))
			}
		}
		return dst
	case 270:
		dst := NewFrame(src.Height, src.Width)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				// (x, y) -> (y, w-1-x)
				dst.Set(y, src.Width-1-x, src.At(x, y))
			}
		}
		return dst
	case 180:
		dst := NewFrame(src.Width, src.Height)
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				dst.Set(src.Width-1-x, src.Height-1-y, src.At(x, y))
			}
		}
		return dst
	default:
		dst := NewFrame(src.Width, src.Height)
		copy(dst.Pix, src.Pix)
		return dst
	}
}

// ExtractRegion copies the sub-raster [x, x+w) x [y, y+h) of src into a
// new frame. The region is expected to lie within src's bounds.
func ExtractRegion(src *Frame, x, y, w, h int) *Frame {
	dst := NewFrame(w, h)
	for row := 0; row < h; row++ {
		srcRow := y + row
		if srcRow < 0 || srcRow >= src.Height {
			continue
		}
		srcStart := (srcRow*src.Width + x) * 4
		dstStart := row * w * 4
		n := w * 4
		if x < 0 || x+w > src.Width {
			// Fall back to per-pixel copy at clipped edges.
			for col := 0; col < w; col++ {
				dst.Set(col, row, src.At(x+col, srcRow))
			}
			continue
		}
		copy(dst.Pix[dstStart:dstStart+n], src.Pix[srcStart:srcStart+n])
	}
	return dst
}

// scaler returns the golang.org/x/image/draw interpolator this package
// uses for all scale operations. Bilinear approximation matches the
// teacher's photo.go resize and is fast enough for whole-book batch runs.
func scaler() draw.Interpolator {
	return draw.ApproxBiLinear
}
