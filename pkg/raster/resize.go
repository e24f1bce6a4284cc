package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ResizeLetterbox scales src by min(devW/w, devH/h), centers it, and fills
// the remainder with a pad pixel of value pad (typically 0 or 255).
// is2bit selects the interpolator: strict downscales for 1-bit output go
// through BoxDownsample instead of bilinear (§4.2).
func ResizeLetterbox(src *Frame, devW, devH int, pad uint8, is2bit bool) *Frame {
	dst := NewFrame(devW, devH)
	ResizeLetterboxInto(dst, src, pad, is2bit)
	return dst
}

// ResizeLetterboxInto is ResizeLetterbox writing into a caller-supplied
// dst instead of allocating one, so callers can reuse a pooled buffer of
// the same (devW, devH). dst's existing dimensions are used as the
// target size.
func ResizeLetterboxInto(dst *Frame, src *Frame, pad uint8, is2bit bool) {
	devW, devH := dst.Width, dst.Height
	scale := minFloat(float64(devW)/float64(src.Width), float64(devH)/float64(src.Height))
	scaledW := maxInt(1, int(float64(src.Width)*scale+0.5))
	scaledH := maxInt(1, int(float64(src.Height)*scale+0.5))

	dst.Fill(color.RGBA{R: pad, G: pad, B: pad, A: 255})

	offsetX := (devW - scaledW) / 2
	offsetY := (devH - scaledH) / 2

	scaleInto(dst, offsetX, offsetY, scaledW, scaledH, src, is2bit)
}

// ResizeFill stretches src to exactly (devW, devH), ignoring aspect ratio.
func ResizeFill(src *Frame, devW, devH int, is2bit bool) *Frame {
	dst := NewFrame(devW, devH)
	ResizeFillInto(dst, src, is2bit)
	return dst
}

// ResizeFillInto is ResizeFill writing into a caller-supplied dst.
func ResizeFillInto(dst *Frame, src *Frame, is2bit bool) {
	scaleInto(dst, 0, 0, dst.Width, dst.Height, src, is2bit)
}

// ResizeCover scales src by max(devW/w, devH/h), centers it, and crops the
// overflow so the result exactly fills (devW, devH) with no padding.
func ResizeCover(src *Frame, devW, devH int, is2bit bool) *Frame {
	dst := NewFrame(devW, devH)
	ResizeCoverInto(dst, src, is2bit)
	return dst
}

// ResizeCoverInto is ResizeCover writing into a caller-supplied dst.
func ResizeCoverInto(dst *Frame, src *Frame, is2bit bool) {
	devW, devH := dst.Width, dst.Height
	scale := maxFloat(float64(devW)/float64(src.Width), float64(devH)/float64(src.Height))
	scaledW := maxInt(devW, int(float64(src.Width)*scale+0.5))
	scaledH := maxInt(devH, int(float64(src.Height)*scale+0.5))

	scaled := NewFrame(scaledW, scaledH)
	scaleInto(scaled, 0, 0, scaledW, scaledH, src, is2bit)

	offsetX := (scaledW - devW) / 2
	offsetY := (scaledH - devH) / 2
	region := ExtractRegion(scaled, offsetX, offsetY, devW, devH)
	copy(dst.Pix, region.Pix)
}

// ResizeCrop performs no scaling: it centers src within a (devW, devH)
// canvas, padding with pad if src is smaller, and cropping if larger.
func ResizeCrop(src *Frame, devW, devH int, pad uint8) *Frame {
	dst := NewFrame(devW, devH)
	ResizeCropInto(dst, src, pad)
	return dst
}

// ResizeCropInto is ResizeCrop writing into a caller-supplied dst.
func ResizeCropInto(dst *Frame, src *Frame, pad uint8) {
	devW, devH := dst.Width, dst.Height
	dst.Fill(color.RGBA{R: pad, G: pad, B: pad, A: 255})

	offsetX := (devW - src.Width) / 2
	offsetY := (devH - src.Height) / 2

	for y := 0; y < src.Height; y++ {
		dy := y + offsetY
		if dy < 0 || dy >= devH {
			continue
		}
		for x := 0; x < src.Width; x++ {
			dx := x + offsetX
			if dx < 0 || dx >= devW {
				continue
			}
			dst.Set(dx, dy, src.At(x, y))
		}
	}
}

// BoxDownsample area-averages src down to exactly (dstW, dstH). Used
// instead of bilinear scaling when the target is strictly smaller than
// the source and the output is 1-bit, since averaging preserves thin
// text strokes better than a bilinear kernel.
func BoxDownsample(src *Frame, dstW, dstH int) *Frame {
	dst := NewFrame(dstW, dstH)
	scaleX := float64(src.Width) / float64(dstW)
	scaleY := float64(src.Height) / float64(dstH)

	for dy := 0; dy < dstH; dy++ {
		sy0 := int(float64(dy) * scaleY)
		sy1 := int(float64(dy+1) * scaleY)
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		if sy1 > src.Height {
			sy1 = src.Height
		}
		for dx := 0; dx < dstW; dx++ {
			sx0 := int(float64(dx) * scaleX)
			sx1 := int(float64(dx+1) * scaleX)
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}
			if sx1 > src.Width {
				sx1 = src.Width
			}

			var sumR, sumG, sumB, sumA, count uint64
			for sy := sy0; sy < sy1; sy++ {
				for sx := sx0; sx < sx1; sx++ {
					c := src.At(sx, sy)
					sumR += uint64(c.R)
					sumG += uint64(c.G)
					sumB += uint64(c.B)
					sumA += uint64(c.A)
					count++
				}
			}
			if count == 0 {
				count = 1
			}
			dst.Set(dx, dy, color.RGBA{
				R: uint8(sumR / count),
				G: uint8(sumG / count),
				B: uint8(sumB / count),
				A: uint8(sumA / count),
			})
		}
	}
	return dst
}

// scaleInto scales src into a (w, h) rectangle placed at (offsetX,
// offsetY) within dst. A strict downscale (w < src.Width and h <
// src.Height) for 1-bit output goes through BoxDownsample, matching
// §4.2's "sharper text than bilinear" rule; everything else uses
// golang.org/x/image/draw's bilinear interpolator.
func scaleInto(dst *Frame, offsetX, offsetY, w, h int, src *Frame, is2bit bool) {
	if !is2bit && w < src.Width && h < src.Height {
		boxed := BoxDownsample(src, w, h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(offsetX+x, offsetY+y, boxed.At(x, y))
			}
		}
		return
	}

	dstImg := dst.AsRGBA()
	srcImg := src.AsRGBA()
	rect := image.Rect(offsetX, offsetY, offsetX+w, offsetY+h)
	scaler().Scale(dstImg, rect, srcImg, srcImg.Bounds(), draw.Over, nil)
	copy(dst.Pix, dstImg.Pix)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
