// Package testimage generates synthetic RGBA frames for exercising the
// conversion pipeline without a real CBZ/PDF/video source, using
// fogleman/gg the way stocks.go renders its chart.
package testimage

import (
	"github.com/fogleman/gg"

	"github.com/xtcconv/xtcconv/pkg/raster"
)

// Checkerboard renders a w x h RGBA frame tiled with cellSize squares
// alternating between two grays, useful for exercising dithering and
// resize modes with a pattern that isn't already flat.
func Checkerboard(w, h, cellSize int, lightGray, darkGray uint8) *raster.Frame {
	dc := gg.NewContext(w, h)
	light := float64(lightGray) / 255
	dark := float64(darkGray) / 255

	for y := 0; y < h; y += cellSize {
		for x := 0; x < w; x += cellSize {
			if (x/cellSize+y/cellSize)%2 == 0 {
				dc.SetRGB(light, light, light)
			} else {
				dc.SetRGB(dark, dark, dark)
			}
			dc.DrawRectangle(float64(x), float64(y), float64(cellSize), float64(cellSize))
			dc.Fill()
		}
	}
	return raster.FromImage(dc.Image())
}

// Solid renders a flat w x h frame of a single gray value.
func Solid(w, h int, gray uint8) *raster.Frame {
	dc := gg.NewContext(w, h)
	dc.SetRGB(float64(gray)/255, float64(gray)/255, float64(gray)/255)
	dc.Clear()
	return raster.FromImage(dc.Image())
}

// Gradient renders a horizontal linear gradient from left to right, from
// startGray to endGray, useful for exercising contrast stretch and
// gamma correction against a known distribution.
func Gradient(w, h int, startGray, endGray uint8) *raster.Frame {
	dc := gg.NewContext(w, h)
	for x := 0; x < w; x++ {
		t := float64(x) / float64(w-1)
		v := float64(startGray) + t*(float64(endGray)-float64(startGray))
		dc.SetRGB(v/255, v/255, v/255)
		dc.DrawLine(float64(x), 0, float64(x), float64(h))
		dc.SetLineWidth(1)
		dc.Stroke()
	}
	return raster.FromImage(dc.Image())
}

// Labeled renders a solid background with a centered text label, mimicking
// a manga panel with a chapter title for pipeline smoke tests.
func Labeled(w, h int, background, text uint8, label string) *raster.Frame {
	dc := gg.NewContext(w, h)
	dc.SetRGB(float64(background)/255, float64(background)/255, float64(background)/255)
	dc.Clear()
	dc.SetRGB(float64(text)/255, float64(text)/255, float64(text)/255)
	dc.DrawStringAnchored(label, float64(w)/2, float64(h)/2, 0.5, 0.5)
	return raster.FromImage(dc.Image())
}
