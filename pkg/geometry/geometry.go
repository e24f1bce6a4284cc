// Package geometry computes the axis-aligned crop rectangles, orientation
// angles, and landscape-split segment layouts used by the pipeline before
// any pixels are touched.
package geometry

import "github.com/xtcconv/xtcconv/pkg/xtcopts"

// CropRect is an axis-aligned crop rectangle in source pixel coordinates.
type CropRect struct {
	X, Y          int
	Width, Height int
}

// clampMargin clamps a margin percentage to [0, 20], matching the range
// ConversionOptions.Validate already enforces but kept defensive here
// since geometry math is called from tests directly too.
func clampMargin(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 20 {
		return 20
	}
	return pct
}

// AxisCropRect computes the crop rectangle for a source of size
// (srcW, srcH) given margin percentages. In manhwa mode the vertical
// margin is forced to zero (manhwa strips are captured full-height).
func AxisCropRect(srcW, srcH int, hMarginPct, vMarginPct float64, manhwa bool) CropRect {
	hMarginPct = clampMargin(hMarginPct)
	vMarginPct = clampMargin(vMarginPct)
	if manhwa {
		vMarginPct = 0
	}

	cropX := minInt(int(float64(srcW)*hMarginPct/100), (srcW-1)/2)
	cropY := minInt(int(float64(srcH)*vMarginPct/100), (srcH-1)/2)

	width := srcW - 2*cropX
	if width < 1 {
		width = 1
	}
	height := srcH - 2*cropY
	if height < 1 {
		height = 1
	}

	return CropRect{X: cropX, Y: cropY, Width: width, Height: height}
}

// OrientationAngle returns the rotation angle in degrees a page should be
// rotated by before device-rectangle scaling: landscape pages rotate 90°,
// portrait pages don't rotate.
func OrientationAngle(o xtcopts.Orientation) int {
	if o == xtcopts.OrientationLandscape {
		return 90
	}
	return 0
}

// Segment is one region of an overlap-split landscape page, given as a
// [Y, Y+Height) band spanning the full page width.
type Segment struct {
	Y      int
	Height int
}

// OverlapSegments computes the landscape-split segment layout for a page
// of size (w, h) whose segments are rotated 90° into a device of size
// (devW, devH). It starts at 3 segments and grows until the shift between
// consecutive segments is at most 95% of the segment height (or the cap
// of 10 segments is hit), so consecutive segments retain meaningful
// overlap.
func OverlapSegments(w, h, devW, devH int) []Segment {
	scale := float64(devH) / float64(w)
	segmentH := int(float64(devW) / scale)
	if segmentH < 1 {
		segmentH = 1
	}

	n := 3
	shift := computeShift(segmentH, h, n)
	for float64(shift)/float64(segmentH) > 0.95 && n < 10 {
		n++
		shift = computeShift(segmentH, h, n)
	}

	segments := make([]Segment, 0, n)
	y := 0
	for i := 0; i < n; i++ {
		height := segmentH
		if i == n-1 {
			height = h - shift*(n-1)
			if height < 1 {
				height = 1
			}
		}
		segments = append(segments, Segment{Y: y, Height: height})
		if i < n-1 {
			y += shift
		}
	}
	return segments
}

// computeShift implements shift = floor(segmentH - (segmentH*n - h)/(n-1)).
func computeShift(segmentH, h, n int) int {
	if n <= 1 {
		return segmentH
	}
	return segmentH - floorDiv(segmentH*n-h, n-1)
}

// floorDiv is integer division rounding toward negative infinity, unlike
// Go's built-in truncating "/".
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
