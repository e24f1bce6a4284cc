package dither

import "github.com/xtcconv/xtcconv/pkg/raster"

// bayer4x4 is the ordered-dither threshold matrix from spec §4.4 —
// identical to the teacher's bayer4x4 table in bw24.go's
// ditherBayer4x4, just reused for a threshold decision rather than a
// direct black/white pick.
var bayer4x4 = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// ordered applies 4x4 Bayer dithering. The 2-bit case reuses the same
// quantizer as every other algorithm, per spec §4.4's "ordered 2-bit uses
// the same quantizer for simplicity" note.
func ordered(src *raster.Frame, is2bit bool) *raster.Frame {
	dst := raster.NewFrame(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			v := clampFloat(gray(src, x, y))
			threshold := float32(bayer4x4[y%4][x%4] * 16)

			var out uint8
			if v > threshold {
				out = 255
			} else {
				out = 0
			}
			if is2bit {
				out = quantize2(v)
			}
			setGray(dst, x, y, out)
		}
	}
	return dst
}
