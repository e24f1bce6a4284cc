package dither

import "github.com/xtcconv/xtcconv/pkg/raster"

// ostromoukhovAnchorLow and ostromoukhovAnchorHigh are the coefficient
// triples (right, down-left, down) at v=0 and v=128 respectively. Spec
// §4.4's two segments, [0,128] and [128,255], form a tent: the first
// segment interpolates low->high, the second interpolates back high->low,
// so v=255 uses the low anchor again.
var (
	ostromoukhovAnchorLow  = [3]float64{0.7, 0.2, 0.1}
	ostromoukhovAnchorHigh = [3]float64{0.3, 0.4, 0.3}
)

func ostromoukhovCoeffs(v float32) (right, downLeft, down float64) {
	v = clampFloat(v)
	var t float64
	var lo, hi [3]float64
	if v <= 128 {
		t = float64(v) / 128.0
		lo, hi = ostromoukhovAnchorLow, ostromoukhovAnchorHigh
	} else {
		t = float64(v-128) / 127.0
		lo, hi = ostromoukhovAnchorHigh, ostromoukhovAnchorLow
	}
	right = lo[0] + t*(hi[0]-lo[0])
	downLeft = lo[1] + t*(hi[1]-lo[1])
	down = lo[2] + t*(hi[2]-lo[2])
	return
}

// ostromoukhov diffuses error with per-pixel coefficients that vary by
// input intensity, rather than a fixed kernel.
func ostromoukhov(src *raster.Frame, is2bit bool) *raster.Frame {
	w, h := src.Width, src.Height
	buf := make([]float32, w*h)
	for i := range buf {
		buf[i] = gray(src, i%w, i/w)
	}

	dst := raster.NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			old := clampFloat(buf[idx])
			right, downLeft, down := ostromoukhovCoeffs(old)
			newVal := quantize(old, is2bit)
			setGray(dst, x, y, newVal)

			errv := old - float32(newVal)
			if errv == 0 {
				continue
			}
			if x+1 < w {
				buf[idx+1] += errv * float32(right)
			}
			if y+1 < h {
				if x-1 >= 0 {
					buf[idx+w-1] += errv * float32(downLeft)
				}
				buf[idx+w] += errv * float32(down)
			}
		}
	}
	return dst
}
