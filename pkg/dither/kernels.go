package dither

import "github.com/xtcconv/xtcconv/pkg/raster"

// tap is one error-diffusion coefficient: distribute weight/divisor of
// the quantization error to the neighbour at (dx, dy) relative to the
// current pixel.
type tap struct {
	dx, dy int
	weight int
}

// kernel is a complete error-diffusion mask.
type kernel struct {
	divisor int
	taps    []tap
}

// floydSteinbergKernel: right 7; next row left-down 3, down 5,
// right-down 1; divisor 16.
var floydSteinbergKernel = kernel{
	divisor: 16,
	taps: []tap{
		{1, 0, 7},
		{-1, 1, 3},
		{0, 1, 5},
		{1, 1, 1},
	},
}

// atkinsonKernel distributes only 6 of 8 parts of the error, by design —
// the residual 2/8 is dropped rather than redistributed, keeping
// midtones from smearing into large flat regions.
var atkinsonKernel = kernel{
	divisor: 8,
	taps: []tap{
		{1, 0, 1},
		{2, 0, 1},
		{-1, 1, 1},
		{0, 1, 1},
		{1, 1, 1},
		{0, 2, 1},
	},
}

var stuckiKernel = kernel{
	divisor: 42,
	taps: []tap{
		{1, 0, 8}, {2, 0, 4},
		{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
	},
}

var zhouFangKernel = kernel{
	divisor: 103,
	taps: []tap{
		{1, 0, 16}, {2, 0, 9},
		{-2, 1, 5}, {-1, 1, 11}, {0, 1, 16}, {1, 1, 11}, {2, 1, 5},
		{-2, 2, 3}, {-1, 2, 5}, {0, 2, 9}, {1, 2, 5}, {2, 2, 3},
	},
}

var sierraLiteKernel = kernel{
	divisor: 4,
	taps: []tap{
		{1, 0, 2},
		{-1, 1, 1}, {0, 1, 1},
	},
}

// errorDiffusion runs k over src left-to-right, top-to-bottom, quantizing
// each pixel and spreading err = old - new to unvisited neighbours. The
// error buffer is float32, allocated fresh per call — spec §5 requires
// this buffer be owned per slice/frame and never shared.
func errorDiffusion(src *raster.Frame, is2bit bool, k kernel) *raster.Frame {
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
			newVal := quantize(old, is2bit)
			setGray(dst, x, y, newVal)

			errv := old - float32(newVal)
			if errv == 0 {
				continue
			}
			for _, t := range k.taps {
				nx, ny := x+t.dx, y+t.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				buf[ny*w+nx] += errv * float32(t.weight) / float32(k.divisor)
			}
		}
	}
	return dst
}
