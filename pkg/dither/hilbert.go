package dither

import "github.com/xtcconv/xtcconv/pkg/raster"

// hilbert traverses a Hilbert curve of order n (n = smallest power of two
// >= max(w,h)), carrying quantization error along the curve rather than
// row-major. Points that fall outside the frame are skipped without
// consuming or producing error.
func hilbert(src *raster.Frame, is2bit bool) *raster.Frame {
	w, h := src.Width, src.Height
	dst := raster.NewFrame(w, h)

	side := 1
	for side < w || side < h {
		side <<= 1
	}
	order := 0
	for (1 << order) < side {
		order++
	}

	total := side * side
	var carriedError float32
	for d := 0; d < total; d++ {
		x, y := hilbertD2XY(order, d)
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		current := clampFloat(gray(src, x, y))
		v := clampFloat(current + carriedError)
		q := quantize(v, is2bit)
		setGray(dst, x, y, q)
		carriedError = current - float32(q)
	}
	return dst
}

// hilbertD2XY converts a distance along a Hilbert curve of order n (side
// length 2^n) into (x, y) coordinates. Standard d2xy construction.
func hilbertD2XY(order, d int) (x, y int) {
	n := 1 << order
	t := d
	for s := 1; s < n; s <<= 1 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		x, y = hilbertRotate(s, x, y, rx, ry)
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

func hilbertRotate(n, x, y, rx, ry int) (int, int) {
	if ry == 0 {
		if rx == 1 {
			x = n - 1 - x
			y = n - 1 - y
		}
		x, y = y, x
	}
	return x, y
}
