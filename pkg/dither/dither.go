// Package dither implements the error-diffusion, ordered, Hilbert-curve
// and threshold quantizers of spec §4.4, dispatched off the tagged
// xtcopts.DitherAlgorithm variant.
//
// Every algorithm here processes a grayscale raster.Frame (R=G=B) and
// returns a new frame whose pixel values are already the packer's
// quantization levels (0/255 for 1-bit, one of {0,85,170,255} for 2-bit).
// Error is accumulated in a float32 buffer, never truncated to an integer
// mid-diffusion — spec §4.4 calls integer-truncation banding a required
// invariant to avoid.
package dither

import (
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/xtcopts"
)

// Dither runs algo over src, producing a quantized grayscale frame at
// is2bit's bit depth.
func Dither(src *raster.Frame, algo xtcopts.DitherAlgorithm, is2bit bool) *raster.Frame {
	switch algo {
	case xtcopts.DitherFloydSteinberg:
		return errorDiffusion(src, is2bit, floydSteinbergKernel)
	case xtcopts.DitherAtkinson:
		return errorDiffusion(src, is2bit, atkinsonKernel)
	case xtcopts.DitherStucki:
		return errorDiffusion(src, is2bit, stuckiKernel)
	case xtcopts.DitherZhouFang:
		return errorDiffusion(src, is2bit, zhouFangKernel)
	case xtcopts.DitherSierraLite:
		return errorDiffusion(src, is2bit, sierraLiteKernel)
	case xtcopts.DitherOstromoukhov:
		return ostromoukhov(src, is2bit)
	case xtcopts.DitherOrdered:
		return ordered(src, is2bit)
	case xtcopts.DitherStochastic:
		return hilbert(src, is2bit)
	default:
		return threshold(src, is2bit)
	}
}

// quantize1 implements the 1-bit (2-level) quantizer.
func quantize1(v float32) uint8 {
	if v < 128 {
		return 0
	}
	return 255
}

// quantize2 implements the 2-bit (4-level) quantizer with strict-less-than
// band comparisons per spec §4.4.
func quantize2(v float32) uint8 {
	switch {
	case v < 42:
		return 0
	case v < 127:
		return 85
	case v < 212:
		return 170
	default:
		return 255
	}
}

func quantize(v float32, is2bit bool) uint8 {
	if is2bit {
		return quantize2(v)
	}
	return quantize1(v)
}

func clampFloat(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func gray(f *raster.Frame, x, y int) float32 {
	i := (y*f.Width + x) * 4
	return float32(f.Pix[i])
}

func setGray(dst *raster.Frame, x, y int, v uint8) {
	i := (y*dst.Width + x) * 4
	dst.Pix[i] = v
	dst.Pix[i+1] = v
	dst.Pix[i+2] = v
	dst.Pix[i+3] = 255
}

// threshold is the "none" algorithm: direct quantization with no
// diffusion.
func threshold(src *raster.Frame, is2bit bool) *raster.Frame {
	dst := raster.NewFrame(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			setGray(dst, x, y, quantize(clampFloat(gray(src, x, y)), is2bit))
		}
	}
	return dst
}
