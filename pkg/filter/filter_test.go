package filter

import (
	"image/color"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/raster"
)

func TestApplyInvert(t *testing.T) {
	f := raster.NewFrame(2, 2)
	f.Fill(color.RGBA{R: 10, G: 10, B: 10, A: 255})

	out := Apply(f, Options{Gamma: 1.0, Invert: true})
	got := out.At(0, 0).R
	if got < 240 {
		t.Errorf("inverted dark pixel gray = %d, want near 255", got)
	}
}

func TestApplyContrastStretchesToFullRange(t *testing.T) {
	f := raster.NewFrame(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			v := uint8(50 + (x+y)%150)
			f.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := Apply(f, Options{Contrast: 8, Gamma: 1.0})

	min, max := uint8(255), uint8(0)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			g := out.At(x, y).R
			if g < min {
				min = g
			}
			if g > max {
				max = g
			}
		}
	}
	if min > 1 {
		t.Errorf("min channel after contrast:8 = %d, want ~0", min)
	}
	if max < 254 {
		t.Errorf("max channel after contrast:8 = %d, want ~255", max)
	}
}

func TestApplyZeroContrastIsNoop(t *testing.T) {
	f := raster.NewFrame(4, 4)
	f.Fill(color.RGBA{R: 100, G: 100, B: 100, A: 255})

	out := Apply(f, Options{Contrast: 0, Gamma: 1.0})
	if out.At(0, 0).R != 100 {
		t.Errorf("contrast:0 changed gray to %d, want 100", out.At(0, 0).R)
	}
}

func TestApplyGammaPreservesEndpoints(t *testing.T) {
	f := raster.NewFrame(2, 1)
	f.Set(0, 0, color.RGBA{A: 255})
	f.Set(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := Apply(f, Options{Gamma: 2.2})
	if out.At(0, 0).R != 0 {
		t.Errorf("black under gamma = %d, want 0", out.At(0, 0).R)
	}
	if out.At(1, 0).R != 255 {
		t.Errorf("white under gamma = %d, want 255", out.At(1, 0).R)
	}
}

func TestApplyPreservesAlpha(t *testing.T) {
	f := raster.NewFrame(1, 1)
	f.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 128})

	out := Apply(f, Options{})
	if out.At(0, 0).A != 128 {
		t.Errorf("alpha = %d, want 128", out.At(0, 0).A)
	}
}
