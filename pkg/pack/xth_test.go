package pack

import (
	"image/color"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/testimage"
)

func TestPackXTHBlackFrame(t *testing.T) {
	f := testimage.Solid(480, 800, 0)

	chunk := PackXTH(f)

	const want = 22 + 2*100*480
	if len(chunk) != want {
		t.Fatalf("len(chunk) = %d, want %d", len(chunk), want)
	}
	if string(chunk[0:4]) != "XTH\x00" {
		t.Fatalf("magic = %q, want XTH\\0", chunk[0:4])
	}
	for i, b := range chunk[HeaderSize:] {
		if b != 0xFF {
			t.Fatalf("payload[%d] = %#x, want 0xff (level 3, both planes set)", i, b)
		}
	}
}

func TestXTHLevelBands(t *testing.T) {
	tests := []struct {
		gray uint8
		want uint8
	}{
		{255, 0},
		{212, 0},
		{211, 1},
		{127, 1},
		{126, 2},
		{42, 2},
		{41, 3},
		{0, 3},
	}
	for _, tt := range tests {
		if got := xthLevel(tt.gray); got != tt.want {
			t.Errorf("xthLevel(%d) = %d, want %d", tt.gray, got, tt.want)
		}
	}
}

func TestPackUnpackXTHRoundTrip(t *testing.T) {
	f := raster.NewFrame(13, 21)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := uint8((x * 37) % 256)
			f.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	chunk := PackXTH(f)
	got := UnpackXTH(chunk[HeaderSize:], 13, 21)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			wantLevel := xthLevel(f.At(x, y).R)
			gotLevel := xthLevel(got.At(x, y).R)
			if wantLevel != gotLevel {
				t.Fatalf("(%d,%d) level = %d, want %d", x, y, gotLevel, wantLevel)
			}
		}
	}
}
