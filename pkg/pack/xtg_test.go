package pack

import (
	"image/color"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/testimage"
)

func TestPackXTGWhiteFrame(t *testing.T) {
	f := testimage.Solid(480, 800, 255)

	chunk := PackXTG(f)

	const want = 22 + 60*800
	if len(chunk) != want {
		t.Fatalf("len(chunk) = %d, want %d", len(chunk), want)
	}
	if string(chunk[0:4]) != "XTG\x00" {
		t.Fatalf("magic = %q, want XTG\\0", chunk[0:4])
	}
	for i, b := range chunk[HeaderSize:] {
		if b != 0xFF {
			t.Fatalf("payload[%d] = %#x, want 0xff", i, b)
		}
	}
}

func TestPackUnpackXTGRoundTrip(t *testing.T) {
	f := raster.NewFrame(37, 19)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if (x+y)%3 == 0 {
				f.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				f.Set(x, y, color.RGBA{A: 255})
			}
		}
	}

	chunk := PackXTG(f)
	hdr, err := decodeHeader(chunk)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if int(hdr.Width) != 37 || int(hdr.Height) != 19 {
		t.Fatalf("header dims = %dx%d, want 37x19", hdr.Width, hdr.Height)
	}

	got := UnpackXTG(chunk[HeaderSize:], 37, 19)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			want := f.At(x, y)
			gotC := got.At(x, y)
			if want.R >= 128 && gotC.R < 200 {
				t.Fatalf("(%d,%d) expected light, got %v", x, y, gotC)
			}
			if want.R < 128 && gotC.R > 50 {
				t.Fatalf("(%d,%d) expected dark, got %v", x, y, gotC)
			}
		}
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		is2bit       bool
		want         int
	}{
		{"1bit-480x800", 480, 800, false, 22 + 60*800},
		{"2bit-480x800", 480, 800, true, 22 + 2*100*480},
		{"1bit-odd-width", 7, 8, false, 22 + 1*8},
		{"2bit-odd-height", 8, 7, true, 22 + 2*1*8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageSize(tt.w, tt.h, tt.is2bit); got != tt.want {
				t.Errorf("PageSize(%d,%d,%v) = %d, want %d", tt.w, tt.h, tt.is2bit, got, tt.want)
			}
		})
	}
}
