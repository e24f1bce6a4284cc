package pack

import "github.com/xtcconv/xtcconv/pkg/raster"

// PackXTG packs a grayscale frame into a complete XTG chunk (header +
// row-major, MSB-first 1-bit payload). gray >= 128 packs as bit 1
// (white); anything else packs as bit 0 (black).
func PackXTG(f *raster.Frame) []byte {
	w, h := f.Width, f.Height
	rowBytes := ceilDiv(w, 8)
	payload := make([]byte, rowBytes*h)

	for y := 0; y < h; y++ {
		rowOff := y * rowBytes
		for x := 0; x < w; x++ {
			c := f.At(x, y)
			if c.R >= 128 {
				payload[rowOff+x>>3] |= 1 << uint(7-(x&7))
			}
		}
	}

	header := encodeHeader(ChunkHeader{
		Magic:      magicXTG,
		Width:      uint16(w),
		Height:     uint16(h),
		PayloadLen: uint32(len(payload)),
		Digest:     digest(payload),
	})
	return append(header, payload...)
}

// UnpackXTG decodes an XTG payload (without its header) into a grayscale
// frame of size (w, h).
func UnpackXTG(payload []byte, w, h int) *raster.Frame {
	rowBytes := ceilDiv(w, 8)
	dst := raster.NewFrame(w, h)
	for y := 0; y < h; y++ {
		rowOff := y * rowBytes
		for x := 0; x < w; x++ {
			bit := (payload[rowOff+x>>3] >> uint(7-(x&7))) & 1
			var v uint8
			if bit == 1 {
				v = 255
			}
			setGrayPixel(dst, x, y, v)
		}
	}
	return dst
}

func setGrayPixel(f *raster.Frame, x, y int, v uint8) {
	i := (y*f.Width + x) * 4
	f.Pix[i] = v
	f.Pix[i+1] = v
	f.Pix[i+2] = v
	f.Pix[i+3] = 255
}
