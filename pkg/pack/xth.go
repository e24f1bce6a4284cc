package pack

import "github.com/xtcconv/xtcconv/pkg/raster"

// xthLevel maps a grayscale value to a 2-bit quantization band per spec
// §4.5: >=212 white(0), >=127 light(1), >=42 dark(2), else black(3).
func xthLevel(gray uint8) uint8 {
	switch {
	case gray >= 212:
		return 0
	case gray >= 127:
		return 1
	case gray >= 42:
		return 2
	default:
		return 3
	}
}

// PackXTH packs a grayscale frame into a complete XTH chunk: two
// bit-planes, each laid out column-major with columns written
// right-to-left (buffer column index = w-1-x).
func PackXTH(f *raster.Frame) []byte {
	w, h := f.Width, f.Height
	colBytes := ceilDiv(h, 8)
	planeSize := colBytes * w
	payload := make([]byte, 2*planeSize)

	plane0 := payload[:planeSize]
	plane1 := payload[planeSize:]

	for x := 0; x < w; x++ {
		col := w - 1 - x
		colOffset := col * colBytes
		for y := 0; y < h; y++ {
			level := xthLevel(f.At(x, y).R)
			byteOff := colOffset + y>>3
			bit := uint(7 - (y & 7))
			if level&1 != 0 {
				plane0[byteOff] |= 1 << bit
			}
			if level&2 != 0 {
				plane1[byteOff] |= 1 << bit
			}
		}
	}

	header := encodeHeader(ChunkHeader{
		Magic:      magicXTH,
		Width:      uint16(w),
		Height:     uint16(h),
		PayloadLen: uint32(len(payload)),
		Digest:     digest(payload),
	})
	return append(header, payload...)
}

// xthLevelToGray maps a 2-bit level back to its representative grayscale
// value: {255,170,85,0} for levels {white=0,light=1,dark=2,black=3}
// respectively — inverted from packing order (level 3 is darkest).
func xthLevelToGray(level uint8) uint8 {
	switch level {
	case 0:
		return 255
	case 1:
		return 170
	case 2:
		return 85
	default:
		return 0
	}
}

// UnpackXTH decodes an XTH payload (without its header) into a grayscale
// frame of size (w, h).
func UnpackXTH(payload []byte, w, h int) *raster.Frame {
	colBytes := ceilDiv(h, 8)
	planeSize := colBytes * w
	plane0 := payload[:planeSize]
	plane1 := payload[planeSize:]

	dst := raster.NewFrame(w, h)
	for x := 0; x < w; x++ {
		col := w - 1 - x
		colOffset := col * colBytes
		for y := 0; y < h; y++ {
			byteOff := colOffset + y>>3
			bit := uint(7 - (y & 7))
			var level uint8
			if plane0[byteOff]&(1<<bit) != 0 {
				level |= 1
			}
			if plane1[byteOff]&(1<<bit) != 0 {
				level |= 2
			}
			setGrayPixel(dst, x, y, xthLevelToGray(level))
		}
	}
	return dst
}
