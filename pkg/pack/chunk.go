// Package pack implements the XTG (1-bit) and XTH (2-bit) per-page chunk
// codec of spec §4.5: bit-packing, the 22-byte chunk header, and their
// inverses.
package pack

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// HeaderSize is the fixed size of a chunk header in bytes.
const HeaderSize = 22

var (
	magicXTG = [4]byte{'X', 'T', 'G', 0}
	magicXTH = [4]byte{'X', 'T', 'H', 0}
)

// ChunkHeader is the 22-byte header prepended to every packed page.
type ChunkHeader struct {
	Magic       [4]byte
	Width       uint16
	Height      uint16
	ColorMode   uint8
	Compression uint8
	PayloadLen  uint32
	Digest      [8]byte
}

// digest returns a deterministic 8-byte content fingerprint of payload.
// The spec leaves the exact algorithm open ("any deterministic function
// of the payload is acceptable provided the reader only uses it for
// equality checks") — FNV-1a64 is used here since the reader never
// interprets it beyond byte-for-byte comparison.
func digest(payload []byte) [8]byte {
	h := fnv.New64a()
	h.Write(payload)
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], h.Sum64())
	return out
}

// encodeHeader serializes h into its 22-byte wire form.
func encodeHeader(h ChunkHeader) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Width)
	binary.LittleEndian.PutUint16(buf[6:8], h.Height)
	buf[8] = h.ColorMode
	buf[9] = h.Compression
	binary.LittleEndian.PutUint32(buf[10:14], h.PayloadLen)
	copy(buf[14:22], h.Digest[:])
	return buf
}

// decodeHeader parses a 22-byte chunk header.
func decodeHeader(buf []byte) (ChunkHeader, error) {
	if len(buf) < HeaderSize {
		return ChunkHeader{}, fmt.Errorf("%w: chunk header truncated: got %d bytes, want %d", xtcerr.MalformedChunk, len(buf), HeaderSize)
	}
	var h ChunkHeader
	copy(h.Magic[:], buf[0:4])
	h.Width = binary.LittleEndian.Uint16(buf[4:6])
	h.Height = binary.LittleEndian.Uint16(buf[6:8])
	h.ColorMode = buf[8]
	h.Compression = buf[9]
	h.PayloadLen = binary.LittleEndian.Uint32(buf[10:14])
	copy(h.Digest[:], buf[14:22])
	return h, nil
}

// PageSize returns the total chunk size (header + payload) for a page of
// dimensions (w, h) at the given bit depth, matching spec §4.8's
// pre-computation formula used to lay out index offsets before packing.
func PageSize(w, h int, is2bit bool) int {
	if is2bit {
		return HeaderSize + 2*ceilDiv(h, 8)*w
	}
	return HeaderSize + ceilDiv(w, 8)*h
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
