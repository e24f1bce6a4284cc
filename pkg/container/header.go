package container

import (
	"encoding/binary"
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// Header is the parsed fixed 48/56-byte container header.
type Header struct {
	Magic            [4]byte
	Version          uint16
	PageCount        uint16
	FlagsLow         uint32
	FlagsHigh        uint32
	MetadataOffset   uint64
	IndexOffset      uint64
	DataOffset       uint64
	TocEntriesOffset uint64 // valid only when HasMetadata()
}

// HasMetadata reports whether the metadata-present flags are set.
func (h Header) HasMetadata() bool {
	return h.FlagsLow == flagsLowMeta && h.FlagsHigh == flagsHighMeta
}

// Is2Bit reports the bit depth encoded in the container's magic.
func (h Header) Is2Bit() bool {
	return h.Magic == magicXTCH
}

func encodeHeader(h Header) []byte {
	size := headerSizeNoMeta
	if h.HasMetadata() {
		size = headerSizeMeta
	}
	buf := make([]byte, size)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.PageCount)
	binary.LittleEndian.PutUint32(buf[8:12], h.FlagsLow)
	binary.LittleEndian.PutUint32(buf[12:16], h.FlagsHigh)
	binary.LittleEndian.PutUint64(buf[16:24], h.MetadataOffset)
	binary.LittleEndian.PutUint64(buf[24:32], h.IndexOffset)
	binary.LittleEndian.PutUint64(buf[32:40], h.DataOffset)
	binary.LittleEndian.PutUint64(buf[40:48], 0) // reserved
	if h.HasMetadata() {
		binary.LittleEndian.PutUint64(buf[48:56], h.TocEntriesOffset)
	}
	return buf
}

// decodeHeader parses the fixed portion of a container header from buf,
// which must contain at least headerSizeNoMeta bytes; the caller reads
// more once flags reveal whether metadata is present.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < headerSizeNoMeta {
		return Header{}, fmt.Errorf("%w: header truncated: got %d bytes, want at least %d", xtcerr.MalformedContainer, len(buf), headerSizeNoMeta)
	}

	var h Header
	copy(h.Magic[:], buf[0:4])
	if !validMagic(h.Magic) {
		return Header{}, fmt.Errorf("%w: bad magic %q", xtcerr.MalformedContainer, h.Magic[:])
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:6])
	h.PageCount = binary.LittleEndian.Uint16(buf[6:8])
	h.FlagsLow = binary.LittleEndian.Uint32(buf[8:12])
	h.FlagsHigh = binary.LittleEndian.Uint32(buf[12:16])
	h.MetadataOffset = binary.LittleEndian.Uint64(buf[16:24])
	h.IndexOffset = binary.LittleEndian.Uint64(buf[24:32])
	h.DataOffset = binary.LittleEndian.Uint64(buf[32:40])

	if h.HasMetadata() {
		if len(buf) < headerSizeMeta {
			return Header{}, fmt.Errorf("%w: header truncated: metadata flags set but only %d bytes present", xtcerr.MalformedContainer, len(buf))
		}
		h.TocEntriesOffset = binary.LittleEndian.Uint64(buf[48:56])
	}
	return h, nil
}

// validMagic checks the "XTC" prefix with a last byte of 0x00 or 0x48
// ('H'), per spec §4.8's reader rule.
func validMagic(m [4]byte) bool {
	if m[0] != 'X' || m[1] != 'T' || m[2] != 'C' {
		return false
	}
	return m[3] == 0x00 || m[3] == 0x48
}
