// Package container implements the XTC/XTCH container codec of spec
// §4.8: header, optional metadata block, index table, and data region,
// in both buffered and streaming writer modes, plus a reader.
package container

import "encoding/binary"

const (
	headerSizeNoMeta = 48
	headerSizeMeta   = 56

	metaTitleSize      = 128
	metaAuthorSize     = 64
	metaPublisherSize  = 32
	metaLanguageSize   = 16
	metaTocHeaderSize  = 16
	tocEntrySize       = 96
	tocEntryTitleSize  = 80
	indexEntrySize     = 16
	metadataFixedBlock = metaTitleSize + metaAuthorSize + metaPublisherSize + metaLanguageSize + metaTocHeaderSize

	flagsLowMeta  = 0x01000100
	flagsHighMeta = 0x00000001

	// NoCoverPage is the sentinel BookMetadata.CoverPage value meaning
	// "no cover selected".
	NoCoverPage = 0xFFFF
)

var (
	magicXTC  = [4]byte{'X', 'T', 'C', 0}
	magicXTCH = [4]byte{'X', 'T', 'C', 'H'}
)

// TocEntry is one non-overlapping table-of-contents range, expressed in
// post-fan-out (emitted) page numbers, 1-indexed.
type TocEntry struct {
	Title      string
	StartPage  uint16
	EndPage    uint16
}

// BookMetadata is the optional per-book metadata block of spec §3/§4.8.
type BookMetadata struct {
	Title      string
	Author     string
	Publisher  string
	Language   string
	CreateTime uint32
	CoverPage  uint16 // NoCoverPage if unset
	Toc        []TocEntry
}

// IndexEntry is one fixed 16-byte page index record.
type IndexEntry struct {
	Offset uint64
	Size   uint32
	Width  uint16
	Height uint16
}

func encodeIndexEntry(e IndexEntry) []byte {
	buf := make([]byte, indexEntrySize)
	binary.LittleEndian.PutUint64(buf[0:8], e.Offset)
	binary.LittleEndian.PutUint32(buf[8:12], e.Size)
	binary.LittleEndian.PutUint16(buf[12:14], e.Width)
	binary.LittleEndian.PutUint16(buf[14:16], e.Height)
	return buf
}

func decodeIndexEntry(buf []byte) IndexEntry {
	return IndexEntry{
		Offset: binary.LittleEndian.Uint64(buf[0:8]),
		Size:   binary.LittleEndian.Uint32(buf[8:12]),
		Width:  binary.LittleEndian.Uint16(buf[12:14]),
		Height: binary.LittleEndian.Uint16(buf[14:16]),
	}
}

// putFixedString writes s (UTF-8, truncated to len(buf)-1 bytes) into buf
// as a NUL-terminated fixed-size cell.
func putFixedString(buf []byte, s string) {
	b := []byte(s)
	max := len(buf) - 1
	if len(b) > max {
		b = b[:max]
	}
	copy(buf, b)
	for i := len(b); i < len(buf); i++ {
		buf[i] = 0
	}
}

func getFixedString(buf []byte) string {
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}
