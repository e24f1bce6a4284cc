package container

import (
	"bytes"
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// PageInput is one already-packed page chunk (see pkg/pack) plus the
// dimensions the index records for it.
type PageInput struct {
	Width, Height uint16
	Chunk         []byte
}

// layout computes the shared offset arithmetic used by both the buffered
// and streaming writers.
type layout struct {
	headerSize     int
	metadataOffset uint64
	metadataSize   int
	indexOffset    uint64
	dataOffset     uint64
	tocEntriesOff  uint64
}

func computeLayout(pageCount int, meta *BookMetadata) layout {
	var l layout
	if meta != nil {
		l.headerSize = headerSizeMeta
		l.metadataOffset = uint64(l.headerSize)
		l.metadataSize = metadataBlockSize(len(meta.Toc))
		l.tocEntriesOff = l.metadataOffset + metadataFixedBlock
	} else {
		l.headerSize = headerSizeNoMeta
		l.metadataOffset = 0
	}
	l.indexOffset = uint64(l.headerSize) + uint64(l.metadataSize)
	l.dataOffset = l.indexOffset + uint64(pageCount)*indexEntrySize
	return l
}

// ValidateToc enforces the TOC invariants of spec §3: startPage <=
// endPage, ranges non-overlapping and covering each page at most once,
// and the last entry's endPage equal to the total emitted page count.
func ValidateToc(toc []TocEntry, pageCount int) error {
	prevEnd := uint16(0)
	for i, e := range toc {
		if e.StartPage > e.EndPage {
			return fmt.Errorf("%w: toc entry %d has startPage %d > endPage %d", xtcerr.InternalInvariant, i, e.StartPage, e.EndPage)
		}
		if e.StartPage <= prevEnd {
			return fmt.Errorf("%w: toc entry %d overlaps or is out of order (startPage %d, previous end %d)", xtcerr.InternalInvariant, i, e.StartPage, prevEnd)
		}
		prevEnd = e.EndPage
	}
	if len(toc) > 0 && int(prevEnd) != pageCount {
		return fmt.Errorf("%w: last toc entry ends at %d, want %d (total emitted pages)", xtcerr.InternalInvariant, prevEnd, pageCount)
	}
	return nil
}

func header(l layout, pageCount int, is2bit bool, hasMeta bool) Header {
	magic := magicXTC
	if is2bit {
		magic = magicXTCH
	}
	h := Header{
		Magic:          magic,
		Version:        1,
		PageCount:      uint16(pageCount),
		MetadataOffset: l.metadataOffset,
		IndexOffset:    l.indexOffset,
		DataOffset:     l.dataOffset,
	}
	if hasMeta {
		h.FlagsLow = flagsLowMeta
		h.FlagsHigh = flagsHighMeta
		h.TocEntriesOffset = l.tocEntriesOff
	}
	return h
}

// Build assembles a complete, buffered XTC/XTCH file from already-packed
// page chunks and optional metadata. meta.Toc must already be expressed
// in post-fan-out page numbers (see pkg/pipeline's PageMapping).
func Build(pages []PageInput, meta *BookMetadata, is2bit bool) ([]byte, error) {
	if meta != nil {
		if err := ValidateToc(meta.Toc, len(pages)); err != nil {
			return nil, err
		}
	}

	l := computeLayout(len(pages), meta)
	hasMeta := meta != nil

	var buf bytes.Buffer
	buf.Write(encodeHeader(header(l, len(pages), is2bit, hasMeta)))
	if hasMeta {
		buf.Write(encodeMetadata(*meta))
	}

	offset := l.dataOffset
	for _, p := range pages {
		buf.Write(encodeIndexEntry(IndexEntry{
			Offset: offset,
			Size:   uint32(len(p.Chunk)),
			Width:  p.Width,
			Height: p.Height,
		}))
		offset += uint64(len(p.Chunk))
	}

	for _, p := range pages {
		buf.Write(p.Chunk)
	}

	return buf.Bytes(), nil
}
