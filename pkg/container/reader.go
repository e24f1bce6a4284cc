package container

import (
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/pack"
	"github.com/xtcconv/xtcconv/pkg/raster"
	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// Page is one decoded page: its declared dimensions and the grayscale
// raster recovered from its packed chunk.
type Page struct {
	Width, Height int
	Frame         *raster.Frame
}

// Document is a fully parsed container.
type Document struct {
	Header   Header
	Metadata *BookMetadata
	Pages    []Page
}

// Read parses a complete XTC/XTCH file from data, validating the header,
// index, and chunk headers per spec §4.8's failure semantics.
func Read(data []byte) (*Document, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	fileSize := uint64(len(data))
	if h.DataOffset > fileSize || h.IndexOffset > fileSize {
		return nil, fmt.Errorf("%w: declared offsets exceed file size %d", xtcerr.MalformedContainer, fileSize)
	}

	var meta *BookMetadata
	if h.HasMetadata() {
		if h.MetadataOffset == 0 || h.MetadataOffset > fileSize {
			return nil, fmt.Errorf("%w: invalid metadata offset %d", xtcerr.MalformedContainer, h.MetadataOffset)
		}
		m, err := decodeMetadata(data[h.MetadataOffset:h.IndexOffset])
		if err != nil {
			return nil, err
		}
		meta = &m
	}

	indexEnd := h.IndexOffset + uint64(h.PageCount)*indexEntrySize
	if indexEnd > fileSize {
		return nil, fmt.Errorf("%w: index table (%d entries at offset %d) exceeds file size %d", xtcerr.MalformedContainer, h.PageCount, h.IndexOffset, fileSize)
	}

	pages := make([]Page, h.PageCount)
	for i := 0; i < int(h.PageCount); i++ {
		entryOff := h.IndexOffset + uint64(i)*indexEntrySize
		entry := decodeIndexEntry(data[entryOff : entryOff+indexEntrySize])

		if entry.Offset < h.DataOffset || entry.Offset+uint64(entry.Size) > fileSize {
			return nil, fmt.Errorf("%w: index entry %d points outside [dataOffset, fileSize): offset=%d size=%d fileSize=%d", xtcerr.MalformedContainer, i, entry.Offset, entry.Size, fileSize)
		}

		chunk := data[entry.Offset : entry.Offset+uint64(entry.Size)]
		frame, err := decodeChunk(chunk, int(entry.Width), int(entry.Height), h.Is2Bit())
		if err != nil {
			return nil, xtcerr.Frame(i, err)
		}
		pages[i] = Page{Width: int(entry.Width), Height: int(entry.Height), Frame: frame}
	}

	return &Document{Header: h, Metadata: meta, Pages: pages}, nil
}

// decodeChunk validates and unpacks a single page chunk per §4.5,
// reversed.
func decodeChunk(chunk []byte, w, h int, is2bit bool) (*raster.Frame, error) {
	if len(chunk) < pack.HeaderSize {
		return nil, fmt.Errorf("%w: chunk shorter than header (%d bytes)", xtcerr.MalformedChunk, len(chunk))
	}
	payload := chunk[pack.HeaderSize:]
	wantSize := pack.PageSize(w, h, is2bit) - pack.HeaderSize
	if len(payload) != wantSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d for %dx%d at %s", xtcerr.MalformedChunk, len(payload), wantSize, w, h, bitDepthName(is2bit))
	}

	if is2bit {
		return pack.UnpackXTH(payload, w, h), nil
	}
	return pack.UnpackXTG(payload, w, h), nil
}

func bitDepthName(is2bit bool) string {
	if is2bit {
		return "2-bit"
	}
	return "1-bit"
}
