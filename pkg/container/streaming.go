package container

import (
	"fmt"
	"io"

	"github.com/xtcconv/xtcconv/pkg/pack"
	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// streamState tracks the writer's position in the Data -> Closed portion
// of the linear state machine spec §9 describes for the streaming writer.
// Header and index are written synchronously inside NewStreamWriter before
// a StreamWriter value exists, so there is no separate pre-index state to
// track here.
type streamState int

const (
	stateData streamState = iota
	stateClosed
)

// StreamWriter emits an XTC/XTCH file in one pass: header, metadata, and
// index are written up front from precomputed page sizes (every page is
// exactly devW x devH), then pages are appended as they're produced.
type StreamWriter struct {
	w          io.Writer
	pageCount  int
	pageSize   int
	devW, devH int
	state      streamState
	written    int
}

// NewStreamWriter writes the header, optional metadata, and index table
// immediately, using precomputed per-page sizes since streamed pages are
// always devW x devH. meta.Toc must already carry post-fan-out page
// numbers.
func NewStreamWriter(w io.Writer, pageCount, devW, devH int, is2bit bool, meta *BookMetadata) (*StreamWriter, error) {
	if meta != nil {
		if err := ValidateToc(meta.Toc, pageCount); err != nil {
			return nil, err
		}
	}

	l := computeLayout(pageCount, meta)
	hasMeta := meta != nil
	pageSize := pack.PageSize(devW, devH, is2bit)

	if _, err := w.Write(encodeHeader(header(l, pageCount, is2bit, hasMeta))); err != nil {
		return nil, fmt.Errorf("%w: writing header: %v", xtcerr.IoFailure, err)
	}
	if hasMeta {
		if _, err := w.Write(encodeMetadata(*meta)); err != nil {
			return nil, fmt.Errorf("%w: writing metadata: %v", xtcerr.IoFailure, err)
		}
	}

	offset := l.dataOffset
	for i := 0; i < pageCount; i++ {
		entry := encodeIndexEntry(IndexEntry{
			Offset: offset,
			Size:   uint32(pageSize),
			Width:  uint16(devW),
			Height: uint16(devH),
		})
		if _, err := w.Write(entry); err != nil {
			return nil, fmt.Errorf("%w: writing index entry %d: %v", xtcerr.IoFailure, i, err)
		}
		offset += uint64(pageSize)
	}

	return &StreamWriter{
		w:         w,
		pageCount: pageCount,
		pageSize:  pageSize,
		devW:      devW,
		devH:      devH,
		state:     stateData,
	}, nil
}

// WritePage appends the next page chunk in source order. chunk must be
// exactly pack.PageSize(devW, devH, is2bit) bytes, matching the size
// already committed to the index.
func (sw *StreamWriter) WritePage(chunk []byte) error {
	if sw.state == stateClosed {
		return fmt.Errorf("%w: write to closed stream writer", xtcerr.InternalInvariant)
	}
	if sw.written >= sw.pageCount {
		return fmt.Errorf("%w: writing page %d exceeds committed page count %d", xtcerr.InternalInvariant, sw.written, sw.pageCount)
	}
	if len(chunk) != sw.pageSize {
		return fmt.Errorf("%w: page %d chunk is %d bytes, index committed to %d", xtcerr.InternalInvariant, sw.written, len(chunk), sw.pageSize)
	}
	if _, err := sw.w.Write(chunk); err != nil {
		return fmt.Errorf("%w: writing page %d: %v", xtcerr.IoFailure, sw.written, err)
	}
	sw.written++
	return nil
}

// Finish validates that every committed page was written and transitions
// the writer to Closed. On cancellation the caller should skip Finish and
// treat the partially written output as invalid, per spec §7.
func (sw *StreamWriter) Finish() error {
	if sw.written != sw.pageCount {
		return fmt.Errorf("%w: stream closed after %d of %d committed pages", xtcerr.InternalInvariant, sw.written, sw.pageCount)
	}
	sw.state = stateClosed
	return nil
}
