package container

import (
	"bytes"
	"testing"

	"github.com/xtcconv/xtcconv/pkg/pack"
	"github.com/xtcconv/xtcconv/pkg/raster"
)

func chunkFor(w, h int, is2bit bool) []byte {
	f := raster.NewFrame(w, h)
	if is2bit {
		return pack.PackXTH(f)
	}
	return pack.PackXTG(f)
}

func TestBuildAndReadRoundTrip(t *testing.T) {
	pages := []PageInput{
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
	}

	data, err := Build(pages, nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	doc, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("len(doc.Pages) = %d, want 3", len(doc.Pages))
	}
	if doc.Header.Is2Bit() {
		t.Error("Is2Bit() = true, want false")
	}
	if doc.Metadata != nil {
		t.Error("Metadata should be nil when none was written")
	}
}

func TestBuildWithMetadataRoundTrip(t *testing.T) {
	pages := []PageInput{
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
	}
	meta := &BookMetadata{
		Title:      "Test Book",
		Author:     "Jane Doe",
		Publisher:  "Acme",
		Language:   "en",
		CreateTime: 0,
		CoverPage:  NoCoverPage,
		Toc: []TocEntry{
			{Title: "Ch1", StartPage: 1, EndPage: 2},
		},
	}

	data, err := Build(pages, meta, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	doc, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Metadata == nil {
		t.Fatal("Metadata = nil, want non-nil")
	}
	if doc.Metadata.Title != "Test Book" {
		t.Errorf("Title = %q, want %q", doc.Metadata.Title, "Test Book")
	}
	if len(doc.Metadata.Toc) != 1 || doc.Metadata.Toc[0].StartPage != 1 || doc.Metadata.Toc[0].EndPage != 2 {
		t.Errorf("Toc = %+v, want [{Ch1 1 2}]", doc.Metadata.Toc)
	}
}

func TestIndexEntriesAreContiguous(t *testing.T) {
	pages := []PageInput{
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
		{Width: 480, Height: 800, Chunk: chunkFor(480, 800, false)},
	}
	data, err := Build(pages, nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	h, err := decodeHeader(data)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	var prevEnd uint64
	for i := 0; i < int(h.PageCount); i++ {
		off := h.IndexOffset + uint64(i)*indexEntrySize
		e := decodeIndexEntry(data[off : off+indexEntrySize])
		if i > 0 && e.Offset != prevEnd {
			t.Errorf("entry %d offset = %d, want contiguous with previous end %d", i, e.Offset, prevEnd)
		}
		prevEnd = e.Offset + uint64(e.Size)
	}
	if prevEnd > uint64(len(data)) {
		t.Errorf("last entry ends at %d, exceeds file size %d", prevEnd, len(data))
	}
}

func TestValidateTocRejectsOverlap(t *testing.T) {
	toc := []TocEntry{
		{Title: "A", StartPage: 1, EndPage: 3},
		{Title: "B", StartPage: 2, EndPage: 4},
	}
	if err := ValidateToc(toc, 4); err == nil {
		t.Error("ValidateToc should reject overlapping ranges")
	}
}

func TestValidateTocRequiresLastEntryCoversAllPages(t *testing.T) {
	toc := []TocEntry{
		{Title: "A", StartPage: 1, EndPage: 2},
	}
	if err := ValidateToc(toc, 5); err == nil {
		t.Error("ValidateToc should reject a TOC that doesn't cover all pages")
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	data := make([]byte, headerSizeNoMeta)
	copy(data, []byte("BAD\x00"))
	if _, err := Read(data); err == nil {
		t.Error("Read should reject an invalid magic")
	}
}

func TestReadRejectsTruncatedHeader(t *testing.T) {
	if _, err := Read([]byte{1, 2, 3}); err == nil {
		t.Error("Read should reject a truncated header")
	}
}

func TestStreamWriterMatchesBufferedBuild(t *testing.T) {
	chunks := [][]byte{
		chunkFor(480, 800, false),
		chunkFor(480, 800, false),
	}

	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, len(chunks), 480, 800, false, nil)
	if err != nil {
		t.Fatalf("NewStreamWriter: %v", err)
	}
	for _, c := range chunks {
		if err := sw.WritePage(c); err != nil {
			t.Fatalf("WritePage: %v", err)
		}
	}
	if err := sw.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	pages := []PageInput{
		{Width: 480, Height: 800, Chunk: chunks[0]},
		{Width: 480, Height: 800, Chunk: chunks[1]},
	}
	buffered, err := Build(pages, nil, false)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !bytes.Equal(buf.Bytes(), buffered) {
		t.Errorf("streamed output diverges from buffered output: %d bytes vs %d bytes", buf.Len(), len(buffered))
	}
}

func TestStreamWriterRejectsWrongChunkSize(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, 1, 480, 800, false, nil)
	if err != nil {
		t.Fatalf("NewStreamWriter: %v", err)
	}
	if err := sw.WritePage([]byte{1, 2, 3}); err == nil {
		t.Error("WritePage should reject a chunk of the wrong size")
	}
}

func TestStreamWriterFinishRequiresAllPagesWritten(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, 2, 480, 800, false, nil)
	if err != nil {
		t.Fatalf("NewStreamWriter: %v", err)
	}
	if err := sw.WritePage(chunkFor(480, 800, false)); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	if err := sw.Finish(); err == nil {
		t.Error("Finish should reject a stream missing committed pages")
	}
}
