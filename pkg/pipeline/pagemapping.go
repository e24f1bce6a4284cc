package pipeline

import "github.com/xtcconv/xtcconv/pkg/container"

// mappingEntry records the emitted-page range one original source page
// expanded into.
type mappingEntry struct {
	xtcStartPage int // 1-indexed
	xtcPageCount int
}

// PageMapping tracks the 1->N fan-out from original source pages to
// emitted container pages. It is write-only while pages are being
// emitted (Record) and read-only once TOC entries need remapping
// (RemapToc) — two phases, never a mutable graph, per spec §9.
type PageMapping struct {
	entries []mappingEntry
	total   int
}

// NewPageMapping preallocates a mapping for a known number of source
// pages.
func NewPageMapping(sourcePages int) *PageMapping {
	return &PageMapping{entries: make([]mappingEntry, sourcePages)}
}

// Record registers that sourcePage (0-indexed) emitted pageCount
// container pages. The caller must record every source page exactly
// once before calling RemapToc.
func (m *PageMapping) Record(sourcePage, pageCount int) {
	m.entries[sourcePage] = mappingEntry{xtcStartPage: m.total + 1, xtcPageCount: pageCount}
	m.total += pageCount
}

// TotalEmitted returns the total number of emitted pages across every
// recorded source page.
func (m *PageMapping) TotalEmitted() int {
	return m.total
}

// Bump attributes extraCount additional emitted pages to an
// already-Record()-ed source page, for content that isn't tied to any
// single source frame — the manhwa stitcher's final residual strip is
// folded into the last source page's range this way.
func (m *PageMapping) Bump(sourcePage, extraCount int) {
	m.entries[sourcePage].xtcPageCount += extraCount
	m.total += extraCount
}

// RemapToc rewrites a pre-mapping TOC (whose StartPage/EndPage refer to
// original source pages, 1-indexed) into post-fan-out emitted page
// numbers, per spec §4.6 step 5 / example scenario 5.
func (m *PageMapping) RemapToc(toc []container.TocEntry) []container.TocEntry {
	out := make([]container.TocEntry, len(toc))
	for i, e := range toc {
		startEntry := m.entries[e.StartPage-1]
		endEntry := m.entries[e.EndPage-1]
		out[i] = container.TocEntry{
			Title:     e.Title,
			StartPage: uint16(startEntry.xtcStartPage),
			EndPage:   uint16(endEntry.xtcStartPage + endEntry.xtcPageCount - 1),
		}
	}
	return out
}
