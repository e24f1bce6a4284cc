package container

import (
	"encoding/binary"
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// metadataBlockSize returns the total size of the metadata block for a
// book with chapterCount TOC entries.
func metadataBlockSize(chapterCount int) int {
	return metadataFixedBlock + chapterCount*tocEntrySize
}

func encodeMetadata(m BookMetadata) []byte {
	buf := make([]byte, metadataBlockSize(len(m.Toc)))

	off := 0
	putFixedString(buf[off:off+metaTitleSize], m.Title)
	off += metaTitleSize
	putFixedString(buf[off:off+metaAuthorSize], m.Author)
	off += metaAuthorSize
	putFixedString(buf[off:off+metaPublisherSize], m.Publisher)
	off += metaPublisherSize
	putFixedString(buf[off:off+metaLanguageSize], m.Language)
	off += metaLanguageSize

	tocHeader := buf[off : off+metaTocHeaderSize]
	binary.LittleEndian.PutUint32(tocHeader[0:4], m.CreateTime)
	binary.LittleEndian.PutUint16(tocHeader[4:6], m.CoverPage)
	binary.LittleEndian.PutUint16(tocHeader[6:8], uint16(len(m.Toc)))
	off += metaTocHeaderSize

	for _, entry := range m.Toc {
		e := buf[off : off+tocEntrySize]
		putFixedString(e[0:tocEntryTitleSize], entry.Title)
		binary.LittleEndian.PutUint16(e[80:82], entry.StartPage)
		binary.LittleEndian.PutUint16(e[82:84], entry.EndPage)
		off += tocEntrySize
	}

	return buf
}

func decodeMetadata(buf []byte) (BookMetadata, error) {
	if len(buf) < metadataFixedBlock {
		return BookMetadata{}, fmt.Errorf("%w: metadata block truncated: got %d bytes, want at least %d", xtcerr.MalformedContainer, len(buf), metadataFixedBlock)
	}

	var m BookMetadata
	off := 0
	m.Title = getFixedString(buf[off : off+metaTitleSize])
	off += metaTitleSize
	m.Author = getFixedString(buf[off : off+metaAuthorSize])
	off += metaAuthorSize
	m.Publisher = getFixedString(buf[off : off+metaPublisherSize])
	off += metaPublisherSize
	m.Language = getFixedString(buf[off : off+metaLanguageSize])
	off += metaLanguageSize

	tocHeader := buf[off : off+metaTocHeaderSize]
	m.CreateTime = binary.LittleEndian.Uint32(tocHeader[0:4])
	m.CoverPage = binary.LittleEndian.Uint16(tocHeader[4:6])
	chapterCount := int(binary.LittleEndian.Uint16(tocHeader[6:8]))
	off += metaTocHeaderSize

	if len(buf) < off+chapterCount*tocEntrySize {
		return BookMetadata{}, fmt.Errorf("%w: metadata block truncated: %d chapters declared but buffer too short", xtcerr.MalformedContainer, chapterCount)
	}

	m.Toc = make([]TocEntry, chapterCount)
	for i := 0; i < chapterCount; i++ {
		e := buf[off : off+tocEntrySize]
		m.Toc[i] = TocEntry{
			Title:     getFixedString(e[0:tocEntryTitleSize]),
			StartPage: binary.LittleEndian.Uint16(e[80:82]),
			EndPage:   binary.LittleEndian.Uint16(e[82:84]),
		}
		off += tocEntrySize
	}

	return m, nil
}
