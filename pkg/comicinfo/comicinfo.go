// Package comicinfo decodes the ComicInfo.xml metadata payload some CBZ
// archives carry into a Metadata value (the title, author, publisher and
// language fields of container.BookMetadata), and its <Pages> bookmark
// markers into TOC seeds. Reading the archive itself and locating the
// ComicInfo.xml entry within it is an external collaborator's job (spec
// §6); this package only decodes the XML bytes it's handed.
package comicinfo

import (
	"encoding/xml"
	"fmt"

	"github.com/xtcconv/xtcconv/pkg/xtcerr"
)

// comicInfo mirrors the subset of the ComicInfo.xml schema this package
// cares about. Unknown elements are ignored by encoding/xml by default.
type comicInfo struct {
	XMLName     xml.Name `xml:"ComicInfo"`
	Title       string   `xml:"Title"`
	Writer      string   `xml:"Writer"`
	Publisher   string   `xml:"Publisher"`
	LanguageISO string   `xml:"LanguageISO"`
	Pages       struct {
		Page []page `xml:"Page"`
	} `xml:"Pages"`
}

type page struct {
	Image    int    `xml:"Image,attr"`
	Bookmark string `xml:"Bookmark,attr"`
}

// Metadata is the subset of BookMetadata this package can populate from
// ComicInfo.xml alone; CreateTime and CoverPage are left to the caller
// since the schema doesn't carry them.
type Metadata struct {
	Title     string
	Author    string
	Publisher string
	Language  string
}

// TocSeed is a bookmark discovered in the ComicInfo <Pages> block, keyed
// by the original (pre-fan-out) 0-indexed archive page it marks.
type TocSeed struct {
	Title        string
	OriginalPage int // 0-indexed
}

// Parse decodes a ComicInfo.xml payload into Metadata and any bookmark
// TOC seeds it carries. An empty or absent Bookmark attribute means the
// page carries no chapter marker and is skipped.
func Parse(data []byte) (Metadata, []TocSeed, error) {
	var ci comicInfo
	if err := xml.Unmarshal(data, &ci); err != nil {
		return Metadata{}, nil, fmt.Errorf("%w: comicinfo: %v", xtcerr.MalformedContainer, err)
	}

	meta := Metadata{
		Title:     ci.Title,
		Author:    ci.Writer,
		Publisher: ci.Publisher,
		Language:  ci.LanguageISO,
	}

	var seeds []TocSeed
	for _, p := range ci.Pages.Page {
		if p.Bookmark == "" {
			continue
		}
		seeds = append(seeds, TocSeed{Title: p.Bookmark, OriginalPage: p.Image})
	}

	return meta, seeds, nil
}
