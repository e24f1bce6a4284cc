package comicinfo

import "testing"

const sampleXML = `<?xml version="1.0"?>
<ComicInfo>
  <Title>Sample Volume</Title>
  <Writer>Jane Author</Writer>
  <Publisher>Acme Comics</Publisher>
  <LanguageISO>en</LanguageISO>
  <Pages>
    <Page Image="0" Bookmark="Chapter 1"/>
    <Page Image="1"/>
    <Page Image="12" Bookmark="Chapter 2"/>
  </Pages>
</ComicInfo>`

func TestParseExtractsMetadata(t *testing.T) {
	meta, _, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Title != "Sample Volume" {
		t.Errorf("Title = %q, want %q", meta.Title, "Sample Volume")
	}
	if meta.Author != "Jane Author" {
		t.Errorf("Author = %q, want %q", meta.Author, "Jane Author")
	}
	if meta.Publisher != "Acme Comics" || meta.Language != "en" {
		t.Errorf("Publisher/Language = %q/%q, want Acme Comics/en", meta.Publisher, meta.Language)
	}
}

func TestParseExtractsBookmarksOnly(t *testing.T) {
	_, seeds, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("len(seeds) = %d, want 2", len(seeds))
	}
	if seeds[0].Title != "Chapter 1" || seeds[0].OriginalPage != 0 {
		t.Errorf("seeds[0] = %+v, want {Chapter 1 0}", seeds[0])
	}
	if seeds[1].Title != "Chapter 2" || seeds[1].OriginalPage != 12 {
		t.Errorf("seeds[1] = %+v, want {Chapter 2 12}", seeds[1])
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	if _, _, err := Parse([]byte("<ComicInfo><Title>unterminated")); err == nil {
		t.Error("Parse should reject malformed XML")
	}
}
