package epub

import (
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
)

// parseXML round-trips builder output through etree so tests assert on
// structure rather than byte layout.
func parseXML(t *testing.T, data []byte) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("output does not parse as XML: %v\n%s", err, data)
	}
	return doc
}

func testMetadata() Metadata {
	return Metadata{
		Title:    "Test Book",
		Language: "en",
		Creator:  "Jane Doe",
		BookID:   "urn:uuid:00000000-0000-0000-0000-000000000001",
		Modified: time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
	}
}

func testManifest() []ManifestEntry {
	return []ManifestEntry{
		{ID: "style", Href: "style.css", MediaType: "text/css"},
		{ID: "nav", Href: "nav.xhtml", MediaType: "application/xhtml+xml", Properties: "nav"},
		{ID: "ncx", Href: "toc.ncx", MediaType: "application/x-dtbncx+xml"},
		{ID: "chapter-001", Href: "chapter-001.xhtml", MediaType: "application/xhtml+xml"},
	}
}

func TestOPFXML(t *testing.T) {
	t.Parallel()

	data, err := opfXML(testMetadata(), testManifest(), []SpineEntry{{IDRef: "chapter-001"}})
	if err != nil {
		t.Fatalf("opfXML() unexpected error: %v", err)
	}

	root := parseXML(t, data).Root()
	if root.Tag != "package" {
		t.Fatalf("root element = %q, want package", root.Tag)
	}
	if got := root.SelectAttrValue("version", ""); got != "3.0" {
		t.Errorf("package version = %q, want 3.0", got)
	}
	if got := root.SelectAttrValue("unique-identifier", ""); got != "BookId" {
		t.Errorf("unique-identifier = %q, want BookId", got)
	}

	md := root.SelectElement("metadata")
	if md == nil {
		t.Fatalf("package has no metadata element")
	}
	if got := md.SelectElement("dc:title").Text(); got != "Test Book" {
		t.Errorf("dc:title = %q, want Test Book", got)
	}
	if got := md.SelectElement("dc:language").Text(); got != "en" {
		t.Errorf("dc:language = %q, want en", got)
	}
	if got := md.SelectElement("dc:creator").Text(); got != "Jane Doe" {
		t.Errorf("dc:creator = %q, want Jane Doe", got)
	}

	identifier := md.SelectElement("dc:identifier")
	if identifier == nil {
		t.Fatalf("metadata has no dc:identifier")
	}
	if got := identifier.SelectAttrValue("id", ""); got != "BookId" {
		t.Errorf("dc:identifier id = %q, want BookId", got)
	}
	if got := identifier.Text(); got != "urn:uuid:00000000-0000-0000-0000-000000000001" {
		t.Errorf("dc:identifier = %q, want the book id", got)
	}

	modified := md.SelectElement("meta")
	if modified == nil || modified.SelectAttrValue("property", "") != "dcterms:modified" {
		t.Fatalf("metadata has no dcterms:modified meta")
	}
	if got := modified.Text(); got != "2025-06-01T12:30:45Z" {
		t.Errorf("dcterms:modified = %q, want 2025-06-01T12:30:45Z", got)
	}
	if md.SelectElement("dc:date") != nil {
		t.Errorf("dc:date present, want omitted when empty")
	}

	spine := root.SelectElement("spine")
	if spine == nil {
		t.Fatalf("package has no spine element")
	}
	if got := spine.SelectAttrValue("toc", ""); got != "ncx" {
		t.Errorf("spine toc = %q, want ncx", got)
	}
	if got := spine.SelectAttrValue("page-progression-direction", ""); got != "" {
		t.Errorf("page-progression-direction = %q, want absent for horizontal books", got)
	}
	refs := spine.SelectElements("itemref")
	if len(refs) != 1 || refs[0].SelectAttrValue("idref", "") != "chapter-001" {
		t.Errorf("spine itemrefs wrong, want single chapter-001")
	}
}

func TestOPFXML_ManifestItems(t *testing.T) {
	t.Parallel()

	data, err := opfXML(testMetadata(), testManifest(), []SpineEntry{{IDRef: "chapter-001"}})
	if err != nil {
		t.Fatalf("opfXML() unexpected error: %v", err)
	}

	manifest := parseXML(t, data).Root().SelectElement("manifest")
	if manifest == nil {
		t.Fatalf("package has no manifest element")
	}
	items := manifest.SelectElements("item")
	if len(items) != 4 {
		t.Fatalf("manifest has %d items, want 4", len(items))
	}

	byID := make(map[string]*etree.Element)
	for _, item := range items {
		byID[item.SelectAttrValue("id", "")] = item
	}

	nav := byID["nav"]
	if nav == nil {
		t.Fatalf("manifest has no nav item")
	}
	if got := nav.SelectAttrValue("properties", ""); got != "nav" {
		t.Errorf("nav item properties = %q, want nav", got)
	}
	ncx := byID["ncx"]
	if ncx == nil {
		t.Fatalf("manifest has no ncx item")
	}
	if got := ncx.SelectAttrValue("media-type", ""); got != "application/x-dtbncx+xml" {
		t.Errorf("ncx media-type = %q, want application/x-dtbncx+xml", got)
	}
	if chapter := byID["chapter-001"]; chapter.SelectAttrValue("properties", "") != "" {
		t.Errorf("chapter item carries properties, want none")
	}
}

func TestOPFXML_Vertical(t *testing.T) {
	t.Parallel()

	meta := testMetadata()
	meta.Language = "ja"
	meta.Vertical = true

	data, err := opfXML(meta, testManifest(), []SpineEntry{{IDRef: "chapter-001"}})
	if err != nil {
		t.Fatalf("opfXML() unexpected error: %v", err)
	}

	spine := parseXML(t, data).Root().SelectElement("spine")
	if got := spine.SelectAttrValue("page-progression-direction", ""); got != "rtl" {
		t.Errorf("page-progression-direction = %q, want rtl for vertical books", got)
	}
}

func TestOPFXML_OptionalFields(t *testing.T) {
	t.Parallel()

	meta := testMetadata()
	meta.Creator = ""
	meta.Date = "2024-12-31"

	data, err := opfXML(meta, testManifest(), []SpineEntry{{IDRef: "chapter-001"}})
	if err != nil {
		t.Fatalf("opfXML() unexpected error: %v", err)
	}

	md := parseXML(t, data).Root().SelectElement("metadata")
	if md.SelectElement("dc:creator") != nil {
		t.Errorf("dc:creator present, want omitted when empty")
	}
	if got := md.SelectElement("dc:date"); got == nil || got.Text() != "2024-12-31" {
		t.Errorf("dc:date missing or wrong, want 2024-12-31")
	}
}

func TestOPFXML_EscapesMetadata(t *testing.T) {
	t.Parallel()

	meta := testMetadata()
	meta.Title = `War & "Peace" <Annotated>`

	data, err := opfXML(meta, testManifest(), []SpineEntry{{IDRef: "chapter-001"}})
	if err != nil {
		t.Fatalf("opfXML() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "War &amp;") {
		t.Errorf("title ampersand not escaped:\n%s", data)
	}

	md := parseXML(t, data).Root().SelectElement("metadata")
	if got := md.SelectElement("dc:title").Text(); got != meta.Title {
		t.Errorf("dc:title round-trip = %q, want %q", got, meta.Title)
	}
}
