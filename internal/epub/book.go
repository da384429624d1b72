package epub

import (
	"time"

	"github.com/alnah/go-md2epub/internal/document"
)

// Mimetype is the OCF media type stored as the first archive entry.
const Mimetype = "application/epub+zip"

// Metadata carries the bibliographic fields written into the package
// document. All fields arrive validated and defaulted; assembly writes
// them as-is.
type Metadata struct {
	Title    string
	Language string    // BCP 47 tag, e.g. "en" or "ja"
	Creator  string    // omitted from the package when empty
	BookID   string    // dc:identifier value, e.g. "urn:uuid:..."
	Date     string    // dc:date value, omitted when empty
	Modified time.Time // dcterms:modified timestamp
	Vertical bool      // vertical writing: rtl page progression
}

// Chapter is one rendered content document in reading order.
type Chapter struct {
	ID       string // manifest id, also the spine idref
	FileName string // href relative to the content directory
	Title    string
	XHTML    []byte
}

// Book is everything assembly needs to emit one container: metadata,
// rendered chapters, referenced assets, the navigation tree, and the
// composed stylesheet.
type Book struct {
	Metadata   Metadata
	Chapters   []Chapter
	Assets     []document.Asset
	Toc        []*document.TocNode
	Stylesheet []byte
}

// ManifestEntry is one item in the OPF manifest.
type ManifestEntry struct {
	ID         string
	Href       string // relative to the content directory
	MediaType  string
	Properties string // e.g. "nav", empty for most items
}

// SpineEntry references a manifest item in reading order.
type SpineEntry struct {
	IDRef string
}

// File is one package file, addressed by its archive path. Data holds
// in-memory content; SourcePath names a file to copy instead, used for
// assets so image bytes never pass through memory.
type File struct {
	Path       string // archive path, forward slashes, no leading slash
	Data       []byte
	SourcePath string
}

// Package is an assembled, verified container ready to write. Files are
// in final archive order; the mimetype entry is implicit and emitted by
// the writer and archiver themselves.
type Package struct {
	Files    []File
	Manifest []ManifestEntry
	Spine    []SpineEntry
}

// ArchivePaths returns the archive paths of all package files in order,
// mimetype excluded.
func (p *Package) ArchivePaths() []string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.Path
	}
	return paths
}
