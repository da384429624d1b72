package epub

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2epub/internal/document"
)

// Archive paths fixed by the OCF layout. Chapter and asset paths are
// derived from their content-relative hrefs.
const (
	containerPath = "META-INF/container.xml"
	contentDir    = "OEBPS"
	opfPath       = contentDir + "/package.opf"
	navPath       = contentDir + "/nav.xhtml"
	ncxPath       = contentDir + "/toc.ncx"
	stylePath     = contentDir + "/style.css"
)

// Manifest ids for the fixed package files. Chapter ids come from the
// segmenter; asset ids from the document builder. None of them collide
// with these by construction.
const (
	styleID = "style"
	navID   = "nav"
	ncxID   = "ncx"
)

// Assemble builds the complete package from a book: container pointer,
// OPF, navigation document, NCX, stylesheet, chapters, and assets. The
// result passes the manifest/spine consistency check or an error wrapping
// ErrInconsistent is returned and nothing should be written.
func Assemble(book *Book) (*Package, error) {
	manifest := buildManifest(book)
	spine := buildSpine(book)

	toc := book.Toc
	if len(toc) == 0 {
		// A navigation document must list at least one entry. This only
		// happens when every section sits below the TOC depth cutoff,
		// so fall back to one entry per chapter.
		toc = chapterToc(book.Chapters)
	}

	container, err := containerXML()
	if err != nil {
		return nil, fmt.Errorf("failed to build container.xml: %w", err)
	}
	opf, err := opfXML(book.Metadata, manifest, spine)
	if err != nil {
		return nil, fmt.Errorf("failed to build package document: %w", err)
	}
	nav, err := navXML(book.Metadata, toc, firstChapterHref(book.Chapters))
	if err != nil {
		return nil, fmt.Errorf("failed to build navigation document: %w", err)
	}
	ncx, err := ncxXML(book.Metadata, toc)
	if err != nil {
		return nil, fmt.Errorf("failed to build NCX: %w", err)
	}

	files := []File{
		{Path: containerPath, Data: container},
		{Path: opfPath, Data: opf},
		{Path: navPath, Data: nav},
		{Path: ncxPath, Data: ncx},
		{Path: stylePath, Data: book.Stylesheet},
	}
	for _, ch := range book.Chapters {
		files = append(files, File{Path: contentDir + "/" + ch.FileName, Data: ch.XHTML})
	}
	for _, a := range book.Assets {
		files = append(files, File{Path: contentDir + "/" + a.Href, SourcePath: a.SourcePath})
	}

	pkg := &Package{Files: files, Manifest: manifest, Spine: spine}
	if err := pkg.verify(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// buildManifest lists the fixed package files first, then chapters in
// reading order, then assets in reference order.
func buildManifest(book *Book) []ManifestEntry {
	entries := []ManifestEntry{
		{ID: styleID, Href: "style.css", MediaType: "text/css"},
		{ID: navID, Href: "nav.xhtml", MediaType: "application/xhtml+xml", Properties: "nav"},
		{ID: ncxID, Href: "toc.ncx", MediaType: "application/x-dtbncx+xml"},
	}
	for _, ch := range book.Chapters {
		entries = append(entries, ManifestEntry{
			ID:        ch.ID,
			Href:      ch.FileName,
			MediaType: "application/xhtml+xml",
		})
	}
	for _, a := range book.Assets {
		entries = append(entries, ManifestEntry{ID: a.ID, Href: a.Href, MediaType: a.MediaType})
	}
	return entries
}

// buildSpine references exactly the chapters, in order. The navigation
// document and NCX are manifest-only.
func buildSpine(book *Book) []SpineEntry {
	spine := make([]SpineEntry, len(book.Chapters))
	for i, ch := range book.Chapters {
		spine[i] = SpineEntry{IDRef: ch.ID}
	}
	return spine
}

func chapterToc(chapters []Chapter) []*document.TocNode {
	nodes := make([]*document.TocNode, len(chapters))
	for i, ch := range chapters {
		nodes[i] = &document.TocNode{Title: ch.Title, Href: ch.FileName}
	}
	return nodes
}

func firstChapterHref(chapters []Chapter) string {
	if len(chapters) == 0 {
		return ""
	}
	return chapters[0].FileName
}

// verify cross-checks manifest, spine, and files before anything touches
// disk: duplicate ids, manifest hrefs without a file, spine idrefs without
// a manifest item, a missing navigation document, or an empty spine all
// fail assembly.
func (p *Package) verify() error {
	ids := make(map[string]bool, len(p.Manifest))
	hasNav := false
	for _, m := range p.Manifest {
		if ids[m.ID] {
			return fmt.Errorf("%w: duplicate manifest id %q", ErrInconsistent, m.ID)
		}
		ids[m.ID] = true
		if strings.Contains(m.Properties, "nav") {
			hasNav = true
		}
	}

	paths := make(map[string]bool, len(p.Files))
	for _, f := range p.Files {
		paths[f.Path] = true
	}
	for _, m := range p.Manifest {
		if !paths[contentDir+"/"+m.Href] {
			return fmt.Errorf("%w: manifest item %q references missing file %q", ErrInconsistent, m.ID, m.Href)
		}
	}

	if len(p.Spine) == 0 {
		return fmt.Errorf("%w: spine is empty", ErrInconsistent)
	}
	for _, s := range p.Spine {
		if !ids[s.IDRef] {
			return fmt.Errorf("%w: spine idref %q has no manifest item", ErrInconsistent, s.IDRef)
		}
	}

	if !hasNav {
		return fmt.Errorf("%w: no manifest item carries the nav property", ErrInconsistent)
	}
	return nil
}
