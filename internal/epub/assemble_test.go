package epub

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2epub/internal/document"
)

// testBook returns a two-chapter book with one asset and a nested TOC.
func testBook(t *testing.T) *Book {
	t.Helper()
	asset := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(asset, []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("failed to write asset fixture: %v", err)
	}
	return &Book{
		Metadata: Metadata{
			Title:    "Test Book",
			Language: "en",
			Creator:  "Jane Doe",
			BookID:   "urn:uuid:00000000-0000-0000-0000-000000000001",
			Modified: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		Chapters: []Chapter{
			{ID: "chapter-001", FileName: "chapter-001.xhtml", Title: "One", XHTML: []byte("<html>one</html>")},
			{ID: "chapter-002", FileName: "chapter-002.xhtml", Title: "Two", XHTML: []byte("<html>two</html>")},
		},
		Assets: []document.Asset{
			{ID: "asset-001", SourcePath: asset, Href: "assets/cover.png", MediaType: "image/png"},
		},
		Toc: []*document.TocNode{
			{Title: "One", Href: "chapter-001.xhtml", Children: []*document.TocNode{
				{Title: "One Sub", Href: "chapter-001.xhtml#one-sub"},
			}},
			{Title: "Two", Href: "chapter-002.xhtml"},
		},
		Stylesheet: []byte("body { margin: 1em; }"),
	}
}

// packageFile returns the data of the package file at the given archive
// path, failing the test when it is absent.
func packageFile(t *testing.T, pkg *Package, path string) []byte {
	t.Helper()
	for _, f := range pkg.Files {
		if f.Path == path {
			return f.Data
		}
	}
	t.Fatalf("package has no file %q", path)
	return nil
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	pkg, err := Assemble(testBook(t))
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	wantPaths := []string{
		"META-INF/container.xml",
		"OEBPS/package.opf",
		"OEBPS/nav.xhtml",
		"OEBPS/toc.ncx",
		"OEBPS/style.css",
		"OEBPS/chapter-001.xhtml",
		"OEBPS/chapter-002.xhtml",
		"OEBPS/assets/cover.png",
	}
	if got := pkg.ArchivePaths(); !reflect.DeepEqual(got, wantPaths) {
		t.Errorf("ArchivePaths() = %v, want %v", got, wantPaths)
	}

	wantIDs := []string{"style", "nav", "ncx", "chapter-001", "chapter-002", "asset-001"}
	gotIDs := make([]string, len(pkg.Manifest))
	for i, m := range pkg.Manifest {
		gotIDs[i] = m.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("manifest ids = %v, want %v", gotIDs, wantIDs)
	}

	wantSpine := []SpineEntry{{IDRef: "chapter-001"}, {IDRef: "chapter-002"}}
	if !reflect.DeepEqual(pkg.Spine, wantSpine) {
		t.Errorf("spine = %v, want %v", pkg.Spine, wantSpine)
	}

	if got := packageFile(t, pkg, "OEBPS/style.css"); string(got) != "body { margin: 1em; }" {
		t.Errorf("stylesheet = %q, want the book stylesheet", got)
	}
	if got := packageFile(t, pkg, "OEBPS/chapter-002.xhtml"); string(got) != "<html>two</html>" {
		t.Errorf("chapter data = %q, want rendered chapter", got)
	}
}

func TestAssemble_AssetsCopiedNotLoaded(t *testing.T) {
	t.Parallel()

	book := testBook(t)
	pkg, err := Assemble(book)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	for _, f := range pkg.Files {
		if f.Path != "OEBPS/assets/cover.png" {
			continue
		}
		if f.Data != nil {
			t.Errorf("asset file carries in-memory data, want copy from source")
		}
		if f.SourcePath != book.Assets[0].SourcePath {
			t.Errorf("asset SourcePath = %q, want %q", f.SourcePath, book.Assets[0].SourcePath)
		}
		return
	}
	t.Fatalf("package has no asset file")
}

func TestAssemble_NavFallback(t *testing.T) {
	t.Parallel()

	book := testBook(t)
	// Every section below the TOC cutoff leaves the tree empty; the
	// navigation document must still list the chapters.
	book.Toc = nil

	pkg, err := Assemble(book)
	if err != nil {
		t.Fatalf("Assemble() unexpected error: %v", err)
	}

	nav := string(packageFile(t, pkg, "OEBPS/nav.xhtml"))
	for _, want := range []string{"One", "Two", "chapter-001.xhtml", "chapter-002.xhtml"} {
		if !strings.Contains(nav, want) {
			t.Errorf("nav.xhtml missing %q in fallback mode:\n%s", want, nav)
		}
	}
}

func TestPackage_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(p *Package)
		wantMsg string
	}{
		{
			name:    "duplicate manifest id",
			mutate:  func(p *Package) { p.Manifest = append(p.Manifest, p.Manifest[0]) },
			wantMsg: "duplicate manifest id",
		},
		{
			name: "manifest href without file",
			mutate: func(p *Package) {
				p.Manifest = append(p.Manifest, ManifestEntry{
					ID: "ghost", Href: "ghost.xhtml", MediaType: "application/xhtml+xml",
				})
			},
			wantMsg: "missing file",
		},
		{
			name:    "spine idref without manifest item",
			mutate:  func(p *Package) { p.Spine = append(p.Spine, SpineEntry{IDRef: "ghost"}) },
			wantMsg: "no manifest item",
		},
		{
			name:    "empty spine",
			mutate:  func(p *Package) { p.Spine = nil },
			wantMsg: "spine is empty",
		},
		{
			name: "no navigation document",
			mutate: func(p *Package) {
				for i := range p.Manifest {
					p.Manifest[i].Properties = ""
				}
			},
			wantMsg: "nav property",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pkg, err := Assemble(testBook(t))
			if err != nil {
				t.Fatalf("Assemble() unexpected error: %v", err)
			}
			tt.mutate(pkg)

			err = pkg.verify()
			if !errors.Is(err, ErrInconsistent) {
				t.Fatalf("verify() error = %v, want ErrInconsistent", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("verify() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}
