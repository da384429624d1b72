package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Build assembles the logical document from the parsed block sequence:
// assigns each heading a unique slug id (set on the AST so the renderer emits
// it), groups blocks into sections, creates the synthetic "Untitled" section
// when content precedes the first heading, and resolves every image reference
// against its source file's directory. Non-fatal findings come back as
// warnings; Build itself never fails.
func Build(blocks []Block, files []SourceFile) (*Document, []Warning) {
	doc := &Document{
		Blocks: blocks,
		Images: make(map[ast.Node]ImageRef),
	}
	var warnings []Warning

	assignHeadingIDs(doc)
	warnings = append(warnings, buildSections(doc)...)
	warnings = append(warnings, resolveImages(doc, files)...)

	return doc, warnings
}

// assignHeadingIDs slugs every heading in document order. Ids are set as AST
// attributes so the stock goldmark renderer writes them out; uniqueness spans
// all input files.
func assignHeadingIDs(doc *Document) {
	ids := newSlugger()
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		if b.Kind != KindHeading {
			continue
		}
		b.Title = plainText(b.Node, b.Source)
		b.ID = ids.assign(b.Title)
		b.Node.SetAttributeString("id", []byte(b.ID))
	}
}

// buildSections derives the flat section list: one section per heading,
// extending to the next heading of equal or shallower level. Content before
// the first heading becomes a synthetic level-1 "Untitled" section so the
// conversion stays total.
func buildSections(doc *Document) []Warning {
	var warnings []Warning

	if len(doc.Blocks) == 0 {
		return nil
	}

	if doc.Blocks[0].Kind != KindHeading {
		end := len(doc.Blocks)
		for i, b := range doc.Blocks {
			if b.Kind == KindHeading {
				end = i
				break
			}
		}
		doc.Sections = append(doc.Sections, Section{
			Heading:   -1,
			Start:     0,
			End:       end,
			Level:     1,
			Title:     UntitledTitle,
			Synthetic: true,
		})
		warnings = append(warnings, Warning{
			Kind:    WarnStructure,
			Message: "content before the first heading was placed in a synthetic \"Untitled\" section",
		})
	}

	for i, b := range doc.Blocks {
		if b.Kind != KindHeading {
			continue
		}
		end := len(doc.Blocks)
		for j := i + 1; j < len(doc.Blocks); j++ {
			if doc.Blocks[j].Kind == KindHeading && doc.Blocks[j].Level <= b.Level {
				end = j
				break
			}
		}
		doc.Sections = append(doc.Sections, Section{
			Heading: i,
			Start:   i,
			End:     end,
			Level:   b.Level,
			Title:   b.Title,
			ID:      b.ID,
		})
	}

	return warnings
}

// resolveImages classifies every image reference. Remote URLs and data URIs
// pass through untouched. Relative and absolute local paths are resolved
// against the block's source file directory; existing files join the asset
// plan under assets/ with deduplicated basenames, missing ones are recorded
// as warnings and render as placeholders. Repeated references to the same
// file share one asset entry.
func resolveImages(doc *Document, files []SourceFile) []Warning {
	var warnings []Warning
	names := newSlugger()
	byPath := make(map[string]string) // resolved source path -> href
	missing := make(map[string]bool)

	for _, b := range doc.Blocks {
		baseDir := ""
		if b.File < len(files) {
			baseDir = filepath.Dir(files[b.File].Path)
		}
		_ = ast.Walk(b.Node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering || n.Kind() != ast.KindImage {
				return ast.WalkContinue, nil
			}
			img := n.(*ast.Image)
			src := string(img.Destination)

			if src == "" || fileutil.IsURL(src) || strings.HasPrefix(src, "data:") {
				return ast.WalkContinue, nil
			}

			resolved := src
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(baseDir, filepath.FromSlash(src))
			}

			if href, ok := byPath[resolved]; ok {
				doc.Images[n] = ImageRef{Href: href}
				return ast.WalkContinue, nil
			}

			if !fileutil.FileExists(resolved) {
				doc.Images[n] = ImageRef{Missing: true}
				if !missing[resolved] {
					missing[resolved] = true
					warnings = append(warnings, Warning{
						Kind:    WarnAsset,
						Path:    resolved,
						Message: fmt.Sprintf("image %q not found", src),
					})
				}
				return ast.WalkContinue, nil
			}

			ext := strings.ToLower(filepath.Ext(resolved))
			stem := strings.TrimSuffix(filepath.Base(resolved), filepath.Ext(resolved))
			href := "assets/" + names.assign(stem) + ext
			asset := Asset{
				ID:         fmt.Sprintf("asset-%03d", len(doc.Assets)+1),
				SourcePath: resolved,
				Href:       href,
				MediaType:  mediaTypeFor(ext),
			}
			doc.Assets = append(doc.Assets, asset)
			byPath[resolved] = href
			doc.Images[n] = ImageRef{Href: href}
			return ast.WalkContinue, nil
		})
	}

	return warnings
}

// mediaTypeFor maps an image extension to its manifest media type. A fixed
// table keeps output independent of the host's MIME database.
func mediaTypeFor(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
