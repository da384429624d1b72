package md2epub

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/document"
	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/render"
)

// Compile-time interface implementation checks. The public and internal
// asset loader contracts must stay assignment-compatible in both directions;
// the default archiver must satisfy the injectable archiving capability.
var (
	_ AssetLoader        = (assets.AssetLoader)(nil)
	_ assets.AssetLoader = (AssetLoader)(nil)
	_ epub.Archiver      = epub.ZipArchiver{}
)

// chapterTemplateName is the asset name of the XHTML chapter shell.
const chapterTemplateName = "chapter"

// Converter orchestrates the Markdown-to-EPUB pipeline. Create with
// NewConverter, then call Convert once per book. A Converter serves one
// conversion at a time; for parallel batches use ConverterPool.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	engine            *render.Engine
	shell             *render.Shell
	archiver          epub.Archiver
	resolvedStyle     string
}

// NewConverter builds a Converter ready for repeated use. Options adjust
// styling, assets, and the clock; the zero-option form uses embedded assets
// and the default stylesheet. Construction fails if the configured style or
// chapter template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			now: time.Now,
			newBookID: func() string {
				return "urn:uuid:" + uuid.NewString()
			},
		},
		assetLoader: assets.NewEmbeddedLoader(),
		archiver:    epub.ZipArchiver{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: custom assets with embedded fallback
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader: full replacement. The public interface is
	// assignment-compatible with the internal one, no adapter needed.
	if c.publicAssetLoader != nil {
		c.assetLoader = c.publicAssetLoader
	}

	// Resolve style input (name or path) to CSS content
	style, err := c.resolveStyle()
	if err != nil {
		return nil, err
	}
	c.resolvedStyle = style

	// Chapter shell from the configured loader
	tmpl, err := c.assetLoader.LoadTemplate(chapterTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading chapter template: %w", toPublicError(err))
	}
	c.shell, err = render.NewShell(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing chapter shell: %w", err)
	}

	c.engine = render.NewEngine()

	return c, nil
}

// Convert runs the full pipeline and writes the package to input.OutputPath.
// The context is honored at stage boundaries and during rendering. A failed
// conversion never leaves partial output at the final location. A panic
// anywhere in the pipeline is recovered and reported as an error.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during conversion: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	chapterLevel := input.ChapterLevel
	if chapterLevel == 0 {
		chapterLevel = DefaultChapterLevel
	}
	tocLevel := input.TocLevel
	if tocLevel == 0 {
		tocLevel = DefaultTocLevel
	}

	// Parse every source file into the flat block sequence
	files := toSourceFiles(input.Files)
	blocks, err := document.Parse(c.engine.Parser(), files)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Build the logical document: heading ids, sections, image resolution
	doc, docWarnings := document.Build(blocks, files)
	warnings := fromDocumentWarnings(docWarnings)

	// Cut chapters and derive the table of contents
	chapters := document.Segment(doc, chapterLevel)
	toc := document.BuildToc(doc, chapters, tocLevel)

	// Default absent metadata
	meta, metaWarnings := c.resolveMetadata(input.Metadata)
	warnings = append(warnings, metaWarnings...)

	// Compose the package stylesheet
	css, err := c.composeStylesheet(input)
	if err != nil {
		return nil, err
	}

	// Render each chapter into a complete content document
	book := &epub.Book{
		Metadata:   meta,
		Assets:     doc.Assets,
		Toc:        toc,
		Stylesheet: []byte(css),
	}
	for _, ch := range chapters {
		xhtml, err := c.renderChapter(ctx, doc, ch, meta)
		if err != nil {
			return nil, err
		}
		book.Chapters = append(book.Chapters, epub.Chapter{
			ID:       ch.ID,
			FileName: ch.FileName,
			Title:    ch.Title,
			XHTML:    xhtml,
		})
	}

	// Assemble the package and verify manifest/spine consistency
	pkg, err := epub.Assemble(book)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackage, err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Stage, archive, promote
	wres, err := epub.Write(pkg, input.OutputPath, c.archiver, meta.Modified, input.Save)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	res := &Result{
		OutputPath: wres.OutputPath,
		PackageDir: wres.PackageDir,
		Fallback:   wres.Fallback,
		Warnings:   warnings,
	}
	if wres.Fallback {
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnArchive,
			Message: "zip archiving unavailable, wrote the package directory instead",
		})
	}
	return res, nil
}

// renderChapter produces the complete content document for one chapter.
func (c *Converter) renderChapter(ctx context.Context, doc *document.Document, ch document.Chapter, meta epub.Metadata) ([]byte, error) {
	body, err := c.engine.ChapterBody(ctx, doc, ch)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ch.FileName, err)
	}

	var buf bytes.Buffer
	data := render.ChapterData{
		Language: meta.Language,
		Title:    ch.Title,
		Body:     template.HTML(body), // #nosec G203 -- rendered from trusted Markdown input
		Vertical: meta.Vertical,
	}
	if err := c.shell.Render(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ch.FileName, err)
	}
	return buf.Bytes(), nil
}

// resolveMetadata fills defaults for absent metadata fields, recording a
// warning for each one. Creator and Date stay empty; the package simply
// omits them.
func (c *Converter) resolveMetadata(m Metadata) (epub.Metadata, []Warning) {
	var warnings []Warning
	meta := epub.Metadata{
		Title:    m.Title,
		Language: m.Language,
		Creator:  m.Creator,
		BookID:   m.BookID,
		Date:     m.Date,
		Modified: c.cfg.now().UTC(),
		Vertical: m.Vertical,
	}

	if meta.Title == "" {
		meta.Title = document.UntitledTitle
		warnings = append(warnings, Warning{
			Kind:    WarnMetadata,
			Message: fmt.Sprintf("title missing, defaulted to %q", document.UntitledTitle),
		})
	}
	if meta.Language == "" {
		meta.Language = DefaultLanguage
		warnings = append(warnings, Warning{
			Kind:    WarnMetadata,
			Message: fmt.Sprintf("language missing, defaulted to %q", DefaultLanguage),
		})
	}
	if meta.BookID == "" {
		meta.BookID = c.cfg.newBookID()
		warnings = append(warnings, Warning{
			Kind:    WarnMetadata,
			Message: "book id missing, generated " + meta.BookID,
		})
	}

	return meta, warnings
}

// validateInput guards the library surface. The CLI validates levels once
// more at config load, but callers constructing Input by hand get no earlier
// check, so everything is verified here before any work starts.
func (c *Converter) validateInput(input Input) error {
	if len(input.Files) == 0 {
		return ErrNoInput
	}
	if input.OutputPath == "" {
		return ErrNoOutput
	}
	if l := input.ChapterLevel; l != 0 && (l < MinChapterLevel || l > MaxChapterLevel) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidChapterLevel, l, MinChapterLevel, MaxChapterLevel)
	}
	if l := input.TocLevel; l != 0 && (l < MinTocLevel || l > MaxTocLevel) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidTocLevel, l, MinTocLevel, MaxTocLevel)
	}
	return nil
}

// toSourceFiles converts the public file list for the document package.
func toSourceFiles(files []File) []document.SourceFile {
	out := make([]document.SourceFile, len(files))
	for i, f := range files {
		out[i] = document.SourceFile{Path: f.Path, Content: f.Content}
	}
	return out
}
