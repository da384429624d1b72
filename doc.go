// Package md2epub converts Markdown documents to EPUB 3 books.
//
// # Usage
//
// Create a converter once, then convert as many books as needed:
//
//	conv, err := md2epub.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2epub.Input{
//	    Files:      []md2epub.File{{Path: "book.md", Content: src}},
//	    OutputPath: "book.epub",
//	    Metadata:   md2epub.Metadata{Title: "My Book", Creator: "Jane Doe"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
//
// Convert writes the .epub file itself: output is staged in a temporary
// directory and promoted atomically, so a failed conversion never leaves a
// partial book behind. The result reports the written path and any warnings
// (missing images, defaulted metadata).
//
// # Pipeline
//
// A conversion runs through six stages:
//
//  1. Markdown parsing via Goldmark (GFM, footnotes, syntax highlighting)
//  2. Document assembly: unique heading ids, section tree, image resolution
//  3. Chapter segmentation at the configured heading level
//  4. XHTML rendering of each chapter as an EPUB content document
//  5. Package assembly (OPF, nav document, NCX, stylesheet, assets)
//  6. Zip archiving with the stored mimetype entry first
//
// Multiple input files concatenate into one logical document in slice order;
// heading ids stay unique across files.
//
// # Options
//
// Converter construction takes functional options:
//
//	conv, err := md2epub.NewConverter(
//	    md2epub.WithStyle("path/to/custom.css"),
//	    md2epub.WithAssetPath("./book-assets"),
//	)
//
// Everything that varies per book rides on Input:
//
//	result, err := conv.Convert(ctx, md2epub.Input{
//	    Files:        files,
//	    OutputPath:   "out/book.epub",
//	    Metadata:     md2epub.Metadata{Title: "Guide", Vertical: true},
//	    ChapterLevel: 2,   // split chapters at ## headings
//	    TocLevel:     3,   // TOC includes headings down to ###
//	    Save:         true, // keep the package directory next to the .epub
//	})
//
// Vertical mode produces a right-to-left book: the spine declares rtl page
// progression and the stylesheet gains the vertical writing-mode overlay.
//
// # Deterministic Output
//
// Converting the same input twice produces byte-identical archives when the
// clock and book id are fixed:
//
//	conv, err := md2epub.NewConverter(
//	    md2epub.WithClock(func() time.Time { return buildTime }),
//	)
//	result, err := conv.Convert(ctx, md2epub.Input{
//	    Metadata: md2epub.Metadata{BookID: "urn:uuid:..."},
//	    // ...
//	})
//
// # Batch Conversion
//
// ConverterPool bounds concurrency when converting many books at once:
//
//	pool := md2epub.NewConverterPool(4)
//	defer pool.Close()
//
//	c, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(c)
//	result, err := c.Convert(ctx, input)
//
// # Custom Styles and Templates
//
// An AssetLoader overrides the built-in stylesheet and chapter template:
//
//	loader, err := md2epub.NewAssetLoader("./book-assets")
//	conv, err := md2epub.NewConverter(md2epub.WithAssetLoader(loader))
//
// The override directory is laid out as:
//
//	assets/
//	├── styles/
//	│   └── default.css
//	└── templates/
//	    └── chapter.xhtml
package md2epub
