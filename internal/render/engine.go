// Package render turns the logical document into XHTML content documents:
// a goldmark engine renders chapter block ranges to body fragments, and the
// chapter shell wraps fragments into complete EPUB content documents.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2epub/internal/document"
)

// ErrRender wraps goldmark and template failures while producing XHTML.
var ErrRender = errors.New("xhtml render failed")

// Engine holds a configured goldmark instance. The same instance parses the
// source files and renders the chapter bodies, so extension state like
// footnote collection stays consistent. An Engine serves one conversion at a
// time; it is not safe for concurrent use across documents.
type Engine struct {
	md     goldmark.Markdown
	images *imageRenderer
}

// NewEngine builds the goldmark pipeline: GFM with footnotes, class-based
// syntax highlighting, and the manifest-aware image renderer ahead of the
// stock HTML one.
func NewEngine() *Engine {
	images := &imageRenderer{}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				// Classes instead of inline styles; the package stylesheet
				// carries the chroma rules.
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// Raw HTML blocks pass through into the content documents.
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(images, 100),
			),
		),
	)
	return &Engine{md: md, images: images}
}

// Parser exposes the engine's parser so the document model is built from the
// same extension set that later renders it.
func (e *Engine) Parser() parser.Parser {
	return e.md.Parser()
}

// ChapterBody renders the chapter's block range to an XHTML body fragment.
// goldmark has no context hooks, so rendering runs in a goroutine and the
// select below honors cancellation.
func (e *Engine) ChapterBody(ctx context.Context, doc *document.Document, ch document.Chapter) (string, error) {
	// An already-cancelled run never starts the goroutine.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.images.refs = doc.Images

	type rendered struct {
		body string
		err  error
	}

	out := make(chan rendered, 1)
	go func() {
		body, err := e.renderBlocks(doc, ch)
		out <- rendered{body, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-out:
		return r.body, r.err
	}
}

// renderBlocks renders the chapter's blocks into one buffer. Blocks keep
// their own source buffers, so chapters merged from several files render
// with the right byte offsets.
func (e *Engine) renderBlocks(doc *document.Document, ch document.Chapter) (string, error) {
	var buf bytes.Buffer
	for _, b := range doc.Blocks[ch.Start:ch.End] {
		if err := e.md.Renderer().Render(&buf, b.Source, b.Node); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return buf.String(), nil
}
