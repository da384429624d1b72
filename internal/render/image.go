package render

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2epub/internal/document"
)

// imageRenderer replaces the stock image renderer so resolved local
// references point at their packaged assets/ location and missing files
// degrade to a visible placeholder instead of a broken reference in the
// reading system. Nodes absent from the resolution map (remote URLs, data
// URIs) render with their original destination.
type imageRenderer struct {
	refs map[ast.Node]document.ImageRef
}

var _ renderer.NodeRenderer = (*imageRenderer)(nil)

func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := altText(n, source)

	if ref, ok := r.refs[node]; ok {
		if ref.Missing {
			_, _ = w.WriteString(`<span class="missing-image">`)
			_, _ = w.Write(util.EscapeHTML(alt))
			_, _ = w.WriteString(`</span>`)
			return ast.WalkSkipChildren, nil
		}
		writeImg(w, []byte(ref.Href), alt, n.Title)
		return ast.WalkSkipChildren, nil
	}

	writeImg(w, n.Destination, alt, n.Title)
	return ast.WalkSkipChildren, nil
}

func writeImg(w util.BufWriter, dest, alt, title []byte) {
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(dest, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(alt))
	if title != nil {
		_, _ = w.WriteString(`" title="`)
		_, _ = w.Write(util.EscapeHTML(title))
	}
	_, _ = w.WriteString(`" />`)
}

// altText flattens the image's children to plain text for the alt attribute.
func altText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
