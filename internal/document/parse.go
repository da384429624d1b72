package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// SourceFile is one Markdown input. Order in the slice is the caller's
// discovery/sort order and fixes every downstream ordering decision.
type SourceFile struct {
	Path    string
	Content []byte
}

// Parse validates and parses every source file, returning the flat block
// sequence in file order. File boundaries are erased; blocks keep their file
// index only so relative image paths can be resolved later. Fails on invalid
// UTF-8 or an unterminated code fence; everything else goldmark degrades
// gracefully.
func Parse(p parser.Parser, files []SourceFile) ([]Block, error) {
	var blocks []Block
	for i, f := range files {
		if !utf8.Valid(f.Content) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEncoding, f.Path)
		}
		if err := checkFences(f.Path, f.Content); err != nil {
			return nil, err
		}

		root := p.Parse(text.NewReader(f.Content))
		for child := root.FirstChild(); child != nil; child = child.NextSibling() {
			b := Block{
				Kind:   kindOf(child),
				Node:   child,
				Source: f.Content,
				File:   i,
			}
			if h, ok := child.(*ast.Heading); ok {
				b.Level = h.Level
			}
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

func kindOf(n ast.Node) BlockKind {
	switch n.Kind() {
	case ast.KindHeading:
		return KindHeading
	case ast.KindParagraph, ast.KindTextBlock:
		return KindParagraph
	case ast.KindList:
		return KindList
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		return KindCodeBlock
	case ast.KindBlockquote:
		return KindQuote
	case extast.KindTable:
		return KindTable
	case ast.KindHTMLBlock:
		return KindHTMLBlock
	case ast.KindThematicBreak:
		return KindThematicBreak
	default:
		return KindOther
	}
}

// plainText extracts the text content of a node subtree, markup stripped.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := node.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
