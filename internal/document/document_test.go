package document

import (
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

func newTestParser() parser.Parser {
	return goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote)).Parser()
}

func buildFrom(t *testing.T, files []SourceFile) (*Document, []Warning) {
	t.Helper()

	blocks, err := Parse(newTestParser(), files)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return Build(blocks, files)
}

func buildSingle(t *testing.T, markdown string) (*Document, []Warning) {
	t.Helper()

	return buildFrom(t, []SourceFile{{Path: "book.md", Content: []byte(markdown)}})
}
