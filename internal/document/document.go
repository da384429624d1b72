// Package document builds the logical document model for a conversion run:
// the flat block sequence parsed from the source files, heading-rooted
// sections over it, the chapter partition, and the derived table of contents.
//
// All structures are produced in one forward pass and read-only afterwards.
// Sections and chapters are index ranges over the block table; the section
// tree is recovered by scanning heading levels, so there are no ownership
// cycles between nodes.
package document

import "github.com/yuin/goldmark/ast"

// BlockKind identifies the construct a top-level block holds. The set is
// closed; consumers switch over it exhaustively.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindList
	KindCodeBlock
	KindQuote
	KindTable
	KindHTMLBlock
	KindThematicBreak
	KindOther
)

// Block is one top-level construct from a source file, immutable once parsed.
// Node points into the goldmark AST; Source is the buffer its segments
// reference. File indexes the conversion's source file list so image paths can
// be resolved against the right directory.
type Block struct {
	Kind   BlockKind
	Node   ast.Node
	Source []byte
	File   int
	Level  int    // heading level, 0 for non-headings
	ID     string // heading slug, assigned by Build
	Title  string // heading plain text, assigned by Build
}

// Section is a heading block plus everything that follows it up to the next
// heading of equal or shallower level. The synthetic section created for
// content preceding the first heading has no heading block and level 1.
type Section struct {
	Heading   int // block index of the rooting heading, -1 when synthetic
	Start     int // first block index
	End       int // one past the last block index
	Level     int
	Title     string
	ID        string
	Synthetic bool
}

// Document is the ordered logical document assembled from all input files.
type Document struct {
	Blocks   []Block
	Sections []Section
	Assets   []Asset
	Images   map[ast.Node]ImageRef
}

// Asset is one local image scheduled for copying into the package.
type Asset struct {
	ID         string // manifest id, e.g. "asset-001"
	SourcePath string // resolved location on disk
	Href       string // package-relative href, e.g. "assets/cover.png"
	MediaType  string
}

// ImageRef records how a single image node renders: a rewritten
// package-relative href, or a missing-file placeholder.
type ImageRef struct {
	Href    string
	Missing bool
}

// Chapter is one EPUB content document: a contiguous slice of the block table
// cut at the chapter split threshold. Top indexes the chapter's first section,
// whose TOC entry links to the chapter file without a fragment; it is -1 only
// for the empty-document chapter.
type Chapter struct {
	ID       string // manifest id, e.g. "chapter-001"
	FileName string // e.g. "chapter-001.xhtml"
	Title    string
	Start    int // first block index
	End      int // one past the last block index
	SecStart int // first section index
	SecEnd   int // one past the last section index
	Top      int // section index opening the chapter, -1 if none
}

// TocNode is one entry of the derived table of contents. The tree mirrors the
// section nesting filtered to the TOC depth threshold and is never mutated
// after construction.
type TocNode struct {
	Title    string
	Href     string
	Children []*TocNode
}

// Warning kinds raised while building the document.
const (
	WarnStructure = "structure"
	WarnAsset     = "asset"
)

// Warning is a non-fatal condition recorded during document assembly.
// Warnings are accumulated and returned, never logged.
type Warning struct {
	Kind    string
	Path    string
	Message string
}

// UntitledTitle names the synthetic section covering content that appears
// before the first heading, and chapters with no title of their own.
const UntitledTitle = "Untitled"
