package epub

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/alnah/go-md2epub/internal/document"
)

// ncxXML builds the NCX table of contents. EPUB 3 readers use the
// navigation document; the NCX is carried for EPUB 2 reading systems.
func ncxXML(meta Metadata, toc []*document.TocNode) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	addNCXMeta(head, "dtb:uid", meta.BookID)
	addNCXMeta(head, "dtb:depth", strconv.Itoa(document.Depth(toc)))
	addNCXMeta(head, "dtb:totalPageCount", "0")
	addNCXMeta(head, "dtb:maxPageNumber", "0")

	docTitle := ncx.CreateElement("docTitle")
	docTitle.CreateElement("text").SetText(meta.Title)

	navMap := ncx.CreateElement("navMap")
	order := 0
	appendNavPoints(navMap, toc, &order)

	return xmlBytes(doc)
}

func addNCXMeta(head *etree.Element, name, content string) {
	m := head.CreateElement("meta")
	m.CreateAttr("name", name)
	m.CreateAttr("content", content)
}

// appendNavPoints emits navPoint elements depth-first so playOrder
// matches reading order.
func appendNavPoints(parent *etree.Element, nodes []*document.TocNode, order *int) {
	for _, node := range nodes {
		*order++
		navPoint := parent.CreateElement("navPoint")
		navPoint.CreateAttr("id", fmt.Sprintf("navpoint-%d", *order))
		navPoint.CreateAttr("playOrder", strconv.Itoa(*order))
		label := navPoint.CreateElement("navLabel")
		label.CreateElement("text").SetText(node.Title)
		content := navPoint.CreateElement("content")
		content.CreateAttr("src", node.Href)
		appendNavPoints(navPoint, node.Children, order)
	}
}
