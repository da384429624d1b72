package epub

import (
	"github.com/beevik/etree"

	"github.com/alnah/go-md2epub/internal/document"
)

const navTitle = "Table of Contents"

// navXML builds the EPUB 3 navigation document: a toc nav mirroring the
// TOC tree, plus a hidden landmarks nav linking the TOC itself and the
// start of the body matter.
func navXML(meta Metadata, toc []*document.TocNode, firstHref string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	html.CreateAttr("xml:lang", meta.Language)
	html.CreateAttr("lang", meta.Language)

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(navTitle)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")
	nav.CreateElement("h1").SetText(navTitle)
	appendNavList(nav.CreateElement("ol"), toc)

	if firstHref != "" {
		landmarks := body.CreateElement("nav")
		landmarks.CreateAttr("epub:type", "landmarks")
		landmarks.CreateAttr("id", "landmarks")
		landmarks.CreateAttr("hidden", "")
		ol := landmarks.CreateElement("ol")

		tocLink := ol.CreateElement("li").CreateElement("a")
		tocLink.CreateAttr("epub:type", "toc")
		tocLink.CreateAttr("href", "nav.xhtml")
		tocLink.SetText(navTitle)

		start := ol.CreateElement("li").CreateElement("a")
		start.CreateAttr("epub:type", "bodymatter")
		start.CreateAttr("href", firstHref)
		start.SetText("Start of Content")
	}

	return xmlBytes(doc)
}

func appendNavList(ol *etree.Element, nodes []*document.TocNode) {
	for _, node := range nodes {
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", node.Href)
		a.SetText(node.Title)
		if len(node.Children) > 0 {
			appendNavList(li.CreateElement("ol"), node.Children)
		}
	}
}
