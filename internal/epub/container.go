package epub

import (
	"bytes"

	"github.com/beevik/etree"
)

const xmlDecl = `version="1.0" encoding="UTF-8"`

// xmlBytes serializes an etree document with two-space indentation.
func xmlBytes(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// containerXML builds META-INF/container.xml, the fixed pointer from the
// OCF root to the package document.
func containerXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", opfPath)
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	return xmlBytes(doc)
}
