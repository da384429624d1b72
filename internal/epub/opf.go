package epub

import "github.com/beevik/etree"

// modifiedFormat renders dcterms:modified as required by EPUB 3:
// UTC, second precision, Zulu suffix.
const modifiedFormat = "2006-01-02T15:04:05Z"

// opfXML builds the OPF package document: metadata, manifest, and spine.
func opfXML(meta Metadata, manifest []ManifestEntry, spine []SpineEntry) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDecl)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	pkg.CreateAttr("unique-identifier", "BookId")
	pkg.CreateAttr("version", "3.0")

	md := pkg.CreateElement("metadata")
	md.CreateElement("dc:title").SetText(meta.Title)
	md.CreateElement("dc:language").SetText(meta.Language)
	if meta.Creator != "" {
		md.CreateElement("dc:creator").SetText(meta.Creator)
	}
	identifier := md.CreateElement("dc:identifier")
	identifier.CreateAttr("id", "BookId")
	identifier.SetText(meta.BookID)
	if meta.Date != "" {
		md.CreateElement("dc:date").SetText(meta.Date)
	}
	modified := md.CreateElement("meta")
	modified.CreateAttr("property", "dcterms:modified")
	modified.SetText(meta.Modified.UTC().Format(modifiedFormat))

	mf := pkg.CreateElement("manifest")
	for _, entry := range manifest {
		item := mf.CreateElement("item")
		item.CreateAttr("id", entry.ID)
		item.CreateAttr("href", entry.Href)
		item.CreateAttr("media-type", entry.MediaType)
		if entry.Properties != "" {
			item.CreateAttr("properties", entry.Properties)
		}
	}

	sp := pkg.CreateElement("spine")
	sp.CreateAttr("toc", ncxID)
	if meta.Vertical {
		// Vertical text flows right to left; pages must turn the same way.
		sp.CreateAttr("page-progression-direction", "rtl")
	}
	for _, entry := range spine {
		itemref := sp.CreateElement("itemref")
		itemref.CreateAttr("idref", entry.IDRef)
	}

	return xmlBytes(doc)
}
