package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
)

// Finding levels, ordered by severity.
const (
	LevelOK      = "ok"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Finding is one validation check result.
type Finding struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// HasErrors reports whether any finding is at the error level.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Level == LevelError {
			return true
		}
	}
	return false
}

// Validate opens a finished container and cross-checks its core
// structures: mimetype placement, the container pointer, manifest hrefs
// against archive entries, spine idrefs against the manifest, and the
// navigation document declaration. It returns findings for reporting;
// the error is non-nil only when the file cannot be opened as a zip
// archive at all.
func Validate(epubPath string) ([]Finding, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open container: %w", err)
	}
	defer func() { _ = zr.Close() }()

	v := &validator{}
	v.checkMimetype(zr)
	if opf := v.checkContainer(zr); opf != nil {
		v.checkPackage(zr, opf)
	}
	return v.findings, nil
}

type validator struct {
	findings []Finding
}

func (v *validator) ok(format string, args ...any)   { v.add(LevelOK, format, args...) }
func (v *validator) warn(format string, args ...any) { v.add(LevelWarning, format, args...) }
func (v *validator) fail(format string, args ...any) { v.add(LevelError, format, args...) }

func (v *validator) add(level, format string, args ...any) {
	v.findings = append(v.findings, Finding{Level: level, Message: fmt.Sprintf(format, args...)})
}

// checkMimetype verifies the OCF signature: first entry named mimetype,
// stored uncompressed, exact content.
func (v *validator) checkMimetype(zr *zip.ReadCloser) {
	if len(zr.File) == 0 {
		v.fail("archive is empty")
		return
	}
	first := zr.File[0]
	if first.Name != "mimetype" {
		v.fail("first entry is %q, want mimetype", first.Name)
		return
	}
	if first.Method != zip.Store {
		v.fail("mimetype entry is compressed, must be stored")
		return
	}
	data, err := readEntry(first)
	if err != nil {
		v.fail("failed to read mimetype entry: %v", err)
		return
	}
	if string(data) != Mimetype {
		v.fail("mimetype content is %q, want %q", string(data), Mimetype)
		return
	}
	v.ok("mimetype: stored first entry")
}

// checkContainer locates the package document through META-INF and
// returns its archive entry, or nil when the chain is broken.
func (v *validator) checkContainer(zr *zip.ReadCloser) *zip.File {
	entry := findEntry(zr.File, containerPath)
	if entry == nil {
		v.fail("missing %s", containerPath)
		return nil
	}
	doc, err := parseEntry(entry)
	if err != nil {
		v.fail("%s does not parse: %v", containerPath, err)
		return nil
	}
	rootfile := doc.FindElement("//rootfile")
	if rootfile == nil {
		v.fail("%s has no rootfile element", containerPath)
		return nil
	}
	fullPath := rootfile.SelectAttrValue("full-path", "")
	if fullPath == "" {
		v.fail("rootfile has no full-path attribute")
		return nil
	}
	opf := findEntry(zr.File, fullPath)
	if opf == nil {
		v.fail("rootfile points at missing entry %q", fullPath)
		return nil
	}
	v.ok("container: rootfile %s", fullPath)
	return opf
}

// checkPackage cross-checks the OPF against the archive contents.
func (v *validator) checkPackage(zr *zip.ReadCloser, opf *zip.File) {
	doc, err := parseEntry(opf)
	if err != nil {
		v.fail("%s does not parse: %v", opf.Name, err)
		return
	}
	root := doc.Root()
	if root == nil || root.Tag != "package" {
		v.fail("%s root element is not package", opf.Name)
		return
	}

	uid := root.SelectAttrValue("unique-identifier", "")
	if identifierResolves(root, uid) {
		v.ok("metadata: unique identifier resolves")
	} else {
		v.fail("unique-identifier %q does not resolve to a dc:identifier", uid)
	}

	manifestEl := root.SelectElement("manifest")
	if manifestEl == nil {
		v.fail("%s has no manifest", opf.Name)
		return
	}
	base := path.Dir(opf.Name)
	ids := make(map[string]bool)
	hasNav := false
	missing := 0
	items := manifestEl.SelectElements("item")
	for _, item := range items {
		id := item.SelectAttrValue("id", "")
		href := item.SelectAttrValue("href", "")
		ids[id] = true
		if strings.Contains(item.SelectAttrValue("properties", ""), "nav") {
			hasNav = true
		}
		if findEntry(zr.File, path.Join(base, href)) == nil {
			v.fail("manifest item %q references missing entry %q", id, href)
			missing++
		}
	}
	if missing == 0 {
		v.ok("manifest: %d items, all present", len(items))
	}

	spineEl := root.SelectElement("spine")
	if spineEl == nil {
		v.fail("%s has no spine", opf.Name)
		return
	}
	refs := spineEl.SelectElements("itemref")
	if len(refs) == 0 {
		v.fail("spine is empty")
	}
	broken := 0
	for _, ref := range refs {
		idref := ref.SelectAttrValue("idref", "")
		if !ids[idref] {
			v.fail("spine idref %q has no manifest item", idref)
			broken++
		}
	}
	if len(refs) > 0 && broken == 0 {
		v.ok("spine: %d chapters resolve", len(refs))
	}

	if hasNav {
		v.ok("navigation document declared")
	} else {
		v.fail("no manifest item carries the nav property")
	}

	if tocAttr := spineEl.SelectAttrValue("toc", ""); tocAttr == "" {
		v.warn("spine declares no NCX fallback")
	} else if !ids[tocAttr] {
		v.fail("spine toc %q has no manifest item", tocAttr)
	}
}

// identifierResolves reports whether the package unique-identifier names
// a dc:identifier in the metadata block.
func identifierResolves(root *etree.Element, uid string) bool {
	if uid == "" {
		return false
	}
	md := root.SelectElement("metadata")
	if md == nil {
		return false
	}
	for _, el := range md.ChildElements() {
		if el.Tag == "identifier" && el.SelectAttrValue("id", "") == uid {
			return true
		}
	}
	return false
}

func findEntry(files []*zip.File, name string) *zip.File {
	for _, f := range files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func parseEntry(f *zip.File) (*etree.Document, error) {
	data, err := readEntry(f)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}
