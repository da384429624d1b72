// Package epub assembles rendered chapters into an EPUB 3 container.
//
// This package handles the packaging stages that follow content rendering:
//   - Manifest and spine construction from chapters and referenced assets
//   - OPF package document, navigation document, and NCX generation
//   - OCF layout (mimetype, META-INF/container.xml, OEBPS content tree)
//   - Staged directory output and zip archiving
//   - Read-back validation of finished containers
//
// Markdown parsing and XHTML rendering are handled separately by
// internal/document and internal/render. This separation keeps the package
// layer focused on container structure: it consumes finished chapter bytes
// and never inspects their markup.
package epub
