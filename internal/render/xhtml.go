package render

import (
	"fmt"
	"html/template"
	"io"
)

// ChapterData fills the chapter shell for one complete content document.
type ChapterData struct {
	Language string
	Title    string
	Body     template.HTML
	Vertical bool // adds the vertical body class
}

// Shell wraps rendered chapter bodies into complete XHTML content documents.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses tmpl as the chapter document template. The caller supplies
// the template content, usually the embedded "chapter" asset, so custom asset
// loaders can swap the shell without touching the renderer.
func NewShell(tmpl string) (*Shell, error) {
	t, err := template.New("chapter").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing chapter template: %w", err)
	}
	return &Shell{tmpl: t}, nil
}

// Render writes the complete content document for one chapter.
func (s *Shell) Render(w io.Writer, data ChapterData) error {
	if err := s.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
