package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/*
var styleFS embed.FS

//go:embed templates/*
var templateFS embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns a loader over the compiled-in asset set.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle reads styles/{name}.css from the embedded filesystem.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readEmbedded(styleFS, "styles/"+name+".css", name, ErrStyleNotFound)
}

// LoadTemplate reads templates/{name}.xhtml from the embedded filesystem.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded(templateFS, "templates/"+name+".xhtml", name, ErrTemplateNotFound)
}

// readEmbedded validates the name, then reads one file. Embedded content is
// fixed at build time, so any read failure means the name is unknown.
func readEmbedded(fsys embed.FS, path, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
