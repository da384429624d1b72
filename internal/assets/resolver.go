package assets

import "errors"

// AssetResolver layers a custom asset directory over the embedded defaults.
// Lookups go to the custom directory first; a name missing there falls back
// to the embedded copy, so one overridden style does not hide the rest.
type AssetResolver struct {
	custom   AssetLoader // nil when no custom path is configured
	embedded AssetLoader
}

// NewAssetResolver builds a resolver. An empty customDir means embedded
// assets only; a non-empty one must point at a readable directory or the
// constructor fails with ErrInvalidBasePath.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customDir == "" {
		return r, nil
	}

	fs, err := NewFilesystemLoader(customDir)
	if err != nil {
		return nil, err
	}
	r.custom = fs
	return r, nil
}

// LoadStyle resolves a style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	css, err := r.custom.LoadStyle(name)
	switch {
	case err == nil:
		return css, nil
	case errors.Is(err, ErrStyleNotFound):
		return r.embedded.LoadStyle(name)
	default:
		// Validation and I/O failures surface as-is; falling back would
		// mask a misconfigured override
		return "", err
	}
}

// LoadTemplate resolves a template, custom directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	tmpl, err := r.custom.LoadTemplate(name)
	switch {
	case err == nil:
		return tmpl, nil
	case errors.Is(err, ErrTemplateNotFound):
		return r.embedded.LoadTemplate(name)
	default:
		return "", err
	}
}

var _ AssetLoader = (*AssetResolver)(nil)
