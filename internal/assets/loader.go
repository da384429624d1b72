package assets

// AssetLoader resolves named styles and templates, wherever they live.
type AssetLoader interface {
	// LoadStyle returns the CSS for a style name, given without the .css
	// extension. Missing styles yield ErrStyleNotFound; names that fail
	// validation yield ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns the XHTML template for a name, given without
	// the .xhtml extension. Missing templates yield ErrTemplateNotFound;
	// names that fail validation yield ErrInvalidAssetName.
	LoadTemplate(name string) (string, error)
}
