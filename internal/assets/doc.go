// Package assets holds the stylesheets and content-document templates that
// go into every generated book, and the loaders that resolve them.
//
// Three loaders share the AssetLoader interface. EmbeddedLoader serves the
// compiled-in defaults: the base stylesheet, the vertical writing overlay,
// and the chapter template. FilesystemLoader serves a user-supplied asset
// directory. AssetResolver sits in front of both: with a custom directory
// configured it asks the filesystem first and falls back to the embedded
// copy when a name is missing, so users can override one asset without
// recreating the rest.
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/{name}.css
//	└── templates/{name}.xhtml
//
// Names are bare identifiers; loaders append the extension. ValidateAssetName
// rejects separators and dots before any path is joined, and FilesystemLoader
// additionally resolves symlinks and refuses files outside its base
// directory.
package assets
