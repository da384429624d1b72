package assets

import "errors"

// Lookup failures. The resolver falls back to embedded assets on these two
// and on nothing else.
var (
	ErrStyleNotFound    = errors.New("no such style")
	ErrTemplateNotFound = errors.New("no such template")
)

// Hard failures. These never trigger fallback.
var (
	// ErrInvalidAssetName marks a name carrying separators, dots, or
	// traversal sequences.
	ErrInvalidAssetName = errors.New("bad asset name")

	// ErrInvalidBasePath marks a custom asset path that is not a readable
	// directory.
	ErrInvalidBasePath = errors.New("unusable assets directory")

	// ErrAssetRead marks an I/O failure on an asset that does exist.
	ErrAssetRead = errors.New("asset not readable")

	// ErrPathTraversal marks a resolved path that escapes the assets
	// directory, symlinks included.
	ErrPathTraversal = errors.New("path outside assets directory")
)
