package epub

import "errors"

// Sentinel errors for package assembly and archiving.
var (
	// ErrInconsistent indicates the manifest, spine, and package files
	// disagree: a spine idref without a manifest item, a manifest href
	// without a file, a duplicate id, or a missing navigation document.
	// Assembly never ships a package that fails this check.
	ErrInconsistent = errors.New("package structure inconsistent")

	// ErrArchiveUnavailable indicates the archiver cannot produce a
	// container file. Callers fall back to directory output.
	ErrArchiveUnavailable = errors.New("archiver unavailable")
)
