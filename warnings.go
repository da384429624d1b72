package md2epub

import "github.com/alnah/go-md2epub/internal/document"

// Warning kinds.
const (
	// WarnStructure reports a recovered structural irregularity, such as
	// content before the first heading.
	WarnStructure = document.WarnStructure

	// WarnAsset reports a missing image; a placeholder is rendered in its
	// place.
	WarnAsset = document.WarnAsset

	// WarnMetadata reports a defaulted metadata field.
	WarnMetadata = "metadata"

	// WarnArchive reports the directory fallback taken when zip archiving
	// is unavailable.
	WarnArchive = "archive"
)

// Warning is a non-fatal condition recorded during conversion. A conversion
// with warnings still produces a complete package; warnings are accumulated
// and returned together on the Result, never logged mid-run.
type Warning struct {
	Kind    string
	Path    string // offending file, empty when not path-specific
	Message string
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	if w.Path != "" {
		return w.Kind + ": " + w.Message + " (" + w.Path + ")"
	}
	return w.Kind + ": " + w.Message
}

// fromDocumentWarnings converts internal document warnings to the public type.
func fromDocumentWarnings(ws []document.Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Kind: w.Kind, Path: w.Path, Message: w.Message}
	}
	return out
}
