package md2epub

import (
	"time"

	"github.com/alnah/go-md2epub/internal/document"
)

// Chapter split bounds for Input.ChapterLevel.
const (
	MinChapterLevel     = document.MinChapterLevel
	MaxChapterLevel     = document.MaxChapterLevel
	DefaultChapterLevel = document.DefaultChapterLevel
)

// TOC depth bounds for Input.TocLevel.
const (
	MinTocLevel     = document.MinTocLevel
	MaxTocLevel     = document.MaxTocLevel
	DefaultTocLevel = document.DefaultTocLevel
)

// DefaultLanguage is used when Metadata.Language is empty.
const DefaultLanguage = "en"

// File is one Markdown source. Path appears in diagnostics and anchors
// relative image references; Content is the file's text.
type File struct {
	Path    string
	Content []byte
}

// Metadata describes the book. Empty Title, Language, and BookID are
// defaulted during conversion ("Untitled", DefaultLanguage, a generated
// urn:uuid value), each recording a metadata warning. Empty Creator and Date
// are simply omitted from the package.
type Metadata struct {
	Title    string
	Creator  string
	Language string // BCP 47 tag
	BookID   string // dc:identifier value
	Date     string // dc:date value; use ResolveDate for "auto" handling
	Vertical bool   // vertical writing mode, right-to-left page progression
}

// Input contains conversion parameters for one book.
type Input struct {
	Files      []File   // Markdown sources in reading order (required)
	OutputPath string   // destination .epub path (required)
	Metadata   Metadata // book metadata, zero values defaulted

	CSS          string // raw CSS replacing the configured stylesheet (optional)
	ChapterLevel int    // 1-6, 0 = DefaultChapterLevel
	TocLevel     int    // 1-5, 0 = DefaultTocLevel
	Save         bool   // retain the package directory next to the archive
}

// Result reports a completed conversion.
type Result struct {
	// OutputPath is the written .epub file, or the package directory when
	// Fallback is set.
	OutputPath string

	// PackageDir is the retained package directory, set only with
	// Input.Save or in fallback mode.
	PackageDir string

	// Fallback reports that archiving was unavailable and the package
	// directory is the final output.
	Fallback bool

	Warnings []Warning
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	style     string
	assetPath string
	now       func() time.Time
	newBookID func() string
}

// WithStyle selects the package stylesheet: a built-in style name or a path
// to a CSS file. The default is the embedded "default" style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.style = style
	}
}

// WithAssetPath points the converter at a custom asset directory. Styles and
// templates found there take precedence, with fallback to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader replaces asset resolution entirely. No embedded fallback
// applies; the loader must serve every style and template the conversion
// asks for.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithClock injects the time source used for the dcterms:modified value and
// the archive entry timestamps. A fixed clock together with a set
// Metadata.BookID makes output byte-identical across runs.
// Panics if now is nil (programmer error, similar to time.NewTicker).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("md2epub: WithClock time source must not be nil")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}
