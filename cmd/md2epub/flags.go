package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags groups the config and output-control flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// bookFlags carries the bibliographic fields of the package metadata.
type bookFlags struct {
	title    string
	creator  string
	language string
	id       string
	date     string
	vertical bool
}

// splitFlags carries the heading levels that drive chapter splitting and
// TOC depth.
type splitFlags struct {
	chapterLevel int
	tocLevel     int
}

// assetFlags carries the stylesheet and asset override selection.
type assetFlags struct {
	style     string // stylesheet name or CSS file path
	assetPath string // directory with styles/ and templates/ overrides
}

// convertFlags is everything the convert command accepts.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	save    bool
	book    bookFlags
	split   splitFlags
	assets  assetFlags
}

// parseConvertFlags registers the convert flag set, parses args against it,
// and returns the parsed values with the remaining positionals. Zero values
// mean "not set"; merging with frontmatter, environment, and config happens
// later.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	cf := &convertFlags{}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = func() {
		printConvertUsage(os.Stderr)
	}

	fs.StringVarP(&cf.output, "output", "o", "", "output .epub file or directory")
	fs.IntVarP(&cf.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVar(&cf.save, "save", false, "keep the unpacked book directory")
	fs.StringVarP(&cf.common.config, "config", "c", "", "config file path or name")
	fs.BoolVarP(&cf.common.quiet, "quiet", "q", false, "errors only")
	fs.BoolVarP(&cf.common.verbose, "verbose", "v", false, "per-book timing")

	fs.StringVarP(&cf.book.title, "title", "t", "", "book title")
	fs.StringVar(&cf.book.creator, "creator", "", "author or editor")
	fs.StringVarP(&cf.book.language, "language", "l", "", "language tag, e.g. en or ja")
	fs.StringVar(&cf.book.id, "book-id", "", "identifier, random urn:uuid when empty")
	fs.StringVar(&cf.book.date, "date", "", "publication date: auto, auto:FORMAT, or a literal")
	fs.BoolVar(&cf.book.vertical, "vertical", false, "vertical writing with right-to-left pages")

	fs.IntVar(&cf.split.chapterLevel, "chapter-level", 0, "heading level that starts a chapter (1-6)")
	fs.IntVar(&cf.split.tocLevel, "toc-level", 0, "deepest heading level in the TOC (1-5)")
	fs.StringVar(&cf.assets.style, "style", "", "stylesheet name or CSS file path")
	fs.StringVar(&cf.assets.assetPath, "asset-path", "", "directory with asset overrides")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cf, fs.Args(), nil
}
