package main

import (
	"errors"
	"os"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/dateutil"
)

// Exit codes returned by the CLI. Scripts can branch on these to tell a
// misuse apart from a broken environment.
const (
	// ExitSuccess means all conversions completed.
	ExitSuccess = 0

	// ExitGeneral covers conversion and packaging failures.
	ExitGeneral = 1

	// ExitUsage covers invalid flags, arguments, or missing input.
	ExitUsage = 2

	// ExitConfig covers config file, frontmatter, style, and date problems.
	ExitConfig = 3

	// ExitIO covers unreadable sources and unwritable destinations.
	ExitIO = 4
)

// exitCodeFor maps an error to the process exit code. Checks are grouped by
// category: usage first, then configuration, then I/O. Anything unrecognized
// is a general failure.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrNoInput),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, ErrInvalidExtension),
		errors.Is(err, ErrNoMarkdownFiles),
		errors.Is(err, ErrOutputConflict),
		errors.Is(err, md2epub.ErrInvalidChapterLevel),
		errors.Is(err, md2epub.ErrInvalidTocLevel):
		return ExitUsage

	case errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, ErrFrontmatter),
		errors.Is(err, md2epub.ErrStyleNotFound),
		errors.Is(err, md2epub.ErrTemplateNotFound),
		errors.Is(err, md2epub.ErrInvalidAssetPath),
		errors.Is(err, dateutil.ErrInvalidDateFormat):
		return ExitConfig

	case errors.Is(err, ErrReadMarkdown),
		errors.Is(err, ErrReadCSS),
		errors.Is(err, md2epub.ErrReadInput),
		errors.Is(err, md2epub.ErrWriteOutput),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIO

	default:
		return ExitGeneral
	}
}
