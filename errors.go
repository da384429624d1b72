package md2epub

import (
	"errors"

	"github.com/alnah/go-md2epub/internal/document"
	"github.com/alnah/go-md2epub/internal/epub"
)

// Sentinels returned from conversion, matchable with errors.Is.
var (
	ErrNoInput  = errors.New("no input files")
	ErrNoOutput = errors.New("no output path")

	// ErrParse wraps the parse failure causes below. Parsing aborts the
	// conversion before any output is written.
	ErrParse = errors.New("parse failed")

	// ErrPackage indicates the assembled package failed its consistency
	// check. This is an internal invariant breach, not a user error.
	ErrPackage = errors.New("package assembly failed")

	// I/O failures, surfaced with the offending path.
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")

	// Level validation errors.
	ErrInvalidChapterLevel = errors.New("invalid chapter level")
	ErrInvalidTocLevel     = errors.New("invalid toc level")

	// Asset lookup failures, embedded or custom loader alike.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Parse failure causes, matched through ErrParse with errors.Is.
var (
	ErrUnterminatedFence = document.ErrUnterminatedFence
	ErrInvalidEncoding   = document.ErrInvalidEncoding
)

// ErrArchiveUnavailable is returned by an Archiver that cannot produce zip
// archives. Convert reacts by promoting the package directory as the final
// output and recording an archive warning instead of failing.
var ErrArchiveUnavailable = epub.ErrArchiveUnavailable
