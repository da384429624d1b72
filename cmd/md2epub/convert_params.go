package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/frontmatter"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Failures while assembling a book's input from its sources.
var (
	ErrFrontmatter  = errors.New("invalid frontmatter")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
)

// conversionParams groups batch-level state shared by every book conversion.
// cfg is the config-file tier; each book copies it before layering
// frontmatter, environment, and flags on top.
type conversionParams struct {
	flags  *convertFlags
	envCfg *envConfig
	cfg    *config.Config
	loader md2epub.AssetLoader
	now    func() time.Time
}

// bookFrontmatter is the metadata block recognized at the top of the first
// source file. Vertical is a pointer so an explicit "vertical: false" can
// override a config file that enables it.
type bookFrontmatter struct {
	Title        string `yaml:"title"`
	Creator      string `yaml:"creator"`
	Language     string `yaml:"language"`
	BookID       string `yaml:"book_id"`
	Date         string `yaml:"date"`
	Vertical     *bool  `yaml:"vertical"`
	TocLevel     int    `yaml:"toc_level"`
	ChapterLevel int    `yaml:"chapter_level"`
	Style        string `yaml:"style"`
}

// parseBookMeta splits YAML frontmatter from markdown content. Files without
// a frontmatter block come back unchanged with empty metadata.
func parseBookMeta(content []byte) (*bookFrontmatter, []byte, error) {
	var meta bookFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, nil, err
	}
	return &meta, body, nil
}

// applyFrontmatter overlays frontmatter values onto a book config.
// Frontmatter sits above the config file but below environment and flags.
func applyFrontmatter(meta *bookFrontmatter, cfg *config.Config) {
	if meta == nil {
		return
	}

	if meta.Title != "" {
		cfg.Book.Title = meta.Title
	}
	if meta.Creator != "" {
		cfg.Book.Creator = meta.Creator
	}
	if meta.Language != "" {
		cfg.Book.Language = meta.Language
	}
	if meta.BookID != "" {
		cfg.Book.ID = meta.BookID
	}
	if meta.Date != "" {
		cfg.Book.Date = meta.Date
	}
	if meta.Vertical != nil {
		cfg.Book.Vertical = *meta.Vertical
	}
	if meta.TocLevel > 0 {
		cfg.Split.TocLevel = meta.TocLevel
	}
	if meta.ChapterLevel > 0 {
		cfg.Split.ChapterLevel = meta.ChapterLevel
	}
	if meta.Style != "" {
		cfg.Style.Name = meta.Style
	}
}

// buildBookInput reads a book's sources, resolves its effective metadata,
// and assembles the converter input. Frontmatter is stripped from every
// file but honored only from the first.
func buildBookInput(book BookSource, params *conversionParams) (*md2epub.Input, error) {
	files := make([]md2epub.File, 0, len(book.Files))
	var meta *bookFrontmatter
	for i, path := range book.Files {
		content, err := os.ReadFile(path) // #nosec G304 -- discovered path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		fm, body, err := parseBookMeta(content)
		if err != nil {
			return nil, fmt.Errorf("%w in %s: %v", ErrFrontmatter, path, err)
		}
		if i == 0 {
			meta = fm
		}
		files = append(files, md2epub.File{Path: path, Content: body})
	}

	bookCfg := *params.cfg
	applyFrontmatter(meta, &bookCfg)
	applyEnvConfig(params.envCfg, &bookCfg)
	mergeFlags(params.flags, &bookCfg)

	if bookCfg.Book.Title == "" {
		bookCfg.Book.Title = bookTitleFromPath(book.Input)
	}

	date, err := md2epub.ResolveDate(bookCfg.Book.Date, params.now())
	if err != nil {
		return nil, fmt.Errorf("resolving date: %w", err)
	}

	css, err := resolveStyleCSS(bookCfg.Style.Name, params.loader)
	if err != nil {
		return nil, err
	}

	return &md2epub.Input{
		Files:      files,
		OutputPath: book.OutputPath,
		Metadata: md2epub.Metadata{
			Title:    bookCfg.Book.Title,
			Creator:  bookCfg.Book.Creator,
			Language: bookCfg.Book.Language,
			BookID:   bookCfg.Book.ID,
			Date:     date,
			Vertical: bookCfg.Book.Vertical,
		},
		CSS:          css,
		ChapterLevel: bookCfg.Split.ChapterLevel,
		TocLevel:     bookCfg.Split.TocLevel,
		Save:         bookCfg.Output.Save,
	}, nil
}

// resolveStyleCSS loads the stylesheet named by the effective style setting.
// A path reads the file directly; a bare name goes through the asset loader.
// Empty means no override, so the converter's built-in default applies.
func resolveStyleCSS(styleRef string, loader md2epub.AssetLoader) (string, error) {
	if styleRef == "" {
		return "", nil
	}

	if fileutil.IsFilePath(styleRef) {
		content, err := os.ReadFile(styleRef) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	}

	css, err := loader.LoadStyle(styleRef)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", styleRef, err)
	}
	return css, nil
}
