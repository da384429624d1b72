package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md2epub "github.com/alnah/go-md2epub"
)

// Sentinel errors for book discovery.
var (
	ErrInvalidExtension   = errors.New("not a markdown file")
	ErrInvalidWorkerCount = errors.New("worker count out of range")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrOutputConflict     = errors.New("explicit .epub output requires a single input")
)

// BookSource represents one book to convert: the input argument as given,
// its markdown files in reading order, and the archive destination.
type BookSource struct {
	Input      string
	Files      []string
	OutputPath string
}

// discoverBooks expands input arguments into books. Each argument yields one
// book: a file stands alone, a directory contributes its markdown files.
func discoverBooks(inputs []string, outputDir string) ([]BookSource, error) {
	if strings.HasSuffix(outputDir, ".epub") && len(inputs) > 1 {
		return nil, fmt.Errorf("%w: got %d inputs", ErrOutputConflict, len(inputs))
	}

	books := make([]BookSource, 0, len(inputs))
	for _, input := range inputs {
		files, err := collectBookFiles(input)
		if err != nil {
			return nil, err
		}
		books = append(books, BookSource{
			Input:      input,
			Files:      files,
			OutputPath: resolveBookOutputPath(input, outputDir),
		})
	}
	return books, nil
}

// collectBookFiles lists the ordered markdown sources of a single book.
// A directory contributes its immediate .md/.markdown files in name order;
// subdirectories are not descended into, so sibling books stay separate.
func collectBookFiles(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := checkMarkdownExt(inputPath); err != nil {
			return nil, err
		}
		return []string{inputPath}, nil
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", inputPath, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !looksLikeMarkdown(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(inputPath, entry.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveBookOutputPath determines the .epub destination for one input.
// An outputDir ending in .epub names the file directly; otherwise the
// archive takes its name from the input and lands in outputDir, or next
// to the input when no outputDir is set.
func resolveBookOutputPath(inputPath, outputDir string) string {
	if strings.HasSuffix(outputDir, ".epub") {
		return outputDir
	}

	base := bookTitleFromPath(inputPath)
	if outputDir != "" {
		return filepath.Join(outputDir, base+".epub")
	}
	return filepath.Join(filepath.Dir(filepath.Clean(inputPath)), base+".epub")
}

// bookTitleFromPath derives the fallback title and archive basename from an
// input argument: the file name without its extension, or the directory name.
func bookTitleFromPath(inputPath string) string {
	cleaned := filepath.Clean(inputPath)
	base := filepath.Base(cleaned)
	if ext := filepath.Ext(base); ext == ".md" || ext == ".markdown" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "." {
		if abs, err := filepath.Abs(cleaned); err == nil {
			base = filepath.Base(abs)
		}
	}
	return base
}

// checkMarkdownExt rejects file arguments without a markdown extension.
// Only explicit files are held to this; a directory simply skips its
// non-markdown entries.
func checkMarkdownExt(path string) error {
	if !looksLikeMarkdown(path) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// checkWorkerCount bounds the -w flag. Zero selects auto-detection;
// anything above MaxPoolSize is refused rather than clamped.
func checkWorkerCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d, want 0 for auto or a positive count", ErrInvalidWorkerCount, n)
	}
	if n > md2epub.MaxPoolSize {
		return fmt.Errorf("%w: %d exceeds the cap of %d", ErrInvalidWorkerCount, n, md2epub.MaxPoolSize)
	}
	return nil
}
