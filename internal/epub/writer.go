package epub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2epub/internal/fileutil"
)

// Modes for staged output. Package trees are not secrets but should not
// be group-writable.
const (
	dirMode  = 0o750
	fileMode = 0o644
)

// WriteResult reports where the writer put things.
type WriteResult struct {
	OutputPath string // finished container, or the package directory on fallback
	PackageDir string // retained package directory, empty unless kept
	Fallback   bool   // archiver unavailable, directory output produced instead
}

// Write stages the package next to outPath, archives it, and promotes the
// finished container into place with a rename. Staging inside the
// destination directory keeps the rename on one filesystem, so a crash
// mid-write never leaves a truncated container at the output path. When
// keepDir is set the staged tree is retained alongside the container,
// named after it without the extension.
//
// An archiver reporting ErrArchiveUnavailable degrades to directory
// output: the staged tree itself is promoted and Fallback is set.
func Write(pkg *Package, outPath string, ar Archiver, modified time.Time, keepDir bool) (*WriteResult, error) {
	destDir := filepath.Dir(outPath)
	if err := os.MkdirAll(destDir, dirMode); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	staging, err := os.MkdirTemp(destDir, ".md2epub-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	pkgDir := filepath.Join(staging, "package")
	if err := WriteDir(pkgDir, pkg); err != nil {
		return nil, err
	}

	archive := filepath.Join(staging, "book.epub")
	switch err := ar.Archive(archive, pkgDir, pkg.ArchivePaths(), modified); {
	case errors.Is(err, ErrArchiveUnavailable):
		dir := packageDirFor(outPath)
		if err := replaceDir(pkgDir, dir); err != nil {
			return nil, err
		}
		return &WriteResult{OutputPath: dir, PackageDir: dir, Fallback: true}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to archive package: %w", err)
	}

	if err := replaceFile(archive, outPath); err != nil {
		return nil, fmt.Errorf("failed to move container into place: %w", err)
	}

	result := &WriteResult{OutputPath: outPath}
	if keepDir {
		dir := packageDirFor(outPath)
		if err := replaceDir(pkgDir, dir); err != nil {
			return nil, err
		}
		result.PackageDir = dir
	}
	return result, nil
}

// WriteDir materializes the package tree under root, mimetype included.
// In-memory files are written; assets are copied from their sources.
func WriteDir(root string, pkg *Package) error {
	if err := os.MkdirAll(root, dirMode); err != nil {
		return fmt.Errorf("failed to create package directory: %w", err)
	}
	mimetype := filepath.Join(root, "mimetype")
	if err := os.WriteFile(mimetype, []byte(Mimetype), fileMode); err != nil {
		return fmt.Errorf("failed to write mimetype: %w", err)
	}
	for _, f := range pkg.Files {
		dest := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if f.SourcePath != "" {
			if err := fileutil.CopyFile(f.SourcePath, dest); err != nil {
				return fmt.Errorf("failed to copy asset %s: %w", f.Path, err)
			}
			continue
		}
		if err := os.WriteFile(dest, f.Data, fileMode); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}
	return nil
}

// packageDirFor names the retained package directory after the container,
// extension stripped.
func packageDirFor(outPath string) string {
	ext := filepath.Ext(outPath)
	if ext == "" {
		return outPath + "-package"
	}
	return strings.TrimSuffix(outPath, ext)
}

// replaceFile moves src to dest, replacing any existing file.
func replaceFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	// Windows cannot rename over an existing file.
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(src, dest)
}

// replaceDir moves src to dest, replacing any existing tree.
func replaceDir(src, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dest, err)
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move package directory into place: %w", err)
	}
	return nil
}
