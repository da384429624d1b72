package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a directory on disk, laid out as
// {root}/styles/*.css and {root}/templates/*.xhtml.
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader validates dir and returns a loader rooted there. The
// path must name a readable directory; it is resolved to an absolute,
// symlink-free form up front so later containment checks compare like with
// like.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: no path given", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(root); err == nil {
		root = real
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: root}, nil
}

// LoadStyle reads {root}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(name, "styles", ".css", ErrStyleNotFound)
}

// LoadTemplate reads {root}/templates/{name}.xhtml.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.read(name, "templates", ".xhtml", ErrTemplateNotFound)
}

// read validates the name, confirms the joined path stays inside the root,
// and loads the file.
func (f *FilesystemLoader) read(name, subdir, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	target := filepath.Join(f.root, subdir, name+ext)
	if err := f.ensureWithinRoot(target); err != nil {
		return "", err
	}

	content, err := os.ReadFile(target) // #nosec G304 -- name checked, containment enforced
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// ensureWithinRoot rejects any path that resolves outside the root. Symlinks
// are followed before comparing, so a link inside styles/ pointing elsewhere
// is caught even though its literal path looks contained. A path that fails
// to resolve (typically: does not exist yet) keeps its literal form; the
// prefix check still applies and the read will fail on its own.
func (f *FilesystemLoader) ensureWithinRoot(target string) error {
	resolved, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPathTraversal, err)
	}
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}

	// The trailing separator stops /base/path from matching /base/pathevil
	if !strings.HasPrefix(resolved, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, resolved)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
