// Package fileutil carries the small path predicates shared across
// packages, plus a plain file copy.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileExists reports whether path names an existing regular file.
// Directories do not count.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath distinguishes path-like references from bare names: any
// string with a path separator in it is a path. "default" and
// "my-style" are names; "./custom.css", "sub/dir" and
// "C:\books\style.css" are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// IsURL reports whether s carries an http or https scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// CopyFile copies src to dst, truncating dst if it exists.
// Permissions on dst are 0o644 regardless of the source mode.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- src is a caller-chosen input path
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644) // #nosec G304
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
