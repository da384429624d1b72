package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Archiver packs a staged package directory into a single container file.
// Implementations receive paths in final archive order and write the
// mimetype entry themselves, since its placement is part of the format.
// An implementation that cannot run in the current environment returns
// an error wrapping ErrArchiveUnavailable.
type Archiver interface {
	Archive(dest, root string, paths []string, modified time.Time) error
}

// ZipArchiver is the standard OCF packer: stored mimetype first, deflated
// entries after, forward-slash names throughout.
type ZipArchiver struct{}

var _ Archiver = ZipArchiver{}

// Archive writes the container file at dest from the staged tree at root.
// The same paths and modified time always produce the same bytes.
func (ZipArchiver) Archive(dest, root string, paths []string, modified time.Time) error {
	out, err := os.Create(dest) // #nosec G304 -- dest is inside the staging directory
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	if err := writeEntries(zw, root, paths, modified); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	return nil
}

func writeEntries(zw *zip.Writer, root string, paths []string, modified time.Time) error {
	// Mimetype goes first, stored, with no modification time so the
	// header carries no extra field: readers sniff the media type at a
	// fixed offset.
	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("failed to create mimetype entry: %w", err)
	}
	if _, err := io.WriteString(w, Mimetype); err != nil {
		return fmt.Errorf("failed to write mimetype entry: %w", err)
	}

	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p))) // #nosec G304 -- staged by the writer
		if err != nil {
			return fmt.Errorf("failed to read staged file %s: %w", p, err)
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", p, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write entry %s: %w", p, err)
		}
	}
	return nil
}
