package main

import (
	"io"
	"os"
	"time"

	md2epub "github.com/alnah/go-md2epub"
)

// Environment groups the process-level dependencies of the CLI so tests can
// substitute clocks, output streams, and asset loaders.
type Environment struct {
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader md2epub.AssetLoader
	Now         func() time.Time // feeds WithClock, so tests get reproducible EPUBs
}

// DefaultEnv returns the production environment backed by the real clock,
// the process streams, and the embedded assets.
func DefaultEnv() *Environment {
	loader, _ := md2epub.NewAssetLoader("") // empty path never fails
	return &Environment{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: loader,
		Now:         time.Now,
	}
}
