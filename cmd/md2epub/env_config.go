package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-md2epub/internal/config"
)

// envConfig carries the MD2EPUB_* overrides read from the process
// environment. These cover the settings a CI job is most likely to pin
// without shipping a config file.
type envConfig struct {
	ConfigPath string // MD2EPUB_CONFIG: config file path
	Style      string // MD2EPUB_STYLE: CSS style name or path
	AssetPath  string // MD2EPUB_ASSET_PATH: custom asset directory
	OutputDir  string // MD2EPUB_OUTPUT_DIR: default output directory
}

// knownEnvVars is the full set of recognized MD2EPUB_* names. Anything else
// with the prefix triggers a typo warning.
var knownEnvVars = []string{
	"MD2EPUB_CONFIG",
	"MD2EPUB_STYLE",
	"MD2EPUB_ASSET_PATH",
	"MD2EPUB_OUTPUT_DIR",
}

// loadEnvConfig snapshots the recognized environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MD2EPUB_CONFIG"),
		Style:      os.Getenv("MD2EPUB_STYLE"),
		AssetPath:  os.Getenv("MD2EPUB_ASSET_PATH"),
		OutputDir:  os.Getenv("MD2EPUB_OUTPUT_DIR"),
	}
}

// warnUnknownEnvVars reports MD2EPUB_* variables that match no recognized
// name. A misspelled variable would otherwise be ignored silently.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, "MD2EPUB_") {
			continue
		}
		if !slices.Contains(knownEnvVars, name) {
			fmt.Fprintf(w, "warning: unrecognized environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values onto a book config.
// Environment sits above frontmatter and the config file in precedence, so
// a set variable overwrites whatever those tiers supplied. CLI flags are
// applied later via mergeFlags and win over everything here.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style.Name = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
