package md2epub

import (
	"fmt"
	"os"

	"github.com/alnah/go-md2epub/internal/assets"
	"github.com/alnah/go-md2epub/internal/fileutil"
)

// resolveStyle turns the configured style reference into CSS. A reference
// with a path separator is read from disk; anything else names one of the
// loader's bundled styles. An empty reference falls back to the default.
func (c *Converter) resolveStyle() (string, error) {
	ref := c.cfg.style
	if ref == "" {
		ref = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(ref) {
		raw, err := os.ReadFile(ref) // #nosec G304 -- the path comes from the caller
		if err != nil {
			return "", fmt.Errorf("%w: style file %q: %v", ErrReadInput, ref, err)
		}
		return string(raw), nil
	}

	sheet, err := c.assetLoader.LoadStyle(ref)
	if err != nil {
		return "", fmt.Errorf("loading style %q: %w", ref, toPublicError(err))
	}
	return sheet, nil
}

// composeStylesheet builds the single style.css shipped in the package:
// the per-conversion CSS if set, otherwise the converter's resolved style.
// The vertical fragment is appended after the base so its writing-mode
// rules take precedence.
func (c *Converter) composeStylesheet(input Input) (string, error) {
	base := c.resolvedStyle
	if input.CSS != "" {
		base = input.CSS
	}
	if !input.Metadata.Vertical {
		return base, nil
	}

	overlay, err := c.assetLoader.LoadStyle(assets.VerticalStyleName)
	if err != nil {
		return "", fmt.Errorf("loading vertical style: %w", toPublicError(err))
	}
	return base + "\n" + overlay, nil
}
