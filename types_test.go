package md2epub

// Notes:
// - Level constants: re-exported bounds drive Input validation
// - WithClock: nil panic contract and time source injection
// - WithAssetLoader: full replacement of asset resolution, no embedded
//   fallback, public sentinels flow through NewConverter

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// stubAssets answers every asset name with the same fixed content.
type stubAssets struct {
	sheet      string
	chapter    string
	sheetErr   error
	chapterErr error
}

func (s *stubAssets) LoadStyle(string) (string, error) {
	if s.sheetErr != nil {
		return "", s.sheetErr
	}
	return s.sheet, nil
}

func (s *stubAssets) LoadTemplate(string) (string, error) {
	if s.chapterErr != nil {
		return "", s.chapterErr
	}
	return s.chapter, nil
}

const stubChapterTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>{{.Title}}</title></head><body>{{.Body}}</body></html>`

// ---------------------------------------------------------------------------
// Constants
// ---------------------------------------------------------------------------

func TestLevelBounds(t *testing.T) {
	t.Parallel()

	if MinChapterLevel != 1 || MaxChapterLevel != 6 {
		t.Errorf("chapter level bounds = %d..%d, want 1..6", MinChapterLevel, MaxChapterLevel)
	}
	if DefaultChapterLevel != 1 {
		t.Errorf("DefaultChapterLevel = %d, want 1", DefaultChapterLevel)
	}
	if MinTocLevel != 1 || MaxTocLevel != 5 {
		t.Errorf("toc level bounds = %d..%d, want 1..5", MinTocLevel, MaxTocLevel)
	}
	if DefaultTocLevel != 3 {
		t.Errorf("DefaultTocLevel = %d, want 3", DefaultTocLevel)
	}
	if DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want \"en\"", DefaultLanguage)
	}
}

// ---------------------------------------------------------------------------
// WithClock
// ---------------------------------------------------------------------------

func TestWithClock_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil time source")
		}
	}()
	WithClock(nil)
}

func TestWithClock_SetsModified(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithClock(fixedClock()))

	meta, warnings := conv.resolveMetadata(Metadata{
		Title:    "Clocked",
		Language: "en",
		BookID:   "urn:uuid:1",
	})
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !meta.Modified.Equal(want) {
		t.Errorf("Modified = %v, want %v", meta.Modified, want)
	}
}

// ---------------------------------------------------------------------------
// WithAssetLoader
// ---------------------------------------------------------------------------

func TestWithAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("replaces style resolution", func(t *testing.T) {
		t.Parallel()

		loader := &stubAssets{sheet: ".stub { color: blue; }", chapter: stubChapterTemplate}
		conv, err := NewConverter(WithAssetLoader(loader))
		if err != nil {
			t.Fatalf("NewConverter() unexpected error: %v", err)
		}
		if conv.resolvedStyle != loader.sheet {
			t.Errorf("resolvedStyle = %q, want the loader's CSS", conv.resolvedStyle)
		}
	})

	t.Run("style errors surface through NewConverter", func(t *testing.T) {
		t.Parallel()

		loader := &stubAssets{
			sheetErr: fmt.Errorf("backend lookup: %w", ErrStyleNotFound),
			chapter:  stubChapterTemplate,
		}
		_, err := NewConverter(WithAssetLoader(loader))
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("NewConverter() error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("template errors surface through NewConverter", func(t *testing.T) {
		t.Parallel()

		loader := &stubAssets{
			sheet:      "body {}",
			chapterErr: fmt.Errorf("backend lookup: %w", ErrTemplateNotFound),
		}
		_, err := NewConverter(WithAssetLoader(loader))
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("NewConverter() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("unparseable template fails construction", func(t *testing.T) {
		t.Parallel()

		loader := &stubAssets{sheet: "body {}", chapter: "{{.Unclosed"}
		_, err := NewConverter(WithAssetLoader(loader))
		if err == nil {
			t.Error("NewConverter() expected error for unparseable template")
		}
	})
}
