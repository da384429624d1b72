package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2epub/internal/document"
)

func buildDoc(t *testing.T, e *Engine, files []document.SourceFile) (*document.Document, []document.Chapter) {
	t.Helper()

	blocks, err := document.Parse(e.Parser(), files)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	doc, _ := document.Build(blocks, files)
	chapters := document.Segment(doc, document.DefaultChapterLevel)
	return doc, chapters
}

func singleFile(markdown string) []document.SourceFile {
	return []document.SourceFile{{Path: "book.md", Content: []byte(markdown)}}
}

func TestEngine_ChapterBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   []string
		reject []string
	}{
		{
			name:  "heading carries its id",
			input: "# Hello World",
			want:  []string{`<h1 id="hello-world">`, "Hello World", "</h1>"},
		},
		{
			name:  "newlines render as hard breaks",
			input: "# T\n\nLine one\nLine two",
			want:  []string{"Line one<br", "Line two"},
		},
		{
			name:  "GFM table",
			input: "# T\n\n| A | B |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<thead>", "<tbody>"},
		},
		{
			name:  "strikethrough renders as del",
			input: "# T\n\n~~deleted~~",
			want:  []string{"<del>", "deleted"},
		},
		{
			name:  "footnote",
			input: "# T\n\nText[^1]\n\n[^1]: Footnote content",
			want:  []string{"<sup", "footnote"},
		},
		{
			name:  "fenced code gets chroma classes",
			input: "# T\n\n```go\nfunc main() {}\n```",
			want:  []string{`class="chroma"`, "func"},
		},
		{
			name:  "thematic break self closes",
			input: "# T\n\nabove\n\n---\n\nbelow",
			want:  []string{"<hr />"},
		},
		{
			name:  "raw HTML block passes through",
			input: "# T\n\n<div class=\"note\">hi</div>",
			want:  []string{`<div class="note">hi</div>`},
		},
		{
			name:  "remote image keeps its URL",
			input: "# T\n\n![remote alt](https://example.com/x.png)",
			want:  []string{`<img src="https://example.com/x.png" alt="remote alt" />`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine()
			doc, chapters := buildDoc(t, e, singleFile(tt.input))
			if len(chapters) == 0 {
				t.Fatal("no chapters produced")
			}

			body, err := e.ChapterBody(context.Background(), doc, chapters[0])
			if err != nil {
				t.Fatalf("ChapterBody() unexpected error: %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body is missing %q\nbody:\n%s", want, body)
				}
			}
			for _, reject := range tt.reject {
				if strings.Contains(body, reject) {
					t.Errorf("body must not contain %q\nbody:\n%s", reject, body)
				}
			}
		})
	}
}

func TestEngine_ChapterBody_ChapterScoped(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	doc, chapters := buildDoc(t, e, singleFile("# A\n\nalpha text\n\n# B\n\nbeta text\n"))
	if len(chapters) != 2 {
		t.Fatalf("chapters = %d, want 2", len(chapters))
	}

	first, err := e.ChapterBody(context.Background(), doc, chapters[0])
	if err != nil {
		t.Fatalf("ChapterBody() unexpected error: %v", err)
	}
	if !strings.Contains(first, "alpha text") {
		t.Error("first chapter should contain its own text")
	}
	if strings.Contains(first, "beta text") {
		t.Error("first chapter should not contain the second chapter's text")
	}
}

func TestEngine_ChapterBody_Images(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := NewEngine()
	md := "# T\n\n![here](pic.png)\n\n![lost](gone.png)\n"
	doc, chapters := buildDoc(t, e, []document.SourceFile{
		{Path: filepath.Join(dir, "book.md"), Content: []byte(md)},
	})

	body, err := e.ChapterBody(context.Background(), doc, chapters[0])
	if err != nil {
		t.Fatalf("ChapterBody() unexpected error: %v", err)
	}

	if !strings.Contains(body, `<img src="assets/pic.png" alt="here" />`) {
		t.Errorf("resolved image should point into assets/, got:\n%s", body)
	}
	if !strings.Contains(body, `<span class="missing-image">lost</span>`) {
		t.Errorf("missing image should render as placeholder, got:\n%s", body)
	}
	if strings.Contains(body, "gone.png") {
		t.Error("missing image source should not leak into the output")
	}
}

func TestEngine_ChapterBody_Context(t *testing.T) {
	t.Parallel()

	t.Run("already cancelled", func(t *testing.T) {
		t.Parallel()

		e := NewEngine()
		doc, chapters := buildDoc(t, e, singleFile("# T\n\nbody\n"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := e.ChapterBody(ctx, doc, chapters[0]); !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})

	t.Run("expired deadline", func(t *testing.T) {
		t.Parallel()

		e := NewEngine()
		doc, chapters := buildDoc(t, e, singleFile("# T\n\nbody\n"))

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		if _, err := e.ChapterBody(ctx, doc, chapters[0]); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want context.DeadlineExceeded", err)
		}
	})

	t.Run("live context renders", func(t *testing.T) {
		t.Parallel()

		e := NewEngine()
		doc, chapters := buildDoc(t, e, singleFile("# T\n\nbody\n"))

		body, err := e.ChapterBody(context.Background(), doc, chapters[0])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if body == "" {
			t.Error("expected non-empty body")
		}
	})
}
