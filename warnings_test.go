package md2epub

import (
	"testing"

	"github.com/alnah/go-md2epub/internal/document"
)

func TestWarning_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		warning Warning
		want    string
	}{
		{
			name:    "without path",
			warning: Warning{Kind: WarnMetadata, Message: "title missing"},
			want:    "metadata: title missing",
		},
		{
			name:    "with path",
			warning: Warning{Kind: WarnAsset, Path: "/books/cover.png", Message: `image "cover.png" not found`},
			want:    `asset: image "cover.png" not found (/books/cover.png)`,
		},
		{
			name:    "structure kind",
			warning: Warning{Kind: WarnStructure, Message: "content before the first heading"},
			want:    "structure: content before the first heading",
		},
		{
			name:    "archive kind",
			warning: Warning{Kind: WarnArchive, Message: "zip archiving unavailable"},
			want:    "archive: zip archiving unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.warning.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromDocumentWarnings(t *testing.T) {
	t.Parallel()

	t.Run("empty input returns nil", func(t *testing.T) {
		t.Parallel()

		if got := fromDocumentWarnings(nil); got != nil {
			t.Errorf("fromDocumentWarnings(nil) = %v, want nil", got)
		}
		if got := fromDocumentWarnings([]document.Warning{}); got != nil {
			t.Errorf("fromDocumentWarnings(empty) = %v, want nil", got)
		}
	})

	t.Run("fields carry over", func(t *testing.T) {
		t.Parallel()

		in := []document.Warning{
			{Kind: document.WarnStructure, Message: "synthetic section"},
			{Kind: document.WarnAsset, Path: "/a/b.png", Message: "not found"},
		}
		got := fromDocumentWarnings(in)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Kind != WarnStructure || got[0].Message != "synthetic section" {
			t.Errorf("warning[0] = %+v", got[0])
		}
		if got[1].Kind != WarnAsset || got[1].Path != "/a/b.png" {
			t.Errorf("warning[1] = %+v", got[1])
		}
	})
}
