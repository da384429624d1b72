package document

import "testing"

func TestSluggerAssign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "simple heading",
			in:   []string{"Hello World"},
			want: []string{"hello-world"},
		},
		{
			name: "duplicates numbered in order",
			in:   []string{"Introduction", "Introduction", "Introduction"},
			want: []string{"introduction", "introduction-1", "introduction-2"},
		},
		{
			name: "literal suffix collision skipped",
			in:   []string{"Overview", "Overview 1", "Overview"},
			want: []string{"overview", "overview-1", "overview-2"},
		},
		{
			name: "punctuation only falls back",
			in:   []string{"!!!", "???"},
			want: []string{"section", "section-1"},
		},
		{
			name: "accents transliterated",
			in:   []string{"Café au lait"},
			want: []string{"cafe-au-lait"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSlugger()
			for i, text := range tt.in {
				if got := s.assign(text); got != tt.want[i] {
					t.Errorf("assign(%q) = %q, want %q", text, got, tt.want[i])
				}
			}
		})
	}
}
