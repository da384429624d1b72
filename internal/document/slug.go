package document

import (
	"fmt"

	"github.com/gosimple/slug"
)

// fallbackSlug stands in when slugification produces nothing, e.g. for
// punctuation-only heading text.
const fallbackSlug = "section"

// slugger assigns unique URL-safe identifiers in first-occurrence order:
// the base slug on first use, then base-1, base-2 for later duplicates.
// A literal later occurrence of "base-1" cannot collide; taken candidates
// are skipped.
type slugger struct {
	used map[string]int
}

func newSlugger() *slugger {
	return &slugger{used: make(map[string]int)}
}

func (s *slugger) assign(text string) string {
	base := slug.Make(text)
	if base == "" {
		base = fallbackSlug
	}
	n, seen := s.used[base]
	if !seen {
		s.used[base] = 0
		return base
	}
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, taken := s.used[candidate]; !taken {
			s.used[base] = n
			s.used[candidate] = 0
			return candidate
		}
	}
}
