package document

import "fmt"

// Chapter split bounds. DefaultChapterLevel cuts at top-level headings.
const (
	MinChapterLevel     = 1
	MaxChapterLevel     = 6
	DefaultChapterLevel = 1
)

// Segment partitions the document into chapters, cutting at every heading
// whose level is at or above the threshold (numerically <= chapterLevel).
// Content preceding the first cut, including the synthetic "Untitled"
// section, folds into the first chapter, so a document with N qualifying
// headings yields exactly N chapters. With no qualifying heading the whole
// document is one chapter. Chapter order is document order and becomes the
// spine order.
func Segment(doc *Document, chapterLevel int) []Chapter {
	var bounds []int
	for i, s := range doc.Sections {
		if !s.Synthetic && s.Level <= chapterLevel {
			bounds = append(bounds, i)
		}
	}

	if len(bounds) == 0 {
		return []Chapter{makeChapter(doc, 1, 0, len(doc.Sections))}
	}

	chapters := make([]Chapter, 0, len(bounds))
	for k, bi := range bounds {
		secStart := bi
		if k == 0 {
			secStart = 0 // fold leading content into the first chapter
		}
		secEnd := len(doc.Sections)
		if k+1 < len(bounds) {
			secEnd = bounds[k+1]
		}
		chapters = append(chapters, makeChapter(doc, k+1, secStart, secEnd))
	}
	return chapters
}

// makeChapter builds the n-th chapter over the given section range. The
// chapter's top section is its first one; the chapter takes that section's
// title and spans its blocks through the start of the next chapter.
func makeChapter(doc *Document, n, secStart, secEnd int) Chapter {
	ch := Chapter{
		ID:       chapterID(n),
		FileName: chapterID(n) + ".xhtml",
		Title:    UntitledTitle,
		SecStart: secStart,
		SecEnd:   secEnd,
		Top:      -1,
	}
	if secStart < secEnd {
		ch.Top = secStart
		ch.Title = doc.Sections[secStart].Title
		ch.Start = doc.Sections[secStart].Start
		if secEnd < len(doc.Sections) {
			ch.End = doc.Sections[secEnd].Start
		} else {
			ch.End = len(doc.Blocks)
		}
	} else {
		// Empty document: one empty chapter keeps the package valid.
		ch.Start, ch.End = 0, len(doc.Blocks)
	}
	return ch
}

func chapterID(n int) string {
	return fmt.Sprintf("chapter-%03d", n)
}
