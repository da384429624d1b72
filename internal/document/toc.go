package document

// TOC depth bounds. Level 6 headings never appear in the TOC.
const (
	MinTocLevel     = 1
	MaxTocLevel     = 5
	DefaultTocLevel = 3
)

// BuildToc derives the table of contents: sections with level <= tocLevel,
// nested under the nearest preceding shallower entry. Hrefs point into the
// chapter file containing the section; a chapter's own opening heading links
// to the file without a fragment. TOC depth and chapter split are independent;
// entries only reference chapter boundaries, never redefine them.
func BuildToc(doc *Document, chapters []Chapter, tocLevel int) []*TocNode {
	var roots []*TocNode
	type frame struct {
		node  *TocNode
		level int
	}
	var stack []frame

	for ci := range chapters {
		ch := &chapters[ci]
		for si := ch.SecStart; si < ch.SecEnd; si++ {
			s := doc.Sections[si]
			if s.Level > tocLevel {
				continue
			}
			href := ch.FileName
			if si != ch.Top {
				href += "#" + s.ID
			}
			node := &TocNode{Title: s.Title, Href: href}

			for len(stack) > 0 && stack[len(stack)-1].level >= s.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				roots = append(roots, node)
			} else {
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, frame{node: node, level: s.Level})
		}
	}
	return roots
}

// Depth reports the deepest nesting of the TOC tree; the NCX head needs it.
func Depth(nodes []*TocNode) int {
	max := 0
	for _, n := range nodes {
		d := 1 + Depth(n.Children)
		if d > max {
			max = d
		}
	}
	return max
}
