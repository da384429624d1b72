package document

import (
	"bytes"
	"fmt"
)

// checkFences scans Markdown source for a fenced code block left open at end
// of file. goldmark closes such fences silently per CommonMark; for a book
// conversion that almost always means lost content, so it is treated as a
// parse failure instead. The scan only considers fences at the top level
// (up to three spaces of indentation); fences nested in block quotes or list
// items are ignored rather than risking false positives.
func checkFences(path string, src []byte) error {
	var (
		inFence   bool
		fenceChar byte
		fenceLen  int
		openLine  int
	)

	lineNo := 0
	for len(src) > 0 {
		lineNo++
		line := src
		if i := bytes.IndexByte(src, '\n'); i >= 0 {
			line = src[:i]
			src = src[i+1:]
		} else {
			src = nil
		}

		indent := 0
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}
		if indent > 3 {
			continue // indented code line, never a fence
		}
		rest := line[indent:]
		if len(rest) < 3 || (rest[0] != '`' && rest[0] != '~') {
			continue
		}
		c := rest[0]
		n := 0
		for n < len(rest) && rest[n] == c {
			n++
		}
		if n < 3 {
			continue
		}
		info := bytes.TrimSpace(rest[n:])

		if !inFence {
			// An info string of a backtick fence may not contain backticks;
			// such a line is inline code, not an opener.
			if c == '`' && bytes.IndexByte(info, '`') >= 0 {
				continue
			}
			inFence = true
			fenceChar = c
			fenceLen = n
			openLine = lineNo
			continue
		}

		// Closing fence: same character, at least the opening length, and
		// nothing but whitespace after it.
		if c == fenceChar && n >= fenceLen && len(info) == 0 {
			inFence = false
		}
	}

	if inFence {
		return fmt.Errorf("%w: %s:%d", ErrUnterminatedFence, path, openLine)
	}
	return nil
}
