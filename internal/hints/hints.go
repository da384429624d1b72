// Package hints holds the one-line recovery suggestions the CLI
// appends to errors a user can act on. Each one starts on a fresh
// line with a "  hint: " prefix, indented under the message itself.
package hints

import (
	"fmt"
	"strings"
)

// ForNoInput fires when discovery finds nothing to convert.
func ForNoInput() string {
	return hintLine("pass a .md file or a directory containing .md files")
}

// ForConfigNotFound fires when an explicit or implicit config lookup
// comes up empty.
func ForConfigNotFound() string {
	return hintLine("point --config at the file, e.g. --config book.yaml")
}

// ForStyleNotFound lists the styles that would have worked. No list,
// no hint.
func ForStyleNotFound(styles []string) string {
	if len(styles) == 0 {
		return ""
	}
	return hintLine("available: " + strings.Join(styles, ", "))
}

// ForChapterLevel states the accepted --chapter-level range.
func ForChapterLevel(min, max int) string {
	return hintLine(fmt.Sprintf("--chapter-level accepts %d-%d", min, max))
}

// ForTocLevel states the accepted --toc-level range.
func ForTocLevel(min, max int) string {
	return hintLine(fmt.Sprintf("--toc-level accepts %d-%d", min, max))
}

// ForUnterminatedFence fires when a fenced code block never closes.
func ForUnterminatedFence() string {
	return hintLine("close the code fence with a matching ``` or ~~~ line")
}

// ForOutputNotWritable fires when the archive cannot be written.
func ForOutputNotWritable() string {
	return hintLine("make sure the output directory exists and is writable")
}

// ForValidateUsage states the validate subcommand's argument shape.
func ForValidateUsage() string {
	return hintLine("usage: md2epub validate <file.epub>")
}

func hintLine(text string) string {
	if text == "" {
		return ""
	}
	return "\n  hint: " + text
}
