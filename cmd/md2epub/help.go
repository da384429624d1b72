package main

import (
	"fmt"
	"io"
)

const usageText = `Usage: md2epub <command> [flags] [args]

Commands:
  convert     Convert markdown files to EPUB
  validate    Check the structure of an EPUB archive
  version     Show version information
  help        Show help for a command

A markdown file or directory as the first argument converts directly:
  md2epub book.md
  md2epub ./manuscript -o book.epub

Run 'md2epub help <command>' for details on a specific command.
`

const convertUsageText = `Usage: md2epub convert <input>... [flags]

Convert markdown files to EPUB. Each input produces one book; a directory
input becomes a single book from its markdown files in name order.

Arguments:
  input    Markdown file or directory (may be omitted when the config file
           sets input.defaultDir)

Input and Output:
  -o, --output <path>       Output .epub file or directory
  -c, --config <name>       Config file path, or a bare name to search for
  -w, --workers <n>         Parallel conversions (0 = auto)
      --save                Keep the unpacked book directory next to the archive

Book Metadata:
  -t, --title <s>           Book title ("" = derive from input name)
      --creator <s>         Author or editor
  -l, --language <s>        Language tag, e.g. en or ja
      --book-id <s>         Identifier ("" = random urn:uuid)
      --date <s>            Date: "auto", "auto:FORMAT", or literal
                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
                            Presets (case-insensitive): iso, european, us, long
                            Use [text] to escape literals: [Rev.] YYYY
      --vertical            Vertical writing with right-to-left pages

Structure:
      --chapter-level <n>   Heading level that starts a chapter (1-6)
      --toc-level <n>       Deepest heading level in the TOC (1-5)

Styling:
      --style <s>           CSS style name or file path
      --asset-path <path>   Custom asset directory

Console Output:
  -q, --quiet               Suppress everything except errors
  -v, --verbose             Show per-book timing

Metadata can also come from YAML frontmatter in the first input file
(title, creator, language, book_id, date, vertical, toc_level,
chapter_level, style). Flags win over MD2EPUB_* environment variables,
which win over frontmatter, which wins over the config file.
`

const validateUsageText = `Usage: md2epub validate <file.epub> [--json]

Check the structural requirements of an EPUB archive: mimetype
placement, container manifest, and package document consistency.

Flags:
      --json    Emit findings as JSON
`

// printUsage writes the top-level command summary.
func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// printConvertUsage writes the full flag reference for convert. The level
// ranges in the text are literals; a test keeps them aligned with the
// exported constants.
func printConvertUsage(w io.Writer) {
	fmt.Fprint(w, convertUsageText)
}

// printValidateUsage writes the flag reference for validate.
func printValidateUsage(w io.Writer) {
	fmt.Fprint(w, validateUsageText)
}

// runHelp routes "help [command]" to the matching usage text. An unknown
// topic goes to stderr together with the command summary.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "validate":
		printValidateUsage(env.Stdout)
	case "version":
		fmt.Fprint(env.Stdout, "Usage: md2epub version\n\nShow version information.\n")
	case "help":
		fmt.Fprint(env.Stdout, "Usage: md2epub help [command]\n\nShow help for a command.\n")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
