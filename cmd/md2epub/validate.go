package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alnah/go-md2epub/internal/epub"
	"github.com/alnah/go-md2epub/internal/hints"
)

// validationReport is the validate command's output shape.
type validationReport struct {
	Path     string         `json:"path"`
	Status   string         `json:"status"` // "valid", "warnings", "invalid"
	Findings []epub.Finding `json:"findings"`
}

// runValidateCmd checks an EPUB archive and returns an exit code.
// Exit codes: 0 = valid (including warnings), 1 = structural errors found.
func runValidateCmd(args []string, env *Environment) int {
	asJSON := false
	var path string
	for _, arg := range args {
		switch {
		case arg == "--json":
			asJSON = true
		case path == "":
			path = arg
		default:
			fmt.Fprintf(env.Stderr, "unexpected argument: %s%s\n", arg, hints.ForValidateUsage())
			return ExitUsage
		}
	}
	if path == "" {
		fmt.Fprintf(env.Stderr, "missing archive path%s\n", hints.ForValidateUsage())
		return ExitUsage
	}

	findings, err := epub.Validate(path)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	report := validationReport{
		Path:     path,
		Status:   validationStatus(findings),
		Findings: findings,
	}

	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printValidationReport(env.Stdout, report)
	}

	if epub.HasErrors(findings) {
		return ExitGeneral
	}
	return ExitSuccess
}

// validationStatus summarizes findings into a single status word.
func validationStatus(findings []epub.Finding) string {
	hasWarnings := false
	for _, f := range findings {
		switch f.Level {
		case epub.LevelError:
			return "invalid"
		case epub.LevelWarning:
			hasWarnings = true
		}
	}
	if hasWarnings {
		return "warnings"
	}
	return "valid"
}

// printValidationReport writes the human-readable finding list.
func printValidationReport(w io.Writer, r validationReport) {
	fmt.Fprintf(w, "md2epub validate %s\n", r.Path)
	fmt.Fprintln(w)

	for _, f := range r.Findings {
		label := "OK"
		switch f.Level {
		case epub.LevelError:
			label = "ERROR"
		case epub.LevelWarning:
			label = "WARN"
		}
		fmt.Fprintf(w, "  [%s] %s\n", label, f.Message)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case "invalid":
		fmt.Fprintln(w, "Status: invalid (see errors above)")
	case "warnings":
		fmt.Fprintln(w, "Status: valid with warnings")
	default:
		fmt.Fprintln(w, "Status: valid")
	}
}
