package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is stamped by the release build; source builds report "dev".
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before pool sizing happens. The adjustment is
	// logged only in verbose runs. Error ignored: maxprocs.Set only fails
	// on an invalid GOMAXPROCS env value, in which case the Go runtime
	// defaults apply and the program continues safely.
	if verboseRequested(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintln(os.Stderr, fmt.Sprintf(format, args...))
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
// Split from main so tests can drive it with injected environments.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	if !isCommand(cmd) {
		if looksLikeConvertTarget(cmd) {
			return runConvertCmd(args[1:], env)
		}
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(args[2:], env)
	case "validate":
		return runValidateCmd(args[2:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-md2epub %s\n", Version)
		return ExitSuccess
	default: // help
		runHelp(args[2:], env)
		return ExitSuccess
	}
}

// isCommand reports whether name is a recognized subcommand.
func isCommand(name string) bool {
	switch name {
	case "convert", "validate", "version", "help":
		return true
	}
	return false
}

// looksLikeMarkdown reports whether path has a markdown extension.
func looksLikeMarkdown(path string) bool {
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".markdown")
}

// looksLikeConvertTarget decides whether a first argument that is not a
// subcommand starts an implicit convert: a flag, a markdown file, or an
// existing path such as a book directory.
func looksLikeConvertTarget(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return true
	}
	if looksLikeMarkdown(arg) {
		return true
	}
	_, err := os.Stat(arg)
	return err == nil
}

// verboseRequested scans raw arguments for the verbose flag before flag
// parsing runs, so GOMAXPROCS adjustment logging can be decided up front.
// Recognizes --verbose and -v, including clustered shorthands like -qv.
func verboseRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--verbose" {
			return true
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && strings.Contains(arg, "v") {
			return true
		}
	}
	return false
}
