package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "text":
		return runText(args[1:])
	case "languages":
		return runLanguages(args[1:])
	case "translators":
		return runTranslators(args[1:])
	case "faults":
		return runFaults(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "translate CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  translate <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  text         Translate text given as arguments or on stdin (-)")
	fmt.Fprintln(os.Stderr, "  languages    List source and target languages of a translator")
	fmt.Fprintln(os.Stderr, "  translators  List registered translators")
	fmt.Fprintln(os.Stderr, "  faults       List recent translation faults from the fault ledger")
	fmt.Fprintln(os.Stderr, "  serve        Start Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"translate <command> -h\" for command-specific flags.")
}
