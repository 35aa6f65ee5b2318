package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render Lexical JSON or Markdown to HTML")
	fmt.Fprintln(w, "  import     Convert Markdown to Lexical JSON")
	fmt.Fprintln(w, "  check      Report nodes that would be skipped")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'richtext help <command>' for details on a specific command.")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext render <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render rich-text documents to HTML fragments or standalone pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .json, .md or .markdown file, a directory, or - for JSON on stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>           Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>             Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --base-url <url>          Resolve relative links against this URL")
	fmt.Fprintln(w, "      --no-heading-inference    Keep bold-led paragraphs as paragraphs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --standalone              Wrap output in a full HTML page")
	fmt.Fprintln(w, "      --title <s>               Page title (default: file name)")
	fmt.Fprintln(w, "      --lang <s>                Page language (default: en)")
	fmt.Fprintln(w, "      --style <name|path>       Stylesheet: default, print, or a .css file")
	fmt.Fprintln(w, "      --template <name>         Page template (default: page)")
	fmt.Fprintln(w, "      --asset-path <dir>        Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show debug logs and timing")
}

func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext import <input.md|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown to Lexical JSON accepted by 'richtext render'.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>    Output file (default: stdout)")
	fmt.Fprintln(w, "      --compact          Write JSON without indentation")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Log skipped Markdown constructs")
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: richtext check <input|-> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse documents and report every node that rendering would skip.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --strict           Exit with code 4 when any warning is reported")
	fmt.Fprintln(w, "  -w, --workers <n>      Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet            Only print warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose          Show debug logs")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "import":
		printImportUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: richtext version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: richtext help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
