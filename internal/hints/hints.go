// Package hints provides actionable error hints for common CLI failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to
// error messages.
package hints

import (
	"strconv"
	"strings"
)

// ForConfigNotFound returns the hint for a missing config file.
func ForConfigNotFound() string {
	return format("pass --config /path/to/file.yaml or set RICHTEXT_CONFIG")
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a path to a .css file")
}

// ForMalformedInput describes the payload shape the parser expects.
func ForMalformedInput() string {
	return format(`expected a Lexical export: {"root": {"type": "root", "children": [...]}}`)
}

// ForDocumentWarnings points at the nodes behind a --strict failure.
func ForDocumentWarnings() string {
	return format("the lines above list each skipped node; rerun without --strict to accept them")
}

// ForWriteOutput returns the hint for output write failures.
func ForWriteOutput() string {
	return format("check the output directory exists and is writable")
}

// ForWorkers returns the hint for an out-of-range worker count.
func ForWorkers(maxWorkers int) string {
	return format("use 0 for automatic sizing, or a value up to " + strconv.Itoa(maxWorkers))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
