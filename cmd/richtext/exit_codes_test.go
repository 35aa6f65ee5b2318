package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/assets"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/mdimport"
	"github.com/alnah/go-richtext/internal/page"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Document errors (exit 4)
		{"malformed input", richtext.ErrMalformedInput, ExitDocument},
		{"parse error", &richtext.ParseError{Path: "root", Err: richtext.ErrMalformedInput}, ExitDocument},
		{"empty markdown", mdimport.ErrEmptyMarkdown, ExitDocument},
		{"strict warnings", ErrDocumentWarnings, ExitDocument},
		{"wrapped parse error", fmt.Errorf("doc.json: %w", &richtext.ParseError{Err: richtext.ErrMalformedInput}), ExitDocument},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no files", ErrNoFiles, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid env", ErrInvalidEnv, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"output collision", ErrOutputCollision, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid base url", richtext.ErrInvalidBaseURL, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"style not found", assets.ErrStyleNotFound, ExitUsage},
		{"template not found", assets.ErrTemplateNotFound, ExitUsage},
		{"invalid asset name", assets.ErrInvalidAssetName, ExitUsage},
		{"invalid base path", assets.ErrInvalidBasePath, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"page render", page.ErrPageRender, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"batch failed", ErrBatchFailed, ExitGeneral},
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_BelowShellReserved(t *testing.T) {
	t.Parallel()

	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitDocument} {
		if code < 0 || code >= 126 {
			t.Errorf("exit code %d outside 0..125", code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), "RICHTEXT_CONFIG"},
		{"style not found", assets.ErrStyleNotFound, "available: default, print"},
		{"malformed", &richtext.ParseError{Err: richtext.ErrMalformedInput}, `{"root":`},
		{"strict warnings", ErrDocumentWarnings, "--strict"},
		{"write output", ErrWriteOutput, "writable"},
		{"workers", ErrInvalidWorkerCount, "up to 32"},
		{"no hint", errors.New("other"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, "hint: ") || !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want hint containing %q", got, tt.want)
			}
		})
	}
}
