package main

import (
	"errors"
	"os"

	"github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/assets"
	"github.com/alnah/go-richtext/internal/config"
	"github.com/alnah/go-richtext/internal/hints"
	"github.com/alnah/go-richtext/internal/mdimport"
	"github.com/alnah/go-richtext/internal/page"
)

// Exit codes for the richtext CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All inputs processed
	ExitGeneral  = 1 // General/unexpected error, partial batch failure
	ExitUsage    = 2 // Invalid flags, config, environment or assets
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitDocument = 4 // Malformed payload, or warnings under --strict
)

// exitCodeFor returns the exit code for an error. Callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, richtext.ErrMalformedInput) ||
		errors.Is(err, mdimport.ErrEmptyMarkdown) ||
		errors.Is(err, ErrDocumentWarnings) {
		return ExitDocument
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoFiles) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputCollision) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, richtext.ErrInvalidBaseURL) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, page.ErrPageRender) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, richtext.ErrMalformedInput):
		return hints.ForMalformedInput()
	case errors.Is(err, ErrDocumentWarnings):
		return hints.ForDocumentWarnings()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForWriteOutput()
	case errors.Is(err, ErrInvalidWorkerCount):
		return hints.ForWorkers(config.MaxWorkers)
	}
	return ""
}
