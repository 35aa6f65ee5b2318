package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/go-richtext"
	"github.com/alnah/go-richtext/internal/mdimport"
)

// Sentinel errors for document I/O.
var (
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// documentLoader turns file contents into documents, importing Markdown
// and parsing everything else as Lexical JSON.
type documentLoader struct {
	logger   *zap.Logger
	importer *mdimport.Importer
}

func newDocumentLoader(logger *zap.Logger) *documentLoader {
	return &documentLoader{
		logger:   logger,
		importer: mdimport.New(mdimport.WithLogger(logger)),
	}
}

// load converts data read from name. Parse warnings are logged with the
// file name and returned in the document.
func (l *documentLoader) load(ctx context.Context, name string, data []byte) (*richtext.Document, error) {
	if isMarkdown(name) {
		root, err := l.importer.Import(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &richtext.Document{Root: root}, nil
	}

	parser := richtext.NewParser(richtext.WithParserLogger(l.logger.With(zap.String("file", name))))
	doc, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// loadFile reads and loads a document from disk.
func (l *documentLoader) loadFile(ctx context.Context, path string) (*richtext.Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered or user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return l.load(ctx, path, data)
}

// readStdin reads at most one byte past the parser limit, so oversized
// input is still rejected by the parser rather than truncated silently.
func readStdin(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, richtext.DefaultMaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	return data, nil
}
