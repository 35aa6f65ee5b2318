package richtext

import (
	"errors"
	"fmt"
)

// Sentinel errors for parsing and rendering.
var (
	// ErrMalformedInput is fatal to parsing: the payload is not JSON, has no
	// node-shaped root, or exceeds the size or depth limits.
	ErrMalformedInput = errors.New("malformed rich-text input")

	// ErrUnknownNodeKind marks a node whose type is not part of the taxonomy.
	// The node and its subtree are skipped; parsing continues.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrInvalidNesting marks a known node in a position the document model
	// does not allow, such as a list item outside a list.
	ErrInvalidNesting = errors.New("invalid node nesting")

	// ErrInvalidBaseURL indicates WithBaseURL received an unusable URL.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// ParseError describes a problem at a specific location in a document.
// It unwraps to one of the sentinel errors above, so callers use errors.Is.
type ParseError struct {
	Path   string // e.g. "root.children[2].children[0]"
	Type   string // Lexical type of the offending node, if known
	Err    error  // sentinel
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Type != "" {
		msg += fmt.Sprintf(" %q", e.Type)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func malformed(path, detail string) *ParseError {
	return &ParseError{Path: path, Err: ErrMalformedInput, Detail: detail}
}
