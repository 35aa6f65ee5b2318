package richtext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Parser limits. Realistic authored content stays far below both.
const (
	DefaultMaxInputSize = 8 << 20 // 8MB
	DefaultMaxDepth     = 64
)

// Document is the result of a successful parse.
type Document struct {
	Root *Node

	// Warnings lists nodes that were skipped or flattened. Each entry is a
	// *ParseError wrapping ErrUnknownNodeKind or ErrInvalidNesting.
	Warnings []error
}

// Parser turns Lexical JSON payloads into document trees.
// A Parser is safe for concurrent use.
type Parser struct {
	logger       *zap.Logger
	maxInputSize int
	maxDepth     int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLogger logs skipped nodes at warn level.
func WithParserLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxInputSize overrides DefaultMaxInputSize. Values < 1 are ignored.
func WithMaxInputSize(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxInputSize = n
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values < 1 are ignored.
func WithMaxDepth(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// NewParser creates a Parser with default limits and a no-op logger.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger:       zap.NewNop(),
		maxInputSize: DefaultMaxInputSize,
		maxDepth:     DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses a Lexical payload with the default parser.
func Parse(data []byte) (*Document, error) {
	return defaultParser.Parse(data)
}

// Parse parses a payload of the form {"root": {"type": "root", "children": [...]}}.
//
// A missing or non-node root is fatal and returns a *ParseError wrapping
// ErrMalformedInput. Unknown or misplaced nodes are skipped together with
// their subtree and reported in Document.Warnings.
func (p *Parser) Parse(data []byte) (*Document, error) {
	if len(data) > p.maxInputSize {
		return nil, malformed("", fmt.Sprintf("input is %d bytes (max %d)", len(data), p.maxInputSize))
	}
	if !gjson.ValidBytes(data) {
		return nil, malformed("", "invalid JSON")
	}

	payload := gjson.ParseBytes(data)
	if !payload.IsObject() {
		return nil, malformed("", "top-level value is not an object")
	}

	raw := payload.Get("root")
	if !raw.Exists() {
		return nil, malformed("", "missing root key")
	}
	if !raw.IsObject() || !raw.Get("type").Exists() {
		return nil, malformed("root", "root is not a node")
	}
	if typ := raw.Get("type").String(); typ != "root" {
		return nil, malformed("root", fmt.Sprintf("root has type %q", typ))
	}

	st := &parseState{parser: p}
	children, err := st.children(raw, KindRoot, "root", 1, false)
	if err != nil {
		return nil, err
	}

	return &Document{
		Root:     &Node{Kind: KindRoot, Children: children},
		Warnings: st.warnings,
	}, nil
}

// parseState carries per-call state so the Parser itself stays immutable.
type parseState struct {
	parser   *Parser
	warnings []error
}

func (st *parseState) warn(e *ParseError) {
	st.warnings = append(st.warnings, e)
	st.parser.logger.Warn("skipping rich-text node",
		zap.String("path", e.Path),
		zap.String("type", e.Type),
		zap.String("reason", e.Err.Error()),
		zap.String("detail", e.Detail),
	)
}

// children parses the children array of raw, which has kind parent.
// inLink is true when parent or one of its ancestors is a link.
func (st *parseState) children(raw gjson.Result, parent Kind, path string, depth int, inLink bool) ([]*Node, error) {
	list := raw.Get("children")
	if !list.Exists() || list.Type == gjson.Null {
		return nil, nil
	}
	if !list.IsArray() {
		st.warn(&ParseError{Path: path + ".children", Err: ErrInvalidNesting, Detail: "children is not an array"})
		return nil, nil
	}

	items := list.Array()
	out := make([]*Node, 0, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s.children[%d]", path, i)

		if !item.IsObject() {
			st.warn(&ParseError{Path: itemPath, Err: ErrUnknownNodeKind, Detail: "node is not an object"})
			continue
		}

		typ := item.Get("type").String()
		kind := KindOf(typ)
		if kind == KindUnknown {
			st.warn(&ParseError{Path: itemPath, Type: typ, Err: ErrUnknownNodeKind})
			continue
		}

		if !allowedChild(parent, kind, inLink) {
			// A link inside a link keeps its text: hoist its inline children.
			if kind == KindLink && inLink {
				if depth+1 > st.parser.maxDepth {
					return nil, malformed(itemPath, fmt.Sprintf("document exceeds maximum depth %d", st.parser.maxDepth))
				}
				st.warn(&ParseError{Path: itemPath, Type: typ, Err: ErrInvalidNesting, Detail: "nested link flattened"})
				hoisted, err := st.children(item, KindLink, itemPath, depth+1, true)
				if err != nil {
					return nil, err
				}
				out = append(out, hoisted...)
				continue
			}
			st.warn(&ParseError{Path: itemPath, Type: typ, Err: ErrInvalidNesting, Detail: "not allowed inside " + parent.String()})
			continue
		}

		node, err := st.node(item, kind, itemPath, depth+1, inLink)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (st *parseState) node(raw gjson.Result, kind Kind, path string, depth int, inLink bool) (*Node, error) {
	if depth > st.parser.maxDepth {
		return nil, malformed(path, fmt.Sprintf("document exceeds maximum depth %d", st.parser.maxDepth))
	}

	n := &Node{Kind: kind}
	switch kind {
	case KindText:
		n.Text = raw.Get("text").String()
		n.Format = formatMask(raw.Get("format"))
		return n, nil
	case KindHorizontalRule:
		return n, nil
	case KindHeading:
		n.HeadingLevel = headingLevel(raw.Get("tag"))
	case KindList:
		n.ListKind = listKind(raw)
	case KindLink:
		n.Link = linkTarget(raw)
	}

	children, err := st.children(raw, kind, path, depth, inLink || kind == KindLink)
	if err != nil {
		return nil, err
	}
	n.Children = children
	return n, nil
}

// formatMask reads a text format. Only numbers carry formatting; element
// nodes use string formats for alignment, which do not apply to text.
func formatMask(v gjson.Result) FormatMask {
	if v.Type != gjson.Number {
		return 0
	}
	if n := v.Int(); n > 0 {
		return FormatMask(n)
	}
	return 0
}

// headingLevel accepts "h2", "2" or 2. Unparseable tags yield 0, which the
// renderer clamps to 1.
func headingLevel(tag gjson.Result) int {
	switch tag.Type {
	case gjson.Number:
		return int(tag.Int())
	case gjson.String:
		s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(tag.String())), "h")
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return 0
}

func listKind(raw gjson.Result) ListKind {
	switch raw.Get("listType").String() {
	case "number":
		return ListOrdered
	case "bullet", "check":
		return ListBullet
	}
	if raw.Get("tag").String() == "ol" {
		return ListOrdered
	}
	return ListBullet
}

// linkTarget reads Payload's fields.url/fields.newTab, falling back to the
// plain Lexical url/target attributes.
func linkTarget(raw gjson.Result) LinkTarget {
	fields := raw.Get("fields")
	target := LinkTarget{
		URL:    fields.Get("url").String(),
		NewTab: fields.Get("newTab").Bool(),
	}
	if target.URL == "" {
		target.URL = raw.Get("url").String()
	}
	if !target.NewTab && raw.Get("target").String() == "_blank" {
		target.NewTab = true
	}
	return target
}
