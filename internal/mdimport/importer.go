// Package mdimport converts Markdown into rich-text document trees.
//
// The importer maps the subset of CommonMark and GFM that the document model
// can express: paragraphs, headings, lists, thematic breaks, emphasis and
// links. Everything else is either flattened into text (code, images,
// strikethrough) or skipped and logged (tables, raw HTML).
package mdimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/alnah/go-richtext"
)

// ErrEmptyMarkdown indicates the input has no content.
var ErrEmptyMarkdown = errors.New("markdown content is empty")

// Lexical format bits without a rendering in the document model. They are
// kept on imported runs so Marshal writes them back out.
const (
	formatStrikethrough richtext.FormatMask = 1 << 2
	formatCode          richtext.FormatMask = 1 << 4
)

// Importer converts Markdown to document trees. It is safe for concurrent use.
type Importer struct {
	md     goldmark.Markdown
	logger *zap.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger logs skipped Markdown constructs at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Importer with GFM extensions (autolinks included).
func New(opts ...Option) *Importer {
	i := &Importer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import parses src and returns a root node.
// Supports context cancellation via goroutine + select since goldmark
// does not accept a context.
func (i *Importer) Import(ctx context.Context, src []byte) (*richtext.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, ErrEmptyMarkdown
	}

	done := make(chan *richtext.Node, 1)
	go func() {
		doc := i.md.Parser().Parse(text.NewReader(src))
		w := &walker{src: src, logger: i.logger}
		done <- richtext.Root(w.blocks(doc)...)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case root := <-done:
		return root, nil
	}
}

// walker holds the source for segment lookups during one conversion.
type walker struct {
	src    []byte
	logger *zap.Logger
}

func (w *walker) skip(n ast.Node) {
	w.logger.Debug("skipping markdown node", zap.String("kind", n.Kind().String()))
}

// blocks converts the block children of parent.
func (w *walker) blocks(parent ast.Node) []*richtext.Node {
	var out []*richtext.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, w.block(c)...)
	}
	return out
}

// block converts one block node. Containers without a counterpart
// (blockquotes) contribute their children.
func (w *walker) block(n ast.Node) []*richtext.Node {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return []*richtext.Node{richtext.Paragraph(w.inlines(n, 0, false)...)}

	case *ast.Heading:
		return []*richtext.Node{richtext.Heading(n.Level, w.inlines(n, 0, false)...)}

	case *ast.List:
		return []*richtext.Node{w.list(n)}

	case *ast.ThematicBreak:
		return []*richtext.Node{richtext.HorizontalRule()}

	case *ast.Blockquote:
		return w.blocks(n)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return []*richtext.Node{richtext.Paragraph(richtext.Text(w.lines(n), formatCode))}
	}

	w.skip(n)
	return nil
}

func (w *walker) list(n *ast.List) *richtext.Node {
	kind := richtext.ListBullet
	if n.IsOrdered() {
		kind = richtext.ListOrdered
	}

	var items []*richtext.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if item, ok := c.(*ast.ListItem); ok {
			items = append(items, w.listItem(item))
		}
	}
	return richtext.List(kind, items...)
}

// listItem flattens the paragraphs and headings of a (possibly loose) item
// into one run of inline content and keeps nested lists. Blockquotes are
// unwrapped into the item.
func (w *walker) listItem(n *ast.ListItem) *richtext.Node {
	return richtext.ListItem(mergeRuns(w.itemContent(n, nil))...)
}

func (w *walker) itemContent(parent ast.Node, children []*richtext.Node) []*richtext.Node {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			if len(children) > 0 {
				children = append(children, richtext.Text(" ", 0))
			}
			children = append(children, w.inlines(c, 0, false)...)
		case *ast.Blockquote:
			children = w.itemContent(c, children)
		case *ast.List:
			children = append(children, w.list(c))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			children = append(children, richtext.Text(w.lines(c), formatCode))
		default:
			w.skip(c)
		}
	}
	return children
}

// inlines converts the inline children of parent under the given format.
func (w *walker) inlines(parent ast.Node, format richtext.FormatMask, inLink bool) []*richtext.Node {
	var out []*richtext.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, w.inline(c, format, inLink)...)
	}
	return mergeRuns(out)
}

func (w *walker) inline(n ast.Node, format richtext.FormatMask, inLink bool) []*richtext.Node {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(w.src))
		if n.SoftLineBreak() || n.HardLineBreak() {
			s += " "
		}
		return []*richtext.Node{richtext.Text(s, format)}

	case *ast.String:
		return []*richtext.Node{richtext.Text(string(n.Value), format)}

	case *ast.Emphasis:
		bit := richtext.FormatItalic
		if n.Level >= 2 {
			bit = richtext.FormatBold
		}
		return w.inlines(n, format|bit, inLink)

	case *east.Strikethrough:
		return w.inlines(n, format|formatStrikethrough, inLink)

	case *ast.CodeSpan:
		var sb strings.Builder
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(w.src))
			}
		}
		return []*richtext.Node{richtext.Text(sb.String(), format|formatCode)}

	case *ast.Link:
		return w.link(string(n.Destination), w.inlines(n, format, true), inLink)

	case *ast.AutoLink:
		label := richtext.Text(string(n.Label(w.src)), format)
		return w.link(string(n.URL(w.src)), []*richtext.Node{label}, inLink)

	case *ast.Image:
		// Alt text only; the document model has no image node.
		return w.inlines(n, format, inLink)
	}

	w.skip(n)
	return nil
}

// link wraps children in a link, or returns them bare inside another link.
func (w *walker) link(url string, children []*richtext.Node, inLink bool) []*richtext.Node {
	if inLink {
		return children
	}
	return []*richtext.Node{richtext.Link(url, false, children...)}
}

// lines joins the raw lines of a code block.
func (w *walker) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// mergeRuns joins adjacent text runs that share a format. goldmark splits
// text at every delimiter candidate, which would otherwise produce one run
// per punctuation mark.
func mergeRuns(nodes []*richtext.Node) []*richtext.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.Kind == richtext.KindText && n.Kind == richtext.KindText && last.Format == n.Format {
				last.Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// Import converts src with a default Importer.
func Import(ctx context.Context, src []byte) (*richtext.Node, error) {
	root, err := New().Import(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("importing markdown: %w", err)
	}
	return root, nil
}
