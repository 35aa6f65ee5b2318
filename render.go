package richtext

import (
	"fmt"
	"io"
	"maps"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer turns document trees into HTML. A Renderer holds only immutable
// configuration and is safe for concurrent use; it never mutates or retains
// the trees it renders.
type Renderer struct {
	headings HeadingInference
	classes  map[string]string
	baseRaw  string
	base     *url.URL
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeadingInference replaces the paragraph-to-heading policy.
// Pass nil to always render paragraphs as paragraphs.
func WithHeadingInference(fn HeadingInference) Option {
	return func(r *Renderer) {
		r.headings = fn
	}
}

// WithClasses sets a class attribute on every emitted element of the given
// tag name, e.g. {"p": "mb-4", "a": "text-blue-600"}.
func WithClasses(classes map[string]string) Option {
	return func(r *Renderer) {
		r.classes = maps.Clone(classes)
	}
}

// WithBaseURL resolves relative link URLs against base, which must be absolute.
func WithBaseURL(base string) Option {
	return func(r *Renderer) {
		r.baseRaw = base
	}
}

// NewRenderer creates a Renderer. By default paragraphs led by bold text
// render as headings (BoldLeadHeading), no classes are added and link URLs
// are emitted as authored.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{headings: BoldLeadHeading}
	for _, opt := range opts {
		opt(r)
	}

	if r.baseRaw != "" {
		u, err := url.Parse(r.baseRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, r.baseRaw)
		}
		r.base = u
	}

	return r, nil
}

var defaultRenderer = &Renderer{headings: BoldLeadHeading}

// RenderHTML renders n with the default renderer.
func RenderHTML(n *Node) string {
	return defaultRenderer.RenderHTML(n)
}

// RenderTree renders n with the default renderer.
func RenderTree(n *Node) []*html.Node {
	return defaultRenderer.RenderTree(n)
}

// RenderHTML renders n to an HTML fragment. Text is escaped and attribute
// values are quoted, so the result can be embedded directly in a page body.
// A nil node renders as the empty string.
func (r *Renderer) RenderHTML(n *Node) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = r.WriteHTML(&sb, n)
	return sb.String()
}

// WriteHTML renders n to w. The only possible error is from w.
func (r *Renderer) WriteHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	e := &writerEmitter{w: w}
	r.renderNode(n, e, false)
	return e.err
}

// RenderTree renders n to detached html nodes suitable for html.Render or
// for insertion into a larger DOM.
func (r *Renderer) RenderTree(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	e := newTreeEmitter()
	r.renderNode(n, e, false)
	return e.nodes()
}

// renderNode emits n and its subtree. inLink is true when an ancestor of n
// is a link. Unknown kinds emit nothing.
func (r *Renderer) renderNode(n *Node, e emitter, inLink bool) {
	switch n.Kind {
	case KindRoot:
		r.renderChildren(n, e, inLink)

	case KindParagraph:
		tag := atom.P
		if r.headings != nil {
			if level, ok := r.headings(n); ok {
				tag = headingAtom(level)
			}
		}
		r.wrap(r.element(tag), n, e, inLink)

	case KindHeading:
		r.wrap(r.element(headingAtom(n.HeadingLevel)), n, e, inLink)

	case KindList:
		tag := atom.Ul
		if n.ListKind == ListOrdered {
			tag = atom.Ol
		}
		r.wrap(r.element(tag), n, e, inLink)

	case KindListItem:
		r.wrap(r.element(atom.Li), n, e, inLink)

	case KindLink:
		href, ok := r.href(n.Link.URL)
		if !ok {
			r.renderChildren(n, e, true)
			return
		}
		attrs := []html.Attribute{{Key: "href", Val: href}}
		if n.Link.NewTab {
			attrs = append(attrs,
				html.Attribute{Key: "target", Val: "_blank"},
				html.Attribute{Key: "rel", Val: "noopener noreferrer"},
			)
		}
		r.wrap(r.element(atom.A, attrs...), n, e, true)

	case KindText:
		r.renderText(n, e)

	case KindHorizontalRule:
		e.void(r.element(atom.Hr))
	}
}

// renderChildren emits the children of n that the document model allows
// under n. inLink is true when n or one of its ancestors is a link.
func (r *Renderer) renderChildren(n *Node, e emitter, inLink bool) {
	for _, c := range n.Children {
		if c == nil || !allowedChild(n.Kind, c.Kind, inLink) {
			continue
		}
		r.renderNode(c, e, inLink)
	}
}

func (r *Renderer) wrap(el element, n *Node, e emitter, inLink bool) {
	e.open(el)
	r.renderChildren(n, e, inLink)
	e.close(el)
}

// renderText emits a text run. Bold wraps italic: <strong><em>x</em></strong>.
func (r *Renderer) renderText(n *Node, e emitter) {
	var wrappers []element
	if n.Format.Bold() {
		wrappers = append(wrappers, r.element(atom.Strong))
	}
	if n.Format.Italic() {
		wrappers = append(wrappers, r.element(atom.Em))
	}

	for _, w := range wrappers {
		e.open(w)
	}
	e.text(n.Text)
	for i := len(wrappers) - 1; i >= 0; i-- {
		e.close(wrappers[i])
	}
}

// element builds an element, appending the configured class for its tag.
func (r *Renderer) element(tag atom.Atom, attrs ...html.Attribute) element {
	if class := r.classes[tag.String()]; class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: class})
	}
	return element{tag: tag, attrs: attrs}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// headingAtom clamps level to 1-6.
func headingAtom(level int) atom.Atom {
	level = max(1, min(level, len(headingAtoms)))
	return headingAtoms[level-1]
}
