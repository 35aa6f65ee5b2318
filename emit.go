package richtext

import (
	"io"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element is a container or void element decided before its children are
// rendered.
type element struct {
	tag   atom.Atom
	attrs []html.Attribute
}

// emitter receives the traversal. Implementations differ only in what they
// build; the traversal order is the same for all of them.
type emitter interface {
	open(el element)
	close(el element)
	void(el element)
	text(s string)
}

// writerEmitter streams HTML to a writer. The first write error sticks and
// suppresses further writes.
type writerEmitter struct {
	w   io.Writer
	err error
}

func (e *writerEmitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *writerEmitter) startTag(el element) {
	e.write("<")
	e.write(el.tag.String())
	for _, a := range el.attrs {
		e.write(" ")
		e.write(a.Key)
		e.write(`="`)
		e.write(html.EscapeString(a.Val))
		e.write(`"`)
	}
}

func (e *writerEmitter) open(el element) {
	e.startTag(el)
	e.write(">")
}

func (e *writerEmitter) close(el element) {
	e.write("</")
	e.write(el.tag.String())
	e.write(">")
}

// void uses the same self-closing form as html.Render.
func (e *writerEmitter) void(el element) {
	e.startTag(el)
	e.write("/>")
}

func (e *writerEmitter) text(s string) {
	e.write(html.EscapeString(s))
}

// treeEmitter builds html.Node values under a scratch document node.
type treeEmitter struct {
	root  *html.Node
	stack []*html.Node
}

func newTreeEmitter() *treeEmitter {
	root := &html.Node{Type: html.DocumentNode}
	return &treeEmitter{root: root, stack: []*html.Node{root}}
}

func (t *treeEmitter) top() *html.Node {
	return t.stack[len(t.stack)-1]
}

func (t *treeEmitter) newElement(el element) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: el.tag,
		Data:     el.tag.String(),
		Attr:     slices.Clone(el.attrs),
	}
}

func (t *treeEmitter) open(el element) {
	n := t.newElement(el)
	t.top().AppendChild(n)
	t.stack = append(t.stack, n)
}

func (t *treeEmitter) close(element) {
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *treeEmitter) void(el element) {
	t.top().AppendChild(t.newElement(el))
}

func (t *treeEmitter) text(s string) {
	t.top().AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// nodes detaches and returns the top-level nodes.
func (t *treeEmitter) nodes() []*html.Node {
	var out []*html.Node
	for c := t.root.FirstChild; c != nil; {
		next := c.NextSibling
		t.root.RemoveChild(c)
		out = append(out, c)
		c = next
	}
	return out
}
