package richtext

// Kind identifies which variant a Node is.
type Kind uint8

// Node kinds. KindUnknown is the zero value and is never produced by Parse.
const (
	KindUnknown Kind = iota
	KindRoot
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindLink
	KindText
	KindHorizontalRule
)

// kindNames maps kinds to their Lexical "type" strings.
var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindRoot:           "root",
	KindParagraph:      "paragraph",
	KindHeading:        "heading",
	KindList:           "list",
	KindListItem:       "listitem",
	KindLink:           "link",
	KindText:           "text",
	KindHorizontalRule: "horizontalrule",
}

// lexicalKinds maps Lexical "type" strings to kinds.
// autolink is the editor's variant for URLs typed inline; it renders like a link.
var lexicalKinds = map[string]Kind{
	"root":           KindRoot,
	"paragraph":      KindParagraph,
	"heading":        KindHeading,
	"list":           KindList,
	"listitem":       KindListItem,
	"link":           KindLink,
	"autolink":       KindLink,
	"text":           KindText,
	"horizontalrule": KindHorizontalRule,
}

// String returns the Lexical type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// KindOf returns the kind for a Lexical node type, or KindUnknown.
func KindOf(lexicalType string) Kind {
	return lexicalKinds[lexicalType]
}

// IsBlock reports whether the kind may appear directly under the root.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindHeading, KindList, KindHorizontalRule:
		return true
	}
	return false
}

// IsInline reports whether the kind may appear inside paragraphs, headings and links.
func (k Kind) IsInline() bool {
	return k == KindText || k == KindLink
}

// ListKind selects ordered or unordered list rendering.
type ListKind uint8

const (
	ListBullet ListKind = iota
	ListOrdered
)

// String returns the Lexical listType of the list kind.
func (l ListKind) String() string {
	if l == ListOrdered {
		return "number"
	}
	return "bullet"
}

// FormatMask is the inline formatting bitset of a text run.
// Bits past the ones defined here are preserved and ignored.
type FormatMask uint32

const (
	FormatBold FormatMask = 1 << iota
	FormatItalic
)

// Bold reports whether the bold bit is set.
func (f FormatMask) Bold() bool { return f&FormatBold != 0 }

// Italic reports whether the italic bit is set.
func (f FormatMask) Italic() bool { return f&FormatItalic != 0 }

// LinkTarget is the destination of a link node.
type LinkTarget struct {
	URL string
	// NewTab opens the link in a new browsing context without leaking the referrer.
	NewTab bool
}

// Node is one element of a rich-text document tree.
// Only the fields relevant to Kind are meaningful; the rest stay zero.
type Node struct {
	Kind     Kind
	Children []*Node

	// KindText
	Text   string
	Format FormatMask

	// KindHeading, 1-6. Out-of-range values are clamped at render time.
	HeadingLevel int

	// KindList
	ListKind ListKind

	// KindLink
	Link LinkTarget
}

// Root returns a root node with the given block children.
func Root(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Children: children}
}

// Paragraph returns a paragraph node.
func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

// Heading returns a heading node of the given level.
func Heading(level int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, HeadingLevel: level, Children: children}
}

// List returns a list node.
func List(kind ListKind, items ...*Node) *Node {
	return &Node{Kind: KindList, ListKind: kind, Children: items}
}

// ListItem returns a list item node.
func ListItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}

// Link returns a link node.
func Link(url string, newTab bool, children ...*Node) *Node {
	return &Node{Kind: KindLink, Link: LinkTarget{URL: url, NewTab: newTab}, Children: children}
}

// Text returns a text run.
func Text(s string, format FormatMask) *Node {
	return &Node{Kind: KindText, Text: s, Format: format}
}

// HorizontalRule returns a horizontal rule node.
func HorizontalRule() *Node {
	return &Node{Kind: KindHorizontalRule}
}

// allowedChild reports whether child kind c may appear under parent kind p.
// insideLink is true when the parent or any of its ancestors is a link.
func allowedChild(p, c Kind, insideLink bool) bool {
	switch p {
	case KindRoot:
		return c.IsBlock()
	case KindList:
		return c == KindListItem
	case KindListItem:
		if c == KindList {
			return true
		}
		fallthrough
	case KindParagraph, KindHeading, KindLink:
		if c == KindLink {
			return !insideLink
		}
		return c.IsInline()
	}
	return false
}
