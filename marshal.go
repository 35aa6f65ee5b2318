package richtext

import (
	"encoding/json"
	"fmt"
)

// Lexical serialisation version written for every node.
const lexicalVersion = 1

type wireDocument struct {
	Root *wireNode `json:"root"`
}

type wireNode struct {
	Type     string       `json:"type"`
	Version  int          `json:"version"`
	Tag      string       `json:"tag,omitempty"`
	ListType string       `json:"listType,omitempty"`
	Fields   *wireLink    `json:"fields,omitempty"`
	Text     *string      `json:"text,omitempty"`
	Format   *FormatMask  `json:"format,omitempty"`
	Children *[]*wireNode `json:"children,omitempty"`
}

type wireLink struct {
	LinkType string `json:"linkType"`
	URL      string `json:"url"`
	NewTab   bool   `json:"newTab"`
}

// Marshal serialises a root node to the Lexical JSON shape Parse accepts:
// {"root": {"type": "root", "children": [...]}}. Nodes of unknown kind are
// omitted. For trees that pass Validate, parsing the output renders
// identically to the input tree.
func Marshal(root *Node) ([]byte, error) {
	if root == nil || root.Kind != KindRoot {
		return nil, fmt.Errorf("%w: marshal requires a root node", ErrMalformedInput)
	}
	return json.Marshal(wireDocument{Root: toWire(root)})
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(root *Node, prefix, indent string) ([]byte, error) {
	if root == nil || root.Kind != KindRoot {
		return nil, fmt.Errorf("%w: marshal requires a root node", ErrMalformedInput)
	}
	return json.MarshalIndent(wireDocument{Root: toWire(root)}, prefix, indent)
}

// toWire converts n, or returns nil for nodes that cannot be represented.
func toWire(n *Node) *wireNode {
	if n == nil || n.Kind == KindUnknown || n.Kind > KindHorizontalRule {
		return nil
	}

	w := &wireNode{Type: n.Kind.String(), Version: lexicalVersion}
	switch n.Kind {
	case KindText:
		text, format := n.Text, n.Format
		w.Text, w.Format = &text, &format
		return w
	case KindHorizontalRule:
		return w
	case KindHeading:
		w.Tag = headingAtom(n.HeadingLevel).String()
	case KindList:
		w.ListType = n.ListKind.String()
		w.Tag = "ul"
		if n.ListKind == ListOrdered {
			w.Tag = "ol"
		}
	case KindLink:
		w.Fields = &wireLink{LinkType: "custom", URL: n.Link.URL, NewTab: n.Link.NewTab}
	}

	children := make([]*wireNode, 0, len(n.Children))
	for _, c := range n.Children {
		if wc := toWire(c); wc != nil {
			children = append(children, wc)
		}
	}
	w.Children = &children
	return w
}
