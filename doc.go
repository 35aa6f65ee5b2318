// Package richtext parses and renders Lexical rich-text documents, the JSON
// trees produced by headless CMS editors such as Payload.
//
// # Quick Start
//
//	doc, err := richtext.Parse(payload)
//	if err != nil {
//	    // errors.Is(err, richtext.ErrMalformedInput): show a fallback block
//	}
//	body := richtext.RenderHTML(doc.Root)
//
// A document that partially fails to parse still renders: unknown node types
// and misplaced nodes are skipped with their subtree and listed in
// Document.Warnings.
//
// # Document Model
//
// A Node is a tagged variant with a closed set of kinds: root, paragraph,
// heading, list, list item, link, text run and horizontal rule. The root
// holds block kinds, lists hold list items, and paragraphs, headings, list
// items and links hold inline kinds (text runs and links). Links never nest.
// Validate checks these rules for trees built in code.
//
// Text runs carry a FormatMask: bit 0 is bold, bit 1 italic. Other bits are
// preserved and ignored.
//
// # Rendering
//
// A Renderer walks the tree once. RenderHTML and WriteHTML produce an escaped
// HTML fragment; RenderTree produces golang.org/x/net/html nodes for callers
// that assemble a DOM. Both outputs are identical once the tree is rendered
// with html.Render.
//
//	r, err := richtext.NewRenderer(
//	    richtext.WithBaseURL("https://example.com/"),
//	    richtext.WithClasses(map[string]string{"a": "link"}),
//	)
//
// Paragraphs whose first child is a bold text run render as <h2> by default
// (BoldLeadHeading). Use WithHeadingInference(nil) to turn that off.
//
// Links with NewTab set carry target="_blank" and rel="noopener noreferrer".
// Links with an empty URL or a scheme other than http, https, mailto or tel
// render their text without an anchor.
//
// Parser and Renderer values are immutable after construction and safe for
// concurrent use.
package richtext
