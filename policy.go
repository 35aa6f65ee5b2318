package richtext

// HeadingInference decides whether a paragraph renders as a heading.
// It returns the heading level and true to replace the paragraph container.
type HeadingInference func(p *Node) (level int, ok bool)

// BoldLeadHeading is the default heading inference: a paragraph whose first
// child is a bold text run renders as a level-2 heading. Some authored
// content marks section titles this way instead of using heading nodes, and
// existing pages depend on the rule.
func BoldLeadHeading(p *Node) (int, bool) {
	if p == nil || p.Kind != KindParagraph || len(p.Children) == 0 {
		return 0, false
	}
	first := p.Children[0]
	if first != nil && first.Kind == KindText && first.Format.Bold() {
		return 2, true
	}
	return 0, false
}
