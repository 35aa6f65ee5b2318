package richtext

import "fmt"

// Validate checks a tree against the document model's structural rules and
// returns one *ParseError per violation, in document order. Trees produced
// by Parse always validate; Validate is for trees built in code.
func Validate(root *Node) []error {
	if root == nil {
		return []error{malformed("root", "nil root")}
	}
	if root.Kind != KindRoot {
		return []error{malformed("root", fmt.Sprintf("root has kind %s", root.Kind))}
	}
	var errs []error
	validateChildren(root, "root", false, &errs)
	return errs
}

func validateChildren(n *Node, path string, inLink bool, errs *[]error) {
	if n.Kind == KindText || n.Kind == KindHorizontalRule {
		if len(n.Children) > 0 {
			*errs = append(*errs, &ParseError{
				Path: path, Type: n.Kind.String(), Err: ErrInvalidNesting,
				Detail: n.Kind.String() + " cannot have children",
			})
		}
		return
	}

	for i, c := range n.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		switch {
		case c == nil:
			*errs = append(*errs, &ParseError{Path: childPath, Err: ErrInvalidNesting, Detail: "nil node"})
		case c.Kind == KindUnknown || c.Kind > KindHorizontalRule:
			*errs = append(*errs, &ParseError{Path: childPath, Type: c.Kind.String(), Err: ErrUnknownNodeKind})
		case !allowedChild(n.Kind, c.Kind, inLink):
			*errs = append(*errs, &ParseError{
				Path: childPath, Type: c.Kind.String(), Err: ErrInvalidNesting,
				Detail: "not allowed inside " + n.Kind.String(),
			})
		default:
			validateChildren(c, childPath, inLink || c.Kind == KindLink, errs)
		}
	}
}
