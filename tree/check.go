package tree

import "github.com/go-cmv/cmv/errs"

// Check validates the structural invariants of a tree rooted at root:
// every unary node has exactly one child, every n-ary node has at least
// two, every leaf has none, and an interleave node only ever appears at
// the root (spec.md §9's Open Question on interleave placement is
// resolved as option (b): reject at builder/compile time rather than
// generalizing the compiler to handle nested interleave).
func Check(root *Node) error {
	return checkNode(root, true)
}

func checkNode(n *Node, isRoot bool) error {
	switch {
	case n.Kind.IsLeaf():
		if len(n.Children) != 0 {
			return errs.Malformed(n.Kind.String(), "leaf node must have no children")
		}
	case n.Kind.IsUnary():
		if len(n.Children) != 1 {
			return errs.Malformed(n.Kind.String(), "unary operator must have exactly one child")
		}
	case n.Kind == KindInterleave:
		if !isRoot {
			return errs.Malformed(n.Kind.String(), "interleave operator may only appear at the root")
		}
		if len(n.Children) < 2 {
			return errs.Malformed(n.Kind.String(), "n-ary operator must have at least two children")
		}
		for _, c := range n.Children {
			if !isInterleaveOperand(c) {
				return errs.Malformed(n.Kind.String(), "interleave children must be symbols or '?'-wrapped symbols")
			}
		}
	case n.Kind.IsNary():
		if len(n.Children) < 2 {
			return errs.Malformed(n.Kind.String(), "n-ary operator must have at least two children")
		}
	default:
		return errs.Malformed(n.Kind.String(), "unrecognized node kind")
	}

	for _, c := range n.Children {
		if err := checkNode(c, false); err != nil {
			return err
		}
	}
	return nil
}

// isInterleaveOperand reports whether n is a bare symbol/empty leaf or a
// '?'-wrapped one, the only shapes spec.md §4.7 allows as a direct child
// of an interleave node.
func isInterleaveOperand(n *Node) bool {
	if n.Kind.IsLeaf() {
		return true
	}
	if n.Kind == KindOpt && len(n.Children) == 1 {
		return n.Children[0].Kind.IsLeaf()
	}
	return false
}
