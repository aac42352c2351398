// Package tree implements the content-model syntax tree: its node shapes
// (C2), the two builder disciplines that assemble one (C3, direct and
// reverse-Polish), and the Brüggemann-Klein position-function pass that
// annotates it (C4).
//
// Nodes own their children as a plain slice (no sibling pointers): the
// function pass only ever needs post-order traversal and adjacent-child
// iteration, both of which are trivial on an owned-children vector, so
// there is no need for the doubly-linked parent/first-child/prev/next
// graph that a hand-rolled tree walker might reach for.
package tree

import "github.com/go-cmv/cmv/position"

// Kind identifies the shape of a Node.
type Kind int

const (
	// KindSymbol is a leaf carrying a non-empty symbol string.
	KindSymbol Kind = iota
	// KindEmpty is the leaf carrying the empty symbol (position 0).
	KindEmpty
	// KindOpt is the unary '?' operator.
	KindOpt
	// KindStar is the unary '*' operator.
	KindStar
	// KindPlus is the unary '+' operator.
	KindPlus
	// KindRange is the unary Range{min,max} operator (a true counted
	// range that did not collapse under the §4.1 reduction table).
	KindRange
	// KindNeutral is the unary identity operator: it changes nothing
	// about the language but preserves a named scope (e.g. [1,1]).
	KindNeutral
	// KindConcat is the n-ary ',' operator.
	KindConcat
	// KindAlt is the n-ary '|' operator.
	KindAlt
	// KindInterleave is the n-ary '&' ("all") operator.
	KindInterleave
)

// String returns a human-readable kind name, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindEmpty:
		return "empty"
	case KindOpt:
		return "opt"
	case KindStar:
		return "star"
	case KindPlus:
		return "plus"
	case KindRange:
		return "range"
	case KindNeutral:
		return "neutral"
	case KindConcat:
		return "concat"
	case KindAlt:
		return "alt"
	case KindInterleave:
		return "interleave"
	default:
		return "unknown"
	}
}

// IsLeaf reports whether k is a leaf kind (Symbol or Empty).
func (k Kind) IsLeaf() bool {
	return k == KindSymbol || k == KindEmpty
}

// IsUnary reports whether k takes exactly one child.
func (k Kind) IsUnary() bool {
	switch k {
	case KindOpt, KindStar, KindPlus, KindRange, KindNeutral:
		return true
	default:
		return false
	}
}

// IsNary reports whether k takes two or more children.
func (k Kind) IsNary() bool {
	switch k {
	case KindConcat, KindAlt, KindInterleave:
		return true
	default:
		return false
	}
}

// Node is one node of the content-model syntax tree. Leaves carry a
// Symbol and Position; unary/n-ary operators carry Children. Range nodes
// additionally carry Limits.
type Node struct {
	Kind     Kind
	Symbol   string
	Position int
	Limits   position.Limits
	Children []*Node
}

// NewSymbol creates a leaf node for a non-empty symbol occurrence at the
// given position.
func NewSymbol(symbol string, pos int) *Node {
	return &Node{Kind: KindSymbol, Symbol: symbol, Position: pos}
}

// NewEmpty creates the distinguished empty-symbol leaf at position 0.
func NewEmpty() *Node {
	return &Node{Kind: KindEmpty, Position: 0}
}

// NewUnary creates a unary operator node wrapping a single child.
func NewUnary(kind Kind, child *Node) *Node {
	return &Node{Kind: kind, Children: []*Node{child}}
}

// NewRange creates a Range{min,max} operator node.
func NewRange(limits position.Limits, child *Node) *Node {
	return &Node{Kind: KindRange, Limits: limits, Children: []*Node{child}}
}

// NewNary creates an n-ary operator node over two or more children. The
// caller is responsible for flattening associative runs (e.g. a,b,c as
// one ternary Concat) before calling this; see builder.go.
func NewNary(kind Kind, children []*Node) *Node {
	return &Node{Kind: kind, Children: children}
}
