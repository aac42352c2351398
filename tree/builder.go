package tree

import (
	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/position"
)

// Builder is the common façade over the content-model construction
// operations named in spec.md §6: symbol, opt, star, plus, range,
// neutral, and (concatenation), or (alternation), all (interleave),
// push, pop. ReversePolishDriver and DirectDriver both implement it,
// presenting the same operation set under two different disciplines
// (§4.3), the way the teacher's nfa.Builder presents one low-level
// Add*/Patch API that higher-level compilers (regexp/syntax walkers)
// drive incrementally.
type Builder interface {
	Symbol(s string)
	Epsilon()
	Opt()
	Star()
	Plus()
	Range(min, max int) error
	Neutral()
	And()
	Or()
	All()
	Push()
	Pop()
	Build() (*Node, error)
}

// positions allocates symbol positions 1-upward; position 0 is reserved
// for the empty symbol and is never handed out here.
type positions struct {
	next int
}

func newPositions() positions {
	return positions{next: 1}
}

func (p *positions) alloc() int {
	id := p.next
	p.next++
	return id
}

// reduceRangeKind applies the §4.1 limits-reduction table, returning the
// collapsed kind a [min,max] range should build as (KindRange itself if
// none of the special cases apply).
func reduceRangeKind(limits position.Limits) Kind {
	switch limits.Reduce() {
	case position.ReductionOpt:
		return KindOpt
	case position.ReductionStar:
		return KindStar
	case position.ReductionPlus:
		return KindPlus
	case position.ReductionNeutral:
		return KindNeutral
	default:
		return KindRange
	}
}

// ===== Reverse-Polish driver =====

// ReversePolishDriver implements the operator-before-operands discipline
// of §4.3: every operator call pushes a new operator node onto the
// current path, becoming the parent of whatever comes next; pop() closes
// it. push() is a no-op (there is no separate grouping concept in RPN —
// the operator stack already expresses nesting).
type ReversePolishDriver struct {
	pos   positions
	path  []*Node
	root  *Node
	built bool
}

// NewReversePolishDriver creates an empty reverse-Polish builder.
func NewReversePolishDriver() *ReversePolishDriver {
	return &ReversePolishDriver{pos: newPositions()}
}

func (b *ReversePolishDriver) attach(n *Node) {
	if len(b.path) > 0 {
		parent := b.path[len(b.path)-1]
		parent.Children = append(parent.Children, n)
	} else {
		b.root = n
	}
}

// autoCloseUnary pops any run of unary operators on the path that have
// just received their single child (e.g. in opt(star(a)), opt closes the
// moment star is attached to it, and star the moment 'a' is attached).
func (b *ReversePolishDriver) autoCloseUnary() {
	for len(b.path) > 0 {
		top := b.path[len(b.path)-1]
		if top.Kind.IsUnary() && len(top.Children) >= 1 {
			b.path = b.path[:len(b.path)-1]
			continue
		}
		break
	}
}

func (b *ReversePolishDriver) openOperator(kind Kind) {
	node := &Node{Kind: kind}
	b.attach(node)
	b.autoCloseUnary()
	b.path = append(b.path, node)
}

// Symbol appends a symbol leaf as the next operand.
func (b *ReversePolishDriver) Symbol(s string) {
	leaf := NewSymbol(s, b.pos.alloc())
	b.attach(leaf)
	b.autoCloseUnary()
}

// Epsilon appends the empty-symbol leaf as the next operand.
func (b *ReversePolishDriver) Epsilon() {
	b.attach(NewEmpty())
	b.autoCloseUnary()
}

// Opt opens a '?' operator; its next operand becomes the child.
func (b *ReversePolishDriver) Opt() { b.openOperator(KindOpt) }

// Star opens a '*' operator.
func (b *ReversePolishDriver) Star() { b.openOperator(KindStar) }

// Plus opens a '+' operator.
func (b *ReversePolishDriver) Plus() { b.openOperator(KindPlus) }

// Neutral opens an identity operator (used for a [1,1] range, or
// directly when a named no-op scope is wanted).
func (b *ReversePolishDriver) Neutral() { b.openOperator(KindNeutral) }

// Range opens a counted-range operator, collapsing to ?/*/+/neutral per
// the §4.1 reduction table when applicable.
func (b *ReversePolishDriver) Range(min, max int) error {
	limits, err := position.NewLimits(min, max)
	if err != nil {
		return err
	}
	kind := reduceRangeKind(limits)
	node := &Node{Kind: kind}
	if kind == KindRange {
		node.Limits = limits
	}
	b.attach(node)
	b.autoCloseUnary()
	b.path = append(b.path, node)
	return nil
}

// And opens an n-ary ',' operator; successive operands become children
// until Pop closes it.
func (b *ReversePolishDriver) And() { b.openOperator(KindConcat) }

// Or opens an n-ary '|' operator.
func (b *ReversePolishDriver) Or() { b.openOperator(KindAlt) }

// All opens an n-ary '&' (interleave) operator.
func (b *ReversePolishDriver) All() { b.openOperator(KindInterleave) }

// Push is a no-op in the reverse-Polish discipline: nesting is already
// expressed by the operator stack.
func (b *ReversePolishDriver) Push() {}

// Pop closes the currently open operator, whatever its arity.
func (b *ReversePolishDriver) Pop() {
	if len(b.path) == 0 {
		return
	}
	b.path = b.path[:len(b.path)-1]
	b.autoCloseUnary()
}

// Build returns the assembled tree. A second call is a no-op success
// (the lifecycle in spec.md §3: compile exactly once).
func (b *ReversePolishDriver) Build() (*Node, error) {
	b.built = true
	return b.root, nil
}

// ===== Direct driver =====

// level is one grouping scope of the direct driver: either the implicit
// top-level scope, or one opened by Push() for a parenthesized group.
// openNode, while non-nil, is the n-ary chain currently being extended
// by same-kind operator calls; current is the most recently finished
// operand available as the left side of the next operator or the target
// of the next unary postfix.
type level struct {
	openKind Kind
	openNode *Node
	current  *Node
}

// DirectDriver implements the operand-then-operator discipline of §4.3:
// symbol/epsilon calls produce finished operands; a binary operator call
// groups the pending operand with what follows, extending an already-open
// operator of the same kind in place rather than nesting (so a,b,c builds
// one ternary Concat, not a chain of binary ones); push()/pop() delimit
// parenthesized sub-expressions and graft the finished sub-tree back into
// the parent scope as its new pending operand.
type DirectDriver struct {
	pos    positions
	levels []*level
	err    error
}

// NewDirectDriver creates an empty direct builder with its implicit
// top-level scope already open.
func NewDirectDriver() *DirectDriver {
	return &DirectDriver{pos: newPositions(), levels: []*level{{}}}
}

func (d *DirectDriver) top() *level {
	return d.levels[len(d.levels)-1]
}

func (d *DirectDriver) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// receive hands a finished operand to lvl: it either extends the open
// n-ary chain or becomes the new pending current.
func (lvl *level) receive(n *Node) {
	if lvl.openNode != nil {
		lvl.openNode.Children = append(lvl.openNode.Children, n)
		return
	}
	lvl.current = n
}

// Symbol appends a symbol leaf as the next operand.
func (d *DirectDriver) Symbol(s string) {
	d.top().receive(NewSymbol(s, d.pos.alloc()))
}

// Epsilon appends the empty-symbol leaf as the next operand.
func (d *DirectDriver) Epsilon() {
	d.top().receive(NewEmpty())
}

// wrap replaces the operand a unary postfix call applies to — the last
// child of an open n-ary chain, or the scope's pending current — with
// its wrapped form.
func (lvl *level) wrap(kind Kind, limits position.Limits) error {
	if lvl.openNode != nil {
		n := len(lvl.openNode.Children)
		if n == 0 {
			return errs.Malformed(kind.String(), "postfix operator has no preceding operand")
		}
		lvl.openNode.Children[n-1] = unaryWrap(kind, limits, lvl.openNode.Children[n-1])
		return nil
	}
	if lvl.current == nil {
		return errs.Malformed(kind.String(), "postfix operator has no preceding operand")
	}
	lvl.current = unaryWrap(kind, limits, lvl.current)
	return nil
}

func unaryWrap(kind Kind, limits position.Limits, child *Node) *Node {
	if kind != KindRange {
		return NewUnary(kind, child)
	}
	reduced := reduceRangeKind(limits)
	if reduced == KindRange {
		return NewRange(limits, child)
	}
	return NewUnary(reduced, child)
}

// Opt wraps the immediately preceding operand in '?'.
func (d *DirectDriver) Opt() { d.fail(d.top().wrap(KindOpt, position.Limits{})) }

// Star wraps the immediately preceding operand in '*'.
func (d *DirectDriver) Star() { d.fail(d.top().wrap(KindStar, position.Limits{})) }

// Plus wraps the immediately preceding operand in '+'.
func (d *DirectDriver) Plus() { d.fail(d.top().wrap(KindPlus, position.Limits{})) }

// Neutral wraps the immediately preceding operand in the identity
// operator.
func (d *DirectDriver) Neutral() { d.fail(d.top().wrap(KindNeutral, position.Limits{})) }

// Range wraps the immediately preceding operand in a counted range,
// collapsing per the §4.1 table when applicable.
func (d *DirectDriver) Range(min, max int) error {
	limits, err := position.NewLimits(min, max)
	if err != nil {
		return err
	}
	return d.top().wrap(KindRange, limits)
}

// nary groups the scope's pending operand with what follows under kind,
// extending an already-open chain of the same kind in place.
func (d *DirectDriver) nary(kind Kind) {
	lvl := d.top()
	if lvl.openNode != nil {
		if lvl.openKind == kind {
			return
		}
		lvl.current = lvl.openNode
		lvl.openNode = nil
	}
	node := &Node{Kind: kind}
	if lvl.current != nil {
		node.Children = append(node.Children, lvl.current)
	}
	lvl.current = nil
	lvl.openKind = kind
	lvl.openNode = node
}

// And groups the pending operand into a ',' chain.
func (d *DirectDriver) And() { d.nary(KindConcat) }

// Or groups the pending operand into a '|' chain.
func (d *DirectDriver) Or() { d.nary(KindAlt) }

// All groups the pending operand into a '&' (interleave) chain.
func (d *DirectDriver) All() { d.nary(KindInterleave) }

// Push opens a new grouping scope for a parenthesized sub-expression.
func (d *DirectDriver) Push() {
	d.levels = append(d.levels, &level{})
}

func (lvl *level) result() *Node {
	if lvl.openNode != nil {
		return lvl.openNode
	}
	return lvl.current
}

// Pop closes the innermost grouping scope and grafts its finished
// sub-tree into the parent scope as its new pending operand.
func (d *DirectDriver) Pop() {
	if len(d.levels) <= 1 {
		d.fail(errs.Malformed("group", "pop() with no matching push()"))
		return
	}
	closed := d.levels[len(d.levels)-1]
	d.levels = d.levels[:len(d.levels)-1]
	result := closed.result()
	if result == nil {
		d.fail(errs.Malformed("group", "empty parenthesized group"))
		return
	}
	d.top().receive(result)
}

// Build returns the assembled tree, failing if any push() was never
// matched by a pop(), a pop() had no matching push(), or a postfix call
// (Opt/Star/Plus/Neutral) was rejected along the way. A rejected Range
// call returns its error to its caller and does not fail Build.
func (d *DirectDriver) Build() (*Node, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.levels) != 1 {
		return nil, errs.Malformed("group", "push() with no matching pop()")
	}
	result := d.levels[0].result()
	if result == nil {
		return nil, errs.Malformed("group", "empty content model")
	}
	return result, nil
}
