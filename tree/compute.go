package tree

import (
	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/position"
)

// Attrs holds the result of the Brüggemann-Klein position-function pass:
// nullable/firstpos/lastpos per node, followpos per position, the symbol
// alphabet, and the per-range side tables (C6 needs) dfa/ranges builds
// its counted-range transitions from.
type Attrs struct {
	Root        *Node
	MaxPosition int

	nullable  map[*Node]bool
	firstPos  map[*Node]position.Set
	lastPos   map[*Node]position.Set
	followPos map[int]position.Set
	symbols   map[int]string

	// Alphabet is the unique symbol strings in increasing order of
	// first occurrence (by position), excluding the empty symbol.
	Alphabet []string

	// Ranges lists every counted-range node in the tree, in the order
	// encountered by the post-order pass; RangeInfo.Index is its
	// position in this slice, the "range index" startRanges/endRanges/
	// pairRange refer to.
	Ranges []RangeInfo

	// startRanges[p] / endRanges[p] list the range indices for which p
	// is, respectively, an entry position (p ∈ firstpos(range)) or an
	// exit position (p ∈ lastpos(range)) — spec.md §4.6's SR/ER tables.
	startRanges map[int][]int
	endRanges   map[int][]int

	// pairRange[(from,to)] records which range claimed the endpoint
	// pair (from ∈ lastpos(r), to ∈ firstpos(r)); a second, different
	// range claiming the same pair is rejected as range ambiguity
	// (spec.md §3 invariant 5 / §4.4's last bullet).
	pairRange map[[2]int]int
}

// RangeInfo is the per-Range-node summary dfa/ranges consumes.
type RangeInfo struct {
	Node *Node
	// Index is this range's position in Attrs.Ranges — the integer
	// handle startRanges/endRanges/pairRange and the runtime counter
	// vector key off of.
	Index int
	// FirstChild / LastChild are firstpos(r) / lastpos(r) (equivalently
	// firstpos/lastpos of the range's single child).
	FirstChild position.Set
	LastChild  position.Set
	// Body holds every leaf position under the range's child —
	// internalpos(r) — used by the relevance filter to recognize a
	// transition that stays within the range's own body rather than
	// crossing its boundary.
	Body position.Set
}

// Nullable reports whether n's language contains the empty string.
func (a *Attrs) Nullable(n *Node) bool { return a.nullable[n] }

// FirstPos returns the set of positions that can match the first symbol
// consumed by n.
func (a *Attrs) FirstPos(n *Node) position.Set { return a.firstPos[n] }

// LastPos returns the set of positions that can match the last symbol
// consumed by n.
func (a *Attrs) LastPos(n *Node) position.Set { return a.lastPos[n] }

// FollowPos returns the set of positions that can immediately follow an
// occurrence of position p.
func (a *Attrs) FollowPos(p int) position.Set { return a.followPos[p] }

// SymbolAt returns the symbol string occurring at position p (the empty
// string for p == 0, the reserved empty-symbol position).
func (a *Attrs) SymbolAt(p int) string { return a.symbols[p] }

// StartRanges returns the indices of every counted range for which p is
// an entry position (p ∈ firstpos(range)).
func (a *Attrs) StartRanges(p int) []int { return a.startRanges[p] }

// EndRanges returns the indices of every counted range for which p is
// an exit position (p ∈ lastpos(range)). Always empty for p == 0.
func (a *Attrs) EndRanges(p int) []int { return a.endRanges[p] }

// PairRange looks up which range, if any, claimed the endpoint pair
// (from, to) — i.e. from ∈ lastpos(range) and to ∈ firstpos(range).
func (a *Attrs) PairRange(from, to int) (int, bool) {
	idx, ok := a.pairRange[[2]int{from, to}]
	return idx, ok
}

// Compute runs the position-function pass over root, returning the
// attribute tables every dfa/* compiler consumes. Range-pair ambiguity
// (spec.md §3 invariant 5: the (lastpos, firstpos) endpoint pair of a
// counted range must be unique) is detected here, in the same pass that
// computes lastpos/firstpos of every range node, per spec.md §9's note
// that this check belongs at the C4/C6 interface.
func Compute(root *Node) (*Attrs, error) {
	maxPos := maxPosition(root)
	a := &Attrs{
		Root:        root,
		MaxPosition: maxPos,
		nullable:    make(map[*Node]bool),
		firstPos:    make(map[*Node]position.Set),
		lastPos:     make(map[*Node]position.Set),
		followPos:   make(map[int]position.Set),
		symbols:     make(map[int]string),
		startRanges: make(map[int][]int),
		endRanges:   make(map[int][]int),
		pairRange:   make(map[[2]int]int),
	}
	for p := 0; p <= maxPos; p++ {
		a.followPos[p] = position.NewSet(maxPos + 1)
	}

	type frame struct {
		node       *Node
		childIndex int
	}
	stack := []*frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.childIndex < len(top.node.Children) {
			child := top.node.Children[top.childIndex]
			top.childIndex++
			stack = append(stack, &frame{node: child})
			continue
		}
		stack = stack[:len(stack)-1]
		if err := a.computeNode(top.node, maxPos); err != nil {
			return nil, err
		}
	}

	a.buildAlphabet(maxPos)
	return a, nil
}

func maxPosition(root *Node) int {
	max := 0
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Position > max {
			max = n.Position
		}
		for _, c := range n.Children {
			stack = append(stack, c)
		}
	}
	return max
}

// leafPositions collects every Symbol/Empty leaf position under n,
// including n itself if it is a leaf.
func leafPositions(n *Node) position.Set {
	var set position.Set
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Kind.IsLeaf() {
			set.Add(cur.Position)
			continue
		}
		for _, c := range cur.Children {
			stack = append(stack, c)
		}
	}
	return set
}

func (a *Attrs) buildAlphabet(maxPos int) {
	seen := make(map[string]bool)
	for p := 1; p <= maxPos; p++ {
		s, ok := a.symbols[p]
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		a.Alphabet = append(a.Alphabet, s)
	}
}

// loopBack adds a followpos edge from every position in from to every
// position in to, as Star/Plus/Range nodes require.
func (a *Attrs) loopBack(from, to position.Set) {
	from.Each(func(p int) {
		to.Each(func(q int) {
			set := a.followPos[p]
			set.Add(q)
			a.followPos[p] = set
		})
	})
}

func (a *Attrs) computeNode(n *Node, maxPos int) error {
	switch n.Kind {
	case KindSymbol:
		a.nullable[n] = false
		set := position.NewSet(maxPos + 1)
		set.Add(n.Position)
		a.firstPos[n] = set
		a.lastPos[n] = set.Clone()
		a.symbols[n.Position] = n.Symbol

	case KindEmpty:
		a.nullable[n] = true
		a.firstPos[n] = position.NewSet(maxPos + 1)
		a.lastPos[n] = position.NewSet(maxPos + 1)

	case KindOpt:
		c := n.Children[0]
		a.nullable[n] = true
		a.firstPos[n] = a.firstPos[c].Clone()
		a.lastPos[n] = a.lastPos[c].Clone()

	case KindNeutral:
		c := n.Children[0]
		a.nullable[n] = a.nullable[c]
		a.firstPos[n] = a.firstPos[c].Clone()
		a.lastPos[n] = a.lastPos[c].Clone()

	case KindStar:
		c := n.Children[0]
		a.nullable[n] = true
		a.firstPos[n] = a.firstPos[c].Clone()
		a.lastPos[n] = a.lastPos[c].Clone()
		a.loopBack(a.lastPos[c], a.firstPos[c])

	case KindPlus:
		c := n.Children[0]
		a.nullable[n] = a.nullable[c]
		a.firstPos[n] = a.firstPos[c].Clone()
		a.lastPos[n] = a.lastPos[c].Clone()
		a.loopBack(a.lastPos[c], a.firstPos[c])

	case KindRange:
		return a.computeRange(n, maxPos)

	case KindConcat:
		a.computeConcat(n, maxPos)

	case KindAlt:
		a.computeAlt(n, maxPos)
	}
	return nil
}

// computeRange fills in the Range{min,max} node's own firstpos/lastpos/
// nullable/followpos exactly as Plus does (it is a Plus with a counter
// attached), then records the bookkeeping dfa/ranges needs: the range's
// entry in Attrs.Ranges, its startRanges/endRanges membership per
// position, and its (lastpos, firstpos) endpoint pairs in pairRange —
// rejecting a second range that claims a pair already owned by another.
// Nested and overlapping counted ranges are legal (spec.md §8 scenario
// 3 requires it); what's illegal is two distinct ranges sharing an
// endpoint pair, which would leave the runtime unable to tell which
// counter a given transition closes and reopens.
func (a *Attrs) computeRange(n *Node, maxPos int) error {
	c := n.Children[0]
	a.nullable[n] = n.Limits.Min == 0 || a.nullable[c]
	a.firstPos[n] = a.firstPos[c].Clone()
	a.lastPos[n] = a.lastPos[c].Clone()
	a.loopBack(a.lastPos[c], a.firstPos[c])

	idx := len(a.Ranges)
	a.Ranges = append(a.Ranges, RangeInfo{
		Node:       n,
		Index:      idx,
		FirstChild: a.firstPos[c].Clone(),
		LastChild:  a.lastPos[c].Clone(),
		Body:       leafPositions(c),
	})

	var rangeErr error
	a.lastPos[c].Each(func(from int) {
		if rangeErr != nil {
			return
		}
		a.firstPos[c].Each(func(to int) {
			if rangeErr != nil {
				return
			}
			key := [2]int{from, to}
			if existing, ok := a.pairRange[key]; ok && existing != idx {
				rangeErr = errs.AmbiguousRange("range ambiguity: two counted ranges share the same endpoint pair")
				return
			}
			a.pairRange[key] = idx
		})
	})
	if rangeErr != nil {
		return rangeErr
	}

	a.firstPos[c].Each(func(p int) { a.startRanges[p] = append(a.startRanges[p], idx) })
	a.lastPos[c].Each(func(p int) { a.endRanges[p] = append(a.endRanges[p], idx) })
	return nil
}

// computeConcat folds children left-to-right exactly as a chain of
// binary concatenations would, rather than only linking immediately
// adjacent siblings: with more than two children, a middle child being
// nullable (e.g. "a?,b?,c?") means lastpos of the *whole nullable
// prefix* must reach firstpos of a later sibling, not just the next
// one. A naive adjacent-pairs-only followpos link would miss the a->c
// edge and wrongly refuse "a,c".
func (a *Attrs) computeConcat(n *Node, maxPos int) {
	children := n.Children

	accNullable := a.nullable[children[0]]
	accFirst := a.firstPos[children[0]].Clone()
	accLast := a.lastPos[children[0]].Clone()

	for i := 1; i < len(children); i++ {
		c := children[i]
		a.loopBack(accLast, a.firstPos[c])

		if accNullable {
			accFirst.Union(a.firstPos[c])
		}
		if a.nullable[c] {
			last := a.lastPos[c].Clone()
			last.Union(accLast)
			accLast = last
		} else {
			accLast = a.lastPos[c].Clone()
		}
		accNullable = accNullable && a.nullable[c]
	}

	a.nullable[n] = accNullable
	a.firstPos[n] = accFirst
	a.lastPos[n] = accLast
}

func (a *Attrs) computeAlt(n *Node, maxPos int) {
	nullable := false
	first := position.NewSet(maxPos + 1)
	last := position.NewSet(maxPos + 1)
	for _, c := range n.Children {
		nullable = nullable || a.nullable[c]
		first.Union(a.firstPos[c])
		last.Union(a.lastPos[c])
	}
	a.nullable[n] = nullable
	a.firstPos[n] = first
	a.lastPos[n] = last
}
