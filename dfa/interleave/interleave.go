// Package interleave compiles the "all" (&) content-model operator —
// every child's symbol must appear exactly once, in any order, except
// a '?'-wrapped child which may be skipped — into a single-state
// automaton (C7). There is no position/followpos construction here:
// spec.md §9's interleave-placement Open Question is resolved as
// reject-at-builder-time (tree.Check enforces root-only placement), so
// the whole operator collapses to one map lookup plus a bitmap.
package interleave

import (
	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/position"
	"github.com/go-cmv/cmv/tree"
)

// DFA is the compiled form of an interleave root: each distinct child
// symbol gets a small index, alongside whether that child is optional.
type DFA struct {
	index    map[string]int
	optional []bool
}

// Build compiles root (which must be a KindInterleave node whose
// children are symbols or '?'-wrapped symbols, as tree.Check enforces)
// into a DFA. Two children sharing the same symbol string is rejected
// as ambiguous: the cursor would have no way to decide which child's
// occurrence a given token satisfies.
func Build(root *tree.Node) (*DFA, error) {
	d := &DFA{index: make(map[string]int, len(root.Children))}
	for _, c := range root.Children {
		symbol, optional := interleaveOperand(c)
		if _, seen := d.index[symbol]; seen {
			return nil, errs.AmbiguousSymbol(symbol, "symbol appears more than once in an interleave")
		}
		d.index[symbol] = len(d.optional)
		d.optional = append(d.optional, optional)
	}
	return d, nil
}

// interleaveOperand reports the symbol and optionality of a direct
// interleave child, which tree.Check has already confirmed is either a
// bare symbol leaf or a '?'-wrapped one.
func interleaveOperand(n *tree.Node) (symbol string, optional bool) {
	if n.Kind == tree.KindOpt {
		return n.Children[0].Symbol, true
	}
	return n.Symbol, false
}

// Len returns the number of distinct symbols in the interleave.
func (d *DFA) Len() int { return len(d.optional) }

// IndexOf returns the child index assigned to symbol, and whether it
// is a member of this interleave at all.
func (d *DFA) IndexOf(symbol string) (int, bool) {
	i, ok := d.index[symbol]
	return i, ok
}

// Optional reports whether the child at index i may be skipped.
func (d *DFA) Optional(i int) bool { return d.optional[i] }

// Cursor drives an interleave DFA through a token stream: a "consumed"
// bitmap over child indices, reusing position.Set exactly as the rest
// of dfa/* reuses it for firstpos/lastpos/followpos rather than
// inventing a second bitmap type for this one narrower use.
type Cursor struct {
	dfa      *DFA
	consumed position.Set
	dead     bool
}

// NewCursor creates a Cursor with nothing yet consumed.
func NewCursor(dfa *DFA) *Cursor {
	return &Cursor{dfa: dfa, consumed: position.NewSet(dfa.Len())}
}

// Reset clears the consumed bitmap.
func (c *Cursor) Reset() {
	c.consumed = position.NewSet(c.dfa.Len())
	c.dead = false
}

// Step consumes symbol, failing if it is not one of the interleave's
// symbols or has already been consumed once.
func (c *Cursor) Step(symbol string) bool {
	if c.dead {
		return false
	}
	i, ok := c.dfa.IndexOf(symbol)
	if !ok || c.consumed.Contains(i) {
		c.dead = true
		return false
	}
	c.consumed.Add(i)
	return true
}

// Valid reports whether the cursor is still on a live path.
func (c *Cursor) Valid() bool { return !c.dead }

// Accepting reports whether every child has been consumed, or is
// optional and wasn't.
func (c *Cursor) Accepting() bool {
	if c.dead {
		return false
	}
	for i := 0; i < c.dfa.Len(); i++ {
		if !c.consumed.Contains(i) && !c.dfa.Optional(i) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of c, deep-copying the consumed
// bitmap so stepping the clone never perturbs the original.
func (c *Cursor) Clone() *Cursor {
	clone := *c
	clone.consumed = c.consumed.Clone()
	return &clone
}

// ValidNextSymbols lists every symbol not yet consumed.
func (c *Cursor) ValidNextSymbols() []string {
	if c.dead {
		return nil
	}
	out := make([]string, 0, c.dfa.Len())
	for symbol, i := range c.dfa.index {
		if !c.consumed.Contains(i) {
			out = append(out, symbol)
		}
	}
	return out
}
