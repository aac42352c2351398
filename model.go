package cmv

import (
	"github.com/go-cmv/cmv/dfa/interleave"
	"github.com/go-cmv/cmv/dfa/plain"
	"github.com/go-cmv/cmv/dfa/ranges"
	"github.com/go-cmv/cmv/tree"
)

// variant identifies which of the three automaton families a
// CompiledModel was compiled to, the content-model analogue of
// meta.Strategy's NFA/DFA/prefilter selection.
type variant int

const (
	variantPlain variant = iota
	variantRanges
	variantInterleave
)

// CompiledModel is an immutable, compiled content model. It is safe to
// share across goroutines that each drive their own Cursor.
type CompiledModel struct {
	variant   variant
	plainDFA  *plain.DFA
	rangesDFA *ranges.DFA
	interDFA  *interleave.DFA
}

// compile picks the DFA variant for root per spec.md §9's Transition
// variants note: a true KindInterleave root always takes the
// single-state interleave automaton; a tree with at least one surviving
// KindRange node (counted ranges that didn't collapse under the §4.1
// reduction table) needs the counter-carrying ranges DFA; everything
// else compiles to the plain DFA.
func compile(root *tree.Node) (*CompiledModel, error) {
	if err := tree.Check(root); err != nil {
		return nil, err
	}

	if root.Kind == tree.KindInterleave {
		dfa, err := interleave.Build(root)
		if err != nil {
			return nil, err
		}
		return &CompiledModel{variant: variantInterleave, interDFA: dfa}, nil
	}

	attrs, err := tree.Compute(root)
	if err != nil {
		return nil, err
	}

	if len(attrs.Ranges) > 0 {
		dfa, err := ranges.Build(attrs)
		if err != nil {
			return nil, err
		}
		return &CompiledModel{variant: variantRanges, rangesDFA: dfa}, nil
	}

	dfa, err := plain.Build(attrs)
	if err != nil {
		return nil, err
	}
	return &CompiledModel{variant: variantPlain, plainDFA: dfa}, nil
}

// InitialState returns a Cursor positioned at the model's start state.
func (m *CompiledModel) InitialState() *Cursor {
	switch m.variant {
	case variantRanges:
		return &Cursor{variant: variantRanges, rangesCursor: ranges.NewCursor(m.rangesDFA)}
	case variantInterleave:
		return &Cursor{variant: variantInterleave, interCursor: interleave.NewCursor(m.interDFA)}
	default:
		return &Cursor{variant: variantPlain, plainCursor: plain.NewCursor(m.plainDFA)}
	}
}

// Cursor drives a compiled model through a token stream. It dispatches
// to whichever concrete variant cursor CompiledModel.InitialState chose,
// the same pattern-match-in-the-executor approach spec.md §9 recommends
// over a deep class hierarchy for the three automaton families.
type Cursor struct {
	variant      variant
	plainCursor  *plain.Cursor
	rangesCursor *ranges.Cursor
	interCursor  *interleave.Cursor
}

// Step consumes symbol, reporting whether the model still accepts the
// sequence including it. Once a Step call fails, the cursor stays dead
// until the caller starts over with a fresh Cursor.
func (c *Cursor) Step(symbol string) bool {
	switch c.variant {
	case variantRanges:
		return c.rangesCursor.Step(symbol)
	case variantInterleave:
		return c.interCursor.Step(symbol)
	default:
		return c.plainCursor.Step(symbol)
	}
}

// Valid reports whether symbol could be consumed from the current state
// without actually consuming it: the cursor is cloned, the clone steps,
// and only the clone's outcome is reported, leaving c untouched. Cursors
// are cheap here (an int state plus a handful of range counters at
// most, or a small bitmap), so cloning beats reset-and-replay
// bookkeeping.
func (c *Cursor) Valid(symbol string) bool {
	switch c.variant {
	case variantRanges:
		return c.rangesCursor.Clone().Step(symbol)
	case variantInterleave:
		return c.interCursor.Clone().Step(symbol)
	default:
		return c.plainCursor.Clone().Step(symbol)
	}
}

// Accepting reports whether the sequence consumed so far is a complete
// match.
func (c *Cursor) Accepting() bool {
	switch c.variant {
	case variantRanges:
		return c.rangesCursor.Accepting()
	case variantInterleave:
		return c.interCursor.Accepting()
	default:
		return c.plainCursor.Accepting()
	}
}

// ValidNextSymbols lists every symbol on which Valid would currently
// report true.
func (c *Cursor) ValidNextSymbols() []string {
	switch c.variant {
	case variantRanges:
		return c.rangesCursor.ValidNextSymbols()
	case variantInterleave:
		return c.interCursor.ValidNextSymbols()
	default:
		return c.plainCursor.ValidNextSymbols()
	}
}
