package ranges

import "github.com/go-cmv/cmv/position"

// Cursor drives a counted-range DFA through a token stream. Unlike a
// plain Cursor it carries one position.Counter per counted range in the
// compiled model (ranges may nest or sit side by side in a concatenation,
// so more than one can be open at once — see the root package's
// TestCompilerRangeOfGroups). A range's counter is created the moment it is first
// entered (ToStart/FromEndToStartNoInc/FromEndToStartInc's Inits) and
// persists until the cursor is Reset.
type Cursor struct {
	dfa      *DFA
	state    StateID
	dead     bool
	counters []*position.Counter
}

// NewCursor creates a Cursor positioned at dfa's start state.
func NewCursor(dfa *DFA) *Cursor {
	return &Cursor{dfa: dfa, state: dfa.Start(), counters: make([]*position.Counter, dfa.NumRanges())}
}

// Reset returns the cursor to the start state, clearing every range
// counter.
func (c *Cursor) Reset() {
	c.state = c.dfa.Start()
	c.dead = false
	for i := range c.counters {
		c.counters[i] = nil
	}
}

func (c *Cursor) initRange(idx int) {
	cnt := position.NewCounter(c.dfa.RangeLimits(idx))
	cnt.Init()
	c.counters[idx] = &cnt
}

// checkRange reports whether idx's counter currently satisfies its
// limits. A nil counter (a range Checked without ever having been
// entered) cannot occur on any path the compiler builds — see
// transitionFor's grounding in spec.md §4.6 — but is treated as failing
// rather than panicking, since Accepting and Step must never raise.
func (c *Cursor) checkRange(idx int) bool {
	cnt := c.counters[idx]
	if cnt == nil {
		return false
	}
	return cnt.Check()
}

// incrementRange advances idx's counter, reporting whether it is still
// within its maximum.
func (c *Cursor) incrementRange(idx int) bool {
	cnt := c.counters[idx]
	if cnt == nil {
		return false
	}
	return cnt.Increment()
}

// Step consumes symbol, reporting whether it was accepted. Per
// spec.md §4.6's execution actions, a counter failing its check — below
// minimum on exit, or overflowing its maximum mid-loop — aborts the
// transition outright: the cursor dies exactly as it would for a
// missing table entry, it does not merely doom a later Accepting call.
func (c *Cursor) Step(symbol string) bool {
	if c.dead {
		return false
	}
	trans, ok := c.dfa.Step(c.state, symbol)
	if !ok {
		c.dead = true
		return false
	}

	switch trans.Kind {
	case KindValid:
		// no counter action

	case KindToStart:
		for _, idx := range trans.Inits {
			c.initRange(idx)
		}

	case KindFromEnd:
		for _, idx := range trans.Checks {
			if !c.checkRange(idx) {
				c.dead = true
				return false
			}
		}

	case KindFromEndToStartNoInc:
		for _, idx := range trans.Checks {
			if !c.checkRange(idx) {
				c.dead = true
				return false
			}
		}
		for _, idx := range trans.Inits {
			c.initRange(idx)
		}

	case KindFromEndToStartInc:
		if !c.incrementRange(trans.Pos) {
			c.dead = true
			return false
		}
		for _, idx := range trans.Checks {
			if !c.checkRange(idx) {
				c.dead = true
				return false
			}
		}
		for _, idx := range trans.Inits {
			c.initRange(idx)
		}
	}

	c.state = trans.Next
	return true
}

// Valid reports whether the cursor is still on a live path.
func (c *Cursor) Valid() bool { return !c.dead }

// Accepting reports whether the sequence consumed so far is a complete
// match: not dead, the current state is accepting, and every range
// whose exit touches this exact final state (spec.md §4.6's "Final
// states" paragraph — a range that closes here but has no following
// symbol to trigger a FromEnd transition) already satisfies its
// minimum.
func (c *Cursor) Accepting() bool {
	if c.dead {
		return false
	}
	if !c.dfa.Accepting(c.state) {
		return false
	}
	for _, idx := range c.dfa.FinalChecks(c.state) {
		if !c.checkRange(idx) {
			return false
		}
	}
	return true
}

// ValidNextSymbols lists every symbol on which Valid would currently
// report true: a live table transition from the current state whose
// counter actions (if any) also succeed, checked the same way Valid
// checks a single symbol — by cloning the cursor and stepping it.
func (c *Cursor) ValidNextSymbols() []string {
	if c.dead {
		return nil
	}
	var out []string
	for _, symbol := range c.dfa.ValidNextSymbols(c.state) {
		if c.Clone().Step(symbol) {
			out = append(out, symbol)
		}
	}
	return out
}

// Clone returns an independent copy of c, deep-copying every open range
// counter so stepping the clone never perturbs the original.
func (c *Cursor) Clone() *Cursor {
	clone := *c
	clone.counters = make([]*position.Counter, len(c.counters))
	for i, cnt := range c.counters {
		if cnt != nil {
			cp := *cnt
			clone.counters[i] = &cp
		}
	}
	return &clone
}
