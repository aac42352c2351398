package ranges

import "github.com/go-cmv/cmv/position"

// StateID identifies a DFA state. Per spec.md §4.5/§4.6, a state IS a
// position, exactly as in dfa/plain: state 0 is initial, state p (p>=1)
// means "position p was just consumed". DeadState is a sentinel outside
// that range.
type StateID int32

// DeadState marks a table cell with no transition.
const DeadState StateID = -1

// Kind names which of the five transition shapes spec.md §4.6 defines a
// table cell carries.
type Kind uint8

const (
	// KindValid is a transition touching no counted range.
	KindValid Kind = iota
	// KindToStart enters one or more ranges: Inits are initialized to 1.
	KindToStart
	// KindFromEnd exits one or more ranges: Checks must all satisfy
	// their [min,max].
	KindFromEnd
	// KindFromEndToStartNoInc exits one set of ranges and enters a
	// different set on the same edge (a sibling range boundary), with
	// no counter incremented.
	KindFromEndToStartNoInc
	// KindFromEndToStartInc closes and reopens the *same* range on one
	// edge (a range's own loop-back): Pos's counter is incremented
	// first, then Checks and Inits (if any, for ranges other than Pos
	// also touched by this edge) are applied.
	KindFromEndToStartInc
)

// Transition is one table cell.
type Transition struct {
	Next   StateID
	Kind   Kind
	Checks []int // range indices to Check()
	Inits  []int // range indices to Init()
	Pos    int   // range index to Increment(); only meaningful for KindFromEndToStartInc
}

// DFA is a dense transition table, exactly as dfa/plain's, with each
// cell additionally tagged with the counted-range actions (if any) that
// edge triggers, plus the per-final-state ranges to verify at accept
// time (spec.md §4.6's "Final states" paragraph).
type DFA struct {
	table     []Transition
	alphabet  *Alphabet
	stride    int
	stride2   uint
	start     StateID
	numStates int
	accept    []bool

	finalChecks map[StateID][]int
	rangeLimits []position.Limits
}

// Accepting reports whether s is an accepting state, ignoring any
// counted-range check (the Cursor applies those via FinalChecks).
func (d *DFA) Accepting(s StateID) bool {
	if s < 0 || int(s) >= len(d.accept) {
		return false
	}
	return d.accept[s]
}

// FinalChecks returns the range indices that must satisfy Check() for s
// to be a genuine accepting state, empty if none.
func (d *DFA) FinalChecks(s StateID) []int {
	return d.finalChecks[s]
}

// NumRanges returns the number of counted ranges in the compiled model.
func (d *DFA) NumRanges() int { return len(d.rangeLimits) }

// RangeLimits returns the [min,max] limits of range idx.
func (d *DFA) RangeLimits(idx int) position.Limits { return d.rangeLimits[idx] }

// Start returns the DFA's start state.
func (d *DFA) Start() StateID { return d.start }

// Alphabet returns the symbol alphabet the DFA was compiled with.
func (d *DFA) Alphabet() *Alphabet { return d.alphabet }

// Step looks up the transition for s on symbol, returning it and
// whether it exists (a transition with Next == DeadState counts as
// absent).
func (d *DFA) Step(s StateID, symbol string) (Transition, bool) {
	class, ok := d.alphabet.Class(symbol)
	if !ok {
		return Transition{}, false
	}
	if s < 0 {
		return Transition{}, false
	}
	idx := int(s)<<d.stride2 + class
	if idx >= len(d.table) {
		return Transition{}, false
	}
	t := d.table[idx]
	return t, t.Next != DeadState
}

// ValidNextSymbols lists every symbol with a live transition from s.
func (d *DFA) ValidNextSymbols(s StateID) []string {
	var out []string
	if s < 0 {
		return out
	}
	base := int(s) << d.stride2
	for class := 0; class < d.alphabet.Len(); class++ {
		idx := base + class
		if idx < len(d.table) && d.table[idx].Next != DeadState {
			out = append(out, d.alphabet.Symbol(class))
		}
	}
	return out
}
