package ranges

import (
	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/internal/conv"
	"github.com/go-cmv/cmv/position"
	"github.com/go-cmv/cmv/tree"
)

// Build compiles attrs into a counted-range DFA. States are positions,
// exactly as dfa/plain's Build (spec.md §4.5/§4.6 share the same from/to
// derivation); each edge is additionally classified into one of the five
// transition kinds by inspecting the endpoint symbols' range annotations
// (spec.md §4.6, rules 1-4).
func Build(attrs *tree.Attrs) (*DFA, error) {
	alphabet := NewAlphabet(attrs.Alphabet)
	stride := nextPowerOf2(alphabet.Len())
	if stride == 0 {
		stride = 1
	}
	stride2 := log2(stride)

	numStates := attrs.MaxPosition + 1
	table := make([]Transition, numStates*stride)
	for i := range table {
		table[i] = Transition{Next: DeadState}
	}

	accept := make([]bool, numStates)
	accept[0] = attrs.Nullable(attrs.Root)
	lastRoot := attrs.LastPos(attrs.Root)
	for p := 1; p < numStates; p++ {
		accept[p] = lastRoot.Contains(p)
	}

	finalChecks := make(map[StateID][]int)
	for p := 0; p < numStates; p++ {
		if !accept[p] {
			continue
		}
		if checks := attrs.EndRanges(p); len(checks) > 0 {
			finalChecks[StateID(p)] = append([]int(nil), checks...)
		}
	}

	rangeLimits := make([]position.Limits, len(attrs.Ranges))
	for i, r := range attrs.Ranges {
		rangeLimits[i] = r.Node.Limits
	}

	if err := buildRow(table, stride, alphabet, attrs, 0, attrs.FirstPos(attrs.Root)); err != nil {
		return nil, err
	}
	for p := 1; p < numStates; p++ {
		if err := buildRow(table, stride, alphabet, attrs, p, attrs.FollowPos(p)); err != nil {
			return nil, err
		}
	}

	return &DFA{
		table:       table,
		alphabet:    alphabet,
		stride:      stride,
		stride2:     stride2,
		start:       0,
		numStates:   numStates,
		accept:      accept,
		finalChecks: finalChecks,
		rangeLimits: rangeLimits,
	}, nil
}

// buildRow fills in from's row from candidates (firstpos(root) for
// from == 0, followpos(from) otherwise), tagging each cell with its
// transition kind and erroring out on the same table-level 1-ambiguity
// dfa/plain checks: two distinct candidate positions sharing a symbol
// class is not deterministic.
func buildRow(table []Transition, stride int, alphabet *Alphabet, attrs *tree.Attrs, from int, candidates position.Set) error {
	base := from * stride
	byClass := make(map[int]int, alphabet.Len())

	var buildErr error
	candidates.Each(func(to int) {
		if buildErr != nil {
			return
		}
		symbol := attrs.SymbolAt(to)
		class, ok := alphabet.Class(symbol)
		if !ok {
			return
		}
		if owner, seen := byClass[class]; seen && owner != to {
			buildErr = errs.AmbiguousSymbol(symbol, "two distinct positions compete for the same input symbol")
			return
		}
		byClass[class] = to
		table[base+class] = transitionFor(attrs, from, to)
	})
	return buildErr
}

// transitionFor classifies the edge from -> to per spec.md §4.6.
//
// SR(to) lists the ranges to enters; ER(from) lists the ranges from
// exits (always empty for from == 0). Rules 1-3 handle the cases where
// only one of those is non-empty; rule 4 handles both non-empty,
// consulting the (from,to) endpoint-pair map first to recognize a
// range's own loop-back edge (which increments rather than merely
// closes-and-reopens).
func transitionFor(attrs *tree.Attrs, from, to int) Transition {
	next := StateID(conv.IntToInt32(to))
	sr := attrs.StartRanges(to)
	er := attrs.EndRanges(from)

	switch {
	case len(sr) == 0 && len(er) == 0:
		return Transition{Next: next, Kind: KindValid}

	case len(sr) != 0 && len(er) == 0:
		inits := relevant(attrs, sr, from, -1)
		if len(inits) == 0 {
			return Transition{Next: next, Kind: KindValid}
		}
		return Transition{Next: next, Kind: KindToStart, Inits: inits}

	case len(sr) == 0 && len(er) != 0:
		checks := relevant(attrs, er, to, -1)
		if len(checks) == 0 {
			return Transition{Next: next, Kind: KindValid}
		}
		return Transition{Next: next, Kind: KindFromEnd, Checks: checks}

	default:
		if r, ok := attrs.PairRange(from, to); ok {
			checks := relevant(attrs, er, to, r)
			inits := relevant(attrs, sr, from, r)
			return Transition{Next: next, Kind: KindFromEndToStartInc, Checks: checks, Inits: inits, Pos: r}
		}
		checks := relevant(attrs, er, to, -1)
		inits := relevant(attrs, sr, from, -1)
		switch {
		case len(checks) == 0 && len(inits) == 0:
			return Transition{Next: next, Kind: KindValid}
		case len(checks) == 0:
			return Transition{Next: next, Kind: KindToStart, Inits: inits}
		case len(inits) == 0:
			return Transition{Next: next, Kind: KindFromEnd, Checks: checks}
		default:
			return Transition{Next: next, Kind: KindFromEndToStartNoInc, Checks: checks, Inits: inits}
		}
	}
}

// relevant drops from indices any range that node is already internal
// to (the edge stays within that range's own body rather than crossing
// its boundary) and, if given, the skip index — spec.md §4.6's
// "Relevance filter" paragraph.
func relevant(attrs *tree.Attrs, indices []int, node, skip int) []int {
	var out []int
	for _, idx := range indices {
		if idx == skip {
			continue
		}
		if attrs.Ranges[idx].Body.Contains(node) {
			continue
		}
		out = append(out, idx)
	}
	return out
}
