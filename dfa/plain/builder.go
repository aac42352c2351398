package plain

import (
	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/internal/conv"
	"github.com/go-cmv/cmv/position"
	"github.com/go-cmv/cmv/tree"
)

// Build compiles attrs into a DFA, rejecting the content model if any
// reachable state has two distinct positions sharing a symbol class —
// exactly the 1-ambiguity Brüggemann-Klein's construction is built to
// surface (two valid "next" positions for the same input token).
//
// Per spec.md §4.5, states are positions themselves (state 0 is the
// initial state, reached by consuming nothing): transitioning out of
// state 0 follows firstpos(root); transitioning out of state p (p>=1,
// meaning "position p was just consumed") follows followpos(p). A
// 1-unambiguous expression never needs subset construction to merge
// states — each position already denotes a unique reachable state by
// Brüggemann-Klein's theorem, which is exactly what the per-state
// symbol-collision check below verifies on compile.
func Build(attrs *tree.Attrs) (*DFA, error) {
	alphabet := NewAlphabet(attrs.Alphabet)
	stride := nextPowerOf2(alphabet.Len())
	if stride == 0 {
		stride = 1
	}
	stride2 := log2(stride)

	numStates := attrs.MaxPosition + 1
	table := make([]StateID, numStates*stride)
	for i := range table {
		table[i] = DeadState
	}

	accept := make([]bool, numStates)
	accept[0] = attrs.Nullable(attrs.Root)
	lastRoot := attrs.LastPos(attrs.Root)
	for p := 1; p < numStates; p++ {
		accept[p] = lastRoot.Contains(p)
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
		table:     table,
		alphabet:  alphabet,
		stride:    stride,
		stride2:   stride2,
		start:     0,
		numStates: numStates,
		accept:    accept,
	}, nil
}

// buildRow fills in state's row from candidates (firstpos(root) for
// state 0, followpos(state) otherwise), erroring out on ambiguity: two
// distinct candidate positions sharing a symbol class means the content
// model cannot be matched deterministically one token at a time.
func buildRow(table []StateID, stride int, alphabet *Alphabet, attrs *tree.Attrs, state int, candidates position.Set) error {
	base := state * stride
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
		table[base+class] = StateID(conv.IntToInt32(to))
	})
	return buildErr
}
