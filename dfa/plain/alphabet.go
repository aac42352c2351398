// Package plain implements the DFA compiler and cursor for ordinary
// content models: concatenation, alternation, and the unary ?/*/+
// operators, none of which need the run-time counters a counted range
// requires. It is the string-alphabet analogue of the teacher's
// dfa/onepass package — a dense table[state*stride+class] transition
// array — generalized from byte equivalence classes to symbol strings.
package plain

// Alphabet maps symbol strings to dense class indices [0, Len()), the
// string-keyed equivalent of the teacher's nfa.ByteClasses.
type Alphabet struct {
	classes map[string]int
	symbols []string
}

// NewAlphabet builds an Alphabet assigning classes in the given order.
func NewAlphabet(symbols []string) *Alphabet {
	a := &Alphabet{
		classes: make(map[string]int, len(symbols)),
		symbols: make([]string, len(symbols)),
	}
	for i, s := range symbols {
		a.classes[s] = i
		a.symbols[i] = s
	}
	return a
}

// Class returns the class index for symbol, and whether it is known.
func (a *Alphabet) Class(symbol string) (int, bool) {
	c, ok := a.classes[symbol]
	return c, ok
}

// Symbol returns the symbol string for a class index.
func (a *Alphabet) Symbol(class int) string {
	return a.symbols[class]
}

// Len returns the number of distinct classes.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}
