// Package ranges implements the DFA compiler and cursor for content
// models containing a counted-range operator: it extends dfa/plain's
// dense transition table with per-range runtime counters, the way the
// teacher's dfa/lazy package extends dfa/onepass's table scheme with
// extra per-state bookkeeping (look-around resolution) that a plain
// byte DFA doesn't need.
package ranges

// Alphabet maps symbol strings to dense class indices, duplicated here
// rather than imported from dfa/plain to keep the two table compilers
// independent, the same way the teacher keeps dfa/onepass and dfa/lazy
// free of a shared table-layout dependency.
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

func nextPowerOf2(n int) int {
	if n <= 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func log2(n int) uint {
	if n <= 0 {
		return 0
	}
	var log uint
	for n > 1 {
		n >>= 1
		log++
	}
	return log
}
