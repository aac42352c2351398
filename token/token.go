// Package token splits a validation string into the whitespace/comma
// separated words a compiled automaton's Cursor consumes one at a time.
package token

import "github.com/coregx/ahocorasick"

// delimiters is the fixed separator set: comma and ASCII whitespace.
var delimiters = []string{",", " ", "\t", "\n", "\r"}

// Tokenizer finds delimiter runs in a string via a single Aho-Corasick
// automaton built once over the delimiter set, the same multi-pattern
// search the engine itself runs over literal alternations.
type Tokenizer struct {
	auto *ahocorasick.Automaton
}

// New builds a Tokenizer. The delimiter set is fixed, so this never
// fails in practice, but Build's error is still surfaced rather than
// swallowed.
func New() (*Tokenizer, error) {
	builder := ahocorasick.NewBuilder()
	for _, d := range delimiters {
		builder.AddPattern([]byte(d))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Tokenizer{auto: auto}, nil
}

// Split returns s's whitespace/comma-separated words in order. Runs of
// consecutive separators collapse: no empty tokens are produced, and
// leading or trailing separators contribute none either.
func (t *Tokenizer) Split(s string) []string {
	data := []byte(s)
	var tokens []string

	pos := 0
	for pos <= len(data) {
		m := t.auto.Find(data, pos)
		if m == nil {
			if pos < len(data) {
				tokens = append(tokens, string(data[pos:]))
			}
			break
		}
		if m.Start > pos {
			tokens = append(tokens, string(data[pos:m.Start]))
		}
		pos = m.End
	}
	return tokens
}
