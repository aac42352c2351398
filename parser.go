package cmv

import (
	"strconv"
	"strings"

	"github.com/go-cmv/cmv/errs"
	"github.com/go-cmv/cmv/tree"
)

// special reports whether r has a reserved meaning in the surface
// grammar and therefore cannot appear inside a bare symbol run.
func special(r rune) bool {
	switch r {
	case '(', ')', '^', '*', '+', '?', ',', '|', '&', '[', ']':
		return true
	default:
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}
}

// parseExpression scans text in the §6 surface grammar and drives b:
// '(' → Push, ')'/'^' → Pop, the six operator characters to their
// same-named builder call, a run of non-special characters to
// Symbol(s), and a bracketed "[m,n]" token — legal only right after an
// operand — to Range(m, n), with n = -1 standing for '*' (unbounded).
func parseExpression(text string, b tree.Builder) error {
	runes := []rune(text)
	i := 0
	n := len(runes)

	for i < n {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		case r == '(':
			b.Push()
			i++
		case r == ')' || r == '^':
			b.Pop()
			i++
		case r == '*':
			b.Star()
			i++
		case r == '+':
			b.Plus()
			i++
		case r == '?':
			b.Opt()
			i++
		case r == ',':
			b.And()
			i++
		case r == '|':
			b.Or()
			i++
		case r == '&':
			b.All()
			i++
		case r == '[':
			end, err := parseRange(runes, i, b)
			if err != nil {
				return err
			}
			i = end
		default:
			start := i
			for i < n && !special(runes[i]) {
				i++
			}
			b.Symbol(string(runes[start:i]))
		}
	}
	return nil
}

// parseRange parses a "[m,n]" token starting at the '[' index and
// applies it to b as a postfix Range, returning the index just past the
// closing ']'.
func parseRange(runes []rune, start int, b tree.Builder) (int, error) {
	i := start + 1
	n := len(runes)

	minStart := i
	for i < n && runes[i] != ',' {
		i++
	}
	if i >= n {
		return 0, errs.BadLimits(0, 0, "unterminated range token, expected ','")
	}
	minText := strings.TrimSpace(string(runes[minStart:i]))
	i++ // skip ','

	maxStart := i
	for i < n && runes[i] != ']' {
		i++
	}
	if i >= n {
		return 0, errs.BadLimits(0, 0, "unterminated range token, expected ']'")
	}
	maxText := strings.TrimSpace(string(runes[maxStart:i]))
	i++ // skip ']'

	min, err := strconv.Atoi(minText)
	if err != nil {
		return 0, errs.BadLimits(0, 0, "range minimum is not an integer: "+minText)
	}

	max := -1
	if maxText != "*" {
		max, err = strconv.Atoi(maxText)
		if err != nil {
			return 0, errs.BadLimits(min, 0, "range maximum is not an integer or '*': "+maxText)
		}
	}

	if err := b.Range(min, max); err != nil {
		return 0, err
	}
	return i, nil
}
