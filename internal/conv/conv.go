// Package conv provides safe integer conversion helpers for the content
// model compiler and its automata.
//
// These functions perform bounds checking before narrowing integer
// conversions to prevent silent overflow. They panic on overflow since
// this indicates a programming error (e.g. more positions than a
// compiled table can index).
package conv

import "math"

// IntToInt32 safely converts an int to int32.
// Panics if n is outside int32's range — a position count no real
// content model reaches, but the automaton's StateID is int32-width and
// a silent wraparound there would misroute a transition rather than
// fail loudly.
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}
