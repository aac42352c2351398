// Package errs defines the error taxonomy shared by every compilation and
// validation stage of a content model: BadLimits, AmbiguousContentModel,
// and MalformedTree. All three are compile-time (or builder-time) errors;
// step never returns one.
package errs

import "fmt"

// Kind classifies a content-model error into one of the three taxonomy
// buckets named in spec.md §7.
type Kind uint8

const (
	// KindBadLimits: a range [min,max] pair is not well-formed.
	KindBadLimits Kind = iota

	// KindAmbiguousContentModel: the compiled expression is not
	// 1-unambiguous, detected one of three ways (transition conflict,
	// range endpoint-pair collision, duplicate interleave symbol).
	KindAmbiguousContentModel

	// KindMalformedTree: a structural invariant on the syntax tree
	// failed (wrong child arity, misplaced interleave).
	KindMalformedTree
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindBadLimits:
		return "BadLimits"
	case KindAmbiguousContentModel:
		return "AmbiguousContentModel"
	case KindMalformedTree:
		return "MalformedTree"
	default:
		return fmt.Sprintf("UnknownKind(%d)", k)
	}
}

// Error is the concrete error type returned by every CMV compilation
// stage. Use errors.As to recover the Kind-specific fields, or
// errors.Is against one of the Err* sentinels below to test the kind.
type Error struct {
	Kind Kind

	// Message is a human-readable description, always set.
	Message string

	// Min, Max are populated for KindBadLimits.
	Min, Max int

	// Symbol is populated for KindAmbiguousContentModel when the
	// ambiguity is attributable to a specific symbol (transition
	// conflict or duplicate interleave symbol). Empty for range-pair
	// ambiguity, where Message carries the "range ambiguity" marker.
	Symbol string

	// NodeKind is populated for KindMalformedTree.
	NodeKind string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindBadLimits:
		return fmt.Sprintf("bad limits (min=%d, max=%d): %s", e.Min, e.Max, e.Message)
	case KindAmbiguousContentModel:
		if e.Symbol != "" {
			return fmt.Sprintf("ambiguous content model on symbol %q: %s", e.Symbol, e.Message)
		}
		return fmt.Sprintf("ambiguous content model: %s", e.Message)
	case KindMalformedTree:
		return fmt.Sprintf("malformed tree (%s): %s", e.NodeKind, e.Message)
	default:
		return e.Message
	}
}

// Is implements error comparison for errors.Is against one of the Err*
// sentinels, matching on Kind only (the way dfa/lazy.DFAError.Is does).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for errors.Is checks against kind alone.
var (
	ErrBadLimits             = &Error{Kind: KindBadLimits}
	ErrAmbiguousContentModel = &Error{Kind: KindAmbiguousContentModel}
	ErrMalformedTree         = &Error{Kind: KindMalformedTree}
)

// BadLimits constructs a KindBadLimits error for a malformed [min,max] pair.
func BadLimits(min, max int, message string) *Error {
	return &Error{Kind: KindBadLimits, Min: min, Max: max, Message: message}
}

// AmbiguousSymbol constructs a KindAmbiguousContentModel error attributed
// to a specific symbol (1-ambiguity or duplicate interleave symbol).
func AmbiguousSymbol(symbol, message string) *Error {
	return &Error{Kind: KindAmbiguousContentModel, Symbol: symbol, Message: message}
}

// AmbiguousRange constructs a KindAmbiguousContentModel error for a
// range endpoint-pair collision (no single symbol to blame).
func AmbiguousRange(message string) *Error {
	return &Error{Kind: KindAmbiguousContentModel, Message: message}
}

// Malformed constructs a KindMalformedTree error for a structural
// invariant violation on the given node kind.
func Malformed(nodeKind, message string) *Error {
	return &Error{Kind: KindMalformedTree, NodeKind: nodeKind, Message: message}
}
