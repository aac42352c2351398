package position

import "github.com/go-cmv/cmv/errs"

// Infinite is the sentinel Max value meaning "no upper bound", the
// position-package analogue of the teacher's DeadState/MaxStateID
// sentinel-constant idiom (dfa/onepass/transition.go).
const Infinite = -1

// Limits holds the (min, max) pair of a counted range [m,n]. Max ==
// Infinite means unbounded.
type Limits struct {
	Min int
	Max int
}

// NewLimits validates and constructs a Limits pair. Fails with
// errs.BadLimits if min < 0, or max is finite and min > max.
func NewLimits(min, max int) (Limits, error) {
	if min < 0 {
		return Limits{}, errs.BadLimits(min, max, "min must be >= 0")
	}
	if max != Infinite && max < min {
		return Limits{}, errs.BadLimits(min, max, "max must be >= min or unbounded")
	}
	return Limits{Min: min, Max: max}, nil
}

// IsInfinite reports whether the upper bound is unbounded.
func (l Limits) IsInfinite() bool {
	return l.Max == Infinite
}

// Reduction names the operator a [min,max] pair collapses to, per
// spec.md §4.1's reduction table.
type Reduction int

const (
	// ReductionNone: no applicable collapse; build a true Range node.
	ReductionNone Reduction = iota
	// ReductionOpt: [0,1] -> '?'.
	ReductionOpt
	// ReductionStar: [0,inf] -> '*'.
	ReductionStar
	// ReductionPlus: [1,inf] -> '+'.
	ReductionPlus
	// ReductionNeutral: [1,1] -> neutral (identity, no-op wrapper).
	ReductionNeutral
)

// Reduce classifies l against the operator-reduction table in spec.md
// §4.1: [0,1] -> ?, [0,inf] -> *, [1,inf] -> +, [1,1] -> neutral,
// anything else stays a true counted range.
func (l Limits) Reduce() Reduction {
	switch {
	case l.Min == 0 && l.Max == 1:
		return ReductionOpt
	case l.Min == 0 && l.IsInfinite():
		return ReductionStar
	case l.Min == 1 && l.IsInfinite():
		return ReductionPlus
	case l.Min == 1 && l.Max == 1:
		return ReductionNeutral
	default:
		return ReductionNone
	}
}
