package position

// Counter is the runtime state of one counted range. Counters live in
// validation state (a Cursor), never in the compiled automaton, per
// spec.md §3.
type Counter struct {
	limits Limits
	count  int
}

// NewCounter creates a zeroed counter for the given limits.
func NewCounter(limits Limits) Counter {
	return Counter{limits: limits}
}

// Init sets the counter to 1, the state on entering the range for the
// first time.
func (c *Counter) Init() {
	c.count = 1
}

// Increment advances the counter by one and reports whether it is still
// within range: succeeds iff the new count is <= max (or max is
// unbounded).
func (c *Counter) Increment() bool {
	c.count++
	return c.limits.IsInfinite() || c.count <= c.limits.Max
}

// Check reports whether the current count satisfies [min, max].
func (c *Counter) Check() bool {
	if c.count < c.limits.Min {
		return false
	}
	return c.limits.IsInfinite() || c.count <= c.limits.Max
}

// Reset zeros the counter.
func (c *Counter) Reset() {
	c.count = 0
}

// Count returns the current count, for tests and diagnostics.
func (c Counter) Count() int {
	return c.count
}
