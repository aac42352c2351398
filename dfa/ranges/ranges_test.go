package ranges

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-cmv/cmv/tree"
)

func buildRangeModel(t *testing.T, min, max int) *tree.Attrs {
	t.Helper()
	b := tree.NewReversePolishDriver()
	if err := b.Range(min, max); err != nil {
		t.Fatalf("Range(%d,%d): %v", min, max, err)
	}
	b.Symbol("a")
	root, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := tree.Check(root); err != nil {
		t.Fatalf("Check: %v", err)
	}
	attrs, err := tree.Compute(root)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return attrs
}

func TestRangeAcceptsWithinBounds(t *testing.T) {
	attrs := buildRangeModel(t, 2, 3)
	dfa, err := Build(attrs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCursor(dfa)
	c.Step("a")
	if c.Accepting() {
		t.Fatal("one 'a' should not satisfy a{2,3}")
	}
	c.Step("a")
	if !c.Accepting() {
		t.Fatal("two 'a's should satisfy a{2,3}")
	}
	c.Step("a")
	if !c.Accepting() {
		t.Fatal("three 'a's should satisfy a{2,3}")
	}
	if c.Step("a") {
		t.Fatal("a fourth 'a' should exceed max=3")
	}
}

func TestRangeRejectsBelowMinAtEnd(t *testing.T) {
	attrs := buildRangeModel(t, 2, 4)
	dfa, err := Build(attrs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := NewCursor(dfa)
	c.Step("a")
	if c.Accepting() {
		t.Fatal("count=1 should not satisfy min=2")
	}
}

func TestRangeWithinConcat(t *testing.T) {
	// a{2,3},b
	b := tree.NewReversePolishDriver()
	b.And()
	if err := b.Range(2, 3); err != nil {
		t.Fatalf("Range: %v", err)
	}
	b.Symbol("a")
	b.Symbol("b")
	b.Pop()
	root, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	attrs, err := tree.Compute(root)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	dfa, err := Build(attrs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCursor(dfa)
	for _, sym := range []string{"a", "a", "b"} {
		if !c.Step(sym) {
			t.Fatalf("unexpected dead transition on %q", sym)
		}
	}
	if !c.Accepting() {
		t.Fatal("expected a,a,b to accept for a{2,3},b")
	}

	c2 := NewCursor(dfa)
	if !c2.Step("a") {
		t.Fatal("unexpected dead transition consuming 'a'")
	}
	if c2.Step("b") {
		t.Fatal("'b' should abort the transition: only one 'a' before exiting a{2,3}")
	}
	if c2.Valid() {
		t.Fatal("a failed range check must kill the cursor, per spec.md §4.6's execution actions")
	}

	// ValidNextSymbols is a []string, which is where a readable diff over
	// reflect.DeepEqual's bare boolean actually earns its keep.
	c3 := NewCursor(dfa)
	if diff := cmp.Diff([]string{"a"}, c3.ValidNextSymbols()); diff != "" {
		t.Fatalf("start state valid symbols mismatch (-want +got):\n%s", diff)
	}
	c3.Step("a")
	if diff := cmp.Diff([]string{"a"}, c3.ValidNextSymbols()); diff != "" {
		t.Fatalf("valid symbols after one 'a' mismatch (-want +got): 'b' has a live table transition but its range check fails with count=1 < min=2, so Valid(\"b\") is false and it must not be listed\n%s", diff)
	}

	c3.Step("a")
	if diff := cmp.Diff([]string{"a", "b"}, c3.ValidNextSymbols()); diff != "" {
		t.Fatalf("valid symbols after two 'a's mismatch (-want +got):\n%s", diff)
	}
}
