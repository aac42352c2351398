package interleave

import (
	"testing"

	"github.com/go-cmv/cmv/tree"
)

func buildInterleaveModel(t *testing.T, fn func(b *tree.ReversePolishDriver)) *tree.Node {
	t.Helper()
	b := tree.NewReversePolishDriver()
	fn(b)
	root, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := tree.Check(root); err != nil {
		t.Fatalf("Check: %v", err)
	}
	return root
}

func TestInterleaveAllRequiredInAnyOrder(t *testing.T) {
	// a & b & c
	root := buildInterleaveModel(t, func(b *tree.ReversePolishDriver) {
		b.All()
		b.Symbol("a")
		b.Symbol("b")
		b.Symbol("c")
		b.Pop()
	})
	dfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCursor(dfa)
	for _, sym := range []string{"c", "a", "b"} {
		if !c.Step(sym) {
			t.Fatalf("unexpected rejection of %q", sym)
		}
	}
	if !c.Accepting() {
		t.Fatal("expected acceptance after consuming all three in any order")
	}
}

func TestInterleaveRejectsRepeat(t *testing.T) {
	root := buildInterleaveModel(t, func(b *tree.ReversePolishDriver) {
		b.All()
		b.Symbol("a")
		b.Symbol("b")
		b.Pop()
	})
	dfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCursor(dfa)
	if !c.Step("a") {
		t.Fatal("unexpected rejection of first 'a'")
	}
	if c.Step("a") {
		t.Fatal("expected rejection of repeated 'a'")
	}
	if c.Valid() {
		t.Fatal("expected cursor to be dead after repeated symbol")
	}
}

func TestInterleaveOptionalChildMaySkip(t *testing.T) {
	// a & b?
	root := buildInterleaveModel(t, func(b *tree.ReversePolishDriver) {
		b.All()
		b.Symbol("a")
		b.Opt()
		b.Symbol("b")
		b.Pop()
	})
	dfa, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := NewCursor(dfa)
	if !c.Step("a") {
		t.Fatal("unexpected rejection of 'a'")
	}
	if !c.Accepting() {
		t.Fatal("expected acceptance with optional 'b' skipped")
	}
}

func TestInterleaveDuplicateSymbolRejected(t *testing.T) {
	root := buildInterleaveModel(t, func(b *tree.ReversePolishDriver) {
		b.All()
		b.Symbol("a")
		b.Symbol("a")
		b.Pop()
	})
	if _, err := Build(root); err == nil {
		t.Fatal("expected ambiguity error for duplicate interleave symbol")
	}
}
