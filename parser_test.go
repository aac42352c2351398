package cmv

import (
	"testing"

	"github.com/go-cmv/cmv/tree"
)

func parseToRoot(t *testing.T, expr string) *tree.Node {
	t.Helper()
	d := tree.NewDirectDriver()
	if err := parseExpression(expr, d); err != nil {
		t.Fatalf("parseExpression(%q): %v", expr, err)
	}
	root, err := d.Build()
	if err != nil {
		t.Fatalf("Build(%q): %v", expr, err)
	}
	return root
}

func TestParseSimpleConcat(t *testing.T) {
	root := parseToRoot(t, "a,b,c")
	if root.Kind != tree.KindConcat || len(root.Children) != 3 {
		t.Fatalf("got %v with %d children, want Concat/3", root.Kind, len(root.Children))
	}
}

func TestParseGroupingAndQuantifiers(t *testing.T) {
	root := parseToRoot(t, "(a|b)+,c?")
	if root.Kind != tree.KindConcat || len(root.Children) != 2 {
		t.Fatalf("got %v with %d children, want Concat/2", root.Kind, len(root.Children))
	}
	if root.Children[0].Kind != tree.KindPlus {
		t.Fatalf("first child kind = %v, want Plus", root.Children[0].Kind)
	}
	if root.Children[0].Children[0].Kind != tree.KindAlt {
		t.Fatalf("plus child kind = %v, want Alt", root.Children[0].Children[0].Kind)
	}
	if root.Children[1].Kind != tree.KindOpt {
		t.Fatalf("second child kind = %v, want Opt", root.Children[1].Kind)
	}
}

func TestParseCaretClosesGroup(t *testing.T) {
	root := parseToRoot(t, "(a,b^,c")
	if root.Kind != tree.KindConcat || len(root.Children) != 2 {
		t.Fatalf("got %v with %d children, want Concat/2", root.Kind, len(root.Children))
	}
	if root.Children[0].Kind != tree.KindConcat {
		t.Fatalf("first child kind = %v, want Concat (a,b)", root.Children[0].Kind)
	}
}

func TestParseCountedRangeToken(t *testing.T) {
	root := parseToRoot(t, "a[2,4]")
	if root.Kind != tree.KindRange {
		t.Fatalf("got %v, want Range", root.Kind)
	}
	if root.Limits.Min != 2 || root.Limits.Max != 4 {
		t.Fatalf("limits = [%d,%d], want [2,4]", root.Limits.Min, root.Limits.Max)
	}
}

func TestParseUnboundedRangeToken(t *testing.T) {
	root := parseToRoot(t, "a[1,*]")
	if root.Kind != tree.KindPlus {
		t.Fatalf("got %v, want Plus (reduction of [1,inf])", root.Kind)
	}
}

func TestParseInterleave(t *testing.T) {
	root := parseToRoot(t, "a&b&c")
	if root.Kind != tree.KindInterleave || len(root.Children) != 3 {
		t.Fatalf("got %v with %d children, want Interleave/3", root.Kind, len(root.Children))
	}
}

func TestParseBadRangeToken(t *testing.T) {
	d := tree.NewDirectDriver()
	if err := parseExpression("a[x,4]", d); err == nil {
		t.Fatal("expected error for non-integer range minimum")
	}
}
