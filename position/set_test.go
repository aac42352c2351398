package position

import "testing"

func TestSetAddContains(t *testing.T) {
	s := NewSet(8)
	s.Add(3)
	s.Add(70)
	if !s.Contains(3) || !s.Contains(70) {
		t.Fatal("expected both positions to be members")
	}
	if s.Contains(4) {
		t.Fatal("expected 4 to not be a member")
	}
	if s.Len() != 2 {
		t.Fatalf("expected Len()=2, got %d", s.Len())
	}
}

func TestSetUnion(t *testing.T) {
	a := NewSet(4)
	a.Add(1)
	b := NewSet(4)
	b.Add(2)
	b.Add(130)
	a.Union(b)
	for _, p := range []int{1, 2, 130} {
		if !a.Contains(p) {
			t.Fatalf("expected %d to be a member after union", p)
		}
	}
}

func TestSetEachAscending(t *testing.T) {
	s := NewSet(4)
	for _, p := range []int{64, 1, 200, 0} {
		s.Add(p)
	}
	var got []int
	s.Each(func(p int) { got = append(got, p) })
	want := []int{0, 1, 64, 200}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSetCloneIndependent(t *testing.T) {
	a := NewSet(4)
	a.Add(5)
	b := a.Clone()
	b.Add(9)
	if a.Contains(9) {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestSetEqual(t *testing.T) {
	a := NewSet(4)
	a.Add(5)
	b := NewSet(200)
	b.Add(5)
	if !a.Equal(b) {
		t.Fatal("sets with the same members but different capacity should be equal")
	}
}

func TestSetIntersects(t *testing.T) {
	a := NewSet(4)
	a.Add(1)
	a.Add(5)
	b := NewSet(200)
	b.Add(130)
	if a.Intersects(b) {
		t.Fatal("disjoint sets should not intersect")
	}
	b.Add(5)
	if !a.Intersects(b) {
		t.Fatal("sets sharing member 5 should intersect")
	}
}

func TestSetIsEmpty(t *testing.T) {
	s := NewSet(4)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	s.Add(0)
	if s.IsEmpty() {
		t.Fatal("set with one member should not be empty")
	}
}
