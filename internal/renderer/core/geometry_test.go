package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	if !r.Contains(NewPos(2, 3)) || !r.Contains(NewPos(5, 4)) {
		t.Error("corners inside should be contained")
	}
	if r.Contains(NewPos(6, 3)) || r.Contains(NewPos(2, 5)) {
		t.Error("exclusive edges should not be contained")
	}
}

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got := a.Intersection(b)
	want := NewRect(5, 5, 5, 5)
	if !got.Equals(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !a.Intersection(NewRect(20, 20, 5, 5)).IsEmpty() {
		t.Error("disjoint rects intersect empty")
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(5, 5, 2, 2)
	got := a.Union(b)
	want := NewRect(0, 0, 7, 7)
	if !got.Equals(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !a.Union(Rect{}).Equals(a) {
		t.Error("union with empty is identity")
	}
}

func TestRectInsetTranslate(t *testing.T) {
	r := NewRect(1, 1, 6, 4).Inset(1)
	if !r.Equals(NewRect(2, 2, 4, 2)) {
		t.Errorf("inset = %+v", r)
	}
	if !r.Translate(3, -1).Equals(NewRect(5, 1, 4, 2)) {
		t.Error("translate")
	}
}

func TestPosBefore(t *testing.T) {
	if !NewPos(5, 1).Before(NewPos(0, 2)) {
		t.Error("row ordering wins")
	}
	if !NewPos(1, 2).Before(NewPos(3, 2)) {
		t.Error("column breaks ties")
	}
	if NewPos(3, 2).Before(NewPos(3, 2)) {
		t.Error("equal positions are not before each other")
	}
}
