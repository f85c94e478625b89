package hotwire

import (
	"testing"
)

func TestRectUnion(t *testing.T) {
	r := Rect{0, 0, 10, 5}
	diff(t, Rect{-1, 0, 10, 7}, r.Union(Rect{-1, 2, 3, 7}))
	diff(t, Rect{0, -2, 10, 5}, r.UnionPoint(Pt(4, -2)))
	diff(t, Rect{-1, -0.5, 11, 5.5}, r.Inflate(1, 0.5))
	if r.Width() != 10 || r.Height() != 5 {
		t.Errorf("got %g×%g, want 10×5", r.Width(), r.Height())
	}
}

func TestBoundingBox(t *testing.T) {
	diff(t, Rect{}, BoundingBox(nil))
	diff(t, Rect{-1, -2, 3, 4}, BoundingBox([]Point{{0, 0}, {3, -2}, {-1, 4}, {2, 1}}))
}
