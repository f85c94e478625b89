package hotwire

import (
	"math"
)

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

// LineIntersection describes where two segments meet. T is the parameter on
// the receiver, U the parameter on the other segment.
type LineIntersection struct {
	T float64
	U float64
}

// Intersect reports whether the two segments share a point, and if so where.
// Parallel and coincident segments are reported as not intersecting; callers
// that trim polylines never produce coincident non-adjacent segments.
func (l Line) Intersect(o Line) (LineIntersection, bool) {
	const epsilon = 1e-12
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	det := ab.Cross(cd)
	scale := ab.Hypot() * cd.Hypot()
	if scale == 0 || math.Abs(det) <= epsilon*scale {
		return LineIntersection{}, false
	}
	ac := o.P0.Sub(l.P0)
	t := ac.Cross(cd) / det
	u := ac.Cross(ab) / det
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return LineIntersection{}, false
	}
	return LineIntersection{T: t, U: u}, true
}

// Nearest returns the squared distance from pt to the segment and the
// parameter of the closest point.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

// SignedArea is the segment's contribution to the area of a closed polygon
// by Green's theorem.
func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}
