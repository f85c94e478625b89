package hotwire

import (
	"gonum.org/v1/gonum/floats"
)

// Winding is the rotational sense in which a closed curve is traversed, in
// the y-up frame of the cutting plane.
type Winding int

const (
	Clockwise Winding = -1
	// CounterClockwise is the Selig ordering: trailing edge, upper surface,
	// leading edge, lower surface.
	CounterClockwise Winding = 1
)

func (w Winding) String() string {
	switch w {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "undetermined"
	}
}

// WindingOf returns the winding of a polygon with the given signed area, or 0
// if the area is zero or NaN.
func WindingOf(signedArea float64) Winding {
	switch {
	case signedArea > 0:
		return CounterClockwise
	case signedArea < 0:
		return Clockwise
	default:
		return 0
	}
}

// SignedArea returns the signed area enclosed by the polygon through pts,
// positive for counter-clockwise polygons. A repeated closing point is
// allowed and contributes nothing.
func SignedArea(pts []Point) float64 {
	var area float64
	for i := range pts {
		area += Line{pts[i], pts[(i+1)%len(pts)]}.SignedArea()
	}
	return area
}

// Perimeter returns the length of the closed polygon through pts.
func Perimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	arc := cumulativeArclen(pts)
	closing := pts[len(pts)-1].Distance(pts[0])
	return arc[len(arc)-1] + closing
}

// cumulativeArclen returns the distance along the open polyline pts at every
// vertex, starting at 0.
func cumulativeArclen(pts []Point) []float64 {
	arc := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		arc[i] = pts[i].Distance(pts[i-1])
	}
	return floats.CumSum(arc, arc)
}

// reversedLoop returns the closed polyline pts traversed in the opposite
// direction, keeping pts[0] as the first and last point.
func reversedLoop(pts []Point) []Point {
	out := make([]Point, len(pts))
	n := len(pts) - 1
	out[0] = pts[0]
	for i := 1; i <= n; i++ {
		out[i] = pts[n-i]
	}
	out[n] = pts[0]
	return out
}

// farthestFrom returns the index of the point in pts farthest from origin.
// Ties go to the lowest index.
func farthestFrom(pts []Point, origin Point) int {
	best, bestDist := 0, -1.0
	for i, p := range pts {
		if d := p.DistanceSquared(origin); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// BoundingBox returns the smallest rectangle containing pts.
func BoundingBox(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{X0: pts[0].X, Y0: pts[0].Y, X1: pts[0].X, Y1: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.UnionPoint(p)
	}
	return r
}

// firstCrossing finds the first pair of non-adjacent edges i < j of the
// closed polygon pts (given without a repeated closing point) that share a
// point. Edge i runs from pts[i] to pts[i+1].
func firstCrossing(pts []Point) (i, j int, hit LineIntersection, ok bool) {
	n := len(pts)
	for i := 0; i < n; i++ {
		ei := Line{pts[i], pts[(i+1)%n]}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if hit, ok := ei.Intersect(Line{pts[j], pts[(j+1)%n]}); ok {
				return i, j, hit, true
			}
		}
	}
	return 0, 0, LineIntersection{}, false
}
