package hotwire

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// OffsetCurve is the path of the wire's centerline that leaves the net
// profile of its source section standing after the kerf is burned away.
//
// Points is closed, with the last point repeating Points[0], and Points[0]
// lies on the trailing edge. The polygon has no self-intersections.
type OffsetCurve struct {
	Points []Point
	// Kerf is the full kerf width the curve was offset by; every point lies
	// Kerf/2 outside the source profile.
	Kerf   float64
	Source *PositionedCrossSection
	// Trimmed counts the loops removed while trimming.
	Trimmed int
}

// Station returns the span station of the source section.
func (c *OffsetCurve) Station() float64 {
	return c.Source.Station
}

// Area returns the signed area enclosed by the curve.
func (c *OffsetCurve) Area() float64 {
	return SignedArea(c.Points)
}

// Offset computes the wire path for sec when burning a kerf of width kerf.
//
// Every vertex moves kerf/2 along its outward normal, estimated from a
// central difference of its neighbours. Loops formed where the offset folds
// over itself are collapsed to the crossing point. Offset fails with a
// [*DegenerateOffsetError] if the leading edge is tighter than kerf/2 or if
// the offset collapses.
func Offset(sec *PositionedCrossSection, kerf float64) (*OffsetCurve, error) {
	if !(kerf > 0) || math.IsInf(kerf, 0) {
		return nil, fmt.Errorf("%w: kerf %g must be positive and finite", ErrInvalidConfig, kerf)
	}
	degenerate := func(radius float64, format string, args ...any) error {
		return &DegenerateOffsetError{
			Station: sec.Station,
			Kerf:    kerf,
			Radius:  radius,
			Reason:  fmt.Sprintf(format, args...),
		}
	}

	profile := sec.Profile()
	pts := profile[:len(profile)-1]
	n := len(pts)
	if n < 3 {
		return nil, degenerate(0, "section has only %d vertices", n)
	}
	srcArea := SignedArea(pts)
	winding := WindingOf(srcArea)
	if winding == 0 {
		return nil, degenerate(0, "section encloses no area")
	}

	half := kerf / 2
	le := farthestFrom(pts, pts[0])
	if r := leadingEdgeRadius(pts, le); r < half {
		return nil, degenerate(r, "leading-edge radius of curvature")
	}

	raw := make([]Point, n)
	for i := range pts {
		t := pts[(i+1)%n].Sub(pts[(i+n-1)%n])
		if t.Hypot2() == 0 {
			return nil, degenerate(0, "vertex %d has no tangent", i)
		}
		t = t.Normalize()
		// The outward side is to the right of travel for a counter-clockwise
		// loop and to the left for a clockwise one.
		normal := Vec(t.Y, -t.X).Mul(float64(winding))
		raw[i] = pts[i].Translate(normal.Mul(half))
	}

	trimmed, loops := trimLoops(raw)
	if len(trimmed) < 3 {
		return nil, degenerate(0, "offset collapsed to %d vertices", len(trimmed))
	}
	if area := SignedArea(trimmed); math.Abs(area) <= math.Abs(srcArea) || WindingOf(area) != winding {
		return nil, degenerate(0, "offset area %.6g does not exceed source area %.6g", math.Abs(area), math.Abs(srcArea))
	}

	Logger().Debug("kerf offset",
		"station", sec.Station,
		"kerf", kerf,
		"vertices", len(trimmed),
		"trimmed_loops", loops)

	return &OffsetCurve{
		Points:  append(trimmed, trimmed[0]),
		Kerf:    kerf,
		Source:  sec,
		Trimmed: loops,
	}, nil
}

// leadingEdgeRadius estimates the radius of curvature at pts[le] with a
// least-squares circle through the vertices around it.
func leadingEdgeRadius(pts []Point, le int) float64 {
	n := len(pts)
	k := max(2, n/400)
	if 2*k+1 > n {
		k = (n - 1) / 2
	}
	window := make([]Point, 0, 2*k+1)
	for i := -k; i <= k; i++ {
		window = append(window, pts[(le+i+n)%n])
	}
	if r, ok := fitCircle(window); ok {
		return r
	}
	return mengerRadius(window[0], window[k], window[2*k])
}

// fitCircle fits x² + y² + Dx + Ey + F = 0 to pts in the least-squares sense
// and returns the circle's radius. Coordinates are centred on the mean
// point first to keep the system well conditioned.
func fitCircle(pts []Point) (float64, bool) {
	if len(pts) < 3 {
		return 0, false
	}
	var c Vec2
	for _, p := range pts {
		c = c.Add(Vec2(p))
	}
	c = c.Mul(1 / float64(len(pts)))

	a := mat.NewDense(len(pts), 3, nil)
	b := mat.NewVecDense(len(pts), nil)
	for i, p := range pts {
		d := Vec2(p).Sub(c)
		a.Set(i, 0, d.X)
		a.Set(i, 1, d.Y)
		a.Set(i, 2, 1)
		b.SetVec(i, -d.Hypot2())
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return 0, false
	}
	d, e, f := x.AtVec(0), x.AtVec(1), x.AtVec(2)
	r2 := (d*d+e*e)/4 - f
	if !(r2 > 0) || math.IsInf(r2, 0) {
		return 0, false
	}
	return math.Sqrt(r2), true
}

// mengerRadius returns the radius of the circle through three points, or
// +Inf if they are collinear.
func mengerRadius(a, b, c Point) float64 {
	cross := b.Sub(a).Cross(c.Sub(a))
	if cross == 0 {
		return math.Inf(1)
	}
	return a.Distance(b) * b.Distance(c) * c.Distance(a) / (2 * math.Abs(cross))
}

// trimLoops removes self-intersections from the closed polygon pts (given
// without a repeated closing point). Whenever two non-adjacent edges cross,
// the smaller of the two loops they split the polygon into is replaced by
// the exact crossing point and the scan starts over. Vertex 0 is kept first
// unless it is inside a removed loop, in which case the crossing point
// takes its place.
func trimLoops(pts []Point) ([]Point, int) {
	pts = append([]Point(nil), pts...)
	var loops int
	for len(pts) >= 3 {
		i, j, hit, ok := firstCrossing(pts)
		if !ok {
			break
		}
		n := len(pts)
		x := Line{pts[i], pts[i+1]}.Eval(hit.T)
		inner := append([]Point{x}, pts[i+1:j+1]...)
		outer := make([]Point, 0, n-(j-i)+1)
		outer = append(outer, pts[:i+1]...)
		outer = append(outer, x)
		outer = append(outer, pts[j+1:]...)
		if math.Abs(SignedArea(inner)) <= math.Abs(SignedArea(outer)) {
			pts = outer
		} else {
			pts = inner
		}
		loops++
	}
	return pts, loops
}
