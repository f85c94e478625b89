package hotwire

import (
	"errors"
	"math"
	"sort"
)

// PeriodicSpline is a closed cubic interpolant through a loop of points. It
// is twice continuously differentiable everywhere, including across the
// point where the loop starts, and is parametrized by cumulative chord
// length: parameter t runs from 0 at the first point to Period at the first
// point again.
type PeriodicSpline struct {
	pts   []Point
	knots []float64 // len(pts)+1 entries, knots[0] = 0
	m     []Vec2    // second derivatives at the knots
	arc   []float64 // arc length at the knots
}

// NewPeriodicSpline fits a periodic spline through pts. The loop is closed
// implicitly; pts must not repeat its first point at the end, and
// consecutive points must be distinct.
func NewPeriodicSpline(pts []Point) (*PeriodicSpline, error) {
	n := len(pts)
	if n < 3 {
		return nil, errors.New("periodic spline needs at least 3 points")
	}
	h := make([]float64, n)
	knots := make([]float64, n+1)
	for i := range pts {
		h[i] = pts[(i+1)%n].Distance(pts[i])
		if !(h[i] > 0) {
			return nil, errors.New("periodic spline needs distinct consecutive points")
		}
		knots[i+1] = knots[i] + h[i]
	}

	// Continuity of the first derivative at every knot gives a cyclic
	// tridiagonal system in the second derivatives.
	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]Vec2, n)
	for i := range pts {
		prev := (i + n - 1) % n
		next := (i + 1) % n
		sub[i] = h[prev]
		diag[i] = 2 * (h[prev] + h[i])
		sup[i] = h[i]
		slope := pts[next].Sub(pts[i]).Mul(1 / h[i])
		prevSlope := pts[i].Sub(pts[prev]).Mul(1 / h[prev])
		rhs[i] = slope.Sub(prevSlope).Mul(6)
	}
	m := solveCyclic(sub, diag, sup, h[n-1], h[n-1], rhs)

	s := &PeriodicSpline{
		pts:   pts,
		knots: knots,
		m:     m,
		arc:   make([]float64, n+1),
	}
	for i := range n {
		s.arc[i+1] = s.arc[i] + s.segmentArclen(i, knots[i+1])
	}
	return s, nil
}

// solveTridiagonal solves a tridiagonal system with the Thomas algorithm.
// sub[0] and sup[n-1] are ignored.
func solveTridiagonal(sub, diag, sup []float64, rhs []Vec2) []Vec2 {
	n := len(diag)
	c := make([]float64, n)
	x := make([]Vec2, n)
	beta := diag[0]
	x[0] = rhs[0].Mul(1 / beta)
	for i := 1; i < n; i++ {
		c[i] = sup[i-1] / beta
		beta = diag[i] - sub[i]*c[i]
		x[i] = rhs[i].Sub(x[i-1].Mul(sub[i])).Mul(1 / beta)
	}
	for i := n - 2; i >= 0; i-- {
		x[i] = x[i].Sub(x[i+1].Mul(c[i+1]))
	}
	return x
}

// solveCyclic solves a tridiagonal system with the additional corner
// entries top (row 0, column n-1) and bottom (row n-1, column 0) using the
// Sherman-Morrison correction.
func solveCyclic(sub, diag, sup []float64, top, bottom float64, rhs []Vec2) []Vec2 {
	n := len(diag)
	gamma := -diag[0]
	bb := make([]float64, n)
	copy(bb, diag)
	bb[0] = diag[0] - gamma
	bb[n-1] = diag[n-1] - bottom*top/gamma
	x := solveTridiagonal(sub, bb, sup, rhs)

	u := make([]Vec2, n)
	u[0] = Vec(gamma, gamma)
	u[n-1] = Vec(bottom, bottom)
	z := solveTridiagonal(sub, bb, sup, u)

	// z was solved for the same scalar vector in both components, so either
	// component can be used.
	fx := (x[0].X + top*x[n-1].X/gamma) / (1 + z[0].X + top*z[n-1].X/gamma)
	fy := (x[0].Y + top*x[n-1].Y/gamma) / (1 + z[0].X + top*z[n-1].X/gamma)
	for i := range x {
		x[i].X -= fx * z[i].X
		x[i].Y -= fy * z[i].X
	}
	return x
}

// Period returns the parameter length of one loop.
func (s *PeriodicSpline) Period() float64 {
	return s.knots[len(s.knots)-1]
}

// Arclen returns the arc length of one loop.
func (s *PeriodicSpline) Arclen() float64 {
	return s.arc[len(s.arc)-1]
}

// Len returns the number of interpolated points.
func (s *PeriodicSpline) Len() int {
	return len(s.pts)
}

func (s *PeriodicSpline) wrap(t float64) float64 {
	p := s.Period()
	t = math.Mod(t, p)
	if t < 0 {
		t += p
	}
	return t
}

// segment returns the index of the segment containing t, which must lie in
// [0, Period).
func (s *PeriodicSpline) segment(t float64) int {
	i := sort.SearchFloat64s(s.knots, t)
	if i < len(s.knots) && s.knots[i] == t {
		return min(i, len(s.pts)-1)
	}
	return max(i-1, 0)
}

func (s *PeriodicSpline) coeffs(i int, t float64) (p0, p1 Point, m0, m1 Vec2, h, a, b float64) {
	j := (i + 1) % len(s.pts)
	h = s.knots[i+1] - s.knots[i]
	a = (s.knots[i+1] - t) / h
	b = 1 - a
	return s.pts[i], s.pts[j], s.m[i], s.m[j], h, a, b
}

func (s *PeriodicSpline) evalSegment(i int, t float64) Point {
	p0, p1, m0, m1, h, a, b := s.coeffs(i, t)
	lin := Vec2(p0).Mul(a).Add(Vec2(p1).Mul(b))
	curv := m0.Mul(a*a*a - a).Add(m1.Mul(b*b*b - b)).Mul(h * h / 6)
	return Point(lin.Add(curv))
}

func (s *PeriodicSpline) derivSegment(i int, t float64) Vec2 {
	p0, p1, m0, m1, h, a, b := s.coeffs(i, t)
	d := p1.Sub(p0).Mul(1 / h)
	return d.Sub(m0.Mul((3*a*a - 1) * h / 6)).Add(m1.Mul((3*b*b - 1) * h / 6))
}

func (s *PeriodicSpline) deriv2Segment(i int, t float64) Vec2 {
	_, _, m0, m1, _, a, b := s.coeffs(i, t)
	return m0.Mul(a).Add(m1.Mul(b))
}

// Eval evaluates the spline at parameter t. t is taken modulo Period.
func (s *PeriodicSpline) Eval(t float64) Point {
	t = s.wrap(t)
	return s.evalSegment(s.segment(t), t)
}

// Deriv returns the first derivative at t.
func (s *PeriodicSpline) Deriv(t float64) Vec2 {
	t = s.wrap(t)
	return s.derivSegment(s.segment(t), t)
}

// Curvature returns the signed curvature at t, positive where the curve
// turns counter-clockwise.
func (s *PeriodicSpline) Curvature(t float64) float64 {
	t = s.wrap(t)
	i := s.segment(t)
	d1 := s.derivSegment(i, t)
	d2 := s.deriv2Segment(i, t)
	speed := d1.Hypot()
	return d1.Cross(d2) / (speed * speed * speed)
}

// MaxCurvature returns the largest absolute curvature found by sampling
// every segment at perSegment interior points.
func (s *PeriodicSpline) MaxCurvature(perSegment int) float64 {
	var kmax float64
	for i := range s.pts {
		for k := range perSegment + 1 {
			t := s.knots[i] + (s.knots[i+1]-s.knots[i])*float64(k)/float64(perSegment+1)
			d1 := s.derivSegment(i, t)
			d2 := s.deriv2Segment(i, t)
			speed := d1.Hypot()
			kmax = max(kmax, math.Abs(d1.Cross(d2))/(speed*speed*speed))
		}
	}
	return kmax
}

// segmentArclen returns the arc length of segment i from its start to t.
func (s *PeriodicSpline) segmentArclen(i int, t float64) float64 {
	return integrate(func(u float64) float64 {
		return s.derivSegment(i, u).Hypot()
	}, s.knots[i], t)
}

// SolveForArclen returns the parameter at which the arc length measured
// from t=0 equals arclen. arclen is taken modulo the loop length.
func (s *PeriodicSpline) SolveForArclen(arclen float64, accuracy float64) float64 {
	total := s.Arclen()
	arclen = math.Mod(arclen, total)
	if arclen < 0 {
		arclen += total
	}
	i := sort.SearchFloat64s(s.arc, arclen)
	if i < len(s.arc) && s.arc[i] == arclen {
		return s.knots[i]
	}
	i = max(i-1, 0)
	rest := arclen - s.arc[i]
	segLen := s.arc[i+1] - s.arc[i]
	a, b := s.knots[i], s.knots[i+1]
	f := func(t float64) float64 {
		return s.segmentArclen(i, t) - rest
	}
	return SolveITP(f, a, b, accuracy, 1, 0.2/(b-a), -rest, segLen-rest)
}
