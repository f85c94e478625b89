package hotwire

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// sectionFromProfile places a closed cut-plane polyline at a station without
// further transformation.
func sectionFromProfile(pts []Point, station float64) *PositionedCrossSection {
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = Point3{X: p.X, Y: station, Z: p.Y}
	}
	return &PositionedCrossSection{Placement: Placement{Station: station, Chord: 1}, Points: out}
}

func positionedNACA(t *testing.T, chord, station float64) *PositionedCrossSection {
	t.Helper()
	c, err := Normalize(naca0012(50).Raw(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	sec, err := Transform(c, Placement{Station: station, Chord: chord}, SpanRange{0, 48}, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	return sec
}

func distanceToPolyline(p Point, pts []Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		d, _ := Line{pts[i-1], pts[i]}.Nearest(p)
		best = min(best, d)
	}
	return math.Sqrt(best)
}

func TestOffsetDistance(t *testing.T) {
	sec := positionedNACA(t, 12, 0)
	const kerf = 0.032
	off, err := Offset(sec, kerf)
	if err != nil {
		t.Fatal(err)
	}
	if off.Source != sec || off.Kerf != kerf {
		t.Error("offset does not record its provenance")
	}
	if off.Points[0] != off.Points[len(off.Points)-1] {
		t.Error("offset is not closed")
	}
	profile := sec.Profile()
	for i, p := range off.Points {
		d := distanceToPolyline(p, profile)
		if d > kerf/2*(1+1e-9) {
			t.Fatalf("vertex %d is %g from the profile, more than %g", i, d, kerf/2)
		}
		// The trailing edge is a corner, where the averaged normal cuts it
		// short.
		if p.X < 0.95*12 && d < 0.95*kerf/2 {
			t.Fatalf("vertex %d is %g from the profile, want %g", i, d, kerf/2)
		}
	}
	if n := selfIntersections(off.Points); n != 0 {
		t.Errorf("offset has %d self-intersections", n)
	}
}

func TestOffsetAreaMonotonic(t *testing.T) {
	sec := positionedNACA(t, 12, 0)
	prev := math.Abs(SignedArea(sec.Profile()))
	for _, kerf := range []float64{0.01, 0.02, 0.032, 0.045, 0.08, 0.16} {
		off, err := Offset(sec, kerf)
		if err != nil {
			t.Fatalf("kerf %g: %v", kerf, err)
		}
		area := math.Abs(off.Area())
		if area <= prev {
			t.Errorf("kerf %g: area %g does not exceed %g", kerf, area, prev)
		}
		if n := selfIntersections(off.Points); n != 0 {
			t.Errorf("kerf %g: %d self-intersections", kerf, n)
		}
		prev = area
	}
}

func TestOffsetLeadingEdgeTooTight(t *testing.T) {
	// NACA 0012 at unit chord has a leading-edge radius of 1.1019·0.12².
	sec := positionedNACA(t, 1, 7)
	const radius = 1.1019 * 0.12 * 0.12

	if _, err := Offset(sec, 0.02); err != nil {
		t.Fatalf("kerf below twice the radius: %v", err)
	}

	_, err := Offset(sec, 0.05)
	var doe *DegenerateOffsetError
	if !errors.As(err, &doe) {
		t.Fatalf("got error %v, want *DegenerateOffsetError", err)
	}
	if !errors.Is(err, ErrDegenerateOffset) {
		t.Error("error does not match ErrDegenerateOffset")
	}
	if math.Abs(doe.Radius-radius) > 0.25*radius {
		t.Errorf("estimated radius %g, want about %g", doe.Radius, radius)
	}
	if doe.Station != 7 || doe.Kerf != 0.05 {
		t.Errorf("error reports station %g and kerf %g", doe.Station, doe.Kerf)
	}
	if msg := err.Error(); !strings.Contains(msg, "leading-edge radius of curvature") || !strings.Contains(msg, "< kerf/2 0.025") {
		t.Errorf("unhelpful message %q", msg)
	}
}

// notchedDisk returns a unit disk sampled counter-clockwise from (1, 0), with
// a V-shaped notch cut into its bottom. The notch flanks are sampled densely
// so that their offsets are straight.
func notchedDisk() (pts []Point, a, tip, b Point) {
	const n = 200
	circle := func(i int) Point {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / n)
		return Pt(cos, sin)
	}
	a, tip, b = circle(140), Pt(0, -0.5), circle(160)
	for i := 0; i <= 140; i++ {
		pts = append(pts, circle(i))
	}
	for k := 1; k < 20; k++ {
		pts = append(pts, a.Lerp(tip, float64(k)/20))
	}
	pts = append(pts, tip)
	for k := 1; k < 20; k++ {
		pts = append(pts, tip.Lerp(b, float64(k)/20))
	}
	for i := 160; i < n; i++ {
		pts = append(pts, circle(i))
	}
	return append(pts, pts[0]), a, tip, b
}

func TestOffsetTrimsConcaveCorner(t *testing.T) {
	pts, a, tip, b := notchedDisk()
	const kerf = 0.2
	off, err := Offset(sectionFromProfile(pts, 0), kerf)
	if err != nil {
		t.Fatal(err)
	}
	if off.Trimmed == 0 {
		t.Fatal("expected the notch to be trimmed")
	}
	if n := selfIntersections(off.Points); n != 0 {
		t.Errorf("trimmed offset has %d self-intersections", n)
	}

	shift := func(l Line) Line {
		d := l.P1.Sub(l.P0).Normalize()
		n := Vec(d.Y, -d.X).Mul(kerf / 2)
		return Line{l.P0.Translate(n), l.P1.Translate(n)}
	}
	want, ok := shift(Line{a, tip}).CrossingPoint(shift(Line{tip, b}))
	if !ok {
		t.Fatal("notch flanks are parallel")
	}
	best := math.Inf(1)
	for _, p := range off.Points {
		best = min(best, p.Distance(want))
	}
	if best > 1e-9 {
		t.Errorf("no vertex at the exact crossing %v of the offset flanks (closest %g)", want, best)
	}
}

func TestTrimLoops(t *testing.T) {
	loop := []Point{{0, 0}, {10, 0}, {10, 10}, {4, 10}, {4, 11}, {5, 11}, {5, 9}, {0, 10}}
	got, n := trimLoops(loop)
	diff(t, 1, n)
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}, {5, 10}, {5, 9}, {0, 10}}, got, cmpopts.EquateApprox(0, 1e-12))
	diff(t, []Point{{0, 0}, {10, 0}, {10, 10}, {4, 10}, {4, 11}, {5, 11}, {5, 9}, {0, 10}}, loop)

	// The seam sits inside the removed loop and is replaced by the crossing.
	rotated := []Point{{4, 11}, {5, 11}, {5, 9}, {0, 10}, {0, 0}, {10, 0}, {10, 10}, {4, 10}}
	got, n = trimLoops(rotated)
	diff(t, 1, n)
	diff(t, []Point{{5, 10}, {5, 9}, {0, 10}, {0, 0}, {10, 0}, {10, 10}}, got, cmpopts.EquateApprox(0, 1e-12))
}

func TestOffsetErrors(t *testing.T) {
	sec := positionedNACA(t, 12, 0)
	for _, kerf := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Offset(sec, kerf); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("kerf %g: got error %v", kerf, err)
		}
	}

	flat := sectionFromProfile([]Point{{0, 0}, {1, 0}, {2, 0}, {0, 0}}, 3)
	var doe *DegenerateOffsetError
	if _, err := Offset(flat, 0.1); !errors.As(err, &doe) {
		t.Errorf("got error %v, want *DegenerateOffsetError", err)
	}
}

func TestFitCircle(t *testing.T) {
	var pts []Point
	for i := range 7 {
		sin, cos := math.Sincos(0.1 * float64(i))
		pts = append(pts, Pt(5+0.3*cos, -2+0.3*sin))
	}
	r, ok := fitCircle(pts)
	if !ok || math.Abs(r-0.3) > 1e-9 {
		t.Errorf("got radius %g (%t), want 0.3", r, ok)
	}
	if _, ok := fitCircle([]Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}); ok {
		t.Error("fitted a circle to collinear points")
	}
	if r := mengerRadius(Pt(1, 0), Pt(0, 1), Pt(-1, 0)); math.Abs(r-1) > 1e-12 {
		t.Errorf("got Menger radius %g, want 1", r)
	}
}
