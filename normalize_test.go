package hotwire

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizeClosed(t *testing.T) {
	cfg := testConfig()
	for _, sec := range []NACA4{
		naca0012(50),
		{Camber: 0.02, CamberPosition: 0.4, Thickness: 0.12, Points: 60},
		{Thickness: 0.09, Points: 40, OpenTrailingEdge: true},
	} {
		c, err := Normalize(sec.Raw(), cfg)
		if err != nil {
			t.Fatalf("%s: %v", sec.Name(), err)
		}
		n := c.Samples()
		if n < cfg.MinSamples || n > cfg.MaxSamples {
			t.Errorf("%s: %d samples outside [%d, %d]", sec.Name(), n, cfg.MinSamples, cfg.MaxSamples)
		}
		if c.Points[n] != c.Points[0] {
			t.Errorf("%s: first sample %v and last sample %v differ", sec.Name(), c.Points[0], c.Points[n])
		}
		if w := WindingOf(SignedArea(c.Points)); w != CounterClockwise {
			t.Errorf("%s: got winding %s", sec.Name(), w)
		}
		// Samples are a uniform arc step apart, so no chord is longer than
		// the step and together they nearly cover the arc length.
		step := c.Step()
		for i := range n {
			if d := c.Points[i].Distance(c.Points[i+1]); d > step*(1+1e-9) {
				t.Fatalf("%s: chord %d is %g for arc step %g", sec.Name(), i, d, step)
			}
		}
		if p := Perimeter(c.Points[:n]); p < c.Length*(1-1e-3) {
			t.Errorf("%s: polygon perimeter %g, arc length %g", sec.Name(), p, c.Length)
		}
	}
}

func TestNormalizeOrientation(t *testing.T) {
	cfg := testConfig()
	raw := naca0012(40).Raw()
	reversed := RawProfile{Name: raw.Name, Points: make([]Point, len(raw.Points))}
	for i, p := range raw.Points {
		reversed.Points[len(raw.Points)-1-i] = p
	}
	a, err := Normalize(raw, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize(reversed, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if WindingOf(SignedArea(b.Points)) != CounterClockwise {
		t.Error("reversed input was not reoriented")
	}
	// The upper surface comes first in both.
	if a.Points[1].Y <= 0 || b.Points[1].Y <= 0 {
		t.Errorf("expected upper surface first, got %v and %v", a.Points[1], b.Points[1])
	}
}

func TestNormalizeDoesNotMutate(t *testing.T) {
	raw := NACA4{Thickness: 0.12, Points: 30, OpenTrailingEdge: true}.Raw()
	before := append([]Point(nil), raw.Points...)
	if _, err := Normalize(raw, testConfig()); err != nil {
		t.Fatal(err)
	}
	diff(t, before, raw.Points)
}

// ellipse returns a smooth symmetric section of the given thickness,
// starting at its aft end.
func ellipse(thickness float64, n int) RawProfile {
	pts := make([]Point, n+1)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = Pt(0.5+0.5*cos, thickness/2*sin)
	}
	return RawProfile{Name: "ellipse", Points: pts}
}

func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		raw     RawProfile
		epsilon float64
	}{
		// The ends of a thin ellipse curve more sharply than a NACA nose.
		{ellipse(0.12, 90), 1e-5},
		{naca0012(80).Raw(), 1e-6},
	}
	for _, tt := range tests {
		cfg := testConfig()
		cfg.Samples = 2048
		first, err := Normalize(tt.raw, cfg)
		if err != nil {
			t.Fatal(err)
		}
		second, err := Normalize(RawProfile{Name: first.Name, Points: first.Points}, cfg)
		if err != nil {
			t.Fatal(err)
		}
		for i := range first.Points {
			if d := first.Points[i].Distance(second.Points[i]); d > tt.epsilon {
				t.Fatalf("%s: sample %d moved by %g", tt.raw.Name, i, d)
			}
		}
	}
}

func TestNormalizeTrailingEdgeModes(t *testing.T) {
	raw := NACA4{Thickness: 0.12, Points: 40, OpenTrailingEdge: true}.Raw()
	gapMid := raw.Points[0].Midpoint(raw.Points[len(raw.Points)-1])

	cfg := testConfig()
	cfg.TrailingEdge = TrailingEdgeSharp
	sharp, err := Normalize(raw, cfg)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, sharp.Points[0], gapMid, 1e-12)

	cfg.TrailingEdge = TrailingEdgeBlunt
	blunt, err := Normalize(raw, cfg)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, blunt.Points[0], gapMid, 1e-12)
	if blunt.Length <= sharp.Length {
		t.Errorf("blunt trailing edge should add the flat: %g <= %g", blunt.Length, sharp.Length)
	}
}

func TestNormalizeSampleCount(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 123
	c, err := Normalize(naca0012(40).Raw(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 124, len(c.Points))

	// A tighter tolerance needs more samples.
	loose := testConfig()
	loose.MicroTolerance = 1e-4
	tight := testConfig()
	tight.MicroTolerance = 1e-6
	tight.MaxSamples = 8192
	a, _ := Normalize(naca0012(40).Raw(), loose)
	b, _ := Normalize(naca0012(40).Raw(), tight)
	if a.Samples() >= b.Samples() {
		t.Errorf("tolerance 1e-4 gave %d samples, 1e-6 gave %d", a.Samples(), b.Samples())
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
	}{
		{"too few", []Point{{1, 0}, {0, 0}}},
		{"duplicates collapse", []Point{{1, 0}, {1, 0}, {0.5, 0}, {0.5, 0}}},
		{"open loop", []Point{{1, 0.2}, {0.5, 0.1}, {0, 0}, {0.5, -0.1}, {1, -0.2}}},
		{"no area", []Point{{1, 0}, {0.5, 0}, {0, 0}, {0.5, 0}, {1, 0}}},
		{"not unit chord", []Point{{12, 0}, {6, 0.7}, {0, 0}, {6, -0.7}, {12, 0}}},
		{"not finite", []Point{{1, 0}, {0.5, math.NaN()}, {0, 0}, {0.5, -0.06}, {1, 0}}},
		{"figure eight", []Point{{1, 0}, {0.6, 0.1}, {0.3, -0.1}, {0, 0}, {0.3, 0.1}, {0.6, -0.1}, {1, 0}}},
	}
	for _, tt := range tests {
		_, err := Normalize(RawProfile{Name: tt.name, Points: tt.points}, testConfig())
		var mpe *MalformedProfileError
		if !errors.As(err, &mpe) {
			t.Errorf("%s: got error %v, want *MalformedProfileError", tt.name, err)
			continue
		}
		if mpe.Profile != tt.name {
			t.Errorf("%s: error names profile %q", tt.name, mpe.Profile)
		}
	}
}

func TestNormalizeSelfCrossing(t *testing.T) {
	raw := naca0012(50).Raw()
	pts := append([]Point(nil), raw.Points...)
	// Trade a point of the upper surface with its mirror on the lower one.
	pts[20], pts[len(pts)-21] = pts[len(pts)-21], pts[20]
	_, err := Normalize(RawProfile{Name: raw.Name, Points: pts}, testConfig())
	if !errors.Is(err, ErrMalformedProfile) {
		t.Fatalf("got %v, want a malformed profile", err)
	}
	var mpe *MalformedProfileError
	if !errors.As(err, &mpe) || !strings.Contains(mpe.Reason, "crosses itself") {
		t.Errorf("got %v, want a self-crossing loop", err)
	}

	_, err = Normalize(RawProfile{Name: "figure eight", Points: []Point{
		{1, 0}, {0.6, 0.1}, {0.3, -0.1}, {0, 0}, {0.3, 0.1}, {0.6, -0.1}, {1, 0},
	}}, testConfig())
	if !errors.As(err, &mpe) || !strings.Contains(mpe.Reason, "edge 1 ") || !strings.Contains(mpe.Reason, "edge 4 ") {
		t.Errorf("got %v, want edges 1 and 4 to cross", err)
	}
}

// jittered returns raw with every point except the trailing and leading
// edges moved up or down by amp in turn.
func jittered(raw RawProfile, amp float64) RawProfile {
	pts := append([]Point(nil), raw.Points...)
	le := len(pts) / 2
	for i := 1; i < len(pts)-1; i++ {
		if i == le {
			continue
		}
		if i%2 == 0 {
			pts[i].Y -= amp
		} else {
			pts[i].Y += amp
		}
	}
	return RawProfile{Name: raw.Name, Points: pts}
}

// thicknessError returns the RMS and the largest distance between the
// samples of c and the NACA 0012 surface, over the middle of the chord.
func thicknessError(c *NormalizedCurve) (rms, worst float64) {
	sec := naca0012(0)
	var sum float64
	var n int
	for _, p := range c.Points {
		if p.X < 0.05 || p.X > 0.95 {
			continue
		}
		up, _ := sec.at(p.X)
		d := math.Abs(math.Abs(p.Y) - up.Y)
		sum += d * d
		n++
		worst = max(worst, d)
	}
	return math.Sqrt(sum / float64(n)), worst
}

func TestNormalizeSmoothing(t *testing.T) {
	clean := naca0012(200).Raw()
	noisy := jittered(clean, 1e-3)

	cfg := testConfig()
	cfg.Samples = 2048
	exact, err := Normalize(noisy, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Smoothing = 0.02
	smoothed, err := Normalize(noisy, cfg)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Normalize(clean, cfg)
	if err != nil {
		t.Fatal(err)
	}

	noise, _ := thicknessError(exact)
	if noise < 5e-4 {
		t.Fatalf("jitter left an error of only %g", noise)
	}
	if rms, _ := thicknessError(smoothed); rms > noise/4 {
		t.Errorf("smoothing reduced the error from %g to %g", noise, rms)
	}
	// A clean section is hardly changed.
	if _, worst := thicknessError(plain); worst > 1e-5 {
		t.Errorf("smoothing moved a clean section by %g", worst)
	}

	for _, c := range []*NormalizedCurve{smoothed, plain} {
		diff(t, Pt(1, 0), c.Points[0], cmpopts.EquateApprox(0, 1e-12))
		if c.Points[c.Samples()] != c.Points[0] {
			t.Error("smoothed curve is not closed")
		}
		if w := WindingOf(SignedArea(c.Points)); w != CounterClockwise {
			t.Errorf("smoothed curve winds %s", w)
		}
	}
}

func TestSavitzkyGolayCoefficients(t *testing.T) {
	want := []float64{-3.0 / 35, 12.0 / 35, 17.0 / 35, 12.0 / 35, -3.0 / 35}
	diff(t, want, savitzkyGolayCoefficients(2, 2), cmpopts.EquateApprox(0, 1e-12))

	// Quadratics pass through unchanged.
	pts := make([]Point, 40)
	for i := range pts {
		x := float64(i)
		pts[i] = Pt(x, 0.5*x*x-3*x+1)
	}
	got := savitzkyGolay(pts, 5)
	for i := 5; i < 35; i++ {
		assertNear(t, got[i], pts[i], 1e-9)
	}
	diff(t, pts[0], got[0])
}
