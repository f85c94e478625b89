package hotwire

import (
	"fmt"
	"math"
)

// RawProfile is airfoil coordinate data as read from a source, in fractions
// of unit chord. Points are ordered around the section, normally in Selig
// order, and may contain duplicates. Nothing in this package modifies a
// RawProfile.
type RawProfile struct {
	Name   string
	Points []Point
}

// NormalizedCurve is a closed airfoil section sampled at uniform arc length
// along a smooth periodic interpolant.
//
// Points holds N+1 samples. Points[0] is the trailing edge and Points[N] is
// an exact copy of it. The samples run counter-clockwise: over the upper
// surface to the leading edge and back along the lower surface.
type NormalizedCurve struct {
	Name   string
	Points []Point
	// Spline is the interpolant the samples were taken from, fitted through
	// the deduplicated source points, or through the smoothed samples when
	// Config.Smoothing is set.
	Spline *PeriodicSpline
	// Length is the arc length of Spline, in fractions of chord.
	Length float64
}

// Samples returns N, the number of arc-length steps.
func (c *NormalizedCurve) Samples() int {
	return len(c.Points) - 1
}

// Step returns the arc length between consecutive samples.
func (c *NormalizedCurve) Step() float64 {
	return c.Length / float64(c.Samples())
}

// Normalize turns raw coordinates into a closed curve sampled at uniform arc
// length. The trailing edge is closed according to cfg.TrailingEdge, the
// orientation is made counter-clockwise, and the sample count is taken from
// cfg.Samples or derived from cfg.MicroTolerance. With cfg.Smoothing set,
// the samples are filtered, refitted and resampled once more; the trailing
// edge sample stays where it was.
func Normalize(raw RawProfile, cfg *Config) (*NormalizedCurve, error) {
	fail := func(format string, args ...any) error {
		return &MalformedProfileError{Profile: raw.Name, Reason: fmt.Sprintf(format, args...)}
	}

	for i, p := range raw.Points {
		if !p.IsFinite() {
			return nil, fail("point %d is not finite: %v", i, p)
		}
		if p.X < -cfg.ChordTolerance || p.X > 1+cfg.ChordTolerance {
			return nil, fail("point %d has x=%g outside the unit chord", i, p.X)
		}
	}

	pts := dedupe(raw.Points, cfg.DedupTolerance)
	if len(pts) < 3 {
		return nil, fail("need at least 3 distinct points, have %d", len(pts))
	}

	closed := pts[len(pts)-1].Distance(pts[0]) <= cfg.DedupTolerance
	if closed {
		pts = pts[:len(pts)-1]
	} else {
		gap := pts[len(pts)-1].Distance(pts[0])
		if gap > cfg.ClosureTolerance {
			return nil, fail("trailing edge gap %.4g exceeds closure tolerance %.4g", gap, cfg.ClosureTolerance)
		}
		mid := pts[0].Midpoint(pts[len(pts)-1])
		switch cfg.TrailingEdge {
		case TrailingEdgeSharp:
			pts[0] = mid
			pts = pts[:len(pts)-1]
		case TrailingEdgeBlunt:
			pts = append([]Point{mid}, pts...)
		default:
			panic("unreachable")
		}
	}
	if len(pts) < 3 {
		return nil, fail("need at least 3 distinct points after closing the trailing edge, have %d", len(pts))
	}
	if Perimeter(pts) == 0 {
		return nil, fail("loop has zero length")
	}
	if i, j, _, ok := firstCrossing(pts); ok {
		return nil, fail("loop crosses itself: edge %d (%v to %v) meets edge %d (%v to %v)",
			i, pts[i], pts[i+1], j, pts[j], pts[(j+1)%len(pts)])
	}

	area := SignedArea(pts)
	switch WindingOf(area) {
	case 0:
		return nil, fail("loop encloses no area")
	case Clockwise:
		closedPts := append(pts, pts[0])
		pts = reversedLoop(closedPts)
		pts = pts[:len(pts)-1]
	}

	sp, err := NewPeriodicSpline(pts)
	if err != nil {
		return nil, fail("%v", err)
	}
	length := sp.Arclen()

	n := cfg.Samples
	var kmax float64
	if n == 0 {
		kmax = sp.MaxCurvature(4)
		n = sampleCount(length, kmax, cfg)
	}
	out := resample(sp, n)

	var window int
	if cfg.Smoothing > 0 {
		window = int(math.Round(cfg.Smoothing / (length / float64(n))))
		if window >= 2 {
			sp, err = NewPeriodicSpline(savitzkyGolay(out[:n], window))
			if err != nil {
				return nil, fail("smoothing: %v", err)
			}
			length = sp.Arclen()
			out = resample(sp, n)
		}
	}

	Logger().Debug("normalized profile",
		"name", raw.Name,
		"raw", len(raw.Points),
		"distinct", len(pts),
		"samples", n,
		"length", length,
		"max_curvature", kmax,
		"smoothing_window", window)

	return &NormalizedCurve{
		Name:   raw.Name,
		Points: out,
		Spline: sp,
		Length: length,
	}, nil
}

// resample returns n+1 points at uniform arc length along sp, starting at
// its first point. The last point is an exact copy of the first.
func resample(sp *PeriodicSpline, n int) []Point {
	out := make([]Point, n+1)
	accuracy := 1e-12 * sp.Period()
	step := sp.Arclen() / float64(n)
	out[0] = sp.Eval(0)
	for i := 1; i < n; i++ {
		out[i] = sp.Eval(sp.SolveForArclen(float64(i)*step, accuracy))
	}
	out[n] = out[0]
	return out
}

// dedupe drops points closer than tol to the previously kept point. The
// input is not modified.
func dedupe(pts []Point, tol float64) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && p.Distance(out[len(out)-1]) <= tol {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sampleCount picks the number of arc-length steps so that the sagitta of a
// chord of the curve, κ·Δs²/8, stays below the micro tolerance everywhere.
func sampleCount(length, kmax float64, cfg *Config) int {
	if !(kmax > 0) || math.IsInf(kmax, 0) {
		return cfg.MinSamples
	}
	ds := math.Sqrt(8 * cfg.MicroTolerance / kmax)
	n := int(math.Ceil(length / ds))
	return min(max(n, cfg.MinSamples), cfg.MaxSamples)
}
