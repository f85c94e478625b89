package hotwire

import (
	"math"
)

// Placement positions one cross section of a lifting surface. Lengths are in
// the configured Units.
type Placement struct {
	// Station is the spanwise coordinate of the section.
	Station float64
	Chord   float64
	// Twist is the incidence change in degrees, positive nose-up, applied
	// about the quarter-chord point. Washout is negative twist.
	Twist float64
	// Reflex is the trailing-edge deflection in percent of chord.
	Reflex float64
	// Sweep and Dihedral are the chordwise and vertical offsets of the
	// section's leading edge accumulated up to Station.
	Sweep    float64
	Dihedral float64
}

// SpanRange is the closed interval of stations a component occupies.
type SpanRange struct {
	Min float64
	Max float64
}

// Contains reports whether station lies within the range.
func (r SpanRange) Contains(station float64) bool {
	return station >= r.Min && station <= r.Max
}

// PositionedCrossSection is a normalized curve scaled, deflected, twisted and
// placed at its span station. Points correspond index for index to the
// source curve's samples, so Points[0] is still the trailing edge and the
// last point repeats it.
type PositionedCrossSection struct {
	Placement
	Points []Point3
	Source *NormalizedCurve
}

// Profile returns the section projected onto the cutting plane.
func (s *PositionedCrossSection) Profile() []Point {
	out := make([]Point, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.CutPlane()
	}
	return out
}

func (p Placement) validate(span SpanRange) error {
	bad := func(field string, v float64, reason string) error {
		return &InvalidPlacementError{Station: p.Station, Field: field, Value: v, Reason: reason}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"station", p.Station},
		{"chord", p.Chord},
		{"twist", p.Twist},
		{"reflex", p.Reflex},
		{"sweep", p.Sweep},
		{"dihedral", p.Dihedral},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return bad(f.name, f.v, "is not finite")
		}
	}
	if p.Chord <= 0 {
		return bad("chord", p.Chord, "must be positive")
	}
	if !span.Contains(p.Station) {
		return bad("station", p.Station, "lies outside the component's span range")
	}
	return nil
}

// Transform places c in machine space. The curve is scaled to p.Chord,
// its trailing portion is deflected by p.Reflex, it is rotated by p.Twist
// about the quarter chord, and finally moved to its station and offset by
// sweep and dihedral.
func Transform(c *NormalizedCurve, p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error) {
	if err := p.validate(span); err != nil {
		return nil, err
	}

	twist := RotateAbout(-p.Twist*math.Pi/180, Pt(0.25*p.Chord, 0))
	out := make([]Point3, len(c.Points))
	for i, pt := range c.Points {
		q := Pt(pt.X*p.Chord, pt.Y*p.Chord)
		q.Y += reflexDeflection(pt.X, p.Reflex, cfg.ReflexStart) * p.Chord
		q = q.Transform(twist)
		out[i] = Point3{
			X: q.X + p.Sweep,
			Y: p.Station,
			Z: q.Y + p.Dihedral,
		}
	}
	// Keep the seam exact even after floating-point transforms.
	out[len(out)-1] = out[0]

	return &PositionedCrossSection{
		Placement: p,
		Points:    out,
		Source:    c,
	}, nil
}

// reflexDeflection returns the upward displacement, in fractions of chord, of
// a point at chord fraction x. The deflection is blended in with a
// smoothstep aft of start, so the surface stays tangent-continuous.
func reflexDeflection(x, percent, start float64) float64 {
	if percent == 0 || x <= start {
		return 0
	}
	t := min((x-start)/(1-start), 1)
	return percent / 100 * t * t * (3 - 2*t)
}
