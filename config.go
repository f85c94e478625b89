package hotwire

import (
	"fmt"
	"math"
)

// TrailingEdgeMode selects how the normalizer closes a trailing edge whose
// upper and lower surfaces do not meet in the source data.
type TrailingEdgeMode int

const (
	// TrailingEdgeSharp snaps both ends of an open trailing edge to their
	// midpoint, giving a true point.
	TrailingEdgeSharp TrailingEdgeMode = iota
	// TrailingEdgeBlunt keeps the gap as a short flat and places the seam in
	// the middle of it.
	TrailingEdgeBlunt
)

func (m TrailingEdgeMode) String() string {
	switch m {
	case TrailingEdgeSharp:
		return "sharp"
	case TrailingEdgeBlunt:
		return "blunt"
	default:
		return fmt.Sprintf("TrailingEdgeMode(%d)", int(m))
	}
}

// Units is the length unit of placements, kerf, feeds and the motion
// program. Airfoil coordinates are always fractions of unit chord.
type Units int

const (
	Inches Units = iota
	Millimeters
)

func (u Units) String() string {
	switch u {
	case Inches:
		return "inch"
	case Millimeters:
		return "mm"
	default:
		return fmt.Sprintf("Units(%d)", int(u))
	}
}

// Config holds every tunable of the pipeline. A Config is treated as
// immutable once handed to a stage; stages receive it by pointer and never
// write to it.
type Config struct {
	// Samples is the number of arc-length steps of a normalized curve. Zero
	// derives it from MicroTolerance.
	Samples int
	// MicroTolerance bounds the chordal deviation between a normalized
	// curve's samples and its interpolant, as a fraction of chord.
	MicroTolerance float64
	// MinSamples and MaxSamples clamp the derived sample count.
	MinSamples int
	MaxSamples int

	// DedupTolerance is the distance, in fractions of chord, below which
	// consecutive raw points are considered the same point.
	DedupTolerance float64
	// ClosureTolerance is the largest trailing-edge gap, in fractions of
	// chord, that still counts as a closed loop.
	ClosureTolerance float64
	// ChordTolerance is how far raw x coordinates may stray outside [0, 1].
	ChordTolerance float64
	TrailingEdge   TrailingEdgeMode
	// Smoothing is the half-width, in fractions of chord, of the
	// Savitzky-Golay filter run over the resampled curve to suppress noise
	// in the source coordinates. Zero interpolates the source exactly.
	Smoothing float64

	// ReflexStart is the chord fraction aft of which reflex is blended in.
	ReflexStart float64

	// Kerf is the width of foam removed by the wire, in Units.
	Kerf float64
	// SeamTolerance is the largest distance, in Units, between the first and
	// last point of a curve that is still considered closed.
	SeamTolerance float64
	CutDirection  Winding

	// MaxStep is the largest carriage travel per motion sample, in Units.
	MaxStep float64
	// Feed is the cutting speed of the faster carriage, in Units per minute.
	Feed float64
	// LeadInFactor scales the rapid feed for the final approach to the foam.
	LeadInFactor float64
	Units        Units
}

// DefaultConfig returns the configuration used for blue Styrofoam cores cut
// with 0.032 in NiChrome wire, in inches.
func DefaultConfig() Config {
	return Config{
		Samples:          0,
		MicroTolerance:   1e-5,
		MinSamples:       64,
		MaxSamples:       2048,
		DedupTolerance:   1e-7,
		ClosureTolerance: 0.02,
		ChordTolerance:   0.02,
		TrailingEdge:     TrailingEdgeSharp,
		Smoothing:        0,
		ReflexStart:      0.70,
		Kerf:             0.045,
		SeamTolerance:    1e-9,
		CutDirection:     Clockwise,
		MaxStep:          0.05,
		Feed:             4.0,
		LeadInFactor:     0.5,
		Units:            Inches,
	}
}

func invalid(field string, v any, reason string) error {
	return fmt.Errorf("%w: %s = %v %s", ErrInvalidConfig, field, v, reason)
}

func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return invalid(field, v, "must be positive and finite")
	}
	return nil
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if c.Samples < 0 {
		return invalid("Samples", c.Samples, "must not be negative")
	}
	if c.Samples > 0 && c.Samples < 8 {
		return invalid("Samples", c.Samples, "must be at least 8")
	}
	if c.MinSamples < 8 || c.MaxSamples < c.MinSamples {
		return invalid("MinSamples/MaxSamples", [2]int{c.MinSamples, c.MaxSamples}, "must satisfy 8 <= min <= max")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"MicroTolerance", c.MicroTolerance},
		{"DedupTolerance", c.DedupTolerance},
		{"ClosureTolerance", c.ClosureTolerance},
		{"ChordTolerance", c.ChordTolerance},
		{"Kerf", c.Kerf},
		{"SeamTolerance", c.SeamTolerance},
		{"MaxStep", c.MaxStep},
		{"Feed", c.Feed},
	} {
		if err := positive(f.name, f.v); err != nil {
			return err
		}
	}
	if !(c.Smoothing >= 0 && c.Smoothing < 0.5) {
		return invalid("Smoothing", c.Smoothing, "must lie in [0, 0.5)")
	}
	if !(c.ReflexStart > 0 && c.ReflexStart < 1) {
		return invalid("ReflexStart", c.ReflexStart, "must lie in (0, 1)")
	}
	if !(c.LeadInFactor > 0 && c.LeadInFactor <= 1) {
		return invalid("LeadInFactor", c.LeadInFactor, "must lie in (0, 1]")
	}
	if c.CutDirection != Clockwise && c.CutDirection != CounterClockwise {
		return invalid("CutDirection", int(c.CutDirection), "must be Clockwise or CounterClockwise")
	}
	switch c.TrailingEdge {
	case TrailingEdgeSharp, TrailingEdgeBlunt:
	default:
		return invalid("TrailingEdge", c.TrailingEdge, "is not a known mode")
	}
	switch c.Units {
	case Inches, Millimeters:
	default:
		return invalid("Units", c.Units, "is not a known unit")
	}
	return nil
}
