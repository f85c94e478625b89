package hotwire

import (
	"fmt"
	"math"
)

// Planform is one side of a straight-tapered lifting surface, measured from
// its root station outwards. Lengths are in Units, angles in degrees.
type Planform struct {
	SemiSpan  float64
	RootChord float64
	TipChord  float64
	// Sweep is the leading-edge sweep angle.
	Sweep float64
	// Dihedral is negative for anhedral.
	Dihedral float64
	// Washout is the reduction of incidence at the tip relative to the
	// root. It grows linearly along the span.
	Washout float64
	// Reflex is applied to every station, in percent of chord.
	Reflex float64
}

// Span returns the range of stations covered by the planform.
func (p Planform) Span() SpanRange {
	return SpanRange{Min: 0, Max: p.SemiSpan}
}

// Station returns the placement of the cross section at the given distance
// from the root.
func (p Planform) Station(station float64) Placement {
	eta := station / p.SemiSpan
	return Placement{
		Station:  station,
		Chord:    p.RootChord + eta*(p.TipChord-p.RootChord),
		Twist:    -eta * p.Washout,
		Reflex:   p.Reflex,
		Sweep:    station * math.Tan(p.Sweep*math.Pi/180),
		Dihedral: station * math.Tan(p.Dihedral*math.Pi/180),
	}
}

// Panel is a spanwise piece of a planform cut from one foam block.
type Panel struct {
	Index int
	Root  Placement
	Tip   Placement
}

// Width returns the spanwise extent of the panel.
func (p Panel) Width() float64 {
	return math.Abs(p.Tip.Station - p.Root.Station)
}

// Panels splits the planform into the fewest panels no wider than
// blockWidth, all of equal width.
func (p Planform) Panels(blockWidth float64) ([]Panel, error) {
	if !(p.SemiSpan > 0) || math.IsInf(p.SemiSpan, 0) {
		return nil, fmt.Errorf("%w: semi-span %g must be positive and finite", ErrInvalidConfig, p.SemiSpan)
	}
	if err := positive("blockWidth", blockWidth); err != nil {
		return nil, err
	}
	n := int(math.Ceil(p.SemiSpan/blockWidth - 1e-9))
	n = max(n, 1)
	panels := make([]Panel, n)
	for i := range panels {
		y0 := p.SemiSpan * float64(i) / float64(n)
		y1 := p.SemiSpan * float64(i+1) / float64(n)
		panels[i] = Panel{Index: i, Root: p.Station(y0), Tip: p.Station(y1)}
	}
	return panels, nil
}
