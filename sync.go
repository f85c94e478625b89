package hotwire

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// track is one closed curve of a synchronized pair, oriented in the cut
// direction, with its arc-length table.
type track struct {
	pts []Point   // closed, pts[len-1] == pts[0]
	arc []float64 // arc length at every point of pts
	le  int       // index of the leading edge in pts
}

func newTrack(c *OffsetCurve, dir Winding, name string, cfg *Config) (track, error) {
	mismatch := func(format string, args ...any) error {
		return &ProfileMismatchError{Curve: name, Reason: fmt.Sprintf(format, args...)}
	}
	if c == nil || len(c.Points) < 4 {
		return track{}, mismatch("needs at least 3 distinct points")
	}
	pts := c.Points
	if gap := pts[len(pts)-1].Distance(pts[0]); gap > cfg.SeamTolerance {
		return track{}, mismatch("not closed: ends %.4g apart", gap)
	}
	w := WindingOf(SignedArea(pts))
	if w == 0 {
		return track{}, mismatch("winding direction cannot be determined")
	}
	if w != dir {
		pts = reversedLoop(pts)
	}
	t := track{
		pts: pts,
		arc: cumulativeArclen(pts),
		le:  farthestFrom(pts, pts[0]),
	}
	if t.length() == 0 {
		return track{}, mismatch("zero length")
	}
	if t.le == 0 || t.le == len(pts)-1 {
		return track{}, mismatch("leading edge coincides with trailing edge")
	}
	return t, nil
}

func (t track) length() float64 {
	return t.arc[len(t.arc)-1]
}

func (t track) leFraction() float64 {
	return t.arc[t.le] / t.length()
}

// pointAt returns the point at arc length s by interpolating between the
// neighbouring vertices.
func (t track) pointAt(s float64) Point {
	if s <= 0 {
		return t.pts[0]
	}
	if s >= t.length() {
		return t.pts[len(t.pts)-1]
	}
	i := sort.SearchFloat64s(t.arc, s)
	if t.arc[i] == s {
		return t.pts[i]
	}
	s0, s1 := t.arc[i-1], t.arc[i]
	return t.pts[i-1].Lerp(t.pts[i], (s-s0)/(s1-s0))
}

// SynchronizedPair drives a root and a tip offset curve with one sweep
// parameter τ in [0, 1].
//
// Both curves are traversed in Direction, starting and ending at the
// trailing edge. τ is proportional to arc length between two anchors on each
// curve, the trailing edge (τ=0 and τ=1) and the leading edge
// (τ=LeadingEdgeTau), so both carriages pass through the nose at the same τ.
type SynchronizedPair struct {
	Root           *OffsetCurve
	Tip            *OffsetCurve
	Direction      Winding
	LeadingEdgeTau float64

	root track
	tip  track
}

// Synchronize pairs root and tip for a cut in cfg.CutDirection. It fails with
// a [*ProfileMismatchError] if either curve is not closed or has no
// discernible winding.
func Synchronize(root, tip *OffsetCurve, cfg *Config) (*SynchronizedPair, error) {
	rt, err := newTrack(root, cfg.CutDirection, "root", cfg)
	if err != nil {
		return nil, err
	}
	tt, err := newTrack(tip, cfg.CutDirection, "tip", cfg)
	if err != nil {
		return nil, err
	}
	p := &SynchronizedPair{
		Root:           root,
		Tip:            tip,
		Direction:      cfg.CutDirection,
		LeadingEdgeTau: 0.5 * (rt.leFraction() + tt.leFraction()),
		root:           rt,
		tip:            tt,
	}
	Logger().Debug("synchronized pair",
		"direction", p.Direction.String(),
		"root_vertices", len(rt.pts)-1,
		"tip_vertices", len(tt.pts)-1,
		"leading_edge_tau", p.LeadingEdgeTau)
	return p, nil
}

// arclen maps τ to arc length along t.
func (p *SynchronizedPair) arclen(t track, tau float64) float64 {
	sLE := t.arc[t.le]
	if tau <= p.LeadingEdgeTau {
		return tau / p.LeadingEdgeTau * sLE
	}
	return sLE + (tau-p.LeadingEdgeTau)/(1-p.LeadingEdgeTau)*(t.length()-sLE)
}

// tau maps arc length along t to τ.
func (p *SynchronizedPair) tau(t track, s float64) float64 {
	sLE := t.arc[t.le]
	if s <= sLE {
		return s / sLE * p.LeadingEdgeTau
	}
	return p.LeadingEdgeTau + (s-sLE)/(t.length()-sLE)*(1-p.LeadingEdgeTau)
}

// At returns the root and the tip point for τ. τ is clamped to [0, 1].
func (p *SynchronizedPair) At(tau float64) (root, tip Point) {
	tau = min(max(tau, 0), 1)
	return p.root.pointAt(p.arclen(p.root, tau)), p.tip.pointAt(p.arclen(p.tip, tau))
}

// Breakpoints returns, in increasing order and without duplicates, every τ
// at which the root or the tip curve has a vertex. Between two consecutive
// breakpoints both curves are straight. The result starts at 0 and ends at 1.
func (p *SynchronizedPair) Breakpoints() []float64 {
	taus := make([]float64, 0, len(p.root.arc)+len(p.tip.arc))
	for _, t := range []track{p.root, p.tip} {
		for i, s := range t.arc {
			switch i {
			case 0:
				taus = append(taus, 0)
			case len(t.arc) - 1:
				taus = append(taus, 1)
			case t.le:
				taus = append(taus, p.LeadingEdgeTau)
			default:
				taus = append(taus, p.tau(t, s))
			}
		}
	}
	slices.Sort(taus)
	return slices.CompactFunc(taus, func(a, b float64) bool {
		return math.Abs(a-b) <= 1e-12
	})
}

// Paths returns both curves in cut order.
func (p *SynchronizedPair) Paths() (root, tip []Point) {
	return slices.Clone(p.root.pts), slices.Clone(p.tip.pts)
}

// RootLength and TipLength return the perimeters of the two curves.
func (p *SynchronizedPair) RootLength() float64 { return p.root.length() }
func (p *SynchronizedPair) TipLength() float64  { return p.tip.length() }
