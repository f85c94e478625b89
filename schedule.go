package hotwire

import (
	"fmt"
	"math"
)

// Axes holds one value per machine axis. X and Y belong to the carriage on
// the root side of the panel, U and V to the carriage on the tip side. X
// and U are horizontal, Y and V vertical.
type Axes struct {
	X, Y, U, V float64
}

func (a Axes) root() Point { return Pt(a.X, a.Y) }
func (a Axes) tip() Point  { return Pt(a.U, a.V) }

func axesOf(root, tip Point) Axes {
	return Axes{X: root.X, Y: root.Y, U: tip.X, V: tip.Y}
}

// distance returns the euclidean distance between a and b in the space of
// all four axes.
func (a Axes) distance(b Axes) float64 {
	dx, dy, du, dv := b.X-a.X, b.Y-a.Y, b.U-a.U, b.V-a.V
	return math.Sqrt(dx*dx + dy*dy + du*du + dv*dv)
}

// MachineLimits describes the cutter. Feeds are in Units per minute,
// lengths in Units.
type MachineLimits struct {
	// MaxFeed is the fastest each axis may move.
	MaxFeed Axes
	// MinFeed is the slowest a carriage may move while the wire is in the
	// foam before it burns a wider kerf than planned. Zero disables the
	// check.
	MinFeed float64
	// RapidFeed is used for travel moves outside the foam.
	RapidFeed float64
	// Clearance is how far behind the trailing edge the wire waits before
	// entering the foam.
	Clearance float64
	// Park is where the carriages start and end.
	Park Axes
}

// Validate reports whether the limits describe a usable machine.
func (l *MachineLimits) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"MaxFeed.X", l.MaxFeed.X},
		{"MaxFeed.Y", l.MaxFeed.Y},
		{"MaxFeed.U", l.MaxFeed.U},
		{"MaxFeed.V", l.MaxFeed.V},
		{"RapidFeed", l.RapidFeed},
	} {
		if err := positive(f.name, f.v); err != nil {
			return err
		}
	}
	if !(l.MinFeed >= 0) || math.IsInf(l.MinFeed, 0) {
		return invalid("MinFeed", l.MinFeed, "must be non-negative and finite")
	}
	if !(l.Clearance >= 0) || math.IsInf(l.Clearance, 0) {
		return invalid("Clearance", l.Clearance, "must be non-negative and finite")
	}
	return nil
}

// Projection places the foam panel on the wire. Span is the wire length
// between the two carriages and RootGap the distance from the root-side
// carriage to the panel's root face.
type Projection struct {
	Span    float64
	RootGap float64
}

// CenteredProjection centres a panel of the given width on a wire of length
// span.
func CenteredProjection(span, width float64) Projection {
	return Projection{Span: span, RootGap: (span - width) / 2}
}

// MoveKind classifies a motion sample.
type MoveKind int

const (
	// MoveStart is the first sample of a plan, at the park position.
	MoveStart MoveKind = iota
	MoveRapid
	MoveLeadIn
	MoveCut
	MoveLeadOut
)

func (k MoveKind) String() string {
	switch k {
	case MoveStart:
		return "start"
	case MoveRapid:
		return "rapid"
	case MoveLeadIn:
		return "lead-in"
	case MoveCut:
		return "cut"
	case MoveLeadOut:
		return "lead-out"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// MotionSample is one target position of a motion plan, reached by moving
// in a straight line from the previous sample at Feed.
//
// Both carriages are positioned for the same Tau. For moves outside the cut,
// Tau is 0 before the cut and 1 after it.
type MotionSample struct {
	Kind MoveKind
	Tau  float64
	Axes
	// Feed is the combined speed of all four axes, in Units per minute.
	Feed float64
	// RootFeed and TipFeed are the speeds of the two carriages in their own
	// planes. The slower of the two is the rate at which the wire advances
	// through the foam on that side.
	RootFeed float64
	TipFeed  float64
	// Time is the elapsed time at this sample, in seconds.
	Time float64
	// RootTravel and TipTravel are the distances travelled along the root
	// and tip curves since the start of the cut.
	RootTravel float64
	TipTravel  float64
}

// SlowerFeed returns the speed of the slower carriage.
func (s MotionSample) SlowerFeed() float64 {
	return min(s.RootFeed, s.TipFeed)
}

// MotionPlan is the time-ordered list of carriage positions for one panel.
type MotionPlan struct {
	Samples []MotionSample
	Units   Units
	Kerf    float64
	// RootStation and TipStation are the span stations of the panel faces.
	RootStation float64
	TipStation  float64
	Park        Axes
}

// Duration returns the elapsed time of the whole plan in seconds.
func (p *MotionPlan) Duration() float64 {
	if len(p.Samples) == 0 {
		return 0
	}
	return p.Samples[len(p.Samples)-1].Time
}

// carriages extrapolates the wire through a root and a tip point, both in
// the cutting plane, to the two carriages.
type carriages struct {
	gap, width, span float64
}

func (c carriages) at(root, tip Point) Axes {
	d := tip.Sub(root).Mul(1 / c.width)
	a := root.Translate(d.Mul(-c.gap))
	b := tip.Translate(d.Mul(c.span - c.gap - c.width))
	return axesOf(a, b)
}

// Schedule turns a synchronized pair into a motion plan.
//
// The cut visits every breakpoint of pair, with the steps between them
// subdivided so no carriage travels more than cfg.MaxStep per sample. Each
// step takes as long as the faster carriage needs at cfg.Feed, stretched
// further if any axis would exceed its limit, so both carriages arrive at
// every τ together. A step on which the slower carriage would drop below
// lim.MinFeed fails with an [*InfeasibleRateError].
//
// The cut is preceded by a rapid move from the park position to a point
// lim.Clearance behind the trailing edge and a slower lead-in to τ=0, and
// followed by the mirror image back to park.
func Schedule(pair *SynchronizedPair, proj Projection, lim MachineLimits, cfg *Config) (*MotionPlan, error) {
	if err := lim.Validate(); err != nil {
		return nil, err
	}
	rootStation, tipStation := pair.Root.Station(), pair.Tip.Station()
	width := math.Abs(tipStation - rootStation)
	badPlacement := func(field string, v float64, reason string) error {
		return &InvalidPlacementError{Station: rootStation, Field: field, Value: v, Reason: reason}
	}
	switch {
	case !(proj.Span > 0) || math.IsInf(proj.Span, 0):
		return nil, badPlacement("span", proj.Span, "must be positive and finite")
	case !(width > 0):
		return nil, badPlacement("panel width", width, "must be positive")
	case width > proj.Span:
		return nil, badPlacement("panel width", width, fmt.Sprintf("exceeds wire span %g", proj.Span))
	case proj.RootGap < 0 || proj.RootGap+width > proj.Span:
		return nil, badPlacement("root gap", proj.RootGap, "puts the panel outside the carriages")
	}
	car := carriages{gap: proj.RootGap, width: width, span: proj.Span}

	taus := cutTaus(pair, car, cfg.MaxStep)

	plan := &MotionPlan{
		Units:       cfg.Units,
		Kerf:        pair.Root.Kerf,
		RootStation: rootStation,
		TipStation:  tipStation,
		Park:        lim.Park,
	}
	var elapsed float64
	push := func(s MotionSample) {
		s.Time = elapsed
		plan.Samples = append(plan.Samples, s)
	}
	// travel moves the carriages to target at the requested feed, slowed
	// down where an axis limit requires it.
	travel := func(kind MoveKind, tau float64, target Axes, feed float64) {
		prev := plan.Samples[len(plan.Samples)-1]
		dist := prev.Axes.distance(target)
		if dist == 0 {
			return
		}
		dt := max(dist/feed, axisTime(prev.Axes, target, lim.MaxFeed))
		elapsed += dt * 60
		push(MotionSample{
			Kind:       kind,
			Tau:        tau,
			Axes:       target,
			Feed:       dist / dt,
			RootFeed:   target.root().Distance(prev.root()) / dt,
			TipFeed:    target.tip().Distance(prev.tip()) / dt,
			RootTravel: prev.RootTravel,
			TipTravel:  prev.TipTravel,
		})
	}

	r0, t0 := pair.At(0)
	start := car.at(r0, t0)
	approach := start
	approach.X += lim.Clearance
	approach.U += lim.Clearance
	leadFeed := lim.RapidFeed * cfg.LeadInFactor

	push(MotionSample{Kind: MoveStart, Axes: lim.Park})
	travel(MoveRapid, 0, approach, lim.RapidFeed)
	travel(MoveLeadIn, 0, start, leadFeed)

	prevRoot, prevTip := r0, t0
	prevAxes := plan.Samples[len(plan.Samples)-1].Axes
	for i, tau := range taus[1:] {
		root, tip := pair.At(tau)
		target := car.at(root, tip)
		dRoot := target.root().Distance(prevAxes.root())
		dTip := target.tip().Distance(prevAxes.tip())
		fast, slow := max(dRoot, dTip), min(dRoot, dTip)
		dt := max(fast/cfg.Feed, axisTime(prevAxes, target, lim.MaxFeed))
		if lim.MinFeed > 0 && slow > 0 && dt > slow/lim.MinFeed {
			return nil, &InfeasibleRateError{
				Segment:  i,
				Tau:      tau,
				Required: dt * 60,
				Allowed:  slow / lim.MinFeed * 60,
				Reason: fmt.Sprintf("slower carriage would move at %.4g %s/min, below minimum %.4g",
					slow/dt, cfg.Units, lim.MinFeed),
			}
		}
		elapsed += dt * 60
		last := plan.Samples[len(plan.Samples)-1]
		push(MotionSample{
			Kind:       MoveCut,
			Tau:        tau,
			Axes:       target,
			Feed:       prevAxes.distance(target) / dt,
			RootFeed:   dRoot / dt,
			TipFeed:    dTip / dt,
			RootTravel: last.RootTravel + root.Distance(prevRoot),
			TipTravel:  last.TipTravel + tip.Distance(prevTip),
		})
		prevRoot, prevTip, prevAxes = root, tip, target
	}

	end := plan.Samples[len(plan.Samples)-1].Axes
	exit := end
	exit.X += lim.Clearance
	exit.U += lim.Clearance
	travel(MoveLeadOut, 1, exit, leadFeed)
	travel(MoveRapid, 1, lim.Park, lim.RapidFeed)

	Logger().Debug("scheduled motion plan",
		"samples", len(plan.Samples),
		"cut_samples", len(taus),
		"duration_s", plan.Duration())
	return plan, nil
}

// axisTime returns the shortest time, in minutes, in which every axis can
// move from a to b without exceeding its maximum feed.
func axisTime(a, b, maxFeed Axes) float64 {
	return max(
		math.Abs(b.X-a.X)/maxFeed.X,
		math.Abs(b.Y-a.Y)/maxFeed.Y,
		math.Abs(b.U-a.U)/maxFeed.U,
		math.Abs(b.V-a.V)/maxFeed.V,
	)
}

// cutTaus returns the τ values of the cut: every breakpoint of pair, with
// extra samples so that neither carriage moves more than maxStep between two
// consecutive values. Both curves are straight between breakpoints, so the
// carriages move linearly in τ there.
func cutTaus(pair *SynchronizedPair, car carriages, maxStep float64) []float64 {
	bps := pair.Breakpoints()
	out := make([]float64, 0, len(bps))
	out = append(out, bps[0])
	r, t := pair.At(bps[0])
	prev := car.at(r, t)
	prevTau := bps[0]
	for _, tau := range bps[1:] {
		r, t := pair.At(tau)
		next := car.at(r, t)
		d := max(next.root().Distance(prev.root()), next.tip().Distance(prev.tip()))
		if d > 0 {
			k := int(math.Ceil(d / maxStep))
			for j := 1; j < k; j++ {
				out = append(out, prevTau+(tau-prevTau)*float64(j)/float64(k))
			}
			out = append(out, tau)
		}
		prev, prevTau = next, tau
	}
	return out
}
