package hotwire

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Section is anything that can produce an airfoil cross section, first as a
// normalized curve and then positioned on a lifting surface.
type Section interface {
	Name() string
	Normalized(cfg *Config) (*NormalizedCurve, error)
	Positioned(p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error)
}

var (
	_ Section = (*RawSection)(nil)
	_ Section = (*DatSection)(nil)
	_ Section = NACA4{}
)

func position(s Section, p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error) {
	c, err := s.Normalized(cfg)
	if err != nil {
		return nil, err
	}
	return Transform(c, p, span, cfg)
}

// RawSection is a section backed by coordinates already in memory.
type RawSection struct {
	Profile RawProfile
}

func (s *RawSection) Name() string { return s.Profile.Name }

func (s *RawSection) Normalized(cfg *Config) (*NormalizedCurve, error) {
	return Normalize(s.Profile, cfg)
}

func (s *RawSection) Positioned(p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error) {
	return position(s, p, span, cfg)
}

// DatSection is a section read from an airfoil coordinate file.
type DatSection struct {
	Path   string
	Format Format
}

func (s *DatSection) Name() string {
	return strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
}

func (s *DatSection) Normalized(cfg *Config) (*NormalizedCurve, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := ParseProfile(f, s.Format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if raw.Name == "" {
		raw.Name = s.Name()
	}
	return Normalize(raw, cfg)
}

func (s *DatSection) Positioned(p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error) {
	return position(s, p, span, cfg)
}

// NACA4 is an analytic NACA four-digit section.
type NACA4 struct {
	// Camber, CamberPosition and Thickness are fractions of chord: NACA 2412
	// has Camber 0.02, CamberPosition 0.4 and Thickness 0.12.
	Camber         float64
	CamberPosition float64
	Thickness      float64
	// Points is the number of intervals per surface. Zero means 50.
	Points int
	// OpenTrailingEdge uses the original thickness polynomial, which leaves
	// a small gap at the trailing edge, instead of the closed variant.
	OpenTrailingEdge bool
}

// ParseNACA4 parses a four-digit designation such as "0012" or "NACA 2412".
func ParseNACA4(s string) (NACA4, error) {
	d := strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "NACA"))
	if len(d) != 4 {
		return NACA4{}, fmt.Errorf("NACA designation %q must have four digits", s)
	}
	v, err := strconv.Atoi(d)
	if err != nil || v < 0 {
		return NACA4{}, fmt.Errorf("NACA designation %q must have four digits", s)
	}
	m, p, t := v/1000, v/100%10, v%100
	if t == 0 {
		return NACA4{}, fmt.Errorf("NACA designation %q has zero thickness", s)
	}
	if (m == 0) != (p == 0) {
		return NACA4{}, fmt.Errorf("NACA designation %q has camber without a camber position", s)
	}
	return NACA4{
		Camber:         float64(m) / 100,
		CamberPosition: float64(p) / 10,
		Thickness:      float64(t) / 100,
	}, nil
}

func (n NACA4) Name() string {
	return fmt.Sprintf("NACA %d%d%02d",
		int(math.Round(n.Camber*100)),
		int(math.Round(n.CamberPosition*10)),
		int(math.Round(n.Thickness*100)))
}

// Raw returns the section's coordinates in Selig order with cosine spacing.
// With a closed trailing edge the first and last point coincide.
func (n NACA4) Raw() RawProfile {
	k := n.Points
	if k <= 0 {
		k = 50
	}
	pts := make([]Point, 0, 2*k+1)
	for i := k; i >= 0; i-- {
		up, _ := n.at(0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(k))))
		pts = append(pts, up)
	}
	for i := 1; i <= k; i++ {
		_, lo := n.at(0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(k))))
		pts = append(pts, lo)
	}
	return RawProfile{Name: n.Name(), Points: pts}
}

// at returns the upper and lower surface points at chord fraction x.
func (n NACA4) at(x float64) (upper, lower Point) {
	a4 := 0.1036
	if n.OpenTrailingEdge {
		a4 = 0.1015
	}
	yt := 5 * n.Thickness * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x - a4*x*x*x*x)

	var yc, slope float64
	m, p := n.Camber, n.CamberPosition
	switch {
	case m == 0 || p == 0:
	case x < p:
		yc = m / (p * p) * (2*p*x - x*x)
		slope = 2 * m / (p * p) * (p - x)
	default:
		yc = m / ((1 - p) * (1 - p)) * (1 - 2*p + 2*p*x - x*x)
		slope = 2 * m / ((1 - p) * (1 - p)) * (p - x)
	}
	sin, cos := math.Sincos(math.Atan(slope))
	upper = Pt(x-yt*sin, yc+yt*cos)
	lower = Pt(x+yt*sin, yc-yt*cos)
	return upper, lower
}

func (n NACA4) Normalized(cfg *Config) (*NormalizedCurve, error) {
	return Normalize(n.Raw(), cfg)
}

func (n NACA4) Positioned(p Placement, span SpanRange, cfg *Config) (*PositionedCrossSection, error) {
	return position(n, p, span, cfg)
}

// Family names an airfoil for which coordinate data ships with a project.
// The zero value is the canard airfoil.
type Family int

const (
	FamilyRonczR1145MS Family = iota
	FamilyEppler1230Mod
	// FamilyGU25 is the GU25-5(11)8, kept for reading legacy data. It loses
	// lift when wet and must not be used on a canard.
	FamilyGU25
)

func (f Family) String() string {
	switch f {
	case FamilyRonczR1145MS:
		return "Roncz R1145MS"
	case FamilyEppler1230Mod:
		return "Eppler 1230 mod"
	case FamilyGU25:
		return "GU25-5(11)8"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// File returns the name of the family's coordinate file.
func (f Family) File() (string, bool) {
	switch f {
	case FamilyRonczR1145MS:
		return "roncz_r1145ms.dat", true
	case FamilyEppler1230Mod:
		return "eppler_1230_mod.dat", true
	case FamilyGU25:
		return "gu25_5_11_8.dat", true
	default:
		return "", false
	}
}

// SectionFor returns the section for a family, reading coordinates from
// dataDir.
func SectionFor(f Family, dataDir string) (Section, error) {
	name, ok := f.File()
	if !ok {
		return nil, fmt.Errorf("%w: unknown airfoil family %s", ErrInvalidConfig, f)
	}
	return &DatSection{Path: filepath.Join(dataDir, name), Format: FormatAuto}, nil
}

// AirfoilSelection chooses the airfoils of an aircraft. The canard airfoil
// is not a field: it is always Roncz R1145MS, so no selection can carry a
// different one. The zero value is a valid selection.
type AirfoilSelection struct {
	WingRoot Family
	WingTip  Family
	// WingReflex is the trailing-edge reflex of the wing in percent of
	// chord.
	WingReflex float64
}

// Canard returns the canard airfoil family.
func (AirfoilSelection) Canard() Family {
	return FamilyRonczR1145MS
}

// NewAirfoilSelection builds a selection, rejecting any canard other than
// Roncz R1145MS. A rejected canard is also logged as a warning.
func NewAirfoilSelection(canard, wingRoot, wingTip Family, wingReflex float64) (AirfoilSelection, error) {
	if canard != FamilyRonczR1145MS {
		Logger().Warn("canard airfoil overridden",
			"requested", canard.String(),
			"required", FamilyRonczR1145MS.String())
		return AirfoilSelection{}, fmt.Errorf("%w: canard airfoil must be %s, not %s",
			ErrInvalidConfig, FamilyRonczR1145MS, canard)
	}
	for _, f := range []Family{wingRoot, wingTip} {
		if _, ok := f.File(); !ok {
			return AirfoilSelection{}, fmt.Errorf("%w: unknown airfoil family %s", ErrInvalidConfig, f)
		}
	}
	if math.IsNaN(wingReflex) || math.IsInf(wingReflex, 0) {
		return AirfoilSelection{}, fmt.Errorf("%w: wing reflex %g is not finite", ErrInvalidConfig, wingReflex)
	}
	return AirfoilSelection{WingRoot: wingRoot, WingTip: wingTip, WingReflex: wingReflex}, nil
}
