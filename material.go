package hotwire

import (
	"fmt"
)

// Foam is a core material.
type Foam int

const (
	// FoamStyrofoamBlue is 2 lb/ft³ extruded polystyrene for wing cores.
	FoamStyrofoamBlue Foam = iota
	// FoamUrethane2lb tolerates higher temperatures.
	FoamUrethane2lb
	// FoamDivinycellH45 is a structural PVC foam.
	FoamDivinycellH45
)

func (f Foam) String() string {
	switch f {
	case FoamStyrofoamBlue:
		return "styrofoam blue"
	case FoamUrethane2lb:
		return "urethane 2lb"
	case FoamDivinycellH45:
		return "divinycell H45"
	default:
		return fmt.Sprintf("Foam(%d)", int(f))
	}
}

// KerfMultiplier returns the ratio of burned kerf to wire diameter. Less
// dense or more heat-sensitive foam melts further away from the wire.
func (f Foam) KerfMultiplier() (float64, bool) {
	// Measured with 0.032 in wire at the default feed: 0.045, 0.035 and
	// 0.030 in of kerf.
	switch f {
	case FoamStyrofoamBlue:
		return 0.045 / 0.032, true
	case FoamUrethane2lb:
		return 0.035 / 0.032, true
	case FoamDivinycellH45:
		return 0.030 / 0.032, true
	default:
		return 0, false
	}
}

// Material is the combination of wire and foam for a cut.
type Material struct {
	Foam         Foam
	WireDiameter float64
}

// DefaultMaterial is blue Styrofoam cut with 0.032 in NiChrome wire.
var DefaultMaterial = Material{Foam: FoamStyrofoamBlue, WireDiameter: 0.032}

// Kerf returns the width of foam removed by the wire.
func (m Material) Kerf() (float64, error) {
	k, ok := m.Foam.KerfMultiplier()
	if !ok {
		return 0, fmt.Errorf("%w: unknown foam %s", ErrInvalidConfig, m.Foam)
	}
	if err := positive("WireDiameter", m.WireDiameter); err != nil {
		return 0, err
	}
	return k * m.WireDiameter, nil
}
