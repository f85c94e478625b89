package hotwire

import (
	"errors"
	"fmt"
)

// Sentinels for the error kinds returned by the pipeline stages. Every
// concrete error type below matches its sentinel with [errors.Is], and can
// be unpacked with [errors.As] for the geometric quantity that caused it.
var (
	ErrMalformedProfile = errors.New("malformed profile")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrDegenerateOffset = errors.New("degenerate offset")
	ErrProfileMismatch  = errors.New("profile mismatch")
	ErrInfeasibleRate   = errors.New("infeasible feed rate")
	ErrEmptyPlan        = errors.New("empty motion plan")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// MalformedProfileError is returned when raw coordinates cannot be turned
// into a closed curve.
type MalformedProfileError struct {
	Profile string
	Reason  string
}

func (e *MalformedProfileError) Error() string {
	return fmt.Sprintf("malformed profile %q: %s", e.Profile, e.Reason)
}

func (e *MalformedProfileError) Is(target error) bool { return target == ErrMalformedProfile }

// InvalidPlacementError is returned when a placement cannot position a
// cross section, or when a panel does not fit between the carriages.
type InvalidPlacementError struct {
	Station float64
	Field   string
	Value   float64
	Reason  string
}

func (e *InvalidPlacementError) Error() string {
	return fmt.Sprintf("invalid placement at station %g: %s %g %s", e.Station, e.Field, e.Value, e.Reason)
}

func (e *InvalidPlacementError) Is(target error) bool { return target == ErrInvalidPlacement }

// DegenerateOffsetError is returned when the kerf offset of a cross section
// cannot reproduce the part. Radius is the radius of curvature that was too
// tight; it is zero when the whole curve collapsed.
type DegenerateOffsetError struct {
	Station float64
	Kerf    float64
	Radius  float64
	Reason  string
}

func (e *DegenerateOffsetError) Error() string {
	if e.Radius > 0 {
		return fmt.Sprintf("degenerate offset at station %g: %s %.4g < kerf/2 %.4g",
			e.Station, e.Reason, e.Radius, e.Kerf/2)
	}
	return fmt.Sprintf("degenerate offset at station %g with kerf %.4g: %s", e.Station, e.Kerf, e.Reason)
}

func (e *DegenerateOffsetError) Is(target error) bool { return target == ErrDegenerateOffset }

// ProfileMismatchError is returned when a root and tip curve cannot be driven
// by a common sweep parameter.
type ProfileMismatchError struct {
	Curve  string
	Reason string
}

func (e *ProfileMismatchError) Error() string {
	return fmt.Sprintf("profile mismatch on %s curve: %s", e.Curve, e.Reason)
}

func (e *ProfileMismatchError) Is(target error) bool { return target == ErrProfileMismatch }

// InfeasibleRateError is returned when no feed rate keeps every axis within
// its limits for one segment of the cut.
type InfeasibleRateError struct {
	Segment int
	Tau     float64
	// Required is the shortest segment duration the axis limits allow, and
	// Allowed the longest one the minimum feed allows, both in seconds.
	Required float64
	Allowed  float64
	Reason   string
}

func (e *InfeasibleRateError) Error() string {
	return fmt.Sprintf("infeasible feed at segment %d (τ=%.6f): %s (needs %.4gs, at most %.4gs)",
		e.Segment, e.Tau, e.Reason, e.Required, e.Allowed)
}

func (e *InfeasibleRateError) Is(target error) bool { return target == ErrInfeasibleRate }

// EmptyPlanError is returned when a motion plan is too short to emit.
type EmptyPlanError struct {
	Samples int
}

func (e *EmptyPlanError) Error() string {
	return fmt.Sprintf("motion plan has %d samples, need at least 2", e.Samples)
}

func (e *EmptyPlanError) Is(target error) bool { return target == ErrEmptyPlan }

// Stage names a step of the cutting pipeline.
type Stage int

const (
	StageNormalize Stage = iota + 1
	StageTransform
	StageOffset
	StageSynchronize
	StageSchedule
	StageEmit
)

func (s Stage) String() string {
	switch s {
	case StageNormalize:
		return "normalize"
	case StageTransform:
		return "transform"
	case StageOffset:
		return "kerf offset"
	case StageSynchronize:
		return "synchronize"
	case StageSchedule:
		return "schedule"
	case StageEmit:
		return "emit"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageError records which pipeline stage, for which panel and which side,
// failed.
type StageError struct {
	Stage Stage
	Panel int
	Side  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("panel %d: %s (%s): %v", e.Panel, e.Stage, e.Side, e.Err)
	}
	return fmt.Sprintf("panel %d: %s: %v", e.Panel, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
