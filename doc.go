// Package hotwire turns airfoil coordinates into programs for four-axis
// hot-wire foam cutters. It is meant for cutting the cores of tapered, swept
// and twisted wings and canards, where the root and the tip of a foam panel
// have different airfoils or chords and the two carriages of the machine
// must stay in lockstep.
//
// # Pipeline
//
// A panel is cut by passing its two cross sections through a fixed sequence
// of stages. Each stage consumes only the previous stage's output and
// returns a new value; nothing is modified in place.
//
//   - [Normalize] fits a periodic cubic spline through raw coordinates
//     ([RawProfile]) and resamples it at uniform arc length, closing the
//     trailing edge ([NormalizedCurve]).
//   - [Transform] scales, deflects, twists and places a normalized curve at
//     its span station ([PositionedCrossSection]).
//   - [Offset] moves the section outwards by half the kerf and removes the
//     loops this creates in concave regions ([OffsetCurve]).
//   - [Synchronize] parametrizes a root and a tip offset curve by a common
//     sweep parameter τ ([SynchronizedPair]).
//   - [Schedule] samples τ, projects both curves onto the carriages and
//     times every step so both carriages arrive together ([MotionPlan]).
//   - [Emit] writes the plan as G-code.
//
// [CutPanel] runs all stages for one panel and [CutPanels] runs many panels
// concurrently.
//
// # Synchronization
//
// Every [MotionSample] stores a single τ, and both carriage positions of the
// sample are evaluated at it. The root and the tip carriage therefore always
// reach the same τ at the same time; this is a property of the data
// structure, not of the timing. τ runs from the trailing edge (0) along one
// surface to the leading edge and along the other back to the trailing edge
// (1). The leading edge has the same τ on both curves.
//
// # Units and orientation
//
// Raw and normalized curves are in fractions of unit chord, with x running
// from the leading edge (0) to the trailing edge (1) and y up. Everything
// from [Transform] on is in the Units of the [Config], usually inches.
// Normalized curves run counter-clockwise (Selig order); the cut direction
// is chosen with [Config.CutDirection].
//
// # Errors
//
// Every stage fails as a whole: no partial curve or plan is ever returned.
// Failures carry the geometric quantity that caused them, such as
// [*DegenerateOffsetError] with the leading-edge radius that was too tight
// for the kerf, and match sentinel errors like [ErrDegenerateOffset] with
// [errors.Is].
//
// # Logging
//
// The package is silent unless a logger is installed with [SetLogger].
package hotwire
