package hotwire

import (
	"bytes"
	"errors"
	"sync"
)

// Job describes the cut of one foam panel.
type Job struct {
	Panel Panel
	// Root and Tip provide the airfoils at the panel's two faces.
	Root Section
	Tip  Section
	// Span is the range of stations of the whole component the panel
	// belongs to.
	Span       SpanRange
	Projection Projection
	Limits     MachineLimits
	Emit       EmitOptions
}

// Result is the outcome of a successful [CutPanel].
type Result struct {
	Panel   int
	Pair    *SynchronizedPair
	Plan    *MotionPlan
	Program []byte
}

// CutPanel runs the whole pipeline for one panel. Any failure is returned as
// a [*StageError] naming the stage and side that failed; nothing partial is
// returned.
func CutPanel(job Job, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fail := func(stage Stage, side string, err error) error {
		return &StageError{Stage: stage, Panel: job.Panel.Index, Side: side, Err: err}
	}

	var offsets [2]*OffsetCurve
	for i, side := range []struct {
		name string
		sec  Section
		at   Placement
	}{
		{"root", job.Root, job.Panel.Root},
		{"tip", job.Tip, job.Panel.Tip},
	} {
		c, err := side.sec.Normalized(cfg)
		if err != nil {
			return nil, fail(StageNormalize, side.name, err)
		}
		pos, err := Transform(c, side.at, job.Span, cfg)
		if err != nil {
			return nil, fail(StageTransform, side.name, err)
		}
		off, err := Offset(pos, cfg.Kerf)
		if err != nil {
			return nil, fail(StageOffset, side.name, err)
		}
		offsets[i] = off
	}

	pair, err := Synchronize(offsets[0], offsets[1], cfg)
	if err != nil {
		return nil, fail(StageSynchronize, "", err)
	}
	plan, err := Schedule(pair, job.Projection, job.Limits, cfg)
	if err != nil {
		return nil, fail(StageSchedule, "", err)
	}
	var buf bytes.Buffer
	if err := Emit(&buf, plan, job.Emit); err != nil {
		return nil, fail(StageEmit, "", err)
	}

	Logger().Info("panel cut",
		"panel", job.Panel.Index,
		"root_station", plan.RootStation,
		"tip_station", plan.TipStation,
		"samples", len(plan.Samples),
		"duration_s", plan.Duration())
	return &Result{
		Panel:   job.Panel.Index,
		Pair:    pair,
		Plan:    plan,
		Program: buf.Bytes(),
	}, nil
}

// CutPanels runs CutPanel for every job concurrently. Results are returned
// in the order of jobs, with nil entries for failed jobs, and all failures
// are joined into the returned error.
func CutPanels(jobs []Job, cfg Config) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = CutPanel(job, &cfg)
		}()
	}
	wg.Wait()
	return results, errors.Join(errs...)
}
