package hotwire

import (
	"bytes"
	"errors"
	"testing"
)

func taperedJob(t *testing.T) Job {
	t.Helper()
	wing := Planform{SemiSpan: 48, RootChord: 12, TipChord: 8}
	panels, err := wing.Panels(48)
	if err != nil {
		t.Fatal(err)
	}
	return Job{
		Panel:      panels[0],
		Root:       naca0012(50),
		Tip:        naca0012(50),
		Span:       wing.Span(),
		Projection: CenteredProjection(60, 48),
		Limits:     testLimits(),
		Emit:       DefaultEmitOptions(),
	}
}

func TestCutPanelDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Kerf = 0.032
	first, err := CutPanel(taperedJob(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CutPanel(taperedJob(t), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Program, second.Program) {
		t.Error("programs differ between runs")
	}
	diff(t, first.Plan, second.Plan)

	rp, tp := first.Pair.Paths()
	last := first.Plan.Samples[len(first.Plan.Samples)-1]
	assertNear(t, Pt(last.RootTravel, last.TipTravel), Pt(Perimeter(rp), Perimeter(tp)), 1e-9)
}

func TestCutPanelStageError(t *testing.T) {
	cfg := testConfig()

	job := taperedJob(t)
	job.Tip = &RawSection{Profile: RawProfile{Name: "broken", Points: []Point{{0, 0}, {1, 0}}}}
	_, err := CutPanel(job, cfg)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want a stage error", err)
	}
	diff(t, StageError{Stage: StageNormalize, Side: "tip"}, StageError{Stage: se.Stage, Side: se.Side})
	if !errors.Is(err, ErrMalformedProfile) {
		t.Errorf("%v does not wrap a malformed profile", err)
	}

	// A kerf far wider than the nose of a small section.
	job = taperedJob(t)
	cfg.Kerf = 1
	_, err = CutPanel(job, cfg)
	if !errors.As(err, &se) || se.Stage != StageOffset || se.Side != "root" {
		t.Fatalf("got %v, want a root kerf offset failure", err)
	}
	if !errors.Is(err, ErrDegenerateOffset) {
		t.Errorf("%v does not wrap a degenerate offset", err)
	}

	job = taperedJob(t)
	job.Projection = CenteredProjection(30, 48)
	_, err = CutPanel(job, testConfig())
	if !errors.As(err, &se) || se.Stage != StageSchedule || se.Side != "" {
		t.Fatalf("got %v, want a schedule failure", err)
	}

	cfg = testConfig()
	cfg.Feed = 0
	if _, err := CutPanel(taperedJob(t), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want an invalid configuration", err)
	}
}

func TestCutPanels(t *testing.T) {
	wing := Planform{SemiSpan: 40, RootChord: 10, TipChord: 6, Sweep: 10, Washout: 2}
	panels, err := wing.Panels(20)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Samples = 300
	var jobs []Job
	for _, p := range panels {
		jobs = append(jobs, Job{
			Panel:      p,
			Root:       naca0012(50),
			Tip:        naca0012(50),
			Span:       wing.Span(),
			Projection: CenteredProjection(30, p.Width()),
			Limits:     testLimits(),
			Emit:       DefaultEmitOptions(),
		})
	}
	bad := jobs[0]
	bad.Panel.Index = 7
	bad.Projection = CenteredProjection(10, 20)
	jobs = append(jobs, bad)

	results, err := CutPanels(jobs, cfg)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results for %d jobs", len(results), len(jobs))
	}
	for i, r := range results[:len(panels)] {
		if r == nil || r.Panel != i {
			t.Fatalf("result %d is %+v", i, r)
		}
		want, err := CutPanel(jobs[i], &cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(want.Program, r.Program) {
			t.Errorf("panel %d differs from a sequential cut", i)
		}
	}
	if results[len(results)-1] != nil {
		t.Error("failed job has a result")
	}
	var se *StageError
	if !errors.As(err, &se) || se.Panel != 7 || !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("got %v, want panel 7 to fail placement", err)
	}
}
