package hotwire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

// naca0012 returns a NACA 0012 section with a closed trailing edge.
func naca0012(points int) NACA4 {
	return NACA4{Thickness: 0.12, Points: points}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	return &cfg
}

// selfIntersections returns the number of crossing pairs of non-adjacent
// edges of the closed polyline pts, whose last point repeats the first.
func selfIntersections(pts []Point) int {
	n := len(pts) - 1
	var count int
	for i := 0; i < n; i++ {
		ei := Line{pts[i], pts[i+1]}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if _, ok := ei.Intersect(Line{pts[j], pts[j+1]}); ok {
				count++
			}
		}
	}
	return count
}
