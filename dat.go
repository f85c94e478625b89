package hotwire

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Format is the layout of an airfoil coordinate file.
type Format int

const (
	// FormatAuto picks Selig or Lednicer from the file's contents.
	FormatAuto Format = iota
	// FormatSelig is a single loop from the trailing edge over the upper
	// surface to the leading edge and back along the lower surface.
	FormatSelig
	// FormatLednicer lists the upper and the lower surface separately, both
	// from leading edge to trailing edge, optionally preceded by a line with
	// the number of points of each surface.
	FormatLednicer
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatSelig:
		return "selig"
	case FormatLednicer:
		return "lednicer"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseProfile reads an airfoil coordinate file. Lines starting with '#' and
// blank lines separate sections; the first line that is not a coordinate
// pair names the profile. The returned points are always in Selig order.
//
// Coordinates are not validated beyond being finite numbers; that is the job
// of [Normalize].
func ParseProfile(r io.Reader, f Format) (RawProfile, error) {
	var (
		raw      RawProfile
		sections [][]Point
		current  []Point
		lineNo   int
	)
	flush := func() {
		if len(current) > 0 {
			sections = append(sections, current)
			current = nil
		}
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			flush()
			continue
		}
		pt, ok := parsePair(line)
		if !ok {
			if raw.Name == "" && len(sections) == 0 && len(current) == 0 {
				raw.Name = line
				continue
			}
			return RawProfile{}, &MalformedProfileError{
				Profile: raw.Name,
				Reason:  fmt.Sprintf("line %d: cannot parse %q as a coordinate pair", lineNo, line),
			}
		}
		current = append(current, pt)
	}
	if err := sc.Err(); err != nil {
		return RawProfile{}, err
	}
	flush()
	if len(sections) == 0 {
		return RawProfile{}, &MalformedProfileError{Profile: raw.Name, Reason: "no coordinate data"}
	}

	counts, hasCounts := lednicerCounts(sections[0])
	if f == FormatAuto {
		if hasCounts || len(sections) >= 2 {
			f = FormatLednicer
		} else {
			f = FormatSelig
		}
	}

	switch f {
	case FormatSelig:
		var pts []Point
		for _, s := range sections {
			pts = append(pts, s...)
		}
		raw.Points = pts
	case FormatLednicer:
		if hasCounts {
			sections[0] = sections[0][1:]
			if len(sections[0]) == 0 {
				sections = sections[1:]
			}
		}
		upper, lower, err := lednicerSurfaces(sections, counts, hasCounts)
		if err != nil {
			return RawProfile{}, &MalformedProfileError{Profile: raw.Name, Reason: err.Error()}
		}
		raw.Points = seligFromSurfaces(upper, lower)
	default:
		return RawProfile{}, fmt.Errorf("%w: unknown profile format %s", ErrInvalidConfig, f)
	}
	Logger().Debug("parsed profile", "name", raw.Name, "format", f.String(), "points", len(raw.Points))
	return raw, nil
}

func parsePair(line string) (Point, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Point{}, false
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Point{}, false
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Point{}, false
	}
	pt := Pt(x, y)
	if !pt.IsFinite() {
		return Point{}, false
	}
	return pt, true
}

// lednicerCounts reports whether the first line of a section is a Lednicer
// header holding the number of upper and lower surface points.
func lednicerCounts(sec []Point) ([2]int, bool) {
	if len(sec) == 0 {
		return [2]int{}, false
	}
	h := sec[0]
	if h.X <= 1 || h.Y <= 1 || h.X != math.Trunc(h.X) || h.Y != math.Trunc(h.Y) {
		return [2]int{}, false
	}
	return [2]int{int(h.X), int(h.Y)}, true
}

func lednicerSurfaces(sections [][]Point, counts [2]int, hasCounts bool) (upper, lower []Point, err error) {
	var pts []Point
	switch {
	case len(sections) >= 2:
		upper, lower = sections[0], sections[1]
	case len(sections) == 1 && hasCounts:
		// Some files omit the blank line between surfaces.
		pts = sections[0]
		if len(pts) != counts[0]+counts[1] {
			return nil, nil, fmt.Errorf("header promises %d+%d points, found %d", counts[0], counts[1], len(pts))
		}
		upper, lower = pts[:counts[0]], pts[counts[0]:]
	default:
		return nil, nil, fmt.Errorf("expected separate upper and lower surfaces")
	}
	if hasCounts && (len(upper) != counts[0] || len(lower) != counts[1]) {
		return nil, nil, fmt.Errorf("header promises %d+%d points, found %d+%d",
			counts[0], counts[1], len(upper), len(lower))
	}
	return orientLeadingEdgeFirst(upper), orientLeadingEdgeFirst(lower), nil
}

func orientLeadingEdgeFirst(pts []Point) []Point {
	if len(pts) > 0 && pts[0].X > pts[len(pts)-1].X {
		out := make([]Point, len(pts))
		for i, p := range pts {
			out[len(pts)-1-i] = p
		}
		return out
	}
	return pts
}

// seligFromSurfaces joins two leading-edge-first surfaces into a Selig loop,
// dropping the lower surface's copy of a shared leading-edge point.
func seligFromSurfaces(upper, lower []Point) []Point {
	out := make([]Point, 0, len(upper)+len(lower))
	for i := len(upper) - 1; i >= 0; i-- {
		out = append(out, upper[i])
	}
	if len(upper) > 0 && len(lower) > 0 && lower[0] == upper[0] {
		lower = lower[1:]
	}
	return append(out, lower...)
}
