package hotwire

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SVGOptions controls SVG output.
type SVGOptions struct {
	// MaxPrecision is the maximum number of decimals of coordinates. Zero
	// prints the shortest exact representation.
	MaxPrecision int
	// Units is used for the document's physical size, so that templates
	// print at 1:1.
	Units Units
	// Margin is added around the outlines, in Units.
	Margin float64
	// StrokeWidth is the outline width, in Units. Zero means 0.01.
	StrokeWidth float64
}

// WritePathData writes the closed polyline pts as SVG path data. The y axis
// is flipped, since SVG's y axis points down.
func WritePathData(w io.Writer, pts []Point, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		if n == 0 {
			// Avoid "-0".
			n = 0
		}
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		} else {
			writef(" ")
		}
		writef("%s%s,%s", cmd, format(p.X), format(-p.Y))
	}
	if len(pts) > 0 {
		writef(" Z")
	}
	return err
}

// PathData returns the SVG path data of pts.
//
// See [WritePathData] for details.
func PathData(pts []Point, opts SVGOptions) string {
	var sb strings.Builder
	WritePathData(&sb, pts, opts)
	return sb.String()
}

// WriteTemplateSVG writes a standalone SVG document with one outline per
// curve, at full scale. Templates like these are printed and glued to the
// ends of a foam block to check a cut.
func WriteTemplateSVG(w io.Writer, opts SVGOptions, curves ...[]Point) error {
	var (
		box   Rect
		first = true
	)
	for _, c := range curves {
		if len(c) == 0 {
			continue
		}
		if first {
			box = BoundingBox(c)
			first = false
		} else {
			box = box.Union(BoundingBox(c))
		}
	}
	if first {
		return fmt.Errorf("no outlines to draw")
	}
	box = box.Inflate(opts.Margin, opts.Margin)
	stroke := opts.StrokeWidth
	if stroke <= 0 {
		stroke = 0.01
	}
	unit := "in"
	if opts.Units == Millimeters {
		unit = "mm"
	}

	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	writef(`<svg xmlns="http://www.w3.org/2000/svg" width="%g%s" height="%g%s" viewBox="%g %g %g %g">`+"\n",
		box.Width(), unit, box.Height(), unit,
		box.X0, -box.Y1, box.Width(), box.Height())
	for _, c := range curves {
		if len(c) == 0 {
			continue
		}
		writef(`<path fill="none" stroke="black" stroke-width="%g" d="`, stroke)
		if err == nil {
			err = WritePathData(w, c, opts)
		}
		writef("\"/>\n")
	}
	writef("</svg>\n")
	return err
}
