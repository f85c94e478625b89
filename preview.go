package hotwire

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PreviewRungs is the number of wire positions drawn between the root and
// the tip curve in a preview.
const PreviewRungs = 16

func xys(pts []Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i].X = p.X
		out[i].Y = p.Y
	}
	return out
}

// Preview plots both curves of pair in the cutting plane together with a few
// straight lines joining the points that share a τ.
func Preview(pair *SynchronizedPair) (*plot.Plot, error) {
	root, tip := pair.Paths()

	p := plot.New()
	p.Title.Text = "Synchronized cut (" + pair.Direction.String() + ")"
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	for i := 0; i <= PreviewRungs; i++ {
		r, t := pair.At(float64(i) / PreviewRungs)
		l, err := plotter.NewLine(plotter.XYs{{X: r.X, Y: r.Y}, {X: t.X, Y: t.Y}})
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = color.Gray{Y: 160}
		l.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(l)
	}
	if err := plotutil.AddLines(p,
		"root", xys(root),
		"tip", xys(tip),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// WritePreview renders the preview of pair to w. format is any format
// supported by gonum/plot, such as "png", "svg" or "pdf".
func WritePreview(w io.Writer, pair *SynchronizedPair, format string) error {
	p, err := Preview(pair)
	if err != nil {
		return err
	}
	box := BoundingBox(pair.root.pts).Union(BoundingBox(pair.tip.pts))
	width := 8 * vg.Inch
	height := width * vg.Length(box.Height()/box.Width())
	height = max(min(height, 8*vg.Inch), 3*vg.Inch)
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
