package hotwire

import (
	"gonum.org/v1/gonum/mat"
)

// savitzkyGolay smooths the closed loop pts with a quadratic
// Savitzky-Golay filter reaching window samples to either side. The window
// narrows towards pts[0] so the seam, and any corner there, is kept exactly.
func savitzkyGolay(pts []Point, window int) []Point {
	n := len(pts)
	out := make([]Point, n)
	coeffs := make(map[int][]float64)
	for i := range pts {
		w := min(window, i, n-i)
		if w < 2 {
			out[i] = pts[i]
			continue
		}
		c, ok := coeffs[w]
		if !ok {
			c = savitzkyGolayCoefficients(w, 2)
			coeffs[w] = c
		}
		var v Vec2
		for k := -w; k <= w; k++ {
			v = v.Add(Vec2(pts[(i+k)%n]).Mul(c[k+w]))
		}
		out[i] = Point(v)
	}
	return out
}

// savitzkyGolayCoefficients returns the 2w+1 weights that evaluate, at the
// centre sample, the least-squares polynomial of the given order through
// the window.
func savitzkyGolayCoefficients(w, order int) []float64 {
	a := mat.NewDense(2*w+1, order+1, nil)
	for r := 0; r <= 2*w; r++ {
		x := float64(r-w) / float64(w)
		v := 1.0
		for c := 0; c <= order; c++ {
			a.Set(r, c, v)
			v *= x
		}
	}
	var ata mat.Dense
	ata.Mul(a.T(), a)
	e0 := mat.NewVecDense(order+1, nil)
	e0.SetVec(0, 1)
	var y mat.VecDense
	if err := y.SolveVec(&ata, e0); err != nil {
		panic(err)
	}
	var c mat.VecDense
	c.MulVec(a, &y)
	out := make([]float64, 2*w+1)
	for i := range out {
		out[i] = c.AtVec(i)
	}
	return out
}
