package hotwire

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// EmitOptions controls the text of a motion program.
type EmitOptions struct {
	// Title is written as the first comment line.
	Title string
	// Comments are extra header comment lines.
	Comments []string
	// AxisWords are the letters of the X, Y, U and V axes. Machines that
	// call the second carriage Z and A can set them here.
	AxisWords [4]string
	// Precision is the number of decimals of coordinates.
	Precision int
}

// DefaultEmitOptions returns options for a four-axis controller with axes
// named X, Y, U and V.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		Title:     "hot-wire toolpath",
		AxisWords: [4]string{"X", "Y", "U", "V"},
		Precision: 4,
	}
}

// Emit writes plan as a G-code program: a header declaring absolute
// positioning, feed per minute and units, a G1 line per sample and a footer
// that returns to park and ends the program. Plans with fewer than two
// samples fail with an [*EmptyPlanError].
//
// The F word of each line is the sample's Feed, the combined speed of all
// four axes, which is how a coordinated G1 move is timed by the controller.
// Both carriages then reach the target together at their own RootFeed and
// TipFeed.
//
// Zero AxisWords and a non-positive Precision take the values of
// [DefaultEmitOptions].
func Emit(w io.Writer, plan *MotionPlan, opts EmitOptions) error {
	if plan == nil || len(plan.Samples) < 2 {
		n := 0
		if plan != nil {
			n = len(plan.Samples)
		}
		return &EmptyPlanError{Samples: n}
	}
	if opts.AxisWords == [4]string{} {
		opts.AxisWords = DefaultEmitOptions().AxisWords
	}
	for _, a := range opts.AxisWords {
		if a == "" {
			return fmt.Errorf("%w: empty axis word in %q", ErrInvalidConfig, opts.AxisWords)
		}
	}
	prec := opts.Precision
	if prec <= 0 {
		prec = 4
	}

	bw := bufio.NewWriter(w)
	if opts.Title != "" {
		fmt.Fprintf(bw, "(%s)\n", comment(opts.Title))
	}
	for _, c := range opts.Comments {
		fmt.Fprintf(bw, "(%s)\n", comment(c))
	}
	fmt.Fprintf(bw, "(kerf %.4f %s, stations %g to %g, %d samples, %.1f s)\n",
		plan.Kerf, plan.Units, plan.RootStation, plan.TipStation, len(plan.Samples), plan.Duration())
	bw.WriteString("G90 (absolute positioning)\n")
	bw.WriteString("G94 (units per minute feed)\n")
	if plan.Units == Millimeters {
		bw.WriteString("G21\n") // mm
	} else {
		bw.WriteString("G20\n") // inches
	}

	first := plan.Samples[0]
	fmt.Fprintf(bw, "G0 %s\n", axisWords(first.Axes, opts.AxisWords, prec))
	bw.WriteString("M3 (wire on)\n")
	for _, s := range plan.Samples[1:] {
		fmt.Fprintf(bw, "G1 %s F%.2f\n", axisWords(s.Axes, opts.AxisWords, prec), s.Feed)
	}
	bw.WriteString("M5 (wire off)\n")
	fmt.Fprintf(bw, "G0 %s\n", axisWords(plan.Park, opts.AxisWords, prec))
	bw.WriteString("M30\n")
	return bw.Flush()
}

// Program returns the G-code for plan as a string.
func Program(plan *MotionPlan, opts EmitOptions) (string, error) {
	var sb strings.Builder
	if err := Emit(&sb, plan, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func axisWords(a Axes, words [4]string, prec int) string {
	return fmt.Sprintf("%s%.*f %s%.*f %s%.*f %s%.*f",
		words[0], prec, a.X,
		words[1], prec, a.Y,
		words[2], prec, a.U,
		words[3], prec, a.V)
}

// comment strips characters that would end a G-code comment early.
func comment(s string) string {
	return strings.NewReplacer("(", "[", ")", "]", "\n", " ").Replace(s)
}
