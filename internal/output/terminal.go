// Package output renders a comparison Report to the terminal (colored,
// hierarchical summary) or as JSON, grounded on this codebase's terminal
// and JSON renderer pair, generalized from a scoring result to a
// verdict/counters/pattern report.
//
// Color is automatically disabled when the writer is not a TTY (e.g.
// piped output), so redirecting stdout never leaks ANSI escapes into
// machine-readable output. NO_COLOR is honored per https://no-color.org.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// colorEnabled decides whether ANSI color should be emitted for w: only
// when w is a real terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderSummary prints a formatted comparison summary to w.
func RenderSummary(w io.Writer, r *tlcompare.Report) {
	enabled := colorEnabled(w)
	bold := colorOrPlain(color.New(color.Bold), enabled)
	green := colorOrPlain(color.New(color.FgGreen), enabled)
	yellow := colorOrPlain(color.New(color.FgYellow), enabled)
	red := colorOrPlain(color.New(color.FgRed), enabled)

	bold.Fprintf(w, "tlcompare: %s vs %s\n", r.File1, r.File2)
	fmt.Fprintln(w, "────────────────────────────────────────")

	if r.FatalErr != nil {
		red.Fprintf(w, "  ERROR: %v\n", r.FatalErr)
		return
	}

	if r.Pass {
		green.Fprintln(w, "  Verdict: PASS")
	} else {
		red.Fprintln(w, "  Verdict: FAIL")
	}

	for _, reason := range r.Reasons {
		fmt.Fprintf(w, "    - %s\n", reason)
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Counters:")
	c := r.Counters
	fmt.Fprintf(w, "  elements total:       %d\n", c.ElemTotal)
	fmt.Fprintf(w, "  non-zero diffs:       %d\n", c.DiffNonZero)
	fmt.Fprintf(w, "  trivial diffs:        %d\n", c.DiffTrivial)
	fmt.Fprintf(w, "  non-trivial diffs:    %d\n", c.DiffNonTrivial)
	fmt.Fprintf(w, "  insignificant:        %d\n", c.DiffInsignificant)
	fmt.Fprintf(w, "  significant:          %d\n", c.DiffSignificant)
	fmt.Fprintf(w, "    marginal:           %d\n", c.DiffMarginal)

	if c.DiffCritical > 0 {
		red.Fprintf(w, "    critical:           %d\n", c.DiffCritical)
	} else {
		fmt.Fprintf(w, "    critical:           %d\n", c.DiffCritical)
	}
	fmt.Fprintf(w, "    error:              %d\n", c.DiffError)
	fmt.Fprintf(w, "    non-error:          %d\n", c.DiffNonError)

	if r.CriticalNotice != "" {
		fmt.Fprintln(w)
		red.Fprintf(w, "  %s\n", r.CriticalNotice)
	}

	if r.Flags.Has(tlcompare.UnitMismatch) {
		fmt.Fprintln(w)
		yellow.Fprintf(w, "  possible unit mismatch at line %d (ratio=%.4f)\n", r.UnitMismatchLine, r.UnitMismatchRatio)
	}

	m := r.Maxima
	fmt.Fprintln(w)
	bold.Fprintln(w, "Maxima:")
	fmt.Fprintf(w, "  max non-zero:         %.*f (line %d)\n", m.MaxNonZero.MinDP, m.MaxNonZero.Value, m.MaxNonZero.Line)
	fmt.Fprintf(w, "  max non-trivial:      %.*f (line %d)\n", m.MaxNonTrivial.MinDP, m.MaxNonTrivial.Value, m.MaxNonTrivial.Line)
	fmt.Fprintf(w, "  max significant:      %.*f (line %d)\n", m.MaxSignificant.MinDP, m.MaxSignificant.Value, m.MaxSignificant.Line)
	if m.MaxPercentIsInf {
		fmt.Fprintln(w, "  max percent error:    inf")
	} else {
		fmt.Fprintf(w, "  max percent error:    %.2f%% (line %d)\n", m.MaxPercentError.Value, m.MaxPercentError.Line)
	}

	if r.Pattern != nil {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Error pattern:")
		fmt.Fprintf(w, "  classification:       %s\n", r.Pattern.Pattern)
		fmt.Fprintf(w, "  slope/r2/p:           %.6g / %.3f / %.3f\n", r.Pattern.Slope, r.Pattern.RSquared, r.Pattern.SlopePValue)
		fmt.Fprintf(w, "  autocorrelation:      %.3f (correlated=%v)\n", r.Pattern.Autocorrelation, r.Pattern.IsCorrelated)
		fmt.Fprintf(w, "  runs/expected/z:      %d / %.2f / %.3f (random=%v)\n", r.Pattern.Runs, r.Pattern.ExpectedRuns, r.Pattern.RunZScore, r.Pattern.IsRandom)
		fmt.Fprintf(w, "  spike ratio / rmse:   %.3f / %.6g\n", r.Pattern.SpikeRatio, r.Pattern.RMSE)
	}
}

// colorOrPlain returns c when enabled is true, or a color.Color with all
// attributes disabled otherwise, so callers can call .Fprintf uniformly
// without branching at every call site.
func colorOrPlain(c *color.Color, enabled bool) *color.Color {
	if !enabled {
		c.DisableColor()
	}
	return c
}
