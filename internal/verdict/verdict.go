// Package verdict applies the 2%/10% pass rule, the TRANSIENT_SPIKES
// override, and the critical-found flag to produce the final boolean
// pass/fail.
package verdict

import (
	"fmt"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// significantFailBand is the 2% threshold above which significant
// differences fail the comparison outright.
const significantFailBand = 2.0

// transientSpikesCeiling is the 10% cap on the TRANSIENT_SPIKES pass
// override: hardcoded rather than exposed as a CLI flag.
const transientSpikesCeiling = 10.0

// Result is the verdict engine's output: the pass/fail boolean plus the
// human-readable reasons backing it.
type Result struct {
	Pass    bool
	Reasons []string
}

// Evaluate applies the pass/fail rule in order. A structure mismatch or a
// line-count mismatch short-circuits to FAIL regardless of the counters.
func Evaluate(counters tlcompare.Counters, flags tlcompare.Flag, pat *tlcompare.PatternResult) Result {
	if flags.Has(tlcompare.StructureMismatch) {
		return Result{Pass: false, Reasons: []string{"file structures do not match"}}
	}
	if flags.Has(tlcompare.LineCountMismatch) {
		return Result{Pass: false, Reasons: []string{"file line counts do not match"}}
	}
	if flags.Has(tlcompare.HasCriticalDiff) {
		return Result{Pass: false, Reasons: []string{"critical difference found"}}
	}

	if counters.ElemTotal == 0 {
		return Result{Pass: true}
	}

	s := counters.NonErrorSignificant()
	p := 100 * float64(s) / float64(counters.ElemTotal)

	switch {
	case p > significantFailBand:
		if pat != nil && pat.Pattern == tlcompare.PatternTransientSpikes && p <= transientSpikesCeiling {
			return Result{Pass: true, Reasons: []string{fmt.Sprintf("pass with caveat: %.2f%% significant differences, TRANSIENT_SPIKES pattern", p)}}
		}
		return Result{Pass: false, Reasons: []string{fmt.Sprintf("%.2f%% of elements are significant differences (> %.1f%%)", p, significantFailBand)}}
	case p > 0:
		reasons := []string{fmt.Sprintf("%.2f%% significant differences (<= %.1f%%)", p, significantFailBand)}
		if pat != nil && pat.Pattern == tlcompare.PatternTransientSpikes {
			reasons = append(reasons, "TRANSIENT_SPIKES pattern noted")
		}
		return Result{Pass: true, Reasons: reasons}
	default:
		return Result{Pass: true}
	}
}
