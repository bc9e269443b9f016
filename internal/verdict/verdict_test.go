package verdict

import (
	"strings"
	"testing"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

func TestEvaluate_StructureMismatchFailsRegardlessOfCounters(t *testing.T) {
	counters := tlcompare.Counters{ElemTotal: 100}
	flags := tlcompare.StructureMismatch
	r := Evaluate(counters, flags, nil)
	if r.Pass {
		t.Error("expected Pass = false for StructureMismatch")
	}
	if len(r.Reasons) == 0 || !strings.Contains(r.Reasons[0], "structure") {
		t.Errorf("reasons = %v, want a structure-mismatch reason", r.Reasons)
	}
}

func TestEvaluate_LineCountMismatchFailsRegardlessOfCounters(t *testing.T) {
	counters := tlcompare.Counters{ElemTotal: 100}
	flags := tlcompare.LineCountMismatch
	r := Evaluate(counters, flags, nil)
	if r.Pass {
		t.Error("expected Pass = false for LineCountMismatch")
	}
}

func TestEvaluate_CriticalDiffFailsRegardlessOfPercentage(t *testing.T) {
	counters := tlcompare.Counters{ElemTotal: 1000}
	flags := tlcompare.HasCriticalDiff
	r := Evaluate(counters, flags, nil)
	if r.Pass {
		t.Error("expected Pass = false when HasCriticalDiff is set")
	}
}

func TestEvaluate_NoElementsPasses(t *testing.T) {
	r := Evaluate(tlcompare.Counters{}, 0, nil)
	if !r.Pass {
		t.Error("expected Pass = true for an empty comparison")
	}
}

func TestEvaluate_ZeroSignificantPasses(t *testing.T) {
	counters := tlcompare.Counters{ElemTotal: 100}
	r := Evaluate(counters, 0, nil)
	if !r.Pass {
		t.Error("expected Pass = true when no significant differences were found")
	}
	if len(r.Reasons) != 0 {
		t.Errorf("expected no reasons, got %v", r.Reasons)
	}
}

func TestEvaluate_WithinTwoPercentPasses(t *testing.T) {
	// 1 of 100 elements significant (non-marginal, non-critical): 1%.
	counters := tlcompare.Counters{ElemTotal: 100, DiffSignificant: 1, DiffNonError: 1}
	r := Evaluate(counters, 0, nil)
	if !r.Pass {
		t.Error("expected Pass = true at 1% significant differences")
	}
	if len(r.Reasons) == 0 {
		t.Error("expected a reason explaining the pass-with-caveat percentage")
	}
}

func TestEvaluate_AboveTwoPercentFailsWithoutTransientSpikes(t *testing.T) {
	// 5 of 100: 5% > 2% band, and no TRANSIENT_SPIKES pattern to invoke the override.
	counters := tlcompare.Counters{ElemTotal: 100, DiffSignificant: 5, DiffNonError: 5}
	r := Evaluate(counters, 0, nil)
	if r.Pass {
		t.Error("expected Pass = false above the 2% band with no override")
	}
}

func TestEvaluate_AboveTwoPercentPassesUnderTransientSpikesOverride(t *testing.T) {
	// 5% significant, but classified as TRANSIENT_SPIKES and within the 10% ceiling.
	counters := tlcompare.Counters{ElemTotal: 100, DiffSignificant: 5, DiffNonError: 5}
	pat := &tlcompare.PatternResult{Pattern: tlcompare.PatternTransientSpikes}
	r := Evaluate(counters, 0, pat)
	if !r.Pass {
		t.Error("expected Pass = true under the TRANSIENT_SPIKES override within the 10% ceiling")
	}
	if len(r.Reasons) == 0 || !strings.Contains(r.Reasons[0], "TRANSIENT_SPIKES") {
		t.Errorf("reasons = %v, want a TRANSIENT_SPIKES caveat", r.Reasons)
	}
}

func TestEvaluate_AboveTenPercentFailsEvenWithTransientSpikes(t *testing.T) {
	// 15% significant: past the TRANSIENT_SPIKES override's own 10% ceiling.
	counters := tlcompare.Counters{ElemTotal: 100, DiffSignificant: 15, DiffNonError: 15}
	pat := &tlcompare.PatternResult{Pattern: tlcompare.PatternTransientSpikes}
	r := Evaluate(counters, 0, pat)
	if r.Pass {
		t.Error("expected Pass = false above the TRANSIENT_SPIKES ceiling")
	}
}

func TestEvaluate_OtherPatternDoesNotTriggerOverride(t *testing.T) {
	counters := tlcompare.Counters{ElemTotal: 100, DiffSignificant: 5, DiffNonError: 5}
	pat := &tlcompare.PatternResult{Pattern: tlcompare.PatternRandomNoise}
	r := Evaluate(counters, 0, pat)
	if r.Pass {
		t.Error("expected Pass = false when the pattern is not TRANSIENT_SPIKES")
	}
}
