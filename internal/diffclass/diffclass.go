// Package diffclass implements the six-level discrimination hierarchy: the
// core classifier that decides, for one aligned pair of numeric elements,
// whether the difference is zero, trivial, insignificant, marginal,
// critical, or an error/non-error, and accumulates the resulting counters
// and maxima.
//
// This is the hottest, most load-bearing path in the engine. Like this
// codebase's scoring cascade, it is a small stack of pure classification
// functions threaded one into the next, each stage consuming only the
// previous stage's pass-through value.
package diffclass

import (
	"fmt"
	"math"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// Zero is the sub-LSB equality floor, 2^-23, the smallest difference a
// single-precision float can resolve.
const Zero = 1.0 / 8388608.0 // 2^-23 ≈ 1.1920929e-7

// Marginal is the operationally-uninteresting transmission-loss band floor.
const Marginal = 110.0

// Ignore is the transmission-loss level above which pressure falls below
// single-precision epsilon: -20*log10(2^-23).
var Ignore = -20 * math.Log10(Zero) // ≈ 138.4737980 dB

// halfLSBFloatGuard absorbs platform-dependent rounding divergence at the
// exact half-LSB boundary, preventing platform-dependent flips right at
// that boundary.
const halfLSBFloatGuard = 1e-12

// Outcome is the result of classifying one aligned element pair. Booleans
// are mutually informative, not independent: NonTrivial implies NonZero,
// Significant implies NonTrivial, and exactly one of Insignificant,
// Marginal, Critical, Error, NonError is true whenever NonTrivial is true.
// The counter summation invariants depend on this.
type Outcome struct {
	NonZero    bool
	Trivial    bool
	NonTrivial bool

	HighIgnore    bool
	Insignificant bool
	Significant   bool

	Marginal bool
	Critical bool
	Error    bool
	NonError bool

	Raw         float64
	RoundedDiff float64

	PercentError float64
	PercentIsInf bool
}

// roundToDecimals rounds v to dp decimal places using round-half-away-from-
// zero, in place of libc printf rounding or banker's rounding. Go's
// math.Round already rounds half away from zero, so this is a direct
// composition rather than a hand-rolled rounding loop.
func roundToDecimals(v float64, dp int) float64 {
	scale := math.Pow(10, float64(dp))
	return math.Round(v*scale) / scale
}

// Classify applies the six-level hierarchy to one element pair.
//
// columnIndex is the zero-based column position on the line; rangeColumn
// reports whether column 0 of this file pair passed the structure
// analyzer's range-column test. skip_tl is columnIndex == 0 && rangeColumn.
func Classify(v1, v2 float64, minDP int, columnIndex int, th tlcompare.Thresholds, rangeColumn bool) Outcome {
	raw := math.Abs(v1 - v2)
	skipTL := columnIndex == 0 && rangeColumn

	var out Outcome
	out.Raw = raw

	// Level 1 — Zero vs Non-zero.
	if !(raw > Zero) {
		return out
	}
	out.NonZero = true

	lsb := math.Pow(10, float64(-minDP))
	halfLSB := lsb / 2

	r1 := roundToDecimals(v1, minDP)
	r2 := roundToDecimals(v2, minDP)
	roundedDiff := math.Abs(r1 - r2)
	out.RoundedDiff = roundedDiff

	// Level 2 — Trivial vs Non-trivial.
	trivial := roundedDiff == 0 ||
		raw < halfLSB ||
		math.Abs(raw-halfLSB) < halfLSBFloatGuard*math.Max(raw, halfLSB)
	if trivial {
		out.Trivial = true
		return out
	}
	out.NonTrivial = true

	// Percent tracking is independent of classification mode, and only
	// computed for non-trivial elements.
	if math.Abs(v2) > Zero {
		out.PercentError = 100 * raw / math.Abs(v2)
	} else {
		out.PercentIsInf = true
	}

	// Level 3 — Insignificant vs Significant.
	highIgnore := !skipTL && v1 > Ignore && v2 > Ignore
	belowThreshold := belowUserThreshold(raw, v2, th)

	if highIgnore || belowThreshold {
		out.Insignificant = true
		out.HighIgnore = highIgnore
		return out
	}
	out.Significant = true

	// Level 4 — Marginal vs Non-marginal.
	if !skipTL && inMarginalBand(v1) && inMarginalBand(v2) {
		out.Marginal = true
		return out
	}

	// Level 5 — Critical vs Non-critical.
	if !skipTL && raw > th.CriticalThreshold && v1 <= Ignore && v2 <= Ignore {
		out.Critical = true
		return out
	}

	// Level 6 — Error vs Non-error. Re-applies the Level 3 threshold test,
	// but against rounded_diff rather than raw: an element can satisfy
	// raw > user_threshold (reaching this level as "significant") while
	// its rounded_diff — the difference at the two files' shared printed
	// precision — falls back at or below the threshold. That rounding
	// margin is what distinguishes error from non_error; reapplying the
	// identical raw-based test would make non_error unreachable.
	if errorByThreshold(roundedDiff, v2, th) {
		out.Error = true
	} else {
		out.NonError = true
	}
	return out
}

// inMarginalBand reports whether v lies in the open interval
// (Marginal, Ignore).
func inMarginalBand(v float64) bool {
	return v > Marginal && v < Ignore
}

// belowUserThreshold implements the "below user threshold" test, evaluated
// against raw.
func belowUserThreshold(raw, v2 float64, th tlcompare.Thresholds) bool {
	switch {
	case th.PercentMode():
		if math.Abs(v2) <= Zero {
			return false // conservatively deemed to exceed
		}
		pct := raw / math.Abs(v2)
		return !(pct > th.Fraction())
	case th.UserThreshold == 0:
		return false // sensitive mode: anything not high-ignored is significant
	default:
		return raw <= th.UserThreshold
	}
}

// errorByThreshold implements the Level 6 error/non-error split: the same
// shape of test as belowUserThreshold, but answering "is this large enough
// to count as an error" rather than "is this small enough to be
// insignificant", and evaluated against the supplied diff value (rounded,
// per Classify) rather than raw.
func errorByThreshold(diff, v2 float64, th tlcompare.Thresholds) bool {
	switch {
	case th.PercentMode():
		if math.Abs(v2) <= Zero {
			return true
		}
		pct := diff / math.Abs(v2)
		return pct > th.Fraction()
	case th.UserThreshold == 0:
		return true // sensitive mode: every such element is an error
	default:
		return diff > th.UserThreshold
	}
}

// Accumulate folds an Outcome into the running Counters, Maxima, and Flag
// state for one comparison pass, maintaining the counters/maxima summation
// invariants. It returns a one-shot critical notice string the first time
// HasCriticalDiff is newly set, and "" otherwise.
func Accumulate(out Outcome, minDP, line int, counters *tlcompare.Counters, maxima *tlcompare.Maxima, flags *tlcompare.Flag) string {
	counters.ElemTotal++

	if !out.NonZero {
		return ""
	}
	counters.DiffNonZero++
	updateMax(&maxima.MaxNonZero, out.Raw, minDP, line)

	if out.Trivial {
		counters.DiffTrivial++
		return ""
	}
	counters.DiffNonTrivial++
	updateMax(&maxima.MaxNonTrivial, out.Raw, minDP, line)

	if out.PercentIsInf {
		maxima.MaxPercentIsInf = true
	} else if !maxima.MaxPercentIsInf && out.PercentError > maxima.MaxPercentError.Value {
		updateMax(&maxima.MaxPercentError, out.PercentError, minDP, line)
	}

	if out.Insignificant {
		counters.DiffInsignificant++
		if out.HighIgnore {
			counters.DiffHighIgnore++
		}
		return ""
	}

	counters.DiffSignificant++
	updateMax(&maxima.MaxSignificant, out.Raw, minDP, line)

	notice := ""
	switch {
	case out.Marginal:
		counters.DiffMarginal++
	case out.Critical:
		counters.DiffCritical++
		firstCritical := !flags.Has(tlcompare.HasCriticalDiff)
		*flags |= tlcompare.HasCriticalDiff | tlcompare.ErrorFound
		if firstCritical {
			notice = criticalNotice(line, out.Raw, minDP)
		}
	case out.Error:
		counters.DiffError++
		*flags |= tlcompare.ErrorFound
	default:
		counters.DiffNonError++
	}
	return notice
}

func updateMax(m *tlcompare.MaxEntry, v float64, minDP, line int) {
	if v > m.Value {
		m.Value = v
		m.MinDP = minDP
		m.Line = line
	}
}

func criticalNotice(line int, raw float64, minDP int) string {
	return fmt.Sprintf("critical difference first seen at line %d (raw=%.*f)", line, minDP, raw)
}
