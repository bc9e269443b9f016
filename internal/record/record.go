// Package record turns one scanned line into a Record: a sequence of
// doubles plus their per-element decimal-place counts. Empty lines are the
// caller's concern to skip; this package only parses non-empty ones.
package record

import (
	"strings"

	"github.com/jlighthall/tlcompare/internal/token"
	"github.com/jlighthall/tlcompare/internal/txerr"
)

// Record is one parsed line: parallel Values/Decimals slices, one entry per
// scanned element (a `(re, im)` token contributes two entries).
type Record struct {
	Values   []float64
	Decimals []int
}

// Len returns the number of elements in the record.
func (r Record) Len() int { return len(r.Values) }

// Empty reports whether text is blank (whitespace only); blank lines are
// skipped silently rather than treated as parse errors.
func Empty(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Parse scans text and validates it against minCols, the previously
// established data-column count (0 disables the check, used for the first
// line seen). Returns ShortLine if text has fewer tokens than minCols.
func Parse(line int, text string, minCols int) (Record, error) {
	tokens, err := token.Scan(line, text)
	if err != nil {
		return Record{}, err
	}

	if minCols > 0 && len(tokens) < minCols {
		return Record{}, &txerr.ShortLine{Line: line, Want: minCols, Got: len(tokens)}
	}

	rec := Record{
		Values:   make([]float64, len(tokens)),
		Decimals: make([]int, len(tokens)),
	}
	for i, t := range tokens {
		rec.Values[i] = t.Value
		rec.Decimals[i] = t.Decimals
	}
	return rec, nil
}
