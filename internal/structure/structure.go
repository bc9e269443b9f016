// Package structure performs the per-file structural analysis: column-group
// boundaries, header detection via the mode column count, and the
// range-column heuristic (monotone, fixed-delta, start<100) on column 0 of
// the data group.
//
// Grounded on this codebase's classify-by-counting-and-tie-break idiom
// (count occurrences of a discrete attribute across a collection, pick the
// mode, apply a documented tie-break rule) applied here to column counts
// instead of file classes.
package structure

import (
	"bufio"
	"math"
	"os"

	"github.com/jlighthall/tlcompare/internal/token"
	"github.com/jlighthall/tlcompare/internal/txerr"
)

// rangeDeltaRelTol is the fixed-delta relative tolerance allowed between
// consecutive range-column samples (±1%).
const rangeDeltaRelTol = 0.01

// rangeDeltaMinAbs is the fixed-delta absolute floor; deltas smaller than
// this are treated as non-monotone rather than a degenerate fixed step.
const rangeDeltaMinAbs = 1e-10

// rangeStartCeiling is the "start value < 100" bound a range column's first
// sample must satisfy.
const rangeStartCeiling = 100.0

// Group is one contiguous run of lines sharing a column count.
type Group struct {
	StartLine   int // 1-based, inclusive
	EndLine     int // 1-based, inclusive
	ColumnCount int
	IsHeader    bool
}

// Descriptor is the read-only structural summary of one file, consumed by
// the comparator orchestrator. Structure analyzers only ever produce
// descriptors; they never mutate or hold onto file state afterward.
type Descriptor struct {
	Groups          []Group
	DataColumnCount int // the mode column count
	DataStartLine   int // first line with ColumnCount == DataColumnCount
	LineCount       int // total non-empty lines
	RangeColumn     bool
}

// GroupSignature returns the (ColumnCount, IsHeader) tuple sequence used to
// check structural compatibility between two files.
func (d *Descriptor) GroupSignature() []Group {
	sig := make([]Group, len(d.Groups))
	for i, g := range d.Groups {
		sig[i] = Group{ColumnCount: g.ColumnCount, IsHeader: g.IsHeader}
	}
	return sig
}

// Compatible reports whether a and b have equal (ColumnCount, IsHeader)
// sequences.
func Compatible(a, b *Descriptor) bool {
	sa, sb := a.GroupSignature(), b.GroupSignature()
	if len(sa) != len(sb) {
		return false
	}
	for i := range sa {
		if sa[i].ColumnCount != sb[i].ColumnCount || sa[i].IsHeader != sb[i].IsHeader {
			return false
		}
	}
	return true
}

type lineInfo struct {
	lineNo   int
	colCount int
	col0     float64
	hasCol0  bool
}

// Analyze reads path and produces its structural Descriptor.
func Analyze(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, txerr.WrapIo(path, err)
	}
	defer f.Close()

	var lines []lineInfo
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if isBlank(text) {
			continue
		}
		toks, err := token.Scan(lineNo, text)
		if err != nil {
			// Structural analysis tolerates unparseable header lines; they
			// simply contribute no column-0 sample and are counted by
			// their raw whitespace-field count instead.
			lines = append(lines, lineInfo{lineNo: lineNo, colCount: fieldCount(text)})
			continue
		}
		li := lineInfo{lineNo: lineNo, colCount: len(toks)}
		if len(toks) > 0 {
			li.col0 = toks[0].Value
			li.hasCol0 = true
		}
		lines = append(lines, li)
	}
	if err := sc.Err(); err != nil {
		return nil, txerr.WrapIo(path, err)
	}

	mode, lastLineForMode := computeMode(lines)
	_ = lastLineForMode

	d := &Descriptor{
		DataColumnCount: mode,
		LineCount:       len(lines),
	}
	d.Groups = buildGroups(lines, mode)

	for _, g := range d.Groups {
		if !g.IsHeader {
			d.DataStartLine = g.StartLine
			break
		}
	}

	d.RangeColumn = detectRangeColumn(lines, mode)

	return d, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\r' && r != '\n' {
			return false
		}
	}
	return true
}

func fieldCount(s string) int {
	n := 0
	inField := false
	for _, r := range s {
		isSpace := r == ' ' || r == '\t'
		if !isSpace && !inField {
			n++
			inField = true
		} else if isSpace {
			inField = false
		}
	}
	return n
}

// computeMode finds the most frequent column count, tie-breaking toward
// the column count whose last occurrence is latest in the file.
func computeMode(lines []lineInfo) (mode int, lastLine int) {
	freq := map[int]int{}
	last := map[int]int{}
	for _, li := range lines {
		freq[li.colCount]++
		last[li.colCount] = li.lineNo
	}

	bestFreq := -1
	for cc, f := range freq {
		switch {
		case f > bestFreq:
			bestFreq = f
			mode = cc
			lastLine = last[cc]
		case f == bestFreq && last[cc] > lastLine:
			mode = cc
			lastLine = last[cc]
		}
	}
	return mode, lastLine
}

// buildGroups walks lines in order, opening a new Group whenever the
// column count changes from the previous non-empty line.
func buildGroups(lines []lineInfo, mode int) []Group {
	var groups []Group
	for _, li := range lines {
		if len(groups) > 0 && groups[len(groups)-1].ColumnCount == li.colCount {
			groups[len(groups)-1].EndLine = li.lineNo
			continue
		}
		groups = append(groups, Group{
			StartLine:   li.lineNo,
			EndLine:     li.lineNo,
			ColumnCount: li.colCount,
			IsHeader:    li.colCount != mode,
		})
	}
	return groups
}

// detectRangeColumn applies the monotone + fixed-delta + start<100 test to
// column 0 of every mode-column-count (data) line, in file order.
func detectRangeColumn(lines []lineInfo, mode int) bool {
	var col0 []float64
	for _, li := range lines {
		if li.colCount == mode && li.hasCol0 {
			col0 = append(col0, li.col0)
		}
	}
	if len(col0) < 3 {
		return false
	}
	if col0[0] >= rangeStartCeiling {
		return false
	}

	delta := col0[1] - col0[0]
	if delta < rangeDeltaMinAbs {
		return false
	}

	prev := col0[0]
	for i, v := range col0 {
		if i == 0 {
			continue
		}
		if v < prev {
			return false
		}
		d := v - prev
		if math.Abs(d-delta) > rangeDeltaRelTol*math.Abs(delta) {
			return false
		}
		prev = v
	}
	return true
}
