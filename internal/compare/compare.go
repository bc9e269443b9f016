// Package compare implements the comparator orchestrator: it drives
// pairwise iteration over two files, invoking the structure analyzer,
// format tracker, and difference analyzer, detecting the column-0
// unit-scale mismatch, and accumulating the error-pattern dataset. It is
// the sole owner of counters, flags, and that dataset for the duration of
// one comparison; nothing here is shared across Comparator instances, so
// independent instances may run concurrently with no locking — see
// internal/batch.
package compare

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/jlighthall/tlcompare/internal/diffclass"
	"github.com/jlighthall/tlcompare/internal/format"
	"github.com/jlighthall/tlcompare/internal/pattern"
	"github.com/jlighthall/tlcompare/internal/record"
	"github.com/jlighthall/tlcompare/internal/structure"
	"github.com/jlighthall/tlcompare/internal/txerr"
	"github.com/jlighthall/tlcompare/internal/verdict"
	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// unitRatio is the nautical-mile-to-meter scale factor watched for on
// column 0 (1852 meters per nautical mile).
const unitRatio = 1852.0

// unitRatioTol is the relative tolerance for the unit-mismatch detector.
const unitRatioTol = 0.01

// Comparator runs one file-pair comparison against a fixed set of
// Thresholds. A Comparator holds no state between calls to Compare; create
// one per pair (or reuse across pairs — Compare is stateless per call).
type Comparator struct {
	Thresholds tlcompare.Thresholds
}

// New creates a Comparator for the given thresholds.
func New(th tlcompare.Thresholds) *Comparator {
	return &Comparator{Thresholds: th}
}

// Compare runs the full comparison pipeline: Open -> Structure ->
// Iterate(line) -> Finalize -> Pattern -> Verdict. It always returns a
// non-nil Report; fatal errors are recorded in Report.FatalErr with
// Report.Pass == false rather than returned directly, so a caller always
// gets a reportable result.
func (c *Comparator) Compare(file1, file2 string) *tlcompare.Report {
	report := &tlcompare.Report{File1: file1, File2: file2}

	desc1, err := structure.Analyze(file1)
	if err != nil {
		report.FatalErr = err
		return report
	}
	desc2, err := structure.Analyze(file2)
	if err != nil {
		report.FatalErr = err
		return report
	}

	lines1, err := readAllLines(file1)
	if err != nil {
		report.FatalErr = err
		return report
	}
	lines2, err := readAllLines(file2)
	if err != nil {
		report.FatalErr = err
		return report
	}

	var flags tlcompare.Flag
	if !structure.Compatible(desc1, desc2) {
		flags |= tlcompare.StructureMismatch
		report.Reasons = append(report.Reasons, "column-group structure differs between files")
	}
	if len(lines1) != len(lines2) {
		flags |= tlcompare.LineCountMismatch
		report.Reasons = append(report.Reasons, "files have different line counts")
	}

	rangeColumn := desc1.RangeColumn && desc2.RangeColumn
	if rangeColumn {
		flags |= tlcompare.ColumnIsRangeData
	}

	var counters tlcompare.Counters
	var maxima tlcompare.Maxima
	var dataset []pattern.Point
	unitChecked := false

	n := len(lines1)
	if len(lines2) < n {
		n = len(lines2)
	}

	tracker := format.New()

	for i := 0; i < n; i++ {
		lineNo := i + 1
		t1, t2 := lines1[i], lines2[i]

		empty1, empty2 := record.Empty(t1), record.Empty(t2)
		if empty1 && empty2 {
			continue
		}
		if empty1 != empty2 {
			report.Reasons = append(report.Reasons, reasonLine(lineNo, "one file has a blank line where the other does not"))
			continue
		}

		rec1, err := record.Parse(lineNo, t1, 0)
		if err != nil {
			report.Reasons = append(report.Reasons, reasonLine(lineNo, err.Error()))
			continue
		}
		rec2, err := record.Parse(lineNo, t2, 0)
		if err != nil {
			report.Reasons = append(report.Reasons, reasonLine(lineNo, err.Error()))
			continue
		}

		if rec1.Len() != rec2.Len() {
			mismatch := &txerr.ColumnCountMismatch{Line: lineNo, N1: rec1.Len(), N2: rec2.Len()}
			flags |= tlcompare.StructureMismatch
			report.Reasons = append(report.Reasons, mismatch.Error())
			continue
		}

		isDataLine := rec1.Len() == desc1.DataColumnCount

		for j := 0; j < rec1.Len(); j++ {
			v1, v2 := rec1.Values[j], rec2.Values[j]
			dp1, dp2 := rec1.Decimals[j], rec2.Decimals[j]

			minDP, _ := tracker.Observe(j, rec1.Len(), dp1, dp2)

			out := diffclass.Classify(v1, v2, minDP, j, c.Thresholds, rangeColumn)
			if notice := diffclass.Accumulate(out, minDP, lineNo, &counters, &maxima, &flags); notice != "" {
				report.CriticalNotice = notice
			}

			if isDataLine && v1 <= diffclass.Ignore && v2 <= diffclass.Ignore {
				dataset = append(dataset, pattern.Point{Range: rec1.Values[0], Error: v1 - v2})
			}

			if j == 0 && !unitChecked && v1 != v2 {
				unitChecked = true
				if ratio, ok := unitMismatch(v1, v2); ok {
					flags |= tlcompare.UnitMismatch
					report.UnitMismatchLine = lineNo
					report.UnitMismatchRatio = ratio
				}
			}
		}
	}

	if counters.DiffNonZero == 0 {
		flags |= tlcompare.FilesAreSame
	}
	if counters.DiffNonTrivial == 0 {
		flags |= tlcompare.FilesHaveSameValues
	}

	pat := pattern.Analyze(dataset)

	v := verdict.Evaluate(counters, flags, pat)
	if v.Pass {
		flags |= tlcompare.FilesAreCloseEnough
	}

	report.Counters = counters
	report.Maxima = maxima
	report.Flags = flags
	report.Pattern = pat
	report.Pass = v.Pass
	report.Reasons = append(report.Reasons, v.Reasons...)

	return report
}

// unitMismatch applies the ~1852 ratio detector.
func unitMismatch(v1, v2 float64) (ratio float64, ok bool) {
	if v2 == 0 {
		return 0, false
	}
	r := v1 / v2
	if math.Abs(r-unitRatio)/unitRatio < unitRatioTol {
		return r, true
	}
	if r != 0 {
		if math.Abs(1/r-unitRatio)/unitRatio < unitRatioTol {
			return r, true
		}
	}
	return 0, false
}

func reasonLine(line int, msg string) string {
	return fmt.Sprintf("%s (line %d)", msg, line)
}

// readAllLines reads every line of path, preserving blank lines, so the
// comparator can align both files index-for-index including the
// line-count-mismatch check.
func readAllLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, txerr.WrapIo(path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, txerr.WrapIo(path, err)
	}
	return lines, nil
}
