package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

func TestBuildJSONReport_FieldMapping(t *testing.T) {
	r := &tlcompare.Report{
		File1: "a.txt",
		File2: "b.txt",
		Pass:  true,
		Flags: tlcompare.UnitMismatch,
		Counters: tlcompare.Counters{
			ElemTotal: 10, DiffNonZero: 3, DiffCritical: 1,
		},
		UnitMismatchLine:  4,
		UnitMismatchRatio: 1852.0,
		Pattern:           &tlcompare.PatternResult{Pattern: tlcompare.PatternRandomNoise, N: 8},
	}

	out := BuildJSONReport(r)
	if out.File1 != "a.txt" || out.File2 != "b.txt" {
		t.Errorf("file names not mapped: %+v", out)
	}
	if !out.UnitMismatch || out.UnitMismatchLine != 4 {
		t.Errorf("unit mismatch fields not mapped: %+v", out)
	}
	if out.Counters.ElemTotal != 10 || out.Counters.DiffCritical != 1 {
		t.Errorf("counters not mapped: %+v", out.Counters)
	}
	if out.Pattern == nil || out.Pattern.Classification != "RANDOM_NOISE" {
		t.Errorf("pattern not mapped: %+v", out.Pattern)
	}
}

func TestBuildJSONReport_FatalErrMapsToErrorField(t *testing.T) {
	r := &tlcompare.Report{File1: "a.txt", File2: "b.txt", FatalErr: errString("boom")}
	out := BuildJSONReport(r)
	if out.Error != "boom" {
		t.Errorf("Error = %q, want %q", out.Error, "boom")
	}
}

func TestBuildJSONReport_NilPatternOmitted(t *testing.T) {
	r := &tlcompare.Report{File1: "a.txt", File2: "b.txt"}
	out := BuildJSONReport(r)
	if out.Pattern != nil {
		t.Errorf("Pattern = %+v, want nil", out.Pattern)
	}
}

func TestWriteJSON_ProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	r := &tlcompare.Report{File1: "a.txt", File2: "b.txt", Pass: true}
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["file1"] != "a.txt" {
		t.Errorf("decoded file1 = %v, want a.txt", decoded["file1"])
	}
	if decoded["pass"] != true {
		t.Errorf("decoded pass = %v, want true", decoded["pass"])
	}
}
