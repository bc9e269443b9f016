package structure

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyze_SimpleDataFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "1.0 10.0\n2.0 20.0\n3.0 30.0\n4.0 40.0\n")

	d, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if d.DataColumnCount != 2 {
		t.Errorf("DataColumnCount = %d, want 2", d.DataColumnCount)
	}
	if d.LineCount != 4 {
		t.Errorf("LineCount = %d, want 4", d.LineCount)
	}
	if !d.RangeColumn {
		t.Error("expected RangeColumn = true for monotone fixed-delta column 0 starting below 100")
	}
}

func TestAnalyze_HeaderGroupDetected(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "title line\n1.0 10.0 5.0\n2.0 20.0 6.0\n3.0 30.0 7.0\n4.0 40.0 8.0\n")

	d, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(d.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(d.Groups))
	}
	if !d.Groups[0].IsHeader {
		t.Error("first group should be a header (odd column count out)")
	}
	if d.Groups[1].IsHeader {
		t.Error("second group should not be a header")
	}
}

func TestAnalyze_RangeColumnRejectsNonMonotone(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "1.0 10.0\n3.0 20.0\n2.0 30.0\n4.0 40.0\n")

	d, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if d.RangeColumn {
		t.Error("expected RangeColumn = false for non-monotone column 0")
	}
}

func TestAnalyze_RangeColumnRejectsStartAbove100(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "100.0 10.0\n101.0 20.0\n102.0 30.0\n103.0 40.0\n")

	d, err := Analyze(path)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if d.RangeColumn {
		t.Error("expected RangeColumn = false when start value is not < 100")
	}
}

func TestCompatible(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "a.txt", "1.0 10.0\n2.0 20.0\n3.0 30.0\n")
	p2 := writeFile(t, dir, "b.txt", "1.0 11.0\n2.0 21.0\n3.0 31.0\n")
	p3 := writeFile(t, dir, "c.txt", "1.0 10.0 5.0\n2.0 20.0 6.0\n3.0 30.0 7.0\n")

	d1, err := Analyze(p1)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Analyze(p2)
	if err != nil {
		t.Fatal(err)
	}
	d3, err := Analyze(p3)
	if err != nil {
		t.Fatal(err)
	}

	if !Compatible(d1, d2) {
		t.Error("expected matching two-column files to be Compatible")
	}
	if Compatible(d1, d3) {
		t.Error("expected two-column and three-column files to be incompatible")
	}
}

func TestAnalyze_MissingFileIsIoError(t *testing.T) {
	_, err := Analyze("/nonexistent/path/does-not-exist.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
