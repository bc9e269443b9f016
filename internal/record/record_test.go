package record

import "testing"

func TestEmpty(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   \t  ", true},
		{"1.0", false},
		{"  1.0  ", false},
	}
	for _, c := range cases {
		if got := Empty(c.text); got != c.want {
			t.Errorf("Empty(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestParse_Basic(t *testing.T) {
	rec, err := Parse(1, "10.5 20.25 -1.0", 0)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rec.Len())
	}
	if rec.Values[0] != 10.5 || rec.Decimals[0] != 1 {
		t.Errorf("rec.Values[0]/Decimals[0] = %v/%d, want 10.5/1", rec.Values[0], rec.Decimals[0])
	}
}

func TestParse_ShortLine(t *testing.T) {
	_, err := Parse(5, "1.0 2.0", 3)
	if err == nil {
		t.Fatal("expected ShortLine error")
	}
}

func TestParse_MinColsZeroDisablesCheck(t *testing.T) {
	rec, err := Parse(1, "1.0", 0)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if rec.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rec.Len())
	}
}

func TestParse_PropagatesScanError(t *testing.T) {
	_, err := Parse(1, "1.0 notanumber", 0)
	if err == nil {
		t.Fatal("expected error from underlying token scan")
	}
}
