package token

import "testing"

func TestScan_PlainValues(t *testing.T) {
	toks, err := Scan(1, "10.5  -3.25   7")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("len(toks) = %d, want 3", len(toks))
	}
	if toks[0].Value != 10.5 || toks[0].Decimals != 1 {
		t.Errorf("toks[0] = %+v, want {10.5 1}", toks[0])
	}
	if toks[1].Value != -3.25 || toks[1].Decimals != 2 {
		t.Errorf("toks[1] = %+v, want {-3.25 2}", toks[1])
	}
	if toks[2].Value != 7 || toks[2].Decimals != 0 {
		t.Errorf("toks[2] = %+v, want {7 0}", toks[2])
	}
}

func TestScan_ComplexLiteral(t *testing.T) {
	toks, err := Scan(1, "1.0 (2.5, -1.25) 3.0")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(toks) != 4 {
		t.Fatalf("len(toks) = %d, want 4", len(toks))
	}
	if toks[1].Value != 2.5 || toks[2].Value != -1.25 {
		t.Errorf("complex expansion = %+v, %+v, want 2.5, -1.25", toks[1], toks[2])
	}
}

func TestScan_ComplexLiteralSplitAcrossFields(t *testing.T) {
	// Whitespace inside the parens splits into separate fields; gatherComplex
	// must rejoin them before parsing.
	toks, err := Scan(1, "(1.5,  2.25)")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(toks) != 2 {
		t.Fatalf("len(toks) = %d, want 2", len(toks))
	}
	if toks[0].Value != 1.5 || toks[1].Value != 2.25 {
		t.Errorf("toks = %+v, want 1.5, 2.25", toks)
	}
}

func TestScan_UnterminatedComplexIsError(t *testing.T) {
	_, err := Scan(1, "(1.5, 2.25")
	if err == nil {
		t.Fatal("expected error for unterminated complex literal")
	}
}

func TestScan_MalformedNumberIsError(t *testing.T) {
	_, err := Scan(1, "1.5 abc 3.0")
	if err == nil {
		t.Fatal("expected error for non-numeric token")
	}
}

func TestScan_EmptyLine(t *testing.T) {
	toks, err := Scan(1, "   ")
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(toks) != 0 {
		t.Errorf("len(toks) = %d, want 0", len(toks))
	}
}

func TestDecimalCount_ScientificNotation(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"1.5e2", 0},    // sigFigs=2, exponent=2 -> 2-1-2 = -1 -> clamped to 0
		{"1.5e0", 1},    // sigFigs=2, exponent=0 -> 2-1-0 = 1
		{"1.23e-2", 4},  // sigFigs=3, exponent=-2 -> 3-1+2 = 4
		{"100", 0},      // no dot, no exponent
		{"1e3", 0},      // integer mantissa with exponent, sigFigs=1 -> 1-1-3 clamp 0
	}
	for _, c := range cases {
		got, err := decimalCount(c.raw)
		if err != nil {
			t.Fatalf("decimalCount(%q) error: %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("decimalCount(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestScan_InvalidDecimalCountOutOfRange(t *testing.T) {
	// A plain decimal literal with more than 17 fractional digits exceeds
	// the valid [0,17] range and is unclamped (unlike the scientific path),
	// so it must surface as an error rather than being silently truncated.
	_, err := Scan(1, "0.123456789012345678")
	if err == nil {
		t.Fatal("expected InvalidDecimalCount error for 18 fractional digits")
	}
}
