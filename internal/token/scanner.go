// Package token scans one whitespace-delimited text line into real-valued
// tokens, recognizing parenthesized complex literals `(re, im)` and
// recording each token's printed decimal-place count.
//
// Grounded on the un-generated, explicit-loop scanning style already used
// in this codebase's ancestry for source-line tokenization: no lexer
// generator, a small hand-rolled loop over a line's whitespace-separated
// fields.
package token

import (
	"strconv"
	"strings"

	"github.com/jlighthall/tlcompare/internal/txerr"
)

// Token is one scanned real value plus its printed decimal-place count.
type Token struct {
	Value   float64
	Decimals int
}

// Scan splits line on whitespace and yields one Token per real number,
// expanding `(re, im)` complex literals into two Tokens (real, then
// imaginary). line is the 1-based line number, used only for error
// messages.
func Scan(line int, text string) ([]Token, error) {
	fields := splitFields(text)
	var out []Token

	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "(") {
			complexFields, consumed, err := gatherComplex(fields, i)
			if err != nil {
				return nil, &txerr.MalformedComplex{Line: line, Token: f}
			}
			re, im, err := parseComplex(complexFields)
			if err != nil {
				return nil, &txerr.MalformedComplex{Line: line, Token: strings.Join(complexFields, " ")}
			}
			reTok, err := scanOne(line, re)
			if err != nil {
				return nil, err
			}
			imTok, err := scanOne(line, im)
			if err != nil {
				return nil, err
			}
			out = append(out, reTok, imTok)
			i += consumed - 1
			continue
		}

		tok, err := scanOne(line, f)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}

	return out, nil
}

// splitFields splits on any whitespace run, dropping empty fields.
func splitFields(text string) []string {
	return strings.Fields(text)
}

// gatherComplex joins consecutive fields starting at fields[start] (which
// begins with "(") until one ends with ")", inclusive. It returns the
// joined complex-literal substring's constituent fields and how many
// fields were consumed.
func gatherComplex(fields []string, start int) (joined []string, consumed int, err error) {
	for i := start; i < len(fields); i++ {
		joined = append(joined, fields[i])
		if strings.HasSuffix(fields[i], ")") {
			return joined, i - start + 1, nil
		}
	}
	return nil, 0, errUnterminatedComplex
}

var errUnterminatedComplex = strconvError("unterminated complex literal")

type strconvError string

func (e strconvError) Error() string { return string(e) }

// parseComplex takes the joined fields of a complex literal like
// "(1.5," "2.25)" and returns the two real subtoken strings.
func parseComplex(fields []string) (re, im string, err error) {
	joined := strings.Join(fields, " ")
	joined = strings.TrimPrefix(joined, "(")
	joined = strings.TrimSuffix(joined, ")")
	parts := strings.SplitN(joined, ",", 2)
	if len(parts) != 2 {
		return "", "", errUnterminatedComplex
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// scanOne parses a single real-number subtoken and computes its decimal
// count: position of the decimal point to the end of the mantissa, with
// exponent characters adjusting the *effective* decimal count
// (sig_figs - 1 - exponent, clamped to [0, 10]); no decimal point and no
// exponent means 0.
func scanOne(line int, raw string) (Token, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Token{}, &txerr.MalformedComplex{Line: line, Token: raw}
	}

	dp, err := decimalCount(raw)
	if err != nil {
		return Token{}, err
	}
	if dp < 0 || dp > 17 {
		return Token{}, &txerr.InvalidDecimalCount{Line: line, Count: dp}
	}

	return Token{Value: v, Decimals: dp}, nil
}

// decimalCount applies the decimal-count rule to one numeric literal
// string, including the scientific-notation effective-decimals conversion.
func decimalCount(raw string) (int, error) {
	mantissa := raw
	exponent := 0

	if idx := strings.IndexAny(raw, "eE"); idx >= 0 {
		mantissa = raw[:idx]
		expPart := raw[idx+1:]
		e, err := strconv.Atoi(expPart)
		if err != nil {
			return 0, &txerr.MalformedComplex{Token: raw}
		}
		exponent = e
	}

	mantissa = strings.TrimPrefix(mantissa, "+")
	mantissa = strings.TrimPrefix(mantissa, "-")

	dotIdx := strings.IndexByte(mantissa, '.')
	if dotIdx < 0 {
		if exponent == 0 {
			return 0, nil
		}
		// Integer mantissa with an exponent: significant figures are the
		// mantissa's digit count; effective decimals = sigFigs-1-exponent.
		sigFigs := len(strings.TrimLeft(mantissa, "0"))
		if sigFigs == 0 {
			sigFigs = 1
		}
		return clamp(sigFigs-1-exponent, 0, 10), nil
	}

	fracDigits := len(mantissa) - dotIdx - 1
	if exponent == 0 {
		return fracDigits, nil
	}

	intDigits := dotIdx
	sigFigs := intDigits + fracDigits
	return clamp(sigFigs-1-exponent, 0, 10), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
