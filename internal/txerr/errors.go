// Package txerr defines the error taxonomy: IoError, ParseError,
// StructureError, and ContractError. Each is a distinct Go type so callers
// can recover the specific failure with errors.As, while internal/compare
// decides whether a given error is fatal (aborts the whole comparison) or
// recoverable (aborts the current line only).
//
// Modeled on cockroachdb/apd's condition.go: named, typed failure values
// instead of sentinel strings, plus github.com/pkg/errors for Wrap/Cause
// chains on the fatal (IoError, ContractError) paths.
package txerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// IoError wraps a failure to open or read an input file. Always fatal.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// WrapIo builds an IoError, attaching a stack via pkg/errors. Error()
// prints only the message; the stack is visible when the wrapped error is
// formatted with %+v.
func WrapIo(path string, err error) *IoError {
	return &IoError{Path: path, Err: errors.Wrapf(err, "open %s", path)}
}

// InvalidDecimalCount is a ParseError: a token's decimal-place count fell
// outside [0, 17].
type InvalidDecimalCount struct {
	Line  int
	Count int
}

func (e *InvalidDecimalCount) Error() string {
	return fmt.Sprintf("line %d: invalid decimal count %d (want [0,17])", e.Line, e.Count)
}

// MalformedComplex is a ParseError: a `(re, im)` token did not contain
// exactly two comma-separated real subtokens before its closing paren. The
// scanner also returns it for any plain token that does not parse as a
// real number.
type MalformedComplex struct {
	Line  int
	Token string
}

func (e *MalformedComplex) Error() string {
	return fmt.Sprintf("line %d: malformed complex literal %q", e.Line, e.Token)
}

// ShortLine is a ParseError: a line had fewer tokens than the previously
// established data-column count.
type ShortLine struct {
	Line int
	Want int
	Got  int
}

func (e *ShortLine) Error() string {
	return fmt.Sprintf("line %d: short line, want %d columns, got %d", e.Line, e.Want, e.Got)
}

// LineCountMismatch is a StructureError: the two files had a different
// number of lines. Always yields a failed verdict.
type LineCountMismatch struct {
	N1, N2 int
}

func (e *LineCountMismatch) Error() string {
	return fmt.Sprintf("line count mismatch: %d vs %d", e.N1, e.N2)
}

// ColumnCountMismatch is a StructureError: a specific line had a different
// token count between the two files. Comparison continues, but the file
// pair is marked failed.
type ColumnCountMismatch struct {
	Line   int
	N1, N2 int
}

func (e *ColumnCountMismatch) Error() string {
	return fmt.Sprintf("line %d: column count mismatch: %d vs %d", e.Line, e.N1, e.N2)
}

// ContractError marks an internal invariant violation — a bug, not a data
// problem. Always fatal. NewContractError attaches a stack trace via
// pkg/errors; Error() prints only the message, and the stack is visible
// when the wrapped error is formatted with %+v.
type ContractError struct {
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("internal contract violation: %v", e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

// NewContractError builds a ContractError, attaching a stack via pkg/errors.
func NewContractError(format string, args ...interface{}) *ContractError {
	return &ContractError{Err: errors.Errorf(format, args...)}
}

// Fatal reports whether err is one of the taxonomy's fatal kinds (IoError
// or ContractError).
func Fatal(err error) bool {
	var ioErr *IoError
	var contractErr *ContractError
	return errors.As(err, &ioErr) || errors.As(err, &contractErr)
}
