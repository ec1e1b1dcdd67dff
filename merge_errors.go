package lcov

import (
	"errors"
	"fmt"
)

// LineRef names one line of one input's worth of checksum metadata, for
// use inside ChecksumMismatchError. It is tagged data rather than a
// formatted string so callers can pattern-match on it with errors.As.
type LineRef struct {
	Line     LineNumber
	Checksum CheckSum
}

// ChecksumMismatchError reports that the same source line was seen with
// two different, non-empty checksums across merge inputs.
type ChecksumMismatchError struct {
	Existing LineRef
	Incoming LineRef
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("lcov: checksum mismatch at line %d: %q != %q",
		e.Existing.Line, e.Existing.Checksum, e.Incoming.Checksum)
}

// ChecksumEmptyError is reserved for a stricter policy than this
// implementation enforces: a line seen once without a checksum and once
// with one. This package treats that case as tolerated, so no
// code path constructs this error; it exists so a future strict mode has
// somewhere to report to without changing the public error taxonomy.
type ChecksumEmptyError struct {
	Line LineRef
}

func (e *ChecksumEmptyError) Error() string {
	return fmt.Sprintf("lcov: line %d has no checksum where one was expected", e.Line.Line)
}

// FunctionRef names one function's declared line, for use inside
// FunctionMismatchError.
type FunctionRef struct {
	Name FunctionName
	Line LineNumber
}

// FunctionMismatchError reports that the same function name was declared
// at two different line numbers across merge inputs.
type FunctionMismatchError struct {
	Existing FunctionRef
	Incoming FunctionRef
}

func (e *FunctionMismatchError) Error() string {
	return fmt.Sprintf("lcov: function %q declared at conflicting lines %d and %d",
		e.Existing.Name, e.Existing.Line, e.Incoming.Line)
}

// TestError wraps whichever of ChecksumMismatchError / FunctionMismatchError
// aborted a Test.TryMerge, Tests.TryMerge, or Files.TryMerge call. It exists
// as its own layer (rather than bubbling the concrete error straight to
// MergeError) so intermediate call sites can tell "this merge step failed"
// from "this specific field disagreed" without reaching all the way to the
// top-level error kind.
type TestError struct {
	err error // always *ChecksumMismatchError or *FunctionMismatchError
}

func newTestError(err error) *TestError {
	return &TestError{err: err}
}

func (e *TestError) Error() string {
	return e.err.Error()
}

func (e *TestError) Unwrap() error {
	return e.err
}

// ErrKind tags the broad category a MergeError falls into, so a caller can
// branch on it without unwrapping to the concrete type first.
type ErrKind string

const (
	ErrKindIO          ErrKind = "io"
	ErrKindRecordParse ErrKind = "record_parse"
	ErrKindChecksum    ErrKind = "checksum"
	ErrKindFunction    ErrKind = "function"
)

// MergeError is the tagged error MergeFiles and SaveAs return for I/O,
// record-parse, checksum and function-declaration failures; ParseFile
// returns it for checksum and function-declaration conflicts. Other
// errors pass through unwrapped: ParseFile returns a malformed record as
// *record.ParseError, the TryMerge methods of the tree return *TestError
// or the concrete mismatch error, and MergeFiles returns a cancelled
// context's error as is. Kind lets a caller branch broadly; Unwrap lets it
// reach the concrete *ChecksumMismatchError / *FunctionMismatchError /
// underlying I/O or parse error with errors.As.
type MergeError struct {
	Kind ErrKind
	Path string
	err  error
}

func (e *MergeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("lcov: %s: %v", e.Path, e.err)
	}
	return fmt.Sprintf("lcov: %v", e.err)
}

func (e *MergeError) Unwrap() error {
	return e.err
}

func newIOError(path string, err error) *MergeError {
	return &MergeError{Kind: ErrKindIO, Path: path, err: err}
}

func newRecordParseError(path string, err error) *MergeError {
	return &MergeError{Kind: ErrKindRecordParse, Path: path, err: err}
}

// liftTestError turns the TestError produced by a Report/Files merge step
// into the top-level MergeError, preserving whichever concrete error it
// wraps and picking the matching Kind.
func liftTestError(err *TestError) *MergeError {
	kind := ErrKindChecksum
	var functionErr *FunctionMismatchError
	if errors.As(err.err, &functionErr) {
		kind = ErrKindFunction
	}
	return &MergeError{Kind: kind, err: err}
}
