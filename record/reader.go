package record

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Reader streams an LCOV tracefile as a sequence of Records, one per
// non-blank line. Its Scan/Record/Err shape mirrors the bufio.Scanner it
// is built on.
type Reader struct {
	scanner *bufio.Scanner
	current Record
	err     error
}

// NewReader wraps r for record-at-a-time scanning.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Scan advances to the next non-blank record. It returns false at end of
// input or on the first malformed line; callers must check Err afterward.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			r.err = err
			return false
		}
		r.current = rec
		return true
	}
	r.err = r.scanner.Err()
	return false
}

// Record returns the record produced by the most recent successful Scan.
func (r *Reader) Record() Record {
	return r.current
}

// Err returns the first error encountered, if any. A nil Err after Scan
// returns false means the stream was exhausted cleanly.
func (r *Reader) Err() error {
	return r.err
}

func parseLine(line string) (Record, error) {
	if line == string(KindEndOfRecord) {
		return Record{Kind: KindEndOfRecord}, nil
	}

	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return Record{}, &ParseError{Text: line, Err: errMissingColon}
	}

	return Record{Kind: Kind(parts[0]), Value: parts[1]}, nil
}

var errMissingColon = strErr("record has no ':' separator")

type strErr string

func (e strErr) Error() string { return string(e) }

// ParseLineData parses the payload of a DA record: "<line>,<count>" or
// "<line>,<count>,<checksum>".
func ParseLineData(value string) (LineData, error) {
	parts := strings.SplitN(value, ",", 3)
	if len(parts) < 2 {
		return LineData{}, &ParseError{Kind: KindLineData, Text: value, Err: errFieldCount}
	}

	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return LineData{}, &ParseError{Kind: KindLineData, Text: value, Err: err}
	}
	count, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return LineData{}, &ParseError{Kind: KindLineData, Text: value, Err: err}
	}

	data := LineData{Line: uint32(line), Count: uint32(count)}
	if len(parts) == 3 && parts[2] != "" {
		checksum := parts[2]
		data.Checksum = &checksum
	}
	return data, nil
}

// ParseFunctionName parses the payload of an FN record: "<line>,<name>".
func ParseFunctionName(value string) (FunctionNameData, error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return FunctionNameData{}, &ParseError{Kind: KindFunctionName, Text: value, Err: errFieldCount}
	}

	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return FunctionNameData{}, &ParseError{Kind: KindFunctionName, Text: value, Err: err}
	}
	if parts[1] == "" {
		return FunctionNameData{}, &ParseError{Kind: KindFunctionName, Text: value, Err: errEmptyName}
	}

	return FunctionNameData{Line: uint32(line), Name: parts[1]}, nil
}

// ParseFunctionData parses the payload of an FNDA record: "<count>,<name>".
func ParseFunctionData(value string) (FunctionExecData, error) {
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return FunctionExecData{}, &ParseError{Kind: KindFunctionData, Text: value, Err: errFieldCount}
	}

	count, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return FunctionExecData{}, &ParseError{Kind: KindFunctionData, Text: value, Err: err}
	}
	if parts[1] == "" {
		return FunctionExecData{}, &ParseError{Kind: KindFunctionData, Text: value, Err: errEmptyName}
	}

	return FunctionExecData{Name: parts[1], Count: uint32(count)}, nil
}

// ParseBranchData parses the payload of a BRDA record:
// "<line>,<block>,<branch>,<taken>". A taken value of "-" means the branch
// was never instrumented as taken and is recorded as zero.
func ParseBranchData(value string) (BranchData, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return BranchData{}, &ParseError{Kind: KindBranchData, Text: value, Err: errFieldCount}
	}

	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return BranchData{}, &ParseError{Kind: KindBranchData, Text: value, Err: err}
	}
	block, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return BranchData{}, &ParseError{Kind: KindBranchData, Text: value, Err: err}
	}
	branch, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return BranchData{}, &ParseError{Kind: KindBranchData, Text: value, Err: err}
	}

	var taken uint64
	if parts[3] != "-" {
		taken, err = strconv.ParseUint(parts[3], 10, 32)
		if err != nil {
			return BranchData{}, &ParseError{Kind: KindBranchData, Text: value, Err: err}
		}
	}

	return BranchData{
		Line:   uint32(line),
		Block:  uint32(block),
		Branch: uint32(branch),
		Taken:  uint32(taken),
	}, nil
}

// ParseCount parses the payload of an LF/LH/FNF/FNH/BRF/BRH summary record.
// Summary records are accepted on input but never trusted: the aggregate
// tree recomputes them on output, so parsing them is only ever used to
// validate well-formedness, never to populate state.
func ParseCount(kind Kind, value string) (uint32, error) {
	count, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, &ParseError{Kind: kind, Text: value, Err: err}
	}
	return uint32(count), nil
}

var (
	errFieldCount = strErr("wrong number of comma-separated fields")
	errEmptyName  = strErr("name field is empty")
)
