package lcov

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Report is an entire merged coverage tree: every source file, broken
// down by test, broken down by line/function/branch data. It is
// the top-level type every public operation produces or consumes.
type Report struct {
	Files *Files
}

// NewReport returns an empty Report.
func NewReport() *Report {
	return &Report{Files: NewFiles()}
}

// ParseReport reads a single LCOV tracefile from r into a new Report.
func ParseReport(r io.Reader) (*Report, error) {
	files, err := ParseFile(r)
	if err != nil {
		return nil, err
	}
	return &Report{Files: files}, nil
}

// TryMerge folds other into r in place, file by file. The first
// checksum or function-declaration conflict between the two reports
// aborts the merge and leaves r in a partially merged state; callers that
// need the pre-merge tree must Clone first.
func (r *Report) TryMerge(other *Report) error {
	return r.Files.TryMerge(other.Files)
}

// Clone returns a deep copy.
func (r *Report) Clone() *Report {
	return &Report{Files: r.Files.Clone()}
}

// WriteTo serializes r as an LCOV tracefile, in ascending source-file
// order, each file's tests in ascending test-name order. Every
// FNF/FNH/LF/LH/BRF/BRH summary line is recomputed from the aggregate
// tree rather than carried over from input, so a merge can never emit a
// stale count.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, fileEntry := range r.Files.Entries() {
		for _, testEntry := range fileEntry.File.Tests.Entries() {
			if err := writeSection(cw, fileEntry.Source, testEntry.Name, testEntry.Test); err != nil {
				return cw.n, err
			}
		}
	}
	return cw.n, cw.err
}

// String renders r as an LCOV tracefile. It panics only if an in-memory
// buffer write somehow fails, which does not happen in practice.
func (r *Report) String() string {
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.String()
}

// SaveAs writes r to path as an LCOV tracefile, creating or truncating it.
func (r *Report) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return newIOError(path, err)
	}
	defer f.Close()

	if _, err := r.WriteTo(f); err != nil {
		return newIOError(path, err)
	}
	return nil
}

// writeSection emits one (test, source) block. TN is written even when
// the test name is empty, exactly as lcov's own geninfo does; a sub-block
// with no entries is skipped entirely, summary lines included.
func writeSection(w io.Writer, source SourceFile, test TestName, t *Test) error {
	if _, err := fmt.Fprintf(w, "TN:%s\n", test); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "SF:%s\n", source); err != nil {
		return err
	}
	if err := writeFunctions(w, t.Functions); err != nil {
		return err
	}
	if err := writeBranches(w, t.Branches); err != nil {
		return err
	}
	if err := writeLines(w, t.Lines); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "end_of_record")
	return err
}

func writeFunctions(w io.Writer, functions *Functions) error {
	if functions.IsEmpty() {
		return nil
	}
	for _, fn := range functions.Entries() {
		if _, err := fmt.Fprintf(w, "FN:%d,%s\n", fn.LineNumber, fn.Name); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "FNDA:%d,%s\n", fn.ExecutionCount, fn.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "FNF:%d\n", functions.FoundCount()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "FNH:%d\n", functions.HitCount())
	return err
}

func writeBranches(w io.Writer, branches *Branches) error {
	if branches.IsEmpty() {
		return nil
	}
	for _, line := range branches.Entries() {
		for _, branch := range line.Blocks.Entries() {
			if _, err := fmt.Fprintf(w, "BRDA:%d,%d,%d,%d\n", line.Line, branch.Unit.Block, branch.Unit.Branch, branch.Taken); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "BRF:%d\n", branches.FoundCount()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "BRH:%d\n", branches.HitCount())
	return err
}

func writeLines(w io.Writer, lines *Lines) error {
	if lines.IsEmpty() {
		return nil
	}
	for _, line := range lines.Entries() {
		if line.HasChecksum {
			if _, err := fmt.Fprintf(w, "DA:%d,%d,%s\n", line.LineNumber, line.ExecutionCount, line.Checksum); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "DA:%d,%d\n", line.LineNumber, line.ExecutionCount); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "LF:%d\n", lines.FoundCount()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "LH:%d\n", lines.HitCount())
	return err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// contextErr checks ctx for cancellation between files, the only point
// MergeFiles ever consults it: parsing and merging a single file is
// never interrupted mid-way.
func contextErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
