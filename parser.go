package lcov

import (
	"errors"
	"io"

	"github.com/covtrace/lcov-merge/record"
)

// parseState is the cursor the parser carries through a tracefile: the
// current test name, the current source file, and the staging area where
// records accumulate between an SF record and its closing end_of_record.
// Only end_of_record commits staged records, so two sections for the same
// source path within one tracefile merge exactly as two separate inputs
// would.
type parseState struct {
	currentTestName TestName
	currentSource   SourceFile
	staging         *Tests
	files           *Files
}

// ParseFile reads a single LCOV tracefile from r into a fresh Files tree.
func ParseFile(r io.Reader) (*Files, error) {
	state := &parseState{staging: NewTests(), files: NewFiles()}
	reader := record.NewReader(r)

	for reader.Scan() {
		if err := state.apply(reader.Record()); err != nil {
			return nil, err
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	return state.files, nil
}

// apply folds one record into the cursor state. TN sets the current test
// name for everything until the next TN record and opens an empty Test in
// staging, so a block that carries no data records still round-trips. SF
// resets only the source pointer, not the test name: LCOV allows one TN
// record to precede several SF sections, attributing all of them to the
// same test, and end_of_record deliberately leaves the test name cursor
// untouched for the same reason.
func (s *parseState) apply(rec record.Record) error {
	switch rec.Kind {
	case record.KindTestName:
		s.currentTestName = rec.Value
		s.staging.GetOrCreate(rec.Value)
		return nil

	case record.KindSourceFile:
		s.currentSource = rec.Value
		return nil

	case record.KindEndOfRecord:
		return s.commit()

	case record.KindFunctionName:
		data, err := record.ParseFunctionName(rec.Value)
		if err != nil {
			return err
		}
		if err := s.test().Functions.TryMergeFunctionName(data); err != nil {
			return liftTestError(newTestError(err))
		}
		return nil

	case record.KindFunctionData:
		data, err := record.ParseFunctionData(rec.Value)
		if err != nil {
			return err
		}
		return s.test().Functions.TryMergeFunctionData(data)

	case record.KindLineData:
		data, err := record.ParseLineData(rec.Value)
		if err != nil {
			return err
		}
		if err := s.test().Lines.TryMergeLineData(data); err != nil {
			return liftTestError(newTestError(err))
		}
		return nil

	case record.KindBranchData:
		data, err := record.ParseBranchData(rec.Value)
		if err != nil {
			return err
		}
		s.test().Branches.MergeBranchData(data)
		return nil

	case record.KindFunctionsFound, record.KindFunctionsHit,
		record.KindLinesFound, record.KindLinesHit,
		record.KindBranchesFound, record.KindBranchesHit:
		// Summary records are validated, never trusted: the aggregate tree
		// recomputes these on output, so a well-formed summary line is
		// simply discarded here.
		_, err := record.ParseCount(rec.Kind, rec.Value)
		return err

	default:
		return nil
	}
}

// commit closes the current source block: the staged tests merge into the
// File at the current source path, and staging resets for the next block.
// A second block for an already-seen path merges rather than replaces, so
// the commit itself can surface a checksum or declared-line conflict.
func (s *parseState) commit() error {
	file := s.files.GetOrCreate(s.currentSource)
	if err := file.Tests.TryMerge(s.staging); err != nil {
		var testErr *TestError
		if errors.As(err, &testErr) {
			return liftTestError(testErr)
		}
		return err
	}
	s.staging = NewTests()
	s.currentSource = ""
	return nil
}

// test returns the staging Test records are currently accumulating into,
// creating it on first reference. If no TN record has been seen yet the
// test name is the empty string, a valid key in its own right; real
// tracefiles emitted by lcov always lead with a TN record, but nothing
// here requires one.
func (s *parseState) test() *Test {
	return s.staging.GetOrCreate(s.currentTestName)
}
