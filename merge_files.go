package lcov

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// MergeFiles parses and merges a sequence of LCOV tracefiles in order,
// returning the combined Report. It stops at the first file
// that fails to parse or that conflicts with what has been merged so far,
// reporting the offending path on the returned *MergeError.
//
// ctx is consulted once per file, just before that file is opened:
// MergeFiles never starts goroutines, so cancellation can only ever land
// at that one checkpoint, not mid-parse or mid-merge.
func MergeFiles(ctx context.Context, paths []string) (*Report, error) {
	report := NewReport()

	for _, path := range paths {
		if err := contextErr(ctx); err != nil {
			return nil, err
		}

		logrus.WithField("path", path).Debug("merging tracefile")

		next, err := parseReportFile(path)
		if err != nil {
			return nil, err
		}

		if err := report.TryMerge(next); err != nil {
			var testErr *TestError
			if errors.As(err, &testErr) {
				merged := liftTestError(testErr)
				merged.Path = path
				return nil, merged
			}
			return nil, errors.Wrapf(err, "merging %s", path)
		}
	}

	return report, nil
}

func parseReportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIOError(path, err)
	}
	defer f.Close()

	report, err := ParseReport(f)
	if err != nil {
		if merr, ok := err.(*MergeError); ok {
			merr.Path = path
			return nil, merr
		}
		return nil, newRecordParseError(path, err)
	}
	return report, nil
}
