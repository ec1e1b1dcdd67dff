package lcov

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/covtrace/lcov-merge/record"
)

// Line is one source line's coverage: how many times it executed, and
// the optional content checksum LCOV attaches to detect that two inputs
// describe the same revision of the same source line.
type Line struct {
	LineNumber     LineNumber
	ExecutionCount ExecutionCount
	Checksum       CheckSum
	HasChecksum    bool
}

// NewLine constructs a Line. checksum == "" with hasChecksum == false means
// no checksum was recorded.
func NewLine(line LineNumber, count ExecutionCount, checksum CheckSum, hasChecksum bool) Line {
	return Line{LineNumber: line, ExecutionCount: count, Checksum: checksum, HasChecksum: hasChecksum}
}

// IsHit reports whether this line executed at least once.
func (l Line) IsHit() bool {
	return hitExecutionCount(l.ExecutionCount).IsHit()
}

// Lines is the ordered mapping LineNumber -> Line for one (file, test)
// pair.
type Lines struct {
	lines *treemap.Map
}

// NewLines returns an empty Lines.
func NewLines() *Lines {
	return &Lines{lines: treemap.NewWith(compareUint32)}
}

// Get returns the Line recorded for line, if any.
func (l *Lines) Get(line LineNumber) (Line, bool) {
	v, ok := l.lines.Get(line)
	if !ok {
		return Line{}, false
	}
	return v.(Line), true
}

// IsEmpty reports whether no lines have been recorded.
func (l *Lines) IsEmpty() bool {
	return l.lines.Size() == 0
}

// HitCount is the number of lines with a nonzero execution count.
func (l *Lines) HitCount() int {
	hit := 0
	for _, line := range l.Entries() {
		if line.IsHit() {
			hit++
		}
	}
	return hit
}

// FoundCount is the number of distinct lines recorded.
func (l *Lines) FoundCount() int {
	return l.lines.Size()
}

// Entries returns every Line in ascending line-number order.
func (l *Lines) Entries() []Line {
	entries := make([]Line, 0, l.lines.Size())
	it := l.lines.Iterator()
	for it.Next() {
		entries = append(entries, it.Value().(Line))
	}
	return entries
}

// Clone returns a deep copy.
func (l *Lines) Clone() *Lines {
	clone := NewLines()
	for _, line := range l.Entries() {
		clone.lines.Put(line.LineNumber, line)
	}
	return clone
}

// TryMergeLineData folds a single DA record into this map.
//
// A line not yet present is inserted as-is. A line already present must be
// checksum-compatible with the incoming record: if both sides carry a
// checksum and they differ, the merge fails with ChecksumMismatchError. If
// only one side carries a checksum, that checksum is retained: an
// absent-vs-present disagreement is tolerated, not an error. On success
// the execution counts are summed.
func (l *Lines) TryMergeLineData(data record.LineData) error {
	existing, ok := l.lines.Get(data.Line)
	if !ok {
		line := Line{LineNumber: data.Line, ExecutionCount: data.Count}
		if data.Checksum != nil {
			line.Checksum = *data.Checksum
			line.HasChecksum = true
		}
		l.lines.Put(data.Line, line)
		return nil
	}

	current := existing.(Line)
	if data.Checksum != nil {
		if current.HasChecksum && current.Checksum != *data.Checksum {
			return &ChecksumMismatchError{
				Existing: LineRef{Line: current.LineNumber, Checksum: current.Checksum},
				Incoming: LineRef{Line: data.Line, Checksum: *data.Checksum},
			}
		}
		if !current.HasChecksum {
			current.Checksum = *data.Checksum
			current.HasChecksum = true
		}
	}
	current.ExecutionCount += data.Count
	l.lines.Put(data.Line, current)
	return nil
}

// TryMergeLines folds another Lines into this one, pointwise, applying the
// same compatibility rule per overlapping line.
func (l *Lines) TryMergeLines(other *Lines) error {
	for _, line := range other.Entries() {
		data := record.LineData{Line: line.LineNumber, Count: line.ExecutionCount}
		if line.HasChecksum {
			checksum := line.Checksum
			data.Checksum = &checksum
		}
		if err := l.TryMergeLineData(data); err != nil {
			return err
		}
	}
	return nil
}
