package lcov

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// Test is one named test's coverage contribution to a single source file:
// the lines, functions, and branches it exercised, each keyed and merged
// independently.
type Test struct {
	Lines     *Lines
	Functions *Functions
	Branches  *Branches
}

// NewTest returns an empty Test.
func NewTest() *Test {
	return &Test{
		Lines:     NewLines(),
		Functions: NewFunctions(),
		Branches:  NewBranches(),
	}
}

// Clone returns a deep copy.
func (t *Test) Clone() *Test {
	return &Test{
		Lines:     t.Lines.Clone(),
		Functions: t.Functions.Clone(),
		Branches:  t.Branches.Clone(),
	}
}

// TryMerge folds other into t field by field. Lines and Functions can each
// fail independently (checksum or declared-line mismatch); Branches never
// fails. The first field-level error aborts the merge, wrapped as a
// *TestError so callers above this layer can recognize "this Test merge
// failed" before inspecting which field caused it.
func (t *Test) TryMerge(other *Test) error {
	if err := t.Lines.TryMergeLines(other.Lines); err != nil {
		return newTestError(err)
	}
	if err := t.Functions.TryMergeFunctions(other.Functions); err != nil {
		return newTestError(err)
	}
	t.Branches.MergeBranches(other.Branches)
	return nil
}

// Tests is the ordered mapping TestName -> Test for a single source file.
// The empty test name ("") is a valid key: it is where DA/FN/FNDA/BRDA
// records accumulate when no TN record preceded them.
type Tests struct {
	tests *treemap.Map
}

// NewTests returns an empty Tests.
func NewTests() *Tests {
	return &Tests{tests: treemap.NewWith(compareString)}
}

// Get returns the Test recorded under name, if any.
func (t *Tests) Get(name TestName) (*Test, bool) {
	v, ok := t.tests.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Test), true
}

// GetOrCreate returns the Test recorded under name, creating and storing an
// empty one first if none exists yet.
func (t *Tests) GetOrCreate(name TestName) *Test {
	v, ok := t.tests.Get(name)
	if ok {
		return v.(*Test)
	}
	test := NewTest()
	t.tests.Put(name, test)
	return test
}

// IsEmpty reports whether no tests have been recorded.
func (t *Tests) IsEmpty() bool {
	return t.tests.Size() == 0
}

// Len reports the number of distinct test names recorded.
func (t *Tests) Len() int {
	return t.tests.Size()
}

// TestEntry is one (name, test) pair, used when iterating Tests in
// ascending name order.
type TestEntry struct {
	Name TestName
	Test *Test
}

// Entries returns every (name, test) pair in ascending name order.
func (t *Tests) Entries() []TestEntry {
	entries := make([]TestEntry, 0, t.tests.Size())
	it := t.tests.Iterator()
	for it.Next() {
		entries = append(entries, TestEntry{
			Name: it.Key().(TestName),
			Test: it.Value().(*Test),
		})
	}
	return entries
}

// Clone returns a deep copy.
func (t *Tests) Clone() *Tests {
	clone := NewTests()
	for _, entry := range t.Entries() {
		clone.tests.Put(entry.Name, entry.Test.Clone())
	}
	return clone
}

// TryMerge folds other into t, test name by test name: a name present in
// both sides merges its Test in place, a name present only in other is
// cloned in.
func (t *Tests) TryMerge(other *Tests) error {
	for _, entry := range other.Entries() {
		existing, ok := t.tests.Get(entry.Name)
		if !ok {
			t.tests.Put(entry.Name, entry.Test.Clone())
			continue
		}
		if err := existing.(*Test).TryMerge(entry.Test); err != nil {
			return err
		}
	}
	return nil
}

// Union folds every test's Lines, Functions, and Branches into a single
// Test representing this file's coverage across all tests combined.
// Unlike TryMerge this never returns an error. TryMerge only compares
// tests that share a name, so two differently named tests can still
// disagree on a line checksum or a declared function line; such an error
// is discarded here, and the fold of that test's Lines (or Functions)
// stops at the conflicting entry.
func (t *Tests) Union() *Test {
	union := NewTest()
	for _, entry := range t.Entries() {
		_ = union.Lines.TryMergeLines(entry.Test.Lines)
		_ = union.Functions.TryMergeFunctions(entry.Test.Functions)
		union.Branches.MergeBranches(entry.Test.Branches)
	}
	return union
}
