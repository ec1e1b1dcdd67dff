package lcov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covtrace/lcov-merge/record"
)

func TestTestTryMergeDelegatesToEachField(t *testing.T) {
	a := NewTest()
	require.NoError(t, a.Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1}))
	require.NoError(t, a.Functions.TryMergeFunctionName(record.FunctionNameData{Line: 1, Name: "main"}))
	a.Branches.MergeBranchData(record.BranchData{Line: 1, Block: 0, Branch: 0, Taken: 1})

	b := NewTest()
	require.NoError(t, b.Lines.TryMergeLineData(record.LineData{Line: 1, Count: 2}))
	require.NoError(t, b.Functions.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 5}))
	b.Branches.MergeBranchData(record.BranchData{Line: 1, Block: 0, Branch: 0, Taken: 1})

	require.NoError(t, a.TryMerge(b))

	line, _ := a.Lines.Get(1)
	assert.Equal(t, ExecutionCount(3), line.ExecutionCount)

	fn, _ := a.Functions.Get("main")
	assert.Equal(t, ExecutionCount(5), fn.ExecutionCount)

	blocks, ok := a.Branches.Get(1)
	require.True(t, ok)
	taken, _ := blocks.Get(NewBranchUnit(0, 0))
	assert.Equal(t, ExecutionCount(2), taken)
}

func TestTestTryMergeReturnsTestErrorOnChecksumMismatch(t *testing.T) {
	abc, def := "abc", "def"
	a := NewTest()
	require.NoError(t, a.Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1, Checksum: &abc}))

	b := NewTest()
	require.NoError(t, b.Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1, Checksum: &def}))

	err := a.TryMerge(b)
	require.Error(t, err)

	var testErr *TestError
	require.ErrorAs(t, err, &testErr)

	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestTestsGetOrCreateCreatesEmptyTest(t *testing.T) {
	tests := NewTests()
	created := tests.GetOrCreate("t1")
	assert.True(t, created.Lines.IsEmpty())

	same := tests.GetOrCreate("t1")
	assert.Same(t, created, same)
}

func TestTestsTryMergeClonesMissingAndMergesExisting(t *testing.T) {
	a := NewTests()
	require.NoError(t, a.GetOrCreate("t1").Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1}))

	b := NewTests()
	require.NoError(t, b.GetOrCreate("t1").Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1}))
	require.NoError(t, b.GetOrCreate("t2").Lines.TryMergeLineData(record.LineData{Line: 5, Count: 1}))

	require.NoError(t, a.TryMerge(b))

	t1, ok := a.Get("t1")
	require.True(t, ok)
	line, _ := t1.Lines.Get(1)
	assert.Equal(t, ExecutionCount(2), line.ExecutionCount)

	t2, ok := a.Get("t2")
	require.True(t, ok)
	assert.False(t, t2.Lines.IsEmpty())

	assert.Equal(t, 2, a.Len())
}

func TestTestsUnionCombinesAcrossTestNames(t *testing.T) {
	tests := NewTests()
	require.NoError(t, tests.GetOrCreate("t1").Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1}))
	require.NoError(t, tests.GetOrCreate("t2").Lines.TryMergeLineData(record.LineData{Line: 1, Count: 1}))
	require.NoError(t, tests.GetOrCreate("t2").Lines.TryMergeLineData(record.LineData{Line: 2, Count: 1}))

	union := tests.Union()
	line1, ok := union.Lines.Get(1)
	require.True(t, ok)
	assert.Equal(t, ExecutionCount(2), line1.ExecutionCount)
	assert.Equal(t, 2, union.Lines.FoundCount())
}
