package lcov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covtrace/lcov-merge/record"
)

func TestFunctionsTryMergeFunctionNameInsertsWithZeroCount(t *testing.T) {
	functions := NewFunctions()
	require.NoError(t, functions.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))

	fn, ok := functions.Get("main")
	require.True(t, ok)
	assert.Equal(t, LineNumber(5), fn.LineNumber)
	assert.Equal(t, ExecutionCount(0), fn.ExecutionCount)
}

func TestFunctionsTryMergeFunctionDataInsertsWithZeroLine(t *testing.T) {
	functions := NewFunctions()
	require.NoError(t, functions.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 4}))

	fn, ok := functions.Get("main")
	require.True(t, ok)
	assert.Equal(t, LineNumber(0), fn.LineNumber)
	assert.Equal(t, ExecutionCount(4), fn.ExecutionCount)
}

func TestFunctionsDeclarationThenDataAccumulate(t *testing.T) {
	functions := NewFunctions()
	require.NoError(t, functions.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))
	require.NoError(t, functions.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 3}))
	require.NoError(t, functions.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 4}))

	fn, ok := functions.Get("main")
	require.True(t, ok)
	assert.Equal(t, LineNumber(5), fn.LineNumber)
	assert.Equal(t, ExecutionCount(7), fn.ExecutionCount)

	assert.Equal(t, 1, functions.FoundCount())
	assert.Equal(t, 1, functions.HitCount())
}

func TestFunctionsDataThenDeclarationFillsInLine(t *testing.T) {
	functions := NewFunctions()
	require.NoError(t, functions.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 4}))
	require.NoError(t, functions.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))

	fn, ok := functions.Get("main")
	require.True(t, ok)
	assert.Equal(t, LineNumber(5), fn.LineNumber)
	assert.Equal(t, ExecutionCount(4), fn.ExecutionCount)
}

func TestFunctionsTryMergeFunctionsAdoptsDeclaredLineEitherDirection(t *testing.T) {
	undeclared := NewFunctions()
	require.NoError(t, undeclared.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 4}))

	declared := NewFunctions()
	require.NoError(t, declared.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))
	require.NoError(t, declared.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 3}))

	merged := undeclared.Clone()
	require.NoError(t, merged.TryMergeFunctions(declared))
	fn, _ := merged.Get("main")
	assert.Equal(t, LineNumber(5), fn.LineNumber)
	assert.Equal(t, ExecutionCount(7), fn.ExecutionCount)

	reversed := declared.Clone()
	require.NoError(t, reversed.TryMergeFunctions(undeclared))
	fn, _ = reversed.Get("main")
	assert.Equal(t, LineNumber(5), fn.LineNumber)
	assert.Equal(t, ExecutionCount(7), fn.ExecutionCount)
}

func TestFunctionsTryMergeFunctionNameConflictingLineFails(t *testing.T) {
	functions := NewFunctions()
	require.NoError(t, functions.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))

	err := functions.TryMergeFunctionName(record.FunctionNameData{Line: 7, Name: "main"})
	require.Error(t, err)

	var mismatch *FunctionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "main", mismatch.Existing.Name)
	assert.Equal(t, LineNumber(5), mismatch.Existing.Line)
	assert.Equal(t, LineNumber(7), mismatch.Incoming.Line)
}

func TestFunctionsTryMergeFunctionsPointwise(t *testing.T) {
	a := NewFunctions()
	require.NoError(t, a.TryMergeFunctionName(record.FunctionNameData{Line: 5, Name: "main"}))
	require.NoError(t, a.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 3}))

	b := NewFunctions()
	require.NoError(t, b.TryMergeFunctionData(record.FunctionExecData{Name: "main", Count: 4}))
	require.NoError(t, b.TryMergeFunctionName(record.FunctionNameData{Line: 1, Name: "helper"}))

	require.NoError(t, a.TryMergeFunctions(b))

	main, ok := a.Get("main")
	require.True(t, ok)
	assert.Equal(t, LineNumber(5), main.LineNumber)
	assert.Equal(t, ExecutionCount(7), main.ExecutionCount)

	helper, ok := a.Get("helper")
	require.True(t, ok)
	assert.Equal(t, LineNumber(1), helper.LineNumber)
}
