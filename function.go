package lcov

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/covtrace/lcov-merge/record"
)

// Function is one function's declared line and cumulative execution
// count. Either field may still be zero: the declared line arrives via an
// FN record, the execution count via FNDA, and either may be observed
// before the other.
type Function struct {
	Name           FunctionName
	LineNumber     LineNumber
	ExecutionCount ExecutionCount
}

// IsHit reports whether this function executed at least once.
func (f Function) IsHit() bool {
	return hitExecutionCount(f.ExecutionCount).IsHit()
}

// Functions is the ordered mapping FunctionName -> Function for one
// (file, test) pair.
type Functions struct {
	functions *treemap.Map
}

// NewFunctions returns an empty Functions.
func NewFunctions() *Functions {
	return &Functions{functions: treemap.NewWith(compareString)}
}

// Get returns the Function recorded under name, if any.
func (f *Functions) Get(name FunctionName) (Function, bool) {
	v, ok := f.functions.Get(name)
	if !ok {
		return Function{}, false
	}
	return v.(Function), true
}

// IsEmpty reports whether no functions have been recorded.
func (f *Functions) IsEmpty() bool {
	return f.functions.Size() == 0
}

// HitCount is the number of functions with a nonzero execution count.
func (f *Functions) HitCount() int {
	hit := 0
	for _, fn := range f.Entries() {
		if fn.IsHit() {
			hit++
		}
	}
	return hit
}

// FoundCount is the number of distinct functions recorded.
func (f *Functions) FoundCount() int {
	return f.functions.Size()
}

// Entries returns every Function in ascending name order.
func (f *Functions) Entries() []Function {
	entries := make([]Function, 0, f.functions.Size())
	it := f.functions.Iterator()
	for it.Next() {
		entries = append(entries, it.Value().(Function))
	}
	return entries
}

// Clone returns a deep copy.
func (f *Functions) Clone() *Functions {
	clone := NewFunctions()
	for _, fn := range f.Entries() {
		clone.functions.Put(fn.Name, fn)
	}
	return clone
}

// TryMergeFunctionName folds a single FN record into this map.
//
// A name not yet present is inserted with an execution count of zero. A
// name already present must declare the same line; a differing line is a
// FunctionMismatchError, since two FN records naming the same function at
// different lines indicate the inputs describe different source
// revisions. A declared line of zero on either side means the function was
// only ever seen via FNDA, so there is no declaration to disagree with:
// the nonzero line wins.
func (f *Functions) TryMergeFunctionName(data record.FunctionNameData) error {
	existing, ok := f.functions.Get(data.Name)
	if !ok {
		f.functions.Put(data.Name, Function{Name: data.Name, LineNumber: data.Line})
		return nil
	}

	current := existing.(Function)
	if current.LineNumber == 0 {
		current.LineNumber = data.Line
		f.functions.Put(data.Name, current)
		return nil
	}
	if data.Line != 0 && current.LineNumber != data.Line {
		return &FunctionMismatchError{
			Existing: FunctionRef{Name: current.Name, Line: current.LineNumber},
			Incoming: FunctionRef{Name: data.Name, Line: data.Line},
		}
	}
	return nil
}

// TryMergeFunctionData folds a single FNDA record into this map. A name
// not yet present is inserted with line_number zero (it will be filled in
// if a matching FN record is seen before or after); a name already present
// has its execution count incremented. This never fails.
func (f *Functions) TryMergeFunctionData(data record.FunctionExecData) error {
	existing, ok := f.functions.Get(data.Name)
	if !ok {
		f.functions.Put(data.Name, Function{Name: data.Name, ExecutionCount: data.Count})
		return nil
	}

	current := existing.(Function)
	current.ExecutionCount += data.Count
	f.functions.Put(data.Name, current)
	return nil
}

// TryMergeFunctions folds another Functions into this one, pointwise:
// declared lines must agree, execution counts are summed.
func (f *Functions) TryMergeFunctions(other *Functions) error {
	for _, fn := range other.Entries() {
		if fn.LineNumber != 0 || fn.ExecutionCount == 0 {
			if err := f.TryMergeFunctionName(record.FunctionNameData{Line: fn.LineNumber, Name: fn.Name}); err != nil {
				return err
			}
		}
		if fn.ExecutionCount != 0 {
			if err := f.TryMergeFunctionData(record.FunctionExecData{Name: fn.Name, Count: fn.ExecutionCount}); err != nil {
				return err
			}
		}
	}
	return nil
}
