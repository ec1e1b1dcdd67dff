package lcov

// Hit reports whether a value counts as "executed" for coverage purposes.
type Hit interface {
	IsHit() bool
}

// hitExecutionCount lets a bare ExecutionCount satisfy Hit without
// introducing a distinct wrapper type for it.
type hitExecutionCount ExecutionCount

func (c hitExecutionCount) IsHit() bool { return c > 0 }

// HitCounter reports the number of entries in a collection with a nonzero
// execution count.
type HitCounter interface {
	HitCount() int
}

// FoundCounter reports the total number of entries in a collection.
type FoundCounter interface {
	FoundCount() int
}

// HitFoundCounter is the pair LCOV summary lines are always emitted from:
// "<kind>F:<found>" followed by "<kind>H:<hit>".
type HitFoundCounter interface {
	HitCounter
	FoundCounter
}

// Every aggregate map answers its summary-line pair through the same
// interface.
var (
	_ HitFoundCounter = (*Lines)(nil)
	_ HitFoundCounter = (*Functions)(nil)
	_ HitFoundCounter = (*Branches)(nil)
	_ HitFoundCounter = (*BranchBlocks)(nil)

	_ Hit = Line{}
	_ Hit = Function{}
)
