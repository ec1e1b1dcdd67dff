// Package lcov models the coverage aggregate tree described by the LCOV
// tracefile format — Report, File, Test, Lines, Functions, Branches — and
// the merge operations that combine two trees into their union. Parsing
// and serialization live alongside the tree because both are tightly
// coupled to its shape; the low-level tokenizer that turns bytes into
// typed records lives in the sibling record package.
package lcov

// Named scalar aliases for the attributes that flow through every level of
// the aggregate tree. These are plain aliases, not distinct types: a
// LineNumber is exactly a uint32, so values from the record package need
// no conversion at the parser boundary.
type (
	LineNumber     = uint32
	ExecutionCount = uint32
	FunctionName   = string
	TestName       = string
	SourceFile     = string
	CheckSum       = string
)
