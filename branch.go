package lcov

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/covtrace/lcov-merge/record"
)

// BranchUnit identifies one outgoing edge of a conditional at a given
// source line: the (block, branch) pair LCOV's BRDA record carries.
// Ordering is lexicographic by (block, branch), which is also the order
// BRDA lines are re-emitted in.
type BranchUnit struct {
	Block  uint32
	Branch uint32
}

// NewBranchUnit constructs a BranchUnit from its block and branch indices.
func NewBranchUnit(block, branch uint32) BranchUnit {
	return BranchUnit{Block: block, Branch: branch}
}

func compareBranchUnit(a, b interface{}) int {
	x, y := a.(BranchUnit), b.(BranchUnit)
	switch {
	case x.Block != y.Block:
		if x.Block < y.Block {
			return -1
		}
		return 1
	case x.Branch != y.Branch:
		if x.Branch < y.Branch {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func compareUint32(a, b interface{}) int {
	x, y := a.(uint32), b.(uint32)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func compareString(a, b interface{}) int {
	x, y := a.(string), b.(string)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// BranchBlocks is the ordered mapping BranchUnit -> ExecutionCount for a
// single source line. It is kept ordered (an emirpasic/gods red-black
// tree, not a plain Go map) so emission is deterministic without a
// separate sort pass.
type BranchBlocks struct {
	blocks *treemap.Map
}

// NewBranchBlocks returns an empty BranchBlocks.
func NewBranchBlocks() *BranchBlocks {
	return &BranchBlocks{blocks: treemap.NewWith(compareBranchUnit)}
}

// BranchEntry is one (unit, taken count) pair, used when iterating
// BranchBlocks in ascending order.
type BranchEntry struct {
	Unit  BranchUnit
	Taken ExecutionCount
}

// Get returns the execution count recorded for unit, if any.
func (b *BranchBlocks) Get(unit BranchUnit) (ExecutionCount, bool) {
	v, ok := b.blocks.Get(unit)
	if !ok {
		return 0, false
	}
	return v.(ExecutionCount), true
}

// Len reports the number of distinct branch units recorded.
func (b *BranchBlocks) Len() int {
	return b.blocks.Size()
}

// IsEmpty reports whether no branch units have been recorded.
func (b *BranchBlocks) IsEmpty() bool {
	return b.blocks.Size() == 0
}

// HitCount is the number of branch units with a nonzero taken count.
func (b *BranchBlocks) HitCount() int {
	hit := 0
	for _, entry := range b.Entries() {
		if hitExecutionCount(entry.Taken).IsHit() {
			hit++
		}
	}
	return hit
}

// FoundCount is the number of distinct branch units recorded.
func (b *BranchBlocks) FoundCount() int {
	return b.Len()
}

// Entries returns every (unit, taken) pair in ascending BranchUnit order.
func (b *BranchBlocks) Entries() []BranchEntry {
	entries := make([]BranchEntry, 0, b.blocks.Size())
	it := b.blocks.Iterator()
	for it.Next() {
		entries = append(entries, BranchEntry{
			Unit:  it.Key().(BranchUnit),
			Taken: it.Value().(ExecutionCount),
		})
	}
	return entries
}

// Clone returns a deep copy, used when an insert-by-copy is needed because
// the receiving map lacks the key entirely.
func (b *BranchBlocks) Clone() *BranchBlocks {
	clone := NewBranchBlocks()
	for _, entry := range b.Entries() {
		clone.blocks.Put(entry.Unit, entry.Taken)
	}
	return clone
}

// MergeBranchData folds a single BRDA record into this map: the unit's
// taken count is summed if already present, inserted otherwise. This never
// fails; branch taken-counts have no consistency constraint to violate.
func (b *BranchBlocks) MergeBranchData(data record.BranchData) {
	unit := NewBranchUnit(data.Block, data.Branch)
	existing, ok := b.blocks.Get(unit)
	if !ok {
		b.blocks.Put(unit, ExecutionCount(data.Taken))
		return
	}
	b.blocks.Put(unit, existing.(ExecutionCount)+ExecutionCount(data.Taken))
}

// MergeBranchBlocks folds another BranchBlocks into this one, unit by
// unit, summing counts where both sides have the unit.
func (b *BranchBlocks) MergeBranchBlocks(other *BranchBlocks) {
	for _, entry := range other.Entries() {
		existing, ok := b.blocks.Get(entry.Unit)
		if !ok {
			b.blocks.Put(entry.Unit, entry.Taken)
			continue
		}
		b.blocks.Put(entry.Unit, existing.(ExecutionCount)+entry.Taken)
	}
}

// Branches is the ordered mapping LineNumber -> BranchBlocks for one
// (file, test) pair.
type Branches struct {
	lines *treemap.Map
}

// NewBranches returns an empty Branches.
func NewBranches() *Branches {
	return &Branches{lines: treemap.NewWith(compareUint32)}
}

// BranchLineEntry is one (line, blocks) pair, used when iterating Branches
// in ascending line-number order.
type BranchLineEntry struct {
	Line   LineNumber
	Blocks *BranchBlocks
}

// Get returns the BranchBlocks recorded for line, if any.
func (b *Branches) Get(line LineNumber) (*BranchBlocks, bool) {
	v, ok := b.lines.Get(line)
	if !ok {
		return nil, false
	}
	return v.(*BranchBlocks), true
}

// IsEmpty reports whether no lines have branch data recorded.
func (b *Branches) IsEmpty() bool {
	return b.lines.Size() == 0
}

// HitCount sums the hit counts of every line's BranchBlocks.
func (b *Branches) HitCount() int {
	hit := 0
	for _, entry := range b.Entries() {
		hit += entry.Blocks.HitCount()
	}
	return hit
}

// FoundCount sums the found counts of every line's BranchBlocks.
func (b *Branches) FoundCount() int {
	found := 0
	for _, entry := range b.Entries() {
		found += entry.Blocks.FoundCount()
	}
	return found
}

// Entries returns every (line, blocks) pair in ascending line order.
func (b *Branches) Entries() []BranchLineEntry {
	entries := make([]BranchLineEntry, 0, b.lines.Size())
	it := b.lines.Iterator()
	for it.Next() {
		entries = append(entries, BranchLineEntry{
			Line:   it.Key().(LineNumber),
			Blocks: it.Value().(*BranchBlocks),
		})
	}
	return entries
}

// Clone returns a deep copy.
func (b *Branches) Clone() *Branches {
	clone := NewBranches()
	for _, entry := range b.Entries() {
		clone.lines.Put(entry.Line, entry.Blocks.Clone())
	}
	return clone
}

// MergeBranchData folds a single BRDA record into the line it names,
// creating that line's BranchBlocks if this is the first record for it.
func (b *Branches) MergeBranchData(data record.BranchData) {
	existing, ok := b.lines.Get(data.Line)
	if !ok {
		blocks := NewBranchBlocks()
		blocks.MergeBranchData(data)
		b.lines.Put(data.Line, blocks)
		return
	}
	existing.(*BranchBlocks).MergeBranchData(data)
}

// MergeBranches folds another Branches into this one, line by line.
func (b *Branches) MergeBranches(other *Branches) {
	for _, entry := range other.Entries() {
		existing, ok := b.lines.Get(entry.Line)
		if !ok {
			b.lines.Put(entry.Line, entry.Blocks.Clone())
			continue
		}
		existing.(*BranchBlocks).MergeBranchBlocks(entry.Blocks)
	}
}
