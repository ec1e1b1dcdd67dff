package lcov

// Totals is the aggregate (found, hit) pair for each of lines, functions,
// and branches across an entire Report, the figure both `lcov --summary`
// and genhtml's top-level number are built from.
type Totals struct {
	LinesFound     int
	LinesHit       int
	FunctionsFound int
	FunctionsHit   int
	BranchesFound  int
	BranchesHit    int
}

// LineRate returns the fraction of found lines that were hit, or 0 when
// no lines were found.
func (t Totals) LineRate() float64 {
	return rate(t.LinesHit, t.LinesFound)
}

// FunctionRate returns the fraction of found functions that were hit, or
// 0 when no functions were found.
func (t Totals) FunctionRate() float64 {
	return rate(t.FunctionsHit, t.FunctionsFound)
}

// BranchRate returns the fraction of found branches that were hit, or 0
// when no branches were found.
func (t Totals) BranchRate() float64 {
	return rate(t.BranchesHit, t.BranchesFound)
}

func rate(hit, found int) float64 {
	if found == 0 {
		return 0
	}
	return float64(hit) / float64(found)
}

// Coverage computes the Totals for the entire report by unioning every
// file's tests and summing found/hit counts across files. This is a
// derived figure recomputed from the tree on demand, not a field kept
// current during merges: a Report is merged far more often than it is
// summarized, so there is nothing worth caching.
func (r *Report) Coverage() Totals {
	var totals Totals
	for _, entry := range r.Files.Entries() {
		union := entry.File.Union()
		totals.LinesFound += union.Lines.FoundCount()
		totals.LinesHit += union.Lines.HitCount()
		totals.FunctionsFound += union.Functions.FoundCount()
		totals.FunctionsHit += union.Functions.HitCount()
		totals.BranchesFound += union.Branches.FoundCount()
		totals.BranchesHit += union.Branches.HitCount()
	}
	return totals
}

// FileCoverage computes the Totals for a single file's union-of-tests
// view, the per-row figures a summary table renders.
func (f *File) FileCoverage() Totals {
	union := f.Union()
	return Totals{
		LinesFound:     union.Lines.FoundCount(),
		LinesHit:       union.Lines.HitCount(),
		FunctionsFound: union.Functions.FoundCount(),
		FunctionsHit:   union.Functions.HitCount(),
		BranchesFound:  union.Branches.FoundCount(),
		BranchesHit:    union.Branches.HitCount(),
	}
}
