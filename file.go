package lcov

import (
	"github.com/emirpasic/gods/maps/treemap"
)

// File is one source file's coverage, broken down by test.
type File struct {
	SourceFile SourceFile
	Tests      *Tests
}

// NewFile returns an empty File for the given source path.
func NewFile(source SourceFile) *File {
	return &File{SourceFile: source, Tests: NewTests()}
}

// Clone returns a deep copy.
func (f *File) Clone() *File {
	return &File{SourceFile: f.SourceFile, Tests: f.Tests.Clone()}
}

// TryMerge folds other's Tests into f's, by test name.
func (f *File) TryMerge(other *File) error {
	return f.Tests.TryMerge(other.Tests)
}

// Union returns this file's coverage collapsed across every test it
// contains, the figure `lcov --summary` and genhtml report.
func (f *File) Union() *Test {
	return f.Tests.Union()
}

// Files is the ordered mapping SourceFile -> File for an entire report.
type Files struct {
	files *treemap.Map
}

// NewFiles returns an empty Files.
func NewFiles() *Files {
	return &Files{files: treemap.NewWith(compareString)}
}

// Get returns the File recorded under source, if any.
func (f *Files) Get(source SourceFile) (*File, bool) {
	v, ok := f.files.Get(source)
	if !ok {
		return nil, false
	}
	return v.(*File), true
}

// GetOrCreate returns the File recorded under source, creating and storing
// an empty one first if none exists yet.
func (f *Files) GetOrCreate(source SourceFile) *File {
	v, ok := f.files.Get(source)
	if ok {
		return v.(*File)
	}
	file := NewFile(source)
	f.files.Put(source, file)
	return file
}

// IsEmpty reports whether no files have been recorded.
func (f *Files) IsEmpty() bool {
	return f.files.Size() == 0
}

// Len reports the number of distinct source files recorded.
func (f *Files) Len() int {
	return f.files.Size()
}

// FileEntry is one (source, file) pair, used when iterating Files in
// ascending source-path order.
type FileEntry struct {
	Source SourceFile
	File   *File
}

// Entries returns every (source, file) pair in ascending path order.
func (f *Files) Entries() []FileEntry {
	entries := make([]FileEntry, 0, f.files.Size())
	it := f.files.Iterator()
	for it.Next() {
		entries = append(entries, FileEntry{
			Source: it.Key().(SourceFile),
			File:   it.Value().(*File),
		})
	}
	return entries
}

// Clone returns a deep copy.
func (f *Files) Clone() *Files {
	clone := NewFiles()
	for _, entry := range f.Entries() {
		clone.files.Put(entry.Source, entry.File.Clone())
	}
	return clone
}

// TryMerge folds other into f, source file by source file: a path present
// in both sides merges its File in place, a path present only in other is
// cloned in.
func (f *Files) TryMerge(other *Files) error {
	for _, entry := range other.Entries() {
		existing, ok := f.files.Get(entry.Source)
		if !ok {
			f.files.Put(entry.Source, entry.File.Clone())
			continue
		}
		if err := existing.(*File).TryMerge(entry.File); err != nil {
			return err
		}
	}
	return nil
}
