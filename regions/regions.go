// SPDX-License-Identifier: EPL-2.0

package regions

import "sync"

// MinSpan is the smallest allowed region width in seconds. Creation of
// a narrower region is rejected, and resizing clamps against it.
const MinSpan = 0.01

// Region is a named time span over a file's timeline. Start < End
// always holds once stored.
type Region struct {
	Start float64
	End   float64
	Name  string
}

// Contains reports whether pos falls inside the region, ends included.
func (r Region) Contains(pos float64) bool {
	return pos >= r.Start && pos <= r.End
}

// Span returns the region width in seconds.
func (r Region) Span() float64 { return r.End - r.Start }

// Edge selects which side of a region a resize moves.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// Record is the plain persisted form of a Region, suitable for
// embedding in preset data.
type Record struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Name  string  `json:"name"`
}

// Store keeps an ordered sequence of regions per file. Insertion order
// is meaningful: hit-testing returns the first match. Overlap between
// regions is permitted and never reconciled.
type Store struct {
	mtx   sync.Mutex
	files map[string][]Region
}

func NewStore() *Store {
	return &Store{files: make(map[string][]Region)}
}

// Create adds a region over [start, end), swapping the bounds when
// they arrive reversed. Spans narrower than MinSpan are rejected and
// the region count is left unchanged. Returns the new region's index
// and whether it was added.
func (s *Store) Create(file string, start, end float64) (int, bool) {
	if end < start {
		start, end = end, start
	}
	if end-start < MinSpan {
		return 0, false
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.files[file] = append(s.files[file], Region{Start: start, End: end})
	return len(s.files[file]) - 1, true
}

// Resize moves one edge of the region at index to newPos. The moved
// edge is clamped so it can never cross the opposite edge minus
// MinSpan. Returns false for an unknown file or index.
func (s *Store) Resize(file string, index int, edge Edge, newPos float64) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list, ok := s.files[file]
	if !ok || index < 0 || index >= len(list) {
		return false
	}

	r := &list[index]
	switch edge {
	case EdgeStart:
		if newPos > r.End-MinSpan {
			newPos = r.End - MinSpan
		}
		r.Start = newPos
	case EdgeEnd:
		if newPos < r.Start+MinSpan {
			newPos = r.Start + MinSpan
		}
		r.End = newPos
	default:
		return false
	}
	return true
}

// Rename sets the region's display name.
func (s *Store) Rename(file string, index int, name string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list, ok := s.files[file]
	if !ok || index < 0 || index >= len(list) {
		return false
	}
	list[index].Name = name
	return true
}

// Delete removes the region at index, preserving the order of the
// rest. The per-file list is dropped entirely once empty.
func (s *Store) Delete(file string, index int) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list, ok := s.files[file]
	if !ok || index < 0 || index >= len(list) {
		return false
	}

	list = append(list[:index], list[index+1:]...)
	if len(list) == 0 {
		delete(s.files, file)
	} else {
		s.files[file] = list
	}
	return true
}

// ClearAll drops every region of the file.
func (s *Store) ClearAll(file string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.files, file)
}

// HitTest returns the first region (by insertion order) containing
// pos. Overlapping regions are allowed; the earliest one wins.
func (s *Store) HitTest(file string, pos float64) (int, Region, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, r := range s.files[file] {
		if r.Contains(pos) {
			return i, r, true
		}
	}
	return 0, Region{}, false
}

// Count returns the number of regions stored for the file.
func (s *Store) Count(file string) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.files[file])
}

// Regions returns a copy of the file's region list in insertion order.
func (s *Store) Regions(file string) []Region {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list := s.files[file]
	out := make([]Region, len(list))
	copy(out, list)
	return out
}

// Export returns the file's regions as plain records for persistence.
func (s *Store) Export(file string) []Record {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list := s.files[file]
	out := make([]Record, len(list))
	for i, r := range list {
		out[i] = Record{Start: r.Start, End: r.End, Name: r.Name}
	}
	return out
}

// Import replaces the file's regions with the given records, keeping
// their order. Records that violate the region invariants are
// normalized the same way Create does; too-narrow ones are skipped.
func (s *Store) Import(file string, records []Record) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	list := make([]Region, 0, len(records))
	for _, rec := range records {
		start, end := rec.Start, rec.End
		if end < start {
			start, end = end, start
		}
		if end-start < MinSpan {
			continue
		}
		list = append(list, Region{Start: start, End: end, Name: rec.Name})
	}

	if len(list) == 0 {
		delete(s.files, file)
		return
	}
	s.files[file] = list
}

// Files returns the paths that currently have regions.
func (s *Store) Files() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	out := make([]string, 0, len(s.files))
	for f := range s.files {
		out = append(out, f)
	}
	return out
}

// Reset drops all regions for all files.
func (s *Store) Reset() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.files = make(map[string][]Region)
}
