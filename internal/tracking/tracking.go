// Package tracking records which byte offsets were edited, split into a
// dirty set (edited since the last commit) and a committed set (edited
// and marked finished). The renderer colors cells from these sets and the
// host consults them for persistence decisions.
package tracking

import "sort"

// Tracker holds the dirty and committed offset sets. Offsets are never
// removed individually, only through the bulk Commit and Clear
// operations.
type Tracker struct {
	dirty     map[int64]struct{}
	committed map[int64]struct{}
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{
		dirty:     make(map[int64]struct{}),
		committed: make(map[int64]struct{}),
	}
}

// MarkDirty records an edit at offset.
func (t *Tracker) MarkDirty(offset int64) {
	t.dirty[offset] = struct{}{}
}

// IsDirty reports whether offset was edited since the last commit.
func (t *Tracker) IsDirty(offset int64) bool {
	_, ok := t.dirty[offset]
	return ok
}

// IsCommitted reports whether offset was edited and committed.
func (t *Tracker) IsCommitted(offset int64) bool {
	_, ok := t.committed[offset]
	return ok
}

// DirtyCount returns the number of dirty offsets.
func (t *Tracker) DirtyCount() int { return len(t.dirty) }

// Commit unions the dirty set into the committed set and clears it. The
// host calls this when the buffer is saved but the visual edit history
// should be kept.
func (t *Tracker) Commit() {
	for off := range t.dirty {
		t.committed[off] = struct{}{}
	}
	t.dirty = make(map[int64]struct{})
}

// ClearDirty drops the dirty set.
func (t *Tracker) ClearDirty() {
	t.dirty = make(map[int64]struct{})
}

// ClearCommitted drops the committed set.
func (t *Tracker) ClearCommitted() {
	t.committed = make(map[int64]struct{})
}

// Reset drops both sets.
func (t *Tracker) Reset() {
	t.ClearDirty()
	t.ClearCommitted()
}

// All returns the union of both sets as a sorted, de-duplicated list.
func (t *Tracker) All() []int64 {
	seen := make(map[int64]struct{}, len(t.dirty)+len(t.committed))
	for off := range t.dirty {
		seen[off] = struct{}{}
	}
	for off := range t.committed {
		seen[off] = struct{}{}
	}
	out := make([]int64, 0, len(seen))
	for off := range seen {
		out = append(out, off)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
