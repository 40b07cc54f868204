package editor

import "hexgrid/internal/find"

// FindNext scans forward from just past the current selection (or from
// the cursor when nothing is selected) and selects the first match. It
// returns the match offset, find.NotFound, find.Aborted, or an error for
// an unusable pattern.
func (st *State) FindNext(pat find.Pattern) (int64, error) {
	return st.findFrom(find.Forward, pat)
}

// FindPrev scans backward from just before the current selection.
func (st *State) FindPrev(pat find.Pattern) (int64, error) {
	return st.findFrom(find.Backward, pat)
}

func (st *State) findFrom(dir find.Direction, pat find.Pattern) (int64, error) {
	if st.store == nil {
		return find.NotFound, nil
	}
	st.finder.Reset()
	off, err := st.finder.Find(st.store, st.FindStart(dir), dir, pat)
	if err != nil {
		return off, err
	}
	if off >= 0 {
		st.ApplyMatch(off, pat.Len())
	}
	return off, nil
}

// FindStart computes the offset a scan should begin at so repeated
// searches walk through successive matches instead of re-finding the
// current one.
func (st *State) FindStart(dir find.Direction) int64 {
	start := st.sel.Start()
	if dir == find.Forward {
		return start + int64(st.sel.Length())
	}
	return start - int64(st.sel.Length())
}

// ApplyMatch selects a match found elsewhere (typically by a background
// scan over the same store) and scrolls it into view.
func (st *State) ApplyMatch(off int64, n int) {
	if st.store == nil {
		return
	}
	st.sel.Select(off, int64(n))
	st.anchored = false
	st.caret = off
	st.scroll.ByteIntoView(off, st.length())
}

// Goto moves the cursor to an absolute offset, clamped to the document.
func (st *State) Goto(off int64) {
	if st.store == nil {
		return
	}
	if off < 0 {
		off = 0
	}
	if off > st.length() {
		off = st.length()
	}
	st.setCursor(off, 0)
	st.scrollToCaret()
}
