// Package editor implements the byte-grid editing state machine: the
// hex and character entry modes, cursor and selection handling, and the
// clipboard and search operations built on them.
//
// All editor state lives in an explicit State struct threaded through
// every command handler; mode-specific behavior is a branch inside one
// handler per command rather than a subclass hierarchy.
package editor

import (
	"hexgrid/internal/bytestore"
	"hexgrid/internal/charcodec"
	"hexgrid/internal/find"
	"hexgrid/internal/geometry"
	"hexgrid/internal/scroll"
	"hexgrid/internal/selection"
	"hexgrid/internal/tracking"
)

// Mode identifies which input mode is active. Exactly one is active at a
// time.
type Mode int

const (
	// ModeEmpty means no store is bound; every command is passed back
	// to the host unhandled.
	ModeEmpty Mode = iota

	// ModeHex interprets typed hex digits as nibble entry.
	ModeHex

	// ModeChar interprets typed characters as whole-byte entry.
	ModeChar
)

func (m Mode) String() string {
	switch m {
	case ModeHex:
		return "hex"
	case ModeChar:
		return "char"
	}
	return "empty"
}

// CellClass classifies a byte cell for rendering.
type CellClass int

const (
	CellNormal CellClass = iota
	CellZero
	CellCommitted
	CellDirty
	CellSelected
)

// Option configures a State at construction.
type Option func(*State)

// WithCodec sets the byte/character codec.
func WithCodec(c charcodec.Codec) Option {
	return func(st *State) { st.codec = c }
}

// WithReadOnly disables all editing commands.
func WithReadOnly(ro bool) Option {
	return func(st *State) { st.readOnly = ro }
}

// WithCharPane controls whether the character pane exists. Without it,
// Tab falls through to host focus traversal.
func WithCharPane(enabled bool) Option {
	return func(st *State) { st.charPane = enabled }
}

// WithOverwritePaste makes paste replace payload-length bytes instead of
// only the current selection.
func WithOverwritePaste(enabled bool) Option {
	return func(st *State) { st.overwritePaste = enabled }
}

// WithHexCasing selects upper- or lower-case hex for copied text.
func WithHexCasing(upper bool) Option {
	return func(st *State) { st.hexUpper = upper }
}

// State is the complete editor state. It owns the derived models
// (selection, scroll, change tracking) and holds a non-owning reference
// to the host's byte store.
type State struct {
	store   bytestore.Store
	layout  *geometry.Layout
	scroll  *scroll.Controller
	sel     *selection.Model
	tracker *tracking.Tracker
	finder  *find.Engine
	codec   charcodec.Codec

	mode           Mode
	insertActive   bool
	readOnly       bool
	charPane       bool
	overwritePaste bool
	hexUpper       bool

	// Selection extension anchor, captured when the first extend
	// command arrives and dropped by any plain movement.
	anchor   int64
	anchored bool

	// caret is the moving edge: the selection end being dragged during
	// extension, the cursor otherwise. Scroll-into-view always follows
	// it.
	caret int64
}

// New returns a State for the given layout with no store bound.
func New(layout *geometry.Layout, opts ...Option) *State {
	st := &State{
		layout:   layout,
		scroll:   scroll.New(layout.BytesPerLine, layout.VisibleLines),
		sel:      selection.New(layout.BytesPerLine),
		tracker:  tracking.New(),
		finder:   &find.Engine{},
		codec:    charcodec.ASCII{},
		charPane: true,
		hexUpper: true,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// SetStore binds a new byte store, resetting cursor, selection, scroll,
// and mode-derived state. With retainChanges the dirty and committed sets
// survive the swap, which hosts use when exchanging the backing store
// without losing edit history; cursor and selection are reset either way.
func (st *State) SetStore(s bytestore.Store, retainChanges bool) {
	st.store = s
	st.sel.Select(0, 0)
	st.anchored = false
	st.insertActive = false
	st.caret = 0
	if !retainChanges {
		st.tracker.Reset()
	}

	if s == nil {
		st.mode = ModeEmpty
		st.scroll.ScrollToLine(0)
		st.scroll.Recompute(0)
		return
	}
	if st.mode == ModeEmpty {
		st.mode = ModeHex
	}
	st.scroll.ScrollToLine(0)
	st.scroll.Recompute(s.Len())
	s.OnLengthChanged(func(length int64) {
		st.scroll.Recompute(length)
	})
}

// Resize updates the visible line count after a host window change.
func (st *State) Resize(visibleLines int) {
	st.layout.VisibleLines = visibleLines
	st.scroll.SetVisibleLines(visibleLines)
	st.scroll.Recompute(st.length())
	st.scrollToCaret()
}

func (st *State) Mode() Mode                  { return st.mode }
func (st *State) Store() bytestore.Store      { return st.store }
func (st *State) Layout() *geometry.Layout    { return st.layout }
func (st *State) Scroll() *scroll.Controller  { return st.scroll }
func (st *State) Selection() *selection.Model { return st.sel }
func (st *State) Tracker() *tracking.Tracker  { return st.tracker }
func (st *State) Finder() *find.Engine        { return st.finder }
func (st *State) Codec() charcodec.Codec      { return st.codec }
func (st *State) InsertActive() bool          { return st.insertActive }
func (st *State) ReadOnly() bool              { return st.readOnly }
func (st *State) HexUpper() bool              { return st.hexUpper }

// Caret returns the moving-edge offset and the active nibble position.
func (st *State) Caret() (int64, int) {
	if st.anchored {
		return st.caret, 0
	}
	return st.sel.Cursor(), st.sel.SubPos()
}

func (st *State) length() int64 {
	if st.store == nil {
		return 0
	}
	return st.store.Len()
}

// VisibleRange returns the byte window the host should render.
func (st *State) VisibleRange() (first, last int64) {
	return st.scroll.FirstVisibleByte(), st.scroll.LastVisibleByte(st.length())
}

// ClassifyCell returns the rendering class for the byte at off.
// Selection wins over edit history, which wins over the zero-value
// highlight.
func (st *State) ClassifyCell(off int64) CellClass {
	if st.sel.Contains(off) {
		return CellSelected
	}
	if st.tracker.IsDirty(off) {
		return CellDirty
	}
	if st.tracker.IsCommitted(off) {
		return CellCommitted
	}
	if b, err := st.store.ByteAt(off); err == nil && b == 0 {
		return CellZero
	}
	return CellNormal
}

// Commit marks all dirty offsets as committed, keeping them color-coded
// as edit history. Hosts call this after a successful save.
func (st *State) Commit() {
	st.tracker.Commit()
}

func (st *State) setCursor(off int64, sub int) {
	if st.sel.Length() > 0 {
		st.sel.Release()
	}
	st.sel.SetCursor(off, sub)
	st.caret = off
	st.anchored = false
}

func (st *State) scrollToCaret() {
	st.scroll.ByteIntoView(st.caret, st.length())
}

func (st *State) afterLengthChange() {
	st.scroll.Recompute(st.length())
	st.scrollToCaret()
}
