package editor

import "hexgrid/internal/keymap"

// Apply executes a movement, selection, or editing command. It returns
// false when the command is not handled here: in ModeEmpty everything
// falls through, Tab falls through when no character pane exists, and
// clipboard and application commands are the host's to dispatch.
func (st *State) Apply(cmd keymap.Command) bool {
	if st.mode == ModeEmpty || st.store == nil {
		return false
	}

	switch cmd {
	case keymap.CmdMoveLeft:
		st.moveHorizontal(-1)
	case keymap.CmdMoveRight:
		st.moveHorizontal(1)
	case keymap.CmdMoveUp:
		st.moveByBytes(-int64(st.layout.BytesPerLine))
	case keymap.CmdMoveDown:
		st.moveByBytes(int64(st.layout.BytesPerLine))
	case keymap.CmdPageUp:
		st.moveByBytes(-st.layout.VisibleBytes())
	case keymap.CmdPageDown:
		st.moveByBytes(st.layout.VisibleBytes())
	case keymap.CmdHome:
		st.setCursor(0, 0)
		st.scrollToCaret()
	case keymap.CmdEnd:
		st.setCursor(st.length(), 0)
		st.scrollToCaret()
	case keymap.CmdExtendLeft:
		st.extend(-1)
	case keymap.CmdExtendRight:
		st.extend(1)
	case keymap.CmdExtendUp:
		st.extend(-int64(st.layout.BytesPerLine))
	case keymap.CmdExtendDown:
		st.extend(int64(st.layout.BytesPerLine))
	case keymap.CmdSelectAll:
		st.sel.Select(0, st.length())
		st.anchored = false
		st.caret = 0
	case keymap.CmdBackspace:
		st.backspace()
	case keymap.CmdDelete:
		st.deleteForward()
	case keymap.CmdToggleInsert:
		st.insertActive = !st.insertActive
	case keymap.CmdSwitchPane, keymap.CmdSwitchPaneBack:
		return st.switchPane()
	default:
		return false
	}
	return true
}

// collapseForMove resolves the position a plain movement starts from. An
// active selection collapses to its start for leftward movement and its
// end for rightward movement.
func (st *State) collapseForMove(dir int) (int64, int) {
	if st.sel.Length() == 0 {
		return st.sel.Cursor(), st.sel.SubPos()
	}
	off := st.sel.Start()
	if dir > 0 {
		off = st.sel.End()
	}
	return off, 0
}

// moveHorizontal moves by one unit: a nibble in hex mode, a byte in
// character mode. Clamped moves are still followed by scroll-into-view.
func (st *State) moveHorizontal(dir int) {
	off, sub := st.collapseForMove(dir)
	length := st.length()

	if st.mode == ModeHex {
		if dir > 0 {
			switch {
			case off >= length:
				// Append position: nothing to the right.
			case sub == 0:
				sub = 1
			default:
				off++
				sub = 0
			}
		} else {
			switch {
			case sub == 1:
				sub = 0
			case off > 0:
				off--
				sub = 1
			}
		}
	} else {
		off += int64(dir)
		sub = 0
	}

	off = clamp(off, 0, length)
	if off == length {
		sub = 0
	}
	st.setCursor(off, sub)
	st.scrollToCaret()
}

// moveByBytes handles line and page movement.
func (st *State) moveByBytes(delta int64) {
	dir := 1
	if delta < 0 {
		dir = -1
	}
	off, sub := st.collapseForMove(dir)
	off = clamp(off+delta, 0, st.length())
	if off == st.length() {
		sub = 0
	}
	st.setCursor(off, sub)
	st.scrollToCaret()
}

// extend grows or shrinks the selection by delta bytes around the fixed
// anchor. The anchor is captured when the first extend command arrives;
// moving the edge past the anchor flips which end the cursor occupies.
// Scroll-into-view tracks the moving edge, never the anchor.
func (st *State) extend(delta int64) {
	if !st.anchored {
		st.anchor = st.sel.Start()
		st.caret = st.sel.End()
		st.anchored = true
	}

	m := clamp(st.caret+delta, 0, st.length())
	if m >= st.anchor {
		st.sel.Select(st.anchor, m-st.anchor)
	} else {
		st.sel.Select(m, st.anchor-m)
	}
	st.caret = m
	st.anchored = true
	st.scroll.ByteIntoView(m, st.length())
}

// switchPane toggles hex and character entry. Without a character pane
// the command is unhandled so Tab keeps its host meaning.
func (st *State) switchPane() bool {
	if !st.charPane {
		return false
	}
	if st.mode == ModeHex {
		st.mode = ModeChar
	} else {
		st.mode = ModeHex
	}
	st.sel.SetCursor(st.sel.Cursor(), 0)
	return true
}

// ClickAt places the cursor from a pointer hit. Unlike keyboard movement
// it never scrolls; the hit is already on screen.
func (st *State) ClickAt(off int64, sub int) {
	if st.mode == ModeEmpty || st.store == nil {
		return
	}
	off = clamp(off, 0, st.length())
	if off == st.length() {
		sub = 0
	}
	st.setCursor(off, sub)
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
