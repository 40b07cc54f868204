package editor

// Type feeds a typed character to the active mode: hex digits in hex
// mode, codec-encodable characters in char mode. It returns false when
// the character has no meaning in the active mode; denied capabilities
// consume the key but leave the store untouched.
func (st *State) Type(r rune) bool {
	switch st.mode {
	case ModeHex:
		return st.typeHex(r)
	case ModeChar:
		return st.typeChar(r)
	}
	return false
}

func (st *State) typeHex(r rune) bool {
	nib, ok := hexDigit(r)
	if !ok {
		return false
	}
	if st.readOnly {
		return true
	}

	forcedInsert := st.replaceSelectionForTyping()
	off, sub := st.sel.Cursor(), st.sel.SubPos()

	// The low nibble always completes the byte under the cursor; a
	// fresh byte is only ever opened on the high nibble.
	insert := sub == 0 && (forcedInsert || st.insertActive || off == st.length())

	if insert {
		if !st.store.CanInsert() {
			return true
		}
		if st.store.Insert(off, []byte{nib << 4}) != nil {
			return true
		}
		st.tracker.MarkDirty(off)
		st.sel.SetCursor(off, 1)
		st.caret = off
		st.afterLengthChange()
		return true
	}

	if off >= st.length() || !st.store.CanWrite() {
		return true
	}
	b, err := st.store.ByteAt(off)
	if err != nil {
		return true
	}
	if sub == 0 {
		b = nib<<4 | b&0x0F
	} else {
		b = b&0xF0 | nib
	}
	if st.store.WriteByte(off, b) != nil {
		return true
	}
	st.tracker.MarkDirty(off)

	if sub == 0 {
		st.sel.SetCursor(off, 1)
	} else {
		st.sel.SetCursor(off+1, 0)
	}
	st.caret = st.sel.Cursor()
	st.scrollToCaret()
	return true
}

func (st *State) typeChar(r rune) bool {
	b, ok := st.codec.CharToByte(r)
	if !ok {
		return false
	}
	if st.readOnly {
		return true
	}

	forcedInsert := st.replaceSelectionForTyping()
	off := st.sel.Cursor()
	insert := forcedInsert || st.insertActive || off == st.length()

	if insert {
		if !st.store.CanInsert() {
			return true
		}
		if st.store.Insert(off, []byte{b}) != nil {
			return true
		}
	} else {
		if !st.store.CanWrite() {
			return true
		}
		if st.store.WriteByte(off, b) != nil {
			return true
		}
	}
	st.tracker.MarkDirty(off)
	st.sel.SetCursor(off+1, 0)
	st.caret = off + 1
	st.afterLengthChange()
	return true
}

// replaceSelectionForTyping deletes the active selection ahead of typed
// input when the store supports both delete and insert, turning the
// keystroke into an insertion at the former selection start. Stores that
// cannot do the swap just collapse the selection and overwrite in place.
func (st *State) replaceSelectionForTyping() bool {
	if st.sel.Length() == 0 {
		return false
	}
	if st.store.CanDelete() && st.store.CanInsert() {
		st.deleteSelection()
		return true
	}
	st.sel.Release()
	return false
}

// backspace deletes the byte left of the cursor, or the whole selection.
// At offset 0 with no selection it is a no-op, not an error.
func (st *State) backspace() {
	if st.sel.Length() > 0 {
		st.deleteSelection()
		st.afterLengthChange()
		return
	}
	off := st.sel.Cursor()
	if off == 0 {
		st.scrollToCaret()
		return
	}
	if st.readOnly || !st.store.CanDelete() {
		return
	}
	if st.store.Delete(off-1, 1) != nil {
		return
	}
	st.setCursor(off-1, 0)
	st.afterLengthChange()
}

// deleteForward deletes the byte at the cursor, or the selection, without
// moving the cursor. At the append position it is a no-op.
func (st *State) deleteForward() {
	if st.sel.Length() > 0 {
		st.deleteSelection()
		st.afterLengthChange()
		return
	}
	off := st.sel.Cursor()
	if off >= st.length() {
		return
	}
	if st.readOnly || !st.store.CanDelete() {
		return
	}
	if st.store.Delete(off, 1) != nil {
		return
	}
	st.sel.SetCursor(off, 0)
	st.caret = off
	st.afterLengthChange()
}

// deleteSelection removes the selected bytes and leaves the cursor at
// the former selection start.
func (st *State) deleteSelection() {
	if st.readOnly || !st.store.CanDelete() {
		return
	}
	start, n := st.sel.Start(), st.sel.Length()
	if st.store.Delete(start, n) != nil {
		return
	}
	st.setCursor(start, 0)
}

func hexDigit(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
