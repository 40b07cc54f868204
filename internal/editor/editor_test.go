package editor

import (
	"bytes"
	"errors"
	"testing"

	"hexgrid/internal/bytestore"
	"hexgrid/internal/find"
	"hexgrid/internal/geometry"
	"hexgrid/internal/keymap"
)

func testLayout() *geometry.Layout {
	return &geometry.Layout{
		CharWidth:    1,
		CharHeight:   1,
		BytesPerLine: 16,
		GroupSize:    4,
		VisibleLines: 8,
	}
}

func newState(data []byte, opts ...Option) (*State, *bytestore.MemStore) {
	store := bytestore.FromBytes(data)
	st := New(testLayout(), opts...)
	st.SetStore(store, false)
	return st, store
}

func cursorAt(t *testing.T, st *State, off int64, sub int) {
	t.Helper()
	if got, gotSub := st.Selection().Cursor(), st.Selection().SubPos(); got != off || gotSub != sub {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", got, gotSub, off, sub)
	}
}

func selected(t *testing.T, st *State, start, length int64) {
	t.Helper()
	if got, gotLen := st.Selection().Start(), st.Selection().Length(); got != start || gotLen != length {
		t.Fatalf("selection = (%d,%d), want (%d,%d)", got, gotLen, start, length)
	}
}

func TestMoveHexNibbles(t *testing.T) {
	st, _ := newState([]byte{0x00, 0x11, 0x22})

	st.Apply(keymap.CmdMoveRight)
	cursorAt(t, st, 0, 1)
	st.Apply(keymap.CmdMoveRight)
	cursorAt(t, st, 1, 0)

	st.Apply(keymap.CmdMoveLeft)
	cursorAt(t, st, 0, 1)
	st.Apply(keymap.CmdMoveLeft)
	cursorAt(t, st, 0, 0)

	// Left at the origin stays put.
	st.Apply(keymap.CmdMoveLeft)
	cursorAt(t, st, 0, 0)
}

func TestMoveRightStopsAtAppendPosition(t *testing.T) {
	st, _ := newState([]byte{0xAA})

	for i := 0; i < 5; i++ {
		st.Apply(keymap.CmdMoveRight)
	}
	cursorAt(t, st, 1, 0)
}

func TestMoveCharModeIsByteWise(t *testing.T) {
	st, _ := newState([]byte("abc"))
	st.Apply(keymap.CmdSwitchPane)

	st.Apply(keymap.CmdMoveRight)
	cursorAt(t, st, 1, 0)
	st.Apply(keymap.CmdMoveLeft)
	cursorAt(t, st, 0, 0)
}

func TestMoveCollapsesSelection(t *testing.T) {
	st, _ := newState(make([]byte, 32))
	st.Selection().Select(2, 3)

	// Collapse to the start, then one nibble left.
	st.Apply(keymap.CmdMoveLeft)
	cursorAt(t, st, 1, 1)
	selected(t, st, 1, 0)

	// Collapse to the end, then one nibble right.
	st.Selection().Select(2, 3)
	st.Apply(keymap.CmdMoveRight)
	cursorAt(t, st, 5, 1)
}

func TestExtendAndRetract(t *testing.T) {
	st, _ := newState(make([]byte, 32))
	st.Goto(5)

	for i := 0; i < 3; i++ {
		st.Apply(keymap.CmdExtendRight)
	}
	selected(t, st, 5, 3)

	for i := 0; i < 3; i++ {
		st.Apply(keymap.CmdExtendLeft)
	}
	selected(t, st, 5, 0)
}

func TestExtendFlipsPastAnchor(t *testing.T) {
	st, _ := newState(make([]byte, 32))
	st.Goto(5)

	st.Apply(keymap.CmdExtendRight)
	selected(t, st, 5, 1)

	st.Apply(keymap.CmdExtendLeft)
	st.Apply(keymap.CmdExtendLeft)
	st.Apply(keymap.CmdExtendLeft)
	selected(t, st, 3, 2)
}

func TestExtendByLine(t *testing.T) {
	st, _ := newState(make([]byte, 64))
	st.Goto(4)

	st.Apply(keymap.CmdExtendDown)
	selected(t, st, 4, 16)
	st.Apply(keymap.CmdExtendUp)
	selected(t, st, 4, 0)
}

func TestHomeEnd(t *testing.T) {
	st, _ := newState(make([]byte, 40))
	st.Apply(keymap.CmdEnd)
	cursorAt(t, st, 40, 0)
	st.Apply(keymap.CmdHome)
	cursorAt(t, st, 0, 0)
}

func TestSelectAll(t *testing.T) {
	st, _ := newState(make([]byte, 10))
	st.Apply(keymap.CmdSelectAll)
	selected(t, st, 0, 10)
}

func TestSwitchPane(t *testing.T) {
	st, _ := newState([]byte{1, 2, 3})
	st.Apply(keymap.CmdMoveRight) // sub 1
	if !st.Apply(keymap.CmdSwitchPane) {
		t.Fatal("switch pane not handled")
	}
	if st.Mode() != ModeChar {
		t.Fatalf("mode = %v, want %v", st.Mode(), ModeChar)
	}
	cursorAt(t, st, 0, 0)

	st.Apply(keymap.CmdSwitchPane)
	if st.Mode() != ModeHex {
		t.Fatalf("mode = %v, want %v", st.Mode(), ModeHex)
	}
}

func TestSwitchPaneDisabled(t *testing.T) {
	st, _ := newState([]byte{1}, WithCharPane(false))
	if st.Apply(keymap.CmdSwitchPane) {
		t.Fatal("Tab should fall through without a character pane")
	}
}

func TestTypeHexOverwrite(t *testing.T) {
	st, store := newState([]byte{0x00, 0x11})

	if !st.Type('4') {
		t.Fatal("hex digit not consumed")
	}
	if b, _ := store.ByteAt(0); b != 0x40 {
		t.Fatalf("byte 0 = %#02x, want 0x40", b)
	}
	cursorAt(t, st, 0, 1)

	st.Type('1')
	if b, _ := store.ByteAt(0); b != 0x41 {
		t.Fatalf("byte 0 = %#02x, want 0x41", b)
	}
	cursorAt(t, st, 1, 0)

	if !st.Tracker().IsDirty(0) {
		t.Fatal("byte 0 not marked dirty")
	}
}

func TestTypeHexRejectsNonDigit(t *testing.T) {
	st, store := newState([]byte{0x00})
	if st.Type('g') {
		t.Fatal("'g' consumed in hex mode")
	}
	if b, _ := store.ByteAt(0); b != 0x00 {
		t.Fatalf("byte 0 = %#02x, want 0x00", b)
	}
}

func TestTypeHexAppends(t *testing.T) {
	st, store := newState([]byte{0x01})
	st.Apply(keymap.CmdEnd)

	st.Type('a')
	if store.Len() != 2 {
		t.Fatalf("length = %d, want 2", store.Len())
	}
	if b, _ := store.ByteAt(1); b != 0xA0 {
		t.Fatalf("byte 1 = %#02x, want 0xa0", b)
	}
	cursorAt(t, st, 1, 1)

	st.Type('b')
	if b, _ := store.ByteAt(1); b != 0xAB {
		t.Fatalf("byte 1 = %#02x, want 0xab", b)
	}
	cursorAt(t, st, 2, 0)
}

func TestTypeHexInsertMode(t *testing.T) {
	st, store := newState([]byte{0xFF})
	st.Apply(keymap.CmdToggleInsert)

	st.Type('1')
	st.Type('2')
	if want := []byte{0x12, 0xFF}; !bytes.Equal(store.ReadRange(0, 2), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 2), want)
	}
}

func TestTypeReplacesSelection(t *testing.T) {
	st, store := newState([]byte("abcdef"))
	st.Selection().Select(1, 3)

	st.Type('4')
	if want := []byte{'a', 0x40, 'e', 'f'}; !bytes.Equal(store.ReadRange(0, 8), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 8), want)
	}
	cursorAt(t, st, 1, 1)
}

func TestTypeReadOnlyConsumesWithoutWriting(t *testing.T) {
	store := bytestore.ReadOnly([]byte{0x00})
	st := New(testLayout(), WithReadOnly(true))
	st.SetStore(store, false)

	if !st.Type('f') {
		t.Fatal("read-only typing should still consume the key")
	}
	if b, _ := store.ByteAt(0); b != 0x00 {
		t.Fatalf("byte 0 = %#02x, want 0x00", b)
	}
}

func TestTypeCharMode(t *testing.T) {
	st, store := newState([]byte("xyz"))
	st.Apply(keymap.CmdSwitchPane)

	if !st.Type('Z') {
		t.Fatal("printable char not consumed")
	}
	if b, _ := store.ByteAt(0); b != 'Z' {
		t.Fatalf("byte 0 = %q, want 'Z'", b)
	}
	cursorAt(t, st, 1, 0)

	// Control characters are not encodable and fall through.
	if st.Type('\x07') {
		t.Fatal("control char consumed in char mode")
	}
}

func TestBackspace(t *testing.T) {
	st, store := newState([]byte{1, 2, 3})
	st.Goto(2)

	st.Apply(keymap.CmdBackspace)
	if want := []byte{1, 3}; !bytes.Equal(store.ReadRange(0, 4), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 4), want)
	}
	cursorAt(t, st, 1, 0)
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	st, store := newState([]byte{1, 2})
	st.Apply(keymap.CmdBackspace)
	if store.Len() != 2 {
		t.Fatalf("length = %d, want 2", store.Len())
	}
	cursorAt(t, st, 0, 0)
}

func TestBackspaceDeletesSelection(t *testing.T) {
	st, store := newState([]byte{1, 2, 3, 4})
	st.Selection().Select(1, 2)

	st.Apply(keymap.CmdBackspace)
	if want := []byte{1, 4}; !bytes.Equal(store.ReadRange(0, 4), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 4), want)
	}
	cursorAt(t, st, 1, 0)
}

func TestDeleteForward(t *testing.T) {
	st, store := newState([]byte{1, 2, 3})
	st.Goto(1)

	st.Apply(keymap.CmdDelete)
	if want := []byte{1, 3}; !bytes.Equal(store.ReadRange(0, 4), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 4), want)
	}
	cursorAt(t, st, 1, 0)

	// At the append position there is nothing to delete.
	st.Apply(keymap.CmdEnd)
	st.Apply(keymap.CmdDelete)
	if store.Len() != 2 {
		t.Fatalf("length = %d, want 2", store.Len())
	}
}

func TestCopy(t *testing.T) {
	st, _ := newState([]byte{0x41, 0x42, 0xAB})
	st.Selection().Select(0, 3)

	text, hexText, ok := st.Copy()
	if !ok {
		t.Fatal("copy with selection failed")
	}
	if text != "AB." {
		t.Fatalf("text = %q, want %q", text, "AB.")
	}
	if hexText != "4142AB" {
		t.Fatalf("hex = %q, want %q", hexText, "4142AB")
	}
}

func TestCopyLowercaseHex(t *testing.T) {
	st, _ := newState([]byte{0xAB}, WithHexCasing(false))
	st.Selection().Select(0, 1)
	if _, hexText, _ := st.Copy(); hexText != "ab" {
		t.Fatalf("hex = %q, want %q", hexText, "ab")
	}
}

func TestCopyWithoutSelection(t *testing.T) {
	st, _ := newState([]byte{1})
	if _, _, ok := st.Copy(); ok {
		t.Fatal("copy without selection should fail")
	}
}

func TestCut(t *testing.T) {
	st, store := newState([]byte{0x41, 0x42, 0x43})
	st.Selection().Select(1, 1)

	_, hexText, ok := st.Cut()
	if !ok || hexText != "42" {
		t.Fatalf("cut = (%q, %v), want (%q, true)", hexText, ok, "42")
	}
	if want := []byte{0x41, 0x43}; !bytes.Equal(store.ReadRange(0, 4), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 4), want)
	}
	cursorAt(t, st, 1, 0)
}

func TestDecodeHexText(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"4142", []byte{0x41, 0x42}, false},
		{"4 1 42", []byte{0x41, 0x42}, false},
		{"41-42", []byte{0x41, 0x42}, false},
		{"41_42", []byte{0x41, 0x42}, false},
		{"142", []byte{0x01, 0x42}, false},
		{"f", []byte{0x0F}, false},
		{"", nil, false},
		{"  - _ ", nil, false},
		{"4G", nil, true},
	}
	for _, tt := range tests {
		got, err := DecodeHexText(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrMalformedPaste) {
				t.Errorf("DecodeHexText(%q) err = %v, want ErrMalformedPaste", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeHexText(%q) err = %v", tt.in, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("DecodeHexText(%q) = % x, want % x", tt.in, got, tt.want)
		}
	}
}

func TestPasteInserts(t *testing.T) {
	st, store := newState([]byte{1, 2})
	st.Goto(1)

	if err := st.PasteText("ff fe", true); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if want := []byte{1, 0xFF, 0xFE, 2}; !bytes.Equal(store.ReadRange(0, 8), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 8), want)
	}
	cursorAt(t, st, 3, 0)
	if !st.Tracker().IsDirty(1) || !st.Tracker().IsDirty(2) {
		t.Fatal("pasted bytes not marked dirty")
	}
}

func TestPasteReplacesSelection(t *testing.T) {
	st, store := newState([]byte{1, 2, 3, 4})
	st.Selection().Select(1, 2)

	if err := st.Paste([]byte{9}); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if want := []byte{1, 9, 4}; !bytes.Equal(store.ReadRange(0, 8), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 8), want)
	}
}

func TestPasteOverwriteMode(t *testing.T) {
	st, store := newState([]byte{1, 2, 3, 4}, WithOverwritePaste(true))

	if err := st.Paste([]byte{9, 9}); err != nil {
		t.Fatalf("paste: %v", err)
	}
	if want := []byte{9, 9, 3, 4}; !bytes.Equal(store.ReadRange(0, 8), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 8), want)
	}
}

func TestPasteMalformedLeavesStoreUntouched(t *testing.T) {
	st, store := newState([]byte{1, 2})
	err := st.PasteText("zz", true)
	if !errors.Is(err, ErrMalformedPaste) {
		t.Fatalf("err = %v, want ErrMalformedPaste", err)
	}
	if want := []byte{1, 2}; !bytes.Equal(store.ReadRange(0, 4), want) {
		t.Fatalf("data = % x, want % x", store.ReadRange(0, 4), want)
	}
}

func TestPasteReadOnly(t *testing.T) {
	store := bytestore.ReadOnly([]byte{1})
	st := New(testLayout(), WithReadOnly(true))
	st.SetStore(store, false)

	if err := st.Paste([]byte{2}); !errors.Is(err, bytestore.ErrCapability) {
		t.Fatalf("err = %v, want ErrCapability", err)
	}
	if store.Len() != 1 {
		t.Fatalf("length = %d, want 1", store.Len())
	}
}

func TestFindNextWalksMatches(t *testing.T) {
	st, _ := newState([]byte("abcabcabc"))
	pat, err := find.TextPattern("abc", true, st.Codec())
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}

	off, err := st.FindNext(pat)
	if err != nil || off != 0 {
		t.Fatalf("first match = (%d, %v), want (0, nil)", off, err)
	}
	selected(t, st, 0, 3)

	off, _ = st.FindNext(pat)
	if off != 3 {
		t.Fatalf("second match = %d, want 3", off)
	}

	off, _ = st.FindPrev(pat)
	if off != 0 {
		t.Fatalf("previous match = %d, want 0", off)
	}
	selected(t, st, 0, 3)
}

func TestFindPrevPastStartOfDocument(t *testing.T) {
	st, _ := newState([]byte("abab"))
	pat, err := find.TextPattern("ab", true, st.Codec())
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}

	off, err := st.FindPrev(pat)
	if err != nil || off != 0 {
		t.Fatalf("first backward match = (%d, %v), want (0, nil)", off, err)
	}
	selected(t, st, 0, 2)

	// With the top of the document already selected there is nothing
	// before it to find, and the current match must not come back.
	off, err = st.FindPrev(pat)
	if err != nil || off != find.NotFound {
		t.Fatalf("second backward match = (%d, %v), want (NotFound, nil)", off, err)
	}
	selected(t, st, 0, 2)
}

func TestFindNextNotFoundKeepsSelection(t *testing.T) {
	st, _ := newState([]byte("abc"))
	st.Selection().Select(1, 1)
	pat, _ := find.TextPattern("zz", true, st.Codec())

	off, err := st.FindNext(pat)
	if err != nil || off != find.NotFound {
		t.Fatalf("find = (%d, %v), want (NotFound, nil)", off, err)
	}
	selected(t, st, 1, 1)
}

func TestGotoClamps(t *testing.T) {
	st, _ := newState(make([]byte, 10))
	st.Goto(100)
	cursorAt(t, st, 10, 0)
	st.Goto(-5)
	cursorAt(t, st, 0, 0)
}

func TestClassifyCell(t *testing.T) {
	st, _ := newState([]byte{0x00, 0x11, 0x22, 0x33})
	st.Tracker().MarkDirty(1)
	st.Tracker().MarkDirty(2)
	st.Commit()
	st.Tracker().MarkDirty(2)
	st.Selection().Select(3, 1)

	tests := []struct {
		off  int64
		want CellClass
	}{
		{0, CellZero},
		{1, CellCommitted},
		{2, CellDirty},
		{3, CellSelected},
	}
	for _, tt := range tests {
		if got := st.ClassifyCell(tt.off); got != tt.want {
			t.Errorf("ClassifyCell(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestSetStoreRetainsChanges(t *testing.T) {
	st, _ := newState([]byte{1, 2, 3})
	st.Goto(2)
	st.Tracker().MarkDirty(1)

	st.SetStore(bytestore.FromBytes([]byte{4, 5, 6}), true)
	if !st.Tracker().IsDirty(1) {
		t.Fatal("dirty set lost across retained store swap")
	}
	cursorAt(t, st, 0, 0)

	st.SetStore(bytestore.FromBytes([]byte{7}), false)
	if st.Tracker().IsDirty(1) {
		t.Fatal("dirty set kept across non-retained store swap")
	}
}

func TestEmptyModePassesEverythingThrough(t *testing.T) {
	st := New(testLayout())
	if st.Apply(keymap.CmdMoveRight) {
		t.Fatal("movement handled with no store")
	}
	if st.Type('a') {
		t.Fatal("typing handled with no store")
	}
	if st.Mode() != ModeEmpty {
		t.Fatalf("mode = %v, want %v", st.Mode(), ModeEmpty)
	}
}
