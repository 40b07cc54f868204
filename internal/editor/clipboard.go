package editor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"hexgrid/internal/bytestore"
)

// ErrMalformedPaste is returned when a hex paste payload contains
// characters that survive separator stripping but do not decode.
var ErrMalformedPaste = errors.New("editor: malformed hex paste")

var hexSeparators = strings.NewReplacer(" ", "", "-", "", "_", "")

// Copy renders the selection in both clipboard flavors: a character
// rendering through the active codec and a continuous hex string. It
// reports false when nothing is selected.
func (st *State) Copy() (text, hexText string, ok bool) {
	n := st.sel.Length()
	if n == 0 || st.store == nil {
		return "", "", false
	}
	data := st.store.ReadRange(st.sel.Start(), int(n))
	text = st.codec.DisplayString(data)

	format := "%02x"
	if st.hexUpper {
		format = "%02X"
	}
	var sb strings.Builder
	sb.Grow(len(data) * 2)
	for _, b := range data {
		fmt.Fprintf(&sb, format, b)
	}
	return text, sb.String(), true
}

// Cut copies the selection and then deletes it.
func (st *State) Cut() (text, hexText string, ok bool) {
	text, hexText, ok = st.Copy()
	if !ok {
		return "", "", false
	}
	if st.readOnly || !st.store.CanDelete() {
		return text, hexText, true
	}
	st.deleteSelection()
	st.afterLengthChange()
	return text, hexText, true
}

// Paste splices data in at the selection start, replacing the selection
// when one is active. In overwrite-paste mode it additionally consumes
// existing bytes past the selection, up to the length of the payload.
// Capability checks run before any mutation so a denied paste leaves the
// store untouched.
func (st *State) Paste(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if st.store == nil || st.mode == ModeEmpty {
		return nil
	}
	if st.readOnly {
		return bytestore.ErrCapability
	}

	start := st.sel.Start()
	delLen := int64(st.sel.Length())
	if st.overwritePaste && int64(len(data)) > delLen {
		delLen = int64(len(data))
		if start+delLen > st.length() {
			delLen = st.length() - start
		}
	}

	if delLen > 0 && !st.store.CanDelete() {
		return bytestore.ErrCapability
	}
	if !st.store.CanInsert() {
		return bytestore.ErrCapability
	}

	if delLen > 0 {
		if err := st.store.Delete(start, delLen); err != nil {
			return err
		}
	}
	if err := st.store.Insert(start, data); err != nil {
		return err
	}
	for i := range data {
		st.tracker.MarkDirty(start + int64(i))
	}
	st.setCursor(start+int64(len(data)), 0)
	st.afterLengthChange()
	return nil
}

// PasteText decodes a textual clipboard payload and pastes it: hex
// payloads through DecodeHexText, character payloads byte-for-byte
// through the active codec. Characters the codec cannot encode abort the
// paste before anything is written.
func (st *State) PasteText(payload string, asHex bool) error {
	if asHex {
		data, err := DecodeHexText(payload)
		if err != nil {
			return err
		}
		return st.Paste(data)
	}
	data := make([]byte, 0, len(payload))
	for _, r := range payload {
		b, ok := st.codec.CharToByte(r)
		if !ok {
			return ErrMalformedPaste
		}
		data = append(data, b)
	}
	return st.Paste(data)
}

// DecodeHexText turns a human-pasted hex string into bytes. Spaces,
// dashes and underscores are stripped first; an odd digit count is
// padded with a leading zero, so "142" reads as 0x01 0x42. Anything else
// non-hex fails the whole payload.
func DecodeHexText(payload string) ([]byte, error) {
	s := hexSeparators.Replace(payload)
	if s == "" {
		return nil, nil
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrMalformedPaste
	}
	return data, nil
}
