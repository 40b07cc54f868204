// Package keymap defines the abstract key events the editor core
// consumes and the table mapping key chords to editor commands. The host
// translates its windowing API's events into this form once per input
// event; the core never sees host-specific key types.
package keymap

// Key identifies a non-character key.
type Key int

const (
	KeyRune Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEnter
	KeyEscape
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a single abstract key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// RuneEvent builds an event for a typed character.
func RuneEvent(r rune, mod Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Mod: mod}
}

// SpecialEvent builds an event for a non-character key.
func SpecialEvent(key Key, mod Modifier) Event {
	return Event{Key: key, Mod: mod}
}

// IsChar reports whether the event is plain character input rather than a
// chord.
func (e Event) IsChar() bool {
	return e.Key == KeyRune && e.Mod&(ModCtrl|ModAlt) == 0 && e.Rune != 0
}
