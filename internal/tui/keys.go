package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"hexgrid/internal/keymap"
)

// specialKeys maps bubbletea key strings to abstract key events. Plain
// character input is handled separately so typed text never has to round
// trip through this table.
var specialKeys = map[string]keymap.Event{
	"up":          keymap.SpecialEvent(keymap.KeyUp, keymap.ModNone),
	"down":        keymap.SpecialEvent(keymap.KeyDown, keymap.ModNone),
	"left":        keymap.SpecialEvent(keymap.KeyLeft, keymap.ModNone),
	"right":       keymap.SpecialEvent(keymap.KeyRight, keymap.ModNone),
	"shift+up":    keymap.SpecialEvent(keymap.KeyUp, keymap.ModShift),
	"shift+down":  keymap.SpecialEvent(keymap.KeyDown, keymap.ModShift),
	"shift+left":  keymap.SpecialEvent(keymap.KeyLeft, keymap.ModShift),
	"shift+right": keymap.SpecialEvent(keymap.KeyRight, keymap.ModShift),
	"pgup":        keymap.SpecialEvent(keymap.KeyPageUp, keymap.ModNone),
	"pgdown":      keymap.SpecialEvent(keymap.KeyPageDown, keymap.ModNone),
	"home":        keymap.SpecialEvent(keymap.KeyHome, keymap.ModNone),
	"end":         keymap.SpecialEvent(keymap.KeyEnd, keymap.ModNone),
	"backspace":   keymap.SpecialEvent(keymap.KeyBackspace, keymap.ModNone),
	"delete":      keymap.SpecialEvent(keymap.KeyDelete, keymap.ModNone),
	"insert":      keymap.SpecialEvent(keymap.KeyInsert, keymap.ModNone),
	"tab":         keymap.SpecialEvent(keymap.KeyTab, keymap.ModNone),
	"shift+tab":   keymap.SpecialEvent(keymap.KeyTab, keymap.ModShift),
	"enter":       keymap.SpecialEvent(keymap.KeyEnter, keymap.ModNone),
	"esc":         keymap.SpecialEvent(keymap.KeyEscape, keymap.ModNone),
}

// translateKey converts a bubbletea key message into the abstract event
// the keymap and editor consume.
func translateKey(msg tea.KeyMsg) (keymap.Event, bool) {
	s := msg.String()

	if ev, ok := specialKeys[s]; ok {
		return ev, true
	}

	// Ctrl chords arrive as "ctrl+x".
	if len(s) == 6 && s[:5] == "ctrl+" {
		return keymap.RuneEvent(rune(s[5]), keymap.ModCtrl), true
	}

	if msg.Type == tea.KeySpace {
		return keymap.RuneEvent(' ', keymap.ModNone), true
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		return keymap.RuneEvent(msg.Runes[0], keymap.ModNone), true
	}
	return keymap.Event{}, false
}
