package keymap

import "unicode"

// Command is an editor command resolved from a key chord.
type Command int

const (
	CmdNone Command = iota

	// Movement.
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdPageUp
	CmdPageDown
	CmdHome
	CmdEnd

	// Selection extension.
	CmdExtendLeft
	CmdExtendRight
	CmdExtendUp
	CmdExtendDown
	CmdSelectAll

	// Editing.
	CmdBackspace
	CmdDelete
	CmdToggleInsert
	CmdCopy
	CmdCut
	CmdPaste

	// Pane focus.
	CmdSwitchPane
	CmdSwitchPaneBack

	// Application-level commands handled by the host, not the state
	// machine.
	CmdFind
	CmdFindNext
	CmdGoto
	CmdSave
	CmdQuit
)

// Chord is a lookup key: a key plus its modifier set. Character chords
// store the lowercased rune.
type Chord struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Table maps chords to commands.
type Table map[Chord]Command

// Default returns the standard binding table.
func Default() Table {
	return Table{
		{Key: KeyLeft}:                  CmdMoveLeft,
		{Key: KeyRight}:                 CmdMoveRight,
		{Key: KeyUp}:                    CmdMoveUp,
		{Key: KeyDown}:                  CmdMoveDown,
		{Key: KeyPageUp}:                CmdPageUp,
		{Key: KeyPageDown}:              CmdPageDown,
		{Key: KeyHome}:                  CmdHome,
		{Key: KeyEnd}:                   CmdEnd,
		{Key: KeyLeft, Mod: ModShift}:   CmdExtendLeft,
		{Key: KeyRight, Mod: ModShift}:  CmdExtendRight,
		{Key: KeyUp, Mod: ModShift}:     CmdExtendUp,
		{Key: KeyDown, Mod: ModShift}:   CmdExtendDown,
		{Key: KeyBackspace}:             CmdBackspace,
		{Key: KeyDelete}:                CmdDelete,
		{Key: KeyInsert}:                CmdToggleInsert,
		{Key: KeyTab}:                   CmdSwitchPane,
		{Key: KeyTab, Mod: ModShift}:    CmdSwitchPaneBack,

		{Key: KeyRune, Rune: 'a', Mod: ModCtrl}: CmdSelectAll,
		{Key: KeyRune, Rune: 'c', Mod: ModCtrl}: CmdCopy,
		{Key: KeyRune, Rune: 'x', Mod: ModCtrl}: CmdCut,
		{Key: KeyRune, Rune: 'v', Mod: ModCtrl}: CmdPaste,
		{Key: KeyRune, Rune: 'f', Mod: ModCtrl}: CmdFind,
		{Key: KeyRune, Rune: 'n', Mod: ModCtrl}: CmdFindNext,
		{Key: KeyRune, Rune: 'g', Mod: ModCtrl}: CmdGoto,
		{Key: KeyRune, Rune: 's', Mod: ModCtrl}: CmdSave,
		{Key: KeyRune, Rune: 'q', Mod: ModCtrl}: CmdQuit,
	}
}

// Resolve looks up the command for an event. Character chords normalize
// to lowercase so Ctrl+Shift+C resolves like Ctrl+C. Plain character
// input never resolves to a command; it flows to the active mode's typing
// handler instead.
func (t Table) Resolve(e Event) (Command, bool) {
	chord := Chord{Key: e.Key, Mod: e.Mod}
	if e.Key == KeyRune {
		if e.Mod&(ModCtrl|ModAlt) == 0 {
			return CmdNone, false
		}
		chord.Rune = unicode.ToLower(e.Rune)
		chord.Mod &^= ModShift
	}
	cmd, ok := t[chord]
	return cmd, ok
}

// IsAppCommand reports whether cmd is handled by the host application
// rather than the editing state machine.
func (c Command) IsAppCommand() bool {
	switch c {
	case CmdFind, CmdFindNext, CmdGoto, CmdSave, CmdQuit:
		return true
	}
	return false
}
