// Package tui is the terminal host: it owns the bubbletea event loop,
// translates terminal input into editor commands, and renders the grid.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"hexgrid/internal/bytestore"
	"hexgrid/internal/charcodec"
	"hexgrid/internal/config"
	"hexgrid/internal/editor"
	"hexgrid/internal/find"
	"hexgrid/internal/geometry"
	"hexgrid/internal/keymap"
)

type View int

const (
	ViewMain View = iota
	ViewFind
	ViewGoto
	ViewSaveAs
	ViewConfirmQuit
	ViewConfirmOverwrite
)

// chromeLines is the vertical space taken by the column header and the
// status line.
const chromeLines = 2

// offsetColWidth is the offset column plus its two-space separator.
const offsetColWidth = 10

type Model struct {
	state  *editor.State
	store  *bytestore.MemStore
	layout *geometry.Layout
	keys   keymap.Table
	config *config.Config
	styles *config.Styles

	view   View
	width  int
	height int

	// Internal clipboard, hex flavor. The hex rendering is lossless so
	// paste always goes through it.
	clipboard string

	// Find dialog state.
	findInput string
	findHex   bool
	findCase  bool
	findCount int
	finding   bool
	findSeq   int
	lastPat   find.Pattern
	havePat   bool

	gotoInput   string
	saveAsInput string
	statusMsg   string
}

func NewModel(files []string) (*Model, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	layout := &geometry.Layout{
		CharWidth:    1,
		CharHeight:   1,
		BytesPerLine: cfg.Editor.BytesPerLine,
		GroupSize:    cfg.Editor.GroupSize,
		VisibleLines: 24,
	}

	st := editor.New(layout,
		editor.WithCodec(charcodec.ByName(cfg.Editor.Charset)),
		editor.WithCharPane(cfg.Editor.CharPane),
		editor.WithOverwritePaste(cfg.Editor.OverwritePaste),
		editor.WithHexCasing(cfg.Editor.HexUpper),
	)

	m := &Model{
		state:    st,
		layout:   layout,
		keys:     keymap.Default(),
		config:   cfg,
		styles:   config.NewStyles(&cfg.Theme),
		findCase: true,
	}

	if len(files) > 0 {
		store, err := bytestore.Open(files[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", files[0], err)
		}
		m.setStore(store)
	} else {
		m.setStore(bytestore.New())
	}

	return m, nil
}

func (m *Model) setStore(store *bytestore.MemStore) {
	m.store = store
	m.state.SetStore(store, m.config.Editor.RetainChanges)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

type findResultMsg struct {
	seq int
	off int64
	n   int
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		visible := msg.Height - chromeLines
		if visible < 1 {
			visible = 1
		}
		m.state.Resize(visible)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case findResultMsg:
		if msg.seq != m.findSeq {
			return m, nil
		}
		m.finding = false
		switch {
		case msg.off >= 0:
			m.state.ApplyMatch(msg.off, msg.n)
			m.statusMsg = fmt.Sprintf("Match at %08X", msg.off)
		case msg.off == find.Aborted:
			m.statusMsg = "Search aborted"
		default:
			m.statusMsg = "Not found"
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch m.view {
	case ViewFind:
		return m.handleFindKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewSaveAs:
		return m.handleSaveAsKey(msg)
	case ViewConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	case ViewConfirmOverwrite:
		return m.handleConfirmOverwriteKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the scan goroutine is reading the store, nothing may
	// mutate it; Esc flips the abort flag and everything else waits
	// for the result message.
	if m.finding {
		if msg.Type == tea.KeyEscape {
			m.state.Finder().Abort()
		}
		return m, nil
	}
	if msg.Type == tea.KeyEscape {
		return m, nil
	}

	ev, ok := translateKey(msg)
	if !ok {
		return m, nil
	}

	if cmd, bound := m.keys.Resolve(ev); bound {
		if cmd.IsAppCommand() || !m.state.Apply(cmd) {
			return m.handleAppCommand(cmd)
		}
		return m, nil
	}

	if ev.IsChar() {
		m.state.Type(ev.Rune)
	}
	return m, nil
}

func (m *Model) handleAppCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdCopy:
		if _, hexText, ok := m.state.Copy(); ok {
			m.clipboard = hexText
			m.statusMsg = "Copied"
		}
	case keymap.CmdCut:
		if _, hexText, ok := m.state.Cut(); ok {
			m.clipboard = hexText
			m.statusMsg = "Cut"
		}
	case keymap.CmdPaste:
		if m.clipboard == "" {
			return m, nil
		}
		if err := m.state.PasteText(m.clipboard, true); err != nil {
			m.statusMsg = "Paste failed: " + err.Error()
		}
	case keymap.CmdFind:
		m.view = ViewFind
		m.updateFindCount()
	case keymap.CmdFindNext:
		if m.havePat && !m.finding {
			return m, m.startFind(m.lastPat, find.Forward)
		}
	case keymap.CmdGoto:
		m.view = ViewGoto
		m.gotoInput = ""
	case keymap.CmdSave:
		return m.trySave()
	case keymap.CmdQuit:
		return m.tryQuit()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.state.Scroll().ScrollLines(-3)
	case tea.MouseButtonWheelDown:
		m.state.Scroll().ScrollLines(3)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			m.clickAt(msg.X, msg.Y)
		}
	}
	return m, nil
}

// clickAt resolves a terminal cell hit to a grid position, switching
// panes when the hit lands in the inactive one.
func (m *Model) clickAt(x, y int) {
	row := y - 1 // column header
	if row < 0 || row >= m.layout.VisibleLines {
		return
	}
	first := m.state.Scroll().FirstVisibleByte()

	hexX := x - offsetColWidth
	if hexX >= 0 && hexX < m.layout.HexPaneWidth() {
		rel, sub := m.layout.HexPositionAt(hexX, row)
		if m.state.Mode() == editor.ModeChar {
			m.state.Apply(keymap.CmdSwitchPane)
		}
		m.state.ClickAt(first+rel, sub)
		return
	}

	charX := hexX - m.layout.HexPaneWidth() - 2
	if charX >= 0 && charX < m.layout.CharPaneWidth() {
		rel := m.layout.CharPositionAt(charX, row)
		if m.state.Mode() == editor.ModeHex {
			if !m.state.Apply(keymap.CmdSwitchPane) {
				return
			}
		}
		m.state.ClickAt(first+rel, 0)
	}
}

func (m *Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewMain
		return m, nil
	case "tab":
		m.findHex = !m.findHex
		m.updateFindCount()
		return m, nil
	case "ctrl+t":
		m.findCase = !m.findCase
		m.updateFindCount()
		return m, nil
	case "enter":
		pat, err := m.buildFindPattern()
		if err != nil {
			m.statusMsg = "Invalid pattern"
			return m, nil
		}
		m.lastPat = pat
		m.havePat = true
		m.view = ViewMain
		return m, m.startFind(pat, find.Forward)
	case "backspace":
		if len(m.findInput) > 0 {
			m.findInput = m.findInput[:len(m.findInput)-1]
			m.updateFindCount()
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.findInput += msg.String()
		m.updateFindCount()
	}
	return m, nil
}

func (m *Model) buildFindPattern() (find.Pattern, error) {
	if m.findHex {
		data, err := editor.DecodeHexText(m.findInput)
		if err != nil || len(data) == 0 {
			return find.Pattern{}, find.ErrInvalidPattern
		}
		return find.HexPattern(data), nil
	}
	return find.TextPattern(m.findInput, m.findCase, m.state.Codec())
}

func (m *Model) updateFindCount() {
	m.findCount = 0
	pat, err := m.buildFindPattern()
	if err != nil {
		return
	}
	eng := &find.Engine{}
	if n, err := eng.Count(m.store, pat); err == nil {
		m.findCount = n
	}
}

// startFind launches the scan on a worker goroutine so huge documents do
// not freeze the event loop; Esc aborts through the engine's flag. The
// scan only reads the store and the result is applied back on the loop.
func (m *Model) startFind(pat find.Pattern, dir find.Direction) tea.Cmd {
	m.finding = true
	m.findSeq++
	seq := m.findSeq
	eng := m.state.Finder()
	eng.Reset()
	store := m.state.Store()
	start := m.state.FindStart(dir)

	return func() tea.Msg {
		off, err := eng.Find(store, start, dir, pat)
		if err != nil {
			off = find.NotFound
		}
		return findResultMsg{seq: seq, off: off, n: pat.Len()}
	}
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewMain
		return m, nil
	case "enter":
		m.doGoto()
		m.view = ViewMain
		return m, nil
	case "backspace":
		if len(m.gotoInput) > 0 {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.gotoInput += msg.String()
	}
	return m, nil
}

func (m *Model) doGoto() {
	input := strings.TrimSpace(m.gotoInput)
	if input == "" {
		return
	}
	var off int64
	var err error
	if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
		off, err = strconv.ParseInt(input[2:], 16, 64)
	} else {
		off, err = strconv.ParseInt(input, 10, 64)
	}
	if err != nil {
		m.statusMsg = "Invalid offset"
		return
	}
	m.state.Goto(off)
}

func (m *Model) trySave() (tea.Model, tea.Cmd) {
	if m.store.Filename() == "" {
		m.view = ViewSaveAs
		m.saveAsInput = ""
		return m, nil
	}
	changed, err := m.store.HasChangedOnDisk()
	if err == nil && changed {
		m.view = ViewConfirmOverwrite
		return m, nil
	}
	m.doSave()
	return m, nil
}

func (m *Model) doSave() {
	if err := m.store.Save(); err != nil {
		m.statusMsg = "Save failed: " + err.Error()
		return
	}
	m.state.Commit()
	m.statusMsg = "Saved " + m.store.Filename()
}

func (m *Model) handleSaveAsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = ViewMain
		return m, nil
	case "enter":
		if m.saveAsInput == "" {
			return m, nil
		}
		if err := m.store.SaveAs(m.saveAsInput); err != nil {
			m.statusMsg = "Save failed: " + err.Error()
		} else {
			m.state.Commit()
			m.statusMsg = "Saved " + m.store.Filename()
		}
		m.view = ViewMain
		return m, nil
	case "backspace":
		if len(m.saveAsInput) > 0 {
			m.saveAsInput = m.saveAsInput[:len(m.saveAsInput)-1]
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.saveAsInput += msg.String()
	}
	return m, nil
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleConfirmOverwriteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.view = ViewMain
		m.doSave()
	case "n", "N", "esc":
		m.view = ViewMain
		m.statusMsg = "Save cancelled"
	}
	return m, nil
}

func (m *Model) tryQuit() (tea.Model, tea.Cmd) {
	if m.state.Tracker().DirtyCount() > 0 {
		m.view = ViewConfirmQuit
		return m, nil
	}
	return m, tea.Quit
}
