package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hexgrid/internal/editor"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderColumnHeader())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderBottomLine())
	return b.String()
}

func (m *Model) renderColumnHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", offsetColWidth))
	for col := 0; col < m.layout.BytesPerLine; col++ {
		if col > 0 && m.layout.GroupSize > 0 && col%m.layout.GroupSize == 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.hexByte(byte(col % 256)))
		if col < m.layout.BytesPerLine-1 {
			b.WriteString(" ")
		}
	}
	return m.styles.Offset.Render(b.String())
}

func (m *Model) renderGrid() string {
	length := int64(0)
	if m.state.Store() != nil {
		length = m.state.Store().Len()
	}
	first := m.state.Scroll().FirstVisibleByte()
	caretOff, caretSub := m.state.Caret()

	lines := make([]string, 0, m.layout.VisibleLines)
	for row := 0; row < m.layout.VisibleLines; row++ {
		rowOffset := first + int64(row)*int64(m.layout.BytesPerLine)
		if rowOffset > length {
			lines = append(lines, "")
			continue
		}

		var hexLine strings.Builder
		var charLine strings.Builder

		for col := 0; col < m.layout.BytesPerLine; col++ {
			offset := rowOffset + int64(col)

			if col > 0 && m.layout.GroupSize > 0 && col%m.layout.GroupSize == 0 {
				hexLine.WriteString(" ")
			}

			hexStr := "  "
			charStr := " "
			if offset < length {
				data := m.state.Store().ReadRange(offset, 1)
				if len(data) == 1 {
					hexStr = m.hexByte(data[0])
					charStr = string(m.state.Codec().ByteToChar(data[0]))
				}
			}

			hexStyle, charStyle := m.cellStyles(offset, caretOff, caretSub)
			hexLine.WriteString(hexStyle.hi.Render(hexStr[:1]))
			hexLine.WriteString(hexStyle.lo.Render(hexStr[1:]))
			charLine.WriteString(charStyle.Render(charStr))

			if col < m.layout.BytesPerLine-1 {
				hexLine.WriteString(" ")
			}
		}

		offsetStr := m.styles.Offset.Render(fmt.Sprintf("%08X  ", rowOffset))
		lines = append(lines, offsetStr+hexLine.String()+"  "+charLine.String())
	}
	return strings.Join(lines, "\n")
}

// nibbleStyles styles the two digits of one hex cell independently so
// the caret can sit on a single nibble.
type nibbleStyles struct {
	hi, lo lipgloss.Style
}

func (m *Model) cellStyles(offset, caretOff int64, caretSub int) (nibbleStyles, lipgloss.Style) {
	base := m.styles.Normal
	switch m.state.ClassifyCell(offset) {
	case editor.CellSelected:
		base = m.styles.Selection
	case editor.CellDirty:
		base = m.styles.Dirty
	case editor.CellCommitted:
		base = m.styles.Committed
	case editor.CellZero:
		base = m.styles.Zero
	}

	hex := nibbleStyles{hi: base, lo: base}
	char := base

	if offset == caretOff {
		caret := m.styles.Caret
		if m.state.InsertActive() {
			caret = m.styles.CaretInsert
		}
		switch m.state.Mode() {
		case editor.ModeHex:
			if caretSub == 0 {
				hex.hi = caret
			} else {
				hex.lo = caret
			}
			char = m.styles.Selection
		case editor.ModeChar:
			char = caret
			hex.hi, hex.lo = m.styles.Selection, m.styles.Selection
		}
	}
	return hex, char
}

func (m *Model) renderBottomLine() string {
	switch m.view {
	case ViewFind:
		return m.renderFindPrompt()
	case ViewGoto:
		return m.styles.Prompt.Render("Goto offset (0x for hex): ") + m.gotoInput + "_"
	case ViewSaveAs:
		return m.styles.Prompt.Render("Save as: ") + m.saveAsInput + "_"
	case ViewConfirmQuit:
		return m.styles.Error.Render("Unsaved changes, quit anyway? (y/n)")
	case ViewConfirmOverwrite:
		return m.styles.Error.Render("File changed on disk, overwrite? (y/n)")
	default:
		return m.renderStatus()
	}
}

func (m *Model) renderFindPrompt() string {
	kind := "text"
	if m.findHex {
		kind = "hex"
	}
	caseLabel := "case"
	if !m.findCase {
		caseLabel = "nocase"
	}
	prompt := fmt.Sprintf("Find [%s %s, Tab/Ctrl+T toggles]: ", kind, caseLabel)
	suffix := fmt.Sprintf("  (%d matches)", m.findCount)
	return m.styles.Prompt.Render(prompt) + m.findInput + "_" + m.styles.Offset.Render(suffix)
}

func (m *Model) renderStatus() string {
	caretOff, _ := m.state.Caret()
	sel := m.state.Selection()

	name := m.store.Filename()
	if name == "" {
		name = "(new)"
	}

	mode := "OVR"
	if m.state.InsertActive() {
		mode = "INS"
	}
	if m.state.ReadOnly() {
		mode = "RO"
	}

	left := fmt.Sprintf(" %s  %08X  %d:%d  %s  %s ",
		name, caretOff, sel.Line(), sel.Column(), m.state.Mode(), mode)
	if n := sel.Length(); n > 0 {
		left += fmt.Sprintf(" sel %d ", n)
	}
	if m.finding {
		left += " searching... "
	}

	out := m.styles.Status.Render(left)
	if n := m.state.Tracker().DirtyCount(); n > 0 {
		out += m.styles.Unsaved.Render(fmt.Sprintf(" *%d", n))
	}
	if m.statusMsg != "" {
		out += m.styles.StatusHigh.Render(" " + m.statusMsg + " ")
	}
	return out
}

func (m *Model) hexByte(b byte) string {
	if m.state.HexUpper() {
		return fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("%02x", b)
}
