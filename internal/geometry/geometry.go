// Package geometry maps between byte offsets, grid cells, and pixel
// coordinates for the hex and character panes. All pixel math is
// parameterized on the character cell size, so a terminal host passes a
// 1x1 cell and gets column/row coordinates directly.
package geometry

// hexCellChars is the width of one hex byte cell in characters: two hex
// digits plus the separating space.
const hexCellChars = 3

// Layout describes the current grid shape. It is recomputed by the host
// whenever the window, font, or options change.
type Layout struct {
	CharWidth    int
	CharHeight   int
	BytesPerLine int
	GroupSize    int
	VisibleLines int
}

// Point is a pixel origin.
type Point struct {
	X, Y int
}

// DefaultLayout returns a 16-byte-per-line layout grouped in fours with a
// 1x1 character cell.
func DefaultLayout() *Layout {
	return &Layout{
		CharWidth:    1,
		CharHeight:   1,
		BytesPerLine: 16,
		GroupSize:    4,
		VisibleLines: 1,
	}
}

// VisibleBytes returns the number of bytes one screenful covers.
func (l *Layout) VisibleBytes() int64 {
	return int64(l.BytesPerLine) * int64(l.VisibleLines)
}

// GridPoint converts an offset relative to the first visible byte into a
// (column, row) grid cell.
func (l *Layout) GridPoint(rel int64) (col, row int) {
	if rel < 0 {
		return 0, 0
	}
	bpl := int64(l.BytesPerLine)
	return int(rel % bpl), int(rel / bpl)
}

// hexCellWidth is the pixel width of one byte cell in the hex pane.
func (l *Layout) hexCellWidth() int {
	return hexCellChars * l.CharWidth
}

// gapsBefore returns how many group gaps precede the given column.
func (l *Layout) gapsBefore(col int) int {
	if l.GroupSize <= 0 {
		return 0
	}
	return col / l.GroupSize
}

// HexRect returns the pixel origin of the given cell in the hex pane.
// Columns advance by one byte cell plus one extra character width after
// every full group.
func (l *Layout) HexRect(col, row int) Point {
	return Point{
		X: col*l.hexCellWidth() + l.gapsBefore(col)*l.CharWidth,
		Y: row * l.CharHeight,
	}
}

// CharRect returns the pixel origin of the given cell in the character
// pane, which has no group gaps.
func (l *Layout) CharRect(col, row int) Point {
	return Point{X: col * l.CharWidth, Y: row * l.CharHeight}
}

// HexPositionAt inverts HexRect: it resolves a pixel point inside the hex
// pane to a relative byte offset and nibble position. A point inside a
// group gap resolves to the last column of the group before it. Negative
// coordinates clamp to the first cell.
func (l *Layout) HexPositionAt(x, y int) (rel int64, subPos int) {
	if x < 0 {
		x = 0
	}
	row := 0
	if y > 0 {
		row = y / l.CharHeight
	}

	col := 0
	sub := 0
	if l.GroupSize > 0 {
		groupSpan := l.GroupSize*l.hexCellWidth() + l.CharWidth
		group := x / groupSpan
		within := x % groupSpan
		if within >= l.GroupSize*l.hexCellWidth() {
			// Inside the gap: snap to the group's last column, low
			// nibble.
			col = group*l.GroupSize + l.GroupSize - 1
			sub = 1
		} else {
			col = group*l.GroupSize + within/l.hexCellWidth()
			sub = nibbleAt(within%l.hexCellWidth(), l.CharWidth)
		}
	} else {
		col = x / l.hexCellWidth()
		sub = nibbleAt(x%l.hexCellWidth(), l.CharWidth)
	}

	if col >= l.BytesPerLine {
		col = l.BytesPerLine - 1
		sub = 1
	}
	return int64(row)*int64(l.BytesPerLine) + int64(col), sub
}

// nibbleAt resolves the x offset within a byte cell to a nibble index.
// The first character column is the high nibble; the second character and
// the trailing separator both resolve to the low nibble.
func nibbleAt(cellX, charWidth int) int {
	if cellX < charWidth {
		return 0
	}
	return 1
}

// CharPositionAt inverts CharRect for the character pane.
func (l *Layout) CharPositionAt(x, y int) int64 {
	if x < 0 {
		x = 0
	}
	row := 0
	if y > 0 {
		row = y / l.CharHeight
	}
	col := x / l.CharWidth
	if col >= l.BytesPerLine {
		col = l.BytesPerLine - 1
	}
	return int64(row)*int64(l.BytesPerLine) + int64(col)
}

// HexPaneWidth returns the pixel width of the hex pane, excluding any
// trailing group gap.
func (l *Layout) HexPaneWidth() int {
	w := l.BytesPerLine * l.hexCellWidth()
	if l.GroupSize > 0 {
		w += ((l.BytesPerLine - 1) / l.GroupSize) * l.CharWidth
	}
	return w
}

// CharPaneWidth returns the pixel width of the character pane.
func (l *Layout) CharPaneWidth() int {
	return l.BytesPerLine * l.CharWidth
}

// TotalWidth returns the width required for both panes separated by two
// character widths.
func (l *Layout) TotalWidth() int {
	return l.HexPaneWidth() + 2*l.CharWidth + l.CharPaneWidth()
}
