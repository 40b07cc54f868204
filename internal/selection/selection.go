// Package selection tracks the cursor byte offset, the nibble position
// inside it, and the active selection span.
package selection

// ChangedFunc receives the derived line and column after they change.
type ChangedFunc func(line, column int64)

// Model holds the cursor and selection state. The cursor offset is the
// selection's logical start; the selection extends forward from it.
type Model struct {
	cursor       int64
	subPos       int
	length       int64
	bytesPerLine int

	line, column int64
	derived      bool
	onChanged    []ChangedFunc
	onRelease    []func()
}

// New returns a model for the given line width.
func New(bytesPerLine int) *Model {
	if bytesPerLine < 1 {
		bytesPerLine = 1
	}
	return &Model{bytesPerLine: bytesPerLine}
}

// Cursor returns the cursor byte offset.
func (m *Model) Cursor() int64 { return m.cursor }

// SubPos returns the nibble index within the cursor byte (0 = high).
func (m *Model) SubPos() int { return m.subPos }

// Length returns the selection length in bytes; 0 means no selection.
func (m *Model) Length() int64 { return m.length }

// Start returns the selection's first offset.
func (m *Model) Start() int64 { return m.cursor }

// End returns the first offset past the selection.
func (m *Model) End() int64 { return m.cursor + m.length }

// Contains reports whether offset lies inside the selection.
func (m *Model) Contains(offset int64) bool {
	return m.length > 0 && offset >= m.cursor && offset < m.cursor+m.length
}

// Line returns the derived cursor line.
func (m *Model) Line() int64 { return m.line }

// Column returns the derived column within the cursor line.
func (m *Model) Column() int64 { return m.column }

// SetBytesPerLine updates the line width used for the derived position.
func (m *Model) SetBytesPerLine(n int) {
	if n < 1 {
		n = 1
	}
	m.bytesPerLine = n
	m.derive()
}

// SetCursor places the cursor without touching the selection length.
func (m *Model) SetCursor(offset int64, subPos int) {
	if offset < 0 {
		offset = 0
	}
	if subPos != 0 && subPos != 1 {
		subPos = 0
	}
	m.cursor = offset
	m.subPos = subPos
	m.derive()
}

// SetLength sets the selection length extending forward from the cursor.
func (m *Model) SetLength(length int64) {
	if length < 0 {
		length = 0
	}
	m.length = length
	m.derive()
}

// Select places an absolute selection, used by select-all and
// programmatic selection such as find results.
func (m *Model) Select(start, length int64) {
	if start < 0 {
		start = 0
	}
	if length < 0 {
		length = 0
	}
	m.cursor = start
	m.subPos = 0
	m.length = length
	m.derive()
}

// Release collapses the selection to the bare cursor and fires the
// release hooks so a hidden caret can be shown again.
func (m *Model) Release() {
	m.length = 0
	m.derive()
	for _, fn := range m.onRelease {
		fn()
	}
}

// OnChanged registers a handler for derived line/column changes. It fires
// only when the derived pair actually changes.
func (m *Model) OnChanged(fn ChangedFunc) {
	m.onChanged = append(m.onChanged, fn)
}

// OnRelease registers a handler invoked whenever the selection collapses
// via Release.
func (m *Model) OnRelease(fn func()) {
	m.onRelease = append(m.onRelease, fn)
}

func (m *Model) derive() {
	line := m.cursor / int64(m.bytesPerLine)
	column := m.cursor % int64(m.bytesPerLine)
	if m.derived && line == m.line && column == m.column {
		return
	}
	m.line = line
	m.column = column
	m.derived = true
	for _, fn := range m.onChanged {
		fn(line, column)
	}
}
