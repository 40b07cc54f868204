// Package scroll maintains the virtualized vertical scroll position over
// a line count that may far exceed a native scrollbar's resolution.
package scroll

// NativeMax is the bounded resolution of the host's native scrollbar.
const NativeMax int64 = 0xFFFF

// nativeSnap is the thumb-drag tolerance near the end of the native
// range. Proportional rounding at extreme scroll ranges can otherwise
// leave the true last line unreachable by drag.
const nativeSnap int64 = 10

// Controller tracks the scroll position in whole lines and derives the
// visible byte window from it.
type Controller struct {
	pos          int64
	max          int64
	visibleLines int
	bytesPerLine int
}

// New returns a controller for the given grid shape.
func New(bytesPerLine, visibleLines int) *Controller {
	if bytesPerLine < 1 {
		bytesPerLine = 1
	}
	if visibleLines < 1 {
		visibleLines = 1
	}
	return &Controller{bytesPerLine: bytesPerLine, visibleLines: visibleLines}
}

// Pos returns the current top line.
func (c *Controller) Pos() int64 { return c.pos }

// Max returns the maximum top line.
func (c *Controller) Max() int64 { return c.max }

// VisibleLines returns the number of lines one screenful covers.
func (c *Controller) VisibleLines() int { return c.visibleLines }

// BytesPerLine returns the line width in bytes.
func (c *Controller) BytesPerLine() int { return c.bytesPerLine }

// SetVisibleLines updates the screenful height. The caller must follow up
// with Recompute.
func (c *Controller) SetVisibleLines(n int) {
	if n < 1 {
		n = 1
	}
	c.visibleLines = n
}

// SetBytesPerLine updates the line width. The caller must follow up with
// Recompute.
func (c *Controller) SetBytesPerLine(n int) {
	if n < 1 {
		n = 1
	}
	c.bytesPerLine = n
}

// Recompute derives the scroll bounds from the store length. The line
// count includes the append position, so a store ending exactly on a line
// boundary still has a cell for the cursor past the last byte. If the
// data shrank below the current position the view moves up to stay inside
// bounds.
func (c *Controller) Recompute(length int64) {
	bpl := int64(c.bytesPerLine)
	lines := (length + bpl) / bpl
	c.max = lines - int64(c.visibleLines)
	if c.max < 0 {
		c.max = 0
	}
	if c.pos > c.max {
		c.pos = c.max
	}
}

// ScrollToLine jumps to the given top line, clamped to bounds.
func (c *Controller) ScrollToLine(line int64) {
	if line < 0 {
		line = 0
	}
	if line > c.max {
		line = c.max
	}
	c.pos = line
}

// ScrollLines moves the top line by delta, clamped to bounds.
func (c *Controller) ScrollLines(delta int64) {
	c.ScrollToLine(c.pos + delta)
}

// FirstVisibleByte returns the offset of the first byte on screen.
func (c *Controller) FirstVisibleByte() int64 {
	return c.pos * int64(c.bytesPerLine)
}

// LastVisibleByte returns the offset of the last byte on screen, capped
// at the end of data.
func (c *Controller) LastVisibleByte(length int64) int64 {
	last := c.FirstVisibleByte() + int64(c.visibleLines)*int64(c.bytesPerLine) - 1
	if last > length-1 {
		last = length - 1
	}
	return last
}

// ByteIntoView scrolls the minimum distance needed to bring offset on
// screen. Offsets already visible leave the position untouched.
func (c *Controller) ByteIntoView(offset, length int64) {
	if offset < 0 {
		offset = 0
	}
	bpl := int64(c.bytesPerLine)
	line := offset / bpl

	switch {
	case offset < c.FirstVisibleByte():
		c.ScrollToLine(line)
	case offset > c.LastVisibleByte(length + 1):
		// length+1 keeps the append position reachable.
		c.ScrollToLine(line - int64(c.visibleLines) + 1)
	}
}

// NativePos compresses the line position into the native scrollbar range.
// Small documents map through unchanged.
func (c *Controller) NativePos() int64 {
	if c.max < NativeMax {
		return c.pos
	}
	if c.max == 0 {
		return 0
	}
	native := int64(float64(NativeMax) / 100.0 * (float64(c.pos) / float64(c.max) * 100.0))
	if native < 0 {
		native = 0
	}
	if native > NativeMax {
		native = NativeMax
	}
	return native
}

// SetFromNative reconstructs the line position from a native scrollbar
// value, tolerating proportional rounding. Values within the snap window
// of the native maximum land on the true last line.
func (c *Controller) SetFromNative(native int64) {
	if native < 0 {
		native = 0
	}
	if native > NativeMax {
		native = NativeMax
	}
	if c.max < NativeMax {
		c.ScrollToLine(native)
		return
	}
	if native >= NativeMax-nativeSnap {
		c.ScrollToLine(c.max)
		return
	}
	c.ScrollToLine(int64(float64(native) / float64(NativeMax) * float64(c.max)))
}
