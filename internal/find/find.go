// Package find implements forward and backward byte-pattern search over a
// byte store, with case-insensitive dual-buffer text matching and
// cooperative cancellation for long scans.
package find

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"hexgrid/internal/bytestore"
	"hexgrid/internal/charcodec"
)

// Search results that are not offsets.
const (
	NotFound int64 = -1
	Aborted  int64 = -2
)

// ErrInvalidPattern is returned for empty or unencodable patterns, before
// any scanning begins.
var ErrInvalidPattern = errors.New("find: invalid pattern")

// Direction selects the scan direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Kind distinguishes text patterns from raw hex patterns.
type Kind int

const (
	Text Kind = iota
	Hex
)

// Pattern is a pre-encoded search pattern. Case-insensitive text patterns
// carry two equal-length buffers, the fully lower- and upper-cased
// encodings; a candidate byte matches if it equals either buffer at its
// position. This tolerates encodings whose case-folded forms are not 1:1
// byte mirrors, since both buffers are encoded up front.
type Pattern struct {
	kind  Kind
	lower []byte
	upper []byte
}

// Kind returns the pattern kind.
func (p Pattern) Kind() Kind { return p.kind }

// Len returns the pattern length in bytes.
func (p Pattern) Len() int { return len(p.lower) }

// HexPattern builds a raw byte pattern.
func HexPattern(data []byte) Pattern {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Pattern{kind: Hex, lower: buf}
}

// TextPattern encodes s through the codec. With matchCase false it
// encodes both case-folded forms of s; encodings where the folded forms
// differ in length cannot be searched case-insensitively and yield
// ErrInvalidPattern.
func TextPattern(s string, matchCase bool, codec charcodec.Codec) (Pattern, error) {
	if s == "" {
		return Pattern{}, ErrInvalidPattern
	}
	if matchCase {
		buf, err := encode(s, codec)
		if err != nil {
			return Pattern{}, err
		}
		return Pattern{kind: Text, lower: buf}, nil
	}

	lower, err := encode(strings.ToLower(s), codec)
	if err != nil {
		return Pattern{}, err
	}
	upper, err := encode(strings.ToUpper(s), codec)
	if err != nil {
		return Pattern{}, err
	}
	if len(lower) != len(upper) {
		return Pattern{}, fmt.Errorf("%w: case forms differ in length", ErrInvalidPattern)
	}
	return Pattern{kind: Text, lower: lower, upper: upper}, nil
}

func encode(s string, codec charcodec.Codec) ([]byte, error) {
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := codec.CharToByte(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q not encodable", ErrInvalidPattern, r)
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// checkInterval is how many candidate positions are scanned between abort
// checks.
const checkInterval = 4096

// Engine scans a store for a pattern. The zero value is ready to use. An
// Engine is not reusable across concurrent finds; the abort flag is the
// only field safe to touch from another goroutine.
type Engine struct {
	aborted atomic.Bool

	// Yield, when set, runs at every abort check so the host event loop
	// can stay responsive during long scans.
	Yield func()
}

// Abort requests that an in-progress Find return Aborted at its next
// cooperative check. Safe to call from an input handler at any time.
func (e *Engine) Abort() { e.aborted.Store(true) }

// Reset clears a previous abort request.
func (e *Engine) Reset() { e.aborted.Store(false) }

// Find scans the store for pat starting at start, returning the matched
// offset, NotFound, or Aborted. The returned offset is always the match's
// lower byte offset, for either direction. Mismatched case-buffer lengths
// indicate a caller bug and panic.
func (e *Engine) Find(s bytestore.Store, start int64, dir Direction, pat Pattern) (int64, error) {
	if pat.Len() == 0 {
		return NotFound, ErrInvalidPattern
	}
	if pat.upper != nil && len(pat.upper) != len(pat.lower) {
		panic("find: case buffers differ in length")
	}

	length := s.Len()
	last := length - int64(pat.Len())
	if last < 0 {
		return NotFound, nil
	}

	switch dir {
	case Forward:
		if start < 0 {
			start = 0
		}
		for i := start; i <= last; i++ {
			if cancelled, res := e.check(i - start); cancelled {
				return res, nil
			}
			if matchAt(s, i, pat) {
				return i, nil
			}
		}
	case Backward:
		// A negative start means the caller's window is already at
		// the top of the document; clamping to 0 would re-match it.
		if start < 0 {
			return NotFound, nil
		}
		if start > last {
			start = last
		}
		for i := start; i >= 0; i-- {
			if cancelled, res := e.check(start - i); cancelled {
				return res, nil
			}
			if matchAt(s, i, pat) {
				return i, nil
			}
		}
	}
	return NotFound, nil
}

// check runs the cooperative abort protocol every checkInterval scanned
// positions.
func (e *Engine) check(scanned int64) (bool, int64) {
	if scanned%checkInterval != 0 {
		return false, 0
	}
	if e.Yield != nil {
		e.Yield()
	}
	if e.aborted.Load() {
		return true, Aborted
	}
	return false, 0
}

// matchAt compares the pattern window starting at offset i. A failed
// partial match falls back to the candidate loop, which advances by one
// position; the next window therefore restarts immediately after the
// failed window's first byte rather than after the mismatch point.
func matchAt(s bytestore.Store, i int64, pat Pattern) bool {
	window := s.ReadRange(i, pat.Len())
	if len(window) < pat.Len() {
		return false
	}
	for k, b := range window {
		if b == pat.lower[k] {
			continue
		}
		if pat.upper != nil && b == pat.upper[k] {
			continue
		}
		return false
	}
	return true
}

// Count returns the number of window positions matching pat, scanning
// forward from offset 0. Overlapping matches are counted.
func (e *Engine) Count(s bytestore.Store, pat Pattern) (int, error) {
	if pat.Len() == 0 {
		return 0, ErrInvalidPattern
	}
	count := 0
	last := s.Len() - int64(pat.Len())
	for i := int64(0); i <= last; i++ {
		if cancelled, _ := e.check(i); cancelled {
			return count, nil
		}
		if matchAt(s, i, pat) {
			count++
		}
	}
	return count, nil
}
