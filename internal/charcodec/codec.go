// Package charcodec translates between bytes and the characters shown in
// the editor's character pane. Every codec keeps a strict one cell per
// byte alignment: DisplayString always yields exactly one single-width
// rune per input byte, substituting a filler dot where the byte has no
// printable single-cell representation.
package charcodec

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"
)

// Filler replaces bytes with no printable single-cell representation.
const Filler = '.'

// Codec converts between single bytes and display characters.
type Codec interface {
	// Name identifies the codec ("ascii", "latin1", ...).
	Name() string

	// ByteToChar returns the display rune for b.
	ByteToChar(b byte) rune

	// CharToByte returns the byte encoding r, or false if r has no
	// representation in this codec.
	CharToByte(r rune) (byte, bool)

	// DisplayString renders data for the character pane, one cell per
	// byte.
	DisplayString(data []byte) string
}

// ASCII is the default codec. Printable 7-bit bytes map to themselves;
// control bytes and everything above 0x7E render as the filler dot.
type ASCII struct{}

func (ASCII) Name() string { return "ascii" }

func (ASCII) ByteToChar(b byte) rune {
	if b >= 0x20 && b <= 0x7E {
		return rune(b)
	}
	return Filler
}

func (ASCII) CharToByte(r rune) (byte, bool) {
	if r >= 0x20 && r <= 0x7E {
		return byte(r), true
	}
	return 0, false
}

func (a ASCII) DisplayString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(a.ByteToChar(b))
	}
	return sb.String()
}

// Charmap adapts any single-byte charmap from x/text to the Codec
// contract.
type Charmap struct {
	name string
	cm   *charmap.Charmap
}

// NewCharmap wraps cm under the given codec name.
func NewCharmap(name string, cm *charmap.Charmap) *Charmap {
	return &Charmap{name: name, cm: cm}
}

func (c *Charmap) Name() string { return c.name }

func (c *Charmap) ByteToChar(b byte) rune {
	return displayRune(c.cm.DecodeByte(b))
}

func (c *Charmap) CharToByte(r rune) (byte, bool) {
	return c.cm.EncodeRune(r)
}

func (c *Charmap) DisplayString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(c.ByteToChar(b))
	}
	return sb.String()
}

// displayRune forces r into a single terminal cell, substituting the
// filler for control characters, unmapped bytes, and wide runes.
func displayRune(r rune) rune {
	if r == unicode.ReplacementChar || unicode.IsControl(r) || !unicode.IsPrint(r) {
		return Filler
	}
	if runewidth.RuneWidth(r) != 1 {
		return Filler
	}
	return r
}

// ByName returns the codec registered under name, defaulting to ASCII for
// unknown names.
func ByName(name string) Codec {
	switch name {
	case "latin1":
		return NewCharmap("latin1", charmap.ISO8859_1)
	case "ebcdic":
		return NewCharmap("ebcdic", charmap.CodePage037)
	default:
		return ASCII{}
	}
}
