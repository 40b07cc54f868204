// Package bytestore defines the byte sequence abstraction the editor core
// operates on, and provides the in-memory implementation used for files
// loaded into the editor.
package bytestore

import "errors"

var (
	// ErrOutOfRange is returned when an offset or length argument lies
	// outside the valid range of the store.
	ErrOutOfRange = errors.New("bytestore: offset out of range")

	// ErrCapability is returned when a mutation is attempted on a store
	// that does not support it.
	ErrCapability = errors.New("bytestore: operation not supported by store")
)

// ContentFunc receives the offset and byte count of a completed mutation.
type ContentFunc func(offset, count int64)

// LengthFunc receives the new store length after it changed.
type LengthFunc func(length int64)

// Store is an ordered, zero-indexed byte sequence with mutable length.
//
// Read and write offsets must lie in [0, Len()); insert offsets may equal
// Len() (append). Mutations are gated by the capability methods, which are
// fixed for the lifetime of a store instance. Change handlers registered
// via OnContentChanged and OnLengthChanged are invoked only after the
// triggering mutation has completed, never during it.
type Store interface {
	Len() int64

	ByteAt(offset int64) (byte, error)

	// ReadRange returns up to count bytes starting at offset. The slice
	// is shortened if the range runs past end of data; it never errors.
	ReadRange(offset int64, count int) []byte

	WriteByte(offset int64, b byte) error
	Insert(offset int64, data []byte) error
	Delete(offset int64, count int64) error

	CanWrite() bool
	CanInsert() bool
	CanDelete() bool

	OnContentChanged(fn ContentFunc)
	OnLengthChanged(fn LengthFunc)
}
