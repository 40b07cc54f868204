package bytestore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// MemStore is a Store backed by a flat in-process byte slice. It optionally
// remembers the file it was loaded from so the host can save it back.
type MemStore struct {
	filename     string
	data         []byte
	originalHash string

	canWrite  bool
	canInsert bool
	canDelete bool

	contentFns []ContentFunc
	lengthFns  []LengthFunc
	pending    []func()
	notifying  bool
}

// New returns an empty writable MemStore.
func New() *MemStore {
	return FromBytes(nil)
}

// FromBytes returns a writable MemStore holding a copy of data.
func FromBytes(data []byte) *MemStore {
	s := &MemStore{
		data:      make([]byte, len(data)),
		canWrite:  true,
		canInsert: true,
		canDelete: true,
	}
	copy(s.data, data)
	return s
}

// ReadOnly returns a MemStore holding a copy of data with all mutation
// capabilities disabled.
func ReadOnly(data []byte) *MemStore {
	s := FromBytes(data)
	s.canWrite = false
	s.canInsert = false
	s.canDelete = false
	return s
}

// Open reads the named file into a writable MemStore, recording a content
// hash so later on-disk changes can be detected.
func Open(filename string) (*MemStore, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)
	s := FromBytes(data)
	s.filename = filename
	s.originalHash = hex.EncodeToString(hash[:])
	return s, nil
}

func (s *MemStore) Filename() string { return s.filename }

func (s *MemStore) Len() int64 { return int64(len(s.data)) }

func (s *MemStore) CanWrite() bool  { return s.canWrite }
func (s *MemStore) CanInsert() bool { return s.canInsert }
func (s *MemStore) CanDelete() bool { return s.canDelete }

func (s *MemStore) ByteAt(offset int64) (byte, error) {
	if offset < 0 || offset >= int64(len(s.data)) {
		return 0, ErrOutOfRange
	}
	return s.data[offset], nil
}

func (s *MemStore) ReadRange(offset int64, count int) []byte {
	if offset < 0 || offset >= int64(len(s.data)) || count <= 0 {
		return nil
	}
	end := offset + int64(count)
	if end > int64(len(s.data)) {
		end = int64(len(s.data))
	}
	out := make([]byte, end-offset)
	copy(out, s.data[offset:end])
	return out
}

func (s *MemStore) WriteByte(offset int64, b byte) error {
	if !s.canWrite {
		return ErrCapability
	}
	if offset < 0 || offset >= int64(len(s.data)) {
		return ErrOutOfRange
	}
	s.data[offset] = b
	s.queueContent(offset, 1)
	s.notify()
	return nil
}

func (s *MemStore) Insert(offset int64, data []byte) error {
	if !s.canInsert {
		return ErrCapability
	}
	if offset < 0 || offset > int64(len(s.data)) {
		return ErrOutOfRange
	}
	if len(data) == 0 {
		return nil
	}

	grown := make([]byte, len(s.data)+len(data))
	copy(grown, s.data[:offset])
	copy(grown[offset:], data)
	copy(grown[offset+int64(len(data)):], s.data[offset:])
	s.data = grown

	s.queueContent(offset, int64(len(data)))
	s.queueLength()
	s.notify()
	return nil
}

func (s *MemStore) Delete(offset, count int64) error {
	if !s.canDelete {
		return ErrCapability
	}
	if offset < 0 || offset >= int64(len(s.data)) || count < 0 {
		return ErrOutOfRange
	}
	if count == 0 {
		return nil
	}
	if offset+count > int64(len(s.data)) {
		return ErrOutOfRange
	}

	shrunk := make([]byte, int64(len(s.data))-count)
	copy(shrunk, s.data[:offset])
	copy(shrunk[offset:], s.data[offset+count:])
	s.data = shrunk

	s.queueContent(offset, count)
	s.queueLength()
	s.notify()
	return nil
}

func (s *MemStore) OnContentChanged(fn ContentFunc) {
	s.contentFns = append(s.contentFns, fn)
}

func (s *MemStore) OnLengthChanged(fn LengthFunc) {
	s.lengthFns = append(s.lengthFns, fn)
}

func (s *MemStore) queueContent(offset, count int64) {
	for _, fn := range s.contentFns {
		fn := fn
		s.pending = append(s.pending, func() { fn(offset, count) })
	}
}

func (s *MemStore) queueLength() {
	length := int64(len(s.data))
	for _, fn := range s.lengthFns {
		fn := fn
		s.pending = append(s.pending, func() { fn(length) })
	}
}

// notify drains the pending handler queue. A handler that mutates the
// store reenters notify; the nested call returns immediately and the
// outer drain picks up whatever the nested mutation queued.
func (s *MemStore) notify() {
	if s.notifying {
		return
	}
	s.notifying = true
	for len(s.pending) > 0 {
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
	}
	s.notifying = false
}

// HasChangedOnDisk reports whether the backing file's content no longer
// matches what was originally loaded.
func (s *MemStore) HasChangedOnDisk() (bool, error) {
	if s.filename == "" {
		return false, nil
	}

	f, err := os.Open(s.filename)
	if err != nil {
		return false, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return false, err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]) != s.originalHash, nil
}

// Save writes the store content back to its backing file.
func (s *MemStore) Save() error {
	if s.filename == "" {
		return fmt.Errorf("bytestore: no filename set")
	}
	if err := os.WriteFile(s.filename, s.data, 0644); err != nil {
		return err
	}
	hash := sha256.Sum256(s.data)
	s.originalHash = hex.EncodeToString(hash[:])
	return nil
}

// SaveAs writes the store content to the named file and rebinds the store
// to it.
func (s *MemStore) SaveAs(filename string) error {
	s.filename = filename
	return s.Save()
}
