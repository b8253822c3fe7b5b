// Package memstore implements the byte store in memory, for the
// simulated terminal and for tests.
package memstore

import (
	"github.com/golang/glog"

	"github.com/taggate/tally.go/pkg/store"
)

// DefaultSize matches a 4KB EEPROM part.
const DefaultSize = 4096

// MemStore is an in-memory store.Store with the same silent-failure
// semantics as a real device: out-of-range writes are logged and
// dropped, out-of-range reads return the 0 sentinel.
type MemStore struct {
	bytes []byte
}

// New creates a store of DefaultSize.
func New() *MemStore {
	return NewSized(DefaultSize)
}

// NewSized creates a store of an explicit size.
func NewSized(size int) *MemStore {
	return &MemStore{bytes: make([]byte, size)}
}

// WriteByte implements store.Store.
func (m *MemStore) WriteByte(addr int, b byte) {
	if addr < 0 || addr >= len(m.bytes) {
		glog.Errorf("store write at %d out of range", addr)
		return
	}
	m.bytes[addr] = b
}

// ReadByte implements store.Store.
func (m *MemStore) ReadByte(addr int) byte {
	if addr < 0 || addr >= len(m.bytes) {
		return 0
	}
	return m.bytes[addr]
}

// Bytes exposes the raw content for tests asserting the persisted
// layout.
func (m *MemStore) Bytes() []byte {
	return m.bytes
}

var _ store.Store = (*MemStore)(nil)
