package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when nothing has been saved to the slot yet.
var ErrNotFound = errors.New("slot not found")

// Slot is one named value in durable key-value storage. Save replaces the
// whole value; there is no merge and no concurrency check.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// MemorySlot is a simple in-memory implementation, mostly for tests
type MemorySlot struct {
	mu      sync.RWMutex
	data    []byte
	present bool
	err     error
}

func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{data: data, present: data != nil}
}

func NewMemorySlotWithError(err error) *MemorySlot {
	return &MemorySlot{err: err}
}

func (m *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if !m.present {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemorySlot) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.present = true
	return nil
}
