package recordstore

import (
	"context"
	"sync"
)

type memoryEntry struct {
	data    []byte
	version int64
}

// MemoryMedium keeps collections in a map. It is versioned, so it also
// exercises the compare-and-swap path in tests.
type MemoryMedium struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{entries: make(map[string]memoryEntry)}
}

func (m *MemoryMedium) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, _, found, err := m.GetVersioned(ctx, key)
	return data, found, err
}

func (m *MemoryMedium) GetVersioned(ctx context.Context, key string) ([]byte, int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, 0, false, nil
	}
	return cloneBytes(e.data), e.version, true, nil
}

func (m *MemoryMedium) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	m.entries[key] = memoryEntry{data: cloneBytes(data), version: e.version + 1}
	return nil
}

func (m *MemoryMedium) PutIfVersion(ctx context.Context, key string, data []byte, expected int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	if e.version != expected {
		return ErrVersionConflict
	}
	m.entries[key] = memoryEntry{data: cloneBytes(data), version: expected + 1}
	return nil
}

// Raw overwrites key bypassing the store, for seeding tests.
func (m *MemoryMedium) Raw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entries[key]
	m.entries[key] = memoryEntry{data: cloneBytes(data), version: e.version + 1}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
