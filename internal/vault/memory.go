package vault

import (
	"context"
	"sync"
)

type memoryEntry struct {
	payload []byte
	acc     Accessibility
}

// Memory is a mutex-guarded in-memory adapter. It is used as the reference
// implementation in tests and for ephemeral, process-local storage.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Add(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return ErrDuplicate
	}

	m.entries[key] = memoryEntry{payload: cloneBytes(payload), acc: acc}
	return nil
}

func (m *Memory) Query(ctx context.Context, key string, wantData bool) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	if !wantData {
		return nil, nil
	}
	return cloneBytes(e.payload), nil
}

func (m *Memory) Update(ctx context.Context, key string, payload []byte, acc Accessibility) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		return ErrNotFound
	}

	m.entries[key] = memoryEntry{payload: cloneBytes(payload), acc: acc}
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		return ErrNotFound
	}

	delete(m.entries, key)
	return nil
}

// cloneBytes keeps stored payloads isolated from caller-owned slices.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
