package cache

import (
	"context"
	"sync"
	"time"
)

// ensure memoryStore implements Store
var _ Store = (*memoryStore)(nil)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// memoryStore is the in-process fallback. A single mutex guards the whole
// check-then-act sequence on both reads and writes, so an expiry deletion
// cannot race a concurrent Set on the same key.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-process store.
func NewMemory() Store {
	return &memoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return e.payload, true, nil
}

func (m *memoryStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		payload:   payload,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *memoryStore) Close() error { return nil }
