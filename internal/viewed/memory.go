package viewed

import (
	"context"
	"sync"
)

// MemoryStore keeps viewed-state in process memory. It backs tests and
// the ephemeral mode where no local database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]string)}
}

// Get returns the stored watermark for key, with ok=false when absent.
func (m *MemoryStore) Get(_ context.Context, key Key) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	watermark, ok := m.records[key.String()]
	return watermark, ok, nil
}

// Set stores the watermark for key, overwriting any previous value.
func (m *MemoryStore) Set(_ context.Context, key Key, watermark string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key.String()] = watermark
	return nil
}

// Delete removes the record for key if present.
func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key.String())
	return nil
}
