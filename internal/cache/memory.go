package cache

import (
	"sync"

	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

// MemoryStore is an in-memory Store. Entries live only for the duration of
// the process; it backs --no-cache runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Load returns a copy of the stored entries.
func (m *MemoryStore) Load() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return copyEntries(m.data)
}

// Save replaces the stored entries with a copy of entries.
func (m *MemoryStore) Save(entries map[string]string) failure.ClassifiedError {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = copyEntries(entries)
	return nil
}

// Size returns the number of entries.
func (m *MemoryStore) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data)
}

func copyEntries(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
