package cache_test

import (
	"sync"
	"testing"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_StartsEmpty(t *testing.T) {
	store := cache.NewMemoryStore()

	assert.Equal(t, 0, store.Size())
	assert.NotNil(t, store.Load())
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	entries := map[string]string{"https://www.nps.gov": "<html></html>", "": "empty key"}

	require.Nil(t, store.Save(entries))

	assert.Equal(t, entries, store.Load())
	assert.Equal(t, 2, store.Size())
}

func TestMemoryStore_IsolatesCallerMaps(t *testing.T) {
	store := cache.NewMemoryStore()
	entries := map[string]string{"a": "1"}
	require.Nil(t, store.Save(entries))

	entries["b"] = "2"
	loaded := store.Load()
	loaded["c"] = "3"

	assert.Equal(t, map[string]string{"a": "1"}, store.Load())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := cache.NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Save(map[string]string{"key": "value"})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Load()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, map[string]string{"key": "value"}, store.Load())
}
