package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	sink := &spySink{}
	store := cache.NewFileStore(filepath.Join(t.TempDir(), "missing.json"), sink)

	entries := store.Load()

	require.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Empty(t, sink.errors, "a missing file is the normal first run")
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"https://www.nps.gov": "<html`},
		{name: "not json", content: "this is not a cache"},
		{name: "wrong shape", content: `["a", "b"]`},
		{name: "non-string values", content: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			sink := &spySink{}
			store := cache.NewFileStore(path, sink)

			entries := store.Load()

			require.NotNil(t, entries)
			assert.Empty(t, entries)
			require.Len(t, sink.errors, 1)
			assert.Equal(t, metadata.CauseCacheCorrupt, sink.errors[0])
		})
	}
}

func TestFileStore_LoadNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	entries := cache.NewFileStore(path, nil).Load()

	require.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFileStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
	}{
		{name: "empty", entries: map[string]string{}},
		{
			name: "html and derived json",
			entries: map[string]string{
				"https://www.nps.gov/isro/index.htm":           "<html><body>Isle Royale</body></html>",
				"https://www.nps.gov?_derived_state-directory": `{"michigan":"https://www.nps.gov/state/mi/index.htm"}`,
				"https://www.nps.gov/state/mi/index.htm":       "",
				"unicode éè key with \"quotes\"\n":             "value\twith\ttabs",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			store := cache.NewFileStore(path, nil)

			_ = store.Load()
			require.Nil(t, store.Save(tt.entries))

			assert.Equal(t, tt.entries, store.Load())

			// a fresh store over the same file sees the same mapping
			assert.Equal(t, tt.entries, cache.NewFileStore(path, nil).Load())
		})
	}
}

func TestFileStore_SaveRewritesWholeMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := cache.NewFileStore(path, nil)

	require.Nil(t, store.Save(map[string]string{"a": "1", "b": "2"}))
	require.Nil(t, store.Save(map[string]string{"c": "3"}))

	assert.Equal(t, map[string]string{"c": "3"}, store.Load())
}

func TestFileStore_SaveCreatesParentDirectory(t *testing.T) {
	sink := &spySink{}
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	store := cache.NewFileStore(path, sink)

	require.Nil(t, store.Save(map[string]string{"k": "v"}))

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Empty(t, sink.artifacts, "cache entries are recorded by the fetcher that stores them")
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	// the cache path is an existing directory, so the rename fails
	path := filepath.Join(dir, "occupied")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

	sink := &spySink{}
	store := cache.NewFileStore(path, sink)

	err := store.Save(map[string]string{"k": "v"})
	require.Error(t, err)

	var cacheErr *cache.CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, cache.ErrCauseWriteFailure, cacheErr.Cause)
	assert.Equal(t, []metadata.ErrorCause{metadata.CauseStorageFailure}, sink.errors)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	store := cache.NewFileStore(path, nil)
	require.Nil(t, store.Save(map[string]string{"k": "v"}))

	require.Nil(t, store.Clear())
	assert.Empty(t, store.Load())

	// clearing twice is fine
	assert.Nil(t, store.Clear())
}

func TestFileStore_Path(t *testing.T) {
	store := cache.NewFileStore("/tmp/nationalsite_cache.json", nil)
	assert.Equal(t, "/tmp/nationalsite_cache.json", store.Path())
}
