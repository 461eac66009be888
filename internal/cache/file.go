package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"github.com/rohmanhakim/nps-scraper/pkg/fileutil"
)

/*
FileStore

Responsibilities
- Own the single JSON cache file exclusively
- Recover from a missing or corrupt file as an empty store
- Rewrite the whole file on every Save

The mutex serializes Load and Save inside one process. Nothing protects
the file from a second process writing it at the same time.
*/
type FileStore struct {
	mu           sync.Mutex
	path         string
	metadataSink metadata.MetadataSink
}

func NewFileStore(path string, metadataSink metadata.MetadataSink) *FileStore {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &FileStore{
		path:         path,
		metadataSink: metadataSink,
	}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			f.recordCorrupt(err.Error())
		}
		return map[string]string{}
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		f.recordCorrupt(fmt.Sprintf("decode cache file: %v", err))
		return map[string]string{}
	}
	// "null" decodes into a nil map
	if entries == nil {
		entries = map[string]string{}
	}
	return entries
}

func (f *FileStore) Save(entries map[string]string) failure.ClassifiedError {
	f.mu.Lock()
	defer f.mu.Unlock()

	if entries == nil {
		entries = map[string]string{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return f.fail(&CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodeFailure,
			Path:      f.path,
		}, "FileStore.Save")
	}

	if err := fileutil.WriteFileAtomic(f.path, data, 0644); err != nil {
		return f.fail(&CacheError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseWriteFailure,
			Path:      f.path,
		}, "FileStore.Save")
	}
	return nil
}

// Clear removes the backing file. Removing a file that does not exist is
// not an error.
func (f *FileStore) Clear() failure.ClassifiedError {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return f.fail(&CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRemoveFailure,
			Path:      f.path,
		}, "FileStore.Clear")
	}
	return nil
}

func (f *FileStore) fail(cacheErr *CacheError, action string) *CacheError {
	f.metadataSink.RecordError(
		time.Now(),
		"cache",
		action,
		mapCacheErrorToMetadataCause(cacheErr),
		cacheErr.Message,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, cacheErr.Path),
		},
	)
	return cacheErr
}

func (f *FileStore) recordCorrupt(details string) {
	f.metadataSink.RecordError(
		time.Now(),
		"cache",
		"FileStore.Load",
		metadata.CauseCacheCorrupt,
		details,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, f.path),
		},
	)
}
