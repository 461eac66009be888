package cache

import (
	"fmt"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseEncodeFailure CacheErrorCause = "failed to encode cache"
	ErrCauseWriteFailure  CacheErrorCause = "failed to write cache file"
	ErrCauseRemoveFailure CacheErrorCause = "failed to remove cache file"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Path      string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s", e.Cause)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseWriteFailure, ErrCauseRemoveFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
