package directory

import (
	"fmt"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

type DirectoryErrorCause string

const (
	ErrCauseNotHTML         DirectoryErrorCause = "not html"
	ErrCauseMissingDropdown DirectoryErrorCause = "missing state dropdown"
	ErrCauseInvalidHref     DirectoryErrorCause = "invalid href"
)

type DirectoryError struct {
	Message   string
	Retryable bool
	Cause     DirectoryErrorCause
	URL       string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory error: %s", e.Cause)
}

func (e *DirectoryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapDirectoryErrorToMetadataCause maps directory-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapDirectoryErrorToMetadataCause(err *DirectoryError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseMissingDropdown, ErrCauseInvalidHref:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
