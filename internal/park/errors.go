package park

import (
	"fmt"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseNotHTML       ExtractionErrorCause = "not html"
	ErrCauseMissingMarker ExtractionErrorCause = "missing marker"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
	// Field names the record field whose marker was absent.
	Field string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s", e.Cause)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapExtractionErrorToMetadataCause maps park-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err *ExtractionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseMissingMarker:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
