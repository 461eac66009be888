package places

import (
	"fmt"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

type PlacesErrorCause string

const (
	ErrCauseInvalidInput   PlacesErrorCause = "invalid input"
	ErrCauseMissingAPIKey  PlacesErrorCause = "missing api key"
	ErrCauseNetworkFailure PlacesErrorCause = "network issues"
	ErrCauseBadResponse    PlacesErrorCause = "bad response"
)

type PlacesError struct {
	Message    string
	Retryable  bool
	Cause      PlacesErrorCause
	StatusCode int
}

func (e *PlacesError) Error() string {
	return fmt.Sprintf("places error: %s", e.Cause)
}

func (e *PlacesError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapPlacesErrorToMetadataCause maps places-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapPlacesErrorToMetadataCause(err *PlacesError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidInput, ErrCauseMissingAPIKey:
		return metadata.CauseInvalidInput
	case ErrCauseNetworkFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseBadResponse:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
