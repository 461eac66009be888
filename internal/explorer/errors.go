package explorer

import (
	"fmt"

	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

type ExplorerErrorCause string

const (
	ErrCauseUnknownState ExplorerErrorCause = "unknown state"
)

type ExplorerError struct {
	Message   string
	Retryable bool
	Cause     ExplorerErrorCause
	State     string
}

func (e *ExplorerError) Error() string {
	return fmt.Sprintf("explorer error: %s", e.Cause)
}

func (e *ExplorerError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
