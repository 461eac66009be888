package failure

import "errors"

type Severity int

// prompt-loop control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether err carries a recoverable classification.
// Unclassified errors are treated as fatal.
func IsRecoverable(err error) bool {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Severity() == SeverityRecoverable
	}
	return false
}
