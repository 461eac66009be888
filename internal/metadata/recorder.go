package metadata

import (
	"time"

	"github.com/sirupsen/logrus"
)

/*
Recorder turns pipeline events into structured log entries.
It must not:
- perform I/O decisions
- affect control flow

Fetch events are logged at info level so a user sees whether a page came
from the cache or the network. Artifacts go to debug, errors to warn.
*/
type Recorder struct {
	logger *logrus.Logger
}

func NewRecorder(logger *logrus.Logger) *Recorder {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	fields := attrFields(attrs)
	fields["package"] = packageName
	fields["action"] = action
	fields["cause"] = cause.String()

	entry := r.logger.WithFields(fields).WithTime(observedAt)
	// A corrupt cache is recovered silently; keep it out of the default output.
	if cause == CauseCacheCorrupt {
		entry.Debug(details)
		return
	}
	entry.Warn(details)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	cacheHit bool,
) {
	entry := r.logger.WithFields(logrus.Fields{
		"url":      fetchUrl,
		"cached":   cacheHit,
		"duration": duration.String(),
	})
	if cacheHit {
		entry.Info("using cache")
		return
	}
	entry.WithField("status", httpStatus).Info("fetching")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	fields := attrFields(attrs)
	fields["kind"] = string(kind)
	fields["path"] = path
	r.logger.WithFields(fields).Debug("artifact stored")
}

func attrFields(attrs []Attribute) logrus.Fields {
	fields := make(logrus.Fields, len(attrs)+3)
	for _, attr := range attrs {
		fields[string(attr.Key)] = attr.Value
	}
	return fields
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		cacheHit bool,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

// NoopSink implements MetadataSink and discards everything.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	cacheHit bool,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
