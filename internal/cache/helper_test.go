package cache_test

import (
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
)

// spySink captures recorded errors and artifacts
type spySink struct {
	metadata.NoopSink
	errors    []metadata.ErrorCause
	artifacts []metadata.ArtifactKind
}

func (s *spySink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.errors = append(s.errors, cause)
}

func (s *spySink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	s.artifacts = append(s.artifacts, kind)
}
