// Package cache persists fetched responses keyed by request identity.
//
// A Store always exchanges the whole mapping: Load returns every entry and
// Save rewrites every entry. Callers follow a load, modify, save cycle.
package cache

import "github.com/rohmanhakim/nps-scraper/pkg/failure"

// Store defines the port for the response cache.
// Keys are request identities (a URL, or a URL plus parameters built with
// BuildKey); values are raw HTML bodies or JSON-serialized derived data.
type Store interface {
	// Load returns the full mapping. A missing or unreadable backing store
	// yields an empty, non-nil map; it never fails.
	Load() map[string]string

	// Save replaces the full mapping.
	Save(entries map[string]string) failure.ClassifiedError
}
