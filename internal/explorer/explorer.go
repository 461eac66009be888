// Package explorer holds the state of one browsing session: the state
// directory, the parks of a state and the places near a park.
package explorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/directory"
	"github.com/rohmanhakim/nps-scraper/internal/fetcher"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/internal/park"
	"github.com/rohmanhakim/nps-scraper/internal/places"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"github.com/sahilm/fuzzy"
)

// DirectorySource builds the state directory and lists a state's parks.
type DirectorySource interface {
	Build(ctx context.Context) (directory.StateDirectory, failure.ClassifiedError)
	ParkURLs(ctx context.Context, stateURL string) ([]string, failure.ClassifiedError)
}

// PlaceFinder searches for places near a park.
type PlaceFinder interface {
	Query(ctx context.Context, record park.Record) ([]places.Place, failure.ClassifiedError)
}

// Explorer is not safe for concurrent use.
type Explorer struct {
	source       DirectorySource
	fetcher      fetcher.Fetcher
	finder       PlaceFinder
	extractor    park.Extractor
	userAgent    string
	metadataSink metadata.MetadataSink

	directory *directory.StateDirectory
}

func New(
	source DirectorySource,
	f fetcher.Fetcher,
	finder PlaceFinder,
	userAgent string,
	metadataSink metadata.MetadataSink,
) *Explorer {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &Explorer{
		source:       source,
		fetcher:      f,
		finder:       finder,
		extractor:    park.NewExtractor(metadataSink),
		userAgent:    userAgent,
		metadataSink: metadataSink,
	}
}

// Directory returns the state directory, building it on first use.
func (e *Explorer) Directory(ctx context.Context) (directory.StateDirectory, failure.ClassifiedError) {
	if e.directory != nil {
		return *e.directory, nil
	}
	dir, err := e.source.Build(ctx)
	if err != nil {
		return directory.StateDirectory{}, err
	}
	e.directory = &dir
	return dir, nil
}

// ParksForState returns the parks listed for a state name, matched
// case-insensitively, in listing order. Any park that fails to fetch or
// extract fails the whole listing.
func (e *Explorer) ParksForState(ctx context.Context, state string) ([]park.Record, failure.ClassifiedError) {
	dir, err := e.Directory(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(state))
	stateURL, ok := dir.Lookup(name)
	if !ok {
		e.metadataSink.RecordError(
			time.Now(),
			"explorer",
			"Explorer.ParksForState",
			metadata.CauseInvalidInput,
			fmt.Sprintf("unknown state %q", state),
			nil,
		)
		return nil, &ExplorerError{
			Message:   fmt.Sprintf("unknown state %q", state),
			Retryable: true,
			Cause:     ErrCauseUnknownState,
			State:     name,
		}
	}

	parkURLs, err := e.source.ParkURLs(ctx, stateURL)
	if err != nil {
		return nil, err
	}

	records := make([]park.Record, 0, len(parkURLs))
	for _, parkURL := range parkURLs {
		result, err := e.fetcher.Fetch(ctx, fetcher.NewFetchParam(parkURL, e.userAgent))
		if err != nil {
			return nil, err
		}
		record, err := e.extractor.Extract(result.URL(), result.Body())
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Nearby returns the places around a park.
func (e *Explorer) Nearby(ctx context.Context, record park.Record) ([]places.Place, failure.ClassifiedError) {
	return e.finder.Query(ctx, record)
}

// SuggestStates returns up to n known state names that fuzzily match input,
// best match first. It is empty until the directory has been built.
func (e *Explorer) SuggestStates(input string, n int) []string {
	if e.directory == nil || n <= 0 {
		return nil
	}
	pattern := strings.ToLower(strings.TrimSpace(input))
	if pattern == "" {
		return nil
	}

	matches := fuzzy.Find(pattern, e.directory.States())
	suggestions := make([]string, 0, n)
	for _, match := range matches {
		if len(suggestions) == n {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
