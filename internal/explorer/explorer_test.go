package explorer_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rohmanhakim/nps-scraper/internal/directory"
	"github.com/rohmanhakim/nps-scraper/internal/explorer"
	"github.com/rohmanhakim/nps-scraper/internal/fetcher"
	"github.com/rohmanhakim/nps-scraper/internal/park"
	"github.com/rohmanhakim/nps-scraper/internal/places"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	michiganURL = "https://www.nps.gov/state/mi/index.htm"
	isroURL     = "https://www.nps.gov/isro/index.htm"
	keweURL     = "https://www.nps.gov/kewe/index.htm"
)

func detailPage(name, designation, city, zipcode string) string {
	return `<html><body>
		<a class="Hero-title">` + name + `</a>
		<span class="Hero-designation">` + designation + `</span>
		<span itemprop="addressLocality">` + city + `</span>
		<span itemprop="addressRegion">MI</span>
		<span class="postal-code">` + zipcode + `</span>
	</body></html>`
}

type fakeSource struct {
	builds   int
	parkURLs map[string][]string
}

func (f *fakeSource) Build(ctx context.Context) (directory.StateDirectory, failure.ClassifiedError) {
	f.builds++
	return directory.NewStateDirectory(map[string]string{
		"michigan":     michiganURL,
		"minnesota":    "https://www.nps.gov/state/mn/index.htm",
		"mississippi":  "https://www.nps.gov/state/ms/index.htm",
		"wyoming":      "https://www.nps.gov/state/wy/index.htm",
		"rhode island": "https://www.nps.gov/state/ri/index.htm",
	}), nil
}

func (f *fakeSource) ParkURLs(ctx context.Context, stateURL string) ([]string, failure.ClassifiedError) {
	return f.parkURLs[stateURL], nil
}

type fakeFetcher struct {
	bodies map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, param fetcher.FetchParam) (fetcher.FetchResult, failure.ClassifiedError) {
	body, ok := f.bodies[param.URL()]
	if !ok {
		return fetcher.FetchResult{}, &fetcher.FetchError{
			Retryable:  true,
			Cause:      fetcher.ErrCauseUnexpectedStatus,
			StatusCode: http.StatusNotFound,
		}
	}
	return fetcher.NewFetchResultForTest(param.URL(), body, true, 0), nil
}

type fakeFinder struct {
	queried []park.Record
}

func (f *fakeFinder) Query(ctx context.Context, record park.Record) ([]places.Place, failure.ClassifiedError) {
	f.queried = append(f.queried, record)
	return []places.Place{{Name: "Houghton County Airport", Category: "Airports", Address: "23810 Airpark Blvd", City: "Calumet"}}, nil
}

func newExplorer() (*explorer.Explorer, *fakeSource, *fakeFinder) {
	source := &fakeSource{parkURLs: map[string][]string{michiganURL: {isroURL, keweURL}}}
	f := &fakeFetcher{bodies: map[string]string{
		isroURL: detailPage("Isle Royale", "National Park", "Houghton", "49931"),
		keweURL: detailPage("Keweenaw", "National Historical Park", "Calumet", "49913"),
	}}
	finder := &fakeFinder{}
	return explorer.New(source, f, finder, "nps-scraper-test/1.0", nil), source, finder
}

func TestDirectory_IsMemoized(t *testing.T) {
	e, source, _ := newExplorer()

	_, err := e.Directory(context.Background())
	require.Nil(t, err)
	_, err = e.Directory(context.Background())
	require.Nil(t, err)

	assert.Equal(t, 1, source.builds)
}

func TestParksForState(t *testing.T) {
	e, _, _ := newExplorer()

	for _, input := range []string{"Michigan", "michigan", "  MICHIGAN "} {
		t.Run(input, func(t *testing.T) {
			records, err := e.ParksForState(context.Background(), input)

			require.Nil(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "Isle Royale (National Park): Houghton, MI 49931", records[0].Info())
			assert.Equal(t, "Keweenaw (National Historical Park): Calumet, MI 49913", records[1].Info())
		})
	}
}

func TestParksForState_UnknownState(t *testing.T) {
	e, _, _ := newExplorer()

	_, err := e.ParksForState(context.Background(), "Atlantis")

	require.NotNil(t, err)
	var explorerErr *explorer.ExplorerError
	require.ErrorAs(t, err, &explorerErr)
	assert.Equal(t, explorer.ErrCauseUnknownState, explorerErr.Cause)
	assert.Equal(t, "atlantis", explorerErr.State)
	assert.True(t, failure.IsRecoverable(err))
}

func TestParksForState_EmptyListing(t *testing.T) {
	e, _, _ := newExplorer()

	records, err := e.ParksForState(context.Background(), "wyoming")

	require.Nil(t, err)
	assert.Empty(t, records)
}

func TestParksForState_ExtractionFailurePropagates(t *testing.T) {
	source := &fakeSource{parkURLs: map[string][]string{michiganURL: {isroURL}}}
	f := &fakeFetcher{bodies: map[string]string{isroURL: `<html><body><a class="Hero-title">Isle Royale</a></body></html>`}}
	e := explorer.New(source, f, &fakeFinder{}, "", nil)

	_, err := e.ParksForState(context.Background(), "michigan")

	require.NotNil(t, err)
	var extractionErr *park.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, park.ErrCauseMissingMarker, extractionErr.Cause)
	assert.True(t, failure.IsRecoverable(err))
}

func TestParksForState_FetchFailurePropagates(t *testing.T) {
	source := &fakeSource{parkURLs: map[string][]string{michiganURL: {"https://www.nps.gov/gone/index.htm"}}}
	e := explorer.New(source, &fakeFetcher{}, &fakeFinder{}, "", nil)

	_, err := e.ParksForState(context.Background(), "michigan")

	require.NotNil(t, err)
	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestNearby_Delegates(t *testing.T) {
	e, _, finder := newExplorer()
	record := park.Record{Name: "Isle Royale", Zipcode: "49931"}

	got, err := e.Nearby(context.Background(), record)

	require.Nil(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Houghton County Airport (Airports): 23810 Airpark Blvd, Calumet", got[0].Info())
	assert.Equal(t, []park.Record{record}, finder.queried)
}

func TestSuggestStates(t *testing.T) {
	e, _, _ := newExplorer()

	assert.Nil(t, e.SuggestStates("michgan", 3), "no suggestions before the directory is built")

	_, err := e.Directory(context.Background())
	require.Nil(t, err)

	suggestions := e.SuggestStates("michgan", 3)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "michigan", suggestions[0])

	assert.Equal(t, []string{"rhode island"}, e.SuggestStates("Rhode Isl", 3))
	assert.Empty(t, e.SuggestStates("zzz", 3))
	assert.Nil(t, e.SuggestStates("", 3))
	assert.Len(t, e.SuggestStates("m", 2), 2)
}
