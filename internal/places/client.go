package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/internal/park"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

/*
Client

Responsibilities
- Validate that a park can be searched around (numeric zipcode, API key)
- Issue one live radius search per query
- Map the response to at most MaxResults places with sentinel fields

Queries are never cached. The request identity is recorded with the API
key redacted.
*/

const (
	DefaultEndpoint   = "http://www.mapquestapi.com/search/v2/radius"
	DefaultRadius     = 10
	DefaultUnits      = "m"
	DefaultMaxMatches = 10
	DefaultMaxResults = 10
)

// Settings configure the radius search. Zero values take the defaults.
type Settings struct {
	Endpoint   string
	APIKey     string
	Radius     int
	Units      string
	MaxMatches int
	MaxResults int
}

func (s Settings) withDefaults() Settings {
	if s.Endpoint == "" {
		s.Endpoint = DefaultEndpoint
	}
	if s.Radius <= 0 {
		s.Radius = DefaultRadius
	}
	if s.Units == "" {
		s.Units = DefaultUnits
	}
	if s.MaxMatches <= 0 {
		s.MaxMatches = DefaultMaxMatches
	}
	if s.MaxResults <= 0 {
		s.MaxResults = DefaultMaxResults
	}
	return s
}

type Client struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	settings     Settings
}

func NewClient(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	settings Settings,
) *Client {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		settings:     settings.withDefaults(),
	}
}

// Params returns the request parameters for a search around zipcode, in
// the order they are sent.
func (c *Client) Params(zipcode string) cache.Params {
	return cache.Params{
		{Key: "key", Value: c.settings.APIKey},
		{Key: "origin", Value: zipcode},
		{Key: "radius", Value: strconv.Itoa(c.settings.Radius)},
		{Key: "units", Value: c.settings.Units},
		{Key: "maxMatches", Value: strconv.Itoa(c.settings.MaxMatches)},
		{Key: "ambiguities", Value: "ignore"},
		{Key: "outFormat", Value: "json"},
	}
}

// Query searches for places around the park's zipcode.
func (c *Client) Query(ctx context.Context, record park.Record) ([]Place, failure.ClassifiedError) {
	callerMethod := "Client.Query"

	if !record.HasNumericZipcode() {
		return nil, c.fail(callerMethod, "", &PlacesError{
			Message:   fmt.Sprintf("zipcode %q of %q is not numeric", record.Zipcode, record.Name),
			Retryable: true,
			Cause:     ErrCauseInvalidInput,
		})
	}
	if c.settings.APIKey == "" {
		return nil, c.fail(callerMethod, "", &PlacesError{
			Message:   "no places API key configured",
			Retryable: false,
			Cause:     ErrCauseMissingAPIKey,
		})
	}

	params := c.Params(record.Zipcode)
	requestKey := cache.BuildKey(c.settings.Endpoint, params.Redacted("key"))
	startTime := time.Now()

	places, statusCode, placesErr := c.perform(ctx, params)
	c.metadataSink.RecordFetch(requestKey, statusCode, time.Since(startTime), false)
	if placesErr != nil {
		return nil, c.fail(callerMethod, requestKey, placesErr)
	}
	return places, nil
}

func (c *Client) perform(ctx context.Context, params cache.Params) ([]Place, int, *PlacesError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.settings.Endpoint+"?"+encodeQuery(params), nil)
	if err != nil {
		return nil, 0, &PlacesError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidInput,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &PlacesError{
			Message:   fmt.Sprintf("request failed: %v", redact(err.Error(), c.settings.APIKey)),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &PlacesError{
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Retryable:  true,
			Cause:      ErrCauseBadResponse,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &PlacesError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      ErrCauseNetworkFailure,
			StatusCode: resp.StatusCode,
		}
	}

	var decoded radiusResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, resp.StatusCode, &PlacesError{
			Message:    fmt.Sprintf("failed to decode response: %v", err),
			Retryable:  true,
			Cause:      ErrCauseBadResponse,
			StatusCode: resp.StatusCode,
		}
	}
	// The API reports key and origin problems in the body with a 200.
	if decoded.Info.StatusCode != 0 {
		return nil, resp.StatusCode, &PlacesError{
			Message:    fmt.Sprintf("api status %d: %s", decoded.Info.StatusCode, strings.Join(decoded.Info.Messages, "; ")),
			Retryable:  true,
			Cause:      ErrCauseBadResponse,
			StatusCode: decoded.Info.StatusCode,
		}
	}

	results := decoded.SearchResults
	if len(results) > c.settings.MaxResults {
		results = results[:c.settings.MaxResults]
	}
	places := make([]Place, 0, len(results))
	for _, result := range results {
		places = append(places, result.toPlace())
	}
	return places, resp.StatusCode, nil
}

func (c *Client) fail(action string, requestKey string, placesErr *PlacesError) *PlacesError {
	var attrs []metadata.Attribute
	if requestKey != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrRequestKey, requestKey))
	}
	if placesErr.StatusCode != 0 {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(placesErr.StatusCode)))
	}
	c.metadataSink.RecordError(
		time.Now(),
		"places",
		action,
		mapPlacesErrorToMetadataCause(placesErr),
		placesErr.Message,
		attrs,
	)
	return placesErr
}

// encodeQuery encodes params in their given order; url.Values would sort
// them.
func encodeQuery(params cache.Params) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		parts = append(parts, url.QueryEscape(param.Key)+"="+url.QueryEscape(param.Value))
	}
	return strings.Join(parts, "&")
}

func redact(s string, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, url.QueryEscape(secret), "REDACTED")
}
