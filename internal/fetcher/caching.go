package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"github.com/rohmanhakim/nps-scraper/pkg/hashutil"
)

/*
Responsibilities

- Serve a URL from the cache when present
- Otherwise perform one HTTP GET and store the body under the URL
- Classify transport and status failures

Fetch Semantics

- The cache key is the URL exactly as given
- Only 2xx responses are cached; failed fetches are never stored
- Every miss rewrites the whole cache file once
- A cache write failure is recorded but does not fail the fetch

The fetcher never parses content; it only returns text and metadata.
*/

type CachingFetcher struct {
	metadataSink metadata.MetadataSink
	store        cache.Store
	httpClient   *http.Client
}

func NewCachingFetcher(
	metadataSink metadata.MetadataSink,
	store cache.Store,
	httpClient *http.Client,
) *CachingFetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &CachingFetcher{
		metadataSink: metadataSink,
		store:        store,
		httpClient:   httpClient,
	}
}

func (c *CachingFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "CachingFetcher.Fetch"
	startTime := time.Now()

	entries := c.store.Load()
	if body, ok := entries[fetchParam.fetchUrl]; ok {
		c.metadataSink.RecordFetch(fetchParam.fetchUrl, 0, time.Since(startTime), true)
		return FetchResult{
			url:       fetchParam.fetchUrl,
			body:      body,
			fromCache: true,
			meta: ResponseMeta{
				transferredSizeByte: uint64(len(body)),
			},
		}, nil
	}

	result, fetchErr := c.performFetch(ctx, fetchParam)
	c.metadataSink.RecordFetch(fetchParam.fetchUrl, result.Code(), time.Since(startTime), false)
	if fetchErr != nil {
		c.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchErr),
			fetchErr.Message,
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, fetchParam.fetchUrl),
				metadata.NewAttr(metadata.AttrHTTPStatus, fmt.Sprintf("%d", fetchErr.StatusCode)),
			},
		)
		return FetchResult{}, fetchErr
	}

	// Reload: the store may have been saved during the request.
	entries = c.store.Load()
	entries[fetchParam.fetchUrl] = result.body
	if err := c.store.Save(entries); err == nil {
		c.metadataSink.RecordArtifact(
			metadata.ArtifactCacheEntry,
			result.URL(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, result.URL()),
				metadata.NewAttr(metadata.AttrDigest, hashutil.Digest(result.body)),
				metadata.NewAttr(metadata.AttrSizeBytes, fmt.Sprintf("%d", result.SizeByte())),
			},
		)
	}

	return result, nil
}

func (c *CachingFetcher) performFetch(ctx context.Context, fetchParam FetchParam) (FetchResult, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchParam.fetchUrl, nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: true,
			Cause:     ErrCauseInvalidURL,
		}
	}

	for key, value := range requestHeaders(fetchParam.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return FetchResult{meta: ResponseMeta{statusCode: resp.StatusCode}}, &FetchError{
			Message:    fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Retryable:  true,
			Cause:      ErrCauseUnexpectedStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{meta: ResponseMeta{statusCode: resp.StatusCode}}, &FetchError{
			Message:    fmt.Sprintf("failed to read response body: %v", err),
			Retryable:  true,
			Cause:      ErrCauseReadResponseBodyError,
			StatusCode: resp.StatusCode,
		}
	}

	return FetchResult{
		url:  fetchParam.fetchUrl,
		body: string(body),
		meta: ResponseMeta{
			statusCode:          resp.StatusCode,
			transferredSizeByte: uint64(len(body)),
		},
	}, nil
}

func requestHeaders(userAgent string) map[string]string {
	headers := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}
	return headers
}
