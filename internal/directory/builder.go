package directory

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/rohmanhakim/nps-scraper/internal/fetcher"
	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
	"github.com/rohmanhakim/nps-scraper/pkg/hashutil"
	"github.com/rohmanhakim/nps-scraper/pkg/urlutil"
	"golang.org/x/net/html"
)

/*
Builder

Responsibilities
- Build the state directory from the site root's navigation dropdown
- Cache the derived directory so later builds skip HTML parsing
- List the park detail URLs of one state

Caching
- The root page HTML is cached by the fetcher under the root URL
- The derived directory is cached as JSON under DerivedKey(root)
- A derived entry that does not decode is rebuilt from the page
- A root entry holding a JSON state map (older cache files) is moved to
  DerivedKey(root)
- A root entry with no dropdown is evicted so the next build refetches
*/

const (
	selectorStateDropdown = "ul.dropdown-menu.SearchBar-keywordSearch"
	parkIndexPage         = "index.htm"
)

type Builder struct {
	fetcher      fetcher.Fetcher
	store        cache.Store
	rootURL      url.URL
	root         string
	userAgent    string
	metadataSink metadata.MetadataSink
}

func NewBuilder(
	siteRoot string,
	f fetcher.Fetcher,
	store cache.Store,
	userAgent string,
	metadataSink metadata.MetadataSink,
) (*Builder, error) {
	root, err := urlutil.NormalizeRoot(siteRoot)
	if err != nil {
		return nil, err
	}
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &Builder{
		fetcher:      f,
		store:        store,
		rootURL:      root,
		root:         root.String(),
		userAgent:    userAgent,
		metadataSink: metadataSink,
	}, nil
}

// Root returns the normalized site root.
func (b *Builder) Root() string {
	return b.root
}

// DerivedKey returns the cache key holding the derived directory of root.
func DerivedKey(root string) string {
	return cache.BuildKey(root, cache.Params{{Key: "derived", Value: "state-directory"}})
}

// Build returns the state directory, from the cache when a derived entry
// exists and otherwise by fetching and parsing the root page.
func (b *Builder) Build(ctx context.Context) (StateDirectory, failure.ClassifiedError) {
	key := DerivedKey(b.root)
	startTime := time.Now()

	if raw, ok := b.store.Load()[key]; ok {
		dir, err := decodeStateDirectory(raw)
		if err == nil {
			b.metadataSink.RecordFetch(key, 0, time.Since(startTime), true)
			return dir, nil
		}
		b.metadataSink.RecordError(
			time.Now(),
			"directory",
			"Builder.Build",
			metadata.CauseCacheCorrupt,
			fmt.Sprintf("decode derived directory: %v", err),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrRequestKey, key),
			},
		)
	}

	result, fetchErr := b.fetcher.Fetch(ctx, fetcher.NewFetchParam(b.root, b.userAgent))
	if fetchErr != nil {
		return StateDirectory{}, fetchErr
	}

	dir, dirErr := b.parseDropdown(result.Body())
	if dirErr != nil {
		if dirErr.Cause == ErrCauseMissingDropdown {
			if legacy, ok := decodeLegacyDirectory(result.Body()); ok {
				b.storeDerived(key, legacy, true)
				return legacy, nil
			}
		}
		b.evictRoot()
		b.recordError("Builder.Build", dirErr)
		return StateDirectory{}, dirErr
	}

	b.storeDerived(key, dir, false)
	return dir, nil
}

// ParkURLs fetches a state listing page and returns the detail page URL of
// every park on it, in document order without duplicates.
func (b *Builder) ParkURLs(ctx context.Context, stateURL string) ([]string, failure.ClassifiedError) {
	result, fetchErr := b.fetcher.Fetch(ctx, fetcher.NewFetchParam(stateURL, b.userAgent))
	if fetchErr != nil {
		return nil, fetchErr
	}

	urls, dirErr := b.parseListing(stateURL, result.Body())
	if dirErr != nil {
		// a broken listing sends the user back to the state prompt
		dirErr.Retryable = true
		b.recordError("Builder.ParkURLs", dirErr)
		return nil, dirErr
	}
	return urls, nil
}

func (b *Builder) parseDropdown(body string) (StateDirectory, *DirectoryError) {
	doc, err := parseDocument(b.root, body)
	if err != nil {
		return StateDirectory{}, err
	}

	dropdown := doc.Find(selectorStateDropdown).First()
	if dropdown.Length() == 0 {
		return StateDirectory{}, &DirectoryError{
			Message:   fmt.Sprintf("state dropdown %q not found", selectorStateDropdown),
			Retryable: false,
			Cause:     ErrCauseMissingDropdown,
			URL:       b.root,
		}
	}

	urls := map[string]string{}
	var hrefErr *DirectoryError
	dropdown.Find("li").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		link := item.Find("a").First()
		href, ok := link.Attr("href")
		if link.Length() == 0 || !ok {
			return true
		}
		stateURL, err := urlutil.Resolve(b.rootURL, href)
		if err != nil {
			hrefErr = &DirectoryError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseInvalidHref,
				URL:       b.root,
			}
			return false
		}
		name := strings.ToLower(strings.TrimSpace(link.Text()))
		if name == "" {
			return true
		}
		urls[name] = stateURL
		return true
	})
	if hrefErr != nil {
		return StateDirectory{}, hrefErr
	}

	return StateDirectory{urls: urls}, nil
}

func (b *Builder) parseListing(stateURL string, body string) ([]string, *DirectoryError) {
	doc, err := parseDocument(stateURL, body)
	if err != nil {
		return nil, err
	}

	var urls []string
	seen := map[string]struct{}{}
	var hrefErr *DirectoryError
	doc.Find("h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if class, ok := heading.Attr("class"); ok && strings.TrimSpace(class) != "" {
			return true
		}
		href, ok := heading.Find("a[href]").First().Attr("href")
		if !ok {
			return true
		}
		parkURL, err := urlutil.Resolve(b.rootURL, href)
		if err != nil {
			hrefErr = &DirectoryError{
				Message:   err.Error(),
				Retryable: false,
				Cause:     ErrCauseInvalidHref,
				URL:       stateURL,
			}
			return false
		}
		parkURL += parkIndexPage
		if _, dup := seen[parkURL]; dup {
			return true
		}
		seen[parkURL] = struct{}{}
		urls = append(urls, parkURL)
		return true
	})
	if hrefErr != nil {
		return nil, hrefErr
	}
	return urls, nil
}

// storeDerived saves dir under key. With evictRoot set, the root URL entry
// is dropped in the same save.
func (b *Builder) storeDerived(key string, dir StateDirectory, evictRoot bool) {
	encoded, err := dir.encode()
	if err != nil {
		return
	}
	entries := b.store.Load()
	entries[key] = encoded
	if evictRoot {
		delete(entries, b.root)
	}
	if saveErr := b.store.Save(entries); saveErr != nil {
		return
	}
	b.metadataSink.RecordArtifact(
		metadata.ArtifactStateDirectory,
		key,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrCount, fmt.Sprintf("%d", dir.Len())),
			metadata.NewAttr(metadata.AttrDigest, hashutil.Digest(encoded)),
		},
	)
}

// evictRoot drops the cached root page so the next build refetches it.
func (b *Builder) evictRoot() {
	entries := b.store.Load()
	if _, ok := entries[b.root]; !ok {
		return
	}
	delete(entries, b.root)
	_ = b.store.Save(entries)
}

func (b *Builder) recordError(action string, err *DirectoryError) {
	b.metadataSink.RecordError(
		time.Now(),
		"directory",
		action,
		mapDirectoryErrorToMetadataCause(err),
		err.Message,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, err.URL),
		},
	)
}

func parseDocument(sourceURL string, body string) (*goquery.Document, *DirectoryError) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, &DirectoryError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
			URL:       sourceURL,
		}
	}
	return goquery.NewDocumentFromNode(root), nil
}
