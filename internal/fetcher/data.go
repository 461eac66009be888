package fetcher

// HTTP boundary

type FetchParam struct {
	fetchUrl  string
	userAgent string
}

func NewFetchParam(fetchUrl string, userAgent string) FetchParam {
	return FetchParam{
		fetchUrl:  fetchUrl,
		userAgent: userAgent,
	}
}

func (p FetchParam) URL() string {
	return p.fetchUrl
}

type FetchResult struct {
	url       string
	body      string
	fromCache bool
	meta      ResponseMeta
}

func (f *FetchResult) URL() string {
	return f.url
}

// Body returns the response text, from the network or the cache.
func (f *FetchResult) Body() string {
	return f.body
}

func (f *FetchResult) FromCache() bool {
	return f.fromCache
}

// Code is zero for cache hits.
func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() uint64 {
	return f.meta.transferredSizeByte
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte uint64
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(
	url string,
	body string,
	fromCache bool,
	statusCode int,
) FetchResult {
	return FetchResult{
		url:       url,
		body:      body,
		fromCache: fromCache,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: uint64(len(body)),
		},
	}
}
