package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

  - Transport failures, timeouts, DNS failures, unexpected HTTP status.

# CauseContentInvalid

  - Content was fetched but a required markup marker or JSON shape is missing.

# CauseStorageFailure

  - The cache file could not be written.

# CauseCacheCorrupt

  - The cache file exists but could not be read or decoded.
    Always recovered as an empty store.

# CauseInvalidInput

  - Caller supplied input that cannot be acted on (non-numeric zipcode,
    unknown state, missing API key).
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseCacheCorrupt
	CauseInvalidInput
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseCacheCorrupt:
		return "cache_corrupt"
	case CauseInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactCacheEntry     ArtifactKind = "cache_entry"
	ArtifactStateDirectory ArtifactKind = "state_directory"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrPath       AttributeKey = "path"
	AttrField      AttributeKey = "field"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrDigest     AttributeKey = "digest"
	AttrRequestKey AttributeKey = "request_key"
	AttrCount      AttributeKey = "count"
	AttrSizeBytes  AttributeKey = "size_bytes"
)
