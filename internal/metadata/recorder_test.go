package metadata_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rohmanhakim/nps-scraper/internal/metadata"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(level logrus.Level) (*metadata.Recorder, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(level)
	return metadata.NewRecorder(logger), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestRecorder_RecordFetch(t *testing.T) {
	rec, buf := newTestRecorder(logrus.InfoLevel)

	rec.RecordFetch("https://www.nps.gov", 0, time.Millisecond, true)
	rec.RecordFetch("https://www.nps.gov/isro/index.htm", 200, time.Second, false)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "using cache", entries[0]["msg"])
	assert.Equal(t, true, entries[0]["cached"])
	assert.Equal(t, "https://www.nps.gov", entries[0]["url"])

	assert.Equal(t, "fetching", entries[1]["msg"])
	assert.Equal(t, float64(200), entries[1]["status"])
}

func TestRecorder_RecordError(t *testing.T) {
	rec, buf := newTestRecorder(logrus.InfoLevel)

	rec.RecordError(
		time.Now(),
		"fetcher",
		"CachingFetcher.Fetch",
		metadata.CauseNetworkFailure,
		"fetcher error: network failure",
		[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, "https://www.nps.gov")},
	)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warning", entries[0]["level"])
	assert.Equal(t, "fetcher", entries[0]["package"])
	assert.Equal(t, "network_failure", entries[0]["cause"])
	assert.Equal(t, "https://www.nps.gov", entries[0]["url"])
}

func TestRecorder_CacheCorruptIsDebugOnly(t *testing.T) {
	rec, buf := newTestRecorder(logrus.InfoLevel)

	rec.RecordError(time.Now(), "cache", "FileStore.Load", metadata.CauseCacheCorrupt, "bad json", nil)
	assert.Empty(t, buf.String())

	debugRec, debugBuf := newTestRecorder(logrus.DebugLevel)
	debugRec.RecordError(time.Now(), "cache", "FileStore.Load", metadata.CauseCacheCorrupt, "bad json", nil)
	entries := decodeLines(t, debugBuf)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache_corrupt", entries[0]["cause"])
}

func TestRecorder_RecordArtifact(t *testing.T) {
	rec, buf := newTestRecorder(logrus.DebugLevel)

	rec.RecordArtifact(metadata.ArtifactCacheEntry, "/tmp/cache.json", []metadata.Attribute{
		metadata.NewAttr(metadata.AttrDigest, "abc123"),
	})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "cache_entry", entries[0]["kind"])
	assert.Equal(t, "abc123", entries[0]["digest"])
}

func TestErrorCause_String(t *testing.T) {
	assert.Equal(t, "unknown", metadata.CauseUnknown.String())
	assert.Equal(t, "invalid_input", metadata.CauseInvalidInput.String())
	assert.Equal(t, "unknown", metadata.ErrorCause(99).String())
}
