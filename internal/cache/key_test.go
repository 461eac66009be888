package cache_test

import (
	"testing"

	"github.com/rohmanhakim/nps-scraper/internal/cache"
	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		params   cache.Params
		expected string
	}{
		{
			name:     "no params",
			baseURL:  "https://www.nps.gov",
			params:   nil,
			expected: "https://www.nps.gov?",
		},
		{
			name:    "places request",
			baseURL: "http://www.mapquestapi.com/search/v2/radius",
			params: cache.Params{
				{Key: "origin", Value: "49931"},
				{Key: "radius", Value: "10"},
			},
			expected: "http://www.mapquestapi.com/search/v2/radius?_origin_49931_radius_10",
		},
		{
			name:     "empty values",
			baseURL:  "https://example.com",
			params:   cache.Params{{Key: "a", Value: ""}},
			expected: "https://example.com?_a_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cache.BuildKey(tt.baseURL, tt.params))
		})
	}
}

func TestBuildKey_Deterministic(t *testing.T) {
	params := cache.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}

	assert.Equal(t, cache.BuildKey("https://x", params), cache.BuildKey("https://x", params))
}

// Parameter order is part of the key.
func TestBuildKey_OrderSensitive(t *testing.T) {
	ab := cache.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	ba := cache.Params{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}}

	assert.NotEqual(t, cache.BuildKey("https://x", ab), cache.BuildKey("https://x", ba))
}

func TestBuildKey_DifferentValues(t *testing.T) {
	first := cache.Params{{Key: "origin", Value: "49931"}}
	second := cache.Params{{Key: "origin", Value: "82190"}}

	assert.NotEqual(t, cache.BuildKey("https://x", first), cache.BuildKey("https://x", second))
}

// Values are not escaped, so crafted values can collide.
func TestBuildKey_SeparatorCollision(t *testing.T) {
	joined := cache.Params{{Key: "a", Value: "1_b_2"}}
	split := cache.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}

	assert.Equal(t, cache.BuildKey("https://x", joined), cache.BuildKey("https://x", split))
}

func TestParams_With(t *testing.T) {
	base := cache.Params{{Key: "a", Value: "1"}}

	extended := base.With("b", "2")

	assert.Len(t, base, 1)
	assert.Equal(t, cache.Params{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, extended)
}

func TestParams_Redacted(t *testing.T) {
	params := cache.Params{{Key: "key", Value: "secret"}, {Key: "origin", Value: "49931"}}

	redacted := params.Redacted("key")

	assert.Equal(t, "REDACTED", redacted[0].Value)
	assert.Equal(t, "49931", redacted[1].Value)
	assert.Equal(t, "secret", params[0].Value, "original params are untouched")
}
