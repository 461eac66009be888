package cache

import "strings"

// Param is one request parameter. Params keep their insertion order, which
// BuildKey relies on.
type Param struct {
	Key   string
	Value string
}

type Params []Param

// With returns a copy of p with the parameter appended.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return append(out, Param{Key: key, Value: value})
}

// Redacted returns a copy of p where the value of every parameter named
// key is replaced by "REDACTED".
func (p Params) Redacted(key string) Params {
	out := make(Params, len(p))
	for i, param := range p {
		if param.Key == key {
			param.Value = "REDACTED"
		}
		out[i] = param
	}
	return out
}

// BuildKey returns the cache key for a request to baseURL with params:
// baseURL, then "?", then "_key_value" for every parameter in order.
//
// The key is order-sensitive: the same parameters in a different order give
// a different key. Values are not escaped, so a value that contains the
// "_" separator can collide with another parameter set. Only fixed,
// trusted parameter sets are keyed this way.
func BuildKey(baseURL string, params Params) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?")
	for _, param := range params {
		b.WriteString("_")
		b.WriteString(param.Key)
		b.WriteString("_")
		b.WriteString(param.Value)
	}
	return b.String()
}
