package directory

import (
	"encoding/json"
	"sort"
	"strings"
)

// StateDirectory maps lowercased state names to absolute state-listing URLs.
// It is immutable once built.
type StateDirectory struct {
	urls map[string]string
}

func NewStateDirectory(urls map[string]string) StateDirectory {
	copied := make(map[string]string, len(urls))
	for name, u := range urls {
		copied[name] = u
	}
	return StateDirectory{urls: copied}
}

// Lookup returns the listing URL for an already lowercased state name.
func (d StateDirectory) Lookup(state string) (string, bool) {
	u, ok := d.urls[state]
	return u, ok
}

// States returns the state names in alphabetical order.
func (d StateDirectory) States() []string {
	names := make([]string, 0, len(d.urls))
	for name := range d.urls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d StateDirectory) Len() int {
	return len(d.urls)
}

// Map returns a copy of the underlying mapping.
func (d StateDirectory) Map() map[string]string {
	copied := make(map[string]string, len(d.urls))
	for name, u := range d.urls {
		copied[name] = u
	}
	return copied
}

func (d StateDirectory) encode() (string, error) {
	data, err := json.Marshal(d.urls)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStateDirectory(raw string) (StateDirectory, error) {
	urls := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return StateDirectory{}, err
	}
	return StateDirectory{urls: urls}, nil
}

// decodeLegacyDirectory reads a state map stored directly under the root URL.
// It reports false unless raw is a non-empty JSON object of names to URLs.
func decodeLegacyDirectory(raw string) (StateDirectory, bool) {
	decoded, err := decodeStateDirectory(raw)
	if err != nil || decoded.Len() == 0 {
		return StateDirectory{}, false
	}
	urls := make(map[string]string, decoded.Len())
	for name, u := range decoded.urls {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || u == "" {
			continue
		}
		urls[name] = u
	}
	if len(urls) == 0 {
		return StateDirectory{}, false
	}
	return StateDirectory{urls: urls}, true
}
