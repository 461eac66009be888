package places

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	NoName     = "no name"
	NoCategory = "no category"
	NoAddress  = "no address"
	NoCity     = "no city"
)

// Place is one point of interest near a park. It is derived from a live
// response and never cached.
type Place struct {
	Name     string
	Category string
	Address  string
	City     string
}

// Info renders the line shown under "Places near ...".
func (p Place) Info() string {
	return fmt.Sprintf("%s (%s): %s, %s", p.Name, p.Category, p.Address, p.City)
}

// radiusResponse is the subset of the radius search response that is read.
type radiusResponse struct {
	Info          responseInfo   `json:"info"`
	SearchResults []searchResult `json:"searchResults"`
}

type responseInfo struct {
	StatusCode int      `json:"statuscode"`
	Messages   []string `json:"messages"`
}

type searchResult struct {
	Name   json.RawMessage            `json:"name"`
	Fields map[string]json.RawMessage `json:"fields"`
}

func (r searchResult) toPlace() Place {
	return Place{
		Name:     stringOr(r.Name, NoName),
		Category: stringOr(r.Fields["group_sic_code_name_ext"], NoCategory),
		Address:  stringOr(r.Fields["address"], NoAddress),
		City:     stringOr(r.Fields["city"], NoCity),
	}
}

// stringOr decodes raw as a JSON string and returns fallback when it is
// absent, not a string, or blank.
func stringOr(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
