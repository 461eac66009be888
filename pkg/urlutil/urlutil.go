package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeRoot parses a site root and returns it in a stable form:
//   - Scheme and host are lowercased
//   - Default ports are omitted
//   - Trailing slashes, query and fragment are removed
//
// Only absolute http(s) URLs are accepted.
func NormalizeRoot(raw string) (url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return url.URL{}, fmt.Errorf("parse site root %q: %w", raw, err)
	}
	if !IsHTTP(*parsed) {
		return url.URL{}, fmt.Errorf("site root %q is not an absolute http(s) URL", raw)
	}

	root := *parsed
	root.Scheme = strings.ToLower(root.Scheme)
	root.Host = strings.ToLower(root.Host)
	if host, port := root.Hostname(), root.Port(); port != "" {
		if (root.Scheme == "http" && port == "80") ||
			(root.Scheme == "https" && port == "443") {
			root.Host = host
		}
	}
	root.Path = strings.TrimRight(root.Path, "/")
	root.RawPath = ""
	root.RawQuery = ""
	root.ForceQuery = false
	root.Fragment = ""
	root.RawFragment = ""
	return root, nil
}

// IsHTTP reports whether u is an absolute http or https URL with a host.
func IsHTTP(u url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// Resolve resolves href against base. Absolute hrefs are returned as-is,
// relative ones follow RFC 3986 reference resolution.
func Resolve(base url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parse href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
