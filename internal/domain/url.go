package domain

import (
	"net/url"
	"strings"
)

// internalSchemes are browser-internal pages that can never be saved.
var internalSchemes = []string{
	"chrome://",
	"chrome-extension://",
	"edge://",
	"about:",
}

// NormalizeURL produces the canonical dedup form of a URL: the fragment
// is cleared and explicit default ports (80 for http, 443 for https) are
// stripped. Two URLs differing only in fragment or default port collapse
// to the same record. Unparseable input is returned unchanged so a save
// can still proceed on keyword/regex signals alone.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}

	u.Fragment = ""
	u.RawFragment = ""

	switch u.Scheme {
	case "http":
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case "https":
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	// Browsers serialize an absolute URL with at least a root path.
	if u.Path == "" && u.Host != "" {
		u.Path = "/"
	}

	return u.String()
}

// HostOf extracts a display-friendly hostname: lowercased, leading
// "www." removed. Malformed URLs degrade to "".
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// PathOf extracts the URL path. Malformed URLs degrade to "".
func PathOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}

// IsInternalURL reports whether the URL points at a browser-internal
// page. Saves of internal pages are rejected outright.
func IsInternalURL(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range internalSchemes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
