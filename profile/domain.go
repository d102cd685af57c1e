package profile

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Domain derives the profile key for a page URL: the registrable domain
// (eTLD+1) of the URL's host, so one learned mapping covers www. and bare
// variants of the same site. Falls back to the raw host when the public
// suffix list cannot place it (IPs, localhost, intranet names).
func Domain(rawURL string) string {
	host := hostOf(rawURL)
	if host == "" {
		return rawURL
	}
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	// Bare host or host/path without a scheme.
	host := rawURL
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host
}
