package domain

import "strings"

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// CandidateURLs returns the URLs probed for a domain, in probe order.
func CandidateURLs(domain string) []string {
	return []string{
		SchemeHTTP + "://" + domain,
		SchemeHTTPS + "://" + domain,
	}
}

// Scheme reports the scheme part of a candidate URL, or "" if it has none.
func Scheme(rawURL string) string {
	if i := strings.Index(rawURL, "://"); i > 0 {
		return rawURL[:i]
	}
	return ""
}

// ExtractHost strips a leading http:// or https:// and anything from the
// first path, query or fragment separator on. Input without one of those
// prefixes is returned unchanged.
func ExtractHost(rawURL string) string {
	rest, ok := strings.CutPrefix(rawURL, SchemeHTTP+"://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, SchemeHTTPS+"://")
	}
	if !ok {
		return rawURL
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
