package model

import (
	"net/url"
	"strings"
)

// Accepted URL schemes for an audit target.
const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
)

// IsValidURL reports whether s is an absolute URL with an http or https
// scheme and a non-empty host. It never panics; any parse failure is
// reported as false.
//
// Leading and trailing whitespace is ignored, matching how browsers
// parse URLs typed into an input field.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	// url.Parse lowercases the scheme, so "HTTPS://" is accepted too.
	if u.Scheme != schemeHTTP && u.Scheme != schemeHTTPS {
		return false
	}

	// Opaque forms such as "http:example.com" have no host.
	return u.Hostname() != ""
}

// AuditRequest is the body of a single analysis call.
// It lives only for the duration of one in-flight request.
type AuditRequest struct {
	// URL is the website to analyze. It must satisfy IsValidURL.
	URL string `json:"url"`
}

// NewAuditRequest creates an AuditRequest for the given URL,
// trimming surrounding whitespace.
func NewAuditRequest(rawURL string) AuditRequest {
	return AuditRequest{URL: strings.TrimSpace(rawURL)}
}
