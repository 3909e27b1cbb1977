package model

import "testing"

// TestIsValidURL tests the http/https URL predicate.
func TestIsValidURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  bool
	}{
		{"https URL", "https://example.com", true},
		{"http URL with short host", "http://a.b", true},
		{"https URL with path and query", "https://example.com/path?q=1#frag", true},
		{"URL with port", "http://localhost:8080", true},
		{"uppercase scheme", "HTTPS://EXAMPLE.COM", true},
		{"surrounding whitespace", "  https://example.com  ", true},
		{"ftp scheme", "ftp://x.com", false},
		{"plain text", "not a url", false},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"missing scheme", "example.com", false},
		{"scheme only", "https://", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"mailto scheme", "mailto:user@example.com", false},
		{"opaque http", "http:example.com", false},
		{"space in host", "https://exa mple.com", false},
		{"port only", "http://:80", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidURL(tc.input); got != tc.want {
				t.Errorf("IsValidURL(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

// TestNewAuditRequest tests that the request URL is trimmed.
func TestNewAuditRequest(t *testing.T) {
	t.Parallel()

	req := NewAuditRequest("  https://example.com\n")
	if req.URL != "https://example.com" {
		t.Errorf("expected trimmed URL, got %q", req.URL)
	}
}
