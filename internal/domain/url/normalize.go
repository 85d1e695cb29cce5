// Package url provides URL classification and manipulation for the shell.
package url

import (
	"net/url"
	"strings"
)

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	// Already has scheme
	switch {
	case strings.HasPrefix(input, "http://"):
		return input
	case strings.HasPrefix(input, "https://"):
		return input
	case strings.HasPrefix(input, "file://"):
		return input
	case strings.HasPrefix(input, "about:"):
		return input
	}

	// Looks like a URL (contains . and no spaces)
	if strings.Contains(input, ".") && !strings.Contains(input, " ") {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "github.com", "google.com/search", etc.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}

	// Explicit schemes should always be treated as URLs.
	switch {
	case strings.HasPrefix(input, "http://"):
		return true
	case strings.HasPrefix(input, "https://"):
		return true
	case strings.HasPrefix(input, "file://"):
		return true
	case strings.HasPrefix(input, "about:"):
		return true
	}

	// Contains a dot and no spaces = likely a URL
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// BuildSearchURL resolves free-form omnibox input to a navigable URL.
// URL-like input is normalized; everything else is URL-encoded into the
// search engine template ("%s" placeholder).
func BuildSearchURL(input, searchTemplate string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if LooksLikeURL(input) {
		return Normalize(input)
	}

	if searchTemplate != "" {
		return strings.Replace(searchTemplate, "%s", escapeQuery(input), 1)
	}

	return input
}

// escapeQuery percent-encodes a search query. Spaces become %20 rather than
// "+" so the result is valid in any part of the template.
func escapeQuery(query string) string {
	return strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Strips the "www." prefix so youtube.com and www.youtube.com resolve to the
// same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
