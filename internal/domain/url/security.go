package url

import "net/url"

// Security classifies a URL for the security indicator in the navigation bar.
type Security int

const (
	// SecurityLocal marks file://, about: and unparseable URLs.
	SecurityLocal Security = iota
	// SecuritySecure marks https:// pages.
	SecuritySecure
	// SecurityInsecure marks plain http:// pages.
	SecurityInsecure
)

// String returns a human-readable representation of the security state.
func (s Security) String() string {
	switch s {
	case SecuritySecure:
		return "secure"
	case SecurityInsecure:
		return "insecure"
	default:
		return "local"
	}
}

// SecurityState classifies rawURL for the indicator. Malformed input never
// errors; it falls back to the neutral local state.
func SecurityState(rawURL string) Security {
	if rawURL == "" {
		return SecurityLocal
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return SecurityLocal
	}
	switch parsed.Scheme {
	case "https":
		return SecuritySecure
	case "http":
		return SecurityInsecure
	default:
		return SecurityLocal
	}
}
