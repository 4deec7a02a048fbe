package parser

import (
	"net/url"
	"regexp"
	"strings"

	"adscheck/internal/models"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// CleanDomain normalizes a domain: protocol, "www." prefix, path, port and
// casing are stripped so that semantically identical inputs compare equal.
func CleanDomain(raw string) string {
	domain := strings.ToLower(strings.TrimSpace(raw))
	if domain == "" {
		return ""
	}

	if !strings.Contains(domain, "://") {
		domain = "http://" + domain
	}

	parsed, err := url.Parse(domain)
	if err != nil || parsed.Hostname() == "" {
		// Fallback: strip protocol and path by hand
		domain = strings.TrimPrefix(strings.TrimPrefix(domain, "http://"), "https://")
		domain = strings.Split(domain, "/")[0]
		domain = strings.Split(domain, ":")[0]
		return strings.TrimPrefix(domain, "www.")
	}

	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// CanonicalPageURL normalizes a Facebook page reference to the form
// "https://facebook.com/<path>". Accepted inputs: full page URLs (with or
// without scheme and "www."), fb.com short links, bare numeric page IDs
// and profile.php?id= references. Anything else is rejected.
func CanonicalPageURL(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", models.ErrInvalidPageReference
	}

	// A bare numeric ID is a valid page reference on its own
	if digitsOnly.MatchString(ref) {
		return "https://facebook.com/" + ref, nil
	}

	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		ref = "https://" + ref
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", models.ErrInvalidPageReference
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "facebook.com" && host != "fb.com" {
		return "", models.ErrInvalidPageReference
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return "", models.ErrInvalidPageReference
	}

	// profile.php references carry their identity in the query string
	if path == "profile.php" {
		if id := parsed.Query().Get("id"); digitsOnly.MatchString(id) {
			return "https://facebook.com/profile.php?id=" + id, nil
		}
		return "", models.ErrInvalidPageReference
	}

	return "https://facebook.com/" + path, nil
}

// PageKey reduces a page reference to its comparison form
// ("facebook.com/<path>", lowercased). Used for cache keys and for
// cross-validating independently resolved identities.
func PageKey(pageURL string) string {
	canonical, err := CanonicalPageURL(pageURL)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(pageURL))
	}
	return strings.ToLower(strings.TrimPrefix(canonical, "https://"))
}
