package fetcher

import "context"

// Service defines the interface for fetching external web pages
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Fetch performs a GET against the given URL and returns the body.
	Fetch(ctx context.Context, rawURL string) (string, error)

	// FetchSite fetches an advertiser's website by domain, trying https
	// first and falling back to plain http.
	FetchSite(ctx context.Context, domain string) (string, error)
}
