package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"adscheck/internal/models"
	"adscheck/internal/parser"
)

// browserUserAgent is sent on every fetch; the ad-library and transparency
// pages serve stripped-down markup to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodySize bounds how much of a fetched page is read (2MB)
const maxBodySize = 2 * 1024 * 1024

// HTTPFetcher implements Service using HTTP requests
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a new HTTP page fetcher with the given per-call timeout
func NewHTTPFetcher(timeout time.Duration) Service {
	return newHTTPFetcher(timeout)
}

// newHTTPFetcher creates the concrete implementation
func newHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Allow up to 5 redirects
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		timeout: timeout,
	}
}

// Fetch performs a GET against the given URL and returns the body
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("empty URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		// Check for timeout
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", models.ErrFetchTimeout, err)
		}
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: HTTP %d", models.ErrNotFound, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := f.readBodyWithLimit(resp.Body, maxBodySize)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// FetchSite fetches an advertiser's website by domain, https first with a
// plain-http fallback for sites without TLS
func (f *HTTPFetcher) FetchSite(ctx context.Context, domain string) (string, error) {
	cleaned := parser.CleanDomain(domain)
	if cleaned == "" {
		return "", fmt.Errorf("empty domain")
	}

	var lastErr error
	for _, scheme := range []string{"https", "http"} {
		body, err := f.Fetch(ctx, fmt.Sprintf("%s://%s", scheme, cleaned))
		if err == nil {
			return body, nil
		}
		lastErr = err

		// A timeout will not resolve itself on the other scheme
		if ctx.Err() != nil {
			break
		}
	}

	return "", lastErr
}

// readBodyWithLimit reads the response body with a size limit
func (f *HTTPFetcher) readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	limitedReader := io.LimitReader(body, maxSize)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	// Check if we hit the limit
	if int64(len(data)) >= maxSize {
		return nil, fmt.Errorf("page too large (exceeds %d bytes)", maxSize)
	}

	return data, nil
}
