package outcomeCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adscheck/internal/cache"
	"adscheck/internal/models"
	"adscheck/internal/parser"
)

// outcomeCache implements Service using a generic cache
type outcomeCache struct {
	cache cache.Service
	ttl   time.Duration
}

// New creates a new check-outcome cache
func New(cache cache.Service, ttl time.Duration) Service {
	return &outcomeCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Key derives the cache key from the normalized input identity. A pure
// function of the request: formatting differences (protocol, "www.",
// trailing slash, casing) in either field produce the same key.
func Key(domain, facebookPage string) string {
	normalizedDomain := parser.CleanDomain(domain)
	normalizedPage := ""
	if facebookPage != "" {
		normalizedPage = parser.PageKey(facebookPage)
	}

	if normalizedDomain == "" {
		normalizedDomain = "none"
	}
	if normalizedPage == "" {
		normalizedPage = "none"
	}

	return fmt.Sprintf("check:%s:%s", normalizedDomain, normalizedPage)
}

// Get retrieves a check outcome from the cache
func (o *outcomeCache) Get(ctx context.Context, key string) (*models.CheckResponse, error) {
	value, err := o.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Handle type conversion
	switch v := value.(type) {
	case *models.CheckResponse:
		// Memory cache returns the stored object itself; hand back a copy
		// so callers cannot mutate the cached entry in place
		copied := *v
		return &copied, nil
	case models.CheckResponse:
		// Handle value type
		return &v, nil
	case string:
		// Redis cache returns JSON string, unmarshal it
		var outcome models.CheckResponse
		if err := json.Unmarshal([]byte(v), &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached outcome: %w", err)
		}
		return &outcome, nil
	default:
		return nil, fmt.Errorf("unexpected type in cache: %T", v)
	}
}

// Set stores a check outcome in the cache
func (o *outcomeCache) Set(ctx context.Context, key string, outcome *models.CheckResponse, ttl time.Duration) error {
	// Use provided TTL or default from outcomeCache
	cacheTTL := ttl
	if cacheTTL == 0 {
		cacheTTL = o.ttl
	}

	return o.cache.Set(ctx, key, outcome, cacheTTL)
}

// Delete removes a check outcome from the cache
func (o *outcomeCache) Delete(ctx context.Context, key string) error {
	return o.cache.Delete(ctx, key)
}
