package check

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"adscheck/internal/cache/outcomeCache"
	"adscheck/internal/logger"
	"adscheck/internal/models"
	"adscheck/internal/provider/google"
	"adscheck/internal/provider/meta"
	"adscheck/internal/resolver"
)

// Service implements the CheckService interface
type Service struct {
	resolver       resolver.Service
	metaProvider   meta.Service
	googleProvider google.Service
	outcomeCache   outcomeCache.Service
	logger         logger.Service
	// detectTimeout bounds each platform's detection independently, so
	// one slow provider cannot starve the other path's budget.
	detectTimeout time.Duration
}

// NewService creates a new check pipeline service
func NewService(
	identityResolver resolver.Service,
	metaProvider meta.Service,
	googleProvider google.Service,
	outcomes outcomeCache.Service,
	log logger.Service,
	detectTimeout time.Duration,
) CheckService {
	return &Service{
		resolver:       identityResolver,
		metaProvider:   metaProvider,
		googleProvider: googleProvider,
		outcomeCache:   outcomes,
		logger:         log,
		detectTimeout:  detectTimeout,
	}
}

// Check resolves the request's identity and detects ad activity on both
// platforms
func (s *Service) Check(ctx context.Context, request models.CheckRequest) (*models.CheckResponse, error) {
	start := time.Now()

	domain := strings.TrimSpace(request.Domain)
	facebookPage := strings.TrimSpace(request.FacebookPage)
	if domain == "" && facebookPage == "" {
		return nil, models.ErrMissingIdentity
	}

	key := outcomeCache.Key(domain, facebookPage)
	if cached, err := s.outcomeCache.Get(ctx, key); err == nil {
		s.logger.LogSuccess(ctx, logger.OpCacheHit, key, "Returning cached check outcome", map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})

		cached.Cached = true
		return cached, nil
	}

	s.logger.LogInfo(ctx, logger.OpCacheMiss, fmt.Sprintf("Cache miss for key: %s", key), map[string]interface{}{
		"domain":        domain,
		"facebook_page": facebookPage,
	})

	resolution, err := s.resolver.Resolve(ctx, domain, facebookPage)
	if err != nil {
		// A failed resolution is still a cacheable outcome: re-running the
		// same lookups before the TTL expires would only hammer providers
		// on a known-bad identity.
		outcome := &models.CheckResponse{
			Domain:       domain,
			FacebookPage: facebookPage,
			Success:      false,
			Message:      fmt.Sprintf("Identity resolution failed: %s", models.FailureReason(err)),
			Timestamp:    time.Now().UTC(),
		}
		s.storeOutcome(ctx, key, outcome)

		s.logger.LogInfo(ctx, logger.OpCheck, "Check completed without a resolved identity", map[string]interface{}{
			"reason":      models.FailureReason(err),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return outcome, nil
	}

	detection, googleSource := s.detectAds(ctx, resolution.Identity)

	outcome := &models.CheckResponse{
		Domain:       resolution.Identity.Domain,
		FacebookPage: resolution.Identity.FacebookPage,
		MetaPageID:   resolution.Identity.MetaPageID,
		HasMetaAds:   detection.HasMetaAds,
		HasGoogleAds: detection.HasGoogleAds,
		Success:      true,
		Message:      composeMessage(resolution, detection, googleSource),
		Timestamp:    time.Now().UTC(),
	}
	s.storeOutcome(ctx, key, outcome)

	s.logger.LogSuccess(ctx, logger.OpCheck, resolution.Identity.Domain, "Successfully completed ads check", map[string]interface{}{
		"has_meta_ads":   describeSignal(detection.HasMetaAds),
		"has_google_ads": describeSignal(detection.HasGoogleAds),
		"duration_ms":    time.Since(start).Milliseconds(),
		"cached":         false,
	})

	return outcome, nil
}

// detectAds runs the Meta and Google checks concurrently and
// independently: both are fired, both are awaited, and neither side's
// failure cancels the other. Completion order does not affect the result.
func (s *Service) detectAds(ctx context.Context, identity models.ResolvedIdentity) (models.DetectionResult, string) {
	var (
		wg           sync.WaitGroup
		metaSignal   *bool
		googleSignal *bool
		googleSource string
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		pageIdentity := identity.MetaPageID
		if pageIdentity == "" {
			pageIdentity = identity.FacebookPage
		}
		if pageIdentity == "" {
			return
		}

		callCtx, cancel := context.WithTimeout(ctx, s.detectTimeout)
		defer cancel()

		// Undetermined stays nil; it is never coerced to false
		metaSignal, _, _ = s.metaProvider.HasActiveAds(callCtx, pageIdentity)
	}()

	go func() {
		defer wg.Done()

		if identity.Domain == "" {
			return
		}

		callCtx, cancel := context.WithTimeout(ctx, s.detectTimeout)
		defer cancel()

		googleSignal, googleSource, _ = s.googleProvider.HasActiveAds(callCtx, identity.Domain)
	}()

	wg.Wait()

	return models.DetectionResult{
		HasMetaAds:   metaSignal,
		HasGoogleAds: googleSignal,
	}, googleSource
}

// storeOutcome caches a fully assembled outcome. Nothing is written for a
// cancelled request, and a cache failure never fails the check.
func (s *Service) storeOutcome(ctx context.Context, key string, outcome *models.CheckResponse) {
	if ctx.Err() != nil {
		return
	}

	if err := s.outcomeCache.Set(ctx, key, outcome, 0); err != nil {
		s.logger.LogError(ctx, "cache_set", key, "Failed to cache check outcome", err, models.LogSeverityLow, nil)
	}
}

// composeMessage builds the human-readable diagnostic for a successful
// resolution
func composeMessage(resolution *resolver.Resolution, detection models.DetectionResult, googleSource string) string {
	var parts []string

	if resolution.Validated {
		parts = append(parts, "Resolved domain and Facebook page")
	} else {
		parts = append(parts, "Using supplied domain and Facebook page")
	}
	if resolution.Note != "" {
		parts = append(parts, resolution.Note)
	}

	metaPart := "Meta ads: " + describeSignal(detection.HasMetaAds)
	googlePart := "Google ads: " + describeSignal(detection.HasGoogleAds)
	if detection.HasGoogleAds != nil && googleSource == google.SourceWebsiteSignals {
		googlePart += " (low confidence, inferred from website ad signals)"
	}
	parts = append(parts, metaPart, googlePart)

	return strings.Join(parts, ". ")
}

// describeSignal renders a tri-state detection signal for messages and logs
func describeSignal(signal *bool) string {
	switch {
	case signal == nil:
		return "undetermined"
	case *signal:
		return "active ads detected"
	default:
		return "no active ads found"
	}
}
