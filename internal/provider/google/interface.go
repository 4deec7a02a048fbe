package google

import "context"

// Service defines the interface for the Google provider: ad-activity
// detection for a domain via the Ads Transparency Center with a
// website-signal heuristic fallback
// External packages should use this interface, not the concrete implementations
type Service interface {
	// HasActiveAds reports whether the domain currently runs Google ads.
	// A nil result with models.ErrUndetermined means no strategy could
	// produce an answer. The returned source names the winning strategy;
	// the heuristic source marks a lower-confidence answer.
	HasActiveAds(ctx context.Context, domain string) (*bool, string, error)
}

// SourceWebsiteSignals is the source tag of the heuristic fallback. Its
// boolean carries strictly lower confidence than a transparency-center
// answer; callers can only tell the tiers apart through this tag.
const SourceWebsiteSignals = "website_signals"
