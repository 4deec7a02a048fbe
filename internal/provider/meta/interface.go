package meta

import "context"

// Service defines the interface for the Meta provider: identity lookups
// between domains and Facebook pages, plus ad-activity detection against
// the Meta Ad Library
// External packages should use this interface, not the concrete implementations
type Service interface {
	// ResolvePage discovers the Facebook page associated with a domain.
	// Returns models.ErrPageNotFound when no page is discoverable and
	// models.ErrUndetermined when every strategy failed to look.
	ResolvePage(ctx context.Context, domain string) (string, error)

	// ResolveDomain discovers the website domain behind a Facebook page.
	// Returns models.ErrDomainNotFound / models.ErrUndetermined analogously.
	ResolveDomain(ctx context.Context, pageRef string) (string, error)

	// LookupPageID resolves the numeric Meta page ID for a page reference,
	// syntactically when embedded, otherwise via Graph API or page scrape.
	LookupPageID(ctx context.Context, pageRef string) (string, error)

	// HasActiveAds reports whether the page identity (numeric ID when
	// known, page reference otherwise) currently runs ads on Meta.
	// A nil result with models.ErrUndetermined means no strategy could
	// produce an answer. The returned source names the winning strategy.
	HasActiveAds(ctx context.Context, pageIdentity string) (*bool, string, error)
}
