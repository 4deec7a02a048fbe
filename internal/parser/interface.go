package parser

// Service defines the interface for extracting identities and ad markers
// from URLs and fetched HTML
// External packages should use this interface, not the concrete implementations
type Service interface {
	// PageIDFromReference extracts a numeric Meta page ID syntactically
	// embedded in a page reference, or "" if none is embedded.
	PageIDFromReference(ref string) string

	// PageIDFromHTML extracts a Meta page ID from a fetched Facebook page.
	PageIDFromHTML(html string) string

	// FacebookPageFromSiteHTML extracts a canonical Facebook page URL from
	// an advertiser's website, or "" if the site links to none.
	FacebookPageFromSiteHTML(html string) string

	// WebsiteFromPageHTML extracts the advertiser's website domain from a
	// fetched Facebook page, or "" if none is linked.
	WebsiteFromPageHTML(html string) string

	// AdLibraryVerdict inspects a Meta Ad Library response body.
	// determined is false when the markup carries no usable marker.
	AdLibraryVerdict(body string) (hasAds, determined bool)

	// TransparencyVerdict inspects a Google Ads Transparency Center page
	// for an advertiser matching the given domain.
	TransparencyVerdict(html, domain string) (hasAds, determined bool)

	// GoogleAdSignals lists the ad-network signal markers present in a
	// website's HTML (script tags, pixel identifiers).
	GoogleAdSignals(html string) []string
}
