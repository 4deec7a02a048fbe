package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parser implements the Service interface
type Parser struct {
	referenceIDPatterns []*regexp.Regexp
	htmlIDPatterns      []*regexp.Regexp
	facebookLinkRegex   *regexp.Regexp
	websiteRegex        *regexp.Regexp
}

// NewParser creates a new identity/markup parser
func NewParser() Service {
	return newParser()
}

// newParser creates the concrete implementation
func newParser() *Parser {
	return &Parser{
		// URL shapes that embed the numeric page ID directly
		referenceIDPatterns: []*regexp.Regexp{
			regexp.MustCompile(`facebook\.com/pages/[^/]+/(\d+)`),
			regexp.MustCompile(`facebook\.com/profile\.php\?id=(\d+)`),
		},
		// Markers Facebook embeds in served page HTML
		htmlIDPatterns: []*regexp.Regexp{
			regexp.MustCompile(`"page_id":"(\d+)"`),
			regexp.MustCompile(`"pageID":"(\d+)"`),
			regexp.MustCompile(`"entity_id":"(\d+)"`),
			regexp.MustCompile(`data-page-id="(\d+)"`),
			regexp.MustCompile(`pageID=(\d+)`),
			regexp.MustCompile(`fb://page/(\d+)`),
		},
		facebookLinkRegex: regexp.MustCompile(`https?://(?:www\.)?(?:facebook\.com|fb\.com)/[^\s<>"']+`),
		websiteRegex:      regexp.MustCompile(`https?://(?:www\.)?([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
	}
}

// PageIDFromReference extracts a numeric page ID syntactically embedded in
// a page reference
func (p *Parser) PageIDFromReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if digitsOnly.MatchString(ref) {
		return ref
	}

	for _, pattern := range p.referenceIDPatterns {
		if match := pattern.FindStringSubmatch(ref); match != nil {
			return match[1]
		}
	}

	return ""
}

// PageIDFromHTML extracts a page ID from fetched Facebook page HTML
func (p *Parser) PageIDFromHTML(html string) string {
	for _, pattern := range p.htmlIDPatterns {
		if match := pattern.FindStringSubmatch(html); match != nil {
			if id := match[1]; isPlausiblePageID(id) {
				return id
			}
		}
	}
	return ""
}

// FacebookPageFromSiteHTML extracts a canonical Facebook page URL from an
// advertiser's website HTML
func (p *Parser) FacebookPageFromSiteHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		found := ""
		doc.Find(`a[href*="facebook.com"], a[href*="fb.com"], meta[property="og:url"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok {
				href, _ = sel.Attr("content")
			}
			if page := canonicalPageFromLink(href); page != "" {
				found = page
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// Fallback: page plugin markup and raw URLs in scripts or text
	for _, raw := range p.facebookLinkRegex.FindAllString(html, 10) {
		if page := canonicalPageFromLink(raw); page != "" {
			return page
		}
	}

	return ""
}

// WebsiteFromPageHTML extracts the advertiser's own website domain from
// fetched Facebook page HTML
func (p *Parser) WebsiteFromPageHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		found := ""
		doc.Find(`a[href^="http"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			if domain := externalDomainFromLink(href); domain != "" {
				found = domain
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// Fallback: raw URLs anywhere in the markup
	for _, match := range p.websiteRegex.FindAllStringSubmatch(html, 20) {
		if domain := externalDomainFromLink("https://" + match[1]); domain != "" {
			return domain
		}
	}

	return ""
}

// adLibraryActiveMarkers are structural markers present only when the Ad
// Library response actually carries ads.
var adLibraryActiveMarkers = []string{
	`"ad_archive_id"`,
	`"snapshot_url"`,
	`data-ad-id=`,
	`"isactive":true`,
	`"delivery_status":"active"`,
}

// adLibraryEmptyMarkers indicate an explicit "no active ads" answer.
var adLibraryEmptyMarkers = []string{
	`"results":[]`,
	"no ads to show",
	"no results found",
	"no active ads",
}

// AdLibraryVerdict inspects a Meta Ad Library response body. A marker for
// active ads wins over an empty marker, since listing pages render the
// empty-state copy in templates regardless of results.
func (p *Parser) AdLibraryVerdict(body string) (bool, bool) {
	lower := strings.ToLower(body)

	for _, marker := range adLibraryActiveMarkers {
		if strings.Contains(lower, marker) {
			return true, true
		}
	}

	for _, marker := range adLibraryEmptyMarkers {
		if strings.Contains(lower, marker) {
			return false, true
		}
	}

	return false, false
}

// TransparencyVerdict inspects a Google Ads Transparency Center listing
// filtered by advertiser domain
func (p *Parser) TransparencyVerdict(html, domain string) (bool, bool) {
	domain = CleanDomain(domain)
	if domain == "" {
		return false, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false, false
	}

	matched := false
	sawListing := false
	doc.Find(`[data-advertiser-id], .advertiser-card, a[href*="/advertiser/"], .search-result`).Each(func(_ int, sel *goquery.Selection) {
		sawListing = true
		if strings.Contains(strings.ToLower(sel.Text()), domain) {
			matched = true
		}
	})
	if matched {
		return true, true
	}

	lower := strings.ToLower(html)
	if strings.Contains(lower, "no ads") || strings.Contains(lower, "no results") {
		return false, true
	}
	if sawListing {
		// A populated listing with no matching advertiser is a determined no
		return false, true
	}

	return false, false
}

// googleAdSignals maps signal categories to the markers that betray them.
// Conversion markers are the strongest indicator of active campaigns.
var googleAdSignals = map[string][]string{
	"tag_manager": {"googletag.cmd", "gtag(", "gtm.js"},
	"ads_scripts": {"googleadservices.com", "googlesyndication.com"},
	"adsense":     {"google_ad_client", "adsbygoogle", "data-ad-client"},
	"doubleclick": {"doubleclick.net", "googleads.g.doubleclick"},
	"conversion":  {"gtag('config', 'aw-", "google_conversion_id", "google_conversion_label"},
	"remarketing": {"google_remarketing_only"},
	"display":     {"googlesyndication.com/pagead", "partner.googleadservices.com"},
}

// GoogleAdSignals lists the ad-network signal categories present in a
// website's HTML
func (p *Parser) GoogleAdSignals(html string) []string {
	lower := strings.ToLower(html)

	var found []string
	for category, markers := range googleAdSignals {
		for _, marker := range markers {
			if strings.Contains(lower, marker) {
				found = append(found, category)
				break
			}
		}
	}

	return found
}

// canonicalPageFromLink validates and canonicalizes a candidate Facebook
// link, rejecting paths that are not page URLs (share dialogs, plugins,
// login and friends).
func canonicalPageFromLink(link string) string {
	if link == "" {
		return ""
	}

	canonical, err := CanonicalPageURL(link)
	if err != nil {
		return ""
	}

	path := strings.ToLower(strings.TrimPrefix(canonical, "https://facebook.com/"))
	invalidPaths := []string{
		"login", "register", "privacy", "terms", "help", "support",
		"sharer", "dialog", "share", "like", "plugins", "tr", "policies",
	}
	for _, invalid := range invalidPaths {
		if path == invalid || strings.HasPrefix(path, invalid+"/") || strings.HasPrefix(path, invalid+".php") {
			return ""
		}
	}

	return canonical
}

// socialDomains are never an advertiser's own website.
var socialDomains = []string{
	"facebook.com", "instagram.com", "twitter.com", "linkedin.com",
	"youtube.com", "tiktok.com", "snapchat.com", "pinterest.com",
	"whatsapp.com", "telegram.org", "discord.com", "fb.com",
}

// externalDomainFromLink returns the cleaned domain of a link when it
// points outside the social platforms, else "".
func externalDomainFromLink(link string) string {
	domain := CleanDomain(link)
	if domain == "" {
		return ""
	}

	for _, social := range socialDomains {
		if domain == social || strings.HasSuffix(domain, "."+social) {
			return ""
		}
	}

	return domain
}

// isPlausiblePageID filters out short numeric matches that are not real
// Meta page IDs
func isPlausiblePageID(id string) bool {
	return len(id) >= 8 && len(id) <= 20 && digitsOnly.MatchString(id)
}
