package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"adscheck/internal/fetcher"
	"adscheck/internal/logger"
	"adscheck/internal/models"
	"adscheck/internal/parser"
	"adscheck/internal/provider/chain"
)

const (
	graphAPIBaseURL = "https://graph.facebook.com/v18.0"
	adLibraryURL    = "https://www.facebook.com/ads/library"
	// Ad Library search backend; returns JSON instead of the full page
	adLibraryAsyncURL = "https://www.facebook.com/ads/library/async/search_ads/"
)

// Provider implements the Service interface
type Provider struct {
	fetcher fetcher.Service
	parser  parser.Service
	logger  logger.Service
	// accessToken is the optional Graph API credential. When empty, every
	// API strategy skips and the scraping fallbacks carry the chain.
	accessToken string
}

// NewProvider creates a new Meta provider
func NewProvider(fetch fetcher.Service, parse parser.Service, log logger.Service, accessToken string) Service {
	return &Provider{
		fetcher:     fetch,
		parser:      parse,
		logger:      log,
		accessToken: accessToken,
	}
}

// graphObject is the subset of a Graph API node response we care about
type graphObject struct {
	ID      string `json:"id"`
	Link    string `json:"link"`
	Website string `json:"website"`
}

// graphList is a Graph API collection response
type graphList struct {
	Data []graphObject `json:"data"`
}

// ResolvePage discovers the Facebook page associated with a domain
func (p *Provider) ResolvePage(ctx context.Context, domain string) (string, error) {
	domain = parser.CleanDomain(domain)
	if domain == "" {
		return "", models.ErrPageNotFound
	}

	outcome, err := chain.Run(ctx, []chain.Strategy[string]{
		{Name: "graph_api_page_search", Run: func(ctx context.Context) chain.Result[string] {
			return p.searchPageByDomain(ctx, domain)
		}},
		{Name: "site_scrape", Run: func(ctx context.Context) chain.Result[string] {
			return p.scrapeSiteForPage(ctx, domain)
		}},
	})
	if err != nil {
		p.logger.LogInfo(ctx, logger.OpResolveIdentity, "No facebook page resolved for domain", map[string]interface{}{
			"domain": domain,
			"detail": err.Error(),
		})
		return "", classifyExhaustion(err, models.ErrPageNotFound)
	}

	p.logger.LogSuccess(ctx, logger.OpResolveIdentity, domain, "Resolved facebook page for domain", map[string]interface{}{
		"facebook_page": outcome.Value,
		"source":        outcome.Source,
	})
	return outcome.Value, nil
}

// ResolveDomain discovers the website domain behind a Facebook page
func (p *Provider) ResolveDomain(ctx context.Context, pageRef string) (string, error) {
	canonical, err := parser.CanonicalPageURL(pageRef)
	if err != nil {
		return "", err
	}

	outcome, err := chain.Run(ctx, []chain.Strategy[string]{
		{Name: "graph_api_page_fields", Run: func(ctx context.Context) chain.Result[string] {
			return p.lookupPageWebsite(ctx, canonical)
		}},
		{Name: "page_scrape", Run: func(ctx context.Context) chain.Result[string] {
			return p.scrapePageForWebsite(ctx, canonical)
		}},
	})
	if err != nil {
		p.logger.LogInfo(ctx, logger.OpResolveIdentity, "No domain resolved for facebook page", map[string]interface{}{
			"facebook_page": canonical,
			"detail":        err.Error(),
		})
		return "", classifyExhaustion(err, models.ErrDomainNotFound)
	}

	p.logger.LogSuccess(ctx, logger.OpResolveIdentity, canonical, "Resolved domain for facebook page", map[string]interface{}{
		"domain": outcome.Value,
		"source": outcome.Source,
	})
	return outcome.Value, nil
}

// LookupPageID resolves the numeric Meta page ID for a page reference
func (p *Provider) LookupPageID(ctx context.Context, pageRef string) (string, error) {
	// Syntactic extraction needs no network at all
	if id := p.parser.PageIDFromReference(pageRef); id != "" {
		return id, nil
	}

	canonical, err := parser.CanonicalPageURL(pageRef)
	if err != nil {
		return "", err
	}
	slug := pageSlug(canonical)

	outcome, err := chain.Run(ctx, []chain.Strategy[string]{
		// Graph API resolves many public pages without a credential
		{Name: "graph_api_public", Run: func(ctx context.Context) chain.Result[string] {
			return p.lookupIDViaGraph(ctx, slug, false)
		}},
		{Name: "graph_api_token", Run: func(ctx context.Context) chain.Result[string] {
			return p.lookupIDViaGraph(ctx, slug, true)
		}},
		{Name: "page_scrape", Run: func(ctx context.Context) chain.Result[string] {
			return p.scrapePageForID(ctx, canonical)
		}},
	})
	if err != nil {
		return "", classifyExhaustion(err, models.ErrPageNotFound)
	}

	return outcome.Value, nil
}

// HasActiveAds reports whether the page identity currently runs ads on Meta
func (p *Provider) HasActiveAds(ctx context.Context, pageIdentity string) (*bool, string, error) {
	pageIdentity = strings.TrimSpace(pageIdentity)
	if pageIdentity == "" {
		return nil, "", models.ErrUndetermined
	}

	pageID := p.parser.PageIDFromReference(pageIdentity)

	outcome, err := chain.Run(ctx, []chain.Strategy[bool]{
		{Name: "graph_api_ads_archive", Run: func(ctx context.Context) chain.Result[bool] {
			return p.checkAdsViaAPI(ctx, pageID)
		}},
		{Name: "ad_library_search", Run: func(ctx context.Context) chain.Result[bool] {
			return p.checkAdsViaAsyncSearch(ctx, pageID)
		}},
		{Name: "ad_library_page", Run: func(ctx context.Context) chain.Result[bool] {
			return p.checkAdsViaLibraryPage(ctx, pageID, pageIdentity)
		}},
	})
	if err != nil {
		p.logger.LogInfo(ctx, logger.OpMetaAdsCheck, "Meta ad activity undetermined", map[string]interface{}{
			"page_identity": pageIdentity,
			"detail":        err.Error(),
		})
		return nil, "", models.ErrUndetermined
	}

	p.logger.LogSuccess(ctx, logger.OpMetaAdsCheck, pageIdentity, "Meta ad activity determined", map[string]interface{}{
		"has_ads": outcome.Value,
		"source":  outcome.Source,
	})
	return models.Bool(outcome.Value), outcome.Source, nil
}

// searchPageByDomain queries the Graph API page search for the domain
func (p *Provider) searchPageByDomain(ctx context.Context, domain string) chain.Result[string] {
	if p.accessToken == "" {
		return chain.Skip[string]("no access token configured")
	}

	query := url.Values{
		"q":            {domain},
		"fields":       {"id,link"},
		"access_token": {p.accessToken},
	}
	body, err := p.fetcher.Fetch(ctx, fmt.Sprintf("%s/pages/search?%s", graphAPIBaseURL, query.Encode()))
	if err != nil {
		return chain.Fail[string](err)
	}

	var list graphList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		return chain.Fail[string](fmt.Errorf("malformed graph response: %w", err))
	}

	for _, page := range list.Data {
		if page.Link == "" {
			continue
		}
		if canonical, err := parser.CanonicalPageURL(page.Link); err == nil {
			return chain.Success(canonical)
		}
	}

	return chain.Fail[string](models.ErrPageNotFound)
}

// scrapeSiteForPage fetches the advertiser's website and looks for a
// Facebook page link in its markup
func (p *Provider) scrapeSiteForPage(ctx context.Context, domain string) chain.Result[string] {
	html, err := p.fetcher.FetchSite(ctx, domain)
	if err != nil {
		return chain.Fail[string](err)
	}

	if page := p.parser.FacebookPageFromSiteHTML(html); page != "" {
		return chain.Success(page)
	}

	return chain.Fail[string](models.ErrPageNotFound)
}

// lookupPageWebsite reads the page's website field from the Graph API
func (p *Provider) lookupPageWebsite(ctx context.Context, canonical string) chain.Result[string] {
	if p.accessToken == "" {
		return chain.Skip[string]("no access token configured")
	}

	query := url.Values{
		"fields":       {"website"},
		"access_token": {p.accessToken},
	}
	body, err := p.fetcher.Fetch(ctx, fmt.Sprintf("%s/%s?%s", graphAPIBaseURL, pageSlug(canonical), query.Encode()))
	if err != nil {
		return chain.Fail[string](err)
	}

	var page graphObject
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return chain.Fail[string](fmt.Errorf("malformed graph response: %w", err))
	}

	if domain := parser.CleanDomain(page.Website); domain != "" {
		return chain.Success(domain)
	}

	return chain.Fail[string](models.ErrDomainNotFound)
}

// scrapePageForWebsite fetches the public Facebook page and looks for an
// external website link
func (p *Provider) scrapePageForWebsite(ctx context.Context, canonical string) chain.Result[string] {
	html, err := p.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return chain.Fail[string](err)
	}

	if domain := p.parser.WebsiteFromPageHTML(html); domain != "" {
		return chain.Success(domain)
	}

	return chain.Fail[string](models.ErrDomainNotFound)
}

// lookupIDViaGraph resolves a page slug to its numeric ID via the Graph API
func (p *Provider) lookupIDViaGraph(ctx context.Context, slug string, withToken bool) chain.Result[string] {
	requestURL := fmt.Sprintf("%s/%s", graphAPIBaseURL, url.PathEscape(slug))
	if withToken {
		if p.accessToken == "" {
			return chain.Skip[string]("no access token configured")
		}
		requestURL += "?access_token=" + url.QueryEscape(p.accessToken)
	}

	body, err := p.fetcher.Fetch(ctx, requestURL)
	if err != nil {
		return chain.Fail[string](err)
	}

	var page graphObject
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return chain.Fail[string](fmt.Errorf("malformed graph response: %w", err))
	}

	if page.ID != "" {
		return chain.Success(page.ID)
	}

	return chain.Fail[string](models.ErrPageNotFound)
}

// scrapePageForID fetches the public page and extracts the embedded page ID
func (p *Provider) scrapePageForID(ctx context.Context, canonical string) chain.Result[string] {
	html, err := p.fetcher.Fetch(ctx, canonical)
	if err != nil {
		return chain.Fail[string](err)
	}

	if id := p.parser.PageIDFromHTML(html); id != "" {
		return chain.Success(id)
	}

	return chain.Fail[string](models.ErrPageNotFound)
}

// checkAdsViaAPI asks the official ads_archive endpoint for one active ad
func (p *Provider) checkAdsViaAPI(ctx context.Context, pageID string) chain.Result[bool] {
	if p.accessToken == "" {
		return chain.Skip[bool]("no access token configured")
	}
	if pageID == "" {
		return chain.Skip[bool]("no numeric page id available")
	}

	query := url.Values{
		"search_page_ids":      {pageID},
		"ad_reached_countries": {"ALL"},
		"ad_active_status":     {"ACTIVE"},
		"limit":                {"1"},
		"access_token":         {p.accessToken},
	}
	body, err := p.fetcher.Fetch(ctx, fmt.Sprintf("%s/ads_archive?%s", graphAPIBaseURL, query.Encode()))
	if err != nil {
		return chain.Fail[bool](err)
	}

	var list graphList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		return chain.Fail[bool](fmt.Errorf("malformed ads_archive response: %w", err))
	}

	return chain.Success(len(list.Data) > 0)
}

// checkAdsViaAsyncSearch hits the Ad Library search backend, which answers
// with JSON even without a credential
func (p *Provider) checkAdsViaAsyncSearch(ctx context.Context, pageID string) chain.Result[bool] {
	if pageID == "" {
		return chain.Skip[bool]("no numeric page id available")
	}

	query := url.Values{
		"q":             {""},
		"ad_type":       {"all"},
		"search_type":   {"page"},
		"page_ids":      {pageID},
		"active_status": {"active"},
		"country":       {"ALL"},
		"media_type":    {"all"},
	}
	body, err := p.fetcher.Fetch(ctx, adLibraryAsyncURL+"?"+query.Encode())
	if err != nil {
		return chain.Fail[bool](err)
	}

	if hasAds, determined := p.parser.AdLibraryVerdict(body); determined {
		return chain.Success(hasAds)
	}

	return chain.Fail[bool](models.ErrUndetermined)
}

// checkAdsViaLibraryPage scrapes the public Ad Library listing. With a
// numeric ID the listing is filtered directly; otherwise it falls back to
// a page-name search on the reference slug.
func (p *Provider) checkAdsViaLibraryPage(ctx context.Context, pageID, pageIdentity string) chain.Result[bool] {
	query := url.Values{
		"active_status": {"active"},
		"ad_type":       {"all"},
		"country":       {"ALL"},
	}
	if pageID != "" {
		query.Set("view_all_page_id", pageID)
	} else {
		query.Set("q", pageSlug(pageIdentity))
		query.Set("search_type", "page")
	}

	body, err := p.fetcher.Fetch(ctx, adLibraryURL+"/?"+query.Encode())
	if err != nil {
		return chain.Fail[bool](err)
	}

	if hasAds, determined := p.parser.AdLibraryVerdict(body); determined {
		return chain.Success(hasAds)
	}

	return chain.Fail[bool](models.ErrUndetermined)
}

// pageSlug reduces a page reference to the path segment the Graph API and
// Ad Library accept as an identifier
func pageSlug(pageRef string) string {
	slug := strings.TrimSpace(pageRef)
	if canonical, err := parser.CanonicalPageURL(slug); err == nil {
		slug = canonical
	}
	slug = strings.TrimPrefix(slug, "https://facebook.com/")

	// profile.php references identify the page by the numeric query id
	if strings.HasPrefix(slug, "profile.php?id=") {
		return strings.TrimPrefix(slug, "profile.php?id=")
	}

	return strings.Trim(slug, "/")
}

// classifyExhaustion maps an exhausted chain to the provider's declared
// result states: notFound when at least one strategy actually looked and
// found nothing, undetermined when nothing could look at all.
func classifyExhaustion(err error, notFound error) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	return models.ErrUndetermined
}
