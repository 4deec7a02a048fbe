package google

import (
	"context"
	"net/url"
	"strings"

	"adscheck/internal/fetcher"
	"adscheck/internal/logger"
	"adscheck/internal/models"
	"adscheck/internal/parser"
	"adscheck/internal/provider/chain"
)

const transparencyBaseURL = "https://adstransparency.google.com"

// Provider implements the Service interface
type Provider struct {
	fetcher fetcher.Service
	parser  parser.Service
	logger  logger.Service
}

// NewProvider creates a new Google provider
func NewProvider(fetch fetcher.Service, parse parser.Service, log logger.Service) Service {
	return &Provider{
		fetcher: fetch,
		parser:  parse,
		logger:  log,
	}
}

// HasActiveAds reports whether the domain currently runs Google ads
func (p *Provider) HasActiveAds(ctx context.Context, domain string) (*bool, string, error) {
	domain = parser.CleanDomain(domain)
	if domain == "" {
		return nil, "", models.ErrUndetermined
	}

	outcome, err := chain.Run(ctx, []chain.Strategy[bool]{
		{Name: "transparency_center", Run: func(ctx context.Context) chain.Result[bool] {
			return p.checkTransparencyCenter(ctx, domain)
		}},
		{Name: SourceWebsiteSignals, Run: func(ctx context.Context) chain.Result[bool] {
			return p.checkWebsiteSignals(ctx, domain)
		}},
	})
	if err != nil {
		p.logger.LogInfo(ctx, logger.OpGoogleAdsCheck, "Google ad activity undetermined", map[string]interface{}{
			"domain": domain,
			"detail": err.Error(),
		})
		return nil, "", models.ErrUndetermined
	}

	p.logger.LogSuccess(ctx, logger.OpGoogleAdsCheck, domain, "Google ad activity determined", map[string]interface{}{
		"has_ads": outcome.Value,
		"source":  outcome.Source,
	})
	return models.Bool(outcome.Value), outcome.Source, nil
}

// checkTransparencyCenter scrapes the Ads Transparency Center listing
// filtered by advertiser domain
func (p *Provider) checkTransparencyCenter(ctx context.Context, domain string) chain.Result[bool] {
	query := url.Values{"q": {domain}}
	html, err := p.fetcher.Fetch(ctx, transparencyBaseURL+"/advertiser?"+query.Encode())
	if err != nil {
		return chain.Fail[bool](err)
	}

	if hasAds, determined := p.parser.TransparencyVerdict(html, domain); determined {
		return chain.Success(hasAds)
	}

	return chain.Fail[bool](models.ErrUndetermined)
}

// checkWebsiteSignals scans the advertiser's own site for ad-network
// markers. A weak proxy: tag scripts prove instrumentation, and only the
// conversion-tracking markers point at actual campaigns, so a single
// non-conversion signal is not treated as a yes.
func (p *Provider) checkWebsiteSignals(ctx context.Context, domain string) chain.Result[bool] {
	html, err := p.fetcher.FetchSite(ctx, domain)
	if err != nil {
		return chain.Fail[bool](err)
	}

	signals := p.parser.GoogleAdSignals(html)
	hasAds := len(signals) >= 2 || containsConversionSignal(signals)
	return chain.Success(hasAds)
}

func containsConversionSignal(signals []string) bool {
	for _, signal := range signals {
		if strings.Contains(signal, "conversion") || strings.Contains(signal, "remarketing") {
			return true
		}
	}
	return false
}
