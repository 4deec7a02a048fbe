package resolver

import (
	"context"
	"fmt"
	"strings"

	"adscheck/internal/logger"
	"adscheck/internal/models"
	"adscheck/internal/parser"
	"adscheck/internal/provider/meta"
)

// Resolver implements the Service interface on top of the Meta provider
type Resolver struct {
	meta   meta.Service
	logger logger.Service
}

// NewResolver creates a new identity resolver
func NewResolver(metaProvider meta.Service, log logger.Service) Service {
	return &Resolver{
		meta:   metaProvider,
		logger: log,
	}
}

// Resolve turns a partial identity into a complete one
func (r *Resolver) Resolve(ctx context.Context, domain, facebookPage string) (*Resolution, error) {
	domain = strings.TrimSpace(domain)
	facebookPage = strings.TrimSpace(facebookPage)

	switch {
	case domain != "" && facebookPage != "":
		return r.resolveBoth(ctx, domain, facebookPage)
	case domain != "":
		return r.resolveFromDomain(ctx, domain)
	case facebookPage != "":
		return r.resolveFromPage(ctx, facebookPage)
	default:
		return nil, models.ErrMissingIdentity
	}
}

// resolveFromDomain fills in the page half of the identity
func (r *Resolver) resolveFromDomain(ctx context.Context, domain string) (*Resolution, error) {
	page, err := r.meta.ResolvePage(ctx, domain)
	if err != nil {
		r.logger.LogInfo(ctx, logger.OpResolveIdentity, "Identity resolution failed", map[string]interface{}{
			"domain": domain,
			"reason": models.FailureReason(models.ErrPageNotFound),
		})
		return nil, fmt.Errorf("%w: %v", models.ErrPageNotFound, err)
	}

	return &Resolution{
		Identity: models.ResolvedIdentity{
			Domain:       domain,
			FacebookPage: page,
			MetaPageID:   r.lookupPageID(ctx, page),
		},
		Validated: true,
	}, nil
}

// resolveFromPage fills in the domain half of the identity
func (r *Resolver) resolveFromPage(ctx context.Context, facebookPage string) (*Resolution, error) {
	if _, err := parser.CanonicalPageURL(facebookPage); err != nil {
		return nil, err
	}

	domain, err := r.meta.ResolveDomain(ctx, facebookPage)
	if err != nil {
		r.logger.LogInfo(ctx, logger.OpResolveIdentity, "Identity resolution failed", map[string]interface{}{
			"facebook_page": facebookPage,
			"reason":        models.FailureReason(models.ErrDomainNotFound),
		})
		return nil, fmt.Errorf("%w: %v", models.ErrDomainNotFound, err)
	}

	return &Resolution{
		Identity: models.ResolvedIdentity{
			Domain:       domain,
			FacebookPage: facebookPage,
			MetaPageID:   r.lookupPageID(ctx, facebookPage),
		},
		Validated: true,
	}, nil
}

// resolveBoth cross-validates the two supplied identity halves by
// independently resolving the domain's page and comparing normalized page
// identities. A confirmed conflict is a hard failure; an unverifiable
// pair passes through as supplied, with a note, since the caller's own
// input outranks an unreliable validator.
func (r *Resolver) resolveBoth(ctx context.Context, domain, facebookPage string) (*Resolution, error) {
	if _, err := parser.CanonicalPageURL(facebookPage); err != nil {
		return nil, err
	}

	identity := models.ResolvedIdentity{
		Domain:       domain,
		FacebookPage: facebookPage,
		MetaPageID:   r.lookupPageID(ctx, facebookPage),
	}

	resolvedPage, err := r.meta.ResolvePage(ctx, domain)
	if err != nil {
		r.logger.LogInfo(ctx, logger.OpResolveIdentity, "Cross-validation skipped", map[string]interface{}{
			"domain":        domain,
			"facebook_page": facebookPage,
			"detail":        err.Error(),
		})
		return &Resolution{
			Identity: identity,
			Note:     "identity cross-validation skipped: could not independently verify the supplied pair",
		}, nil
	}

	// Compare by normalized page identity, not by page ID: ID extraction
	// is itself a fallible lookup.
	if parser.PageKey(resolvedPage) != parser.PageKey(facebookPage) {
		r.logger.LogInfo(ctx, logger.OpResolveIdentity, "Identity resolution failed", map[string]interface{}{
			"domain":        domain,
			"supplied_page": facebookPage,
			"resolved_page": resolvedPage,
			"reason":        models.FailureReason(models.ErrIdentityMismatch),
		})
		return nil, fmt.Errorf("%w: domain resolves to %s", models.ErrIdentityMismatch, resolvedPage)
	}

	return &Resolution{Identity: identity, Validated: true}, nil
}

// lookupPageID resolves the numeric page ID, best effort: an identity is
// complete without it.
func (r *Resolver) lookupPageID(ctx context.Context, facebookPage string) string {
	id, err := r.meta.LookupPageID(ctx, facebookPage)
	if err != nil {
		return ""
	}
	return id
}
