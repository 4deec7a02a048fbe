package resolver

import (
	"context"

	"adscheck/internal/models"
)

// Resolution is the terminal Resolved state of one request: the complete
// identity plus how much of it was actually verified.
type Resolution struct {
	Identity models.ResolvedIdentity
	// Validated is true when both supplied identity halves were
	// cross-checked against each other.
	Validated bool
	// Note carries a diagnostic for the outcome message, e.g. that
	// cross-validation was skipped because the validator was unavailable.
	Note string
}

// Service defines the interface for identity resolution
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Resolve turns a partial identity into a complete one. A terminal
	// Failed state is reported as an error: models.ErrPageNotFound,
	// models.ErrDomainNotFound, models.ErrIdentityMismatch or
	// models.ErrInvalidPageReference. Supplied fields are returned
	// verbatim, never rewritten.
	Resolve(ctx context.Context, domain, facebookPage string) (*Resolution, error)
}
