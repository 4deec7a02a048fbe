package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentity indicates that neither domain nor facebook_page was supplied
	ErrMissingIdentity = errors.New("either domain or facebook_page must be provided")

	// ErrPageNotFound indicates that no Facebook page could be discovered for a domain
	ErrPageNotFound = errors.New("no facebook page found for domain")

	// ErrDomainNotFound indicates that no website domain could be discovered for a page
	ErrDomainNotFound = errors.New("no domain found for facebook page")

	// ErrIdentityMismatch indicates that the supplied domain and page belong to different identities
	ErrIdentityMismatch = errors.New("supplied domain and facebook page do not match")

	// ErrInvalidPageReference indicates that the supplied page reference is not a Facebook page
	ErrInvalidPageReference = errors.New("invalid facebook page reference")

	// ErrUndetermined indicates that every strategy in a provider's fallback chain failed
	ErrUndetermined = errors.New("ad activity could not be determined")

	// ErrFetchTimeout indicates that an external fetch exceeded its time budget
	ErrFetchTimeout = errors.New("timeout while fetching external page")

	// ErrNotFound indicates that an external resource responded with 404
	ErrNotFound = errors.New("external resource not found")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCacheMiss indicates that no live entry exists for the requested key
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable indicates that cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)

// CheckError represents an error tied to a specific check target
// (a domain or a page reference).
type CheckError struct {
	Target  string
	Message string
	Err     error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("check %s: %s: %v", e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("check %s: %s", e.Target, e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a new target-specific check error
func NewCheckError(target, message string, err error) *CheckError {
	return &CheckError{
		Target:  target,
		Message: message,
		Err:     err,
	}
}

// FailureReason maps a resolution error to the short reason token used in
// outcome messages.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrPageNotFound):
		return "no_page_found"
	case errors.Is(err, ErrDomainNotFound):
		return "no_domain_found"
	case errors.Is(err, ErrIdentityMismatch):
		return "identity_mismatch"
	case errors.Is(err, ErrInvalidPageReference):
		return "invalid_page_reference"
	default:
		return "resolution_failed"
	}
}
