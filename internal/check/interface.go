package check

import (
	"context"

	"adscheck/internal/models"
)

// CheckService defines the interface for the end-to-end ads check pipeline
// External packages should use this interface, not the concrete implementations
type CheckService interface {
	// Check resolves the request's identity and detects ad activity on
	// both platforms. It returns an error only for invalid input
	// (models.ErrMissingIdentity); every other failure mode is reported
	// inside the returned outcome.
	Check(ctx context.Context, request models.CheckRequest) (*models.CheckResponse, error)
}
