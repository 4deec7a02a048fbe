package outcomeCache

import (
	"context"
	"time"

	"adscheck/internal/models"
)

// Service defines the interface for check-outcome cache operations
type Service interface {
	Get(ctx context.Context, key string) (*models.CheckResponse, error)
	Set(ctx context.Context, key string, outcome *models.CheckResponse, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
