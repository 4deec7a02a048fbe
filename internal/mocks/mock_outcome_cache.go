package mocks

import (
	"context"
	"time"

	"adscheck/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockOutcomeCache is a mock implementation of outcomeCache.Service
type MockOutcomeCache struct {
	mock.Mock
}

// Get mocks the Get method of outcomeCache.Service
func (m *MockOutcomeCache) Get(ctx context.Context, key string) (*models.CheckResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResponse), args.Error(1)
}

// Set mocks the Set method of outcomeCache.Service
func (m *MockOutcomeCache) Set(ctx context.Context, key string, outcome *models.CheckResponse, ttl time.Duration) error {
	args := m.Called(ctx, key, outcome, ttl)
	return args.Error(0)
}

// Delete mocks the Delete method of outcomeCache.Service
func (m *MockOutcomeCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
