package mocks

import (
	"context"

	"adscheck/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockCheckService is a mock implementation of check.CheckService
type MockCheckService struct {
	mock.Mock
}

// Check mocks the Check method of check.CheckService
func (m *MockCheckService) Check(ctx context.Context, request models.CheckRequest) (*models.CheckResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResponse), args.Error(1)
}
