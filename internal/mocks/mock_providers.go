package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMetaProvider is a mock implementation of meta.Service
type MockMetaProvider struct {
	mock.Mock
}

// ResolvePage mocks the ResolvePage method of meta.Service
func (m *MockMetaProvider) ResolvePage(ctx context.Context, domain string) (string, error) {
	args := m.Called(ctx, domain)
	return args.String(0), args.Error(1)
}

// ResolveDomain mocks the ResolveDomain method of meta.Service
func (m *MockMetaProvider) ResolveDomain(ctx context.Context, pageRef string) (string, error) {
	args := m.Called(ctx, pageRef)
	return args.String(0), args.Error(1)
}

// LookupPageID mocks the LookupPageID method of meta.Service
func (m *MockMetaProvider) LookupPageID(ctx context.Context, pageRef string) (string, error) {
	args := m.Called(ctx, pageRef)
	return args.String(0), args.Error(1)
}

// HasActiveAds mocks the HasActiveAds method of meta.Service
func (m *MockMetaProvider) HasActiveAds(ctx context.Context, pageIdentity string) (*bool, string, error) {
	args := m.Called(ctx, pageIdentity)
	var result *bool
	if args.Get(0) != nil {
		result = args.Get(0).(*bool)
	}
	return result, args.String(1), args.Error(2)
}

// MockGoogleProvider is a mock implementation of google.Service
type MockGoogleProvider struct {
	mock.Mock
}

// HasActiveAds mocks the HasActiveAds method of google.Service
func (m *MockGoogleProvider) HasActiveAds(ctx context.Context, domain string) (*bool, string, error) {
	args := m.Called(ctx, domain)
	var result *bool
	if args.Get(0) != nil {
		result = args.Get(0).(*bool)
	}
	return result, args.String(1), args.Error(2)
}
