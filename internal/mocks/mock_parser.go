package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockParser is a mock implementation of parser.Service
type MockParser struct {
	mock.Mock
}

// PageIDFromReference mocks the PageIDFromReference method of parser.Service
func (m *MockParser) PageIDFromReference(ref string) string {
	args := m.Called(ref)
	return args.String(0)
}

// PageIDFromHTML mocks the PageIDFromHTML method of parser.Service
func (m *MockParser) PageIDFromHTML(html string) string {
	args := m.Called(html)
	return args.String(0)
}

// FacebookPageFromSiteHTML mocks the FacebookPageFromSiteHTML method of parser.Service
func (m *MockParser) FacebookPageFromSiteHTML(html string) string {
	args := m.Called(html)
	return args.String(0)
}

// WebsiteFromPageHTML mocks the WebsiteFromPageHTML method of parser.Service
func (m *MockParser) WebsiteFromPageHTML(html string) string {
	args := m.Called(html)
	return args.String(0)
}

// AdLibraryVerdict mocks the AdLibraryVerdict method of parser.Service
func (m *MockParser) AdLibraryVerdict(body string) (bool, bool) {
	args := m.Called(body)
	return args.Bool(0), args.Bool(1)
}

// TransparencyVerdict mocks the TransparencyVerdict method of parser.Service
func (m *MockParser) TransparencyVerdict(html, domain string) (bool, bool) {
	args := m.Called(html, domain)
	return args.Bool(0), args.Bool(1)
}

// GoogleAdSignals mocks the GoogleAdSignals method of parser.Service
func (m *MockParser) GoogleAdSignals(html string) []string {
	args := m.Called(html)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
