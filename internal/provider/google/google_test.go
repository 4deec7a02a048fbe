package google

import (
	"context"
	"fmt"
	"testing"

	mocks2 "adscheck/internal/mocks"
	"adscheck/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProvider() (*Provider, *mocks2.MockFetcher, *mocks2.MockParser, *mocks2.MockLogger) {
	mockFetcher := &mocks2.MockFetcher{}
	mockParser := &mocks2.MockParser{}
	mockLogger := &mocks2.MockLogger{}
	provider := NewProvider(mockFetcher, mockParser, mockLogger).(*Provider)
	return provider, mockFetcher, mockParser, mockLogger
}

func TestProvider_HasActiveAds_TransparencyCenterDeterminesTrue(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	listingHTML := `<div class="advertiser-card">Nike - nike.com</div>`
	mockFetcher.On("Fetch", ctx, "https://adstransparency.google.com/advertiser?q=nike.com").Return(listingHTML, nil)
	mockParser.On("TransparencyVerdict", listingHTML, "nike.com").Return(true, true)
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "https://www.nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	assert.True(t, *hasAds)
	assert.Equal(t, "transparency_center", source)

	// The listing answered, so the heuristic never ran
	mockFetcher.AssertNotCalled(t, "FetchSite", mock.Anything, mock.Anything)
	mockFetcher.AssertExpectations(t)
	mockLogger.AssertExpectations(t)
}

func TestProvider_HasActiveAds_TransparencyCenterDeterminesFalse(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	listingHTML := `<div>No ads found</div>`
	mockFetcher.On("Fetch", ctx, mock.Anything).Return(listingHTML, nil)
	mockParser.On("TransparencyVerdict", listingHTML, "nike.com").Return(false, true)
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	assert.False(t, *hasAds)
	assert.Equal(t, "transparency_center", source)
	mockFetcher.AssertNotCalled(t, "FetchSite", mock.Anything, mock.Anything)
}

func TestProvider_HasActiveAds_HeuristicFallbackConversionSignal(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	siteHTML := `<script>gtag('config', 'AW-123');</script>`
	mockFetcher.On("Fetch", ctx, mock.Anything).Return("", fmt.Errorf("blocked"))
	mockFetcher.On("FetchSite", ctx, "nike.com").Return(siteHTML, nil)
	mockParser.On("GoogleAdSignals", siteHTML).Return([]string{"conversion"})
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	assert.True(t, *hasAds)
	// The heuristic's answer is tagged so callers can see its confidence tier
	assert.Equal(t, SourceWebsiteSignals, source)
	mockParser.AssertExpectations(t)
}

func TestProvider_HasActiveAds_HeuristicSingleWeakSignalIsNo(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	siteHTML := `<script src="gtm.js"></script>`
	mockFetcher.On("Fetch", ctx, mock.Anything).Return("", fmt.Errorf("blocked"))
	mockFetcher.On("FetchSite", ctx, "nike.com").Return(siteHTML, nil)
	mockParser.On("GoogleAdSignals", siteHTML).Return([]string{"tag_manager"})
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	// Tag instrumentation alone does not prove active campaigns
	assert.False(t, *hasAds)
	assert.Equal(t, SourceWebsiteSignals, source)
}

func TestProvider_HasActiveAds_HeuristicMultipleSignalsIsYes(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	siteHTML := `<script src="gtm.js"></script><script src="https://googlesyndication.com/x.js"></script>`
	mockFetcher.On("Fetch", ctx, mock.Anything).Return("", fmt.Errorf("blocked"))
	mockFetcher.On("FetchSite", ctx, "nike.com").Return(siteHTML, nil)
	mockParser.On("GoogleAdSignals", siteHTML).Return([]string{"tag_manager", "ads_scripts"})
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, _, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	assert.True(t, *hasAds)
}

func TestProvider_HasActiveAds_Undetermined(t *testing.T) {
	// Arrange
	provider, mockFetcher, _, mockLogger := newTestProvider()
	ctx := context.Background()

	mockFetcher.On("Fetch", ctx, mock.Anything).Return("", fmt.Errorf("blocked"))
	mockFetcher.On("FetchSite", ctx, "nike.com").Return("", fmt.Errorf("connection refused"))
	mockLogger.On("LogInfo", ctx, "google_ads_check", "Google ad activity undetermined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	assert.Nil(t, hasAds)
	assert.Empty(t, source)
	assert.ErrorIs(t, err, models.ErrUndetermined)
	mockLogger.AssertExpectations(t)
}

func TestProvider_HasActiveAds_OpaqueListingFallsThrough(t *testing.T) {
	// Arrange
	provider, mockFetcher, mockParser, mockLogger := newTestProvider()
	ctx := context.Background()

	listingHTML := `<html><body>loading...</body></html>`
	siteHTML := `<script>gtag('config', 'AW-1');</script>`
	mockFetcher.On("Fetch", ctx, mock.Anything).Return(listingHTML, nil)
	mockParser.On("TransparencyVerdict", listingHTML, "nike.com").Return(false, false)
	mockFetcher.On("FetchSite", ctx, "nike.com").Return(siteHTML, nil)
	mockParser.On("GoogleAdSignals", siteHTML).Return([]string{"conversion"})
	mockLogger.On("LogSuccess", ctx, "google_ads_check", "nike.com", "Google ad activity determined", mock.Anything).Return()

	// Act
	hasAds, source, err := provider.HasActiveAds(ctx, "nike.com")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, hasAds)
	assert.True(t, *hasAds)
	assert.Equal(t, SourceWebsiteSignals, source)
}

func TestProvider_HasActiveAds_EmptyDomain(t *testing.T) {
	provider, _, _, _ := newTestProvider()

	hasAds, source, err := provider.HasActiveAds(context.Background(), "   ")

	assert.Nil(t, hasAds)
	assert.Empty(t, source)
	assert.ErrorIs(t, err, models.ErrUndetermined)
}
