package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
	mock_services "p9e.in/assettrack/pkg/services/mocks"
)

func f(v float64) *float64 { return &v }

func TestCatalogService_NearestSites(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_services.NewMockCatalogRepository(ctrl)

	sites := []models.Site{
		{ID: uuid.New(), Code: "BCN", Latitude: f(41.2974), Longitude: f(2.0833)},
		{ID: uuid.New(), Code: "MAD", Latitude: f(40.4983), Longitude: f(-3.5676)},
		{ID: uuid.New(), Code: "XXX"},
		{ID: uuid.New(), Code: "MCV", Latitude: f(40.3706), Longitude: f(-3.7851)},
	}
	repo.EXPECT().ListSitesWithCoordinates(gomock.Any()).Return(sites, nil)

	// Puerta del Sol
	got, err := NewCatalogService(repo).NearestSites(context.Background(), 40.4168, -3.7038, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MCV", got[0].Code)
	assert.Equal(t, "MAD", got[1].Code)
	assert.Less(t, got[0].DistanceMeters, got[1].DistanceMeters)
	assert.InDelta(t, 14500, got[1].DistanceMeters, 2500)
}

func TestCatalogService_NearestSitesRejectsBadCoordinates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_services.NewMockCatalogRepository(ctrl)

	_, err := NewCatalogService(repo).NearestSites(context.Background(), 91, 0, 5)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestCatalogService_AssetByCode(t *testing.T) {
	t.Run("not found is an empty result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_services.NewMockCatalogRepository(ctrl)
		repo.EXPECT().FindActiveAssetByCode(gomock.Any(), "M-0000").Return(nil, apperr.New(apperr.KindNotFound, "assets", ""))

		asset, err := NewCatalogService(repo).AssetByCode(context.Background(), " M-0000 ")
		assert.NoError(t, err)
		assert.Nil(t, asset)
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_services.NewMockCatalogRepository(ctrl)
		want := &models.Asset{ID: uuid.New(), Code: "M-3209", Active: true}
		repo.EXPECT().FindActiveAssetByCode(gomock.Any(), "M-3209").Return(want, nil)

		asset, err := NewCatalogService(repo).AssetByCode(context.Background(), "M-3209")
		require.NoError(t, err)
		assert.Equal(t, want, asset)
	})
}
