package services

import (
	"context"

	"github.com/google/uuid"
	"p9e.in/assettrack/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces_mock.go -package=mock_services

// Repositories return an *apperr.Error of KindNotFound when a single row is
// missing; list methods return an empty slice instead.

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type CatalogRepository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	ListSitesByRegion(ctx context.Context, regionID uuid.UUID) ([]models.Site, error)
	ListSitesWithCoordinates(ctx context.Context) ([]models.Site, error)
	ListActiveAssetsBySite(ctx context.Context, siteID uuid.UUID) ([]models.Asset, error)
	FindAssetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	FindActiveAssetByCode(ctx context.Context, code string) (*models.Asset, error)
}

type InspectionRepository interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, in *models.Inspection) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]models.Inspection, error)
	ListByTechnician(ctx context.Context, technicianID uuid.UUID, limit int) ([]models.Inspection, error)
	ListPendingSync(ctx context.Context) ([]models.Inspection, error)
	ListForExport(ctx context.Context, assetID *uuid.UUID) ([]models.Inspection, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.InspectionStatus) error
	MarkSynced(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProposalRepository interface {
	First(ctx context.Context) (*models.Proposal, error)
}
