package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/assettrack/models"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	regions := []models.Region{}
	if err := r.db.WithContext(ctx).Order("nombre").Find(&regions).Error; err != nil {
		return nil, translate("catalog.ListRegions", err)
	}
	return regions, nil
}

func (r *CatalogRepository) ListSitesByRegion(ctx context.Context, regionID uuid.UUID) ([]models.Site, error) {
	sites := []models.Site{}
	err := r.db.WithContext(ctx).
		Where("comunidad_id = ?", regionID).
		Order("nombre").
		Find(&sites).Error
	if err != nil {
		return nil, translate("catalog.ListSitesByRegion", err)
	}
	return sites, nil
}

func (r *CatalogRepository) ListSitesWithCoordinates(ctx context.Context) ([]models.Site, error) {
	sites := []models.Site{}
	err := r.db.WithContext(ctx).
		Preload("Region").
		Where("latitud IS NOT NULL AND longitud IS NOT NULL").
		Find(&sites).Error
	if err != nil {
		return nil, translate("catalog.ListSitesWithCoordinates", err)
	}
	return sites, nil
}

func (r *CatalogRepository) ListActiveAssetsBySite(ctx context.Context, siteID uuid.UUID) ([]models.Asset, error) {
	assets := []models.Asset{}
	err := r.db.WithContext(ctx).
		Where("aeropuerto_id = ? AND activo = ?", siteID, true).
		Order("codigo").
		Find(&assets).Error
	if err != nil {
		return nil, translate("catalog.ListActiveAssetsBySite", err)
	}
	return assets, nil
}

// FindAssetByID loads the asset with its airport and region, as the report
// and the inspection screen both need them.
func (r *CatalogRepository) FindAssetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Site.Region").
		First(&asset, "id = ?", id).Error
	if err != nil {
		return nil, translate("catalog.FindAssetByID", err)
	}
	return &asset, nil
}

func (r *CatalogRepository) FindActiveAssetByCode(ctx context.Context, code string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Site.Region").
		Where("codigo = ? AND activo = ?", code, true).
		First(&asset).Error
	if err != nil {
		return nil, translate("catalog.FindActiveAssetByCode", err)
	}
	return &asset, nil
}
