package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
)

// DefaultNearbyLimit is used when the caller asks for nearby sites without a limit.
const DefaultNearbyLimit = 5

// CatalogService serves the read-only region, airport and asset hierarchy.
type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Regions(ctx context.Context) ([]models.Region, error) {
	return s.repo.ListRegions(ctx)
}

func (s *CatalogService) SitesByRegion(ctx context.Context, regionID uuid.UUID) ([]models.Site, error) {
	return s.repo.ListSitesByRegion(ctx, regionID)
}

func (s *CatalogService) AssetsBySite(ctx context.Context, siteID uuid.UUID) ([]models.Asset, error) {
	return s.repo.ListActiveAssetsBySite(ctx, siteID)
}

func (s *CatalogService) AssetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	return s.repo.FindAssetByID(ctx, id)
}

// AssetByCode returns nil and no error when no active asset has the code.
func (s *CatalogService) AssetByCode(ctx context.Context, code string) (*models.Asset, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperr.Invalidf("catalog.AssetByCode", "El código del equipo es obligatorio")
	}
	asset, err := s.repo.FindActiveAssetByCode(ctx, code)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return asset, err
}

// SiteDistance pairs a site with its distance in metres from the query point.
type SiteDistance struct {
	models.Site
	DistanceMeters float64 `json:"distancia_metros"`
}

// NearestSites orders the sites that have coordinates by geodesic distance
// from (lat, lng) and returns at most limit of them.
func (s *CatalogService) NearestSites(ctx context.Context, lat, lng float64, limit int) ([]SiteDistance, error) {
	const op = "catalog.NearestSites"
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apperr.Invalidf(op, "Coordenadas fuera de rango")
	}
	if limit <= 0 {
		limit = DefaultNearbyLimit
	}

	sites, err := s.repo.ListSitesWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	origin := orb.Point{lng, lat}
	out := make([]SiteDistance, 0, len(sites))
	for _, site := range sites {
		p, ok := site.Point()
		if !ok {
			continue
		}
		out = append(out, SiteDistance{Site: site, DistanceMeters: geo.Distance(origin, p)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceMeters < out[j].DistanceMeters })

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
