package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/services"
)

// CatalogHandler serves regions, airports and assets.
type CatalogHandler struct {
	svc *services.CatalogService
	log *zap.Logger
}

func NewCatalogHandler(svc *services.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func (h *CatalogHandler) fail(w http.ResponseWriter, op string, err error) {
	if apperr.KindOf(err) == apperr.KindBackend {
		h.log.Error(op, zap.Error(err))
	}
	middleware.WriteError(w, err)
}

func (h *CatalogHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.svc.Regions(r.Context())
	if err != nil {
		h.fail(w, "list regions", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, regions)
}

func (h *CatalogHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	regionID, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	sites, err := h.svc.SitesByRegion(r.Context(), regionID)
	if err != nil {
		h.fail(w, "list sites", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, sites)
}

// NearbySites handles /aeropuertos/cercanos?lat=&lng=&limit=.
func (h *CatalogHandler) NearbySites(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		middleware.WriteError(w, apperr.Invalidf("catalog.NearbySites", "lat y lng son obligatorios"))
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	sites, err := h.svc.NearestSites(r.Context(), lat, lng, limit)
	if err != nil {
		h.fail(w, "nearby sites", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, sites)
}

func (h *CatalogHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	siteID, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	assets, err := h.svc.AssetsBySite(r.Context(), siteID)
	if err != nil {
		h.fail(w, "list assets", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, assets)
}

func (h *CatalogHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	asset, err := h.svc.AssetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get asset", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, asset)
}

func (h *CatalogHandler) GetAssetByCode(w http.ResponseWriter, r *http.Request) {
	asset, err := h.svc.AssetByCode(r.Context(), mux.Vars(r)["codigo"])
	if err != nil {
		h.fail(w, "get asset by code", err)
		return
	}
	if asset == nil {
		middleware.WriteError(w, apperr.New(apperr.KindNotFound, "catalog.AssetByCode", ""))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, asset)
}
