package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/services"
)

// maxInspectionBody covers two 5 MB signatures after base64 plus the readings.
const maxInspectionBody = 16 << 20

type InspectionHandler struct {
	svc *services.InspectionService
	log *zap.Logger
}

func NewInspectionHandler(svc *services.InspectionService, log *zap.Logger) *InspectionHandler {
	return &InspectionHandler{svc: svc, log: log}
}

func (h *InspectionHandler) fail(w http.ResponseWriter, op string, err error) {
	if apperr.KindOf(err) == apperr.KindBackend {
		h.log.Error(op, zap.Error(err))
	}
	middleware.WriteError(w, err)
}

// Create saves a completed inspection for the authenticated technician.
func (h *InspectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInspectionBody)
	var in services.NewInspection
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.WriteError(w, apperr.Invalidf("inspections.Create", "La inspección es demasiado grande"))
			return
		}
		middleware.WriteError(w, apperr.Invalidf("inspections.Create", "JSON no válido"))
		return
	}

	rec, err := h.svc.Create(r.Context(), middleware.GetUserID(r), in)
	if err != nil {
		h.fail(w, "create inspection", err)
		return
	}
	h.log.Info("inspection saved",
		zap.String("id", rec.ID.String()),
		zap.Stringp("numero", rec.Number),
		zap.String("asset_id", rec.AssetID.String()))
	middleware.WriteJSON(w, http.StatusCreated, rec)
}

func (h *InspectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	rec, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, "get inspection", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, rec)
}

func (h *InspectionHandler) ListByAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	recs, err := h.svc.ListByAsset(r.Context(), assetID)
	if err != nil {
		h.fail(w, "list inspections by asset", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, recs)
}

func (h *InspectionHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := h.svc.ListMine(r.Context(), middleware.GetUserID(r), limit)
	if err != nil {
		h.fail(w, "list my inspections", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, recs)
}

func (h *InspectionHandler) PendingSync(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.PendingSync(r.Context())
	if err != nil {
		h.fail(w, "list pending inspections", err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, recs)
}

type statusReq struct {
	Estado models.InspectionStatus `json:"estado"`
}

func (h *InspectionHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	var req statusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, apperr.Invalidf("inspections.ChangeStatus", "JSON no válido"))
		return
	}
	rec, err := h.svc.ChangeStatus(r.Context(), id, req.Estado)
	if err != nil {
		h.fail(w, "change inspection status", err)
		return
	}
	h.log.Info("inspection status changed", zap.String("id", id.String()), zap.String("estado", string(req.Estado)))
	middleware.WriteJSON(w, http.StatusOK, rec)
}

func (h *InspectionHandler) MarkSynced(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.svc.MarkSynced(r.Context(), id); err != nil {
		h.fail(w, "mark inspection synced", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InspectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete inspection", err)
		return
	}
	h.log.Warn("inspection deleted", zap.String("id", id.String()), zap.String("by", middleware.GetClaims(r).Username))
	w.WriteHeader(http.StatusNoContent)
}
