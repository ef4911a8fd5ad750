package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/services"
)

type ProposalHandler struct {
	svc *services.ProposalService
	log *zap.Logger
}

func NewProposalHandler(svc *services.ProposalService, log *zap.Logger) *ProposalHandler {
	return &ProposalHandler{svc: svc, log: log}
}

func (h *ProposalHandler) Current(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Current(r.Context())
	if err != nil {
		if apperr.KindOf(err) == apperr.KindBackend {
			h.log.Error("load proposal", zap.Error(err))
		}
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, p)
}

// Health answers the client's connectivity probe.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
