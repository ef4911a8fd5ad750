package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"p9e.in/assettrack/handlers"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/services"
	"p9e.in/assettrack/pkg/storage"
)

// Deps is everything the router needs to build its handlers.
type Deps struct {
	AnonKey     string
	Tokens      *middleware.Tokens
	Auth        *services.AuthService
	Catalog     *services.CatalogService
	Inspections *services.InspectionService
	Proposals   *services.ProposalService
	Archive     storage.Archive
	Logo        []byte
	Log         *zap.Logger
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(d Deps) http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no api key)
	// =====================================================
	r.HandleFunc("/health", handlers.Health).Methods("GET")

	// =====================================================
	// Anonymous API (api key only)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware(d.AnonKey, d.Log))

	auth := handlers.NewAuthHandler(d.Auth, d.Tokens, d.Log)
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	protected := api.NewRoute().Subrouter()
	protected.Use(d.Tokens.JWTMiddleware)

	protected.HandleFunc("/auth/me", auth.Me).Methods("GET")
	protected.HandleFunc("/auth/logout", auth.Logout).Methods("POST")

	registerCatalogRoutes(protected, handlers.NewCatalogHandler(d.Catalog, d.Log))
	registerInspectionRoutes(protected,
		handlers.NewInspectionHandler(d.Inspections, d.Log),
		handlers.NewReportHandler(d.Inspections, d.Archive, d.Logo, d.Log))

	proposals := handlers.NewProposalHandler(d.Proposals, d.Log)
	protected.HandleFunc("/propuestas/actual", proposals.Current).Methods("GET")

	return middleware.CORS(middleware.RequestLogger(d.Log)(r))
}

func registerCatalogRoutes(api *mux.Router, h *handlers.CatalogHandler) {
	api.HandleFunc("/comunidades", h.ListRegions).Methods("GET")
	api.HandleFunc("/comunidades/{id}/aeropuertos", h.ListSites).Methods("GET")
	api.HandleFunc("/aeropuertos/cercanos", h.NearbySites).Methods("GET")
	api.HandleFunc("/aeropuertos/{id}/assets", h.ListAssets).Methods("GET")
	api.HandleFunc("/assets/codigo/{codigo}", h.GetAssetByCode).Methods("GET")
	api.HandleFunc("/assets/{id}", h.GetAsset).Methods("GET")
}

func registerInspectionRoutes(api *mux.Router, h *handlers.InspectionHandler, reports *handlers.ReportHandler) {
	api.HandleFunc("/assets/{id}/inspecciones", h.ListByAsset).Methods("GET")

	api.HandleFunc("/inspecciones", h.Create).Methods("POST")
	api.HandleFunc("/inspecciones/mias", h.ListMine).Methods("GET")
	api.HandleFunc("/inspecciones/pendientes", h.PendingSync).Methods("GET")
	api.HandleFunc("/inspecciones/export.xlsx", reports.ExportXLSX).Methods("GET")
	api.HandleFunc("/inspecciones/{id}", h.Get).Methods("GET")
	api.HandleFunc("/inspecciones/{id}/informe.pdf", reports.InspectionPDF).Methods("GET")
	api.HandleFunc("/inspecciones/{id}/estado", h.ChangeStatus).Methods("PATCH")
	api.HandleFunc("/inspecciones/{id}/sincronizar", h.MarkSynced).Methods("POST")

	adminOnly := []models.UserRole{models.RoleAdmin}
	api.Handle("/inspecciones/{id}",
		middleware.RequireRole(adminOnly, http.HandlerFunc(h.Delete))).Methods("DELETE")
}
