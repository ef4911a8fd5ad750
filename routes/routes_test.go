package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/services"
	mock_services "p9e.in/assettrack/pkg/services/mocks"
)

const anonKey = "anon-test-key"

type fixture struct {
	handler     http.Handler
	tokens      *middleware.Tokens
	users       *mock_services.MockUserRepository
	catalog     *mock_services.MockCatalogRepository
	inspections *mock_services.MockInspectionRepository
	proposals   *mock_services.MockProposalRepository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		tokens:      middleware.NewTokens("test-secret"),
		users:       mock_services.NewMockUserRepository(ctrl),
		catalog:     mock_services.NewMockCatalogRepository(ctrl),
		inspections: mock_services.NewMockInspectionRepository(ctrl),
		proposals:   mock_services.NewMockProposalRepository(ctrl),
	}
	f.handler = RegisterRoutes(Deps{
		AnonKey:     anonKey,
		Tokens:      f.tokens,
		Auth:        services.NewAuthService(f.users),
		Catalog:     services.NewCatalogService(f.catalog),
		Inspections: services.NewInspectionService(f.inspections, f.catalog),
		Proposals:   services.NewProposalService(f.proposals),
		Log:         zap.NewNop(),
	})
	return f
}

func (f *fixture) token(t *testing.T, role models.UserRole) string {
	tok, err := f.tokens.GenerateToken(&models.User{ID: uuid.New(), Username: "Prueba 1", Role: role})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(middleware.APIKeyHeader, anonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresAnonKey(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginNeedsOnlyAnonKey(t *testing.T) {
	f := newFixture(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("SinergIA"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Username: "Prueba 1", PasswordHash: string(hash), Role: models.RoleTechnician}
	f.users.EXPECT().FindByUsername(gomock.Any(), "Prueba 1").Return(user, nil)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", `{"username":"Prueba 1","password":"SinergIA"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       uuid.UUID `json:"id"`
			Username string    `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := f.tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/v1/auth/me", "/api/v1/comunidades", "/api/v1/propuestas/actual", "/api/v1/inspecciones/mias"} {
		rec := f.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestListRegions(t *testing.T) {
	f := newFixture(t)
	f.catalog.EXPECT().ListRegions(gomock.Any()).Return([]models.Region{{ID: uuid.New(), Name: "Comunidad de Madrid"}}, nil)

	rec := f.do(http.MethodGet, "/api/v1/comunidades", "", f.token(t, models.RoleTechnician))
	require.Equal(t, http.StatusOK, rec.Code)

	var regions []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&regions))
	require.Len(t, regions, 1)
	assert.Equal(t, "Comunidad de Madrid", regions[0]["nombre"])
}

func TestStaticInspectionPathsBeatID(t *testing.T) {
	f := newFixture(t)
	f.inspections.EXPECT().ListPendingSync(gomock.Any()).Return([]models.Inspection{}, nil)

	rec := f.do(http.MethodGet, "/api/v1/inspecciones/pendientes", "", f.token(t, models.RoleViewer))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteInspectionIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	rec := f.do(http.MethodDelete, "/api/v1/inspecciones/"+id.String(), "", f.token(t, models.RoleTechnician))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	f.inspections.EXPECT().Delete(gomock.Any(), id).Return(nil)
	rec = f.do(http.MethodDelete, "/api/v1/inspecciones/"+id.String(), "", f.token(t, models.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSPreflightSkipsAuth(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/inspecciones", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "apikey")
}
