package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
)

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestJWTMiddleware(t *testing.T) {
	tokens := NewTokens("test-secret")
	user := &models.User{ID: uuid.New(), Username: "Prueba 1", Role: models.RoleTechnician}
	token, err := tokens.GenerateToken(user)
	require.NoError(t, err)

	var seen *Claims
	h := tokens.JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaims(r)
		assert.Equal(t, user.ID, GetUserID(r))
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "Prueba 1", seen.Username)
		assert.Equal(t, "technician", seen.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, apperr.KindNoSession, decodeError(t, rr).Error.Kind)
	})

	t.Run("bare user id is not a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+user.ID.String())
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokens("test-secret")
		old.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		expired, err := old.GenerateToken(user)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("other secret", func(t *testing.T) {
		forged, err := NewTokens("other").GenerateToken(user)
		require.NoError(t, err)
		_, err = tokens.Parse(forged)
		assert.ErrorIs(t, err, apperr.ErrNoSession)
	})
}

func TestRequireRole(t *testing.T) {
	h := RequireRole([]models.UserRole{models.RoleAdmin}, http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &Claims{Role: "technician"}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apperr.KindForbidden, decodeError(t, rr).Error.Kind)

	req = req.WithContext(WithClaims(req.Context(), &Claims{Role: "admin"}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestSecurityMiddleware(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := SecurityMiddleware("anon-key", zap.New(core))(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comunidades", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 1, logs.FilterMessage("blocked request with invalid api key").Len())

	req.Header.Set(APIKeyHeader, "anon-key")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/assets/x", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[0].ContextMap()["status"])
}

func TestWriteErrorHidesBackendCause(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, apperr.Wrap(apperr.KindBackend, "db", assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, apperr.KindBackend, body.Error.Kind)
	assert.Equal(t, "internal error", body.Error.Message)
}

func TestCORSPreflight(t *testing.T) {
	rr := httptest.NewRecorder()
	CORS(http.HandlerFunc(okHandler)).ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/v1/inspecciones", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "apikey")
}
