package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/assettrack/client/config"
	"p9e.in/assettrack/pkg/apperr"
)

// fakeBackend answers the handful of endpoints the commands call.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer jwt-token" {
				w.WriteHeader(http.StatusUnauthorized)
				writeJSON(w, map[string]any{"error": map[string]string{"kind": "no_session", "message": "no session"}})
				return
			}
			next(w, r)
		}
	}

	handle(mux, "POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "SinergIA" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]any{"error": map[string]string{"kind": "invalid_credentials", "message": "bad"}})
			return
		}
		writeJSON(w, map[string]any{
			"token": "jwt-token",
			"user": map[string]any{
				"id": "u1", "username": body["username"], "email": "prueba@example.com",
				"role": "technician", "full_name": "Técnico Prueba",
			},
		})
	})
	handle(mux, "GET /api/v1/comunidades", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": "r1", "nombre": "Comunidad de Madrid", "codigo": "MD"}})
	}))
	handle(mux, "GET /api/v1/inspecciones/i1/informe.pdf", authed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="R-20260001_M-3209.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.3"))
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, apiURL string) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("ASSETTRACK_API_URL", apiURL)
	t.Setenv("ASSETTRACK_API_KEY", "anon")
	t.Setenv("ASSETTRACK_SESSION_FILE", filepath.Join(dir, "cfg", "session.yaml"))
	t.Setenv("ASSETTRACK_REPORT_DIR", filepath.Join(dir, "informes"))
	t.Setenv("ASSETTRACK_LOG_FILE", filepath.Join(dir, "log", "assettrack.log"))
	t.Setenv("ASSETTRACK_LOG_LEVEL", "debug")
	return dir
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsNeedSession(t *testing.T) {
	srv := fakeBackend(t)
	setupEnv(t, srv.URL)

	_, err := execute("regions")
	assert.ErrorIs(t, err, apperr.ErrNoSession)
}

func TestLoginThenListRegions(t *testing.T) {
	srv := fakeBackend(t)
	dir := setupEnv(t, srv.URL)

	out, err := execute("login", "-u", "Prueba 1", "-p", "SinergIA")
	require.NoError(t, err)
	assert.Contains(t, out, "Sesión iniciada como Técnico Prueba")

	saved, err := os.ReadFile(filepath.Join(dir, "cfg", "session.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), "auth_token: jwt-token")

	// A fresh invocation restores the token from the session file.
	out, err = execute("regions")
	require.NoError(t, err)
	assert.Contains(t, out, "Comunidad de Madrid")
	assert.Contains(t, out, "MD")
}

func TestRejectedTokenClearsSession(t *testing.T) {
	srv := fakeBackend(t)
	dir := setupEnv(t, srv.URL)

	_, err := execute("login", "-u", "Prueba 1", "-p", "SinergIA")
	require.NoError(t, err)

	path := filepath.Join(dir, "cfg", "session.yaml")
	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(string(saved), "jwt-token", "expired-token")), 0o600))

	_, err = execute("regions")
	require.ErrorIs(t, err, apperr.ErrNoSession)

	var out bytes.Buffer
	reportFailure(&out, err)
	assert.Contains(t, out.String(), "No hay usuario autenticado")
	assert.Contains(t, out.String(), "assettrack login")
	assert.False(t, env.authStore.IsAuthenticated())
	assert.NoFileExists(t, path)
}

func TestReportFailureWithoutSessionHint(t *testing.T) {
	srv := fakeBackend(t)
	setupEnv(t, srv.URL)

	_, err := execute("login", "-u", "Prueba 1", "-p", "otra")
	require.Error(t, err)

	var out bytes.Buffer
	reportFailure(&out, err)
	assert.Contains(t, out.String(), "Usuario o contraseña incorrectos")
	assert.NotContains(t, out.String(), "assettrack login")
}

func TestLoginWrongPassword(t *testing.T) {
	srv := fakeBackend(t)
	setupEnv(t, srv.URL)

	_, err := execute("login", "-u", "Prueba 1", "-p", "otra")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Equal(t, "Usuario o contraseña incorrectos", userMessage(err))
}

func TestReportDownload(t *testing.T) {
	srv := fakeBackend(t)
	dir := setupEnv(t, srv.URL)

	_, err := execute("login", "-u", "Prueba 1", "-p", "SinergIA")
	require.NoError(t, err)

	out, err := execute("report", "i1")
	require.NoError(t, err)
	assert.Contains(t, out, "R-20260001_M-3209.pdf")

	data, err := os.ReadFile(filepath.Join(dir, "informes", "R-20260001_M-3209.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestMissingConfig(t *testing.T) {
	setupEnv(t, "")
	_, err := execute("regions")
	assert.ErrorIs(t, err, config.ErrMissingEnv)
}

func TestParseLatLng(t *testing.T) {
	lat, lng, err := parseLatLng("40.47, -3.56")
	require.NoError(t, err)
	assert.Equal(t, 40.47, lat)
	assert.Equal(t, -3.56, lng)

	for _, bad := range []string{"", "40.47", "91,0", "0,181", "a,b"} {
		_, _, err := parseLatLng(bad)
		assert.ErrorIs(t, err, apperr.ErrInvalid, bad)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// handle registers a "METHOD /path" route on mux (stand-in for the
// method-aware patterns of Go 1.22's ServeMux).
func handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	method, path, _ := strings.Cut(pattern, " ")
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	})
}
