package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/assettrack/client/backend"
	"p9e.in/assettrack/pkg/apperr"
)

func newAPI(t *testing.T, h http.HandlerFunc) *backend.Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, "anon", srv.Client(), nil)
}

func fptr(v float64) *float64 { return &v }

func TestLoginInstallsToken(t *testing.T) {
	var calls []string
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path+" "+r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/v1/auth/login":
			io.WriteString(w, `{"token":"jwt","user":{"id":"u1","username":"Prueba 1","full_name":"Técnico Prueba","role":"technician"}}`)
		default:
			io.WriteString(w, `{"id":"u1","username":"Prueba 1"}`)
		}
	})

	auth := NewAuthService(api)
	user, token, err := auth.Login(context.Background(), "Prueba 1", "SinergIA")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.Equal(t, "Técnico Prueba", user.DisplayName())

	_, err = auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v1/auth/login ", "/api/v1/auth/me Bearer jwt"}, calls)
}

func TestLoginRejected(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"kind":"invalid_credentials","message":"Usuario o contraseña incorrectos"}}`)
	})
	_, _, err := NewAuthService(api).Login(context.Background(), "Prueba 1", "otra")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Empty(t, api.Token())
}

func TestAssetByCodeMissingIsNil(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"kind":"not_found","message":"No encontrado"}}`)
	})
	asset, err := NewAssetService(api).AssetByCode(context.Background(), "Z-0000")
	assert.NoError(t, err)
	assert.Nil(t, asset)
}

func TestSitesDecodeCamelCase(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/aeropuertos/cercanos", r.URL.Path)
		assert.Equal(t, "40.4168", r.URL.Query().Get("lat"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		io.WriteString(w, `[{"id":"s1","comunidad_id":"r1","nombre":"Madrid-Barajas","codigo":"MAD","distancia_metros":13200.5}]`)
	})
	sites, err := NewAssetService(api).NearbySites(context.Background(), 40.4168, -3.7038, 3)
	require.NoError(t, err)
	want := []Site{{ID: "s1", ComunidadID: "r1", Nombre: "Madrid-Barajas", Codigo: "MAD", DistanciaMetros: 13200.5}}
	if diff := cmp.Diff(want, sites); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateSendsSnakeCase(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a1", body["asset_id"])
		assert.Equal(t, "OK", body["nivel_lubricante"])
		assert.Equal(t, 12.0, body["corriente_fase_r"])
		assert.Contains(t, body, "firma_tecnico")

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"i1","numero_inspeccion":"R-20260001","asset_id":"a1","estado":"completada","sincronizado":true,"nivel_lubricante":"OK","recambios_realizados":[]}`)
	})

	in := NewInspection{AssetID: "a1", CorrienteFaseR: fptr(12), FirmaTecnico: "data:image/png;base64,AAA"}
	in.NivelLubricante = CheckOK
	rec, err := NewInspectionService(api).Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "R-20260001", *rec.NumeroInspeccion)
	assert.Equal(t, StatusCompleted, rec.Estado)
	assert.True(t, rec.Sincronizado)
	assert.Equal(t, CheckOK, rec.NivelLubricante)
}

func TestReportFileName(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="R-20260001_M-3209.pdf"`)
		io.WriteString(w, "%PDF-")
	})
	data, name, err := NewInspectionService(api).Report(context.Background(), "i1")
	require.NoError(t, err)
	assert.Equal(t, "R-20260001_M-3209.pdf", name)
	assert.Equal(t, "%PDF-", string(data))
}

func TestCostBreakdown(t *testing.T) {
	p := &Proposal{CosteDesarrollo: fptr(30000), CosteSoporte: fptr(2500)}
	got := CostBreakdown(p)
	want := []CostItem{
		{"Desarrollo", 30000},
		{"Backend", 0},
		{"Integración", 0},
		{"Capacitación", 0},
		{"Soporte", 2500},
	}
	assert.Equal(t, want, got)
}

func TestFormatEuros(t *testing.T) {
	assert.Equal(t, "48.500 €", FormatEuros(48500))
	assert.Equal(t, "950 €", FormatEuros(950))
	assert.Equal(t, "1.234.568 €", FormatEuros(1234567.8))
}

func TestChecklistField(t *testing.T) {
	var c Checklist
	for _, f := range CheckFields {
		require.NotNil(t, c.Field(f.Key), f.Key)
	}
	*c.Field("tuboEscape") = CheckReplaced
	assert.Equal(t, CheckReplaced, c.TuboEscape)
	assert.Nil(t, c.Field("alternador"))
}
