package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/assettrack/pkg/apperr"
)

type reading struct {
	AssetID       string   `json:"assetId"`
	HorasMotor    float64  `json:"horasMotor"`
	CorrienteFase *float64 `json:"corrienteFaseR"`
}

func TestDoSendsHeadersAndConvertsCasing(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inspecciones", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get(APIKeyHeader))
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"asset_id":"a1","horas_motor":9504,"corriente_fase_r":12.5}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "anon", srv.Client(), nil)
	c.SetToken("jwt")

	var out reading
	err := c.Post(context.Background(), "/inspecciones", reading{AssetID: "a1", HorasMotor: 9504}, &out)
	require.NoError(t, err)

	assert.Contains(t, gotBody, "asset_id")
	assert.Contains(t, gotBody, "horas_motor")
	assert.Contains(t, gotBody, "corriente_fase_r")
	assert.Equal(t, "a1", out.AssetID)
	assert.Equal(t, 9504.0, out.HorasMotor)
	require.NotNil(t, out.CorrienteFase)
	assert.Equal(t, 12.5, *out.CorrienteFase)
}

func TestDoDecodesErrorKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error":{"kind":"missing_signature","message":"Debe firmar"}}`)
	}))
	defer srv.Close()

	err := New(srv.URL, "anon", srv.Client(), nil).Post(context.Background(), "/inspecciones", map[string]any{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrMissingSignature))
	assert.False(t, apperr.Retryable(err))
}

func TestDoFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	err := New(srv.URL, "anon", srv.Client(), nil).Get(context.Background(), "/assets/x", url.Values{"a": {"b"}}, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestTransportFailureIsBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	err := New(addr, "anon", nil, nil).Health(context.Background())
	assert.Equal(t, apperr.KindBackend, apperr.KindOf(err))
	assert.True(t, apperr.Retryable(err))
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inspecciones/1/informe.pdf", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="R-20260001_M-3209.pdf"`)
		io.WriteString(w, "%PDF-1.3")
	}))
	defer srv.Close()

	data, hdr, err := New(srv.URL, "anon", srv.Client(), nil).Download(context.Background(), "/inspecciones/1/informe.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	assert.Contains(t, hdr.Get("Content-Disposition"), "R-20260001_M-3209.pdf")
}
