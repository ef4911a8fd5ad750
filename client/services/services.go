// Package services holds the client's domain calls, one method per backend
// query or mutation.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"p9e.in/assettrack/client/backend"
	"p9e.in/assettrack/pkg/apperr"
)

// API is the part of backend.Client the services use.
type API interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	Download(ctx context.Context, path string, query url.Values) ([]byte, http.Header, error)
	SetToken(token string)
}

var _ API = (*backend.Client)(nil)

// list GETs path and decodes a JSON array.
func list[T any](ctx context.Context, api API, path string, query url.Values) ([]T, error) {
	var out []T
	if err := api.Do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type AuthService struct{ api API }

func NewAuthService(api API) *AuthService { return &AuthService{api: api} }

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login checks the credentials and returns the user and session token. The
// token is installed on the API client.
func (s *AuthService) Login(ctx context.Context, username, password string) (*User, string, error) {
	var resp loginResponse
	body := map[string]string{"username": username, "password": password}
	if err := s.api.Do(ctx, http.MethodPost, "/auth/login", nil, body, &resp); err != nil {
		return nil, "", err
	}
	s.api.SetToken(resp.Token)
	return &resp.User, resp.Token, nil
}

// Restore installs a token saved by a previous session.
func (s *AuthService) Restore(token string) {
	s.api.SetToken(token)
}

func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.api.Do(ctx, http.MethodGet, "/auth/me", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout tells the backend and drops the token locally whatever it answers.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.api.Do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	s.api.SetToken("")
	return err
}

type AssetService struct{ api API }

func NewAssetService(api API) *AssetService { return &AssetService{api: api} }

func (s *AssetService) Regions(ctx context.Context) ([]Region, error) {
	return list[Region](ctx, s.api, "/comunidades", nil)
}

func (s *AssetService) SitesByRegion(ctx context.Context, regionID string) ([]Site, error) {
	return list[Site](ctx, s.api, "/comunidades/"+url.PathEscape(regionID)+"/aeropuertos", nil)
}

// NearbySites orders airports by distance from (lat, lng).
func (s *AssetService) NearbySites(ctx context.Context, lat, lng float64, limit int) ([]Site, error) {
	q := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng": {strconv.FormatFloat(lng, 'f', -1, 64)},
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return list[Site](ctx, s.api, "/aeropuertos/cercanos", q)
}

func (s *AssetService) AssetsBySite(ctx context.Context, siteID string) ([]Asset, error) {
	return list[Asset](ctx, s.api, "/aeropuertos/"+url.PathEscape(siteID)+"/assets", nil)
}

func (s *AssetService) AssetByID(ctx context.Context, id string) (*Asset, error) {
	var out Asset
	if err := s.api.Do(ctx, http.MethodGet, "/assets/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssetByCode returns nil, nil when no active asset has code.
func (s *AssetService) AssetByCode(ctx context.Context, code string) (*Asset, error) {
	var out Asset
	err := s.api.Do(ctx, http.MethodGet, "/assets/codigo/"+url.PathEscape(code), nil, nil, &out)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type InspectionService struct{ api API }

func NewInspectionService(api API) *InspectionService { return &InspectionService{api: api} }

// Create saves in. The technician is the token's user.
func (s *InspectionService) Create(ctx context.Context, in NewInspection) (*Inspection, error) {
	var out Inspection
	if err := s.api.Do(ctx, http.MethodPost, "/inspecciones", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InspectionService) ByID(ctx context.Context, id string) (*Inspection, error) {
	var out Inspection
	if err := s.api.Do(ctx, http.MethodGet, "/inspecciones/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InspectionService) ByAsset(ctx context.Context, assetID string) ([]Inspection, error) {
	return list[Inspection](ctx, s.api, "/assets/"+url.PathEscape(assetID)+"/inspecciones", nil)
}

// Mine lists the signed-in technician's latest inspections; limit <= 0 uses
// the backend default of 20.
func (s *InspectionService) Mine(ctx context.Context, limit int) ([]Inspection, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	return list[Inspection](ctx, s.api, "/inspecciones/mias", q)
}

func (s *InspectionService) PendingSync(ctx context.Context) ([]Inspection, error) {
	return list[Inspection](ctx, s.api, "/inspecciones/pendientes", nil)
}

func (s *InspectionService) ChangeStatus(ctx context.Context, id string, status InspectionStatus) (*Inspection, error) {
	var out Inspection
	body := map[string]InspectionStatus{"estado": status}
	if err := s.api.Do(ctx, http.MethodPatch, "/inspecciones/"+url.PathEscape(id)+"/estado", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *InspectionService) MarkSynced(ctx context.Context, id string) error {
	return s.api.Do(ctx, http.MethodPost, "/inspecciones/"+url.PathEscape(id)+"/sincronizar", nil, nil, nil)
}

func (s *InspectionService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, http.MethodDelete, "/inspecciones/"+url.PathEscape(id), nil, nil, nil)
}

// Report downloads the PDF of inspection id with its suggested file name.
func (s *InspectionService) Report(ctx context.Context, id string) ([]byte, string, error) {
	data, hdr, err := s.api.Download(ctx, "/inspecciones/"+url.PathEscape(id)+"/informe.pdf", nil)
	if err != nil {
		return nil, "", err
	}
	return data, attachmentName(hdr, id+".pdf"), nil
}

// Export downloads the spreadsheet of inspections, optionally for one asset.
func (s *InspectionService) Export(ctx context.Context, assetID string) ([]byte, string, error) {
	var q url.Values
	if assetID != "" {
		q = url.Values{"asset_id": {assetID}}
	}
	data, hdr, err := s.api.Download(ctx, "/inspecciones/export.xlsx", q)
	if err != nil {
		return nil, "", err
	}
	return data, attachmentName(hdr, "inspecciones.xlsx"), nil
}

func attachmentName(hdr http.Header, fallback string) string {
	_, params, err := mime.ParseMediaType(hdr.Get("Content-Disposition"))
	if err != nil || params["filename"] == "" {
		return fallback
	}
	return params["filename"]
}

type ProposalService struct{ api API }

func NewProposalService(api API) *ProposalService { return &ProposalService{api: api} }

// Current returns the proposal shown on the dashboard.
func (s *ProposalService) Current(ctx context.Context) (*Proposal, error) {
	var out Proposal
	if err := s.api.Do(ctx, http.MethodGet, "/propuestas/actual", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CostItem struct {
	Label string
	Value float64
}

// CostBreakdown lists the five cost entries; missing ones count as zero.
func CostBreakdown(p *Proposal) []CostItem {
	return []CostItem{
		{"Desarrollo", orZero(p.CosteDesarrollo)},
		{"Backend", orZero(p.CosteBackend)},
		{"Integración", orZero(p.CosteIntegracion)},
		{"Capacitación", orZero(p.CosteCapacitacion)},
		{"Soporte", orZero(p.CosteSoporte)},
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FormatEuros renders 48500 as "48.500 €".
func FormatEuros(v float64) string {
	n := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := false
	if n[0] == '-' {
		neg, n = true, n[1:]
	}
	var out []byte
	for i := range n {
		if i > 0 && (len(n)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, n[i])
	}
	s := string(out)
	if neg {
		s = "-" + s
	}
	return fmt.Sprintf("%s €", s)
}
