package state

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/client/session"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/readings"
)

// DemoAssetCode is the asset whose draft starts from real readings.
const DemoAssetCode = "M-3209"

type Phase int

const (
	NoRegion Phase = iota
	RegionSelected
	SiteSelected
	AssetSelected
)

// Catalog loads the selection options.
type Catalog interface {
	Regions(ctx context.Context) ([]services.Region, error)
	SitesByRegion(ctx context.Context, regionID string) ([]services.Site, error)
	AssetsBySite(ctx context.Context, siteID string) ([]services.Asset, error)
}

type Inspections interface {
	Create(ctx context.Context, in services.NewInspection) (*services.Inspection, error)
}

// Draft is the inspection being captured. Nil fields are unspecified and get
// FormDefaults on save.
type Draft struct {
	HorasMotor        *float64
	PresionAceite     *float64
	TemperaturaBloque *float64
	NivelCombustible  *float64
	Tension           *float64
	Frecuencia        *float64
	CorrienteFaseR    *float64
	CorrienteFaseS    *float64
	CorrienteFaseT    *float64

	// Empty entries are unspecified.
	Checklist services.Checklist

	RecambiosRealizados []string
	Observaciones       *string
	NotasTecnicas       *string
	FirmaTecnico        *string
	FirmaCliente        *string
}

func f64(v float64) *float64 { return &v }

// DefaultDraft is the form for any asset: zero readings, full tank, 400 V,
// 50 Hz and every check OK.
func DefaultDraft() Draft {
	std := readings.Standard
	return Draft{
		HorasMotor:          f64(std.EngineHours),
		PresionAceite:       f64(std.OilPressure),
		TemperaturaBloque:   f64(std.BlockTemperature),
		NivelCombustible:    f64(std.FuelLevel),
		Tension:             f64(std.Voltage),
		Frecuencia:          f64(std.Frequency),
		Checklist:           allOK(),
		RecambiosRealizados: []string{},
	}
}

func demoDraft() Draft {
	d := DefaultDraft()
	d.HorasMotor = f64(9504)
	d.PresionAceite = f64(5.1)
	d.TemperaturaBloque = f64(62)
	return d
}

func allOK() services.Checklist {
	var c services.Checklist
	for _, f := range services.CheckFields {
		*c.Field(f.Key) = services.CheckOK
	}
	return c
}

// FormDefaults fills what the technician left unspecified at submit time.
// Phase currents have no default.
type FormDefaults struct {
	HorasMotor        float64
	PresionAceite     float64
	TemperaturaBloque float64
	NivelCombustible  float64
	Tension           float64
	Frecuencia        float64
	Check             services.CheckStatus
}

var Defaults = FormDefaults{
	HorasMotor:        readings.Standard.EngineHours,
	PresionAceite:     readings.Standard.OilPressure,
	TemperaturaBloque: readings.Standard.BlockTemperature,
	NivelCombustible:  readings.Standard.FuelLevel,
	Tension:           readings.Standard.Voltage,
	Frecuencia:        readings.Standard.Frequency,
	Check:             services.CheckOK,
}

// Apply builds the create request for assetID from d.
func (fd FormDefaults) Apply(assetID string, d Draft) services.NewInspection {
	or := readings.Or
	in := services.NewInspection{
		AssetID:             assetID,
		HorasMotor:          or(d.HorasMotor, fd.HorasMotor),
		PresionAceite:       or(d.PresionAceite, fd.PresionAceite),
		TemperaturaBloque:   or(d.TemperaturaBloque, fd.TemperaturaBloque),
		NivelCombustible:    or(d.NivelCombustible, fd.NivelCombustible),
		Tension:             or(d.Tension, fd.Tension),
		Frecuencia:          or(d.Frecuencia, fd.Frecuencia),
		CorrienteFaseR:      d.CorrienteFaseR,
		CorrienteFaseS:      d.CorrienteFaseS,
		CorrienteFaseT:      d.CorrienteFaseT,
		Checklist:           d.Checklist,
		RecambiosRealizados: d.RecambiosRealizados,
		Observaciones:       d.Observaciones,
		NotasTecnicas:       d.NotasTecnicas,
		FirmaCliente:        d.FirmaCliente,
	}
	if in.RecambiosRealizados == nil {
		in.RecambiosRealizados = []string{}
	}
	for _, f := range services.CheckFields {
		if st := in.Checklist.Field(f.Key); *st == "" {
			*st = fd.Check
		}
	}
	if d.FirmaTecnico != nil {
		in.FirmaTecnico = *d.FirmaTecnico
	}
	return in
}

// InspectionStore is the selection cascade plus the draft form.
type InspectionStore struct {
	catalog     Catalog
	inspections Inspections
	log         *zap.Logger

	Regions []services.Region
	Sites   []services.Site
	Assets  []services.Asset

	RegionID      string
	SiteID        string
	SelectedAsset *services.Asset

	Draft     Draft
	Online    bool
	Saving    bool
	LastSaved *services.Inspection
}

func NewInspectionStore(catalog Catalog, inspections Inspections, log *zap.Logger) *InspectionStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &InspectionStore{catalog: catalog, inspections: inspections, log: log, Draft: DefaultDraft(), Online: true}
}

func (s *InspectionStore) Phase() Phase {
	switch {
	case s.SelectedAsset != nil:
		return AssetSelected
	case s.SiteID != "":
		return SiteSelected
	case s.RegionID != "":
		return RegionSelected
	default:
		return NoRegion
	}
}

func (s *InspectionStore) LoadRegions(ctx context.Context) error {
	regions, err := s.catalog.Regions(ctx)
	if err != nil {
		return err
	}
	s.Regions = regions
	return nil
}

// SelectRegion picks a region and clears the site and asset below it.
func (s *InspectionStore) SelectRegion(id string) {
	s.RegionID = id
	s.SiteID = ""
	s.SelectedAsset = nil
	s.Sites = nil
	s.Assets = nil
}

// LoadSites fetches the airports of the selected region.
func (s *InspectionStore) LoadSites(ctx context.Context) error {
	if s.RegionID == "" {
		s.Sites = nil
		return nil
	}
	sites, err := s.catalog.SitesByRegion(ctx, s.RegionID)
	if err != nil {
		return err
	}
	s.SetSites(s.RegionID, sites)
	return nil
}

// SetSites stores sites fetched for regionID. A result for a region that is
// no longer selected is dropped.
func (s *InspectionStore) SetSites(regionID string, sites []services.Site) bool {
	if regionID != s.RegionID {
		return false
	}
	s.Sites = sites
	return true
}

// SelectSite picks an airport and clears the asset.
func (s *InspectionStore) SelectSite(id string) {
	s.SiteID = id
	s.SelectedAsset = nil
	s.Assets = nil
}

func (s *InspectionStore) LoadAssets(ctx context.Context) error {
	if s.SiteID == "" {
		s.Assets = nil
		return nil
	}
	assets, err := s.catalog.AssetsBySite(ctx, s.SiteID)
	if err != nil {
		return err
	}
	s.SetAssets(s.SiteID, assets)
	return nil
}

// SetAssets stores assets fetched for siteID, dropping stale results.
func (s *InspectionStore) SetAssets(siteID string, assets []services.Asset) bool {
	if siteID != s.SiteID {
		return false
	}
	s.Assets = assets
	return true
}

// SelectAsset picks the asset and starts a fresh draft for it.
func (s *InspectionStore) SelectAsset(a *services.Asset) {
	s.SelectedAsset = a
	s.LastSaved = nil
	if a != nil && a.Codigo == DemoAssetCode {
		s.Draft = demoDraft()
		return
	}
	s.Draft = DefaultDraft()
}

// UpdateFormData merges the set fields of patch into the draft.
func (s *InspectionStore) UpdateFormData(patch Draft) {
	d := &s.Draft
	mergeF := func(dst **float64, v *float64) {
		if v != nil {
			*dst = v
		}
	}
	mergeS := func(dst **string, v *string) {
		if v != nil {
			*dst = v
		}
	}
	mergeF(&d.HorasMotor, patch.HorasMotor)
	mergeF(&d.PresionAceite, patch.PresionAceite)
	mergeF(&d.TemperaturaBloque, patch.TemperaturaBloque)
	mergeF(&d.NivelCombustible, patch.NivelCombustible)
	mergeF(&d.Tension, patch.Tension)
	mergeF(&d.Frecuencia, patch.Frecuencia)
	mergeF(&d.CorrienteFaseR, patch.CorrienteFaseR)
	mergeF(&d.CorrienteFaseS, patch.CorrienteFaseS)
	mergeF(&d.CorrienteFaseT, patch.CorrienteFaseT)
	for _, f := range services.CheckFields {
		if v := *patch.Checklist.Field(f.Key); v != "" {
			*d.Checklist.Field(f.Key) = v
		}
	}
	if patch.RecambiosRealizados != nil {
		d.RecambiosRealizados = patch.RecambiosRealizados
	}
	mergeS(&d.Observaciones, patch.Observaciones)
	mergeS(&d.NotasTecnicas, patch.NotasTecnicas)
	mergeS(&d.FirmaTecnico, patch.FirmaTecnico)
	mergeS(&d.FirmaCliente, patch.FirmaCliente)
}

// UpdateCheckStatus sets one checklist entry by its camelCase key.
func (s *InspectionStore) UpdateCheckStatus(field string, status services.CheckStatus) error {
	const op = "inspection.UpdateCheckStatus"
	dst := s.Draft.Checklist.Field(field)
	if dst == nil {
		return apperr.Invalidf(op, "Campo desconocido: %s", field)
	}
	if !status.Valid() {
		return apperr.Invalidf(op, "Valor no válido: %q", status)
	}
	*dst = status
	return nil
}

// ResetForm clears the selection and the draft together.
func (s *InspectionStore) ResetForm() {
	s.SelectRegion("")
	s.Draft = DefaultDraft()
	s.LastSaved = nil
}

// SetOnline records the connectivity indicator. Nothing else reads it.
func (s *InspectionStore) SetOnline(online bool) {
	s.Online = online
}

// Prepare checks the save preconditions and builds the request. The
// signature is checked before the session so an unsigned form never reaches
// the backend.
func (s *InspectionStore) Prepare(user *session.User) (services.NewInspection, error) {
	const op = "inspection.Save"
	if s.SelectedAsset == nil {
		return services.NewInspection{}, apperr.Invalidf(op, "No hay activo seleccionado")
	}
	if s.Draft.FirmaTecnico == nil || strings.TrimSpace(*s.Draft.FirmaTecnico) == "" {
		return services.NewInspection{}, apperr.New(apperr.KindMissingSignature, op, "")
	}
	if user == nil || user.ID == "" {
		return services.NewInspection{}, apperr.New(apperr.KindNoSession, op, "")
	}
	return Defaults.Apply(s.SelectedAsset.ID, s.Draft), nil
}

// Submit sends a prepared request. It does not touch the store.
func (s *InspectionStore) Submit(ctx context.Context, in services.NewInspection) (*services.Inspection, error) {
	return s.inspections.Create(ctx, in)
}

// Saved records the outcome of Submit. The draft is kept either way.
func (s *InspectionStore) Saved(rec *services.Inspection, err error) error {
	s.Saving = false
	if err != nil {
		code := ""
		if s.SelectedAsset != nil {
			code = s.SelectedAsset.Codigo
		}
		s.log.Error("save inspection", zap.String("asset", code), zap.Error(err))
		return err
	}
	s.LastSaved = rec
	s.log.Info("inspection saved", zap.Stringp("numero", rec.NumeroInspeccion))
	return nil
}

// Save submits the draft as technician user.
func (s *InspectionStore) Save(ctx context.Context, user *session.User) (*services.Inspection, error) {
	in, err := s.Prepare(user)
	if err != nil {
		return nil, err
	}
	s.Saving = true
	rec, err := s.Submit(ctx, in)
	if err := s.Saved(rec, err); err != nil {
		return nil, err
	}
	return rec, nil
}
