package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/client/session"
	"p9e.in/assettrack/pkg/apperr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct {
	restored string
	logouts  int
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (*session.User, string, error) {
	if username == "Prueba 1" && password == "SinergIA" {
		return &session.User{ID: "u1", Username: username, Role: "technician"}, "jwt-token", nil
	}
	return nil, "", apperr.New(apperr.KindInvalidCredentials, "login", "")
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	return errors.New("offline")
}

func (f *fakeAuth) Restore(token string) { f.restored = token }

func TestLoginDemoAccount(t *testing.T) {
	store := &session.Memory{}
	a := NewAuthStore(&fakeAuth{}, store, nil)

	require.NoError(t, a.Login(context.Background(), "Prueba 1", "SinergIA"))
	assert.True(t, a.IsAuthenticated())
	assert.Equal(t, "u1", a.User.ID)

	saved, _ := store.Load()
	assert.Equal(t, "jwt-token", saved.Token)
	assert.Equal(t, "Prueba 1", saved.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	a := NewAuthStore(&fakeAuth{}, &session.Memory{}, nil)
	err := a.Login(context.Background(), "Prueba 1", "otra")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.False(t, a.IsAuthenticated())
	assert.Nil(t, a.User)
}

func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	store := &session.Memory{}
	auth := &fakeAuth{}
	a := NewAuthStore(auth, store, nil)
	require.NoError(t, a.Login(context.Background(), "Prueba 1", "SinergIA"))

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.IsAuthenticated())
	assert.Equal(t, 1, auth.logouts)
	saved, _ := store.Load()
	assert.Empty(t, saved.Token)
	assert.Nil(t, saved.User)
}

func TestCheckAuthRestoresToken(t *testing.T) {
	store := &session.Memory{}
	require.NoError(t, store.Save(session.Data{User: &session.User{ID: "u1"}, Token: "jwt-token"}))
	auth := &fakeAuth{}
	a := NewAuthStore(auth, store, nil)

	require.NoError(t, a.CheckAuth())
	assert.True(t, a.IsAuthenticated())
	assert.Equal(t, "jwt-token", auth.restored)
}

type fakeCatalog struct{}

func (fakeCatalog) Regions(context.Context) ([]services.Region, error) {
	return []services.Region{{ID: "r1", Nombre: "Comunidad de Madrid"}}, nil
}

func (fakeCatalog) SitesByRegion(_ context.Context, regionID string) ([]services.Site, error) {
	return []services.Site{{ID: "s-" + regionID, ComunidadID: regionID, Nombre: "Madrid-Barajas", Codigo: "MAD"}}, nil
}

func (fakeCatalog) AssetsBySite(_ context.Context, siteID string) ([]services.Asset, error) {
	return []services.Asset{{ID: "a1", AeropuertoID: siteID, Codigo: "M-3209"}}, nil
}

type fakeInspections struct {
	calls []services.NewInspection
	err   error
}

func (f *fakeInspections) Create(_ context.Context, in services.NewInspection) (*services.Inspection, error) {
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	n := "R-20260001"
	return &services.Inspection{ID: "i1", NumeroInspeccion: &n, AssetID: in.AssetID, Estado: services.StatusCompleted, Sincronizado: true}, nil
}

func TestSelectionCascade(t *testing.T) {
	ctx := context.Background()
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)
	assert.Equal(t, NoRegion, s.Phase())

	require.NoError(t, s.LoadRegions(ctx))
	s.SelectRegion("r1")
	require.NoError(t, s.LoadSites(ctx))
	assert.Equal(t, RegionSelected, s.Phase())
	require.Len(t, s.Sites, 1)

	s.SelectSite(s.Sites[0].ID)
	require.NoError(t, s.LoadAssets(ctx))
	s.SelectAsset(&s.Assets[0])
	assert.Equal(t, AssetSelected, s.Phase())

	s.SelectSite("s-other")
	assert.Nil(t, s.SelectedAsset)
	assert.Nil(t, s.Assets)
	assert.Equal(t, SiteSelected, s.Phase())

	s.SelectAsset(&services.Asset{ID: "a2"})
	s.SelectRegion("r2")
	assert.Empty(t, s.SiteID)
	assert.Nil(t, s.SelectedAsset)
	assert.Nil(t, s.Sites)
	assert.Equal(t, RegionSelected, s.Phase())
}

func TestSelectAssetFixture(t *testing.T) {
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)

	s.SelectAsset(&services.Asset{ID: "a1", Codigo: DemoAssetCode})
	assert.Equal(t, 9504.0, *s.Draft.HorasMotor)
	assert.Equal(t, 5.1, *s.Draft.PresionAceite)
	assert.Equal(t, 62.0, *s.Draft.TemperaturaBloque)
	assert.Equal(t, 100.0, *s.Draft.NivelCombustible)
	assert.Equal(t, 400.0, *s.Draft.Tension)
	assert.Equal(t, 50.0, *s.Draft.Frecuencia)

	s.SelectAsset(&services.Asset{ID: "a2", Codigo: "B-2201"})
	assert.Equal(t, DefaultDraft(), s.Draft)
	assert.Equal(t, 0.0, *s.Draft.HorasMotor)
	assert.Equal(t, services.CheckOK, s.Draft.Checklist.TuboEscape)
}

func TestUpdateFormDataMergesSetFields(t *testing.T) {
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)
	s.SelectAsset(&services.Asset{ID: "a1", Codigo: DemoAssetCode})

	obs := "Fuga leve"
	s.UpdateFormData(Draft{HorasMotor: f64(9600), Observaciones: &obs})
	assert.Equal(t, 9600.0, *s.Draft.HorasMotor)
	assert.Equal(t, 5.1, *s.Draft.PresionAceite)
	assert.Equal(t, "Fuga leve", *s.Draft.Observaciones)
	assert.Equal(t, services.CheckOK, s.Draft.Checklist.NivelLubricante)
}

func TestUpdateCheckStatus(t *testing.T) {
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)
	require.NoError(t, s.UpdateCheckStatus("filtroAire", services.CheckDefective))
	assert.Equal(t, services.CheckDefective, s.Draft.Checklist.FiltroAire)

	assert.ErrorIs(t, s.UpdateCheckStatus("alternador", services.CheckOK), apperr.ErrInvalid)
	assert.ErrorIs(t, s.UpdateCheckStatus("filtroAire", "Roto"), apperr.ErrInvalid)
}

func TestSaveWithoutSignatureMakesNoCall(t *testing.T) {
	ins := &fakeInspections{}
	s := NewInspectionStore(fakeCatalog{}, ins, nil)
	s.SelectAsset(&services.Asset{ID: "a1", Codigo: DemoAssetCode})

	_, err := s.Save(context.Background(), &session.User{ID: "u1"})
	assert.ErrorIs(t, err, apperr.ErrMissingSignature)
	assert.Empty(t, ins.calls)

	blank := "  "
	s.UpdateFormData(Draft{FirmaTecnico: &blank})
	_, err = s.Save(context.Background(), &session.User{ID: "u1"})
	assert.ErrorIs(t, err, apperr.ErrMissingSignature)
	assert.Empty(t, ins.calls)
}

func TestSaveWithoutUser(t *testing.T) {
	ins := &fakeInspections{}
	s := NewInspectionStore(fakeCatalog{}, ins, nil)
	s.SelectAsset(&services.Asset{ID: "a1"})
	sig := "data:image/png;base64,AAA"
	s.UpdateFormData(Draft{FirmaTecnico: &sig})

	_, err := s.Save(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrNoSession)
	assert.Empty(t, ins.calls)
}

func TestSaveAppliesDefaults(t *testing.T) {
	ins := &fakeInspections{}
	s := NewInspectionStore(fakeCatalog{}, ins, nil)
	s.SelectAsset(&services.Asset{ID: "a1", Codigo: "B-2201"})
	s.Draft = Draft{}
	sig := "data:image/png;base64,AAA"
	s.UpdateFormData(Draft{FirmaTecnico: &sig, CorrienteFaseS: f64(80)})

	rec, err := s.Save(context.Background(), &session.User{ID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, services.StatusCompleted, rec.Estado)
	assert.True(t, rec.Sincronizado)
	assert.NotEmpty(t, *rec.NumeroInspeccion)
	assert.Same(t, rec, s.LastSaved)

	require.Len(t, ins.calls, 1)
	got := ins.calls[0]
	assert.Equal(t, "a1", got.AssetID)
	assert.Equal(t, 100.0, got.NivelCombustible)
	assert.Equal(t, 400.0, got.Tension)
	assert.Equal(t, 50.0, got.Frecuencia)
	assert.Equal(t, 0.0, got.HorasMotor)
	assert.Nil(t, got.CorrienteFaseR)
	assert.Equal(t, 80.0, *got.CorrienteFaseS)
	assert.Equal(t, services.CheckOK, got.FiltroAceite)
	assert.Equal(t, []string{}, got.RecambiosRealizados)
	assert.Equal(t, sig, got.FirmaTecnico)
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	ins := &fakeInspections{err: apperr.New(apperr.KindBackend, "create", "")}
	s := NewInspectionStore(fakeCatalog{}, ins, nil)
	s.SelectAsset(&services.Asset{ID: "a1", Codigo: DemoAssetCode})
	sig := "data:image/png;base64,AAA"
	s.UpdateFormData(Draft{FirmaTecnico: &sig})
	before := s.Draft

	_, err := s.Save(context.Background(), &session.User{ID: "u1"})
	assert.True(t, apperr.Retryable(err))
	assert.Equal(t, before, s.Draft)
	assert.False(t, s.Saving)
	assert.NotNil(t, s.SelectedAsset)
}

func TestResetForm(t *testing.T) {
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)
	s.SelectRegion("r1")
	s.SelectSite("s1")
	s.SelectAsset(&services.Asset{ID: "a1", Codigo: DemoAssetCode})
	s.ResetForm()
	assert.Equal(t, NoRegion, s.Phase())
	assert.Equal(t, DefaultDraft(), s.Draft)

	s.SetOnline(false)
	assert.False(t, s.Online)
}

func TestStaleSitesAreDropped(t *testing.T) {
	s := NewInspectionStore(fakeCatalog{}, &fakeInspections{}, nil)
	s.SelectRegion("r1")
	s.SelectRegion("r2")
	assert.False(t, s.SetSites("r1", []services.Site{{ID: "s1"}}))
	assert.Nil(t, s.Sites)
	assert.True(t, s.SetSites("r2", []services.Site{{ID: "s2"}}))
	assert.Len(t, s.Sites, 1)
}
