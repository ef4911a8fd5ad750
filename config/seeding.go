package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"p9e.in/assettrack/models"
)

// DemoPassword is the password of the seeded demo accounts.
const DemoPassword = "SinergIA"

// SeedDemoData loads the demo users, catalogue and proposal. Existing rows
// (matched by username or code) are left alone, so it is safe to run on
// every start.
func SeedDemoData(db *gorm.DB, log *zap.Logger) error {
	log.Info("seeding demo data")

	if err := seedUsers(db, log); err != nil {
		return err
	}
	if err := seedCatalogue(db, log); err != nil {
		return err
	}
	if err := seedProposal(db, log); err != nil {
		return err
	}

	log.Info("demo data seeded")
	return nil
}

func seedUsers(db *gorm.DB, log *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := []models.User{
		{Username: "Prueba 1", Email: "prueba1@assettrack.local", Role: models.RoleTechnician, FullName: ptr("Técnico de Prueba"), Phone: ptr("+34 600 000 001")},
		{Username: "admin", Email: "admin@assettrack.local", Role: models.RoleAdmin, FullName: ptr("Administrador")},
		{Username: "consulta", Email: "consulta@assettrack.local", Role: models.RoleViewer},
	}

	for _, u := range users {
		var existing models.User
		err := db.Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			log.Debug("user already exists", zap.String("username", u.Username))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		u.PasswordHash = string(hash)
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("create user %s: %w", u.Username, err)
		}
		log.Info("created demo user", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	}
	return nil
}

type seedSite struct {
	site   models.Site
	assets []models.Asset
}

type seedRegion struct {
	region models.Region
	sites  []seedSite
}

func demoCatalogue() []seedRegion {
	return []seedRegion{
		{
			region: models.Region{Name: "Comunidad de Madrid", Code: ptr("MD")},
			sites: []seedSite{
				{
					site: models.Site{Name: "Adolfo Suárez Madrid-Barajas", Code: "MAD", City: ptr("Madrid"), Latitude: ptr(40.4983), Longitude: ptr(-3.5676)},
					assets: []models.Asset{
						{
							Code: "M-3209", Type: "Grupo Electrógeno",
							EngineModel: ptr("Perkins 4006-23TAG3A"), EngineSerial: ptr("DGBH5012U0321"), EnginePower: ptr("1000 kVA"),
							Client: ptr("Aena S.M.E., S.A."), Installation: ptr("Terminal T4 - Central eléctrica"),
							Address: ptr("Av. de la Hispanidad s/n, 28042 Madrid"),
						},
						{
							Code: "M-3210", Type: "Grupo Electrógeno",
							EngineModel: ptr("Volvo Penta TAD1642GE"), EngineSerial: ptr("2100178542"), EnginePower: ptr("650 kVA"),
							Client: ptr("Aena S.M.E., S.A."), Installation: ptr("Terminal T1 - Sala de grupos"),
							Address: ptr("Av. de la Hispanidad s/n, 28042 Madrid"),
						},
					},
				},
				{
					site: models.Site{Name: "Madrid-Cuatro Vientos", Code: "MCV", City: ptr("Madrid"), Latitude: ptr(40.3706), Longitude: ptr(-3.7851)},
					assets: []models.Asset{
						{Code: "M-1104", Type: "Grupo Electrógeno", EngineModel: ptr("Cummins QSX15-G8"), EnginePower: ptr("500 kVA"), Client: ptr("Aena S.M.E., S.A.")},
					},
				},
			},
		},
		{
			region: models.Region{Name: "Cataluña", Code: ptr("CT")},
			sites: []seedSite{
				{
					site: models.Site{Name: "Josep Tarradellas Barcelona-El Prat", Code: "BCN", City: ptr("El Prat de Llobregat"), Latitude: ptr(41.2974), Longitude: ptr(2.0833)},
					assets: []models.Asset{
						{Code: "B-2201", Type: "Grupo Electrógeno", EngineModel: ptr("MTU 16V4000G23"), EnginePower: ptr("2000 kVA"), Client: ptr("Aena S.M.E., S.A."), Installation: ptr("Terminal T1")},
					},
				},
			},
		},
		{
			region: models.Region{Name: "Andalucía", Code: ptr("AN")},
			sites: []seedSite{
				{
					site: models.Site{Name: "Málaga-Costa del Sol", Code: "AGP", City: ptr("Málaga"), Latitude: ptr(36.6749), Longitude: ptr(-4.4991)},
					assets: []models.Asset{
						{Code: "A-0412", Type: "Grupo Electrógeno", EngineModel: ptr("Perkins 2806A-E18TAG2"), EnginePower: ptr("800 kVA"), Client: ptr("Aena S.M.E., S.A.")},
					},
				},
				{
					site: models.Site{Name: "Sevilla", Code: "SVQ", City: ptr("Sevilla"), Latitude: ptr(37.4180), Longitude: ptr(-5.8931)},
				},
			},
		},
	}
}

func seedCatalogue(db *gorm.DB, log *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range demoCatalogue() {
			region := r.region
			if err := tx.Where("nombre = ?", region.Name).FirstOrCreate(&region).Error; err != nil {
				return fmt.Errorf("seed region %s: %w", region.Name, err)
			}
			for _, s := range r.sites {
				site := s.site
				site.RegionID = region.ID
				if err := tx.Where("codigo = ?", site.Code).FirstOrCreate(&site).Error; err != nil {
					return fmt.Errorf("seed site %s: %w", site.Code, err)
				}
				for _, a := range s.assets {
					asset := a
					asset.SiteID = site.ID
					asset.Active = true
					if err := tx.Where("codigo = ?", asset.Code).FirstOrCreate(&asset).Error; err != nil {
						return fmt.Errorf("seed asset %s: %w", asset.Code, err)
					}
				}
			}
			log.Info("seeded region", zap.String("region", region.Name), zap.Int("sites", len(r.sites)))
		}
		return nil
	})
}

func seedProposal(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Proposal{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	validUntil := datatypes.Date(time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC))
	p := models.Proposal{
		Name:            "Digitalización de revisiones de grupos electrógenos",
		Client:          ptr("Aena S.M.E., S.A."),
		TotalBudget:     48500,
		DevelopmentCost: ptr(18000.0),
		BackendCost:     ptr(9500.0),
		IntegrationCost: ptr(8000.0),
		TrainingCost:    ptr(5000.0),
		SupportCost:     ptr(8000.0),
		ROIPercent:      ptr(185.0),
		AnnualSavings:   ptr(42000.0),
		ErrorReduction:  ptr(70.0),
		Description:     ptr("Sustitución de las hojas de revisión en papel por captura digital con informe PDF firmado."),
		ValidUntil:      &validUntil,
	}
	if err := db.Create(&p).Error; err != nil {
		return fmt.Errorf("seed proposal: %w", err)
	}
	log.Info("seeded proposal", zap.String("nombre", p.Name))
	return nil
}

func ptr[T any](v T) *T { return &v }
