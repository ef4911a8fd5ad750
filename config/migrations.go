package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/assettrack/models"
)

// InspectionNumberSequence feeds the numeric part of numero_inspeccion.
const InspectionNumberSequence = "inspection_number_seq"

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "01092026_create_catalogue_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Region{}, &models.Site{}, &models.Asset{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("assets", "aeropuertos", "comunidades", "users")
			},
		},
		{
			ID: "01092026_create_inspecciones",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.Inspection{}); err != nil {
					return err
				}
				if err := tx.Exec("CREATE SEQUENCE IF NOT EXISTS " + InspectionNumberSequence + " START 1").Error; err != nil {
					return err
				}
				return tx.Exec(`DO $$ BEGIN
					ALTER TABLE inspecciones ADD CONSTRAINT chk_inspecciones_estado
						CHECK (estado IN ('borrador', 'completada', 'aprobada'));
				EXCEPTION WHEN duplicate_object THEN NULL; END $$`).Error
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Migrator().DropTable("inspecciones"); err != nil {
					return err
				}
				return tx.Exec("DROP SEQUENCE IF EXISTS " + InspectionNumberSequence).Error
			},
		},
		{
			ID: "01092026_add_checklist_constraints",
			Migrate: func(tx *gorm.DB) error {
				for _, column := range checklistColumns {
					stmt := `DO $$ BEGIN
						ALTER TABLE inspecciones ADD CONSTRAINT chk_inspecciones_` + column + `
							CHECK (` + column + ` IN ('OK', 'Defectuoso', 'Cambio'));
					EXCEPTION WHEN duplicate_object THEN NULL; END $$`
					if err := tx.Exec(stmt).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "02092026_create_propuestas_economicas",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Proposal{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("propuestas_economicas")
			},
		},
		{
			ID: "15092026_add_aeropuerto_coordinates",
			Migrate: func(tx *gorm.DB) error {
				// Older databases predate latitud/longitud.
				for _, column := range []string{"latitud", "longitud"} {
					if !tx.Migrator().HasColumn(&models.Site{}, column) {
						if err := tx.Exec("ALTER TABLE aeropuertos ADD COLUMN " + column + " double precision").Error; err != nil {
							return err
						}
					}
				}
				return nil
			},
		},
	})

	return m.Migrate()
}

var checklistColumns = []string{
	"nivel_lubricante",
	"nivel_refrigerante",
	"correa_ventilador",
	"filtro_combustible",
	"filtro_aire",
	"filtro_aceite",
	"tubo_escape",
}
