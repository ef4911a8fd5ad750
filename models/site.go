package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// Region is an autonomous community grouping airports, e.g. "Comunidad de Madrid".
type Region struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Code      *string   `gorm:"column:codigo;size:20" json:"codigo"`
	CreatedAt time.Time `json:"created_at"`
}

func (Region) TableName() string { return "comunidades" }

// Site is an airport inside a region. Assets are installed at sites.
type Site struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RegionID  uuid.UUID `gorm:"column:comunidad_id;type:uuid;not null;index" json:"comunidad_id"`
	Region    *Region   `gorm:"foreignKey:RegionID" json:"comunidad,omitempty"`
	Name      string    `gorm:"column:nombre;size:100;not null" json:"nombre"`
	Code      string    `gorm:"column:codigo;size:10;not null" json:"codigo"`
	City      *string   `gorm:"column:ciudad;size:100" json:"ciudad"`
	Latitude  *float64  `gorm:"column:latitud" json:"latitud,omitempty"`
	Longitude *float64  `gorm:"column:longitud" json:"longitud,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Site) TableName() string { return "aeropuertos" }

func (r *Region) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (s *Site) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Point returns the site location; ok is false when coordinates are missing.
func (s *Site) Point() (orb.Point, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return orb.Point{}, false
	}
	return orb.Point{*s.Longitude, *s.Latitude}, true
}
