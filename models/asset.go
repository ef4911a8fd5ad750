package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset is one generator set installed at an airport.
type Asset struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID       uuid.UUID  `gorm:"column:aeropuerto_id;type:uuid;not null;index" json:"aeropuerto_id"`
	Site         *Site      `gorm:"foreignKey:SiteID" json:"aeropuerto,omitempty"`
	Code         string     `gorm:"column:codigo;size:50;uniqueIndex;not null" json:"codigo"`
	Type         string     `gorm:"column:tipo;size:50;not null;default:'Grupo Electrógeno'" json:"tipo"`
	EngineModel  *string    `gorm:"column:motor_modelo;size:100" json:"motor_modelo"`
	EngineSerial *string    `gorm:"column:motor_serial;size:100" json:"motor_serial"`
	EnginePower  *string    `gorm:"column:motor_potencia;size:50" json:"motor_potencia"`
	Client       *string    `gorm:"column:cliente;size:150" json:"cliente"`
	Installation *string    `gorm:"column:instalacion;size:150" json:"instalacion"`
	Address      *string    `gorm:"column:direccion;size:255" json:"direccion"`
	Active       bool       `gorm:"column:activo;not null;default:true" json:"activo"`
	LastReview   *time.Time `gorm:"column:ultima_revision" json:"ultima_revision"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

func (a *Asset) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
