package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CheckStatus is the outcome of one visual checklist item.
type CheckStatus string

const (
	CheckOK        CheckStatus = "OK"
	CheckDefective CheckStatus = "Defectuoso"
	CheckReplaced  CheckStatus = "Cambio"
)

func (c CheckStatus) Valid() bool {
	switch c {
	case CheckOK, CheckDefective, CheckReplaced:
		return true
	}
	return false
}

type InspectionStatus string

const (
	StatusDraft     InspectionStatus = "borrador"
	StatusCompleted InspectionStatus = "completada"
	StatusApproved  InspectionStatus = "aprobada"
)

func (s InspectionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusCompleted, StatusApproved:
		return true
	}
	return false
}

// Inspection is one saved revision of a generator set.
type Inspection struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Number       *string    `gorm:"column:numero_inspeccion;size:30;uniqueIndex" json:"numero_inspeccion"`
	AssetID      uuid.UUID  `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	Asset        *Asset     `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	TechnicianID *uuid.UUID `gorm:"column:technician_id;type:uuid;index" json:"technician_id"`
	Technician   *User      `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	InspectedAt  time.Time  `gorm:"column:fecha_inspeccion;not null" json:"fecha_inspeccion"`

	// test readings
	EngineHours      float64 `gorm:"column:horas_motor;not null" json:"horas_motor"`
	OilPressure      float64 `gorm:"column:presion_aceite;not null" json:"presion_aceite"`
	BlockTemperature float64 `gorm:"column:temperatura_bloque;not null" json:"temperatura_bloque"`
	FuelLevel        float64 `gorm:"column:nivel_combustible;not null" json:"nivel_combustible"`

	// electrical readings
	Voltage       float64  `gorm:"column:tension;not null" json:"tension"`
	Frequency     float64  `gorm:"column:frecuencia;not null" json:"frecuencia"`
	CurrentPhaseR *float64 `gorm:"column:corriente_fase_r" json:"corriente_fase_r"`
	CurrentPhaseS *float64 `gorm:"column:corriente_fase_s" json:"corriente_fase_s"`
	CurrentPhaseT *float64 `gorm:"column:corriente_fase_t" json:"corriente_fase_t"`

	// engine checklist
	LubricantLevel CheckStatus `gorm:"column:nivel_lubricante;size:20;not null;default:'OK'" json:"nivel_lubricante"`
	CoolantLevel   CheckStatus `gorm:"column:nivel_refrigerante;size:20;not null;default:'OK'" json:"nivel_refrigerante"`
	FanBelt        CheckStatus `gorm:"column:correa_ventilador;size:20;not null;default:'OK'" json:"correa_ventilador"`
	FuelFilter     CheckStatus `gorm:"column:filtro_combustible;size:20;not null;default:'OK'" json:"filtro_combustible"`
	AirFilter      CheckStatus `gorm:"column:filtro_aire;size:20;not null;default:'OK'" json:"filtro_aire"`
	OilFilter      CheckStatus `gorm:"column:filtro_aceite;size:20;not null;default:'OK'" json:"filtro_aceite"`
	ExhaustPipe    CheckStatus `gorm:"column:tubo_escape;size:20;not null;default:'OK'" json:"tubo_escape"`

	ReplacedParts       pq.StringArray   `gorm:"column:recambios_realizados;type:text[]" json:"recambios_realizados"`
	Observations        *string          `gorm:"column:observaciones;type:text" json:"observaciones"`
	TechnicalNotes      *string          `gorm:"column:notas_tecnicas;type:text" json:"notas_tecnicas"`
	TechnicianSignature *string          `gorm:"column:firma_tecnico;type:text" json:"firma_tecnico"`
	ClientSignature     *string          `gorm:"column:firma_cliente;type:text" json:"firma_cliente"`
	Status              InspectionStatus `gorm:"column:estado;size:20;not null;default:'borrador'" json:"estado"`
	Synced              bool             `gorm:"column:sincronizado;not null;default:false" json:"sincronizado"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func (Inspection) TableName() string { return "inspecciones" }

func (i *Inspection) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ReplacedParts == nil {
		i.ReplacedParts = pq.StringArray{}
	}
	return
}

// Checks returns the engine checklist keyed by column name, in report order.
func (i *Inspection) Checks() []CheckItem {
	return []CheckItem{
		{Column: "nivel_lubricante", Label: "Nivel de lubricante", Status: i.LubricantLevel},
		{Column: "nivel_refrigerante", Label: "Indicador nivel refrigerante", Status: i.CoolantLevel},
		{Column: "correa_ventilador", Label: "Correa del ventilador", Status: i.FanBelt},
		{Column: "filtro_combustible", Label: "Filtro de combustible y prefiltro", Status: i.FuelFilter},
		{Column: "filtro_aire", Label: "Filtro de aire", Status: i.AirFilter},
		{Column: "filtro_aceite", Label: "Filtro de aceite y prefiltro", Status: i.OilFilter},
		{Column: "tubo_escape", Label: "Tubo de escape", Status: i.ExhaustPipe},
	}
}

type CheckItem struct {
	Column string
	Label  string
	Status CheckStatus
}
