package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Proposal is the economic proposal shown on the budget/ROI dashboard.
type Proposal struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string          `gorm:"column:nombre;size:150;not null" json:"nombre"`
	Client          *string         `gorm:"column:cliente;size:150" json:"cliente"`
	TotalBudget     float64         `gorm:"column:presupuesto_total;not null" json:"presupuesto_total"`
	DevelopmentCost *float64        `gorm:"column:coste_desarrollo" json:"coste_desarrollo"`
	BackendCost     *float64        `gorm:"column:coste_backend" json:"coste_backend"`
	IntegrationCost *float64        `gorm:"column:coste_integracion" json:"coste_integracion"`
	TrainingCost    *float64        `gorm:"column:coste_capacitacion" json:"coste_capacitacion"`
	SupportCost     *float64        `gorm:"column:coste_soporte" json:"coste_soporte"`
	ROIPercent      *float64        `gorm:"column:roi_porcentaje" json:"roi_porcentaje"`
	AnnualSavings   *float64        `gorm:"column:ahorro_anual" json:"ahorro_anual"`
	ErrorReduction  *float64        `gorm:"column:reduccion_errores" json:"reduccion_errores"`
	Description     *string         `gorm:"column:descripcion;type:text" json:"descripcion"`
	ValidUntil      *datatypes.Date `gorm:"column:vigencia_hasta" json:"vigencia_hasta"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (Proposal) TableName() string { return "propuestas_economicas" }

func (p *Proposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
