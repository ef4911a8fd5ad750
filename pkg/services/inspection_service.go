package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/readings"
)

const (
	MaxReplacedParts      = 20
	MaxObservationsLength = 2000
	MaxSignatureBytes     = 5 << 20

	DefaultMineLimit = 20
	maxListLimit     = 200
)

// NewInspection is the body of a create request. Missing readings take
// readings.Standard; empty checklist values mean OK.
type NewInspection struct {
	AssetID uuid.UUID `json:"asset_id"`

	EngineHours      *float64 `json:"horas_motor"`
	OilPressure      *float64 `json:"presion_aceite"`
	BlockTemperature *float64 `json:"temperatura_bloque"`
	FuelLevel        *float64 `json:"nivel_combustible"`

	Voltage       *float64 `json:"tension"`
	Frequency     *float64 `json:"frecuencia"`
	CurrentPhaseR *float64 `json:"corriente_fase_r"`
	CurrentPhaseS *float64 `json:"corriente_fase_s"`
	CurrentPhaseT *float64 `json:"corriente_fase_t"`

	LubricantLevel models.CheckStatus `json:"nivel_lubricante"`
	CoolantLevel   models.CheckStatus `json:"nivel_refrigerante"`
	FanBelt        models.CheckStatus `json:"correa_ventilador"`
	FuelFilter     models.CheckStatus `json:"filtro_combustible"`
	AirFilter      models.CheckStatus `json:"filtro_aire"`
	OilFilter      models.CheckStatus `json:"filtro_aceite"`
	ExhaustPipe    models.CheckStatus `json:"tubo_escape"`

	ReplacedParts       []string `json:"recambios_realizados"`
	Observations        *string  `json:"observaciones"`
	TechnicalNotes      *string  `json:"notas_tecnicas"`
	TechnicianSignature string   `json:"firma_tecnico"`
	ClientSignature     *string  `json:"firma_cliente"`
}

// Validate enforces the save preconditions that do not need the database.
func (n *NewInspection) Validate() error {
	const op = "inspections.Validate"

	if n.AssetID == uuid.Nil {
		return apperr.Invalidf(op, "Debe seleccionar un equipo")
	}
	if strings.TrimSpace(n.TechnicianSignature) == "" {
		return apperr.New(apperr.KindMissingSignature, op, "")
	}
	if SignatureSize(n.TechnicianSignature) > MaxSignatureBytes {
		return apperr.Invalidf(op, "La firma supera el tamaño máximo de 5 MB")
	}
	if n.ClientSignature != nil && SignatureSize(*n.ClientSignature) > MaxSignatureBytes {
		return apperr.Invalidf(op, "La firma del cliente supera el tamaño máximo de 5 MB")
	}
	for _, c := range n.checks() {
		if *c.status == "" {
			*c.status = models.CheckOK
			continue
		}
		if !c.status.Valid() {
			return apperr.Invalidf(op, "Valor no válido para %s: %q", c.column, *c.status)
		}
	}
	if len(n.ReplacedParts) > MaxReplacedParts {
		return apperr.Invalidf(op, "Máximo %d recambios por inspección", MaxReplacedParts)
	}
	if n.Observations != nil && utf8.RuneCountInString(*n.Observations) > MaxObservationsLength {
		return apperr.Invalidf(op, "Las observaciones no pueden superar %d caracteres", MaxObservationsLength)
	}
	return nil
}

type checkRef struct {
	column string
	status *models.CheckStatus
}

func (n *NewInspection) checks() []checkRef {
	return []checkRef{
		{"nivel_lubricante", &n.LubricantLevel},
		{"nivel_refrigerante", &n.CoolantLevel},
		{"correa_ventilador", &n.FanBelt},
		{"filtro_combustible", &n.FuelFilter},
		{"filtro_aire", &n.AirFilter},
		{"filtro_aceite", &n.OilFilter},
		{"tubo_escape", &n.ExhaustPipe},
	}
}

func (n *NewInspection) record() *models.Inspection {
	parts := pq.StringArray{}
	for _, p := range n.ReplacedParts {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	sig := n.TechnicianSignature
	d := readings.Standard
	return &models.Inspection{
		AssetID:             n.AssetID,
		EngineHours:         readings.Or(n.EngineHours, d.EngineHours),
		OilPressure:         readings.Or(n.OilPressure, d.OilPressure),
		BlockTemperature:    readings.Or(n.BlockTemperature, d.BlockTemperature),
		FuelLevel:           readings.Or(n.FuelLevel, d.FuelLevel),
		Voltage:             readings.Or(n.Voltage, d.Voltage),
		Frequency:           readings.Or(n.Frequency, d.Frequency),
		CurrentPhaseR:       n.CurrentPhaseR,
		CurrentPhaseS:       n.CurrentPhaseS,
		CurrentPhaseT:       n.CurrentPhaseT,
		LubricantLevel:      n.LubricantLevel,
		CoolantLevel:        n.CoolantLevel,
		FanBelt:             n.FanBelt,
		FuelFilter:          n.FuelFilter,
		AirFilter:           n.AirFilter,
		OilFilter:           n.OilFilter,
		ExhaustPipe:         n.ExhaustPipe,
		ReplacedParts:       parts,
		Observations:        n.Observations,
		TechnicalNotes:      n.TechnicalNotes,
		TechnicianSignature: &sig,
		ClientSignature:     n.ClientSignature,
	}
}

// SignatureSize is the decoded byte size of a base64 image data URL.
func SignatureSize(dataURL string) int {
	payload := dataURL
	if i := strings.IndexByte(dataURL, ','); i >= 0 {
		payload = dataURL[i+1:]
	}
	payload = strings.TrimRight(payload, "=")
	return base64.RawStdEncoding.DecodedLen(len(payload))
}

// FormatNumber renders an inspection number, e.g. R-20260001.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("R-%d%04d", year, seq)
}

type InspectionService struct {
	repo    InspectionRepository
	catalog CatalogRepository
	now     func() time.Time
}

func NewInspectionService(repo InspectionRepository, catalog CatalogRepository) *InspectionService {
	return &InspectionService{repo: repo, catalog: catalog, now: time.Now}
}

// Create persists a completed inspection for technicianID and returns it
// re-read with its asset and technician.
func (s *InspectionService) Create(ctx context.Context, technicianID uuid.UUID, in NewInspection) (*models.Inspection, error) {
	const op = "inspections.Create"

	if technicianID == uuid.Nil {
		return nil, apperr.New(apperr.KindNoSession, op, "")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	asset, err := s.catalog.FindAssetByID(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if !asset.Active {
		return nil, apperr.Invalidf(op, "El equipo %s no está activo", asset.Code)
	}

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	number := FormatNumber(now.Year(), seq)
	rec := in.record()
	rec.ID = uuid.New()
	rec.Number = &number
	rec.TechnicianID = &technicianID
	rec.InspectedAt = now
	rec.Status = models.StatusCompleted
	rec.Synced = true

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, rec.ID)
}

func (s *InspectionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByAsset returns the asset's inspections, newest first.
func (s *InspectionService) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]models.Inspection, error) {
	return s.repo.ListByAsset(ctx, assetID)
}

// ListMine returns the technician's latest inspections; limit <= 0 means 20.
func (s *InspectionService) ListMine(ctx context.Context, technicianID uuid.UUID, limit int) ([]models.Inspection, error) {
	if limit <= 0 {
		limit = DefaultMineLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListByTechnician(ctx, technicianID, limit)
}

// PendingSync returns unsynced inspections, oldest first.
func (s *InspectionService) PendingSync(ctx context.Context) ([]models.Inspection, error) {
	return s.repo.ListPendingSync(ctx)
}

func (s *InspectionService) ChangeStatus(ctx context.Context, id uuid.UUID, status models.InspectionStatus) (*models.Inspection, error) {
	if !status.Valid() {
		return nil, apperr.Invalidf("inspections.ChangeStatus", "Estado no válido: %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *InspectionService) MarkSynced(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkSynced(ctx, id)
}

func (s *InspectionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Export returns the rows for the spreadsheet export, optionally for one asset.
func (s *InspectionService) Export(ctx context.Context, assetID *uuid.UUID) ([]models.Inspection, error) {
	return s.repo.ListForExport(ctx, assetID)
}
