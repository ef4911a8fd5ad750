package services

import (
	"time"

	"p9e.in/assettrack/client/session"
)

type User = session.User

type Region struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Codigo *string `json:"codigo"`
}

type Site struct {
	ID          string   `json:"id"`
	ComunidadID string   `json:"comunidadId"`
	Comunidad   *Region  `json:"comunidad,omitempty"`
	Nombre      string   `json:"nombre"`
	Codigo      string   `json:"codigo"`
	Ciudad      *string  `json:"ciudad"`
	Latitud     *float64 `json:"latitud,omitempty"`
	Longitud    *float64 `json:"longitud,omitempty"`
	// DistanciaMetros is only set by NearbySites.
	DistanciaMetros float64 `json:"distanciaMetros,omitempty"`
}

type Asset struct {
	ID             string     `json:"id"`
	AeropuertoID   string     `json:"aeropuertoId"`
	Aeropuerto     *Site      `json:"aeropuerto,omitempty"`
	Codigo         string     `json:"codigo"`
	Tipo           string     `json:"tipo"`
	MotorModelo    *string    `json:"motorModelo"`
	MotorSerial    *string    `json:"motorSerial"`
	MotorPotencia  *string    `json:"motorPotencia"`
	Cliente        *string    `json:"cliente"`
	Instalacion    *string    `json:"instalacion"`
	Direccion      *string    `json:"direccion"`
	Activo         bool       `json:"activo"`
	UltimaRevision *time.Time `json:"ultimaRevision"`
}

// CheckStatus is one checklist value: OK, Defectuoso or Cambio.
type CheckStatus string

const (
	CheckOK        CheckStatus = "OK"
	CheckDefective CheckStatus = "Defectuoso"
	CheckReplaced  CheckStatus = "Cambio"
)

func (c CheckStatus) Valid() bool {
	return c == CheckOK || c == CheckDefective || c == CheckReplaced
}

type InspectionStatus string

const (
	StatusDraft     InspectionStatus = "borrador"
	StatusCompleted InspectionStatus = "completada"
	StatusApproved  InspectionStatus = "aprobada"
)

// Checklist holds the seven engine checks.
type Checklist struct {
	NivelLubricante   CheckStatus `json:"nivelLubricante"`
	NivelRefrigerante CheckStatus `json:"nivelRefrigerante"`
	CorreaVentilador  CheckStatus `json:"correaVentilador"`
	FiltroCombustible CheckStatus `json:"filtroCombustible"`
	FiltroAire        CheckStatus `json:"filtroAire"`
	FiltroAceite      CheckStatus `json:"filtroAceite"`
	TuboEscape        CheckStatus `json:"tuboEscape"`
}

// CheckField names a checklist entry, in report order.
type CheckField struct {
	Key   string
	Label string
}

var CheckFields = []CheckField{
	{"nivelLubricante", "Nivel de lubricante"},
	{"nivelRefrigerante", "Indicador nivel refrigerante"},
	{"correaVentilador", "Correa del ventilador"},
	{"filtroCombustible", "Filtro de combustible y prefiltro"},
	{"filtroAire", "Filtro de aire"},
	{"filtroAceite", "Filtro de aceite y prefiltro"},
	{"tuboEscape", "Tubo de escape"},
}

// Field returns a pointer to the entry named key, or nil.
func (c *Checklist) Field(key string) *CheckStatus {
	switch key {
	case "nivelLubricante":
		return &c.NivelLubricante
	case "nivelRefrigerante":
		return &c.NivelRefrigerante
	case "correaVentilador":
		return &c.CorreaVentilador
	case "filtroCombustible":
		return &c.FiltroCombustible
	case "filtroAire":
		return &c.FiltroAire
	case "filtroAceite":
		return &c.FiltroAceite
	case "tuboEscape":
		return &c.TuboEscape
	}
	return nil
}

type Inspection struct {
	ID               string    `json:"id"`
	NumeroInspeccion *string   `json:"numeroInspeccion"`
	AssetID          string    `json:"assetId"`
	Asset            *Asset    `json:"asset,omitempty"`
	TechnicianID     *string   `json:"technicianId"`
	Technician       *User     `json:"technician,omitempty"`
	FechaInspeccion  time.Time `json:"fechaInspeccion"`

	HorasMotor        float64 `json:"horasMotor"`
	PresionAceite     float64 `json:"presionAceite"`
	TemperaturaBloque float64 `json:"temperaturaBloque"`
	NivelCombustible  float64 `json:"nivelCombustible"`

	Tension        float64  `json:"tension"`
	Frecuencia     float64  `json:"frecuencia"`
	CorrienteFaseR *float64 `json:"corrienteFaseR"`
	CorrienteFaseS *float64 `json:"corrienteFaseS"`
	CorrienteFaseT *float64 `json:"corrienteFaseT"`

	Checklist

	RecambiosRealizados []string         `json:"recambiosRealizados"`
	Observaciones       *string          `json:"observaciones"`
	NotasTecnicas       *string          `json:"notasTecnicas"`
	FirmaTecnico        *string          `json:"firmaTecnico"`
	FirmaCliente        *string          `json:"firmaCliente"`
	Estado              InspectionStatus `json:"estado"`
	Sincronizado        bool             `json:"sincronizado"`
}

// NewInspection is the create request. Numbers are final: defaults have
// already been applied by the caller.
type NewInspection struct {
	AssetID string `json:"assetId"`

	HorasMotor        float64 `json:"horasMotor"`
	PresionAceite     float64 `json:"presionAceite"`
	TemperaturaBloque float64 `json:"temperaturaBloque"`
	NivelCombustible  float64 `json:"nivelCombustible"`

	Tension        float64  `json:"tension"`
	Frecuencia     float64  `json:"frecuencia"`
	CorrienteFaseR *float64 `json:"corrienteFaseR"`
	CorrienteFaseS *float64 `json:"corrienteFaseS"`
	CorrienteFaseT *float64 `json:"corrienteFaseT"`

	Checklist

	RecambiosRealizados []string `json:"recambiosRealizados"`
	Observaciones       *string  `json:"observaciones"`
	NotasTecnicas       *string  `json:"notasTecnicas"`
	FirmaTecnico        string   `json:"firmaTecnico"`
	FirmaCliente        *string  `json:"firmaCliente"`
}

type Proposal struct {
	ID                string     `json:"id"`
	Nombre            string     `json:"nombre"`
	Cliente           *string    `json:"cliente"`
	PresupuestoTotal  float64    `json:"presupuestoTotal"`
	CosteDesarrollo   *float64   `json:"costeDesarrollo"`
	CosteBackend      *float64   `json:"costeBackend"`
	CosteIntegracion  *float64   `json:"costeIntegracion"`
	CosteCapacitacion *float64   `json:"costeCapacitacion"`
	CosteSoporte      *float64   `json:"costeSoporte"`
	RoiPorcentaje     *float64   `json:"roiPorcentaje"`
	AhorroAnual       *float64   `json:"ahorroAnual"`
	ReduccionErrores  *float64   `json:"reduccionErrores"`
	Descripcion       *string    `json:"descripcion"`
	VigenciaHasta     *time.Time `json:"vigenciaHasta"`
}
