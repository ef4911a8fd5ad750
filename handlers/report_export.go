package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"p9e.in/assettrack/middleware"
	"p9e.in/assettrack/models"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/report"
	"p9e.in/assettrack/pkg/services"
	"p9e.in/assettrack/pkg/storage"
)

// ReportHandler serves the PDF inspection report and the spreadsheet export.
type ReportHandler struct {
	inspections *services.InspectionService
	archive     storage.Archive
	logo        []byte
	log         *zap.Logger
	now         func() time.Time
}

// NewReportHandler builds the handler. archive may be nil when reports are not
// kept server side.
func NewReportHandler(inspections *services.InspectionService, archive storage.Archive, logo []byte, log *zap.Logger) *ReportHandler {
	return &ReportHandler{inspections: inspections, archive: archive, logo: logo, log: log, now: time.Now}
}

// InspectionPDF renders the revision report for one inspection.
func (h *ReportHandler) InspectionPDF(w http.ResponseWriter, r *http.Request) {
	id, err := middleware.PathUUID(r, "id")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	insp, err := h.inspections.GetByID(r.Context(), id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindBackend {
			h.log.Error("load inspection for report", zap.Error(err))
		}
		middleware.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	name, err := report.Generate(&buf, report.Input{
		Inspection:     insp,
		Asset:          insp.Asset,
		TechnicianName: technicianName(insp),
		Date:           h.now(),
		Logo:           h.logo,
	})
	if err != nil {
		h.log.Error("render report", zap.String("id", id.String()), zap.Error(err))
		middleware.WriteError(w, apperr.Wrap(apperr.KindBackend, "reports.InspectionPDF", err))
		return
	}

	h.store(r.Context(), name, buf.Bytes())

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// store keeps a copy of the report. Failures are logged only.
func (h *ReportHandler) store(ctx context.Context, name string, data []byte) {
	if h.archive == nil {
		return
	}
	loc, err := h.archive.Put(ctx, storage.ObjectName(h.now().Year(), name), "application/pdf", data)
	if err != nil {
		h.log.Warn("archive report", zap.String("file", name), zap.Error(err))
		return
	}
	h.log.Info("report archived", zap.String("location", loc))
}

func technicianName(insp *models.Inspection) string {
	if insp.Technician == nil {
		return ""
	}
	return insp.Technician.DisplayName()
}

// ExportXLSX exports inspections to Excel, optionally for one asset (?asset_id=).
func (h *ReportHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	var assetID *uuid.UUID
	if raw := r.URL.Query().Get("asset_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.WriteError(w, apperr.Invalidf("reports.ExportXLSX", "asset_id no válido"))
			return
		}
		assetID = &id
	}

	rows, err := h.inspections.Export(r.Context(), assetID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindBackend {
			h.log.Error("load inspections for export", zap.Error(err))
		}
		middleware.WriteError(w, err)
		return
	}

	f, err := createExcelFile("Inspecciones", rows, h.now())
	if err != nil {
		h.log.Error("build export", zap.Error(err))
		middleware.WriteError(w, apperr.Wrap(apperr.KindBackend, "reports.ExportXLSX", err))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename("Inspecciones"), h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		h.log.Error("write export", zap.Error(err))
	}
}

type exportColumn struct {
	Label string
	Width float64
	Value func(*models.Inspection) any
}

var exportColumns = []exportColumn{
	{"Número", 16, func(i *models.Inspection) any { return deref(i.Number) }},
	{"Fecha", 18, func(i *models.Inspection) any { return i.InspectedAt.Format("2006-01-02 15:04") }},
	{"Equipo", 12, func(i *models.Inspection) any {
		if i.Asset == nil {
			return ""
		}
		return i.Asset.Code
	}},
	{"Aeropuerto", 26, func(i *models.Inspection) any {
		if i.Asset == nil || i.Asset.Site == nil {
			return ""
		}
		return i.Asset.Site.Name
	}},
	{"Técnico", 20, func(i *models.Inspection) any { return technicianName(i) }},
	{"Estado", 12, func(i *models.Inspection) any { return string(i.Status) }},
	{"Horas motor", 12, func(i *models.Inspection) any { return i.EngineHours }},
	{"Presión aceite (bar)", 14, func(i *models.Inspection) any { return i.OilPressure }},
	{"Temp. bloque (°C)", 14, func(i *models.Inspection) any { return i.BlockTemperature }},
	{"Combustible (%)", 14, func(i *models.Inspection) any { return i.FuelLevel }},
	{"Tensión (V)", 12, func(i *models.Inspection) any { return i.Voltage }},
	{"Frecuencia (Hz)", 14, func(i *models.Inspection) any { return i.Frequency }},
	{"Defectos", 12, func(i *models.Inspection) any { return countChecks(i, models.CheckDefective) }},
	{"Cambios", 12, func(i *models.Inspection) any { return countChecks(i, models.CheckReplaced) }},
	{"Recambios", 30, func(i *models.Inspection) any { return strings.Join(i.ReplacedParts, ", ") }},
	{"Observaciones", 40, func(i *models.Inspection) any { return deref(i.Observations) }},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func countChecks(i *models.Inspection, status models.CheckStatus) int {
	n := 0
	for _, c := range i.Checks() {
		if c.Status == status {
			n++
		}
	}
	return n
}

// createExcelFile lays out the export: title, timestamp, header row 4, data
// from row 5 and a summary block of status counts.
func createExcelFile(title string, rows []models.Inspection, generated time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := title

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generado: %s", generated.Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, col.Label)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		letter := columnIndexToLetter(colIdx + 1)
		f.SetColWidth(sheetName, letter, letter, col.Width)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	counts := map[models.InspectionStatus]int{}
	for rowIdx := range rows {
		insp := &rows[rowIdx]
		counts[insp.Status]++
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, col.Value(insp))
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	summaryRow := len(rows) + 7
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E7E6E6"},
			Pattern: 1,
		},
	})
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheetName, cell, "Resumen")
	f.SetCellStyle(sheetName, cell, cell, summaryStyle)

	summaryRow++
	summary := []struct {
		label string
		value int
	}{
		{"Total", len(rows)},
		{"Borrador", counts[models.StatusDraft]},
		{"Completadas", counts[models.StatusCompleted]},
		{"Aprobadas", counts[models.StatusApproved]},
	}
	for _, s := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, summaryRow)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow)
		f.SetCellValue(sheetName, keyCell, s.label)
		f.SetCellValue(sheetName, valueCell, s.value)
		summaryRow++
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}

	result := []rune{}
	for _, char := range filename {
		if replacement, exists := replacements[char]; exists {
			result = append(result, replacement)
		} else {
			result = append(result, char)
		}
	}
	return string(result)
}

func columnIndexToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+(col%26))) + result
		col /= 26
	}
	return result
}
