// Package report turns a saved inspection into the printable "REVISIONES"
// document. Build produces a layout-free model of the document; Render draws
// it as an A4 PDF.
package report

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"p9e.in/assettrack/models"
)

const notAvailable = "N/A"

// Input is everything the report reads. Nothing else is consulted.
type Input struct {
	Inspection     *models.Inspection
	Asset          *models.Asset
	TechnicianName string
	// Date is printed next to the signature; zero means now.
	Date time.Time
	// Logo is an optional PNG drawn in the top-left corner.
	Logo []byte
}

type RGB struct{ R, G, B int }

var (
	green = RGB{16, 185, 129}
	amber = RGB{245, 158, 11}
	blue  = RGB{59, 130, 246}
)

type Field struct {
	Label string
	Value string
}

// Table is one boxed section. Checklist tables have four columns, value
// tables two.
type Table struct {
	Header  []string
	Widths  []float64
	Fill    RGB
	Striped bool
	Rows    [][]string
}

type Image struct {
	Data []byte
	Type string // PNG or JPG
}

type Report struct {
	Title  string
	Number string
	// ClientRows are printed one per line; a second field in a row goes in
	// the right-hand column.
	ClientRows [][]Field

	Engine     Table
	Alternator Table
	TestData   Table
	Electrical Table

	Observations string

	// SignatureBlock is set when the inspection was signed. Signature is nil
	// when the stored image could not be decoded; the block is still drawn.
	SignatureBlock bool
	Signature      *Image
	TechnicianName string
	Date           string

	Logo     *Image
	FileName string
}

// Mark is what a checklist cell shows when the item has that status.
const Mark = "X"

var checkColumns = []string{"OK", "DEFECTUOSO", "CAMBIO"}

var alternatorRows = []string{"Estado general", "Conexiones eléctricas", "Rodamientos"}

// Build lays out the report sections for in.
func Build(in Input) (*Report, error) {
	if in.Inspection == nil || in.Asset == nil {
		return nil, errors.New("report: inspection and asset are required")
	}
	insp, asset := in.Inspection, in.Asset

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	rep := &Report{
		Title:          "REVISIONES",
		Number:         inspectionNumber(insp, date),
		ClientRows:     clientRows(asset),
		Engine:         engineTable(insp),
		Alternator:     alternatorTable(),
		TestData:       testDataTable(insp),
		Electrical:     electricalTable(insp),
		TechnicianName: in.TechnicianName,
		Date:           date.Format("02/01/2006"),
		FileName:       FileName(insp.Number, asset.Code),
	}
	if insp.Observations != nil {
		rep.Observations = strings.TrimSpace(*insp.Observations)
	}
	if insp.TechnicianSignature != nil && strings.TrimSpace(*insp.TechnicianSignature) != "" {
		rep.SignatureBlock = true
		if img, err := DecodeDataURL(*insp.TechnicianSignature); err == nil {
			rep.Signature = img
		}
	}
	if len(in.Logo) > 0 {
		rep.Logo = &Image{Data: in.Logo, Type: "PNG"}
	}
	return rep, nil
}

// FileName is "{number}_{assetCode}.pdf", with "Inspeccion" standing in for
// a missing number.
func FileName(number *string, assetCode string) string {
	n := "Inspeccion"
	if number != nil && *number != "" {
		n = *number
	}
	return sanitize(n) + "_" + sanitize(assetCode) + ".pdf"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}

func inspectionNumber(insp *models.Inspection, date time.Time) string {
	if insp.Number != nil && *insp.Number != "" {
		return *insp.Number
	}
	return fmt.Sprintf("R - %d0001", date.Year())
}

func orNA(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return notAvailable
	}
	return *s
}

func clientRows(a *models.Asset) [][]Field {
	code := a.Code
	if code == "" {
		code = notAvailable
	}
	return [][]Field{
		{{"CLIENTE:", orNA(a.Client)}},
		{{"MOTOR:", orNA(a.EngineModel)}, {"POTENCIA:", orNA(a.EnginePower)}},
		{{"MODELO:", orNA(a.EngineModel)}},
		{{"Nº MOTOR:", orNA(a.EngineSerial)}},
		{{"Nº GRUPO:", code}},
		{{"INSTALACIÓN:", orNA(a.Installation)}},
		{{"DIRECCIÓN:", orNA(a.Address)}},
	}
}

func checkRow(label string, status models.CheckStatus) []string {
	row := []string{label, "", "", ""}
	switch status {
	case models.CheckOK:
		row[1] = Mark
	case models.CheckDefective:
		row[2] = Mark
	case models.CheckReplaced:
		row[3] = Mark
	}
	return row
}

func checklistTable(title string) Table {
	return Table{
		Header: append([]string{title}, checkColumns...),
		Widths: []float64{80, 30, 40, 30},
		Fill:   green,
	}
}

func engineTable(insp *models.Inspection) Table {
	t := checklistTable("INSPECCIÓN EN EL MOTOR")
	for _, c := range insp.Checks() {
		t.Rows = append(t.Rows, checkRow(c.Label, c.Status))
	}
	return t
}

// alternatorTable is fixed: alternator data is not captured, every row is OK.
func alternatorTable() Table {
	t := checklistTable("INSPECCIÓN EN EL ALTERNADOR")
	for _, label := range alternatorRows {
		t.Rows = append(t.Rows, checkRow(label, models.CheckOK))
	}
	return t
}

func valueTable(title string, fill RGB) Table {
	return Table{
		Header:  []string{title, "VALOR"},
		Widths:  []float64{100, 80},
		Fill:    fill,
		Striped: true,
	}
}

func testDataTable(insp *models.Inspection) Table {
	t := valueTable("DATOS DE PRUEBA", amber)
	t.Rows = [][]string{
		{"Horas del motor", num(insp.EngineHours) + " h"},
		{"Presión de aceite", num(insp.OilPressure) + " bar"},
		{"Temperatura bloque", num(insp.BlockTemperature) + " °C"},
		{"Nivel combustible", num(insp.FuelLevel) + " %"},
	}
	return t
}

func electricalTable(insp *models.Inspection) Table {
	t := valueTable("CUADRO ELÉCTRICO", blue)
	t.Rows = [][]string{
		{"Tensión", num(insp.Voltage) + " V"},
		{"Frecuencia", num(insp.Frequency) + " Hz"},
		{"Corriente Fase R", current(insp.CurrentPhaseR)},
		{"Corriente Fase S", current(insp.CurrentPhaseS)},
		{"Corriente Fase T", current(insp.CurrentPhaseT)},
	}
	return t
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func current(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return num(*v) + " A"
}

// DecodeDataURL decodes a base64 "data:image/...;base64," URL. A bare base64
// payload is taken as PNG.
func DecodeDataURL(s string) (*Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty image")
	}
	typ := "PNG"
	payload := s
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 {
			return nil, errors.New("malformed data URL")
		}
		meta := s[len("data:"):comma]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, errors.New("data URL is not base64")
		}
		switch strings.TrimSuffix(meta, ";base64") {
		case "image/png":
			typ = "PNG"
		case "image/jpeg", "image/jpg":
			typ = "JPG"
		default:
			return nil, fmt.Errorf("unsupported image type %q", meta)
		}
		payload = s[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Image{Data: data, Type: typ}, nil
}
