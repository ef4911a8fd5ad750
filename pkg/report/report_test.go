package report

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/assettrack/models"
)

func strp(s string) *string { return &s }

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 50))
	for x := 10; x < 110; x++ {
		img.Set(x, 25, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func fixture(t *testing.T) Input {
	r := 12.5
	return Input{
		Inspection: &models.Inspection{
			ID:                  uuid.New(),
			Number:              strp("R-20260001"),
			EngineHours:         9504,
			OilPressure:         5.1,
			BlockTemperature:    62,
			FuelLevel:           100,
			Voltage:             400,
			Frequency:           50,
			CurrentPhaseR:       &r,
			LubricantLevel:      models.CheckOK,
			CoolantLevel:        models.CheckDefective,
			FanBelt:             models.CheckReplaced,
			FuelFilter:          models.CheckOK,
			AirFilter:           models.CheckOK,
			OilFilter:           models.CheckOK,
			ExhaustPipe:         models.CheckOK,
			Observations:        strp("Se sustituye la correa del ventilador. Nivel de refrigerante bajo, se rellena."),
			TechnicianSignature: strp(pngDataURL(t)),
			Status:              models.StatusCompleted,
			Synced:              true,
		},
		Asset: &models.Asset{
			Code:        "M-3209",
			EngineModel: strp("Perkins 4006-23TAG3A"),
			EnginePower: strp("1000 kVA"),
			Client:      strp("Aena S.M.E., S.A."),
		},
		TechnicianName: "Técnico de Prueba",
		Date:           time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildAlternatorTableIsAlwaysOK(t *testing.T) {
	in := fixture(t)
	in.Inspection.LubricantLevel = models.CheckDefective

	rep, err := Build(in)
	require.NoError(t, err)

	want := [][]string{
		{"Estado general", Mark, "", ""},
		{"Conexiones eléctricas", Mark, "", ""},
		{"Rodamientos", Mark, "", ""},
	}
	if diff := cmp.Diff(want, rep.Alternator.Rows); diff != "" {
		t.Fatalf("alternator rows (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"INSPECCIÓN EN EL ALTERNADOR", "OK", "DEFECTUOSO", "CAMBIO"}, rep.Alternator.Header)
}

func TestBuildEngineTableFollowsRecord(t *testing.T) {
	rep, err := Build(fixture(t))
	require.NoError(t, err)

	require.Len(t, rep.Engine.Rows, 7)
	assert.Equal(t, []string{"Nivel de lubricante", Mark, "", ""}, rep.Engine.Rows[0])
	assert.Equal(t, []string{"Indicador nivel refrigerante", "", Mark, ""}, rep.Engine.Rows[1])
	assert.Equal(t, []string{"Correa del ventilador", "", "", Mark}, rep.Engine.Rows[2])
	assert.Equal(t, "Tubo de escape", rep.Engine.Rows[6][0])
}

func TestBuildValuesAndFallbacks(t *testing.T) {
	rep, err := Build(fixture(t))
	require.NoError(t, err)

	assert.Equal(t, "R-20260001", rep.Number)
	assert.Equal(t, "R-20260001_M-3209.pdf", rep.FileName)
	assert.Equal(t, "04/03/2026", rep.Date)

	assert.Equal(t, []string{"Horas del motor", "9504 h"}, rep.TestData.Rows[0])
	assert.Equal(t, []string{"Presión de aceite", "5.1 bar"}, rep.TestData.Rows[1])
	assert.Equal(t, []string{"Temperatura bloque", "62 °C"}, rep.TestData.Rows[2])
	assert.Equal(t, []string{"Corriente Fase R", "12.5 A"}, rep.Electrical.Rows[2])
	assert.Equal(t, []string{"Corriente Fase S", "N/A"}, rep.Electrical.Rows[3])

	assert.Equal(t, Field{"Nº MOTOR:", "N/A"}, rep.ClientRows[3][0])
	assert.Equal(t, Field{"POTENCIA:", "1000 kVA"}, rep.ClientRows[1][1])
	assert.Equal(t, Field{"Nº GRUPO:", "M-3209"}, rep.ClientRows[4][0])

	require.NotNil(t, rep.Signature)
	assert.Equal(t, "PNG", rep.Signature.Type)
}

func TestBuildMissingNumber(t *testing.T) {
	in := fixture(t)
	in.Inspection.Number = nil
	rep, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, "R - 20260001", rep.Number)
	assert.Equal(t, "Inspeccion_M-3209.pdf", rep.FileName)
}

func TestBuildRequiresInputs(t *testing.T) {
	_, err := Build(Input{Asset: &models.Asset{}})
	assert.Error(t, err)
}

func TestFileNameSanitizes(t *testing.T) {
	assert.Equal(t, "R-20260002_GE_01.pdf", FileName(strp("R-20260002"), "GE/01"))
}

func TestDecodeDataURL(t *testing.T) {
	img, err := DecodeDataURL("data:image/jpeg;base64,/9j/")
	require.NoError(t, err)
	assert.Equal(t, "JPG", img.Type)

	_, err = DecodeDataURL("data:image/svg+xml;base64,PHN2Zz4=")
	assert.Error(t, err)
	_, err = DecodeDataURL("data:image/png;base64,%%%")
	assert.Error(t, err)
	_, err = DecodeDataURL("")
	assert.Error(t, err)
}

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	name, err := Generate(&buf, fixture(t))
	require.NoError(t, err)
	assert.Equal(t, "R-20260001_M-3209.pdf", name)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestRenderSurvivesBrokenSignature(t *testing.T) {
	in := fixture(t)
	in.Inspection.TechnicianSignature = strp("data:image/png;base64,bm90IGEgcG5n")
	in.Logo = []byte("not a png either")

	rep, err := Build(in)
	require.NoError(t, err)
	assert.True(t, rep.SignatureBlock)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, rep))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderLongObservationsFlowToNextPage(t *testing.T) {
	in := fixture(t)
	long := strings.Repeat("Revisión completa del grupo sin incidencias relevantes. ", 60)
	in.Inspection.Observations = &long

	var buf bytes.Buffer
	_, err := Generate(&buf, in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytes.Count(buf.Bytes(), []byte("/Type /Page\n")), 2)
}
