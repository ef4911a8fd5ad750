package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	margin      = 15.0
	rowHeight   = 6.0
	headHeight  = 8.0
	tableGap    = 6.0
	engineTop   = 110.0
	clientTop   = 50.0
	clientStep  = 8.0
	valueColumn = 60.0
)

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Render draws rep as an A4 portrait PDF into w.
func Render(w io.Writer, rep *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle(rep.Title+" "+rep.Number, true)
	pdf.SetCreator("Asset-Track", true)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.logo(rep.Logo)
	r.header(rep)
	r.client(rep.ClientRows)

	y := engineTop
	for _, t := range []Table{rep.Engine, rep.Alternator, rep.TestData, rep.Electrical} {
		y = r.table(t, y) + tableGap
	}
	y = r.observations(rep.Observations, y+5)
	r.signature(rep, y)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

// Generate builds and renders in, returning the file name to save it under.
func Generate(w io.Writer, in Input) (string, error) {
	rep, err := Build(in)
	if err != nil {
		return "", err
	}
	if err := Render(w, rep); err != nil {
		return "", err
	}
	return rep.FileName, nil
}

// registerImage adds img to the document. Undecodable images are skipped so a
// bad signature never prevents the report.
func (r *renderer) registerImage(name string, img *Image) bool {
	if img == nil || len(img.Data) == 0 {
		return false
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
		return false
	}
	r.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if r.pdf.Err() {
		r.pdf.ClearError()
		return false
	}
	return true
}

func (r *renderer) logo(img *Image) {
	if r.registerImage("logo", img) {
		r.pdf.ImageOptions("logo", margin, 10, 40, 20, false, fpdf.ImageOptions{ImageType: img.Type}, 0, "")
	}
}

func (r *renderer) header(rep *Report) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 28)
	title := r.tr(rep.Title)
	pdf.Text(105-pdf.GetStringWidth(title)/2, 25, title)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(70, 35, r.tr("Nº INSPECCIÓN:"))
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(110, 35, r.tr(rep.Number))

	pdf.SetLineWidth(0.5)
	pdf.Line(margin, 40, 210-margin, 40)
}

func (r *renderer) client(rows [][]Field) {
	pdf := r.pdf
	y := clientTop
	for _, row := range rows {
		for i, f := range row {
			labelX, valueX := 20.0, valueColumn
			if i == 1 {
				labelX, valueX = 130, 160
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Text(labelX, y, r.tr(f.Label))
			pdf.SetFont("Helvetica", "", 10)
			pdf.Text(valueX, y, r.tr(f.Value))
		}
		y += clientStep
	}
}

// table draws t starting at y, moving to a new page when it does not fit,
// and returns the y below it.
func (r *renderer) table(t Table, y float64) float64 {
	pdf := r.pdf
	_, pageH := pdf.GetPageSize()
	height := headHeight + rowHeight*float64(len(t.Rows))
	if y+height > pageH-margin {
		pdf.AddPage()
		y = margin + 5
	}

	pdf.SetXY(margin, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(t.Fill.R, t.Fill.G, t.Fill.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	for i, h := range t.Header {
		align := "C"
		if i == 0 && t.Striped {
			align = "L"
		}
		pdf.CellFormat(t.Widths[i], headHeight, r.tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for ri, row := range t.Rows {
		pdf.SetX(margin)
		fill := t.Striped && ri%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		for i, cell := range row {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(t.Widths[i], rowHeight, r.tr(cell), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.GetY()
}

func (r *renderer) observations(text string, y float64) float64 {
	if text == "" {
		return y
	}
	pdf := r.pdf
	_, pageH := pdf.GetPageSize()
	if y+14 > pageH-margin {
		pdf.AddPage()
		y = margin + 5
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(margin, y, "OBSERVACIONES:")

	pdf.SetAutoPageBreak(true, margin)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(margin, y+3)
	pdf.MultiCell(180, 5, r.tr(text), "", "L", false)
	pdf.SetAutoPageBreak(false, margin)
	return pdf.GetY()
}

// signature sits 50 mm above the bottom of the last page, on a fresh page
// when the content above already reaches it.
func (r *renderer) signature(rep *Report, contentBottom float64) {
	if !rep.SignatureBlock {
		return
	}
	pdf := r.pdf
	_, pageH := pdf.GetPageSize()
	y := pageH - 50
	if contentBottom > y-5 {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(margin, y, r.tr("FIRMA DEL TÉCNICO:"))

	if r.registerImage("firma", rep.Signature) {
		pdf.ImageOptions("firma", margin, y+5, 60, 25, false, fpdf.ImageOptions{ImageType: rep.Signature.Type}, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(margin, y+35, r.tr(rep.TechnicianName))
	pdf.SetLineWidth(0.3)
	pdf.Line(margin, y+33, 75, y+33)
	pdf.Text(120, y+35, "Fecha: "+rep.Date)
}
