package tui

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	padCols  = 48
	padRows  = 10
	padScale = 8
)

// SignaturePad is a cell canvas drawn with the arrow keys. With the pen down
// every move inks the cell it lands on.
type SignaturePad struct {
	cells   [padRows][padCols]bool
	row     int
	col     int
	penDown bool
}

func NewSignaturePad() SignaturePad {
	return SignaturePad{row: padRows / 2, col: 2}
}

// Empty reports whether nothing has been drawn.
func (p *SignaturePad) Empty() bool {
	for r := range p.cells {
		for c := range p.cells[r] {
			if p.cells[r][c] {
				return false
			}
		}
	}
	return true
}

func (p *SignaturePad) Clear() {
	p.cells = [padRows][padCols]bool{}
	p.penDown = false
}

func (p SignaturePad) Update(msg tea.KeyMsg) SignaturePad {
	switch msg.String() {
	case "up", "k":
		p.move(-1, 0)
	case "down", "j":
		p.move(1, 0)
	case "left", "h":
		p.move(0, -1)
	case "right", "l":
		p.move(0, 1)
	case " ":
		p.penDown = !p.penDown
		if p.penDown {
			p.cells[p.row][p.col] = true
		}
	case "x":
		p.Clear()
	}
	return p
}

func (p *SignaturePad) move(dr, dc int) {
	r, c := p.row+dr, p.col+dc
	if r < 0 || r >= padRows || c < 0 || c >= padCols {
		return
	}
	p.row, p.col = r, c
	if p.penDown {
		p.cells[r][c] = true
	}
}

func (p SignaturePad) View(s Styles) string {
	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", padCols) + "┐\n")
	for r := range p.cells {
		b.WriteString("│")
		for c := range p.cells[r] {
			switch {
			case r == p.row && c == p.col:
				if p.penDown {
					b.WriteString(s.Selected.Render("◆"))
				} else {
					b.WriteString(s.Selected.Render("+"))
				}
			case p.cells[r][c]:
				b.WriteString("█")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + strings.Repeat("─", padCols) + "┘")
	return b.String()
}

// DataURL renders the strokes as a black-on-white PNG data URL.
func (p *SignaturePad) DataURL() (string, error) {
	img := image.NewGray(image.Rect(0, 0, padCols*padScale, padRows*padScale))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for r := range p.cells {
		for c := range p.cells[r] {
			if !p.cells[r][c] {
				continue
			}
			for y := r * padScale; y < (r+1)*padScale; y++ {
				for x := c * padScale; x < (c+1)*padScale; x++ {
					img.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
