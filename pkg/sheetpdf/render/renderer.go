// Package render lays out shaped sheet grids as paginated PDF tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/algamelomer/excel-pages-to-pdf/pkg/sheetpdf/models"
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

// Style holds the page and table geometry in points.
type Style struct {
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	TitleSize       float64
	TitleLineHeight float64
	TitleGap        float64

	FontSize   float64
	LineHeight float64

	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64

	GridWidth    float64
	OutlineWidth float64

	HeaderFill RGB
	HeaderText RGB
	BodyText   RGB
	GridColor  RGB
}

// DefaultStyle returns the standard document layout.
func DefaultStyle() Style {
	return Style{
		MarginLeft:   20,
		MarginRight:  20,
		MarginTop:    30,
		MarginBottom: 20,

		TitleSize:       14,
		TitleLineHeight: 18,
		TitleGap:        14,

		FontSize:   10,
		LineHeight: 12,

		PadLeft:   6,
		PadRight:  6,
		PadTop:    4,
		PadBottom: 4,

		GridWidth:    0.25,
		OutlineWidth: 0.5,

		HeaderFill: RGB{0x2c, 0x3e, 0x50},
		HeaderText: RGB{0xff, 0xff, 0xff},
		BodyText:   RGB{0x00, 0x00, 0x00},
		GridColor:  RGB{0x44, 0x44, 0x44},
	}
}

// Result describes a rendered document.
type Result struct {
	Orientation models.Orientation
	Pages       int
	// Rows is the number of body rows drawn, header excluded.
	Rows int
	// HeaderDraws counts how often the header row was drawn.
	HeaderDraws int
}

// Renderer turns shaped grids into PDF documents. It is safe for
// concurrent use; every call builds its own document.
type Renderer struct {
	face  Face
	style Style
}

// New creates a Renderer for the given face and style.
func New(face Face, style Style) *Renderer {
	return &Renderer{face: face, style: style}
}

type tableRow struct {
	cells  [][]string
	height float64
}

// document carries the per-call drawing state.
type document struct {
	pdf     *fpdf.Fpdf
	style   Style
	text    func(string) string
	widths  []float64
	x0      float64
	headers int
}

// Render writes a PDF for one sheet to w: a centered title followed by
// the grid as a table whose first row is the header. The header is
// repeated at the top of every page the table continues on and is never
// left alone at the bottom of a page.
func (r *Renderer) Render(w io.Writer, title models.ShapedText, grid models.ShapedGrid) (*Result, error) {
	st := r.style
	orientation := Orientation(grid.Columns())

	pdf := fpdf.New(orientationCode(orientation), "pt", "A4", "")
	pdf.SetMargins(st.MarginLeft, st.MarginTop, st.MarginRight)
	pdf.SetAutoPageBreak(false, st.MarginBottom)
	pdf.SetCellMargin(0)
	pdf.SetCreator("sheetpdf", true)
	pdf.SetTitle(title.Text, true)

	doc := &document{pdf: pdf, style: st, text: func(s string) string { return s }}
	if r.face.Data != nil {
		pdf.AddUTF8FontFromBytes(r.face.Family, "", r.face.Data)
	} else {
		doc.text = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	usable := pageW - st.MarginLeft - st.MarginRight
	measure := func(s string) float64 { return pdf.GetStringWidth(s) }

	pdf.SetFont(r.face.Family, "", st.TitleSize)
	pdf.SetTextColor(st.BodyText.R, st.BodyText.G, st.BodyText.B)
	for _, line := range wrapText(doc.translate(title), usable, measure) {
		pdf.SetX(st.MarginLeft)
		pdf.CellFormat(usable, st.TitleLineHeight, line, "", 1, "C", false, 0, "")
	}
	pdf.Ln(st.TitleGap)

	pdf.SetFont(r.face.Family, "", st.FontSize)
	result := &Result{Orientation: orientation}
	if len(grid) > 0 {
		doc.layout(grid, usable, measure)
		rows := doc.rows(grid, measure)
		doc.drawTable(rows)
		result.Rows = len(rows) - 1
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	result.Pages = pdf.PageNo()
	result.HeaderDraws = doc.headers
	if err := pdf.Output(w); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return result, nil
}

func orientationCode(o models.Orientation) string {
	if o == models.Landscape {
		return "L"
	}
	return "P"
}

// translate maps shaped text into the encoding of the active font.
func (d *document) translate(t models.ShapedText) models.ShapedText {
	t.Text = d.text(t.Text)
	return t
}

// layout computes column widths from the widest line in each column and
// centers the table horizontally when it is narrower than the page.
func (d *document) layout(grid models.ShapedGrid, usable float64, measure Measure) {
	st := d.style
	pad := st.PadLeft + st.PadRight
	natural := make([]float64, grid.Columns())
	for i := range natural {
		natural[i] = pad + st.FontSize
	}
	for _, row := range grid {
		for c, cell := range row {
			if c >= len(natural) {
				break
			}
			for _, line := range strings.Split(d.text(cell.Text), "\n") {
				if w := measure(line) + pad; w > natural[c] {
					natural[c] = w
				}
			}
		}
	}

	d.widths = columnWidths(natural, usable)
	total := 0.0
	for _, w := range d.widths {
		total += w
	}
	d.x0 = st.MarginLeft
	if total < usable {
		d.x0 += (usable - total) / 2
	}
}

func (d *document) rows(grid models.ShapedGrid, measure Measure) []tableRow {
	st := d.style
	rows := make([]tableRow, 0, len(grid))
	for _, row := range grid {
		tr := tableRow{cells: make([][]string, len(d.widths))}
		lines := 1
		for c := range d.widths {
			var cell models.ShapedText
			if c < len(row) {
				cell = d.translate(row[c])
			}
			tr.cells[c] = wrapText(cell, d.widths[c]-st.PadLeft-st.PadRight, measure)
			if n := len(tr.cells[c]); n > lines {
				lines = n
			}
		}
		tr.height = float64(lines)*st.LineHeight + st.PadTop + st.PadBottom
		rows = append(rows, tr)
	}
	return rows
}

func (d *document) drawTable(rows []tableRow) {
	st := d.style
	pdf := d.pdf
	_, pageH := pdf.GetPageSize()
	bottom := pageH - st.MarginBottom
	header := rows[0]

	y := pdf.GetY()
	needed := header.height
	if len(rows) > 1 {
		needed += rows[1].height
	}
	if y+needed > bottom && y > st.MarginTop {
		pdf.AddPage()
		y = st.MarginTop
	}

	top := y
	d.drawRow(header, y, true)
	y += header.height
	for _, row := range rows[1:] {
		// A row taller than a page is drawn anyway once it is the first
		// body row below the header.
		if y+row.height > bottom && y > top+header.height {
			d.outline(top, y)
			pdf.AddPage()
			y = st.MarginTop
			top = y
			d.drawRow(header, y, true)
			y += header.height
		}
		d.drawRow(row, y, false)
		y += row.height
	}
	d.outline(top, y)
	pdf.SetY(y)
}

func (d *document) drawRow(row tableRow, y float64, header bool) {
	st := d.style
	pdf := d.pdf
	if header {
		d.headers++
	}

	pdf.SetLineWidth(st.GridWidth)
	pdf.SetDrawColor(st.GridColor.R, st.GridColor.G, st.GridColor.B)
	text := st.BodyText
	if header {
		pdf.SetFillColor(st.HeaderFill.R, st.HeaderFill.G, st.HeaderFill.B)
		text = st.HeaderText
	}
	pdf.SetTextColor(text.R, text.G, text.B)

	x := d.x0
	for c, lines := range row.cells {
		w := d.widths[c]
		if header {
			pdf.Rect(x, y, w, row.height, "FD")
		} else {
			pdf.Rect(x, y, w, row.height, "D")
		}

		inner := row.height - st.PadTop - st.PadBottom
		ty := y + st.PadTop + (inner-float64(len(lines))*st.LineHeight)/2
		for i, line := range lines {
			if line == "" {
				continue
			}
			pdf.SetXY(x+st.PadLeft, ty+float64(i)*st.LineHeight)
			pdf.CellFormat(w-st.PadLeft-st.PadRight, st.LineHeight, line, "", 0, "R", false, 0, "")
		}
		x += w
	}
}

// outline draws the heavier box around the part of the table on the
// current page.
func (d *document) outline(top, bottom float64) {
	st := d.style
	total := 0.0
	for _, w := range d.widths {
		total += w
	}
	d.pdf.SetLineWidth(st.OutlineWidth)
	d.pdf.SetDrawColor(st.GridColor.R, st.GridColor.G, st.GridColor.B)
	d.pdf.Rect(d.x0, top, total, bottom-top, "D")
	d.pdf.SetLineWidth(st.GridWidth)
}
