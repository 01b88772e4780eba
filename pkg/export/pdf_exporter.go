package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Orientation selects the PDF page layout.
type Orientation string

const (
	Portrait  Orientation = "P"
	Landscape Orientation = "L"
)

// ParseOrientation maps user input to an Orientation, defaulting to portrait.
func ParseOrientation(raw string) Orientation {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "l", "landscape", "paisagem":
		return Landscape
	default:
		return Portrait
	}
}

// PDFExporter renders datasets into a tabular A4 PDF.
type PDFExporter struct {
	orientation Orientation
}

// NewPDFExporter constructs a PDF exporter for the given orientation.
func NewPDFExporter(orientation Orientation) *PDFExporter {
	if orientation != Landscape {
		orientation = Portrait
	}
	return &PDFExporter{orientation: orientation}
}

// Render creates a PDF document with the header preamble and table body.
func (e *PDFExporter) Render(data Dataset, header Header) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New(string(e.orientation), "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if header.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(header.Title)), "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Arial", "", 9)
	for _, line := range header.Lines() {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 243, 255)
		for _, h := range data.Headers {
			pdf.CellFormat(colWidth, 8, fit(pdf, tr(h), colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	drawHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			drawHeader()
		}
		for _, h := range data.Headers {
			pdf.CellFormat(colWidth, 7, fit(pdf, tr(row[h]), colWidth), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// fit truncates text with an ellipsis so it fits inside a cell of width mm.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
