// Package report renders destination exports as printable documents.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/guy32807/travel-recommentation/internal/domain"
)

type column struct {
	title string
	width float64
	value func(domain.ExportRow) string
}

// Landscape A4 leaves 277mm between the 10mm margins.
var columns = []column{
	{"Name", 50, func(r domain.ExportRow) string { return r.Name }},
	{"Country", 30, func(r domain.ExportRow) string { return r.Country }},
	{"City", 30, func(r domain.ExportRow) string { return r.City }},
	{"Climate", 25, func(r domain.ExportRow) string { return r.Climate }},
	{"Budget", 22, func(r domain.ExportRow) string { return r.BudgetLevel }},
	{"Activities", 70, func(r domain.ExportRow) string { return strings.Join(r.Activities, ", ") }},
	{"Best time", 35, func(r domain.ExportRow) string { return strings.Join(r.BestTimeToVisit, ", ") }},
	{"Rating", 15, func(r domain.ExportRow) string {
		if r.RatingCount == 0 {
			return "-"
		}
		return strconv.FormatFloat(r.RatingAverage, 'f', 1, 64)
	}},
}

const (
	rowHeight = 7
	margin    = 10
)

// DestinationsPDF renders rows as a table, repeating the header on every
// page. Cell text that does not fit is truncated with "...".
func DestinationsPDF(rows []domain.ExportRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin+5)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle("Destinations", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(13, 24, 37)
		pdf.CellFormat(0, 9, "Travel destinations", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, fmt.Sprintf("%d destinations, generated %s", len(rows),
			generatedAt.UTC().Format("02 Jan 2006 15:04 UTC")), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		for _, c := range columns {
			pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin - 2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(20, 20, 20)
	for i, r := range rows {
		// zebra stripes
		fill := i%2 == 1
		pdf.SetFillColor(242, 244, 247)
		for _, c := range columns {
			text := fit(pdf, tr, c.value(r), c.width-2)
			pdf.CellFormat(c.width, rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		// header func resets the font on a new page
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(20, 20, 20)
	}
	if len(rows) == 0 {
		pdf.CellFormat(0, rowHeight, "No destinations.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report.DestinationsPDF: %w", err)
	}
	return buf.Bytes(), nil
}

// fit translates s for the core fonts and shortens it until it fits in
// width at the current font.
func fit(pdf *gofpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if out := tr(s); pdf.GetStringWidth(out) <= width {
		return out
	}
	const ellipsis = "..."
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+ellipsis)) > width {
		r = r[:len(r)-1]
	}
	return tr(string(r) + ellipsis)
}
