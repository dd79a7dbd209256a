package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Column widths, in mm, of the landscape pairs table.
var pairsColumnWidths = []float64{20, 27, 20, 25, 25, 20, 27, 20, 25, 20, 30}

// Columns drawn on a grey background.
var shadedPairColumns = map[int]bool{4: true, 9: true, 10: true}

const (
	pairsRowHeight    = 8.0
	pairsHeaderHeight = 8.0
	timestampLayout   = "Report generated 01/02/2006 03:04:05 PM"
)

// WritePairsPDF renders the "Combo Events" report for pairs.
func WritePairsPDF(w io.Writer, pairs []model.CombinablePair, meetTitle string, generatedAt time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(win1252("Combo Events - "+meetTitle), false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, "Combo Events", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, win1252(meetTitle), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	tableWidth := 0.0
	for _, cw := range pairsColumnWidths {
		tableWidth += cw
	}
	pageWidth, _ := pdf.GetPageSize()
	left := (pageWidth - tableWidth) / 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	x, y := left, pdf.GetY()
	for i, header := range PairsHeader {
		cw := pairsColumnWidths[i]
		pdf.Rect(x, y, cw, pairsHeaderHeight, "F")
		pdf.SetXY(x, y)
		pdf.MultiCell(cw, pairsHeaderHeight/2, splitHeader(header), "1", "C", false)
		x += cw
	}
	pdf.SetXY(left, y+pairsHeaderHeight)

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range pairs {
		pdf.SetX(left)
		for i, cell := range PairRow(p) {
			pdf.CellFormat(pairsColumnWidths[i], pairsRowHeight, win1252(cell), "1", 0, "", shadedPairColumns[i], 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.Ln(4)
	pdf.CellFormat(0, 5, generatedAt.Format(timestampLayout), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pairs pdf: %w", err)
	}
	return nil
}

// splitHeader breaks "Female Event #" into two lines after its first word.
// Single-word headers get an empty second line so every header cell is two
// lines tall.
func splitHeader(h string) string {
	first, rest, ok := strings.Cut(h, " ")
	if !ok {
		return h + "\n "
	}
	return first + "\n" + rest
}
