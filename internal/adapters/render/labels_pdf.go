package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Avery 5160 geometry, in inches.
const (
	LabelColumns  = 3
	LabelRows     = 10
	LabelsPerPage = LabelColumns * LabelRows

	labelWidth      = 2.625
	labelMarginLeft = 0.1875
	labelMarginTop  = 0.5
	labelPitchX     = 2.75
	labelPitchY     = 1.0
	labelLineHeight = 0.16
	labelMaxLines   = 5
	labelFontSize   = 8
	ellipsis        = "..."
)

// WriteLabelSheet renders award labels on Avery 5160 sheets, five lines per
// label. Lines wider than the label are truncated with "...".
func WriteLabelSheet(w io.Writer, labels []model.AwardLabel) error {
	lines := make([][]string, 0, len(labels))
	for _, l := range labels {
		lines = append(lines, l.Lines())
	}
	return WriteLabelLines(w, lines)
}

// WriteLabelLines renders arbitrary label text, one slice of lines per label.
func WriteLabelLines(w io.Writer, labels [][]string) error {
	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", labelFontSize)
	pdf.AddPage()

	for i, lines := range labels {
		page, x, y := labelSlot(i)
		if page > 0 && i%LabelsPerPage == 0 {
			pdf.AddPage()
		}
		for n, text := range lines {
			if n == labelMaxLines {
				break
			}
			pdf.SetXY(x, y+float64(n)*labelLineHeight)
			pdf.CellFormat(labelWidth, labelLineHeight, fitWidth(pdf, win1252(strings.TrimSpace(text)), labelWidth), "", 0, "", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render label sheet: %w", err)
	}
	return nil
}

// labelSlot returns the zero-based page and top-left corner of label i.
func labelSlot(i int) (page int, x, y float64) {
	page = i / LabelsPerPage
	pos := i % LabelsPerPage
	col := pos % LabelColumns
	row := pos / LabelColumns
	return page, labelMarginLeft + float64(col)*labelPitchX, labelMarginTop + float64(row)*labelPitchY
}

// fitWidth truncates s so that it, plus "...", fits within width.
func fitWidth(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 {
		s = s[:len(s)-1]
		if pdf.GetStringWidth(s+ellipsis) <= width {
			break
		}
	}
	return s + ellipsis
}
