package ingest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ParseFile extracts the text of a Session Report PDF and parses it.
func ParseFile(path string) (*SessionReport, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return parsePDF(r)
}

// ParseReader parses a Session Report PDF held in memory, e.g. an upload.
func ParseReader(ra io.ReaderAt, size int64) (*SessionReport, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return parsePDF(r)
}

// ParseBytes is ParseReader over a byte slice.
func ParseBytes(raw []byte) (*SessionReport, error) {
	return ParseReader(bytes.NewReader(raw), int64(len(raw)))
}

func parsePDF(r *pdf.Reader) (*SessionReport, error) {
	text, err := extractText(r)
	if err != nil {
		return nil, err
	}
	rep := ParseText(text)
	if len(rep.Events) == 0 {
		return rep, ErrNoEvents
	}
	return rep, nil
}

// extractText joins the plain text of every readable page, one line per row.
func extractText(r *pdf.Reader) (string, error) {
	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil || len(rows) == 0 {
			content, plainErr := p.GetPlainText(nil)
			if plainErr != nil {
				continue
			}
			b.WriteString(content)
			b.WriteString("\n")
			continue
		}
		for _, row := range rows {
			b.WriteString(joinRow(row.Content))
			b.WriteString("\n")
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}

// wordGap is the horizontal distance, in points, treated as a space between
// two text runs of the same row.
const wordGap = 1.0

func joinRow(texts pdf.TextHorizontal) string {
	var b strings.Builder
	var end float64
	for i, t := range texts {
		if i > 0 && t.X-end > wordGap {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
