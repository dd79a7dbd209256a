// Package tabular reads spreadsheet-shaped inputs (CSV and XLSX) into a
// header plus rows, and into history tables.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/fastfishy/internal/domain/history"
)

// Format is a supported input format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("tabular: unsupported format")
	ErrEmpty             = errors.New("tabular: no header row")
)

const bom = "\uFEFF"

// Sheet is a header row followed by data rows. Rows may be shorter than the
// header when trailing cells are empty.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// FormatFromName picks the format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// Load reads a history table from a .csv or .xlsx file.
func Load(path string) (*history.Table, error) {
	s, err := LoadSheet(path, history.ColLastName)
	if err != nil {
		return nil, err
	}
	return history.NewTable(s.Header, s.Rows)
}

// Read reads a history table from r.
func Read(r io.Reader, format Format) (*history.Table, error) {
	s, err := ReadSheet(r, format, history.ColLastName)
	if err != nil {
		return nil, err
	}
	return history.NewTable(s.Header, s.Rows)
}

// LoadSheet reads the file at path. For workbooks, the first sheet whose
// header contains one of hints is used, else the first non-empty sheet.
func LoadSheet(path string, hints ...string) (*Sheet, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSheet(f, format, hints...)
}

// ReadSheet reads one sheet from r.
func ReadSheet(r io.Reader, format Format, hints ...string) (*Sheet, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r, hints)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func readCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return split("", records)
}

func readXLSX(r io.Reader, hints []string) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var fallback *Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		s, err := split(name, rows)
		if err != nil {
			continue
		}
		if hasAny(s.Header, hints) {
			return s, nil
		}
		if fallback == nil {
			fallback = s
		}
	}
	if fallback == nil {
		return nil, ErrEmpty
	}
	return fallback, nil
}

// split takes the first non-blank record as the header.
func split(name string, records [][]string) (*Sheet, error) {
	for i, rec := range records {
		if blank(rec) {
			continue
		}
		header := make([]string, len(rec))
		for j, h := range rec {
			header[j] = strings.TrimSpace(h)
		}
		header[0] = strings.TrimPrefix(header[0], bom)

		rows := make([][]string, 0, len(records)-i-1)
		for _, row := range records[i+1:] {
			if !blank(row) {
				rows = append(rows, row)
			}
		}
		return &Sheet{Name: name, Header: header, Rows: rows}, nil
	}
	return nil, ErrEmpty
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func hasAny(header, hints []string) bool {
	for _, h := range header {
		for _, want := range hints {
			if h == want {
				return true
			}
		}
	}
	return false
}
