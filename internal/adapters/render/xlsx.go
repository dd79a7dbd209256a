package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/fastfishy/internal/domain/model"
)

// WriteLabelsXLSX writes award labels to a single-sheet workbook, with the
// Fast Fishy rankings on a second sheet when given.
func WriteLabelsXLSX(w io.Writer, labels []model.AwardLabel, rankings map[string][]model.RankEntry, ageGroups []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const labelsSheet = "Labels"
	if err := f.SetSheetName(f.GetSheetName(0), labelsSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	rows := make([][]string, 0, len(labels)+1)
	rows = append(rows, LabelsHeader)
	for _, l := range labels {
		rows = append(rows, LabelRow(l))
	}
	if err := fillSheet(f, labelsSheet, rows); err != nil {
		return err
	}

	if len(ageGroups) > 0 {
		const rankSheet = "Rankings"
		if _, err := f.NewSheet(rankSheet); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		rows := [][]string{{"Age Group", "Rank", "Name", "Total Drop"}}
		for _, age := range ageGroups {
			for i, r := range rankings[age] {
				rows = append(rows, []string{age, fmt.Sprint(i + 1), r.Name, r.Display})
			}
		}
		if err := fillSheet(f, rankSheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	return nil
}
