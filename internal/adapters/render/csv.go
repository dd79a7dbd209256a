package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Column headers of the combination report.
var (
	PairsHeader = []string{
		"Female Event #", "Female Age", "Female Heat #", "Female # Swimmers",
		"combine with",
		"Male Event #", "Male Age", "Male Heat #", "Male # Swimmers",
		"Distance", "Stroke",
	}
	VerdictsHeader = []string{
		"Event #", "Gender", "Age Group", "Distance", "Stroke", "Entries", "Heats",
		"Can Combine?", "Why Not?", "Partner",
	}
	LabelsHeader = []string{"Name", "Category", "Detail", "Date", "Meet Name", "Age Group", "Team"}
)

// PairRow flattens a pair into PairsHeader order.
func PairRow(p model.CombinablePair) []string {
	return []string{
		p.Female.Number, p.Female.Label(), strconv.Itoa(p.FemaleHeat()), strconv.Itoa(p.FemaleRemainder),
		"combine with",
		p.Male.Number, p.Male.Label(), strconv.Itoa(p.MaleHeat()), strconv.Itoa(p.MaleRemainder),
		p.Female.Distance, p.Female.Stroke,
	}
}

// VerdictRow flattens a verdict into VerdictsHeader order.
func VerdictRow(v model.Verdict) []string {
	e := v.Event
	return []string{
		e.Number, string(e.Gender), e.AgeGroup, e.Distance, e.Stroke,
		strconv.Itoa(e.Entries), strconv.Itoa(e.Heats),
		v.CanCombine, v.Reason, v.Partner,
	}
}

// LabelRow flattens a label into LabelsHeader order.
func LabelRow(l model.AwardLabel) []string {
	return []string{l.Name, l.Category, l.Detail, l.Date, l.MeetName, l.AgeGroup, l.Team}
}

// WritePairsCSV writes the combinable pairs report.
func WritePairsCSV(w io.Writer, pairs []model.CombinablePair) error {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, PairRow(p))
	}
	return WriteCSV(w, PairsHeader, rows)
}

// WriteVerdictsCSV writes the per-event combinability report.
func WriteVerdictsCSV(w io.Writer, verdicts []model.Verdict) error {
	rows := make([][]string, 0, len(verdicts))
	for _, v := range verdicts {
		rows = append(rows, VerdictRow(v))
	}
	return WriteCSV(w, VerdictsHeader, rows)
}

// WriteLabelsCSV writes award labels one per row.
func WriteLabelsCSV(w io.Writer, labels []model.AwardLabel) error {
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, LabelRow(l))
	}
	return WriteCSV(w, LabelsHeader, rows)
}

// WriteCSV writes header followed by rows.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
