package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Column names of an externally extracted event table, e.g. an OCR export.
const (
	ColNumber   = "Event #"
	ColGender   = "Gender"
	ColAgeGroup = "Age Group"
	ColDistance = "Distance"
	ColStroke   = "Stroke"
	ColEntries  = "Entries"
	ColHeats    = "Heats"
)

var requiredColumns = []string{ColNumber, ColGender, ColAgeGroup, ColDistance, ColStroke, ColEntries, ColHeats}

// BuildEvents normalizes an extracted event table into events, keeping row
// order. Rows that cannot be normalized are skipped and counted.
func BuildEvents(header []string, rows [][]string) ([]model.Event, int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, fmt.Errorf("%w: missing column %q", ErrInvalidRecord, col)
		}
	}

	events := make([]model.Event, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		cell := func(col string) string {
			if i := index[col]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		ev, err := buildEvent(cell)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return events, skipped, ErrNoEvents
	}
	return events, skipped, nil
}

func buildEvent(cell func(string) string) (model.Event, error) {
	number := cell(ColNumber)
	if number == "" {
		return model.Event{}, fmt.Errorf("%w: empty event number", ErrInvalidRecord)
	}
	gender, err := model.ParseGender(cell(ColGender))
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	entries, err := count(cell(ColEntries))
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: entries: %w", ErrInvalidRecord, err)
	}
	heats, err := count(cell(ColHeats))
	if err != nil {
		return model.Event{}, fmt.Errorf("%w: heats: %w", ErrInvalidRecord, err)
	}
	return model.Event{
		Number:   number,
		Gender:   gender,
		AgeGroup: strings.Join(strings.Fields(cell(ColAgeGroup)), " "),
		Distance: cell(ColDistance),
		Stroke:   cell(ColStroke),
		Entries:  entries,
		Heats:    heats,
	}, nil
}

// count accepts "12" and spreadsheet renderings like "12.0".
func count(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != float64(int(f)) {
		return 0, fmt.Errorf("not a count: %q", s)
	}
	return int(f), nil
}
